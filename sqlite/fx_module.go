package sqlite

import (
	"context"

	"go.uber.org/fx"

	"github.com/unisql/unisql/driver"
	"github.com/unisql/unisql/observability"
)

// FXModule provides a driver.Client backed by the SQLite adapter and
// disconnects it on application stop.
var FXModule = fx.Module("sqlite",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			ProvideClient,
			fx.As(new(driver.Client)),
		),
	),
	fx.Invoke(RegisterLifecycle),
)

// ProvideClient exposes the concrete *driver.Driver as the driver.Client
// interface so applications depend on the abstraction.
func ProvideClient(d *driver.Driver) driver.Client {
	return d
}

// Params groups the dependencies needed to create the SQLite-backed driver
// via dependency injection. Logger, tracer and observer are optional: the
// driver runs silently without them.
type Params struct {
	fx.In

	Config   Config
	Logger   driver.Logger          `optional:"true"`
	Tracer   driver.Tracer          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI builds the Driver from injected dependencies, with the
// SQLite result parser pre-wired. The connection itself is created lazily on
// first use.
func NewClientWithDI(params Params) *driver.Driver {
	opts := []driver.Option{driver.WithResultParsers(NewParser())}
	if params.Logger != nil {
		opts = append(opts, driver.WithLogger(params.Logger))
	}
	if params.Tracer != nil {
		opts = append(opts, driver.WithTracer(params.Tracer))
	}
	if params.Observer != nil {
		opts = append(opts, driver.WithObserver(params.Observer))
	}
	return driver.New(NewAdapter(params.Config), opts...)
}

// RegisterLifecycle disconnects the driver on application stop.
func RegisterLifecycle(lc fx.Lifecycle, d *driver.Driver) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return d.Disconnect(ctx)
		},
	})
}
