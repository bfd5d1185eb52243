package mariadb

import (
	"context"
	"database/sql"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/unisql/unisql/driver"
)

// Adapter speaks to MariaDB/MySQL through GORM's raw-SQL surface over the
// go-sql-driver connection pool. Transactions are supported; there is no
// native batch primitive, so batches fall back to one wrapping transaction.
type Adapter struct {
	cfg Config
}

var _ driver.Adapter = (*Adapter)(nil)

// NewAdapter creates the MariaDB adapter. No connection is made until the
// owning Driver first needs one.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Name() string { return "mariadb-gorm" }

func (a *Adapter) Dialect() driver.Dialect { return driver.DialectMySQL }

func (a *Adapter) Capabilities() driver.Capabilities {
	return driver.Capabilities{Transactions: true, Batch: false}
}

// Connect opens the GORM handle, configures the pool and verifies
// connectivity with a ping.
func (a *Adapter) Connect(ctx context.Context) (driver.Conn, error) {
	db, err := gorm.Open(mysql.Open(a.cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, driver.NewConnectionError("failed to connect to MariaDB/MySQL", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, driver.NewConnectionError("failed to get MariaDB/MySQL database instance", err)
	}

	maxOpen := a.cfg.ConnectionDetails.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 50
	}
	maxIdle := a.cfg.ConnectionDetails.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 25
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, driver.NewConnectionError("failed to connect to MariaDB/MySQL", err)
	}

	return &conn{db: db}, nil
}

type conn struct {
	db *gorm.DB
}

var _ driver.Conn = (*conn)(nil)

func (c *conn) Execute(ctx context.Context, sqlText string, params []any) (*driver.Result, error) {
	return execute(c.db.WithContext(ctx), sqlText, params)
}

// Begin opens a new transaction on its own pooled connection, translating
// the portable isolation level into the session's transaction options.
func (c *conn) Begin(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	gormTx := c.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: isoLevel(opts.Isolation)})
	if gormTx.Error != nil {
		return nil, translateError(gormTx.Error, "BEGIN", nil)
	}
	return &tx{tx: gormTx}, nil
}

func (c *conn) Close(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return driver.NewConnectionError("failed to get MariaDB/MySQL database instance", err)
	}
	if err := sqlDB.Close(); err != nil {
		return driver.NewConnectionError("failed to close MariaDB/MySQL pool", err)
	}
	return nil
}

type tx struct {
	tx *gorm.DB
}

var _ driver.Tx = (*tx)(nil)

func (t *tx) Execute(ctx context.Context, sqlText string, params []any) (*driver.Result, error) {
	return execute(t.tx.WithContext(ctx), sqlText, params)
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit().Error; err != nil {
		return translateError(err, "COMMIT", nil)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback().Error; err != nil {
		return translateError(err, "ROLLBACK", nil)
	}
	return nil
}

// execute routes a statement by shape: row-returning statements go through
// Raw, writes through Exec with RowsAffected.
func execute(db *gorm.DB, sqlText string, params []any) (*driver.Result, error) {
	if driver.ReturnsRows(sqlText) {
		rows, err := db.Raw(sqlText, params...).Rows()
		if err != nil {
			return nil, translateError(err, sqlText, params)
		}
		res, err := driver.ScanRows(rows)
		if err != nil {
			return nil, translateError(err, sqlText, params)
		}
		return res, nil
	}

	result := db.Exec(sqlText, params...)
	if result.Error != nil {
		return nil, translateError(result.Error, sqlText, params)
	}
	return &driver.Result{RowCount: result.RowsAffected}, nil
}

func isoLevel(level driver.IsolationLevel) sql.IsolationLevel {
	switch level {
	case driver.IsolationReadUncommitted:
		return sql.LevelReadUncommitted
	case driver.IsolationReadCommitted:
		return sql.LevelReadCommitted
	case driver.IsolationRepeatableRead:
		return sql.LevelRepeatableRead
	case driver.IsolationSerializable:
		return sql.LevelSerializable
	default:
		return sql.LevelDefault
	}
}
