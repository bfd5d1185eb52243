// Package logger provides structured logging for the unisql packages.
//
// It wraps Uber's Zap logger behind a small five-level API
// (Debug/Info/Warn/Error/Fatal) that takes an optional error and free-form
// field maps. Every unisql package declares its own minimal Logger interface
// with this shape, so any implementation with matching methods can be
// plugged in; this package is the production implementation.
//
// Basic usage:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info})
//	log.Info("connected", nil, map[string]interface{}{"dialect": "postgres"})
//
// With fx:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config { return logger.Config{Level: "info"} }),
//	)
package logger
