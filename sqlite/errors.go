package sqlite

import (
	"context"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/unisql/unisql/driver"
)

// translateError converts go-sqlite3 errors into the driver taxonomy. Raw
// backend errors never cross the adapter boundary unwrapped.
func translateError(err error, sql string, params []any) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &driver.UniqueConstraintError{
				DriverError: driver.DriverError{
					Code:    sqliteErr.ExtendedCode.Error(),
					Message: "unique constraint violation",
					Cause:   err,
				},
				Columns: columnsFromConstraintMessage(err.Error()),
			}
		case sqlite3.ErrConstraintForeignKey:
			return &driver.ForeignKeyError{
				DriverError: driver.DriverError{
					Code:    sqliteErr.ExtendedCode.Error(),
					Message: "foreign key constraint violation",
					Cause:   err,
				},
			}
		}

		qe := driver.NewQueryError("query failed", err, sql, params)
		switch sqliteErr.Code {
		case sqlite3.ErrBusy:
			qe.Code = "SQLITE_BUSY"
		case sqlite3.ErrLocked:
			qe.Code = "SQLITE_LOCKED"
		default:
			qe.Code = sqliteErr.Code.Error()
		}
		return qe
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return driver.NewQueryError("query canceled", err, sql, params)
	}

	if strings.Contains(err.Error(), "database is closed") {
		return driver.NewConnectionError("sqlite connection failed", err)
	}

	return driver.NewQueryError("query failed", err, sql, params)
}

// columnsFromConstraintMessage extracts column names from messages like
// `UNIQUE constraint failed: users.email, users.tenant` → ["email", "tenant"].
// SQLite does not expose them structurally, so this is best effort.
func columnsFromConstraintMessage(msg string) []string {
	marker := "constraint failed: "
	start := strings.Index(msg, marker)
	if start < 0 {
		return nil
	}
	parts := strings.Split(msg[start+len(marker):], ",")
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if dot := strings.LastIndex(p, "."); dot >= 0 {
			p = p[dot+1:]
		}
		if p != "" {
			columns = append(columns, p)
		}
	}
	if len(columns) == 0 {
		return nil
	}
	return columns
}
