package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/unisql/unisql/driver"
)

// PostgreSQL error codes this adapter translates specially. Everything else
// becomes a QueryError carrying the SQLSTATE code, which keeps retryable
// codes (40001, 40P01) classifiable centrally.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translateError converts pgx/pgconn errors into the driver taxonomy. Raw
// backend errors never cross the adapter boundary unwrapped.
func translateError(err error, sql string, params []any) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &driver.UniqueConstraintError{
				DriverError: driver.DriverError{
					Code:    pgErr.Code,
					Message: "unique constraint violation",
					Cause:   err,
				},
				Constraint: pgErr.ConstraintName,
				Table:      pgErr.TableName,
				Columns:    columnsFromDetail(pgErr.Detail),
			}
		case codeForeignKeyViolation:
			return &driver.ForeignKeyError{
				DriverError: driver.DriverError{
					Code:    pgErr.Code,
					Message: "foreign key constraint violation",
					Cause:   err,
				},
				Constraint: pgErr.ConstraintName,
				Table:      pgErr.TableName,
			}
		}

		qe := driver.NewQueryError("query failed", err, sql, params)
		qe.Code = pgErr.Code
		return qe
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return driver.NewQueryError("query canceled", err, sql, params)
	}

	// Anything that is not a server-reported error is a connectivity
	// problem: dial failures, closed pools, broken connections.
	if strings.Contains(err.Error(), "closed pool") || strings.Contains(err.Error(), "connect") {
		return driver.NewConnectionError("postgres connection failed", err)
	}

	return driver.NewQueryError("query failed", err, sql, params)
}

// columnsFromDetail extracts column names from the violation detail message,
// e.g. `Key (email)=(x@y) already exists.` → ["email"]. Postgres does not
// expose the columns structurally, so this is best effort.
func columnsFromDetail(detail string) []string {
	start := strings.Index(detail, "Key (")
	if start < 0 {
		return nil
	}
	rest := detail[start+len("Key ("):]
	end := strings.Index(rest, ")")
	if end < 0 {
		return nil
	}
	parts := strings.Split(rest[:end], ",")
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		columns = append(columns, strings.TrimSpace(p))
	}
	return columns
}
