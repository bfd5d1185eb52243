package mariadb

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/unisql/unisql/driver"
)

// MySQL/MariaDB error numbers this adapter translates specially. Everything
// else becomes a QueryError carrying the numeric code, which keeps retryable
// codes (1213 deadlock, 1205 lock wait timeout) classifiable centrally.
const (
	numDuplicateEntry      = 1062
	numForeignKeyViolation = 1452
	numForeignKeyDelete    = 1451
)

// translateError converts go-sql-driver errors into the driver taxonomy. Raw
// backend errors never cross the adapter boundary unwrapped.
func translateError(err error, sql string, params []any) error {
	if err == nil {
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		code := strconv.Itoa(int(myErr.Number))
		switch myErr.Number {
		case numDuplicateEntry:
			return &driver.UniqueConstraintError{
				DriverError: driver.DriverError{
					Code:    code,
					Message: "unique constraint violation",
					Cause:   err,
				},
				Constraint: keyFromDuplicateMessage(myErr.Message),
			}
		case numForeignKeyViolation, numForeignKeyDelete:
			return &driver.ForeignKeyError{
				DriverError: driver.DriverError{
					Code:    code,
					Message: "foreign key constraint violation",
					Cause:   err,
				},
				Constraint: constraintFromFKMessage(myErr.Message),
			}
		}

		qe := driver.NewQueryError("query failed", err, sql, params)
		qe.Code = code
		return qe
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return driver.NewQueryError("query canceled", err, sql, params)
	}

	if errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, mysql.ErrBusyBuffer) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "database is closed") {
		return driver.NewConnectionError("mariadb connection failed", err)
	}

	return driver.NewQueryError("query failed", err, sql, params)
}

// keyFromDuplicateMessage extracts the index name from the server message,
// e.g. `Duplicate entry 'x@y' for key 'users.email_idx'` → "users.email_idx".
// The server does not expose the key structurally, so this is best effort.
func keyFromDuplicateMessage(msg string) string {
	marker := "for key '"
	start := strings.Index(msg, marker)
	if start < 0 {
		return ""
	}
	rest := msg[start+len(marker):]
	end := strings.Index(rest, "'")
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// constraintFromFKMessage extracts the constraint name from messages like
// `... CONSTRAINT `fk_orders_user` FOREIGN KEY ...`.
func constraintFromFKMessage(msg string) string {
	marker := "CONSTRAINT `"
	start := strings.Index(msg, marker)
	if start < 0 {
		return ""
	}
	rest := msg[start+len(marker):]
	end := strings.Index(rest, "`")
	if end < 0 {
		return ""
	}
	return rest[:end]
}
