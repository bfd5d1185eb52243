package driver

import (
	"errors"
	"fmt"
)

// DriverError is the base of the unisql error taxonomy. Every error surfaced to a
// consumer is one of the typed errors in this file; raw backend errors are
// translated at the adapter boundary and attached as Cause, never passed
// through unwrapped.
type DriverError struct {
	// Code is the machine-readable backend error code when the backend
	// provides one ("23505", "1213", "SQLITE_BUSY", ...).
	Code string

	// Message is the human-readable description.
	Message string

	// Cause is the translated backend-native error, if any.
	Cause error

	// logged is set by the instrumentation wrapper so an error re-thrown
	// through nested layers is not logged twice.
	logged bool
}

func (e *DriverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DriverError) Unwrap() error { return e.Cause }

// ErrorCode returns the machine-readable backend code, or "".
func (e *DriverError) ErrorCode() string { return e.Code }

func (e *DriverError) markLogged()         { e.logged = true }
func (e *DriverError) alreadyLogged() bool { return e.logged }

// ConnectionError reports a failure to establish or keep a backend
// connection, including acquisition attempts on a disconnecting driver.
type ConnectionError struct {
	DriverError
}

// NewConnectionError builds a ConnectionError with an optional cause.
func NewConnectionError(msg string, cause error) *ConnectionError {
	return &ConnectionError{DriverError{Message: msg, Cause: cause}}
}

// QueryError reports a failed statement execution. Query and Params are
// attached for diagnostics.
type QueryError struct {
	DriverError
	Query  string
	Params []any
}

// NewQueryError builds a QueryError carrying the failed statement.
func NewQueryError(msg string, cause error, query string, params []any) *QueryError {
	return &QueryError{DriverError: DriverError{Message: msg, Cause: cause}, Query: query, Params: params}
}

// UniqueConstraintError reports a write that violated a unique index.
// Constraint, Table and Columns are populated when the backend exposes them.
type UniqueConstraintError struct {
	DriverError
	Constraint string
	Table      string
	Columns    []string
}

// ForeignKeyError reports a write that violated a foreign-key constraint.
type ForeignKeyError struct {
	DriverError
	Constraint string
	Table      string
}

// TransactionError reports a failure in transaction control itself
// (begin, commit, savepoint management) as opposed to a failure of a
// statement executed inside the transaction.
type TransactionError struct {
	DriverError
}

// NewTransactionError builds a TransactionError with an optional cause.
func NewTransactionError(msg string, cause error) *TransactionError {
	return &TransactionError{DriverError{Message: msg, Cause: cause}}
}

// FeatureNotSupportedError reports that a backend cannot provide a requested
// feature (interactive transactions on stateless HTTP backends, optional
// extensions that are not enabled, ...). Suggestion, when set, names a
// workaround.
type FeatureNotSupportedError struct {
	DriverError
	Feature    string
	Method     string
	Suggestion string
}

// NewFeatureNotSupportedError builds a FeatureNotSupportedError.
func NewFeatureNotSupportedError(feature, method, suggestion string) *FeatureNotSupportedError {
	msg := fmt.Sprintf("%s are not supported by this backend (%s)", feature, method)
	if suggestion != "" {
		msg += ": " + suggestion
	}
	return &FeatureNotSupportedError{
		DriverError: DriverError{Message: msg},
		Feature:     feature,
		Method:      method,
		Suggestion:  suggestion,
	}
}

// IsConnectionError reports whether err is (or wraps) a ConnectionError.
func IsConnectionError(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// IsQueryError reports whether err is (or wraps) a QueryError.
func IsQueryError(err error) bool {
	var target *QueryError
	return errors.As(err, &target)
}

// IsUniqueConstraintError reports whether err is (or wraps) a
// UniqueConstraintError.
func IsUniqueConstraintError(err error) bool {
	var target *UniqueConstraintError
	return errors.As(err, &target)
}

// IsForeignKeyError reports whether err is (or wraps) a ForeignKeyError.
func IsForeignKeyError(err error) bool {
	var target *ForeignKeyError
	return errors.As(err, &target)
}

// IsTransactionError reports whether err is (or wraps) a TransactionError.
func IsTransactionError(err error) bool {
	var target *TransactionError
	return errors.As(err, &target)
}

// IsFeatureNotSupportedError reports whether err is (or wraps) a
// FeatureNotSupportedError.
func IsFeatureNotSupportedError(err error) bool {
	var target *FeatureNotSupportedError
	return errors.As(err, &target)
}

// ErrorCode extracts the machine-readable backend code from any taxonomy
// error in err's chain, or returns "".
func ErrorCode(err error) string {
	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

// retryableCodes is the small, central set of backend error codes eligible
// for a retry. Retry-eligibility is decided by code, not error class: a
// QueryError can be retryable (serialization failure) or not (syntax error)
// depending on the underlying code.
var retryableCodes = map[string]struct{}{
	"40001":         {}, // postgres serialization_failure
	"40P01":         {}, // postgres deadlock_detected
	"1213":          {}, // mysql ER_LOCK_DEADLOCK
	"1205":          {}, // mysql ER_LOCK_WAIT_TIMEOUT
	"SQLITE_BUSY":   {}, // sqlite database is busy
	"SQLITE_LOCKED": {}, // sqlite database table is locked
	"429":           {}, // edge HTTP: rate limited
	"503":           {}, // edge HTTP: service unavailable
}

// IsRetryable reports whether the operation that produced err may be retried
// safely. It matches the central retryable-code set against the error's
// backend code.
func IsRetryable(err error) bool {
	code := ErrorCode(err)
	if code == "" {
		return false
	}
	_, ok := retryableCodes[code]
	return ok
}

type loggable interface {
	markLogged()
	alreadyLogged() bool
}

// markErrorLogged flags err so nested instrumentation layers skip logging
// it again. It reports whether err had already been flagged.
func markErrorLogged(err error) bool {
	var target loggable
	if !errors.As(err, &target) {
		return false
	}
	if target.alreadyLogged() {
		return true
	}
	target.markLogged()
	return false
}
