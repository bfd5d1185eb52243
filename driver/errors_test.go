package driver

import (
	"errors"
	"fmt"
	"testing"
)

// Every typed error must satisfy error through the promoted DriverError
// method, so a value escaping as plain error still formats and unwraps.
var (
	_ error = (*ConnectionError)(nil)
	_ error = (*QueryError)(nil)
	_ error = (*UniqueConstraintError)(nil)
	_ error = (*ForeignKeyError)(nil)
	_ error = (*TransactionError)(nil)
	_ error = (*FeatureNotSupportedError)(nil)
)

func TestTypedErrorsFormatThroughBase(t *testing.T) {
	cause := errors.New("duplicate key value")
	var err error = &UniqueConstraintError{
		DriverError: DriverError{Code: "23505", Message: "unique constraint violation", Cause: cause},
		Constraint:  "users_email_key",
	}
	if got := err.Error(); got != "unique constraint violation: duplicate key value" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap lost the cause")
	}
}

func TestErrorTaxonomyPredicates(t *testing.T) {
	unique := &UniqueConstraintError{
		DriverError: DriverError{Code: "23505", Message: "unique constraint violation"},
		Constraint:  "users_email_key",
		Columns:     []string{"email"},
	}

	if !IsUniqueConstraintError(unique) {
		t.Error("IsUniqueConstraintError failed on a direct value")
	}
	wrapped := fmt.Errorf("creating user: %w", unique)
	if !IsUniqueConstraintError(wrapped) {
		t.Error("IsUniqueConstraintError failed on a wrapped value")
	}
	if IsForeignKeyError(unique) {
		t.Error("unique violation misclassified as foreign key")
	}

	var target *UniqueConstraintError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As failed")
	}
	if target.Constraint != "users_email_key" || len(target.Columns) != 1 {
		t.Errorf("constraint details lost: %+v", target)
	}
}

func TestErrorCodeExtraction(t *testing.T) {
	qe := NewQueryError("query failed", errors.New("backend says no"), "SELECT 1", nil)
	qe.Code = "40001"

	if got := ErrorCode(qe); got != "40001" {
		t.Errorf("ErrorCode = %q, want 40001", got)
	}
	if got := ErrorCode(fmt.Errorf("outer: %w", qe)); got != "40001" {
		t.Errorf("ErrorCode through wrap = %q, want 40001", got)
	}
	if got := ErrorCode(errors.New("plain")); got != "" {
		t.Errorf("ErrorCode on plain error = %q, want empty", got)
	}
	if got := ErrorCode(nil); got != "" {
		t.Errorf("ErrorCode(nil) = %q, want empty", got)
	}
}

func TestIsRetryable(t *testing.T) {
	retryable := []string{"40001", "40P01", "1213", "1205", "SQLITE_BUSY", "SQLITE_LOCKED", "429", "503"}
	for _, code := range retryable {
		qe := NewQueryError("query failed", nil, "SELECT 1", nil)
		qe.Code = code
		if !IsRetryable(qe) {
			t.Errorf("code %s should be retryable", code)
		}
	}

	syntax := NewQueryError("query failed", nil, "SELEC 1", nil)
	syntax.Code = "42601"
	if IsRetryable(syntax) {
		t.Error("syntax error must not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("uncoded error must not be retryable")
	}
	if IsRetryable(nil) {
		t.Error("nil must not be retryable")
	}
}

func TestErrorUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("tcp reset")
	ce := NewConnectionError("postgres connection failed", cause)
	if !errors.Is(ce, cause) {
		t.Error("cause lost through the taxonomy wrapper")
	}
}

func TestMarkErrorLoggedSuppressesSecondLog(t *testing.T) {
	qe := NewQueryError("query failed", nil, "SELECT 1", nil)

	if markErrorLogged(qe) {
		t.Error("first mark must report not-yet-logged")
	}
	if !markErrorLogged(qe) {
		t.Error("second mark must report already-logged")
	}
	// Wrapping does not reset the flag.
	if !markErrorLogged(fmt.Errorf("outer: %w", qe)) {
		t.Error("flag must survive wrapping")
	}

	if markErrorLogged(errors.New("plain")) {
		t.Error("plain errors are never flagged, so never suppressed")
	}
}

func TestFeatureNotSupportedErrorMessage(t *testing.T) {
	err := NewFeatureNotSupportedError("transactions", "Transaction", "execute statements individually")
	if err.Feature != "transactions" || err.Method != "Transaction" {
		t.Errorf("fields lost: %+v", err)
	}
	msg := err.Error()
	if msg == "" || !IsFeatureNotSupportedError(err) {
		t.Errorf("unexpected error shape: %q", msg)
	}
}
