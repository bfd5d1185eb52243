package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/unisql/unisql/driver"
)

func newTestDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d := driver.New(
		NewAdapter(Config{Path: ":memory:"}),
		driver.WithResultParsers(NewParser()),
	)
	t.Cleanup(func() {
		_ = d.Disconnect(context.Background())
	})
	return d
}

func mustExec(t *testing.T, d *driver.Driver, sql string, params ...any) {
	t.Helper()
	if _, err := d.ExecuteRaw(context.Background(), sql, params...); err != nil {
		t.Fatalf("exec %q failed: %v", sql, err)
	}
}

func TestExecuteRoundTrip(t *testing.T) {
	d := newTestDriver(t)
	ctx := context.Background()

	mustExec(t, d, "CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT UNIQUE, active INTEGER)")
	mustExec(t, d, "INSERT INTO users (email, active) VALUES (?, ?)", "a@example.com", 1)
	mustExec(t, d, "INSERT INTO users (email, active) VALUES (?, ?)", "b@example.com", 0)

	res, err := d.Execute(ctx, driver.Statement{
		SQL:    "SELECT id, email, active FROM users ORDER BY id",
		Fields: []driver.Field{{Name: "active", Type: driver.FieldTypeBoolean}},
	})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if res.RowCount != 2 || len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", res.RowCount)
	}
	if res.Rows[0]["active"] != true {
		t.Errorf("expected parsed boolean true, got %v (%T)", res.Rows[0]["active"], res.Rows[0]["active"])
	}
	if res.Rows[1]["active"] != false {
		t.Errorf("expected parsed boolean false, got %v (%T)", res.Rows[1]["active"], res.Rows[1]["active"])
	}
}

func TestWriteReportsRowsAffected(t *testing.T) {
	d := newTestDriver(t)

	mustExec(t, d, "CREATE TABLE t (n INTEGER)")
	mustExec(t, d, "INSERT INTO t VALUES (1), (2), (3)")

	res, err := d.ExecuteRaw(context.Background(), "UPDATE t SET n = n + 1 WHERE n > ?", 1)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if res.RowCount != 2 {
		t.Errorf("expected 2 rows affected, got %d", res.RowCount)
	}
}

func TestUniqueConstraintTranslation(t *testing.T) {
	d := newTestDriver(t)

	mustExec(t, d, "CREATE TABLE users (email TEXT PRIMARY KEY)")
	mustExec(t, d, "INSERT INTO users VALUES (?)", "a@example.com")

	_, err := d.ExecuteRaw(context.Background(), "INSERT INTO users VALUES (?)", "a@example.com")
	if !driver.IsUniqueConstraintError(err) {
		t.Fatalf("expected UniqueConstraintError, got %v", err)
	}

	var unique *driver.UniqueConstraintError
	if !errors.As(err, &unique) {
		t.Fatal("errors.As failed")
	}
	if len(unique.Columns) != 1 || unique.Columns[0] != "email" {
		t.Errorf("expected column [email], got %v", unique.Columns)
	}
}

func TestForeignKeyTranslation(t *testing.T) {
	d := driver.New(NewAdapter(Config{Path: ":memory:", ForeignKeys: true}))
	defer d.Disconnect(context.Background())
	ctx := context.Background()

	if _, err := d.ExecuteRaw(ctx, "CREATE TABLE parents (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := d.ExecuteRaw(ctx, "CREATE TABLE children (parent_id INTEGER REFERENCES parents(id))"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := d.ExecuteRaw(ctx, "INSERT INTO children VALUES (?)", 42)
	if !driver.IsForeignKeyError(err) {
		t.Fatalf("expected ForeignKeyError, got %v", err)
	}
}

func TestTransactionRollback(t *testing.T) {
	d := newTestDriver(t)
	ctx := context.Background()
	boom := errors.New("abort")

	mustExec(t, d, "CREATE TABLE t (n INTEGER)")

	err := d.Transaction(ctx, func(tx driver.Client) error {
		if _, err := tx.ExecuteRaw(ctx, "INSERT INTO t VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	res, err := d.ExecuteRaw(ctx, "SELECT COUNT(*) AS c FROM t")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if c := res.Rows[0]["c"]; c != int64(0) {
		t.Errorf("expected rollback to discard the insert, count = %v", c)
	}
}

func TestNestedTransactionPartialRollback(t *testing.T) {
	d := newTestDriver(t)
	ctx := context.Background()
	boom := errors.New("inner abort")

	mustExec(t, d, "CREATE TABLE t (label TEXT)")

	err := d.Transaction(ctx, func(tx driver.Client) error {
		if _, err := tx.ExecuteRaw(ctx, "INSERT INTO t VALUES ('outer')"); err != nil {
			return err
		}
		innerErr := tx.Transaction(ctx, func(inner driver.Client) error {
			if _, err := inner.ExecuteRaw(ctx, "INSERT INTO t VALUES ('inner')"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(innerErr, boom) {
			t.Errorf("expected inner error, got %v", innerErr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("outer transaction failed: %v", err)
	}

	res, err := d.ExecuteRaw(ctx, "SELECT label FROM t ORDER BY label")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if res.RowCount != 1 || res.Rows[0]["label"] != "outer" {
		t.Errorf("expected only the outer insert to survive, got %v", res.Rows)
	}
}

func TestExecuteBatchTransactionalFallback(t *testing.T) {
	d := newTestDriver(t)
	ctx := context.Background()

	mustExec(t, d, "CREATE TABLE t (n INTEGER UNIQUE)")

	// A mid-batch failure rolls everything back: the transactional tier
	// wraps the whole batch.
	_, err := d.ExecuteBatch(ctx, []driver.BatchQuery{
		{SQL: "INSERT INTO t VALUES (?)", Params: []any{1}},
		{SQL: "INSERT INTO t VALUES (?)", Params: []any{1}},
		{SQL: "INSERT INTO t VALUES (?)", Params: []any{2}},
	})
	if !driver.IsUniqueConstraintError(err) {
		t.Fatalf("expected UniqueConstraintError, got %v", err)
	}

	res, err := d.ExecuteRaw(ctx, "SELECT COUNT(*) AS c FROM t")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if c := res.Rows[0]["c"]; c != int64(0) {
		t.Errorf("expected full rollback, count = %v", c)
	}
}
