package driver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// fakeBatchAdapter hands out connections with a native batch primitive.
type fakeBatchAdapter struct {
	*fakeAdapter
}

func (a *fakeBatchAdapter) Connect(ctx context.Context) (Conn, error) {
	conn, err := a.fakeAdapter.Connect(ctx)
	if err != nil {
		return nil, err
	}
	bc := &fakeBatchConn{fakeConn: conn.(*fakeConn)}
	a.mu.Lock()
	a.batchConns = append(a.batchConns, bc)
	a.mu.Unlock()
	return bc, nil
}

type fakeBatchConn struct {
	*fakeConn

	mu      sync.Mutex
	batches [][]BatchQuery
}

func (c *fakeBatchConn) ExecuteBatch(ctx context.Context, queries []BatchQuery) ([]*Result, error) {
	c.mu.Lock()
	c.batches = append(c.batches, queries)
	c.mu.Unlock()

	results := make([]*Result, len(queries))
	for i := range queries {
		results[i] = &Result{RowCount: 1}
	}
	return results, nil
}

func TestExecuteBatchEmptyInput(t *testing.T) {
	adapter := newFakeAdapter()
	d := New(adapter)

	results, err := d.ExecuteBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("empty batch failed: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil result list, got %v", results)
	}
	if adapter.connectCount() != 0 {
		t.Errorf("empty batch must not touch the backend, got %d connects", adapter.connectCount())
	}
}

func TestExecuteBatchNativeTier(t *testing.T) {
	base := newFakeAdapter()
	base.caps = Capabilities{Transactions: true, Batch: true}
	adapter := &fakeBatchAdapter{fakeAdapter: base}
	d := New(adapter)

	queries := []BatchQuery{
		{SQL: "INSERT INTO t VALUES (?)", Params: []any{1}},
		{SQL: "INSERT INTO t VALUES (?)", Params: []any{2}},
	}
	results, err := d.ExecuteBatch(context.Background(), queries)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	base.mu.Lock()
	conn := base.batchConns[len(base.batchConns)-1]
	base.mu.Unlock()
	if len(conn.batches) != 1 {
		t.Fatalf("expected 1 native batch call, got %d", len(conn.batches))
	}
	if conn.begins != 0 {
		t.Errorf("native tier must not open its own transaction, got %d begins", conn.begins)
	}
}

func TestExecuteBatchNativeTierRequiresBatcher(t *testing.T) {
	// The adapter lies: it advertises batch support but its connection has
	// no batch primitive.
	adapter := newFakeAdapter()
	adapter.caps = Capabilities{Transactions: true, Batch: true}
	d := New(adapter)

	_, err := d.ExecuteBatch(context.Background(), []BatchQuery{{SQL: "SELECT 1"}})
	if !IsFeatureNotSupportedError(err) {
		t.Fatalf("expected FeatureNotSupportedError, got %v", err)
	}
}

func TestExecuteBatchTransactionalTier(t *testing.T) {
	adapter := newFakeAdapter()
	d := New(adapter)

	queries := []BatchQuery{
		{SQL: "INSERT INTO t VALUES (?)", Params: []any{1}},
		{SQL: "INSERT INTO t VALUES (?)", Params: []any{2}},
	}
	results, err := d.ExecuteBatch(context.Background(), queries)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	conn := adapter.lastConn()
	if conn.begins != 1 {
		t.Errorf("expected 1 wrapping transaction, got %d begins", conn.begins)
	}
}

func TestExecuteBatchTransactionalTierRollsBackAll(t *testing.T) {
	adapter := newFakeAdapter()
	d := New(adapter)
	boom := errors.New("constraint violation")

	// Pre-connect so the failure can be scripted on the live connection.
	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	adapter.lastConn().failWith("VALUES (2)", boom)

	queries := []BatchQuery{
		{SQL: "INSERT INTO t VALUES (1)"},
		{SQL: "INSERT INTO t VALUES (2)"},
		{SQL: "INSERT INTO t VALUES (3)"},
	}
	results, err := d.ExecuteBatch(context.Background(), queries)
	if !errors.Is(err, boom) {
		t.Fatalf("expected scripted failure, got %v", err)
	}
	if results != nil {
		t.Errorf("atomic batch failure must return no results, got %v", results)
	}

	stmts := adapter.lastConn().statements()
	for _, stmt := range stmts {
		if strings.Contains(stmt, "VALUES (3)") {
			t.Error("statement after the failure must never be attempted")
		}
	}
}

func TestExecuteBatchSequentialTierPartialFailure(t *testing.T) {
	adapter := newFakeAdapter()
	adapter.caps = Capabilities{}
	logger := &recordingLogger{}
	d := New(adapter, WithLogger(logger))
	boom := errors.New("constraint violation")

	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	adapter.lastConn().failWith("VALUES (2)", boom)

	queries := []BatchQuery{
		{SQL: "INSERT INTO t VALUES (1)"},
		{SQL: "INSERT INTO t VALUES (2)"},
		{SQL: "INSERT INTO t VALUES (3)"},
	}
	results, err := d.ExecuteBatch(context.Background(), queries)
	if !errors.Is(err, boom) {
		t.Fatalf("expected scripted failure, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected the 1 result produced before the failure, got %d", len(results))
	}

	for _, stmt := range adapter.lastConn().statements() {
		if strings.Contains(stmt, "VALUES (3)") {
			t.Error("statement after the failure must never be attempted")
		}
	}
	if logger.warnCount() == 0 {
		t.Error("sequential tier must warn about missing atomicity")
	}
}

func TestExecuteBatchInsideTransactionUsesBoundHandle(t *testing.T) {
	adapter := newFakeAdapter()
	d := New(adapter)

	err := d.Transaction(context.Background(), func(tx Client) error {
		results, err := tx.ExecuteBatch(context.Background(), []BatchQuery{
			{SQL: "INSERT INTO t VALUES (1)"},
			{SQL: "INSERT INTO t VALUES (2)"},
		})
		if err != nil {
			return err
		}
		if len(results) != 2 {
			t.Errorf("expected 2 results, got %d", len(results))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	if adapter.lastConn().begins != 1 {
		t.Errorf("batch inside a transaction must not open another one, got %d begins", adapter.lastConn().begins)
	}
}
