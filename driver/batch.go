package driver

import (
	"context"
	"fmt"
)

// ExecuteBatch runs an ordered list of independent statements and returns
// one result per input query, in order. The execution strategy is chosen by
// backend capability, strongest first:
//
//  1. Native atomic batch, when the backend has one. All-or-nothing.
//  2. One new transaction wrapping sequential execution. Atomic by virtue
//     of the transaction.
//  3. Best-effort sequential execution, with a structured warning that a
//     partial failure leaves prior writes committed. A deliberate, visible
//     degradation, never a silent one.
//
// Empty input returns an empty result list without touching the backend.
func (d *Driver) ExecuteBatch(ctx context.Context, queries []BatchQuery) ([]*Result, error) {
	if len(queries) == 0 {
		return []*Result{}, nil
	}

	rendered := make([]BatchQuery, len(queries))
	for i, q := range queries {
		rendered[i] = BatchQuery{SQL: Render(q.SQL, d.adapter.Dialect()), Params: q.Params}
	}

	caps := d.adapter.Capabilities()

	var results []*Result
	err := d.observeErr(ctx, "batch", func(ctx context.Context) error {
		var err error
		switch {
		case caps.Batch:
			results, err = d.nativeBatch(ctx, rendered)
		case caps.Transactions:
			results, err = d.transactionalBatch(ctx, rendered)
		default:
			results, err = d.sequentialBatch(ctx, rendered)
		}
		return err
	})
	return results, err
}

// nativeBatch delegates to the backend's atomic batch primitive.
func (d *Driver) nativeBatch(ctx context.Context, queries []BatchQuery) ([]*Result, error) {
	conn, err := d.getClient(ctx)
	if err != nil {
		return nil, err
	}

	batcher, ok := conn.(Batcher)
	if !ok {
		// An adapter advertising Batch must hand out batching connections.
		return nil, NewFeatureNotSupportedError(
			"native batches", "ExecuteBatch",
			fmt.Sprintf("adapter %q declares batch support but its connection does not implement it", d.adapter.Name()),
		)
	}

	results, err := batcher.ExecuteBatch(ctx, queries)
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		results[i] = d.parsers.parse("", nil, res)
	}
	return results, nil
}

// transactionalBatch wraps the whole batch in one new transaction and
// executes the queries sequentially inside it.
func (d *Driver) transactionalBatch(ctx context.Context, queries []BatchQuery) ([]*Result, error) {
	results := make([]*Result, 0, len(queries))
	err := d.Transaction(ctx, func(tx Client) error {
		for _, q := range queries {
			res, err := tx.ExecuteRaw(ctx, q.SQL, q.Params...)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// sequentialBatch executes the queries one by one with no atomicity. A
// failure at index K returns the K results already produced along with the
// error; statements after K are never attempted.
func (d *Driver) sequentialBatch(ctx context.Context, queries []BatchQuery) ([]*Result, error) {
	d.logger.Warn("executing batch without atomicity; a partial failure leaves prior writes committed", nil, map[string]interface{}{
		"driver":     d.adapter.Name(),
		"dialect":    string(d.adapter.Dialect()),
		"statements": len(queries),
	})

	conn, err := d.getClient(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(queries))
	for i, q := range queries {
		res, err := conn.Execute(ctx, q.SQL, q.Params)
		if err != nil {
			if !markErrorLogged(err) {
				d.logger.Error("non-atomic batch failed partway; earlier statements remain committed", err, map[string]interface{}{
					"driver":    d.adapter.Name(),
					"failed_at": i,
					"executed":  len(results),
				})
			}
			return results, err
		}
		results = append(results, d.parsers.parse("", nil, res))
	}
	return results, nil
}
