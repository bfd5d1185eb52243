package driver

import "database/sql"

// ScanRows drains a database/sql row set into the canonical Result shape.
// Adapters built on database/sql (MariaDB, SQLite) share it. []byte values
// are copied to string: the underlying drivers reuse scan buffers between
// rows, and SQL text payloads are the common case for this layer.
func ScanRows(rows *sql.Rows) (*Result, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.RowCount = int64(len(res.Rows))
	return res, nil
}
