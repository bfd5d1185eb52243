package driver

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		dialect Dialect
		want    string
	}{
		{
			name:    "postgres numbered placeholders",
			sql:     "SELECT * FROM users WHERE id = ? AND active = ?",
			dialect: DialectPostgres,
			want:    "SELECT * FROM users WHERE id = $1 AND active = $2",
		},
		{
			name:    "postgres no placeholders",
			sql:     "SELECT 1",
			dialect: DialectPostgres,
			want:    "SELECT 1",
		},
		{
			name:    "mysql passthrough",
			sql:     "SELECT * FROM users WHERE id = ?",
			dialect: DialectMySQL,
			want:    "SELECT * FROM users WHERE id = ?",
		},
		{
			name:    "sqlite passthrough",
			sql:     "INSERT INTO t VALUES (?, ?)",
			dialect: DialectSQLite,
			want:    "INSERT INTO t VALUES (?, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.sql, tt.dialect); got != tt.want {
				t.Errorf("Render(%q, %s) = %q, want %q", tt.sql, tt.dialect, got, tt.want)
			}
		})
	}
}

func TestRenderIsStableAcrossCalls(t *testing.T) {
	sql := "UPDATE t SET a = ?, b = ? WHERE id = ?"
	first := Render(sql, DialectPostgres)
	second := Render(sql, DialectPostgres)
	if first != second {
		t.Errorf("repeated renders differ: %q vs %q", first, second)
	}
	if want := "UPDATE t SET a = $1, b = $2 WHERE id = $3"; first != want {
		t.Errorf("Render = %q, want %q", first, want)
	}
}

func TestReturnsRows(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT * FROM users", true},
		{"  select id from t", true},
		{"WITH cte AS (SELECT 1) SELECT * FROM cte", true},
		{"INSERT INTO t VALUES (1)", false},
		{"INSERT INTO t VALUES (1) RETURNING id", true},
		{"UPDATE t SET a = 1", false},
		{"UPDATE t SET a = 1 RETURNING *", true},
		{"DELETE FROM t WHERE id = 1", false},
		{"-- leading comment\nSELECT 1", true},
		{"CREATE TABLE returning_log (id INT)", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ReturnsRows(tt.sql); got != tt.want {
			t.Errorf("ReturnsRows(%q) = %v, want %v", tt.sql, got, tt.want)
		}
	}
}
