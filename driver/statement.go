package driver

import (
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
)

// renderCache memoizes rendered fragments per (dialect, sql) pair. Placeholder
// rendering is a pure function of its inputs, so repeated statements (the
// common case for a query compiler upstream) hit the cache.
var renderCache sync.Map

// Render converts the neutral `?` placeholder syntax into the dialect's
// native one: `$1,$2,...` for the Postgres family, `?` unchanged for
// MySQL and SQLite.
func Render(sql string, dialect Dialect) string {
	if dialect != DialectPostgres {
		return sql
	}

	key := string(dialect) + "\x00" + sql
	if cached, ok := renderCache.Load(key); ok {
		return cached.(string)
	}

	rendered := sqlx.Rebind(sqlx.DOLLAR, sql)
	renderCache.Store(key, rendered)
	return rendered
}

// ReturnsRows classifies a statement by shape: a leading SELECT or WITH, or
// the presence of a RETURNING clause, means the statement produces rows and
// its RowCount is the number of rows returned. Everything else is a write
// whose RowCount is the number of rows affected. Adapters use this to pick
// the query or exec path of their backend client.
func ReturnsRows(sql string) bool {
	trimmed := strings.TrimSpace(sql)

	// Skip leading line comments so "-- note\nSELECT ..." classifies right.
	for strings.HasPrefix(trimmed, "--") {
		idx := strings.IndexByte(trimmed, '\n')
		if idx < 0 {
			return false
		}
		trimmed = strings.TrimSpace(trimmed[idx+1:])
	}

	if len(trimmed) >= 6 && strings.EqualFold(trimmed[:6], "SELECT") {
		return true
	}
	if len(trimmed) >= 4 && strings.EqualFold(trimmed[:4], "WITH") {
		return true
	}

	return containsKeyword(trimmed, "RETURNING")
}

// containsKeyword reports whether sql contains the keyword as a standalone
// word, case-insensitively.
func containsKeyword(sql, keyword string) bool {
	upper := strings.ToUpper(sql)
	offset := 0
	for {
		idx := strings.Index(upper[offset:], keyword)
		if idx < 0 {
			return false
		}
		idx += offset
		before := idx == 0 || !isWordChar(upper[idx-1])
		afterIdx := idx + len(keyword)
		after := afterIdx >= len(upper) || !isWordChar(upper[afterIdx])
		if before && after {
			return true
		}
		offset = afterIdx
	}
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
