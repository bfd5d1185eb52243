package sqlite

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/unisql/unisql/driver"
)

// Parser normalizes SQLite's loose result encodings into the canonical
// shape: booleans arrive as 0/1 integers, 64-bit counts on text-affinity
// columns arrive as strings, and relation payloads arrive as JSON-serialized
// text. Values that do not match the expected encoding fall through
// untouched.
type Parser struct {
	driver.PassthroughParser
}

var _ driver.ResultParser = (*Parser)(nil)

// NewParser creates the SQLite result parser. Wire it into the driver with
// driver.WithResultParsers.
func NewParser() *Parser {
	return &Parser{}
}

// ParseField coerces 0/1 integers on declared boolean fields to bool and
// string-encoded counts on declared bigint fields to int64.
func (p *Parser) ParseField(field driver.Field, value any, next driver.FieldHook) any {
	switch field.Type {
	case driver.FieldTypeBoolean:
		switch v := value.(type) {
		case int64:
			if v == 0 || v == 1 {
				return v == 1
			}
		case int:
			if v == 0 || v == 1 {
				return v == 1
			}
		}
	case driver.FieldTypeBigInt:
		if s, ok := value.(string); ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
		}
	}
	return next(field, value)
}

// ParseRelation decodes JSON-serialized relation text into structured
// values. Non-JSON text falls through to the next parser.
func (p *Parser) ParseRelation(value any, next driver.RelationHook) any {
	s, ok := value.(string)
	if !ok {
		return next(value)
	}

	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return next(value)
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return next(value)
	}
	return decoded
}
