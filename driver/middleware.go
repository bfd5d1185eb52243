package driver

// FieldType declares how a result field is typed by the upstream model, so
// the result-parser middleware can coerce backend-specific encodings.
type FieldType string

const (
	// FieldTypeBoolean marks a field some embedded engines store as a 0/1
	// integer.
	FieldTypeBoolean FieldType = "boolean"

	// FieldTypeRelation marks a field some embedded engines return as
	// JSON-serialized text instead of structured values.
	FieldTypeRelation FieldType = "relation"

	// FieldTypeBigInt marks a 64-bit count field that some engines return
	// as text; parsers collapse it to a plain int64.
	FieldTypeBigInt FieldType = "bigint"
)

// Field declares the name and type of one result field.
type Field struct {
	Name string
	Type FieldType
}

// ResultHook, RelationHook and FieldHook are the continuations a
// ResultParser calls to fall through to the next parser in the chain. The
// chain ends in a terminal identity no-op, so calling next is always safe.
type (
	ResultHook   func(operation string, res *Result) *Result
	RelationHook func(value any) any
	FieldHook    func(field Field, value any) any
)

// ResultParser normalizes backend-specific raw results into the canonical
// shape. Implementations must be no-op pass-throughs when a hook does not
// apply: never fail on unexpected shapes, just defer to next.
type ResultParser interface {
	// ParseResult normalizes an aggregate result, e.g. a backend-native
	// 64-bit count collapsed to a plain integer for count/exists
	// operations. operation is the observability operation name attached
	// to the context, or "".
	ParseResult(operation string, res *Result, next ResultHook) *Result

	// ParseRelation normalizes a relation payload, e.g. JSON-serialized
	// joined rows returned as text by embedded engines.
	ParseRelation(value any, next RelationHook) any

	// ParseField normalizes one field value given its declared type, e.g.
	// 0/1 integers for boolean fields.
	ParseField(field Field, value any, next FieldHook) any
}

// PassthroughParser implements ResultParser by deferring every hook to the
// next parser. Embed it to override only the hooks an adapter needs.
type PassthroughParser struct{}

func (PassthroughParser) ParseResult(operation string, res *Result, next ResultHook) *Result {
	return next(operation, res)
}

func (PassthroughParser) ParseRelation(value any, next RelationHook) any {
	return next(value)
}

func (PassthroughParser) ParseField(field Field, value any, next FieldHook) any {
	return next(field, value)
}

// parserChain is an explicit ordered middleware list with a defined terminal
// no-op at the end.
type parserChain struct {
	parsers []ResultParser
}

func newParserChain(parsers []ResultParser) *parserChain {
	return &parserChain{parsers: parsers}
}

func (c *parserChain) empty() bool {
	return c == nil || len(c.parsers) == 0
}

func (c *parserChain) applyResult(operation string, res *Result) *Result {
	next := func(_ string, r *Result) *Result { return r }
	for i := len(c.parsers) - 1; i >= 0; i-- {
		parser, tail := c.parsers[i], next
		next = func(op string, r *Result) *Result {
			return parser.ParseResult(op, r, tail)
		}
	}
	return next(operation, res)
}

func (c *parserChain) applyRelation(value any) any {
	next := func(v any) any { return v }
	for i := len(c.parsers) - 1; i >= 0; i-- {
		parser, tail := c.parsers[i], next
		next = func(v any) any {
			return parser.ParseRelation(v, tail)
		}
	}
	return next(value)
}

func (c *parserChain) applyField(field Field, value any) any {
	next := func(_ Field, v any) any { return v }
	for i := len(c.parsers) - 1; i >= 0; i-- {
		parser, tail := c.parsers[i], next
		next = func(f Field, v any) any {
			return parser.ParseField(f, v, tail)
		}
	}
	return next(field, value)
}

// parse runs the configured chain over a result: the result-level hook
// first, then the field- and relation-level hooks for every declared field
// present in the rows. Without declared fields only the result-level hook
// applies.
func (c *parserChain) parse(operation string, fields []Field, res *Result) *Result {
	if c.empty() || res == nil {
		return res
	}

	res = c.applyResult(operation, res)

	if len(fields) == 0 || len(res.Rows) == 0 {
		return res
	}

	for _, row := range res.Rows {
		for _, field := range fields {
			value, ok := row[field.Name]
			if !ok {
				continue
			}
			if field.Type == FieldTypeRelation {
				row[field.Name] = c.applyRelation(value)
				continue
			}
			row[field.Name] = c.applyField(field, value)
		}
	}

	return res
}
