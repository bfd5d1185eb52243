package sqlite

import (
	"reflect"
	"testing"

	"github.com/unisql/unisql/driver"
)

func terminalField(field driver.Field, value any) any { return value }
func terminalRelation(value any) any                  { return value }

func TestParseFieldBooleanCoercion(t *testing.T) {
	p := NewParser()
	boolField := driver.Field{Name: "active", Type: driver.FieldTypeBoolean}

	if got := p.ParseField(boolField, int64(1), terminalField); got != true {
		t.Errorf("ParseField(1) = %v, want true", got)
	}
	if got := p.ParseField(boolField, int64(0), terminalField); got != false {
		t.Errorf("ParseField(0) = %v, want false", got)
	}
	// Out-of-range integers and non-boolean fields fall through.
	if got := p.ParseField(boolField, int64(7), terminalField); got != int64(7) {
		t.Errorf("ParseField(7) = %v, want 7 untouched", got)
	}
	textField := driver.Field{Name: "note", Type: driver.FieldTypeRelation}
	if got := p.ParseField(textField, int64(1), terminalField); got != int64(1) {
		t.Errorf("non-boolean field mutated: %v", got)
	}
}

func TestParseFieldBigIntCoercion(t *testing.T) {
	p := NewParser()
	countField := driver.Field{Name: "n", Type: driver.FieldTypeBigInt}

	if got := p.ParseField(countField, "9007199254740993", terminalField); got != int64(9007199254740993) {
		t.Errorf("ParseField(string count) = %v (%T), want int64", got, got)
	}
	// Native integers and non-numeric text fall through.
	if got := p.ParseField(countField, int64(42), terminalField); got != int64(42) {
		t.Errorf("native int64 mutated: %v", got)
	}
	if got := p.ParseField(countField, "not a number", terminalField); got != "not a number" {
		t.Errorf("non-numeric text mutated: %v", got)
	}
}

func TestParseRelationDecodesJSON(t *testing.T) {
	p := NewParser()

	got := p.ParseRelation(`[{"id": 1}, {"id": 2}]`, terminalRelation)
	want := []any{
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseRelation = %v, want %v", got, want)
	}

	obj := p.ParseRelation(`{"id": 3}`, terminalRelation)
	if !reflect.DeepEqual(obj, map[string]any{"id": float64(3)}) {
		t.Errorf("ParseRelation object = %v", obj)
	}
}

func TestParseRelationFallsThrough(t *testing.T) {
	p := NewParser()

	if got := p.ParseRelation("plain text", terminalRelation); got != "plain text" {
		t.Errorf("non-JSON text mutated: %v", got)
	}
	if got := p.ParseRelation(`{broken json`, terminalRelation); got != "{broken json" {
		t.Errorf("invalid JSON mutated: %v", got)
	}
	if got := p.ParseRelation(42, terminalRelation); got != 42 {
		t.Errorf("non-string value mutated: %v", got)
	}
}
