package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/schemagraph/schema"
)

func TestResolvers(t *testing.T) {
	str := schema.New(schema.TypeString)
	nullableStr := schema.New(schema.TypeString | schema.TypeNull)
	object := &schema.Schema{Type: schema.TypeObject, Title: "thing"}
	object.SetProperty("a", str)

	tests := []struct {
		name     string
		node     *schema.Schema
		nullable bool
		ts       string
		goType   string
	}{
		{"string", str, false, "string", "string"},
		{"nullable string", str, true, "string | null", "*string"},
		{"date-time", &schema.Schema{Type: schema.TypeString, Format: schema.FormatDateTime}, false, "Date", "time.Time"},
		{"byte", &schema.Schema{Type: schema.TypeString, Format: schema.FormatByte}, false, "string", "[]byte"},
		{"int32", &schema.Schema{Type: schema.TypeInteger, Format: schema.FormatInteger}, false, "number", "int32"},
		{"integer", schema.New(schema.TypeInteger), false, "number", "int64"},
		{"float", &schema.Schema{Type: schema.TypeNumber, Format: schema.FormatFloat}, false, "number", "float32"},
		{"number", schema.New(schema.TypeNumber), false, "number", "float64"},
		{"boolean", schema.New(schema.TypeBoolean), false, "boolean", "bool"},
		{"file", schema.New(schema.TypeFile), false, "any", "[]byte"},
		{"array", &schema.Schema{Type: schema.TypeArray, Item: str}, false, "string[]", "[]string"},
		{"nullable array", &schema.Schema{Type: schema.TypeArray, Item: str}, true, "string[] | null", "[]string"},
		{"array of nullable", &schema.Schema{Type: schema.TypeArray, Item: nullableStr}, false, "(string | null)[]", "[]*string"},
		{"array of anything", schema.New(schema.TypeArray), false, "any[]", "[]any"},
		{"dictionary", &schema.Schema{Type: schema.TypeObject, AdditionalPropertiesSchema: schema.New(schema.TypeInteger)}, false,
			"{ [key: string]: number; }", "map[string]int64"},
		{"any", &schema.Schema{}, true, "any", "any"},
		{"nil", nil, false, "any", "any"},
		{"object", object, false, "Thing", "Thing"},
		{"nullable object", object, true, "Thing | null", "*Thing"},
		{"reference", schema.NewReference(object), false, "Thing", "Thing"},
	}
	ts := NewTypeScriptResolver(NewTypeNameRegistry(nil), true)
	golang := NewGoResolver(NewTypeNameRegistry(nil), true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ts, ts.Resolve(tt.node, tt.nullable, "Hint"))
			assert.Equal(t, tt.goType, golang.Resolve(tt.node, tt.nullable, "Hint"))
		})
	}
	assert.Equal(t, 1, ts.Registry.Len())
}

func TestResolvers_WithoutDates(t *testing.T) {
	dt := &schema.Schema{Type: schema.TypeString, Format: schema.FormatDateTime}
	var r TypeResolver = NewTypeScriptResolver(NewTypeNameRegistry(nil), false)
	assert.Equal(t, "string", r.Resolve(dt, false, ""))
	r = NewGoResolver(NewTypeNameRegistry(nil), false)
	assert.Equal(t, "string", r.Resolve(dt, false, ""))
}

func TestResolvers_AnonymousNames(t *testing.T) {
	reg := NewTypeNameRegistry(nil)
	r := NewGoResolver(reg, true)
	enum := &schema.Schema{Type: schema.TypeString, Enumeration: []any{"a", "b"}}
	item := &schema.Schema{Type: schema.TypeObject}
	item.SetProperty("x", schema.New(schema.TypeString))

	assert.Equal(t, "Mode", r.Resolve(enum, false, "Mode"))
	assert.Equal(t, "[]LinesItem", r.Resolve(&schema.Schema{Type: schema.TypeArray, Item: item}, false, "Lines"))
	assert.Equal(t, 2, reg.Len())
}

func TestPointerTo(t *testing.T) {
	for in, want := range map[string]string{
		"string":         "*string",
		"*string":        "*string",
		"[]int64":        "[]int64",
		"map[string]any": "map[string]any",
		"any":            "any",
		"Pet":            "*Pet",
	} {
		assert.Equal(t, want, pointerTo(in), in)
	}
}
