package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
)

func compile(t *testing.T, src string) *schema.Schema {
	t.Helper()
	doc, err := schema.Load([]byte(src))
	require.NoError(t, err)
	require.NoError(t, resolver.Resolve(doc))
	return doc.Root
}

func parse(t *testing.T, src string) any {
	t.Helper()
	v, err := ParseInstance([]byte(src))
	require.NoError(t, err)
	return v
}

func validate(t *testing.T, instance any, node *schema.Schema, opts ...Option) []ValidationError {
	t.Helper()
	errs, err := Validate(instance, node, opts...)
	require.NoError(t, err)
	return errs
}

func kinds(errs []ValidationError) []Kind {
	out := make([]Kind, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Kind)
	}
	return out
}

func TestValidate_RequiredProperty(t *testing.T) {
	node := compile(t, `{"properties":{"a":{"type":"string"}},"required":["a"]}`)

	errs := validate(t, parse(t, `{}`), node)
	require.Len(t, errs, 1)
	assert.Equal(t, KindPropertyRequired, errs[0].Kind)
	assert.Equal(t, "a", errs[0].Property)
	assert.Equal(t, "#/a", errs[0].Path)
	assert.Same(t, node, errs[0].Schema)

	assert.Empty(t, validate(t, parse(t, `{"a":"x"}`), node))

	errs = validate(t, parse(t, `{"a":5}`), node)
	require.Len(t, errs, 1)
	assert.Equal(t, KindStringExpected, errs[0].Kind)
	assert.Equal(t, "a", errs[0].Property)
	assert.Equal(t, "#/a", errs[0].Path)
}

func TestValidate_RequiredWithoutDeclaredProperty(t *testing.T) {
	node := compile(t, `{"required":["a"]}`)

	errs := validate(t, parse(t, `{}`), node)
	require.Len(t, errs, 1)
	assert.Equal(t, KindPropertyRequired, errs[0].Kind)
	assert.Equal(t, "#/a", errs[0].Path)

	assert.Empty(t, validate(t, parse(t, `5`), node), "members are only checked on objects")
}

func TestValidate_Composition(t *testing.T) {
	t.Run("oneOf", func(t *testing.T) {
		node := compile(t, `{"oneOf":[{"type":"integer"},{"minimum":0}]}`)

		errs := validate(t, parse(t, `5`), node)
		require.Len(t, errs, 1, "matching both branches")
		assert.Equal(t, KindNotOneOf, errs[0].Kind)
		require.Len(t, errs[0].Errors, 2)
		assert.Empty(t, errs[0].Errors[0].Errors)
		assert.Empty(t, errs[0].Errors[1].Errors)

		assert.Empty(t, validate(t, parse(t, `1.5`), node), "matching only the second branch")

		errs = validate(t, parse(t, `-1.5`), node)
		assert.Equal(t, []Kind{KindNotOneOf}, kinds(errs), "matching no branch")
	})

	t.Run("anyOf", func(t *testing.T) {
		node := compile(t, `{"anyOf":[{"type":"string"},{"type":"boolean"}]}`)
		assert.Empty(t, validate(t, parse(t, `"x"`), node))

		errs := validate(t, parse(t, `5`), node)
		require.Len(t, errs, 1)
		assert.Equal(t, KindNotAnyOf, errs[0].Kind)
		require.Len(t, errs[0].Errors, 2)
		assert.Same(t, node.AnyOf[0], errs[0].Errors[0].Schema)
		assert.Equal(t, []Kind{KindStringExpected}, kinds(errs[0].Errors[0].Errors))
		assert.Equal(t, []Kind{KindBooleanExpected}, kinds(errs[0].Errors[1].Errors))
	})

	t.Run("allOf keeps failing branches", func(t *testing.T) {
		node := compile(t, `{"allOf":[{"type":"string"},{"minLength":3}]}`)
		assert.Empty(t, validate(t, parse(t, `"abc"`), node))

		errs := validate(t, parse(t, `"ab"`), node)
		require.Len(t, errs, 1)
		assert.Equal(t, KindNotAllOf, errs[0].Kind)
		require.Len(t, errs[0].Errors, 1)
		assert.Same(t, node.AllOf[1], errs[0].Errors[0].Schema)
		assert.Equal(t, []Kind{KindStringTooShort}, kinds(errs[0].Errors[0].Errors))
	})

	t.Run("not", func(t *testing.T) {
		node := compile(t, `{"not":{"type":"string"}}`)
		assert.Equal(t, []Kind{KindExcludedSchemaValidates}, kinds(validate(t, parse(t, `"x"`), node)))
		assert.Empty(t, validate(t, parse(t, `5`), node))
	})
}

func TestValidate_Types(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		instance string
		want     []Kind
	}{
		{name: "string", schema: `{"type":"string"}`, instance: `"x"`},
		{name: "string mismatch", schema: `{"type":"string"}`, instance: `true`, want: []Kind{KindStringExpected}},
		{name: "integer literal", schema: `{"type":"integer"}`, instance: `5`},
		{name: "float literal is not an integer", schema: `{"type":"integer"}`, instance: `5.0`, want: []Kind{KindIntegerExpected}},
		{name: "exponent is not an integer", schema: `{"type":"integer"}`, instance: `1e2`, want: []Kind{KindIntegerExpected}},
		{name: "integer is a number", schema: `{"type":"number"}`, instance: `5`},
		{name: "number mismatch", schema: `{"type":"number"}`, instance: `"5"`, want: []Kind{KindNumberExpected}},
		{name: "boolean", schema: `{"type":"boolean"}`, instance: `null`, want: []Kind{KindBooleanExpected}},
		{name: "null", schema: `{"type":"null"}`, instance: `0`, want: []Kind{KindNullExpected}},
		{name: "object", schema: `{"type":"object"}`, instance: `[]`, want: []Kind{KindObjectExpected}},
		{name: "array", schema: `{"type":"array"}`, instance: `{}`, want: []Kind{KindArrayExpected}},
		{name: "any", schema: `{}`, instance: `{"a":[1,"b",null]}`},
		{name: "multiple types match one", schema: `{"type":["string","null"]}`, instance: `null`},
		{name: "multiple types match other", schema: `{"type":["string","null"]}`, instance: `"x"`},
		{name: "multiple types match none", schema: `{"type":["string","null"]}`, instance: `5`, want: []Kind{KindNullExpected, KindStringExpected}},
		{name: "nullable extension", schema: `{"type":"string","x-nullable":true}`, instance: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validate(t, parse(t, tt.instance), compile(t, tt.schema))
			if diff := cmp.Diff(tt.want, kinds(errs), cmpEmpty); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// cmpEmpty treats nil and empty kind lists alike.
var cmpEmpty = cmp.FilterValues(func(a, b []Kind) bool { return len(a) == 0 && len(b) == 0 }, cmp.Ignore())

func TestValidate_GoValues(t *testing.T) {
	node := compile(t, `{
  "type": "object",
  "properties": {
    "count": {"type": "integer"},
    "ratio": {"type": "number", "maximum": 1},
    "tags": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["count"]
}`)

	assert.Empty(t, validate(t, map[string]any{"count": 3, "ratio": 0.5, "tags": []string{"a"}}, node))
	assert.Empty(t, validate(t, map[string]any{"count": float64(3)}, node), "whole floats are integers")

	errs := validate(t, map[string]any{"count": 3.5, "ratio": 2, "tags": []int{1}}, node)
	assert.Equal(t, []Kind{KindIntegerExpected, KindNumberTooBig, KindArrayItemNotValid}, kinds(errs))
}

func TestValidate_Numbers(t *testing.T) {
	node := compile(t, `{"type":"number","minimum":1,"maximum":10,"exclusiveMaximum":true,"multipleOf":0.5}`)

	tests := []struct {
		instance string
		want     []Kind
	}{
		{instance: `1`},
		{instance: `9.5`},
		{instance: `0.5`, want: []Kind{KindNumberTooSmall}},
		{instance: `10`, want: []Kind{KindNumberTooBig}},
		{instance: `2.25`, want: []Kind{KindNumberNotMultipleOf}},
	}
	for _, tt := range tests {
		t.Run(tt.instance, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, kinds(validate(t, parse(t, tt.instance), node)), cmpEmpty); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}

	decimal := compile(t, `{"multipleOf":0.1}`)
	assert.Empty(t, validate(t, parse(t, `0.3`), decimal), "decimal multiples are exact")
	assert.Empty(t, validate(t, 0.3, decimal))
	assert.Equal(t, []Kind{KindNumberNotMultipleOf}, kinds(validate(t, parse(t, `0.35`), decimal)))

	exclusiveMin := compile(t, `{"minimum":0,"exclusiveMinimum":true}`)
	assert.Equal(t, []Kind{KindNumberTooSmall}, kinds(validate(t, parse(t, `0`), exclusiveMin)))
	assert.Empty(t, validate(t, parse(t, `0.001`), exclusiveMin))
}

func TestValidate_Strings(t *testing.T) {
	node := compile(t, `{"type":"string","minLength":2,"maxLength":5,"pattern":"l"}`)

	assert.Empty(t, validate(t, "héllo", node), "lengths count code points")
	assert.Empty(t, validate(t, "xlx", node), "patterns search anywhere")
	assert.Equal(t, []Kind{KindPatternMismatch, KindStringTooShort}, kinds(validate(t, "a", node)))
	assert.Equal(t, []Kind{KindStringTooLong}, kinds(validate(t, "llllll", node)))
}

func TestValidate_InvalidPatternIsSkipped(t *testing.T) {
	node := compile(t, `{"type":"string","pattern":"[unclosed"}`)
	assert.Empty(t, validate(t, "anything", node))
}

func TestValidate_Formats(t *testing.T) {
	tests := []struct {
		format  string
		valid   string
		invalid string
		kind    Kind
	}{
		{format: "date-time", valid: "2024-01-02T03:04:05Z", invalid: "yesterday", kind: KindDateTimeExpected},
		{format: "date-time", valid: "2024-01-02", invalid: "2024-13-02", kind: KindDateTimeExpected},
		{format: "uri", valid: "https://example.com/x", invalid: "/relative", kind: KindURIExpected},
		{format: "email", valid: "a.b@example.com", invalid: "nope", kind: KindEmailExpected},
		{format: "ipv4", valid: "192.168.0.1", invalid: "256.1.1.1", kind: KindIPv4Expected},
		{format: "ipv6", valid: "::1", invalid: "1.2.3.4", kind: KindIPv6Expected},
		{format: "guid", valid: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", invalid: "xyz", kind: KindGUIDExpected},
		{format: "uuid", valid: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", invalid: "6ba7b810", kind: KindGUIDExpected},
		{format: "hostname", valid: "api.example.com", invalid: "-bad-.com", kind: KindHostnameExpected},
		{format: "byte", valid: "aGVsbG8=", invalid: "abc", kind: KindBase64Expected},
		{format: "base64", valid: "", invalid: "a$==", kind: KindBase64Expected},
	}
	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.valid, func(t *testing.T) {
			node := &schema.Schema{Type: schema.TypeString, Format: tt.format}
			assert.Empty(t, validate(t, tt.valid, node))
			assert.Equal(t, []Kind{tt.kind}, kinds(validate(t, tt.invalid, node)))
			assert.Empty(t, validate(t, tt.invalid, node, WithFormatValidation(false)))
		})
	}

	unknown := &schema.Schema{Type: schema.TypeString, Format: "x-custom"}
	assert.Empty(t, validate(t, "anything", unknown))
}

func TestValidate_Enum(t *testing.T) {
	node := compile(t, `{"enum":[1,"a",null,{"k":[1,2]}]}`)

	for _, ok := range []string{`1`, `1.0`, `"1"`, `"a"`, `null`, `{"k":[1,2]}`} {
		assert.Empty(t, validate(t, parse(t, ok), node), ok)
	}
	for _, bad := range []string{`"2"`, `2`, `{"k":[2,1]}`, `true`} {
		assert.Equal(t, []Kind{KindNotInEnumeration}, kinds(validate(t, parse(t, bad), node)), bad)
	}
}

func TestValidate_InvalidOptions(t *testing.T) {
	_, err := Validate("x", &schema.Schema{}, WithLogger(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrConfig)

	_, err = New(WithFormatValidation(false), WithLogger(nil))
	var ce *schemaerrors.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "WithLogger", ce.Option)

	v, err := New(WithPatternCache(nil))
	require.NoError(t, err)
	assert.NotNil(t, v.patterns)
}

func TestValidate_EnumComparesText(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		instance string
		want     []Kind
	}{
		{"string matches integer member", `{"enum":[1,2]}`, `"1"`, []Kind{}},
		{"integer matches string member", `{"enum":["1","2"]}`, `1`, []Kind{}},
		{"null text matches null", `{"enum":["null"]}`, `null`, []Kind{}},
		{"other text rejected", `{"enum":[1,2]}`, `"3"`, []Kind{KindNotInEnumeration}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(validate(t, parse(t, tt.instance), compile(t, tt.schema))))
		})
	}
}

func TestValidate_UniqueItemsComparesText(t *testing.T) {
	node := compile(t, `{"uniqueItems":true}`)

	assert.Equal(t, []Kind{KindItemsNotUnique}, kinds(validate(t, parse(t, `[1,"1"]`), node)))
	assert.Empty(t, validate(t, parse(t, `[1,"2",[1],["1"]]`), node))
}

func TestValidate_AdditionalProperties(t *testing.T) {
	node := compile(t, `{
  "properties": {"id": {"type": "integer"}},
  "patternProperties": {"^x-": {"type": "string"}},
  "additionalProperties": false
}`)

	errs := validate(t, parse(t, `{"id":1,"x-a":"ok","x-b":2,"other":true}`), node)
	require.Len(t, errs, 2)

	assert.Equal(t, KindAdditionalPropertiesNotValid, errs[0].Kind)
	assert.Equal(t, "x-b", errs[0].Property)
	assert.Equal(t, "#/x-b", errs[0].Path)
	require.Len(t, errs[0].Errors, 1)
	assert.Equal(t, []Kind{KindStringExpected}, kinds(errs[0].Errors[0].Errors))
	assert.Equal(t, "#/x-b", errs[0].Errors[0].Errors[0].Path)

	assert.Equal(t, KindNoAdditionalPropertiesAllowed, errs[1].Kind)
	assert.Equal(t, "other", errs[1].Property)
	assert.Equal(t, "#/other", errs[1].Path)

	dict := compile(t, `{"additionalProperties":{"type":"integer"}}`)
	errs = validate(t, parse(t, `{"a":1,"b":"x"}`), dict)
	require.Len(t, errs, 1)
	assert.Equal(t, KindAdditionalPropertiesNotValid, errs[0].Kind)
	assert.Equal(t, "b", errs[0].Property)

	open := compile(t, `{"properties":{"id":{"type":"integer"}}}`)
	assert.Empty(t, validate(t, parse(t, `{"id":1,"extra":true}`), open))
}

func TestValidate_ObjectBounds(t *testing.T) {
	node := compile(t, `{"minProperties":2,"maxProperties":3}`)
	assert.Equal(t, []Kind{KindTooFewProperties}, kinds(validate(t, parse(t, `{"a":1}`), node)))
	assert.Empty(t, validate(t, parse(t, `{"a":1,"b":2}`), node))
	assert.Equal(t, []Kind{KindTooManyProperties}, kinds(validate(t, parse(t, `{"a":1,"b":2,"c":3,"d":4}`), node)))
}

func TestValidate_Arrays(t *testing.T) {
	node := compile(t, `{"type":"array","items":{"type":"string"},"minItems":1,"maxItems":3,"uniqueItems":true}`)

	assert.Equal(t, []Kind{KindTooFewItems}, kinds(validate(t, parse(t, `[]`), node)))
	assert.Equal(t, []Kind{KindTooManyItems}, kinds(validate(t, parse(t, `["a","b","c","d"]`), node)))

	errs := validate(t, parse(t, `["a",2,"a"]`), node)
	assert.Equal(t, []Kind{KindItemsNotUnique, KindArrayItemNotValid}, kinds(errs))
	assert.Equal(t, "[1]", errs[1].Property)
	assert.Equal(t, "#/1", errs[1].Path)

	assert.Empty(t, validate(t, parse(t, `[1, 1.0]`), compile(t, `{}`)))
	assert.Equal(t, []Kind{KindItemsNotUnique}, kinds(validate(t, parse(t, `[1, 1.0]`), compile(t, `{"uniqueItems":true}`))),
		"numbers compare by value")
}

func TestValidate_ItemPath(t *testing.T) {
	node := compile(t, `{"properties":{"tags":{"items":{"type":"string"}}}}`)

	errs := validate(t, parse(t, `{"tags":["a",1]}`), node)
	require.Len(t, errs, 1)
	assert.Equal(t, KindArrayItemNotValid, errs[0].Kind)
	assert.Equal(t, "[1]", errs[0].Property)
	assert.Equal(t, "#/tags/1", errs[0].Path)

	require.Len(t, errs[0].Errors, 1)
	child := errs[0].Errors[0].Errors
	require.Len(t, child, 1)
	assert.Equal(t, KindStringExpected, child[0].Kind)
	assert.Equal(t, "#/tags/1", child[0].Path)
	assert.Empty(t, child[0].Property)

	assert.Equal(t, 2, Count(errs))
}

func TestValidate_Tuples(t *testing.T) {
	closed := compile(t, `{"items":[{"type":"string"},{"type":"integer"}],"additionalItems":false}`)
	errs := validate(t, parse(t, `["a","b",3]`), closed)
	require.Equal(t, []Kind{KindArrayItemNotValid, KindTooManyItemsInTuple}, kinds(errs))
	assert.Equal(t, "#/1", errs[0].Path)
	assert.Equal(t, "[2]", errs[1].Property)
	assert.Equal(t, "#/2", errs[1].Path)

	typed := compile(t, `{"items":[{"type":"string"}],"additionalItems":{"type":"boolean"}}`)
	errs = validate(t, parse(t, `["a",true,1]`), typed)
	require.Equal(t, []Kind{KindAdditionalItemNotValid}, kinds(errs))
	assert.Equal(t, "#/2", errs[0].Path)

	open := compile(t, `{"items":[{"type":"string"}]}`)
	assert.Empty(t, validate(t, parse(t, `["a",1,null]`), open))
}

func TestValidate_RecursiveSchema(t *testing.T) {
	node := compile(t, `{
  "type": "object",
  "properties": {
    "value": {"type": "integer"},
    "children": {"type": "array", "items": {"$ref": "#"}}
  }
}`)

	assert.Empty(t, validate(t, parse(t, `{"value":1,"children":[{"value":2,"children":[]}]}`), node))

	errs := validate(t, parse(t, `{"value":1,"children":[{"value":2,"children":[{"value":"x"}]}]}`), node)
	require.Len(t, errs, 1)
	assert.Equal(t, "#/children/0", errs[0].Path)
	inner := errs[0].Errors[0].Errors
	require.Len(t, inner, 1)
	assert.Equal(t, "#/children/0/children/0", inner[0].Path)
	leaf := inner[0].Errors[0].Errors
	require.Len(t, leaf, 1)
	assert.Equal(t, KindIntegerExpected, leaf[0].Kind)
	assert.Equal(t, "#/children/0/children/0/value", leaf[0].Path)
	assert.Equal(t, 3, Count(errs))
}

func TestValidate_SelfReferencingComposition(t *testing.T) {
	node := compile(t, `{
  "properties": {"a": {"$ref": "#/definitions/A"}},
  "definitions": {"A": {"type": "string", "allOf": [{"$ref": "#/definitions/A"}]}}
}`)

	errs := validate(t, parse(t, `{"a":5}`), node)
	assert.Equal(t, []Kind{KindStringExpected}, kinds(errs))
	assert.Empty(t, validate(t, parse(t, `{"a":"x"}`), node))
}

func TestValidate_NilSchema(t *testing.T) {
	assert.Empty(t, validate(t, "x", nil))
}

func TestValidationError_String(t *testing.T) {
	node := compile(t, `{"anyOf":[{"type":"string"},{"type":"boolean"}]}`)
	errs := validate(t, parse(t, `5`), node)
	require.Len(t, errs, 1)

	want := "NotAnyOf: #\n{\n  StringExpected: #\n}\n{\n  BooleanExpected: #\n}"
	assert.Equal(t, want, errs[0].String())
	assert.Equal(t, want, errs[0].Error())
	assert.Equal(t, want+"\n", Report(errs))
	assert.True(t, errs[0].IsChildSchemaError())
}

func TestValidationError_NestedRendering(t *testing.T) {
	node := compile(t, `{"properties":{"tags":{"items":{"type":"string"}}}}`)
	errs := validate(t, parse(t, `{"tags":[1]}`), node)
	require.Len(t, errs, 1)

	want := "ArrayItemNotValid: #/tags/0\n{\n  StringExpected: #/tags/0\n}"
	assert.Equal(t, want, errs[0].String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "PropertyRequired", KindPropertyRequired.String())
	assert.Equal(t, "UriExpected", KindURIExpected.String())
	assert.Equal(t, "Kind(999)", Kind(999).String())

	text, err := KindNotOneOf.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "NotOneOf", string(text))
}
