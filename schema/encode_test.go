package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON_KeepsKeyOrder(t *testing.T) {
	src := `{"type":"object","properties":{"b":{"type":"string"},"a":{"type":"integer"}},"required":["b"]}`
	doc, err := Load([]byte(src))
	require.NoError(t, err)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestMarshalJSON_Scalars(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int and float enum", `{"enum":[1,2.5,5.0,null,true,"x"]}`, `{"enum":[1,2.5,5.0,null,true,"x"]}`},
		{"type array", `{"type":["string","null"]}`, `{"type":["null","string"]}`},
		{"escaped string", `{"description":"say \"hi\"\n"}`, `{"description":"say \"hi\"\n"}`},
		{"numeric keywords", `{"minimum":1,"maximum":2.5,"multipleOf":0.01}`, `{"minimum":1,"maximum":2.5,"multipleOf":0.01}`},
		{"additional false", `{"additionalProperties":false}`, `{"additionalProperties":false}`},
		{"unresolved ref", `{"$ref":"#/definitions/X"}`, `{"$ref":"#/definitions/X"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load([]byte(tt.src))
			require.NoError(t, err)
			out, err := doc.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestMarshalJSON_BuiltReferences(t *testing.T) {
	doc := NewDocument(New(TypeObject))
	pet := New(TypeObject)
	doc.SetDefinition("Pet", pet)
	doc.Root.SetProperty("pet", NewReference(pet))
	doc.Root.SetProperty("self", NewReference(doc.Root))

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"object","properties":{"pet":{"$ref":"#/definitions/Pet"},"self":{"$ref":"#"}},"definitions":{"Pet":{"type":"object"}}}`,
		string(out))
}

func TestMarshalJSON_DiscriminatorMapping(t *testing.T) {
	doc := NewDocument(New(TypeObject))
	dog := New(TypeObject)
	doc.SetDefinition("Dog", dog)
	doc.Root.Discriminator = &Discriminator{PropertyName: "kind"}
	doc.Root.Discriminator.AddMapping("Dog", dog)

	out, err := doc.SchemaJSON(doc.Root)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"discriminator":{"propertyName":"kind","mapping":{"Dog":"#/definitions/Dog"}}`)
}

func TestMarshalIndentJSON(t *testing.T) {
	doc, err := Load([]byte(`{"type":"string"}`))
	require.NoError(t, err)

	out, err := doc.MarshalIndentJSON("", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"type\": \"string\"\n}", string(out))
}

func TestSchemaYAML_RoundTrip(t *testing.T) {
	src := `{"title":"Pet","type":"object","properties":{"name":{"type":"string","x-custom":1}},"x-abstract":true}`
	doc, err := Load([]byte(src))
	require.NoError(t, err)

	out, err := doc.SchemaYAML(doc.Root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "title: Pet\n"))

	again, err := Load(out)
	require.NoError(t, err)
	js, err := again.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, src, string(js))
}
