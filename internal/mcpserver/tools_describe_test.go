package mcpserver

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/internal/describe"
)

const zooSchema = `{
  "definitions": {
    "Animal": {
      "type": "object",
      "x-abstract": true,
      "discriminator": "kind",
      "required": ["kind"],
      "properties": {
        "kind": {"type": "string"},
        "name": {"type": ["string", "null"], "description": "Display name."}
      }
    },
    "Dog": {
      "allOf": [
        {"$ref": "#/definitions/Animal"},
        {"type": "object", "required": ["barks"], "properties": {"barks": {"type": "boolean"}}}
      ]
    },
    "Kennel": {
      "type": "object",
      "properties": {
        "dogs": {"type": "array", "items": {"$ref": "#/definitions/Dog"}},
        "labels": {"type": "object", "additionalProperties": {"type": "string"}}
      }
    },
    "Size": {"type": "string", "enum": ["small", "large"]},
    "Tags": {"type": "array", "items": {"type": "string"}}
  }
}`

func describeRef(t *testing.T, ref string) describe.Summary {
	t.Helper()
	res, output, err := handleDescribeSchema(context.Background(), &mcp.CallToolRequest{}, describeSchemaInput{
		Schema: schemaInput{Content: zooSchema},
		Ref:    ref,
	})
	require.NoError(t, err)
	require.Nil(t, res)
	return output
}

func TestDescribeSchema_Derived(t *testing.T) {
	out := describeRef(t, "Dog")

	assert.Equal(t, "Dog", out.Name)
	assert.Equal(t, "object", out.Kind)
	assert.Equal(t, "Animal", out.Base)
	assert.Equal(t, []string{"Animal"}, out.Ancestors)
	assert.Equal(t, "kind", out.Discriminator)
	assert.Equal(t, "Animal", out.DiscriminatorOwner)
	assert.Empty(t, out.Definitions, "definitions are listed for the root only")

	want := []describe.Property{
		{Name: "kind", Kind: "string", Type: "string", Required: true},
		{Name: "name", Kind: "string", Type: "string", Nullable: true, Description: "Display name."},
		{Name: "barks", Kind: "boolean", Type: "boolean", Required: true},
	}
	if diff := cmp.Diff(want, out.Properties); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribeSchema_Base(t *testing.T) {
	out := describeRef(t, "#/definitions/Animal")

	assert.True(t, out.Abstract)
	assert.Empty(t, out.Base)
	assert.Equal(t, []string{"Dog"}, out.Derived)
	assert.Equal(t, "Animal", out.DiscriminatorOwner)
}

func TestDescribeSchema_Containers(t *testing.T) {
	out := describeRef(t, "Kennel")
	require.Len(t, out.Properties, 2)
	assert.Equal(t, "array", out.Properties[0].Kind)
	assert.Equal(t, "Dog[]", out.Properties[0].Type)
	assert.Equal(t, "dictionary", out.Properties[1].Kind)
	assert.Equal(t, "map<string>", out.Properties[1].Type)

	tags := describeRef(t, "Tags")
	assert.Equal(t, "array", tags.Kind)
	assert.Equal(t, "string", tags.ItemType)
}

func TestDescribeSchema_Enum(t *testing.T) {
	out := describeRef(t, "Size")
	assert.Equal(t, "enum", out.Kind)
	assert.Equal(t, []string{`"small"`, `"large"`}, out.EnumValues)
	assert.Nil(t, out.Properties)
}

func TestDescribeSchema_Root(t *testing.T) {
	out := describeRef(t, "")
	assert.ElementsMatch(t, []string{"Animal", "Dog", "Kennel", "Size", "Tags"}, out.Definitions)
}

func TestDescribeSchema_UnknownRef(t *testing.T) {
	res, _, err := handleDescribeSchema(context.Background(), &mcp.CallToolRequest{}, describeSchemaInput{
		Schema: schemaInput{Content: zooSchema},
		Ref:    "#/definitions/Cat",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}
