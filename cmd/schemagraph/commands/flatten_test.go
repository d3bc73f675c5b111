package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/schema"
)

const inheritanceSchema = `{
  "definitions": {
    "B": {
      "allOf": [
        {"$ref": "#/definitions/C"},
        {"type": "object", "properties": {"b": {"type": "string"}}}
      ]
    },
    "C": {"type": "object", "properties": {"c": {"type": "integer"}}}
  }
}`

func TestHandleFlatten_Stdout(t *testing.T) {
	stdout, _ := captureOutput(t)
	schemaPath := writeTemp(t, "in.json", inheritanceSchema)

	require.NoError(t, HandleFlatten([]string{schemaPath}))

	doc, err := schema.Load(stdout.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, doc.DefinitionNames())
	b, _ := doc.Definition("B")
	assert.Equal(t, []string{"c", "b"}, b.PropertyNames())
	assert.Empty(t, b.AllOf)
}

func TestHandleFlatten_OutputFileYAML(t *testing.T) {
	_, stderr := captureOutput(t)
	schemaPath := writeTemp(t, "in.json", inheritanceSchema)
	out := filepath.Join(t.TempDir(), "flat.yaml")

	require.NoError(t, HandleFlatten([]string{"-o", out, schemaPath}))
	assert.Contains(t, stderr.String(), "written to")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "definitions:")
	doc, err := schema.Load(data)
	require.NoError(t, err)
	assert.True(t, doc.HasDefinition("B"))
}

func TestHandleFlatten_Errors(t *testing.T) {
	captureOutput(t)
	schemaPath := writeTemp(t, "in.json", inheritanceSchema)

	assert.Error(t, HandleFlatten(nil))
	assert.Error(t, HandleFlatten([]string{"--format", "text", schemaPath}))
	assert.Error(t, HandleFlatten([]string{"-o", schemaPath, schemaPath}), "refuses to overwrite the input")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, formatFromPath("a.YML"))
	assert.Equal(t, FormatYAML, formatFromPath("a.yaml"))
	assert.Equal(t, FormatJSON, formatFromPath("a.json"))
	assert.Equal(t, FormatJSON, formatFromPath(""))
}
