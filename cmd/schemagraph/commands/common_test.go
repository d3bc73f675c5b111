package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "pet": {"oneOf": [{"type": "string"}, {"type": "integer"}]},
    "born": {"type": "string", "format": "date-time"}
  },
  "definitions": {
    "Animal": {
      "type": "object",
      "discriminator": "kind",
      "required": ["kind"],
      "properties": {"kind": {"type": "string"}}
    },
    "Dog": {
      "allOf": [
        {"$ref": "#/definitions/Animal"},
        {"type": "object", "properties": {"barks": {"type": "boolean"}}}
      ]
    }
  }
}`

// captureOutput redirects Stdout and Stderr to buffers for the test.
func captureOutput(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	savedOut, savedErr := Stdout, Stderr
	Stdout, Stderr = stdout, stderr
	t.Cleanup(func() { Stdout, Stderr = savedOut, savedErr })
	return stdout, stderr
}

// withStdin replaces Stdin with content for the test.
func withStdin(t *testing.T, content string) {
	t.Helper()
	saved := Stdin
	Stdin = strings.NewReader(content)
	t.Cleanup(func() { Stdin = saved })
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("json", FormatText, FormatJSON))
	assert.ErrorContains(t, ValidateOutputFormat("xml", FormatText, FormatJSON), "invalid format 'xml'")
}

func TestOutputStructured(t *testing.T) {
	stdout, _ := captureOutput(t)
	data := struct {
		Name string `json:"name" yaml:"name"`
	}{Name: "Rex"}

	require.NoError(t, OutputStructured(data, FormatJSON))
	assert.Equal(t, "{\n  \"name\": \"Rex\"\n}\n", stdout.String())

	stdout.Reset()
	require.NoError(t, OutputStructured(data, FormatYAML))
	assert.Equal(t, "name: Rex\n\n", stdout.String())

	assert.Error(t, OutputStructured(data, FormatText))
}

func TestLoadDocument(t *testing.T) {
	doc, err := LoadDocument(writeTemp(t, "pet.json", petSchema), nil)
	require.NoError(t, err)
	assert.True(t, doc.HasDefinition("Dog"))

	withStdin(t, "type: string\n")
	doc, err = LoadDocument(StdinFilePath, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"string"}, doc.Root.Type.Names())

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestCommonFlags_Logger(t *testing.T) {
	_, stderr := captureOutput(t)

	quiet := CommonFlags{}
	quiet.Logger().Debug("hidden")
	assert.Empty(t, stderr.String())

	verbose := CommonFlags{Verbose: true}
	verbose.Logger().Debug("loading", "path", "pet.json")
	assert.Contains(t, stderr.String(), "msg=loading")
	assert.Contains(t, stderr.String(), "path=pet.json")
}

func TestFormatSchemaPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSchemaPath("-"))
	assert.Equal(t, "a.json", FormatSchemaPath("a.json"))
}
