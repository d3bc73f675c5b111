// Package commands provides CLI command handlers for schemagraph.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemagraph/internal/cliutil"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/schema"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrValidationFailed is returned by HandleValidate when the instance does
// not satisfy the schema. The process exits with status 1.
var ErrValidationFailed = errors.New("validation failed")

// Output streams. Tests swap them for buffers.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
	Stdin  io.Reader = os.Stdin
)

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// CommonFlags are accepted by every command that loads a schema.
type CommonFlags struct {
	Verbose bool
}

func (c *CommonFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&c.Verbose, "verbose", false, "log loading and resolution details to stderr")
}

// Logger returns the logger the flags ask for.
func (c *CommonFlags) Logger() schema.Logger {
	if !c.Verbose {
		return schema.NopLogger{}
	}
	return schema.NewSlogAdapter(slog.New(slog.NewTextHandler(Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %v", format, allowed)
}

// OutputStructured outputs data in the specified format (json or yaml) to Stdout.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(Stdout, "%s\n", bytes)
	return nil
}

// LoadDocument reads the schema at path ("-" for stdin) and resolves its
// references.
func LoadDocument(path string, logger schema.Logger) (*schema.Document, error) {
	var doc *schema.Document
	var err error
	if path == StdinFilePath {
		data, readErr := io.ReadAll(Stdin)
		if readErr != nil {
			return nil, fmt.Errorf("reading stdin: %w", readErr)
		}
		doc, err = schema.Load(data, schema.WithSourceName("<stdin>"), schema.WithLogger(logger))
	} else {
		doc, err = schema.LoadFile(path, schema.WithLogger(logger))
	}
	if err != nil {
		return nil, err
	}
	if err := resolver.Resolve(doc, resolver.WithLogger(logger)); err != nil {
		return nil, err
	}
	return doc, nil
}

// FormatSchemaPath returns a display-friendly path for the schema.
func FormatSchemaPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// parseArgs parses args, treating -h/--help as success. It reports
// whether the command should continue.
func parseArgs(fs *flag.FlagSet, args []string) (bool, error) {
	fs.SetOutput(Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
