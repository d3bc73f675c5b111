package commands

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemagraph/composition"
	"github.com/erraggy/schemagraph/internal/cliutil"
	"github.com/erraggy/schemagraph/schema"
)

// FlattenFlags contains flags for the flatten command
type FlattenFlags struct {
	CommonFlags
	Output string
	Format string
}

// SetupFlattenFlags creates and configures a FlagSet for the flatten command.
func SetupFlattenFlags() (*flag.FlagSet, *FlattenFlags) {
	fs := flag.NewFlagSet("flatten", flag.ContinueOnError)
	flags := &FlattenFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: from the output extension, else json)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph flatten [flags] <schema|->\n\n")
		Writef(fs.Output(), "Merge the properties of every allOf ancestor into each inheriting definition.\n")
		Writef(fs.Output(), "Ancestors no longer referenced are dropped from the definitions table.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph flatten pet.schema.json\n")
		Writef(fs.Output(), "  schemagraph flatten -o flat.yaml pet.schema.json\n")
	}

	return fs, flags
}

// HandleFlatten executes the flatten command
func HandleFlatten(args []string) error {
	fs, flags := SetupFlattenFlags()
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("flatten command requires exactly one schema path or '-' for stdin")
	}
	format := flags.Format
	if format == "" {
		format = formatFromPath(flags.Output)
	}
	if err := ValidateOutputFormat(format, FormatJSON, FormatYAML); err != nil {
		return err
	}

	logger := flags.Logger()
	inputPath := fs.Arg(0)
	doc, err := LoadDocument(inputPath, logger)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	if err := composition.FlattenAll(doc, composition.WithDocument(doc), composition.WithLogger(logger)); err != nil {
		return err
	}

	data, err := encodeDocument(doc, format)
	if err != nil {
		return err
	}
	if flags.Output == "" {
		Writef(Stdout, "%s\n", data)
		return nil
	}
	if err := cliutil.WriteOutput(flags.Output, data, inputPath); err != nil {
		return err
	}
	Writef(Stderr, "Flattened schema written to %s\n", flags.Output)
	return nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func encodeDocument(doc *schema.Document, format string) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return doc.MarshalIndentJSON("", "  ")
}
