package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/schemagraph"
	"github.com/erraggy/schemagraph/internal/describe"
	"github.com/erraggy/schemagraph/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	CommonFlags
	NoFormat bool
	Quiet    bool
	Format   string
	Ref      string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	flags.register(fs)
	fs.BoolVar(&flags.NoFormat, "no-format", false, "skip string format checks (date-time, email, uuid, ...)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation errors, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation errors, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Ref, "ref", "", "definition name or JSON pointer to validate against instead of the root")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph validate [flags] <schema> <instance|->\n\n")
		Writef(fs.Output(), "Validate a JSON instance against a JSON Schema (draft-04) document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Indented error tree\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph validate pet.schema.json pet.json\n")
		Writef(fs.Output(), "  schemagraph validate --ref Owner pet.schema.json owner.json\n")
		Writef(fs.Output(), "  cat pet.json | schemagraph validate -q pet.schema.json -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Instance is valid\n")
		Writef(fs.Output(), "  1    Instance is invalid or an error occurred\n")
	}

	return fs, flags
}

// validateReport is the structured output of the validate command.
type validateReport struct {
	Valid      bool                        `json:"valid"       yaml:"valid"`
	ErrorCount int                         `json:"error_count" yaml:"error_count"`
	Errors     []validator.ValidationError `json:"errors"      yaml:"errors"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("validate command requires a schema path and an instance path (or '-' for stdin)")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}
	schemaPath, instancePath := fs.Arg(0), fs.Arg(1)
	if schemaPath == StdinFilePath {
		return fmt.Errorf("the schema cannot be read from stdin; pass '-' as the instance instead")
	}

	logger := flags.Logger()
	start := time.Now()
	doc, err := LoadDocument(schemaPath, logger)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	node, err := describe.Select(doc, flags.Ref)
	if err != nil {
		return err
	}

	raw, err := readInstance(instancePath)
	if err != nil {
		return err
	}
	instance, err := validator.ParseInstance(raw)
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}

	errs, err := validator.Validate(instance, node,
		validator.WithFormatValidation(!flags.NoFormat),
		validator.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if flags.Format != FormatText {
		report := validateReport{Valid: len(errs) == 0, ErrorCount: validator.Count(errs), Errors: errs}
		if report.Errors == nil {
			report.Errors = []validator.ValidationError{}
		}
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
	} else {
		if !flags.Quiet {
			Writef(Stderr, "schemagraph version: %s\n", schemagraph.Version())
			Writef(Stderr, "Schema: %s\n", FormatSchemaPath(schemaPath))
			Writef(Stderr, "Instance: %s\n", FormatSchemaPath(instancePath))
			Writef(Stderr, "Total Time: %v\n\n", elapsed)
		}
		if len(errs) > 0 {
			Writef(Stdout, "%s", validator.Report(errs))
		}
		if !flags.Quiet {
			if len(errs) == 0 {
				Writef(Stderr, "✓ Instance is valid\n")
			} else {
				Writef(Stderr, "\n✗ Instance is invalid: %d error(s)\n", validator.Count(errs))
			}
		}
	}

	if len(errs) > 0 {
		return ErrValidationFailed
	}
	return nil
}

func readInstance(path string) ([]byte, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading instance: %w", err)
	}
	return data, nil
}
