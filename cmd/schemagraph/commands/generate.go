package commands

import (
	"flag"
	"fmt"

	"github.com/erraggy/schemagraph/generator"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	CommonFlags
	Output      string
	Language    string
	PackageName string
	RootName    string
	Classes     bool
	NoDates     bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Output, "o", "", "output directory (default: print to stdout)")
	fs.StringVar(&flags.Output, "output", "", "output directory (default: print to stdout)")
	fs.StringVar(&flags.Language, "lang", string(generator.LanguageTypeScript), "target language: ts or go")
	fs.StringVar(&flags.PackageName, "package", "", "Go package name (default: models)")
	fs.StringVar(&flags.RootName, "root-name", "", "type name for an unnamed root schema (default: Root)")
	fs.BoolVar(&flags.Classes, "classes", false, "emit TypeScript classes instead of interfaces")
	fs.BoolVar(&flags.NoDates, "no-dates", false, "keep date-time strings as string instead of Date / time.Time")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph generate [flags] <schema|->\n\n")
		Writef(fs.Output(), "Generate TypeScript or Go models from a JSON Schema document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph generate pet.schema.json > models.ts\n")
		Writef(fs.Output(), "  schemagraph generate --lang go --package pets -o ./pets pet.schema.json\n")
		Writef(fs.Output(), "  schemagraph generate --classes -o ./src/models pet.schema.json\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one schema path or '-' for stdin")
	}
	lang, ok := generator.ParseLanguage(flags.Language)
	if !ok {
		return fmt.Errorf("invalid lang '%s'. Valid languages: ts, go", flags.Language)
	}

	logger := flags.Logger()
	doc, err := LoadDocument(fs.Arg(0), logger)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	opts := []generator.Option{
		generator.WithLanguage(lang),
		generator.WithDates(!flags.NoDates),
		generator.WithLogger(logger),
	}
	if flags.PackageName != "" {
		opts = append(opts, generator.WithPackageName(flags.PackageName))
	}
	if flags.RootName != "" {
		opts = append(opts, generator.WithRootName(flags.RootName))
	}
	if flags.Classes {
		opts = append(opts, generator.WithTypeScriptStyle(generator.TypeScriptClass))
	}

	result, err := generator.Generate(doc, opts...)
	if err != nil {
		return err
	}

	if flags.Output == "" {
		for _, f := range result.Files {
			Writef(Stdout, "%s", f.Content)
		}
		return nil
	}
	if err := result.WriteFiles(flags.Output); err != nil {
		return err
	}
	Writef(Stderr, "Generated %d type(s) in %v\n", result.GeneratedTypes, result.GenerateTime)
	for _, f := range result.Files {
		Writef(Stderr, "  %s (%d bytes)\n", f.Name, len(f.Content))
	}
	return nil
}
