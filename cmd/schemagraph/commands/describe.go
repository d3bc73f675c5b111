package commands

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/erraggy/schemagraph/internal/describe"
)

// DescribeFlags contains flags for the describe command
type DescribeFlags struct {
	CommonFlags
	Ref    string
	Format string
}

// SetupDescribeFlags creates and configures a FlagSet for the describe command.
func SetupDescribeFlags() (*flag.FlagSet, *DescribeFlags) {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	flags := &DescribeFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Ref, "ref", "", "definition name or JSON pointer of the node to describe (default: root)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph describe [flags] <schema|->\n\n")
		Writef(fs.Output(), "Describe a schema node: its kind, inheritance and effective properties.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagraph describe pet.schema.json\n")
		Writef(fs.Output(), "  schemagraph describe --ref Dog pet.schema.json\n")
		Writef(fs.Output(), "  schemagraph describe --ref '#/definitions/Dog' --format json pet.schema.json\n")
	}

	return fs, flags
}

// HandleDescribe executes the describe command
func HandleDescribe(args []string) error {
	fs, flags := SetupDescribeFlags()
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("describe command requires exactly one schema path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	doc, err := LoadDocument(fs.Arg(0), flags.Logger())
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	var summary *describe.Summary
	if flags.Ref == "" {
		summary, err = describe.Document(doc)
	} else {
		node, lookupErr := describe.Select(doc, flags.Ref)
		if lookupErr != nil {
			return lookupErr
		}
		summary, err = describe.Node(doc, node)
	}
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(summary, flags.Format)
	}
	writeSummary(summary)
	return nil
}

func writeSummary(s *describe.Summary) {
	if s.Name != "" {
		Writef(Stdout, "Name: %s\n", s.Name)
	}
	if s.Title != "" {
		Writef(Stdout, "Title: %s\n", s.Title)
	}
	kind := s.Kind
	if s.Format != "" {
		kind += " (" + s.Format + ")"
	}
	if s.Nullable {
		kind += ", nullable"
	}
	if s.Abstract {
		kind += ", abstract"
	}
	Writef(Stdout, "Kind: %s\n", kind)
	if s.Description != "" {
		Writef(Stdout, "Description: %s\n", s.Description)
	}
	if s.ItemType != "" {
		Writef(Stdout, "Items: %s\n", s.ItemType)
	}
	if s.ValueType != "" {
		Writef(Stdout, "Values: %s\n", s.ValueType)
	}
	if len(s.EnumValues) > 0 {
		Writef(Stdout, "Enum:\n")
		for i, v := range s.EnumValues {
			if i < len(s.EnumNames) {
				Writef(Stdout, "  %s = %s\n", s.EnumNames[i], v)
			} else {
				Writef(Stdout, "  %s\n", v)
			}
		}
	}
	if s.Base != "" {
		Writef(Stdout, "Inherits: %s\n", strings.Join(s.Ancestors, " -> "))
	}
	if s.Discriminator != "" {
		Writef(Stdout, "Discriminator: %s (declared by %s)\n", s.Discriminator, s.DiscriminatorOwner)
	}
	if len(s.Derived) > 0 {
		Writef(Stdout, "Derived: %s\n", strings.Join(s.Derived, ", "))
	}
	if len(s.Properties) > 0 {
		Writef(Stdout, "Properties:\n")
		tw := tabwriter.NewWriter(Stdout, 0, 4, 2, ' ', 0)
		for _, p := range s.Properties {
			var notes []string
			if p.Required {
				notes = append(notes, "required")
			}
			if p.Nullable {
				notes = append(notes, "nullable")
			}
			typ := p.Type
			if p.Format != "" && typ == p.Kind {
				typ += " (" + p.Format + ")"
			}
			Writef(tw, "  %s\t%s\t%s\n", p.Name, typ, strings.Join(notes, ", "))
		}
		_ = tw.Flush()
	}
	if len(s.Definitions) > 0 {
		Writef(Stdout, "Definitions: %s\n", strings.Join(s.Definitions, ", "))
	}
}
