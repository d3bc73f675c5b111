package generator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"
)

func renderGo(set *ModelSet, packageName string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// " + generatedHeader + "\n\n")
	b.WriteString("package " + packageName + "\n")
	if usesTime(set) {
		b.WriteString("\nimport \"time\"\n")
	}
	for _, t := range set.Types {
		b.WriteString("\n")
		if t.Enum != nil {
			writeGoEnum(&b, t.Enum)
			continue
		}
		writeGoStruct(&b, t.Class)
	}
	return formatAndFixImports("models.go", []byte(b.String()))
}

// formatAndFixImports formats Go source code and automatically fixes imports.
// It adds missing imports and removes unused ones using goimports-equivalent processing.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func usesTime(set *ModelSet) bool {
	for _, t := range set.Types {
		if t.Class == nil {
			continue
		}
		for _, p := range t.Class.Properties {
			if strings.Contains(p.Type, "time.Time") {
				return true
			}
		}
		if strings.Contains(t.Class.AdditionalPropertiesType, "time.Time") {
			return true
		}
	}
	return false
}

func writeGoComment(b *strings.Builder, indent, name, text string) {
	if text == "" {
		return
	}
	b.WriteString(indent + "// " + name + " " + text + "\n")
}

func writeGoStruct(b *strings.Builder, c *ClassModel) {
	writeGoComment(b, "", c.Name, c.Description)
	if len(c.DerivedClassNames) > 0 {
		if c.Description == "" {
			b.WriteString("// " + c.Name + " is a base type.\n")
		}
		b.WriteString("// Derived types: " + strings.Join(c.DerivedClassNames, ", ") + ".\n")
	}
	b.WriteString("type " + c.Name + " struct {\n")
	if c.HasInheritance {
		b.WriteString("\t" + c.BaseClass + "\n")
	}
	if c.HasDiscriminator {
		fmt.Fprintf(b, "\t%s string `json:%q`\n", goFieldName(c.DiscriminatorField), c.Discriminator)
	}
	for _, p := range c.Properties {
		field := goFieldName(p.FieldName)
		writeGoComment(b, "\t", field, p.Description)
		fmt.Fprintf(b, "\t%s %s `json:%q`\n", field, goFieldType(c, p), jsonTag(p))
	}
	if c.AdditionalPropertiesType != "" {
		b.WriteString("\tAdditionalProperties map[string]" + c.AdditionalPropertiesType + " `json:\"-\"`\n")
	}
	b.WriteString("}\n")
}

// goFieldType makes optional fields and direct self references pointers.
func goFieldType(c *ClassModel, p PropertyModel) string {
	if p.IsOptional || p.Type == c.Name {
		return pointerTo(p.Type)
	}
	return p.Type
}

func jsonTag(p PropertyModel) string {
	if p.IsOptional {
		return p.Name + ",omitempty"
	}
	return p.Name
}

func writeGoEnum(b *strings.Builder, e *EnumModel) {
	writeGoComment(b, "", e.Name, e.Description)
	underlying := "string"
	if !e.IsStringEnum {
		underlying = "int64"
	}
	b.WriteString("type " + e.Name + " " + underlying + "\n")
	if len(e.Entries) == 0 {
		return
	}
	b.WriteString("\nconst (\n")
	for _, entry := range e.Entries {
		fmt.Fprintf(b, "\t%s%s %s = %s\n", e.Name, entry.Name, e.Name, enumLiteral(entry.Value, e.IsStringEnum))
	}
	b.WriteString(")\n")
}

// goFieldName turns a generated name into an exported Go identifier.
func goFieldName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, name)
	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(r) {
		name = "X" + name
	}
	return name
}
