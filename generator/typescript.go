package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const generatedHeader = "Code generated by schemagraph. DO NOT EDIT."

const tsIndent = "    "

var tsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func renderTypeScript(set *ModelSet, style TypeScriptStyle) []byte {
	var b strings.Builder
	b.WriteString("// " + generatedHeader + "\n")
	for _, t := range set.Types {
		b.WriteString("\n")
		if t.Enum != nil {
			writeTypeScriptEnum(&b, t.Enum)
			continue
		}
		writeTypeScriptClass(&b, t.Class, style)
	}
	return []byte(b.String())
}

func writeTypeScriptDoc(b *strings.Builder, indent, text string) {
	if text == "" {
		return
	}
	b.WriteString(indent + "/** " + strings.ReplaceAll(text, "*/", "* /") + " */\n")
}

func writeTypeScriptClass(b *strings.Builder, c *ClassModel, style TypeScriptStyle) {
	writeTypeScriptDoc(b, "", c.Description)

	keyword := "interface"
	if style == TypeScriptClass {
		keyword = "class"
		if c.IsAbstract {
			keyword = "abstract class"
		}
	}
	b.WriteString("export " + keyword + " " + c.Name)
	if c.HasInheritance {
		b.WriteString(" extends " + c.BaseClass)
	}
	b.WriteString(" {\n")

	if c.HasDiscriminator {
		b.WriteString(tsIndent + tsPropertyKey(c.Discriminator) + ": string;\n")
	}
	for _, p := range c.Properties {
		writeTypeScriptDoc(b, tsIndent, p.Description)
		b.WriteString(tsIndent + tsPropertyKey(p.Name))
		if p.IsOptional {
			b.WriteString("?")
		}
		b.WriteString(": " + p.Type + ";\n")
	}
	if c.AdditionalPropertiesType != "" {
		valueType := c.AdditionalPropertiesType
		if valueType != "any" {
			valueType += " | any"
		}
		b.WriteString(tsIndent + "[key: string]: " + valueType + ";\n")
	}

	if style == TypeScriptClass && c.BaseDiscriminator != "" {
		b.WriteString("\n" + tsIndent + "constructor() {\n")
		if c.HasInheritance {
			b.WriteString(tsIndent + tsIndent + "super();\n")
		}
		fmt.Fprintf(b, "%s%sthis%s = %s;\n", tsIndent, tsIndent, tsMemberAccess(c.BaseDiscriminator), strconv.Quote(c.DiscriminatorValue))
		b.WriteString(tsIndent + "}\n")
	}
	b.WriteString("}\n")
}

func writeTypeScriptEnum(b *strings.Builder, e *EnumModel) {
	writeTypeScriptDoc(b, "", e.Description)
	b.WriteString("export enum " + e.Name + " {\n")
	for _, entry := range e.Entries {
		b.WriteString(tsIndent + entry.Name + " = " + enumLiteral(entry.Value, e.IsStringEnum) + ",\n")
	}
	b.WriteString("}\n")
}

// tsPropertyKey quotes member names that are not identifiers.
func tsPropertyKey(name string) string {
	if tsIdentifier.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}

func tsMemberAccess(name string) string {
	if tsIdentifier.MatchString(name) {
		return "." + name
	}
	return "[" + strconv.Quote(name) + "]"
}

// enumLiteral renders an enumeration value. String enums quote every
// value; numeric ones print it as is.
func enumLiteral(v any, quoted bool) string {
	if s, ok := v.(string); ok || quoted {
		if !ok {
			s = fmt.Sprint(v)
		}
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
