package generator

import (
	"strings"

	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/typedesc"
)

// TypeResolver maps a schema node to a type expression of the target
// language. Named objects and enumerations are registered on first use, so
// resolving a property pulls its anonymous types into the output.
type TypeResolver interface {
	Resolve(node *schema.Schema, nullable bool, hint string) string
}

// isNamedType reports whether a node of this shape is emitted as its own
// declaration rather than inline.
func isNamedType(d typedesc.Description) bool {
	return d.Kind == typedesc.KindObject || d.Kind == typedesc.KindEnum
}

// TypeScriptResolver resolves TypeScript type expressions.
type TypeScriptResolver struct {
	Registry *TypeNameRegistry
	// DateType maps date-time strings to Date.
	DateType bool
}

// NewTypeScriptResolver returns a resolver registering named types in reg.
func NewTypeScriptResolver(reg *TypeNameRegistry, dates bool) *TypeScriptResolver {
	return &TypeScriptResolver{Registry: reg, DateType: dates}
}

// Resolve implements TypeResolver. Nullable types become `T | null`.
func (r *TypeScriptResolver) Resolve(node *schema.Schema, nullable bool, hint string) string {
	t := r.resolve(node, hint)
	if nullable && t != "any" {
		return t + " | null"
	}
	return t
}

func (r *TypeScriptResolver) resolve(node *schema.Schema, hint string) string {
	d := typedesc.Describe(node)
	switch d.Kind {
	case typedesc.KindDictionary:
		return "{ [key: string]: " + r.Resolve(d.ValueSchema, d.ValueSchema.IsNullable(), hint) + "; }"
	case typedesc.KindArray:
		if d.ItemSchema == nil {
			return "any[]"
		}
		item := r.Resolve(d.ItemSchema, d.ItemSchema.IsNullable(), hint+"Item")
		if strings.Contains(item, " | ") {
			item = "(" + item + ")"
		}
		return item + "[]"
	case typedesc.KindInteger, typedesc.KindNumber:
		return "number"
	case typedesc.KindBoolean:
		return "boolean"
	case typedesc.KindString:
		if r.DateType && (d.Format == schema.FormatDateTime || d.Format == schema.FormatDate) {
			return "Date"
		}
		return "string"
	case typedesc.KindNull:
		return "null"
	case typedesc.KindObject, typedesc.KindEnum:
		return r.Registry.Register(d.Schema, hint)
	default:
		return "any"
	}
}

// GoResolver resolves Go type expressions.
type GoResolver struct {
	Registry *TypeNameRegistry
	// DateType maps date-time strings to time.Time.
	DateType bool
}

// NewGoResolver returns a resolver registering named types in reg.
func NewGoResolver(reg *TypeNameRegistry, dates bool) *GoResolver {
	return &GoResolver{Registry: reg, DateType: dates}
}

// Resolve implements TypeResolver. Nullable types become pointers unless
// they already have a nil value.
func (r *GoResolver) Resolve(node *schema.Schema, nullable bool, hint string) string {
	t := r.resolve(node, hint)
	if nullable {
		return pointerTo(t)
	}
	return t
}

func (r *GoResolver) resolve(node *schema.Schema, hint string) string {
	d := typedesc.Describe(node)
	switch d.Kind {
	case typedesc.KindDictionary:
		return "map[string]" + r.Resolve(d.ValueSchema, d.ValueSchema.IsNullable(), hint)
	case typedesc.KindArray:
		if d.ItemSchema == nil {
			return "[]any"
		}
		return "[]" + r.Resolve(d.ItemSchema, d.ItemSchema.IsNullable(), hint+"Item")
	case typedesc.KindInteger:
		return integerFormatToGoType(d.Format)
	case typedesc.KindNumber:
		return numberFormatToGoType(d.Format)
	case typedesc.KindBoolean:
		return "bool"
	case typedesc.KindString:
		return r.stringFormatToGoType(d.Format)
	case typedesc.KindFile:
		return "[]byte"
	case typedesc.KindObject, typedesc.KindEnum:
		return r.Registry.Register(d.Schema, hint)
	default:
		return "any"
	}
}

// stringFormatToGoType maps string formats to Go types.
func (r *GoResolver) stringFormatToGoType(format string) string {
	switch format {
	case schema.FormatDateTime:
		if r.DateType {
			return "time.Time"
		}
		return "string"
	case schema.FormatByte, schema.FormatBinary:
		return "[]byte"
	default:
		return "string"
	}
}

// integerFormatToGoType maps integer formats to Go types.
func integerFormatToGoType(format string) string {
	if format == schema.FormatInteger {
		return "int32"
	}
	return "int64"
}

// numberFormatToGoType maps number formats to Go types.
func numberFormatToGoType(format string) string {
	if format == schema.FormatFloat {
		return "float32"
	}
	return "float64"
}

// pointerTo returns *t unless t already has a nil value.
func pointerTo(t string) string {
	if t == "any" || strings.HasPrefix(t, "*") || strings.HasPrefix(t, "[]") || strings.HasPrefix(t, "map[") {
		return t
	}
	return "*" + t
}
