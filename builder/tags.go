package builder

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/erraggy/schemagraph/constraints"
	"github.com/erraggy/schemagraph/typedesc"
)

// Struct tags read by the Go type front end.
const (
	tagJSON        = "json"
	tagSchema      = "schema"
	tagDescription = "description"
	tagDeprecated  = "deprecated"
	tagReadOnly    = "readonly"
)

// parseJSONTag parses a struct field's json tag.
// Returns the field name and options (like "omitempty").
func parseJSONTag(tag string) (name string, opts []string) {
	if tag == "" {
		return "", nil
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	if len(parts) > 1 {
		opts = parts[1:]
	}
	return name, opts
}

// hasOmitempty checks if json tag options include omitempty or omitzero.
func hasOmitempty(opts []string) bool {
	for _, opt := range opts {
		if opt == "omitempty" || opt == "omitzero" {
			return true
		}
	}
	return false
}

// fieldRequired maps a field to a requiredness hint.
// Rules:
//  1. Fields with omitempty may be absent
//  2. Pointer fields without omitempty are always written, possibly as null
//  3. Other fields are always written and never null
func fieldRequired(field reflect.StructField, jsonOpts []string) typedesc.Required {
	if hasOmitempty(jsonOpts) {
		return typedesc.RequiredDefault
	}
	if field.Type.Kind() == reflect.Pointer {
		return typedesc.RequiredAllowNull
	}
	return typedesc.RequiredAlways
}

// fieldFacts parses the schema tag of a field. An absent tag yields nil.
func fieldFacts(field reflect.StructField) (constraints.List, error) {
	tag, ok := field.Tag.Lookup(tagSchema)
	if !ok {
		return nil, nil
	}
	return constraints.ParseTag(tag)
}

// boolTag reads a boolean tag; a present tag that does not parse counts as
// true.
func boolTag(field reflect.StructField, key string) bool {
	v, ok := field.Tag.Lookup(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err != nil || b
}
