package builder

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/erraggy/schemagraph/typedesc"
)

// SchemaType is the output dialect. It decides how nullability and
// references with sibling keywords are written.
type SchemaType int

const (
	// SchemaTypeJSONSchema writes draft-04 JSON Schema.
	SchemaTypeJSONSchema SchemaType = iota
	// SchemaTypeSwagger2 writes Swagger 2.0 definitions.
	SchemaTypeSwagger2
	// SchemaTypeOpenAPI3 writes OpenAPI 3.0 schemas.
	SchemaTypeOpenAPI3
)

var schemaTypeNames = map[SchemaType]string{
	SchemaTypeJSONSchema: "jsonschema",
	SchemaTypeSwagger2:   "swagger2",
	SchemaTypeOpenAPI3:   "openapi3",
}

func (t SchemaType) String() string {
	if n, ok := schemaTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("SchemaType(%d)", int(t))
}

// ParseSchemaType parses a dialect name as accepted on the command line.
func ParseSchemaType(s string) (SchemaType, error) {
	for t, name := range schemaTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, &schemaerrors.ConfigError{Option: "SchemaType", Value: s, Message: "expected jsonschema, swagger2 or openapi3"}
}

// Settings control schema generation.
type Settings struct {
	// DefaultReferenceTypeNullHandling decides nullability of reference
	// types that carry no explicit hint.
	DefaultReferenceTypeNullHandling typedesc.NullHandling

	// FlattenInheritanceHierarchy merges base types into derived types
	// instead of writing allOf.
	FlattenInheritanceHierarchy bool
	// GenerateAbstractProperties merges interface members when flattening.
	GenerateAbstractProperties bool
	// GenerateAbstractSchemas writes x-abstract for abstract types.
	GenerateAbstractSchemas bool
	// GenerateKnownTypes generates every known type of a generated type.
	GenerateKnownTypes bool
	// IgnoreObsoleteProperties drops obsolete members.
	IgnoreObsoleteProperties bool
	// AllowReferencesWithProperties writes a plain $ref even when the
	// referencing schema carries other keywords.
	AllowReferencesWithProperties bool
	// GenerateEnumMappingDescription appends "value = Name" lines to the
	// description of integer enums.
	GenerateEnumMappingDescription bool
	// GenerateCustomNullableProperties writes x-nullable outside OpenAPI 3.
	GenerateCustomNullableProperties bool

	// ExcludedTypeNames are base types that are never inherited from.
	ExcludedTypeNames []string

	SchemaType SchemaType
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		DefaultReferenceTypeNullHandling: typedesc.NullHandlingNull,
		GenerateAbstractProperties:       false,
		GenerateAbstractSchemas:          true,
		GenerateKnownTypes:               true,
		SchemaType:                       SchemaTypeJSONSchema,
	}
}

func (s Settings) flatten(t *TypeDescriptor) bool {
	return s.FlattenInheritanceHierarchy || (t != nil && t.Flatten)
}

func (s Settings) excluded(t *TypeDescriptor) bool {
	for _, name := range s.ExcludedTypeNames {
		if name == t.Name {
			return true
		}
	}
	return false
}
