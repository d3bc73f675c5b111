package typedesc

import (
	"fmt"

	"github.com/erraggy/schemagraph/schema"
)

// Kind is the single shape a generator renders for a node.
type Kind int

const (
	KindAny Kind = iota
	KindDictionary
	KindEnum
	KindArray
	KindObject
	KindString
	KindInteger
	KindNumber
	KindBoolean
	KindNull
	KindFile
)

var kindNames = [...]string{
	KindAny:        "any",
	KindDictionary: "dictionary",
	KindEnum:       "enum",
	KindArray:      "array",
	KindObject:     "object",
	KindString:     "string",
	KindInteger:    "integer",
	KindNumber:     "number",
	KindBoolean:    "boolean",
	KindNull:       "null",
	KindFile:       "file",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Description is the classification of one node.
type Description struct {
	// Type is the declared flag set of the described node.
	Type   schema.ObjectType
	Kind   Kind
	Format string

	IsDictionary bool
	IsEnum       bool
	IsArray      bool
	IsObject     bool
	IsAny        bool
	IsNullable   bool

	// IsIntegerEnum is set for enums backed by integer values; their display
	// names come from x-enumNames.
	IsIntegerEnum bool
	// EnumNames are the display names, index aligned with Schema.Enumeration.
	EnumNames []string

	// ValueSchema is the dictionary value schema.
	ValueSchema *schema.Schema
	// ItemSchema is the array item schema; nil for an array of anything.
	ItemSchema *schema.Schema
	// Schema is the node that was classified after dereferencing.
	Schema *schema.Schema
}

// Describe classifies node. References, including the nullable oneOf and
// annotated allOf wrappers, are followed first; a wrapper still contributes
// its own nullability.
func Describe(node *schema.Schema) Description {
	if node == nil {
		return Description{Kind: KindAny, IsAny: true}
	}
	s := node.ActualTypeSchema()
	d := Description{
		Type:       s.Type,
		Format:     s.Format,
		Schema:     s,
		IsNullable: node.IsNullable() || s.IsNullable(),
	}

	switch {
	case isDictionary(s):
		d.IsDictionary = true
		d.Kind = KindDictionary
		d.ValueSchema = s.AdditionalPropertiesSchema
	case isEnum(s):
		d.IsEnum = true
		d.Kind = KindEnum
		d.IsIntegerEnum = s.Type.Has(schema.TypeInteger)
		d.EnumNames = enumNames(s, d.IsIntegerEnum)
	case isArray(s):
		d.IsArray = true
		d.Kind = KindArray
		d.ItemSchema = s.Item
	case s.Type.Has(schema.TypeObject) || (s.Type == schema.TypeNone && (s.HasProperties() || len(s.AllOf) > 0)):
		d.IsObject = true
		d.Kind = KindObject
	case s.IsAnyType():
		d.IsAny = true
		d.Kind = KindAny
	default:
		d.Kind = primitiveKind(s.Type)
	}
	return d
}

func isDictionary(s *schema.Schema) bool {
	return s.Type.Has(schema.TypeObject) && s.AdditionalPropertiesSchema != nil && !s.HasProperties()
}

func isEnum(s *schema.Schema) bool {
	return s.IsEnumeration() && s.Type.HasAny(schema.TypeInteger|schema.TypeString)
}

// isArray accepts an untyped node carrying items as an array too; an array
// without items is an array of anything.
func isArray(s *schema.Schema) bool {
	if s.Type.Has(schema.TypeArray) {
		return true
	}
	return s.Type == schema.TypeNone && (s.Item != nil || len(s.Items) > 0)
}

func primitiveKind(t schema.ObjectType) Kind {
	switch {
	case t.Has(schema.TypeString):
		return KindString
	case t.Has(schema.TypeInteger):
		return KindInteger
	case t.Has(schema.TypeNumber):
		return KindNumber
	case t.Has(schema.TypeBoolean):
		return KindBoolean
	case t.Has(schema.TypeFile):
		return KindFile
	case t.Has(schema.TypeNull):
		return KindNull
	default:
		return KindAny
	}
}

func enumNames(s *schema.Schema, integer bool) []string {
	if integer && len(s.EnumerationNames) == len(s.Enumeration) {
		return append([]string(nil), s.EnumerationNames...)
	}
	names := make([]string, len(s.Enumeration))
	for i, v := range s.Enumeration {
		if v == nil {
			names[i] = "null"
			continue
		}
		names[i] = fmt.Sprint(v)
	}
	return names
}
