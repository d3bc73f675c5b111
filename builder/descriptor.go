package builder

import (
	"fmt"

	"github.com/erraggy/schemagraph/constraints"
	"github.com/erraggy/schemagraph/typedesc"
)

// Kind is the shape of a described host type.
type Kind int

const (
	KindAny Kind = iota
	KindObject
	KindEnum
	KindArray
	KindDictionary
	KindString
	KindInteger
	KindNumber
	KindBoolean
	KindDateTime
	KindDate
	KindTime
	KindDuration
	KindUUID
	KindBinary
)

var kindNames = [...]string{
	KindAny:        "any",
	KindObject:     "object",
	KindEnum:       "enum",
	KindArray:      "array",
	KindDictionary: "dictionary",
	KindString:     "string",
	KindInteger:    "integer",
	KindNumber:     "number",
	KindBoolean:    "boolean",
	KindDateTime:   "date-time",
	KindDate:       "date",
	KindTime:       "time",
	KindDuration:   "duration",
	KindUUID:       "uuid",
	KindBinary:     "binary",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// TypeDescriptor describes one host type. Descriptors are compared by
// pointer: two descriptors for the same host type must be the same value,
// otherwise the type is generated twice.
type TypeDescriptor struct {
	Name        string
	Kind        Kind
	Format      string
	Description string

	// IsNullable is set when the type itself admits null.
	IsNullable bool
	// IsReferenceType makes nullability follow
	// Settings.DefaultReferenceTypeNullHandling.
	IsReferenceType bool
	IsAbstract      bool
	IsInterface     bool

	Base       *TypeDescriptor
	Interfaces []*TypeDescriptor
	Properties []PropertyDescriptor

	// Discriminator names the property that selects derived types.
	Discriminator string
	KnownTypes    []*TypeDescriptor

	// Values and Names are index aligned. Names may be empty for string
	// enums, in which case the values are their own names.
	Values      []any
	Names       []string
	IntegerEnum bool

	ElementType *TypeDescriptor
	ValueType   *TypeDescriptor

	// Flatten merges this type's base into it regardless of
	// Settings.FlattenInheritanceHierarchy.
	Flatten bool

	// Facts apply to every use of the type.
	Facts constraints.AttributeProvider
}

// PropertyDescriptor describes one member of an object type.
type PropertyDescriptor struct {
	Name        string
	Type        *TypeDescriptor
	Description string
	Default     any

	Required typedesc.Required
	// IsNullable is set when the member can hold null even though its
	// type cannot, e.g. a pointer field.
	IsNullable bool
	IsObsolete bool
	IsReadOnly bool
	Ignore     bool

	Facts constraints.AttributeProvider
}

func (t *TypeDescriptor) requiresReference() bool {
	return t != nil && (t.Kind == KindObject || t.Kind == KindEnum)
}

func (t *TypeDescriptor) displayName() string {
	if t == nil || t.Name == "" {
		return "Anonymous"
	}
	return t.Name
}
