package schema

import (
	"slices"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Schema is one node of a schema graph. A node whose Reference is set is an
// alias: every other field is ignored and queries go through ActualSchema.
//
// Nodes are shared freely; several properties may point at the same
// definition. The owning Document decides their lifetime.
type Schema struct {
	ID          string
	SchemaURI   string
	Title       string
	Description string
	Format      string
	// TypeName is the preferred generated type name (x-typeName).
	TypeName string

	Type    ObjectType
	Default any
	Example any

	// RefPath is the textual $ref; Reference is the resolved edge.
	RefPath   string
	Reference *Schema

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	// Object keywords
	Properties                   *sequencedmap.Map[string, *Schema]
	RequiredProperties           []string
	AdditionalPropertiesSchema   *Schema
	DisallowAdditionalProperties bool // additionalProperties: false
	PatternProperties            *sequencedmap.Map[string, *Schema]
	MinProperties                int
	MaxProperties                int

	// Array keywords. Item is the single-schema form of items, Items the tuple form.
	Item                    *Schema
	Items                   []*Schema
	AdditionalItemsSchema   *Schema
	DisallowAdditionalItems bool // additionalItems: false
	MinItems                int
	MaxItems                int
	UniqueItems             bool

	// Enumeration and EnumerationNames (x-enumNames) are index aligned.
	Enumeration      []any
	EnumerationNames []string

	// Numeric keywords
	Minimum            *float64
	Maximum            *float64
	IsExclusiveMinimum bool
	IsExclusiveMaximum bool
	MultipleOf         *float64

	// String keywords
	MinLength *int
	MaxLength *int
	Pattern   string

	Discriminator *Discriminator

	// IsNullableRaw carries x-nullable / nullable when present.
	IsNullableRaw *bool
	IsAbstract    bool
	IsDeprecated  bool
	IsReadOnly    bool
	IsWriteOnly   bool

	Definitions *sequencedmap.Map[string, *Schema]

	// Extensions holds x-* keys that have no dedicated field.
	Extensions *sequencedmap.Map[string, any]
}

// Discriminator names the property whose value selects a derived schema.
type Discriminator struct {
	PropertyName string
	// Mapping values are reference nodes pointing at the derived schemas.
	Mapping *sequencedmap.Map[string, *Schema]
}

// AddMapping registers target under value. The stored node is an alias of
// target's actual schema, so mapping entries never own schemas.
func (d *Discriminator) AddMapping(value string, target *Schema) {
	if d.Mapping == nil {
		d.Mapping = sequencedmap.New[string, *Schema]()
	}
	d.Mapping.Set(value, &Schema{Reference: target.ActualSchema()})
}

// MappedSchema returns the actual schema registered for value.
func (d *Discriminator) MappedSchema(value string) (*Schema, bool) {
	if d == nil || d.Mapping == nil {
		return nil, false
	}
	s, ok := d.Mapping.Get(value)
	if !ok {
		return nil, false
	}
	return s.ActualSchema(), true
}

// New returns an empty schema with the given type flags.
func New(t ObjectType) *Schema {
	return &Schema{Type: t}
}

// NewReference returns an alias node for target.
func NewReference(target *Schema) *Schema {
	return &Schema{Reference: target}
}

// ActualSchema follows the reference chain to its terminal node. Chains are
// followed by identity, so an alias loop returns the last distinct node
// instead of spinning.
func (s *Schema) ActualSchema() *Schema {
	if s == nil || s.Reference == nil {
		return s
	}
	seen := map[*Schema]struct{}{s: {}}
	cur := s
	for cur.Reference != nil {
		if _, ok := seen[cur.Reference]; ok {
			return cur
		}
		seen[cur.Reference] = struct{}{}
		cur = cur.Reference
	}
	return cur
}

// ActualTypeSchema is ActualSchema, additionally unwrapping the single
// reference wrappers produced for nullable or annotated references
// ({"oneOf": [{"type": "null"}, {"$ref": ...}]} and {"allOf": [{"$ref": ...}]}).
func (s *Schema) ActualTypeSchema() *Schema {
	a := s.ActualSchema()
	if a == nil {
		return nil
	}
	if w := a.wrappedReference(); w != nil {
		return w.ActualSchema()
	}
	return a
}

// wrappedReference returns the referenced node when s is only a wrapper
// around one reference.
func (s *Schema) wrappedReference() *Schema {
	if s.Type&^TypeNull != TypeNone || s.HasProperties() || s.Item != nil || len(s.Items) > 0 {
		return nil
	}
	if len(s.AllOf) == 1 && len(s.OneOf) == 0 && s.AllOf[0].Reference != nil {
		return s.AllOf[0]
	}
	if len(s.AllOf) == 0 && len(s.OneOf) > 0 {
		var ref *Schema
		for _, o := range s.OneOf {
			switch {
			case o.Reference != nil && ref == nil:
				ref = o
			case o.Reference == nil && o.Type == TypeNull:
			default:
				return nil
			}
		}
		return ref
	}
	return nil
}

// HasReference reports whether s is an alias or a wrapped alias.
func (s *Schema) HasReference() bool {
	if s == nil {
		return false
	}
	return s.Reference != nil || s.wrappedReference() != nil
}

// IsAnyType reports whether s admits any value: no type, no properties,
// no composition keywords and no reference.
func (s *Schema) IsAnyType() bool {
	if s == nil {
		return true
	}
	return s.Type == TypeNone &&
		s.Reference == nil &&
		!s.HasProperties() &&
		len(s.AllOf) == 0 &&
		len(s.AnyOf) == 0 &&
		len(s.OneOf) == 0 &&
		s.Not == nil
}

// AllowAdditionalProperties reports whether properties outside Properties
// and PatternProperties are accepted when no AdditionalPropertiesSchema is set.
func (s *Schema) AllowAdditionalProperties() bool { return !s.DisallowAdditionalProperties }

// AllowAdditionalItems reports whether items beyond a tuple are accepted
// when no AdditionalItemsSchema is set.
func (s *Schema) AllowAdditionalItems() bool { return !s.DisallowAdditionalItems }

// HasProperties reports whether s declares at least one property.
func (s *Schema) HasProperties() bool {
	return s.Properties != nil && s.Properties.Len() > 0
}

// Property returns the declared property schema for name.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}

// SetProperty declares or replaces a property, keeping its original position
// when it already exists.
func (s *Schema) SetProperty(name string, p *Schema) {
	if s.Properties == nil {
		s.Properties = sequencedmap.New[string, *Schema]()
	}
	s.Properties.Set(name, p)
}

// RemoveProperty deletes a property declaration.
func (s *Schema) RemoveProperty(name string) {
	if s.Properties != nil {
		s.Properties.Delete(name)
	}
}

// PropertyNames returns the declared property names in declaration order.
func (s *Schema) PropertyNames() []string {
	if s.Properties == nil {
		return nil
	}
	names := make([]string, 0, s.Properties.Len())
	for name := range s.Properties.All() {
		names = append(names, name)
	}
	return names
}

// IsRequired reports whether name is listed in RequiredProperties.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.RequiredProperties, name)
}

// AddRequired lists name as required. Repeated calls are no-ops.
func (s *Schema) AddRequired(name string) {
	if !s.IsRequired(name) {
		s.RequiredProperties = append(s.RequiredProperties, name)
	}
}

// RemoveRequired removes name from RequiredProperties.
func (s *Schema) RemoveRequired(name string) {
	s.RequiredProperties = slices.DeleteFunc(s.RequiredProperties, func(r string) bool { return r == name })
}

// SetPatternProperty declares a pattern property.
func (s *Schema) SetPatternProperty(pattern string, p *Schema) {
	if s.PatternProperties == nil {
		s.PatternProperties = sequencedmap.New[string, *Schema]()
	}
	s.PatternProperties.Set(pattern, p)
}

// SetExtension stores an x-* value.
func (s *Schema) SetExtension(key string, v any) {
	if s.Extensions == nil {
		s.Extensions = sequencedmap.New[string, any]()
	}
	s.Extensions.Set(key, v)
}

// IsNullable reports whether the node itself admits null: a Null flag, an
// x-nullable/nullable marker, or a null branch inside oneOf.
func (s *Schema) IsNullable() bool {
	a := s.ActualSchema()
	if a == nil {
		return false
	}
	if a.Type.Has(TypeNull) {
		return true
	}
	if a.IsNullableRaw != nil && *a.IsNullableRaw {
		return true
	}
	for _, o := range a.OneOf {
		if o.Reference == nil && o.Type == TypeNull {
			return true
		}
	}
	return false
}

// IsEnumeration reports whether s declares enum values.
func (s *Schema) IsEnumeration() bool {
	return len(s.Enumeration) > 0
}

// Ptr returns a pointer to v; handy for the optional numeric keywords.
func Ptr[T any](v T) *T { return &v }
