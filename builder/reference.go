package builder

import (
	"reflect"

	"github.com/erraggy/schemagraph/schema"
)

// transformFunc decorates the schema used at a reference site. typeSchema is
// the schema of the referenced type.
type transformFunc func(s, typeSchema *schema.Schema)

// withReference returns the schema to use where t appears: the schema of t
// itself for inline kinds, otherwise a node referring to the definition of
// t. Nullability and decorations are written the way the dialect allows.
func (p *pass) withReference(t *TypeDescriptor, nullable bool, transform transformFunc) (*schema.Schema, error) {
	var referenced *schema.Schema
	if !t.requiresReference() {
		s := &schema.Schema{}
		if err := p.generate(t, s); err != nil {
			return nil, err
		}
		if s.Reference == nil {
			if transform != nil {
				transform(s, s)
			}
			if nullable {
				p.nullable(s)
			}
			return s, nil
		}
		referenced = s.ActualSchema()
	} else {
		s, err := p.schemaFor(t)
		if err != nil {
			return nil, err
		}
		referenced = s.ActualSchema()
	}

	referencing := &schema.Schema{}
	if transform != nil {
		transform(referencing, referenced)
	}
	if nullable {
		switch {
		case p.settings.SchemaType == SchemaTypeJSONSchema:
			referencing.OneOf = append(referencing.OneOf, &schema.Schema{Type: schema.TypeNull})
		case p.settings.SchemaType == SchemaTypeOpenAPI3 || p.settings.GenerateCustomNullableProperties:
			referencing.IsNullableRaw = schema.Ptr(true)
		}
	}

	direct := p.settings.AllowReferencesWithProperties || isBare(referencing)
	switch {
	case direct && len(referencing.OneOf) == 0:
		referencing.Reference = referenced
	case p.settings.SchemaType != SchemaTypeSwagger2:
		referencing.OneOf = append(referencing.OneOf, schema.NewReference(referenced))
	default:
		referencing.AllOf = append(referencing.AllOf, schema.NewReference(referenced))
	}
	return referencing, nil
}

// nullable marks an inline schema as admitting null.
func (p *pass) nullable(s *schema.Schema) {
	switch {
	case p.settings.SchemaType == SchemaTypeJSONSchema:
		if s.Type == schema.TypeNone {
			s.OneOf = append(s.OneOf, &schema.Schema{}, &schema.Schema{Type: schema.TypeNull})
		} else {
			s.Type |= schema.TypeNull
		}
	case p.settings.SchemaType == SchemaTypeOpenAPI3 || p.settings.GenerateCustomNullableProperties:
		s.IsNullableRaw = schema.Ptr(true)
	}
}

// isBare reports whether s carries no keyword at all.
func isBare(s *schema.Schema) bool {
	return reflect.ValueOf(*s).IsZero()
}
