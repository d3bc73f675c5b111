package builder

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EnumValuer is implemented by named Go types with a closed set of values.
// Integer-kinded types become integer enums named by names; string-kinded
// types become string enums.
type EnumValuer interface {
	EnumValues() (values []any, names []string)
}

// Polymorphic is implemented by struct types that serve as the base of a
// discriminated hierarchy.
type Polymorphic interface {
	// Discriminator names the property selecting the derived type.
	Discriminator() string
	// KnownTypes returns a zero value of every derived type.
	KnownTypes() []any
}

// Documented is implemented by types that carry a description.
type Documented interface {
	SchemaDescription() string
}

// FieldProcessor is called for each struct field after the front end
// described it, and may adjust the descriptor. It enables support for tag
// formats other than the built-in ones:
//
//	func(p *builder.PropertyDescriptor, field reflect.StructField) {
//	    if title := field.Tag.Get("title"); title != "" {
//	        p.Description = title
//	    }
//	}
type FieldProcessor func(p *PropertyDescriptor, field reflect.StructField)

var (
	timeType        = reflect.TypeOf(time.Time{})
	uuidType        = reflect.TypeOf(uuid.UUID{})
	rawMessageType  = reflect.TypeOf(json.RawMessage{})
	enumValuerType  = reflect.TypeOf((*EnumValuer)(nil)).Elem()
	polymorphicType = reflect.TypeOf((*Polymorphic)(nil)).Elem()
	documentedType  = reflect.TypeOf((*Documented)(nil)).Elem()
)

// Reflector turns Go types into descriptors. Descriptors are cached per
// type, so the same Go type always yields the same descriptor.
//
// Type mappings:
//   - string → string
//   - intN, uintN → integer (format int32 or int64)
//   - float32, float64 → number (format float or double)
//   - bool → boolean
//   - []byte → string (format byte)
//   - []T, [N]T → array of T
//   - map[K]T → dictionary of T
//   - struct → object; the first embedded struct is the base type, later
//     embedded structs are merged
//   - *T → T, nullable
//   - time.Time → string (format date-time)
//   - uuid.UUID → string (format uuid)
//   - interface types and json.RawMessage → any
type Reflector struct {
	mu        sync.Mutex
	cache     *descriptorCache
	processor FieldProcessor
}

// NewReflector creates a Reflector.
func NewReflector(opts ...Option) (*Reflector, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("builder: invalid options: %w", err)
	}
	return newReflector(cfg.processor), nil
}

func newReflector(processor FieldProcessor) *Reflector {
	return &Reflector{cache: newDescriptorCache(), processor: processor}
}

// Describe returns the descriptor of t.
func (r *Reflector) Describe(t reflect.Type) (*TypeDescriptor, error) {
	if t == nil {
		return &TypeDescriptor{Kind: KindAny}, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.describe(t)
}

func (r *Reflector) describe(t reflect.Type) (*TypeDescriptor, error) {
	isPointer := false
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
		isPointer = true
	}
	d, err := r.describeValue(t)
	if err != nil || !isPointer {
		return d, err
	}
	if d.requiresReference() {
		// shared descriptors stay non-nullable; the member decides
		return d, nil
	}
	nullable := *d
	nullable.IsNullable = true
	return &nullable, nil
}

func (r *Reflector) describeValue(t reflect.Type) (*TypeDescriptor, error) {
	switch t {
	case timeType:
		return &TypeDescriptor{Kind: KindDateTime}, nil
	case uuidType:
		return &TypeDescriptor{Kind: KindUUID}, nil
	case rawMessageType:
		return &TypeDescriptor{Kind: KindAny}, nil
	}
	if d := r.cache.get(t); d != nil {
		return d, nil
	}

	if t.Implements(enumValuerType) {
		return r.describeEnum(t), nil
	}

	switch t.Kind() {
	case reflect.Struct:
		return r.describeStruct(t)
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &TypeDescriptor{Kind: KindString, Format: "byte"}, nil
		}
		elem, err := r.describe(t.Elem())
		if err != nil {
			return nil, err
		}
		return &TypeDescriptor{Kind: KindArray, ElementType: elem, IsReferenceType: t.Kind() == reflect.Slice}, nil
	case reflect.Map:
		value, err := r.describe(t.Elem())
		if err != nil {
			return nil, err
		}
		return &TypeDescriptor{Kind: KindDictionary, ValueType: value, IsReferenceType: true}, nil
	case reflect.String:
		return &TypeDescriptor{Kind: KindString}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &TypeDescriptor{Kind: KindInteger, Format: "int32"}, nil
	case reflect.Int64, reflect.Uint64:
		return &TypeDescriptor{Kind: KindInteger, Format: "int64"}, nil
	case reflect.Float32:
		return &TypeDescriptor{Kind: KindNumber, Format: "float"}, nil
	case reflect.Float64:
		return &TypeDescriptor{Kind: KindNumber, Format: "double"}, nil
	case reflect.Bool:
		return &TypeDescriptor{Kind: KindBoolean}, nil
	case reflect.Interface:
		return &TypeDescriptor{Kind: KindAny}, nil
	default:
		return nil, fmt.Errorf("unsupported Go type %s", t)
	}
}

func (r *Reflector) name(t reflect.Type) string {
	return typeName(t, func(n string) bool { return r.cache.conflicts(n, t) })
}

func (r *Reflector) describeEnum(t reflect.Type) *TypeDescriptor {
	values, names := reflect.Zero(t).Interface().(EnumValuer).EnumValues()
	d := &TypeDescriptor{
		Name:        r.name(t),
		Kind:        KindEnum,
		Values:      values,
		Names:       names,
		IntegerEnum: t.Kind() != reflect.String,
		Description: description(t),
	}
	r.cache.set(t, d.Name, d)
	return d
}

func (r *Reflector) describeStruct(t reflect.Type) (*TypeDescriptor, error) {
	d := &TypeDescriptor{
		Name:        r.name(t),
		Kind:        KindObject,
		Description: description(t),
	}
	// cached before fields so recursive types refer to d
	r.cache.set(t, d.Name, d)

	props, err := r.fields(t, d)
	if err != nil {
		return nil, err
	}
	d.Properties = props

	// methods promoted from an embedded base belong to the base
	if t.Implements(polymorphicType) && (d.Base == nil || d.Base.Discriminator == "") {
		p := reflect.Zero(t).Interface().(Polymorphic)
		d.Discriminator = p.Discriminator()
		for _, v := range p.KnownTypes() {
			known, err := r.describe(reflect.TypeOf(v))
			if err != nil {
				return nil, err
			}
			d.KnownTypes = append(d.KnownTypes, known)
		}
	}
	return d, nil
}

// fields describes the exported fields of t. The first embedded struct
// becomes d's base; fields of later embedded structs are promoted.
func (r *Reflector) fields(t reflect.Type, d *TypeDescriptor) ([]PropertyDescriptor, error) {
	var props []PropertyDescriptor
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() && !field.Anonymous {
			continue
		}

		jsonTag := field.Tag.Get(tagJSON)
		if jsonTag == "-" {
			continue
		}
		name, jsonOpts := parseJSONTag(jsonTag)

		if field.Anonymous && name == "" {
			embedded := field.Type
			for embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				base, err := r.describe(embedded)
				if err != nil {
					return nil, err
				}
				if d.Base == nil {
					d.Base = base
				} else {
					props = append(props, base.Properties...)
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}

		p, err := r.field(field, name, jsonOpts)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}
		if r.processor != nil {
			r.processor(&p, field)
		}
		props = append(props, p)
	}
	return props, nil
}

func (r *Reflector) field(field reflect.StructField, name string, jsonOpts []string) (PropertyDescriptor, error) {
	typ, err := r.describe(field.Type)
	if err != nil {
		return PropertyDescriptor{}, err
	}
	p := PropertyDescriptor{
		Name:        name,
		Type:        typ,
		Description: field.Tag.Get(tagDescription),
		Required:    fieldRequired(field, jsonOpts),
		IsNullable:  field.Type.Kind() == reflect.Pointer,
		IsObsolete:  boolTag(field, tagDeprecated),
		IsReadOnly:  boolTag(field, tagReadOnly),
	}
	facts, err := fieldFacts(field)
	if err != nil {
		return PropertyDescriptor{}, err
	}
	if facts != nil {
		p.Facts = facts
	}
	return p, nil
}

func description(t reflect.Type) string {
	if t.Implements(documentedType) {
		return reflect.Zero(t).Interface().(Documented).SchemaDescription()
	}
	return ""
}
