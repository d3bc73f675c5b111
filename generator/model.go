package generator

import (
	"fmt"
	"slices"

	"github.com/erraggy/schemagraph/composition"
	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/typedesc"
)

// ClassModel describes one object type to emit.
type ClassModel struct {
	Name        string
	Description string
	IsAbstract  bool

	// BaseClass is the resolved name of the inherited schema; empty when
	// HasInheritance is false.
	BaseClass      string
	HasInheritance bool

	// Properties are the properties the class declares itself, without the
	// inheritance discriminator.
	Properties []PropertyModel

	// HasDiscriminator is set on the class declaring a discriminator;
	// Discriminator is the property name and DiscriminatorField its
	// generated identifier.
	HasDiscriminator   bool
	Discriminator      string
	DiscriminatorField string
	// BaseDiscriminator is the discriminator property in effect for this
	// class, declared by itself or an ancestor, and DiscriminatorValue the
	// value identifying this class.
	BaseDiscriminator  string
	DiscriminatorValue string
	DerivedClassNames  []string

	// AdditionalPropertiesType is the type of undeclared members; empty
	// when the schema does not describe them.
	AdditionalPropertiesType string

	Schema *schema.Schema
}

// PropertyModel describes one property of a class.
type PropertyModel struct {
	// Name is the JSON member name, FieldName the generated identifier.
	Name      string
	FieldName string
	Type      string

	IsRequired bool
	IsOptional bool
	IsNullable bool

	IsArray       bool
	ArrayItemType string

	IsDiscriminator bool
	Description     string

	Schema *schema.Schema
}

// EnumModel describes an enumeration type.
type EnumModel struct {
	Name         string
	Description  string
	Entries      []EnumEntry
	IsStringEnum bool
	Schema       *schema.Schema
}

// EnumEntry is one named enumeration value.
type EnumEntry struct {
	Name  string
	Value any
}

// modelBuilder builds models against one document, resolver and naming
// configuration.
type modelBuilder struct {
	doc       *schema.Document
	registry  *TypeNameRegistry
	resolver  TypeResolver
	enumNames EnumNameGenerator
	propNames PropertyNameGenerator
}

// classModel builds the class model of node, which the registry knows as name.
func (b *modelBuilder) classModel(name string, node *schema.Schema) (*ClassModel, error) {
	a := node.ActualTypeSchema()
	eff, err := composition.Resolve(a, composition.WithDocument(b.doc), composition.WithFlatten(true))
	if err != nil {
		return nil, fmt.Errorf("generator: %s: %w", name, err)
	}
	own, err := composition.ActualProperties(a)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	m := &ClassModel{
		Name:        name,
		Description: cleanDescription(a.Description),
		IsAbstract:  a.IsAbstract,
		Schema:      a,
	}

	if base := composition.InheritedSchema(a); base != nil {
		if bd := typedesc.Describe(base); bd.Kind == typedesc.KindObject {
			m.HasInheritance = true
			m.BaseClass = b.resolver.Resolve(base, false, "")
		} else if bd.IsDictionary {
			// A dictionary base has no class to extend; its values become
			// the additional properties.
			m.AdditionalPropertiesType = b.resolver.Resolve(bd.ValueSchema, false, name+"Value")
		}
	}
	if a.AdditionalPropertiesSchema != nil {
		m.AdditionalPropertiesType = b.resolver.Resolve(a.AdditionalPropertiesSchema, false, name+"Value")
	}

	fieldNames := make(map[string]bool)
	if m.HasInheritance {
		fieldNames[m.BaseClass] = true
	}
	if m.AdditionalPropertiesType != "" {
		fieldNames["AdditionalProperties"] = true
	}
	if a.Discriminator != nil {
		m.HasDiscriminator = true
		m.Discriminator = a.Discriminator.PropertyName
		m.DiscriminatorField = uniqueName(fieldNames, b.propNames.Generate(m.Discriminator))
	}
	if eff.Discriminator != nil {
		m.BaseDiscriminator = eff.Discriminator.PropertyName
		m.DiscriminatorValue = discriminatorValue(eff.Discriminator, a, name)
	}

	for propName, p := range own.All() {
		pm := b.propertyModel(name, propName, p, eff.Required, m.BaseDiscriminator)
		if pm.IsDiscriminator {
			continue
		}
		pm.FieldName = uniqueName(fieldNames, pm.FieldName)
		m.Properties = append(m.Properties, pm)
	}

	if b.doc != nil {
		for _, d := range composition.DerivedSchemas(b.doc, a) {
			m.DerivedClassNames = append(m.DerivedClassNames, b.registry.Register(d.Schema, d.Name))
		}
	}
	return m, nil
}

// discriminatorValue returns the mapping key selecting target, falling back
// to the class name.
func discriminatorValue(d *schema.Discriminator, target *schema.Schema, name string) string {
	if d.Mapping != nil {
		for value, m := range d.Mapping.All() {
			if m.ActualSchema() == target {
				return value
			}
		}
	}
	return name
}

// propertyModel builds the model of one property of the class named
// parent. discriminator is the inheritance discriminator in effect.
func (b *modelBuilder) propertyModel(parent, name string, p *schema.Schema, required []string, discriminator string) PropertyModel {
	hint := toTypeName(b.propNames.Generate(name))
	d := typedesc.Describe(p)
	pm := PropertyModel{
		Name:            name,
		FieldName:       b.propNames.Generate(name),
		IsNullable:      d.IsNullable,
		IsArray:         d.IsArray,
		IsDiscriminator: discriminator != "" && name == discriminator,
		Description:     cleanDescription(p.ActualSchema().Description),
		Schema:          p,
	}
	pm.IsRequired = slices.Contains(required, name)
	pm.IsOptional = !pm.IsRequired
	pm.Type = b.resolver.Resolve(p, pm.IsNullable, parent+hint)
	if pm.IsArray {
		pm.ArrayItemType = "any"
		if d.ItemSchema != nil {
			pm.ArrayItemType = b.resolver.Resolve(d.ItemSchema, d.ItemSchema.IsNullable(), parent+hint+"Item")
		}
	}
	return pm
}

// enumModel builds the enumeration model of node. Null values are
// skipped; they only make the enumeration nullable.
func (b *modelBuilder) enumModel(name string, node *schema.Schema) *EnumModel {
	d := typedesc.Describe(node)
	s := d.Schema
	m := &EnumModel{
		Name:         name,
		Description:  cleanDescription(s.Description),
		IsStringEnum: !d.IsIntegerEnum,
		Schema:       s,
	}
	used := make(map[string]bool)
	for i, v := range s.Enumeration {
		if v == nil {
			continue
		}
		entry := b.enumNames.Generate(i, d.EnumNames[i], v, s)
		m.Entries = append(m.Entries, EnumEntry{Name: uniqueName(used, entry), Value: v})
	}
	return m
}
