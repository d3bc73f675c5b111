package builder

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemagraph/composition"
	"github.com/erraggy/schemagraph/constraints"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/erraggy/schemagraph/typedesc"
)

// pass is one Generate call.
type pass struct {
	settings Settings
	logger   schema.Logger
	reg      *resolver.Registry
	doc      *schema.Document
	names    map[*schema.Schema]string // definition names by node
}

// generate fills node with the schema of t.
func (p *pass) generate(t *TypeDescriptor, node *schema.Schema) error {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindObject:
		return p.generateObject(t, node)
	case KindEnum:
		return p.generateEnum(t, node)
	case KindArray:
		node.Type = schema.TypeArray
		if t.ElementType == nil || t.ElementType.Kind == KindAny {
			node.Item = &schema.Schema{}
		} else {
			item, err := p.withReference(t.ElementType, t.ElementType.IsNullable, nil)
			if err != nil {
				return err
			}
			node.Item = item
		}
	case KindDictionary:
		node.Type = schema.TypeObject
		if t.ValueType == nil || t.ValueType.Kind == KindAny {
			node.AdditionalPropertiesSchema = &schema.Schema{}
		} else {
			value, err := p.withReference(t.ValueType, t.ValueType.IsNullable, nil)
			if err != nil {
				return err
			}
			node.AdditionalPropertiesSchema = value
		}
	default:
		p.applyPrimitive(t, node)
	}
	if node.Description == "" {
		node.Description = t.Description
	}
	if t.Facts != nil {
		constraints.Apply(node, t.Facts)
	}
	return nil
}

func (p *pass) applyPrimitive(t *TypeDescriptor, node *schema.Schema) {
	switch t.Kind {
	case KindString:
		node.Type = schema.TypeString
	case KindInteger:
		node.Type = schema.TypeInteger
	case KindNumber:
		node.Type = schema.TypeNumber
	case KindBoolean:
		node.Type = schema.TypeBoolean
	case KindDateTime:
		node.Type, node.Format = schema.TypeString, schema.FormatDateTime
	case KindDate:
		node.Type, node.Format = schema.TypeString, schema.FormatDate
	case KindTime:
		node.Type, node.Format = schema.TypeString, schema.FormatTime
	case KindDuration:
		node.Type, node.Format = schema.TypeString, schema.FormatDuration
	case KindUUID:
		node.Type, node.Format = schema.TypeString, schema.FormatUUID
	case KindBinary:
		if p.settings.SchemaType == SchemaTypeSwagger2 {
			node.Type = schema.TypeFile
		} else {
			node.Type, node.Format = schema.TypeString, schema.FormatBinary
		}
	}
	if t.Format != "" {
		node.Format = t.Format
	}
}

// schemaFor returns the registered node for an object or enum type,
// generating it on first use. Nodes other than the root are appended to the
// definitions table as soon as they are registered.
func (p *pass) schemaFor(t *TypeDescriptor) (*schema.Schema, error) {
	variant := t.Kind == KindEnum && t.IntegerEnum
	if p.reg.HasSchema(t, variant) {
		return p.reg.GetSchema(t, variant)
	}
	node := &schema.Schema{}
	if err := p.generate(t, node); err != nil {
		return nil, err
	}
	return node, nil
}

// register records node for t before it is filled in.
func (p *pass) register(t *TypeDescriptor, variant bool, node *schema.Schema) error {
	if err := p.reg.AddSchema(t, variant, node); err != nil {
		return err
	}
	if node != p.doc.Root {
		p.names[node] = p.reg.AppendSchema(node, t.Name)
	}
	return nil
}

func (p *pass) nameOf(t *TypeDescriptor, node *schema.Schema) string {
	if name, ok := p.names[node]; ok {
		return name
	}
	return t.displayName()
}

func (p *pass) generateObject(t *TypeDescriptor, node *schema.Schema) error {
	if err := p.register(t, false, node); err != nil {
		return err
	}

	actual, err := p.generateInheritance(t, node, map[*TypeDescriptor]bool{})
	if err != nil {
		return err
	}
	if actual == nil {
		if err := p.generateProperties(t, node, t.displayName()); err != nil {
			return err
		}
		actual = node
	}

	if !actual.Type.Has(schema.TypeArray) {
		actual.Type = schema.TypeObject
	}
	actual.Description = t.Description
	if p.settings.GenerateAbstractSchemas && t.IsAbstract {
		actual.IsAbstract = true
	}

	if err := p.generateDiscriminator(t, node, actual); err != nil {
		return err
	}
	return p.generateKnownTypes(t)
}

// generateInheritance handles t's base and interfaces. It returns the node
// holding t's own properties when that is not node itself, i.e. the second
// allOf entry.
func (p *pass) generateInheritance(t *TypeDescriptor, node *schema.Schema, merged map[*TypeDescriptor]bool) (*schema.Schema, error) {
	if base := t.Base; base != nil && !p.settings.excluded(base) {
		if p.settings.flatten(t) {
			if base.Kind != KindDictionary && base.Kind != KindArray && !merged[base] {
				merged[base] = true
				if _, err := p.generateInheritance(base, node, merged); err != nil {
					return nil, err
				}
				if err := p.generateProperties(base, node, t.displayName()); err != nil {
					return nil, err
				}
			}
		} else {
			actual := &schema.Schema{}
			if err := p.generateProperties(t, actual, t.displayName()); err != nil {
				return nil, err
			}
			if actual.HasProperties() || base.requiresReference() {
				baseSchema, err := p.baseSchema(base)
				if err != nil {
					return nil, err
				}
				if err := checkRedeclared(t, baseSchema, actual); err != nil {
					return nil, err
				}
				node.AllOf = append(node.AllOf, baseSchema, actual)
				return actual, nil
			}
			// array and dictionary bases are inlined
			if err := p.generate(base, node); err != nil {
				return nil, err
			}
			return node, nil
		}
	}

	if p.settings.flatten(t) && p.settings.GenerateAbstractProperties {
		for _, iface := range t.Interfaces {
			if iface == nil || merged[iface] || iface.Kind == KindDictionary || iface.Kind == KindArray {
				continue
			}
			merged[iface] = true
			if _, err := p.generateInheritance(iface, node, merged); err != nil {
				return nil, err
			}
			if err := p.generateProperties(iface, node, t.displayName()); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// checkRedeclared rejects own properties of t that its base chain already
// declares.
func checkRedeclared(t *TypeDescriptor, base, own *schema.Schema) error {
	if !own.HasProperties() {
		return nil
	}
	eff, err := composition.Resolve(base.ActualSchema())
	if err != nil {
		return err
	}
	for name := range own.Properties.All() {
		if eff.Properties.Has(name) {
			return schemaerrors.NewDuplicateProperty(t.displayName(), name)
		}
	}
	return nil
}

func (p *pass) baseSchema(base *TypeDescriptor) (*schema.Schema, error) {
	if !base.requiresReference() {
		s := &schema.Schema{}
		if err := p.generate(base, s); err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := p.schemaFor(base)
	if err != nil {
		return nil, err
	}
	return schema.NewReference(s.ActualSchema()), nil
}

// generateProperties adds the members of t to parent. A member already on
// parent from a merged base is replaced; a member declared twice by t is an
// error.
func (p *pass) generateProperties(t *TypeDescriptor, parent *schema.Schema, typeName string) error {
	seen := make(map[string]bool, len(t.Properties))
	for i := range t.Properties {
		prop := &t.Properties[i]
		if prop.Ignore || (prop.IsObsolete && p.settings.IgnoreObsoleteProperties) {
			continue
		}
		if seen[prop.Name] {
			return schemaerrors.NewDuplicateProperty(typeName, prop.Name)
		}
		seen[prop.Name] = true
		if _, exists := parent.Property(prop.Name); exists {
			p.logger.Debug("property replaces inherited declaration", "type", typeName, "property", prop.Name)
		}

		s, err := p.property(prop, parent)
		if err != nil {
			return err
		}
		parent.SetProperty(prop.Name, s)
	}
	return nil
}

func (p *pass) property(prop *PropertyDescriptor, parent *schema.Schema) (*schema.Schema, error) {
	t := prop.Type
	if t == nil {
		t = &TypeDescriptor{Kind: KindAny}
	}
	var hasRequiredFact bool
	if prop.Facts != nil {
		_, hasRequiredFact = prop.Facts.RequiredConstraint()
	}
	desc := typedesc.DescribeProperty(typedesc.PropertyFacts{
		TypeIsNullable:  prop.IsNullable || t.IsNullable,
		IsReferenceType: t.IsReferenceType,
		Required:        prop.Required,
		HasRequiredFact: hasRequiredFact,
	}, p.settings.DefaultReferenceTypeNullHandling)
	if desc.IsRequired {
		parent.AddRequired(prop.Name)
	}

	transform := func(s, typeSchema *schema.Schema) {
		if !desc.IsNullable && p.settings.SchemaType == SchemaTypeSwagger2 {
			parent.AddRequired(prop.Name)
		}
		if prop.IsReadOnly {
			s.IsReadOnly = true
		}
		if prop.IsObsolete {
			s.IsDeprecated = true
		}
		if s.Description == "" {
			s.Description = prop.Description
		}
		if prop.Default != nil {
			s.Default = prop.Default
		}
		if prop.Facts != nil {
			constraints.Apply(s, prop.Facts)
		}
	}
	return p.withReference(t, desc.IsNullable, transform)
}

func (p *pass) generateEnum(t *TypeDescriptor, node *schema.Schema) error {
	variant := t.IntegerEnum
	if p.reg.HasSchema(t, variant) {
		target, err := p.reg.GetSchema(t, variant)
		if err != nil {
			return err
		}
		node.Reference = target
		return nil
	}
	if len(t.Names) > 0 && len(t.Values) > 0 && len(t.Names) != len(t.Values) {
		return &schemaerrors.StructureError{
			TypeName: t.displayName(),
			Message:  fmt.Sprintf("enum has %d values but %d names", len(t.Values), len(t.Names)),
		}
	}

	node.Description = t.Description
	if t.IntegerEnum {
		node.Type = schema.TypeInteger
		node.Enumeration = append([]any(nil), t.Values...)
		node.EnumerationNames = append([]string(nil), t.Names...)
		if len(node.EnumerationNames) == 0 {
			for _, v := range t.Values {
				node.EnumerationNames = append(node.EnumerationNames, fmt.Sprint(v))
			}
		}
		if p.settings.GenerateEnumMappingDescription {
			lines := make([]string, len(node.Enumeration))
			for i, v := range node.Enumeration {
				lines[i] = fmt.Sprintf("%v = %s", v, node.EnumerationNames[i])
			}
			node.Description = strings.TrimSpace(node.Description + "\n\n" + strings.Join(lines, "\n"))
		}
	} else {
		node.Type = schema.TypeString
		values := t.Values
		if len(values) == 0 {
			for _, n := range t.Names {
				values = append(values, n)
			}
		}
		for i, v := range values {
			node.Enumeration = append(node.Enumeration, fmt.Sprint(v))
			name := fmt.Sprint(v)
			if i < len(t.Names) {
				name = t.Names[i]
			}
			node.EnumerationNames = append(node.EnumerationNames, name)
		}
	}
	return p.register(t, variant, node)
}

// generateDiscriminator declares t's discriminator on node and its property
// on actual, or registers t with the nearest discriminator of its bases.
func (p *pass) generateDiscriminator(t *TypeDescriptor, node, actual *schema.Schema) error {
	if p.settings.flatten(t) {
		return nil
	}
	if name := t.Discriminator; name != "" {
		if existing, ok := actual.Property(name); ok && !existing.ActualSchema().Type.Has(schema.TypeString) {
			return &schemaerrors.StructureError{
				TypeName: t.displayName(),
				Property: name,
				Message:  "discriminator property must be a string property on type",
			}
		}
		node.Discriminator = &schema.Discriminator{PropertyName: name}
		actual.SetProperty(name, &schema.Schema{Type: schema.TypeString})
		actual.AddRequired(name)
		return nil
	}

	for _, base := range composition.AllInheritedSchemas(node) {
		if d := base.ActualSchema().Discriminator; d != nil {
			d.AddMapping(p.nameOf(t, node), node)
			return nil
		}
	}
	return nil
}

func (p *pass) generateKnownTypes(t *TypeDescriptor) error {
	if !p.settings.GenerateKnownTypes {
		return nil
	}
	for _, known := range t.KnownTypes {
		if known == nil || known.Kind != KindObject {
			return &schemaerrors.StructureError{
				TypeName: t.displayName(),
				Message:  "known type must be an object type",
			}
		}
		if p.reg.HasSchema(known, false) {
			continue
		}
		if _, err := p.schemaFor(known); err != nil {
			return err
		}
	}
	return nil
}
