// Package describe summarizes a schema node for people and tools: its
// kind, inheritance and effective property list.
package describe

import (
	"github.com/goccy/go-json"

	"github.com/erraggy/schemagraph/composition"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/typedesc"
)

// Property is one effective property of an object node.
type Property struct {
	Name        string `json:"name"                  yaml:"name"`
	Kind        string `json:"kind"                  yaml:"kind"`
	Format      string `json:"format,omitempty"      yaml:"format,omitempty"`
	Type        string `json:"type,omitempty"        yaml:"type,omitempty"`
	Required    bool   `json:"required"              yaml:"required"`
	Nullable    bool   `json:"nullable"              yaml:"nullable"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Summary describes one node.
type Summary struct {
	Name        string   `json:"name,omitempty"        yaml:"name,omitempty"`
	Title       string   `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        string   `json:"kind"                  yaml:"kind"`
	Types       []string `json:"types,omitempty"       yaml:"types,omitempty"`
	Format      string   `json:"format,omitempty"      yaml:"format,omitempty"`
	Nullable    bool     `json:"nullable"              yaml:"nullable"`
	Abstract    bool     `json:"abstract,omitempty"    yaml:"abstract,omitempty"`

	// EnumValues are the enum members as JSON literals.
	EnumValues []string `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`
	EnumNames  []string `json:"enum_names,omitempty"  yaml:"enum_names,omitempty"`
	ItemType   string   `json:"item_type,omitempty"   yaml:"item_type,omitempty"`
	ValueType  string   `json:"value_type,omitempty"  yaml:"value_type,omitempty"`

	Base               string     `json:"base,omitempty"                yaml:"base,omitempty"`
	Ancestors          []string   `json:"ancestors,omitempty"           yaml:"ancestors,omitempty"`
	Derived            []string   `json:"derived,omitempty"             yaml:"derived,omitempty"`
	Discriminator      string     `json:"discriminator,omitempty"       yaml:"discriminator,omitempty"`
	DiscriminatorOwner string     `json:"discriminator_owner,omitempty" yaml:"discriminator_owner,omitempty"`
	Properties         []Property `json:"properties,omitempty"          yaml:"properties,omitempty"`

	Definitions []string `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// Select returns the node a user-supplied ref names: the root for "", a
// definition for a bare name, otherwise the target of a JSON pointer such
// as "#/definitions/Pet".
func Select(doc *schema.Document, ref string) (*schema.Schema, error) {
	if ref == "" {
		return doc.Root, nil
	}
	if def, ok := doc.Definition(ref); ok {
		return def, nil
	}
	return resolver.Lookup(doc, ref)
}

// Node summarizes node, a member of doc. Object nodes get their effective
// properties with inheritance merged.
func Node(doc *schema.Document, node *schema.Schema) (*Summary, error) {
	desc := typedesc.Describe(node)
	actual := desc.Schema
	if actual == nil {
		actual = node.ActualSchema()
	}

	out := &Summary{
		Kind:     desc.Kind.String(),
		Format:   desc.Format,
		Nullable: desc.IsNullable,
	}
	if actual != nil {
		out.Title = actual.Title
		out.Description = actual.Description
		out.Types = actual.Type.Names()
		out.Abstract = actual.IsAbstract
	}
	if name, ok := doc.DefinitionName(node); ok {
		out.Name = name
	}

	switch desc.Kind {
	case typedesc.KindEnum:
		out.EnumNames = desc.EnumNames
		for _, v := range actual.Enumeration {
			out.EnumValues = append(out.EnumValues, jsonLiteral(v))
		}
	case typedesc.KindArray:
		out.ItemType = TypeLabel(doc, desc.ItemSchema)
	case typedesc.KindDictionary:
		out.ValueType = TypeLabel(doc, desc.ValueSchema)
	case typedesc.KindObject:
		if err := object(doc, actual, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Document summarizes the root of doc and lists its definitions.
func Document(doc *schema.Document) (*Summary, error) {
	out, err := Node(doc, doc.Root)
	if err != nil {
		return nil, err
	}
	out.Definitions = doc.DefinitionNames()
	return out, nil
}

func object(doc *schema.Document, node *schema.Schema, out *Summary) error {
	eff, err := composition.Resolve(node,
		composition.WithDocument(doc),
		composition.WithFlatten(true),
	)
	if err != nil {
		return err
	}

	if eff.Base != nil {
		out.Base = label(doc, eff.Base)
	}
	for _, anc := range eff.Chain {
		out.Ancestors = append(out.Ancestors, label(doc, anc))
	}
	for _, d := range composition.DerivedSchemas(doc, node) {
		out.Derived = append(out.Derived, d.Name)
	}
	if eff.Discriminator != nil {
		out.Discriminator = eff.Discriminator.PropertyName
		out.DiscriminatorOwner = label(doc, eff.DiscriminatorOwner)
	}

	required := make(map[string]bool, len(eff.Required))
	for _, name := range eff.Required {
		required[name] = true
	}
	for name, p := range eff.Properties.All() {
		pd := typedesc.Describe(p)
		prop := Property{
			Name:     name,
			Kind:     pd.Kind.String(),
			Format:   pd.Format,
			Type:     TypeLabel(doc, p),
			Required: required[name],
			Nullable: pd.IsNullable,
		}
		if a := p.ActualSchema(); a != nil {
			prop.Description = a.Description
		}
		out.Properties = append(out.Properties, prop)
	}
	return nil
}

// TypeLabel names the type of s: its definition name when it is one,
// "T[]" for arrays, "map<T>" for dictionaries and the kind otherwise.
func TypeLabel(doc *schema.Document, s *schema.Schema) string {
	if s == nil {
		return typedesc.KindAny.String()
	}
	if name, ok := doc.DefinitionName(s); ok {
		return name
	}
	d := typedesc.Describe(s)
	switch d.Kind {
	case typedesc.KindArray:
		return TypeLabel(doc, d.ItemSchema) + "[]"
	case typedesc.KindDictionary:
		return "map<" + TypeLabel(doc, d.ValueSchema) + ">"
	}
	return d.Kind.String()
}

func label(doc *schema.Document, s *schema.Schema) string {
	if name, ok := doc.DefinitionName(s); ok {
		return name
	}
	if a := s.ActualSchema(); a != nil && a.Title != "" {
		return a.Title
	}
	return "<anonymous>"
}

func jsonLiteral(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}
