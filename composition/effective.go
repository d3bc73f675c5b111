package composition

import (
	"fmt"
	"slices"

	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// EffectiveSchema is the merged view of a class-like node.
type EffectiveSchema struct {
	// Schema is the resolved node itself.
	Schema *schema.Schema
	// Properties holds inherited properties, base-most first, then the
	// node's own.
	Properties *sequencedmap.Map[string, *schema.Schema]
	// Required lists required names in the same order.
	Required []string
	// AllOf is [base reference, own schema] when the node inherits and
	// flattening is off; nil otherwise.
	AllOf []*schema.Schema
	// Base is the inherited schema, nil without inheritance.
	Base *schema.Schema
	// Chain lists all ancestors, nearest first.
	Chain []*schema.Schema
	// Discriminator is the nearest discriminator along node and its chain;
	// DiscriminatorOwner is the node declaring it.
	Discriminator      *schema.Discriminator
	DiscriminatorOwner *schema.Schema
}

// PropertyNames returns the effective property names in order.
func (e *EffectiveSchema) PropertyNames() []string {
	names := make([]string, 0, e.Properties.Len())
	for name := range e.Properties.All() {
		names = append(names, name)
	}
	return names
}

// Resolve computes the effective schema of node. Running it any number of
// times on the same graph gives the same result; it never modifies nodes.
func Resolve(node *schema.Schema, opts ...Option) (*EffectiveSchema, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("composition: invalid options: %w", err)
	}
	a := node.ActualSchema()
	if a == nil {
		return nil, &schemaerrors.StructureError{Message: "cannot resolve a nil schema"}
	}

	eff := &EffectiveSchema{
		Schema:     a,
		Properties: sequencedmap.New[string, *schema.Schema](),
		Chain:      AllInheritedSchemas(a),
	}
	if len(eff.Chain) > 0 {
		eff.Base = eff.Chain[0]
	}

	typeName := displayName(cfg.doc, a)
	merge := func(props *sequencedmap.Map[string, *schema.Schema]) error {
		for name, p := range props.All() {
			if eff.Properties.Has(name) {
				if !cfg.flatten {
					return schemaerrors.NewDuplicateProperty(typeName, name)
				}
				cfg.logger.Debug("redeclared property replaces inherited one", "type", typeName, "property", name)
			}
			eff.Properties.Set(name, p)
		}
		return nil
	}

	for i := len(eff.Chain) - 1; i >= 0; i-- {
		anc := eff.Chain[i]
		props, err := actualProperties(anc, displayName(cfg.doc, anc))
		if err != nil {
			return nil, fmt.Errorf("composition: %w", err)
		}
		if err := merge(props); err != nil {
			return nil, fmt.Errorf("composition: %w", err)
		}
		eff.Required = appendUnique(eff.Required, actualRequired(anc)...)
	}

	own, err := actualProperties(a, typeName)
	if err != nil {
		return nil, fmt.Errorf("composition: %w", err)
	}
	if err := merge(own); err != nil {
		return nil, fmt.Errorf("composition: %w", err)
	}
	eff.Required = appendUnique(eff.Required, actualRequired(a)...)

	if eff.Base != nil && !cfg.flatten {
		eff.AllOf = splitAllOf(a, own)
	}

	for _, s := range append([]*schema.Schema{a}, eff.Chain...) {
		if s.Discriminator != nil {
			eff.Discriminator = s.Discriminator
			eff.DiscriminatorOwner = s
			break
		}
	}
	return eff, nil
}

// splitAllOf returns [base reference, own]. The node's existing entries are
// reused when it is already written that way.
func splitAllOf(a *schema.Schema, own *sequencedmap.Map[string, *schema.Schema]) []*schema.Schema {
	bi := baseIndex(a)
	baseRef := a.AllOf[bi]
	if len(a.AllOf) == 2 && bi == 0 && !a.HasProperties() {
		return []*schema.Schema{baseRef, a.AllOf[1]}
	}
	ownSchema := schema.New(schema.TypeObject)
	for name, p := range own.All() {
		ownSchema.SetProperty(name, p)
	}
	ownSchema.RequiredProperties = actualRequired(a)
	return []*schema.Schema{baseRef, ownSchema}
}

func appendUnique(dst []string, names ...string) []string {
	for _, n := range names {
		if !slices.Contains(dst, n) {
			dst = append(dst, n)
		}
	}
	return dst
}
