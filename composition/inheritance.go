package composition

import (
	"slices"

	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// InheritedSchema returns the base schema of node: the target of the first
// allOf entry that references an object schema. It returns nil when node
// does not inherit.
func InheritedSchema(node *schema.Schema) *schema.Schema {
	a := node.ActualSchema()
	if a == nil {
		return nil
	}
	if i := baseIndex(a); i >= 0 {
		return a.AllOf[i].ActualTypeSchema()
	}
	return nil
}

func baseIndex(a *schema.Schema) int {
	for i, entry := range a.AllOf {
		if !entry.HasReference() {
			continue
		}
		target := entry.ActualTypeSchema()
		if target != a && isObjectLike(target) {
			return i
		}
	}
	return -1
}

func isObjectLike(s *schema.Schema) bool {
	return s.Type == schema.TypeNone || s.Type.Has(schema.TypeObject)
}

// AllInheritedSchemas returns the inheritance chain of node, nearest base
// first. A chain that loops back is cut at the first repeated node.
func AllInheritedSchemas(node *schema.Schema) []*schema.Schema {
	seen := map[*schema.Schema]bool{node.ActualSchema(): true}
	var chain []*schema.Schema
	for base := InheritedSchema(node); base != nil && !seen[base]; base = InheritedSchema(base) {
		seen[base] = true
		chain = append(chain, base)
	}
	return chain
}

// Inherits reports whether base appears in node's inheritance chain. A node
// does not inherit from itself.
func Inherits(node, base *schema.Schema) bool {
	target := base.ActualSchema()
	return slices.Contains(AllInheritedSchemas(node), target)
}

// ActualProperties returns the properties node declares itself plus those
// of its non-inherited allOf parts, in that order. A name declared twice is
// a duplicate property error.
func ActualProperties(node *schema.Schema) (*sequencedmap.Map[string, *schema.Schema], error) {
	a := node.ActualSchema()
	return actualProperties(a, displayName(nil, a))
}

func actualProperties(a *schema.Schema, typeName string) (*sequencedmap.Map[string, *schema.Schema], error) {
	out := sequencedmap.New[string, *schema.Schema]()
	seen := map[*schema.Schema]bool{}
	var collect func(s *schema.Schema) error
	collect = func(s *schema.Schema) error {
		if seen[s] {
			return nil
		}
		seen[s] = true
		if s.Properties != nil {
			for name, p := range s.Properties.All() {
				if out.Has(name) {
					return schemaerrors.NewDuplicateProperty(typeName, name)
				}
				out.Set(name, p)
			}
		}
		base := baseIndex(s)
		for i, part := range s.AllOf {
			if i == base {
				continue
			}
			if err := collect(part.ActualTypeSchema()); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(a); err != nil {
		return nil, err
	}
	return out, nil
}

// actualRequired mirrors actualProperties for required names.
func actualRequired(a *schema.Schema) []string {
	var out []string
	seen := map[*schema.Schema]bool{}
	var collect func(s *schema.Schema)
	collect = func(s *schema.Schema) {
		if seen[s] {
			return
		}
		seen[s] = true
		for _, r := range s.RequiredProperties {
			if !slices.Contains(out, r) {
				out = append(out, r)
			}
		}
		base := baseIndex(s)
		for i, part := range s.AllOf {
			if i != base {
				collect(part.ActualTypeSchema())
			}
		}
	}
	collect(a)
	return out
}

// displayName picks the name used for s in errors.
func displayName(doc *schema.Document, s *schema.Schema) string {
	if s.TypeName != "" {
		return s.TypeName
	}
	if doc != nil {
		if name, ok := doc.DefinitionName(s); ok {
			return name
		}
	}
	return s.Title
}
