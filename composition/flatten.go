package composition

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemagraph/internal/pathutil"
	"github.com/erraggy/schemagraph/schema"
)

// Flatten merges the properties and required names of every ancestor into
// node and drops its allOf inheritance. Ancestors that no remaining
// definition references are detached from doc's definitions table; the
// nodes themselves stay in the arena. Flattening an already flat node does
// nothing.
func Flatten(doc *schema.Document, node *schema.Schema, opts ...Option) error {
	a := node.ActualSchema()
	eff, err := Resolve(a, append([]Option{WithDocument(doc)}, append(opts, WithFlatten(true))...)...)
	if err != nil {
		return err
	}
	if len(eff.Chain) == 0 && len(a.AllOf) == 0 {
		return nil
	}

	a.Properties = eff.Properties
	a.RequiredProperties = eff.Required
	if a.Type == schema.TypeNone {
		a.Type = schema.TypeObject
	}
	// parts whose properties were merged go away; other constraints stay
	kept := a.AllOf[:0:0]
	for _, part := range a.AllOf {
		target := part.ActualTypeSchema()
		if !isObjectLike(target) {
			kept = append(kept, part)
		}
	}
	a.AllOf = kept
	if len(kept) == 0 {
		a.AllOf = nil
	}

	detachUnreferenced(doc, eff.Chain)
	return nil
}

// FlattenAll flattens every definition of doc that inherits, in table order.
func FlattenAll(doc *schema.Document, opts ...Option) error {
	for _, name := range doc.DefinitionNames() {
		def, ok := doc.Definition(name)
		if !ok {
			continue // detached while flattening an earlier definition
		}
		if InheritedSchema(def) == nil {
			continue
		}
		if err := Flatten(doc, def, opts...); err != nil {
			return fmt.Errorf("flattening %s: %w", name, err)
		}
	}
	return nil
}

func detachUnreferenced(doc *schema.Document, chain []*schema.Schema) {
	detached := map[string]bool{}
	for changed := true; changed; {
		changed = false
		for _, anc := range chain {
			name, ok := doc.DefinitionName(anc)
			if !ok || detached[name] {
				continue
			}
			if def, _ := doc.Definition(name); def != anc {
				continue // the table holds an alias, not the ancestor itself
			}
			excluded := withName(detached, name)
			if referenced(doc, anc, excluded) {
				continue
			}
			doc.DetachDefinition(name)
			detached[name] = true
			changed = true
		}
	}
}

func withName(set map[string]bool, name string) map[string]bool {
	out := make(map[string]bool, len(set)+1)
	for k := range set {
		out[k] = true
	}
	out[name] = true
	return out
}

// referenced reports whether any node outside the excluded definitions
// refers to target.
func referenced(doc *schema.Document, target *schema.Schema, excluded map[string]bool) bool {
	prefixes := make([]string, 0, len(excluded))
	for name := range excluded {
		prefixes = append(prefixes, pathutil.DefinitionRef(name))
	}
	inExcluded := func(pointer string) bool {
		for _, p := range prefixes {
			if pointer == p || strings.HasPrefix(pointer, p+"/") {
				return true
			}
		}
		return false
	}

	found := false
	_ = schema.Walk(doc.Root, func(pointer string, s *schema.Schema) error {
		if found || inExcluded(pointer) {
			return nil
		}
		if s.Reference != nil && s.ActualSchema() == target {
			found = true
			return nil
		}
		if s.Discriminator != nil && s.Discriminator.Mapping != nil {
			for _, m := range s.Discriminator.Mapping.All() {
				if m.ActualSchema() == target {
					found = true
				}
			}
		}
		return nil
	})
	return found
}
