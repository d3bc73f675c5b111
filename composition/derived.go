package composition

import (
	"slices"

	"github.com/erraggy/schemagraph/schema"
)

// Derived is a definition inheriting from some base.
type Derived struct {
	Name   string
	Schema *schema.Schema
}

// DerivedSchemas returns every definition of doc that inherits from base,
// directly or not, ordered by definition name.
func DerivedSchemas(doc *schema.Document, base *schema.Schema) []Derived {
	target := base.ActualSchema()
	names := doc.DefinitionNames()
	slices.Sort(names)

	var out []Derived
	for _, name := range names {
		def, _ := doc.Definition(name)
		actual := def.ActualSchema()
		if actual == target {
			continue
		}
		if Inherits(actual, target) {
			out = append(out, Derived{Name: name, Schema: actual})
		}
	}
	return out
}

// RegisterDiscriminatorMappings adds every derived definition to the
// mapping of each base declaring a discriminator, keyed by definition name.
// Definitions already mapped under any value are left alone.
func RegisterDiscriminatorMappings(doc *schema.Document) {
	for _, name := range doc.DefinitionNames() {
		def, _ := doc.Definition(name)
		base := def.ActualSchema()
		if base.Discriminator == nil {
			continue
		}
		for _, d := range DerivedSchemas(doc, base) {
			if mapped(base.Discriminator, d.Schema) {
				continue
			}
			base.Discriminator.AddMapping(d.Name, d.Schema)
			doc.TrackAll(base)
		}
	}
}

func mapped(d *schema.Discriminator, target *schema.Schema) bool {
	if d.Mapping == nil {
		return false
	}
	for _, m := range d.Mapping.All() {
		if m.ActualSchema() == target {
			return true
		}
	}
	return false
}
