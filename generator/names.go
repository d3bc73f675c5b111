package generator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erraggy/schemagraph/internal/naming"
	"github.com/erraggy/schemagraph/schema"
)

// maxDescriptionLength is the maximum length for descriptions in generated
// comments before truncation.
const maxDescriptionLength = 200

// TypeNameRegistry assigns one generated type name per schema node. Nodes
// are keyed by identity after dereferencing, so every reference to the same
// definition resolves to the same name. Names are taken, in order, from
// x-typeName, the definition name, the title and the caller's hint;
// collisions get a numeric suffix (Pet, Pet2, ...).
type TypeNameRegistry struct {
	doc   *schema.Document
	names map[*schema.Schema]string
	taken map[string]bool
	order []*schema.Schema
}

// NewTypeNameRegistry returns an empty registry. doc may be nil, in which
// case definition names are not consulted.
func NewTypeNameRegistry(doc *schema.Document) *TypeNameRegistry {
	return &TypeNameRegistry{
		doc:   doc,
		names: make(map[*schema.Schema]string),
		taken: make(map[string]bool),
	}
}

// Register returns the name of node, assigning one on first sight.
func (r *TypeNameRegistry) Register(node *schema.Schema, hint string) string {
	key := node.ActualTypeSchema()
	if name, ok := r.names[key]; ok {
		return name
	}
	name := uniqueName(r.taken, toTypeName(r.candidate(key, hint)))
	r.names[key] = name
	r.order = append(r.order, key)
	return name
}

func (r *TypeNameRegistry) candidate(s *schema.Schema, hint string) string {
	if s.TypeName != "" {
		return s.TypeName
	}
	if r.doc != nil {
		if name, ok := r.doc.DefinitionName(s); ok {
			return name
		}
	}
	if s.Title != "" {
		return s.Title
	}
	if hint != "" {
		return hint
	}
	return "Anonymous"
}

// Lookup returns the name already assigned to node.
func (r *TypeNameRegistry) Lookup(node *schema.Schema) (string, bool) {
	name, ok := r.names[node.ActualTypeSchema()]
	return name, ok
}

// Len returns the number of registered types.
func (r *TypeNameRegistry) Len() int {
	return len(r.order)
}

// At returns the i-th registered node in registration order.
func (r *TypeNameRegistry) At(i int) *schema.Schema {
	return r.order[i]
}

// toTypeName converts a schema name into a PascalCase identifier valid in
// both TypeScript and Go.
func toTypeName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(naming.ToTitleCase(p))
	}
	name := b.String()
	if name == "" {
		return "Type"
	}
	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsLetter(r) {
		name = "T" + name
	}
	return name
}

// EnumNameGenerator names the entries of an enumeration.
type EnumNameGenerator interface {
	// Generate returns the entry name for the value at index. name is the
	// display name (x-enumNames or the value's text).
	Generate(index int, name string, value any, node *schema.Schema) string
}

var invalidNameCharacters = regexp.MustCompile(`[^\p{Lu}\p{Ll}\p{Lt}\p{Lm}\p{Lo}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}\p{Cf}]`)

var operatorNames = map[string]string{
	"=":  "Eq",
	"!=": "Ne",
	">":  "Gt",
	"<":  "Lt",
	">=": "Ge",
	"<=": "Le",
	"~=": "Approx",
}

// DefaultEnumNameGenerator spells comparison operators and signs out,
// upper-camel-cases the rest and replaces characters that cannot appear in
// an identifier with underscores.
type DefaultEnumNameGenerator struct{}

// Generate implements EnumNameGenerator.
func (DefaultEnumNameGenerator) Generate(_ int, name string, _ any, _ *schema.Schema) string {
	if name == "" {
		return "Empty"
	}
	if op, ok := operatorNames[name]; ok {
		name = op
	}
	switch {
	case strings.HasPrefix(name, "-"):
		name = "Minus" + name[1:]
	case strings.HasPrefix(name, "+"):
		name = "Plus" + name[1:]
	}
	if strings.HasPrefix(name, "_-") {
		name = "__" + name[2:]
	}
	name = strings.ReplaceAll(name, ":", "-")
	name = strings.ReplaceAll(name, `"`, "")
	return invalidNameCharacters.ReplaceAllString(naming.ToUpperCamelCase(name, true), "_")
}

// PropertyNameGenerator names the field generated for a property.
type PropertyNameGenerator interface {
	Generate(property string) string
}

// DefaultPropertyNameGenerator drops '@', treats dots like hyphens,
// upper-camel-cases and turns the remaining hyphens into underscores:
// "@odata.type" becomes "OdataType".
type DefaultPropertyNameGenerator struct{}

// Generate implements PropertyNameGenerator.
func (DefaultPropertyNameGenerator) Generate(property string) string {
	name := strings.ReplaceAll(property, "@", "")
	name = strings.ReplaceAll(name, ".", "-")
	return strings.ReplaceAll(naming.ToUpperCamelCase(name, true), "-", "_")
}

// uniqueName returns name, or name with the smallest numeric suffix not in used.
func uniqueName(used map[string]bool, name string) string {
	unique := name
	for i := 2; used[unique]; i++ {
		unique = name + strconv.Itoa(i)
	}
	used[unique] = true
	return unique
}

// cleanDescription prepares a description for a single-line comment.
// It removes newlines, trims whitespace, and truncates long descriptions.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxDescriptionLength {
		runes := []rune(s)
		s = string(runes[:maxDescriptionLength-3]) + "..."
	}
	return s
}
