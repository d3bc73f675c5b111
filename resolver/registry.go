package resolver

import (
	"fmt"
	"strconv"

	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
)

// registryKey identifies a registered schema. Identity is usually a type
// name, a descriptor pointer or a reflect.Type; variant separates the integer
// and string renderings of the same enum type.
type registryKey struct {
	identity any
	variant  bool
}

// Registry maps type identities to the schema nodes generated for them and
// names nodes in the document's definitions table.
type Registry struct {
	doc    *schema.Document
	logger schema.Logger

	byKey  map[registryKey]*schema.Schema
	byNode map[*schema.Schema]string // node -> definition name
}

// NewRegistry creates a registry that appends definitions to doc.
// Only WithLogger is meaningful here.
func NewRegistry(doc *schema.Document, opts ...Option) (*Registry, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolver: invalid options: %w", err)
	}
	if doc == nil {
		doc = schema.NewDocument(nil)
	}
	return &Registry{
		doc:    doc,
		logger: cfg.logger,
		byKey:  make(map[registryKey]*schema.Schema),
		byNode: make(map[*schema.Schema]string),
	}, nil
}

// Document returns the document the registry appends to.
func (r *Registry) Document() *schema.Document { return r.doc }

// HasSchema reports whether identity is registered. Identity must be comparable.
func (r *Registry) HasSchema(identity any, variant bool) bool {
	_, ok := r.byKey[registryKey{identity, variant}]
	return ok
}

// GetSchema returns the node registered for identity.
func (r *Registry) GetSchema(identity any, variant bool) (*schema.Schema, error) {
	s, ok := r.byKey[registryKey{identity, variant}]
	if !ok {
		return nil, &schemaerrors.ReferenceError{
			Ref:     fmt.Sprint(identity),
			Message: "no schema registered for type",
		}
	}
	return s, nil
}

// AddSchema registers node for identity. Generators call it before they
// fill the node in, so a recursive type can refer to itself.
func (r *Registry) AddSchema(identity any, variant bool, node *schema.Schema) error {
	key := registryKey{identity, variant}
	if _, exists := r.byKey[key]; exists {
		r.logger.Warn("duplicate schema registration", "type", fmt.Sprint(identity), "variant", variant)
		return &schemaerrors.StructureError{
			TypeName: fmt.Sprint(identity),
			Message:  "a schema is already registered for this type",
			Cause:    schemaerrors.ErrDuplicateSchema,
		}
	}
	r.byKey[key] = node
	r.doc.Track(node)
	return nil
}

// AppendSchema adds node to the definitions table and returns its name.
// The first node keeps nameHint; later distinct nodes get nameHint2,
// nameHint3 and so on. Appending the same node again returns its name.
func (r *Registry) AppendSchema(node *schema.Schema, nameHint string) string {
	if name, ok := r.byNode[node]; ok {
		return name
	}
	if name, ok := r.doc.DefinitionName(node); ok {
		if def, _ := r.doc.Definition(name); def == node {
			r.byNode[node] = name
			return name
		}
	}
	if nameHint == "" {
		nameHint = "Anonymous"
	}

	name := nameHint
	for i := 2; r.doc.HasDefinition(name); i++ {
		name = nameHint + strconv.Itoa(i)
	}
	r.doc.SetDefinition(name, node)
	r.byNode[node] = name
	r.logger.Debug("appended definition", "name", name)
	return name
}
