package builder

import (
	"fmt"
	"reflect"

	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/schema"
)

// draft04 is the $schema written for the JSON Schema dialect.
const draft04 = "http://json-schema.org/draft-04/schema#"

// Builder generates schema documents from type descriptors. A Builder is
// safe for concurrent use; each Generate call runs its own pass with its own
// registry.
type Builder struct {
	settings  Settings
	logger    schema.Logger
	reflector *Reflector
}

// New creates a Builder.
func New(opts ...Option) (*Builder, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("builder: invalid options: %w", err)
	}
	return &Builder{
		settings:  cfg.settings,
		logger:    cfg.logger,
		reflector: newReflector(cfg.processor),
	}, nil
}

// Settings returns the settings in use.
func (b *Builder) Settings() Settings { return b.settings }

// Generate builds a document whose root describes root. Every object and
// enum type reached from root, other than root itself, becomes a definition.
func (b *Builder) Generate(root *TypeDescriptor) (*schema.Document, error) {
	if root == nil {
		return nil, fmt.Errorf("builder: root descriptor is nil")
	}
	node := &schema.Schema{}
	doc := schema.NewDocument(node)
	reg, err := resolver.NewRegistry(doc, resolver.WithLogger(b.logger))
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	p := &pass{
		settings: b.settings,
		logger:   b.logger.With("root", root.displayName()),
		reg:      reg,
		doc:      doc,
		names:    make(map[*schema.Schema]string),
	}

	if err := p.generate(root, node); err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	if b.settings.SchemaType == SchemaTypeJSONSchema {
		node.SchemaURI = draft04
	}
	if node.Title == "" && root.Name != "" && root.requiresReference() {
		node.Title = root.Name
	}
	doc.TrackAll(node)
	p.logger.Debug("generated document", "definitions", len(doc.DefinitionNames()), "nodes", len(doc.Nodes()))
	return doc, nil
}

// GenerateFor describes the dynamic type of v with the Go type front end
// and generates a document for it.
func (b *Builder) GenerateFor(v any) (*schema.Document, error) {
	if v == nil {
		return nil, fmt.Errorf("builder: value is nil")
	}
	root, err := b.reflector.Describe(reflect.TypeOf(v))
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	return b.Generate(root)
}

// Generate is a convenience wrapper around New and Builder.Generate.
func Generate(root *TypeDescriptor, opts ...Option) (*schema.Document, error) {
	b, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return b.Generate(root)
}
