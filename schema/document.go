package schema

import (
	"strconv"

	"github.com/erraggy/schemagraph/internal/pathutil"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// NodeID is the stable arena index of a node within its Document.
type NodeID int

// Document owns a schema graph. Every node loaded or built for the document
// is tracked in an arena and keeps its NodeID for the document's lifetime.
// The root's Definitions is the table of named schemas; detaching a name
// from that table never frees the node, so references to it stay valid.
type Document struct {
	Root *Schema
	// Source identifies where the document came from (path, URL or id).
	Source string

	nodes []*Schema
	ids   map[*Schema]NodeID
}

// NewDocument wraps root and tracks every node reachable from it.
func NewDocument(root *Schema) *Document {
	if root == nil {
		root = &Schema{}
	}
	d := &Document{Root: root, ids: make(map[*Schema]NodeID)}
	d.TrackAll(root)
	return d
}

// Track registers s in the arena and returns its id. Tracking an already
// known node returns the existing id.
func (d *Document) Track(s *Schema) NodeID {
	if id, ok := d.ids[s]; ok {
		return id
	}
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, s)
	d.ids[s] = id
	return id
}

// TrackAll registers s and every node reachable from it, references included.
func (d *Document) TrackAll(s *Schema) {
	for _, n := range reachableOrder(s) {
		d.Track(n)
	}
}

// ID returns the arena id of s.
func (d *Document) ID(s *Schema) (NodeID, bool) {
	id, ok := d.ids[s]
	return id, ok
}

// Node returns the node with the given id, or nil.
func (d *Document) Node(id NodeID) *Schema {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return d.nodes[id]
}

// Nodes returns every tracked node in id order.
func (d *Document) Nodes() []*Schema {
	out := make([]*Schema, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// Definition returns the named definition.
func (d *Document) Definition(name string) (*Schema, bool) {
	if d.Root.Definitions == nil {
		return nil, false
	}
	return d.Root.Definitions.Get(name)
}

// HasDefinition reports whether name is in the definitions table.
func (d *Document) HasDefinition(name string) bool {
	return d.Root.Definitions != nil && d.Root.Definitions.Has(name)
}

// SetDefinition adds or replaces a named definition and tracks it.
func (d *Document) SetDefinition(name string, s *Schema) {
	if d.Root.Definitions == nil {
		d.Root.Definitions = sequencedmap.New[string, *Schema]()
	}
	d.Root.Definitions.Set(name, s)
	d.TrackAll(s)
}

// DetachDefinition removes name from the definitions table. The node stays
// in the arena; it only stops being addressable by name.
func (d *Document) DetachDefinition(name string) bool {
	if !d.HasDefinition(name) {
		return false
	}
	d.Root.Definitions.Delete(name)
	return true
}

// DefinitionNames returns the definition names in table order.
func (d *Document) DefinitionNames() []string {
	return d.Root.definitionNames()
}

func (s *Schema) definitionNames() []string {
	if s.Definitions == nil {
		return nil
	}
	names := make([]string, 0, s.Definitions.Len())
	for name := range s.Definitions.All() {
		names = append(names, name)
	}
	return names
}

// DefinitionName returns the table name under which s (or its actual
// schema) is registered.
func (d *Document) DefinitionName(s *Schema) (string, bool) {
	if s == nil || d.Root.Definitions == nil {
		return "", false
	}
	target := s.ActualSchema()
	for name, def := range d.Root.Definitions.All() {
		if def == target || def.ActualSchema() == target {
			return name, true
		}
	}
	return "", false
}

// Reachable returns the set of nodes reachable from the root, following
// references and discriminator mappings.
func (d *Document) Reachable() map[*Schema]bool {
	return reachable(d.Root)
}

// Unreachable returns tracked nodes that can no longer be reached from the
// root, in id order. Flattened ancestors end up here.
func (d *Document) Unreachable() []*Schema {
	live := d.Reachable()
	var out []*Schema
	for _, n := range d.nodes {
		if !live[n] {
			out = append(out, n)
		}
	}
	return out
}

// Locate returns the canonical JSON pointer of s within the document: the
// first structural position found by Walk.
func (d *Document) Locate(s *Schema) (string, bool) {
	var found string
	_ = Walk(d.Root, func(pointer string, n *Schema) error {
		if n == s {
			found = pointer
			return errStopWalk
		}
		return nil
	})
	return found, found != ""
}

func reachable(root *Schema) map[*Schema]bool {
	nodes := reachableOrder(root)
	seen := make(map[*Schema]bool, len(nodes))
	for _, n := range nodes {
		seen[n] = true
	}
	return seen
}

// reachableOrder lists nodes reachable from root in depth-first order.
func reachableOrder(root *Schema) []*Schema {
	seen := make(map[*Schema]bool)
	var order []*Schema
	var visit func(s *Schema)
	visit = func(s *Schema) {
		if s == nil || seen[s] {
			return
		}
		seen[s] = true
		order = append(order, s)
		if s.Reference != nil {
			visit(s.Reference)
		}
		for _, c := range children(s) {
			visit(c.node)
		}
		if s.Discriminator != nil && s.Discriminator.Mapping != nil {
			for _, m := range s.Discriminator.Mapping.All() {
				visit(m)
			}
		}
	}
	visit(root)
	return order
}

type child struct {
	tokens []string
	node   *Schema
}

// children lists the direct structural children of s in keyword order.
// References are edges, not children, and are not included.
func children(s *Schema) []child {
	var out []child
	add := func(n *Schema, tokens ...string) {
		if n != nil {
			out = append(out, child{tokens: tokens, node: n})
		}
	}
	if s.Definitions != nil {
		for name, def := range s.Definitions.All() {
			add(def, "definitions", name)
		}
	}
	if s.Properties != nil {
		for name, p := range s.Properties.All() {
			add(p, "properties", name)
		}
	}
	add(s.AdditionalPropertiesSchema, "additionalProperties")
	if s.PatternProperties != nil {
		for pattern, p := range s.PatternProperties.All() {
			add(p, "patternProperties", pattern)
		}
	}
	add(s.Item, "items")
	for i, it := range s.Items {
		add(it, "items", strconv.Itoa(i))
	}
	add(s.AdditionalItemsSchema, "additionalItems")
	for i, c := range s.AllOf {
		add(c, "allOf", strconv.Itoa(i))
	}
	for i, c := range s.AnyOf {
		add(c, "anyOf", strconv.Itoa(i))
	}
	for i, c := range s.OneOf {
		add(c, "oneOf", strconv.Itoa(i))
	}
	add(s.Not, "not")
	return out
}

type walkStop struct{}

func (walkStop) Error() string { return "stop walk" }

var errStopWalk error = walkStop{}

// Walk visits root and its structural descendants depth first, calling fn
// with each node's JSON pointer. Shared nodes are visited once, at the first
// position reached. References are not followed. Returning an error from fn
// aborts the walk and is returned by Walk.
func Walk(root *Schema, fn func(pointer string, s *Schema) error) error {
	seen := make(map[*Schema]bool)
	path := pathutil.Get()
	defer pathutil.Put(path)

	var visit func(s *Schema) error
	visit = func(s *Schema) error {
		if seen[s] {
			return nil
		}
		seen[s] = true
		if err := fn(path.String(), s); err != nil {
			return err
		}
		for _, c := range children(s) {
			for _, t := range c.tokens {
				path.Push(t)
			}
			err := visit(c.node)
			for range c.tokens {
				path.Pop()
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
	if root == nil {
		return nil
	}
	err := visit(root)
	if err == errStopWalk {
		return nil
	}
	return err
}
