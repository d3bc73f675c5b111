package resolver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/schemagraph/internal/pathutil"
	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/speakeasy-api/openapi/sequencedmap"
)

// located is a node together with the document that owns it.
type located struct {
	doc  *schema.Document
	node *schema.Schema
}

// resolvingKey identifies a reference that is being followed while walking
// a pointer, so a pointer through a looping alias fails instead of recursing.
type resolvingKey struct {
	doc *schema.Document
	ref string
}

type resolver struct {
	cfg  *config
	ids  map[string]located
	done map[*schema.Document]bool
}

// Resolve links every RefPath in doc to its target node. Nodes whose
// Reference is already set are left alone, so a second run is a no-op.
// Targets in other documents are tracked in doc's arena.
func Resolve(doc *schema.Document, opts ...Option) error {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return fmt.Errorf("resolver: invalid options: %w", err)
	}
	r := newResolver(cfg, doc)
	if err := r.resolveDocument(doc); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}
	return nil
}

// Lookup returns the node ref addresses, relative to doc, without linking
// anything.
func Lookup(doc *schema.Document, ref string, opts ...Option) (*schema.Schema, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolver: invalid options: %w", err)
	}
	r := newResolver(cfg, doc)
	loc, err := r.lookup(doc, ref, make(map[resolvingKey]bool))
	if err != nil {
		return nil, fmt.Errorf("resolver: %w", &schemaerrors.ReferenceError{
			Ref:        ref,
			IsCircular: errors.Is(err, schemaerrors.ErrCircularReference),
			Cause:      err,
		})
	}
	return loc.node, nil
}

func newResolver(cfg *config, doc *schema.Document) *resolver {
	r := &resolver{
		cfg:  cfg,
		ids:  make(map[string]located),
		done: make(map[*schema.Document]bool),
	}
	if id := normalizeID(doc.Root.ID); id != "" {
		if _, ok := cfg.documents[id]; !ok {
			cfg.documents[id] = doc
		}
	}
	r.indexIDs(doc)
	for _, other := range cfg.documents {
		r.indexIDs(other)
	}
	return r
}

// indexIDs records every subschema carrying an id. The first holder of an id wins.
func (r *resolver) indexIDs(doc *schema.Document) {
	_ = schema.Walk(doc.Root, func(_ string, s *schema.Schema) error {
		if s.ID == "" {
			return nil
		}
		for _, key := range []string{s.ID, normalizeID(s.ID)} {
			if _, exists := r.ids[key]; !exists {
				r.ids[key] = located{doc: doc, node: s}
			}
		}
		return nil
	})
}

func (r *resolver) resolveDocument(doc *schema.Document) error {
	if r.done[doc] {
		return nil
	}
	r.done[doc] = true

	err := schema.Walk(doc.Root, func(pointer string, s *schema.Schema) error {
		if err := r.link(doc, pointer, s); err != nil {
			return err
		}
		if s.Discriminator != nil && s.Discriminator.Mapping != nil {
			for value, m := range s.Discriminator.Mapping.All() {
				if err := r.link(doc, pathutil.Join(pointer, "discriminator", "mapping", value), m); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return checkAliasCycles(doc)
}

func (r *resolver) link(doc *schema.Document, pointer string, s *schema.Schema) error {
	if s.Reference != nil || s.RefPath == "" {
		return nil
	}
	target, err := r.lookup(doc, s.RefPath, make(map[resolvingKey]bool))
	if err != nil {
		return &schemaerrors.ReferenceError{
			Ref:        s.RefPath,
			Path:       pointer,
			IsCircular: errors.Is(err, schemaerrors.ErrCircularReference),
			Cause:      err,
		}
	}
	s.Reference = target.node
	if target.doc != doc {
		if err := r.resolveDocument(target.doc); err != nil {
			return err
		}
		doc.TrackAll(target.node)
	}
	r.cfg.logger.Debug("resolved reference", "ref", s.RefPath, "path", pointer)
	return nil
}

func (r *resolver) lookup(doc *schema.Document, ref string, resolving map[resolvingKey]bool) (located, error) {
	if loc, ok := r.ids[ref]; ok {
		return loc, nil
	}

	docPart, fragment := pathutil.SplitRef(ref)
	base := located{doc: doc, node: doc.Root}
	if docPart != "" {
		if other, ok := r.cfg.documents[normalizeID(docPart)]; ok {
			base = located{doc: other, node: other.Root}
		} else if loc, ok := r.ids[normalizeID(docPart)]; ok {
			base = loc
		} else {
			return located{}, fmt.Errorf("unknown document %q", docPart)
		}
	}

	if fragment == "" || fragment == "/" {
		return base, nil
	}
	if !strings.HasPrefix(fragment, "/") {
		if loc, ok := r.ids["#"+fragment]; ok {
			return loc, nil
		}
		return located{}, fmt.Errorf("no schema with id %q", "#"+fragment)
	}

	tokens, err := pathutil.Split(fragment)
	if err != nil {
		return located{}, err
	}
	return r.walkPointer(base, tokens, resolving)
}

// follow dereferences alias nodes met while walking a pointer.
func (r *resolver) follow(loc located, resolving map[resolvingKey]bool) (located, error) {
	for loc.node.Reference == nil && loc.node.RefPath != "" {
		key := resolvingKey{doc: loc.doc, ref: loc.node.RefPath}
		if resolving[key] {
			return located{}, fmt.Errorf("%w: %s", schemaerrors.ErrCircularReference, loc.node.RefPath)
		}
		resolving[key] = true
		next, err := r.lookup(loc.doc, loc.node.RefPath, resolving)
		if err != nil {
			return located{}, err
		}
		loc = next
	}
	if loc.node.Reference != nil {
		actual := loc.node.ActualSchema()
		if actual.Reference != nil {
			return located{}, fmt.Errorf("%w: %s", schemaerrors.ErrCircularReference, loc.node.RefPath)
		}
		loc.node = actual
	}
	return loc, nil
}

func (r *resolver) walkPointer(base located, tokens []string, resolving map[resolvingKey]bool) (located, error) {
	cur := base
	for i := 0; i < len(tokens); i++ {
		var err error
		if cur, err = r.follow(cur, resolving); err != nil {
			return located{}, err
		}
		s := cur.node
		tok := tokens[i]

		var next *schema.Schema
		switch tok {
		case "definitions", "properties", "patternProperties":
			if i+1 >= len(tokens) {
				return located{}, fmt.Errorf("pointer ends at %q", pathutil.Join("#", tokens...))
			}
			i++
			next = tableEntry(s, tok, tokens[i])
		case "items":
			if len(s.Items) > 0 && i+1 < len(tokens) {
				if idx, err := strconv.Atoi(tokens[i+1]); err == nil {
					i++
					next = index(s.Items, idx)
					break
				}
			}
			next = s.Item
		case "additionalProperties":
			next = s.AdditionalPropertiesSchema
		case "additionalItems":
			next = s.AdditionalItemsSchema
		case "not":
			next = s.Not
		case "allOf", "anyOf", "oneOf":
			if i+1 >= len(tokens) {
				return located{}, fmt.Errorf("pointer ends at %q", pathutil.Join("#", tokens...))
			}
			i++
			idx, err := strconv.Atoi(tokens[i])
			if err != nil {
				return located{}, fmt.Errorf("invalid index %q in %s", tokens[i], tok)
			}
			next = index(compositionList(s, tok), idx)
		default:
			return located{}, fmt.Errorf("unsupported pointer token %q", tok)
		}

		if next == nil {
			return located{}, fmt.Errorf("%s not found", pathutil.Join("#", tokens[:i+1]...))
		}
		cur = located{doc: cur.doc, node: next}
	}
	return cur, nil
}

func tableEntry(s *schema.Schema, keyword, name string) *schema.Schema {
	var table *sequencedmap.Map[string, *schema.Schema]
	switch keyword {
	case "definitions":
		table = s.Definitions
	case "properties":
		table = s.Properties
	default:
		table = s.PatternProperties
	}
	if table == nil {
		return nil
	}
	v, _ := table.Get(name)
	return v
}

func compositionList(s *schema.Schema, keyword string) []*schema.Schema {
	switch keyword {
	case "allOf":
		return s.AllOf
	case "anyOf":
		return s.AnyOf
	default:
		return s.OneOf
	}
}

func index(list []*schema.Schema, i int) *schema.Schema {
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}

// checkAliasCycles rejects reference chains made only of aliases that loop
// back on themselves. Recursion through a real schema (an object whose
// property refers to the object) is not a cycle here.
func checkAliasCycles(doc *schema.Document) error {
	return schema.Walk(doc.Root, func(pointer string, s *schema.Schema) error {
		if s.Reference == nil {
			return nil
		}
		seen := map[*schema.Schema]bool{s: true}
		for cur := s.Reference; cur != nil && cur.Reference != nil; cur = cur.Reference {
			if seen[cur] {
				return &schemaerrors.ReferenceError{
					Ref:        s.RefPath,
					Path:       pointer,
					IsCircular: true,
					Message:    "reference chain never reaches a schema",
				}
			}
			seen[cur] = true
		}
		return nil
	})
}
