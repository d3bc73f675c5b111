// Package resolver links the $ref strings of a schema document into live
// graph edges and hosts the per-pass schema registry used by generators.
//
// # Resolving references
//
// [Resolve] walks a [schema.Document] and sets Reference on every node whose
// RefPath is set:
//
//	doc, err := schema.Load(data)
//	if err != nil {
//		return err
//	}
//	if err := resolver.Resolve(doc); err != nil {
//		return err // *schemaerrors.ReferenceError
//	}
//
// Supported forms are "#", JSON pointer fragments such as
// "#/definitions/Pet" (with ~0/~1 escapes and percent-encoding), ids of
// subschemas, and "other#/pointer" references into documents registered
// with [WithDocument]. A chain of pure aliases that loops back on itself is
// reported as a circular [schemaerrors.ReferenceError]; recursive object
// graphs such as a tree node whose children are tree nodes are fine.
//
// Resolve is idempotent.
//
// # Registry
//
// A [Registry] maps (identity, variant) keys to nodes while a generator is
// building a document. The first registration acts as the placeholder that
// lets a self-referencing type find its own in-progress node. A Registry is
// not safe for concurrent use; give each pass its own.
package resolver
