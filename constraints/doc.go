// Package constraints carries validation constraints from a front end (Go
// struct tags, an IDL, hand-written descriptors) to the schema builder as a
// closed list of facts.
//
// A front end builds a [List] once per property, either directly or with
// [ParseTag]:
//
//	facts, err := constraints.ParseTag("range=1|10,pattern=^[a-z]+$,required")
//
// and the builder writes them into the generated node with [Apply]. The
// builder only ever sees the [AttributeProvider] interface.
package constraints
