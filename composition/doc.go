// Package composition computes the effective shape of class-like schemas
// built with allOf inheritance.
//
// The first allOf entry that references an object schema is the inherited
// (base) schema; the remaining allOf entries are mixins whose properties
// belong to the node itself. [Resolve] walks the chain and returns the
// merged view without touching the graph:
//
//	eff, err := composition.Resolve(employee, composition.WithDocument(doc))
//	// eff.Properties: name (from Person), then class
//	// eff.AllOf:      [{$ref Person}, {properties: {class}}]
//
// A property redeclared along the chain is an error unless flattening is
// requested, in which case the nearest declaration wins. [Flatten] applies
// that merge in place and detaches ancestors that nothing references any
// more from the definitions table.
//
// [DerivedSchemas] and [RegisterDiscriminatorMappings] go the other way,
// from a base to the definitions inheriting from it.
package composition
