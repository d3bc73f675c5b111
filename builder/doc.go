// Package builder generates schema documents from host type descriptions.
//
// A front end describes host types as [TypeDescriptor] values: Go struct
// types through [Reflector], or an IDL, or descriptors written by hand. The
// [Builder] turns a root descriptor into a [schema.Document] whose root
// describes the root type and whose definitions hold every other object and
// enum type reached from it.
//
// # Quick Start
//
//	type Person struct {
//		Name  string  `json:"name" schema:"length=1|100"`
//		Email *string `json:"email,omitempty" schema:"dataType=email"`
//	}
//
//	b, err := builder.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := b.GenerateFor(Person{})
//
// # Inheritance
//
// A descriptor's Base is written as
//
//	{"allOf": [{"$ref": "#/definitions/Base"}, {own properties}]}
//
// unless [Settings].FlattenInheritanceHierarchy or the descriptor's Flatten
// hint is set, in which case the base members are merged into the type and
// the base never becomes a definition. Interfaces are merged only when
// flattening with GenerateAbstractProperties.
//
// # Discriminators
//
// A base naming a Discriminator gets that property injected as a required
// string, and every derived type generated in the same pass is added to its
// mapping under the derived definition name. A discriminator property the
// type already declares with a non-string type is an error.
//
// # Dialects
//
// [SchemaType] selects how nullability and references with sibling keywords
// are written:
//
//   - JSON Schema: nullable inline types gain the null type; nullable
//     references become {"oneOf": [{"type": "null"}, {"$ref": ...}]}
//   - Swagger 2.0: nullability is not expressible, so non-nullable members
//     are always required; annotated references use allOf
//   - OpenAPI 3.0: nullable: true; annotated references use oneOf
//
// # Struct Tags
//
// The Go type front end reads:
//
//	json:"name,omitempty"     member name and presence
//	schema:"range=1|10,..."   constraint facts, see constraints.ParseTag
//	description:"..."         member description
//	deprecated:"true"         obsolete member
//	readonly:"true"           read-only member
package builder
