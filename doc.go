// Package schemagraph provides tools for working with JSON Schema draft-04
// documents as an object graph: loading, reference resolution, inheritance
// analysis, schema generation from host types, instance validation, and
// TypeScript/Go model generation.
//
// # Overview
//
// The library is split into small packages that share one schema model:
//
//   - schema: the draft-04 node model, loading (JSON or YAML) and encoding
//   - resolver: $ref resolution into shared nodes, plus a schema registry
//   - typedesc: classification of a node (dictionary, enum, array, object, ...)
//   - composition: allOf inheritance, derived schemas, discriminators, flattening
//   - constraints: validation facts carried from host type annotations
//   - builder: schema generation from Go types or hand-written descriptors
//   - validator: instance validation that reports a tree of errors
//   - generator: TypeScript and Go model generation
//   - schemaerrors: the error types and sentinels shared by every package
//
// # Installation
//
//	go get github.com/erraggy/schemagraph
//
// # Quick Start
//
// Load a schema and validate an instance:
//
//	doc, err := schema.LoadFile("pet.schema.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := resolver.Resolve(doc); err != nil {
//		log.Fatal(err)
//	}
//	instance, err := validator.ParseInstance(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	errs, err := validator.Validate(instance, doc.Root)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(validator.Report(errs))
//
// Generate TypeScript interfaces from the same document:
//
//	result, err := generator.Generate(doc, generator.WithLanguage(generator.LanguageTypeScript))
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = result.WriteFiles("./models")
//
// # Error Handling
//
// Loading, resolution and generation return errors that match the sentinels
// in schemaerrors with errors.Is. Validation failures are not Go errors: the
// validator returns them as data so that every violation is reported.
//
// # Command-Line Interface
//
// The schemagraph command wraps the library:
//
//	schemagraph validate schema.json instance.json
//	schemagraph describe --ref Pet schema.json
//	schemagraph flatten -o flat.yaml schema.json
//	schemagraph generate --lang go --package models -o ./models schema.json
//	schemagraph mcp
//
// The mcp command serves validate_instance, describe_schema and
// generate_code as Model Context Protocol tools over stdio.
package schemagraph
