// Package generator turns resolved schema documents into TypeScript or Go
// type declarations.
//
// # Quick Start
//
//	doc, err := schema.LoadFile("pet.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := resolver.Resolve(doc); err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.Generate(doc,
//		generator.WithLanguage(generator.LanguageGo),
//		generator.WithPackageName("petstore"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./generated"); err != nil {
//		log.Fatal(err)
//	}
//
// # Models
//
// [BuildModels] exposes the language-neutral view the renderers consume:
// a [ClassModel] per object type, an [EnumModel] per enumeration. Every
// definition that is an object or an enumeration becomes a type, and so
// does every anonymous object or enumeration a property refers to; the
// [TypeNameRegistry] names them and keeps names unique.
//
// A class extends the first allOf entry referencing an object schema. Its
// properties are those it declares itself; the inheritance discriminator
// is declared once, on the class owning it, and left out of every class
// below it.
//
// # Type Mapping
//
//	schema             TypeScript            Go
//	string             string                string
//	string date-time   Date                  time.Time
//	string byte        string                []byte
//	integer            number                int64 (int32 for format int32)
//	number             number                float64 (float32 for format float)
//	boolean            boolean               bool
//	array              T[]                   []T
//	dictionary         { [key: string]: T; } map[string]T
//	anything else      any                   any
//
// Nullable types are `T | null` in TypeScript and pointers in Go. Optional
// Go fields are pointers tagged omitempty. Go output is formatted with
// goimports.
package generator
