package generator_test

import (
	"fmt"
	"log"

	"github.com/erraggy/schemagraph/generator"
	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/schema"
)

func Example() {
	doc, err := schema.Load([]byte(`{
  "title": "Pet",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "tag": {"type": "string"}
  }
}`))
	if err != nil {
		log.Fatal(err)
	}
	if err := resolver.Resolve(doc); err != nil {
		log.Fatal(err)
	}

	result, err := generator.Generate(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(result.Files[0].Content))
	// Output:
	// // Code generated by schemagraph. DO NOT EDIT.
	//
	// export interface Pet {
	//     name: string;
	//     tag?: string;
	// }
}
