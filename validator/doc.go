// Package validator checks JSON instances against resolved schema nodes and
// reports every violation as a tree of [ValidationError] values.
//
// # Quick Start
//
//	doc, err := schema.Load(schemaJSON)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := resolver.Resolve(doc); err != nil {
//		log.Fatal(err)
//	}
//	instance, err := validator.ParseInstance(instanceJSON)
//	if err != nil {
//		log.Fatal(err)
//	}
//	errs, err := validator.Validate(instance, doc.Root)
//	if err != nil {
//		log.Fatal(err) // invalid options
//	}
//	fmt.Print(validator.Report(errs))
//
// # Check Order
//
// Each node is checked in this order: anyOf, allOf, oneOf, not, type (with
// the string, number and array constraints of the instance), enum, then the
// object members. Validation failures are data: they are never reported as a
// Go error, and validation never stops at the first violation.
//
// # Error Tree
//
// Composition errors (NotAnyOf, NotAllOf, NotOneOf) and the errors of array
// items and additional properties carry the errors of each sub-schema in
// [ValidationError].Errors. Their rendering nests one braced block per
// branch:
//
//	NotOneOf: #/pet
//	{
//	  StringExpected: #/pet
//	}
//	{
//	  IntegerExpected: #/pet
//	}
//
// # Instances
//
// [ParseInstance] keeps object member order and the integer/float literal
// distinction, so "5.0" fails an integer type. Plain Go values are accepted
// as well; Go maps are visited in sorted key order.
//
// Enum membership and uniqueItems compare values by their text: the string
// "1" equals the number 1, and 1.0 equals 1.
package validator
