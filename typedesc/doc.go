// Package typedesc classifies schema nodes for generators and validators.
//
// [Describe] answers the questions code generators ask of a node: is it a
// dictionary, an enum, an array, a plain object or an open "any" value, and
// is it nullable. Exactly one of dictionary, enum, array and object holds for
// any node; dictionary wins over object.
//
// [DescribeProperty] decides nullability and requiredness for a property of a
// host type, before any schema exists for it.
package typedesc
