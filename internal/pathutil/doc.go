// Package pathutil builds and parses the JSON Pointer paths used for $ref
// targets and validation error locations.
//
// [PathBuilder] uses push/pop semantics so recursive walks only materialize
// a string when a path is actually reported:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("a")
//	path.PushIndex(2)
//	path.String() // "#/a/2"
//
// [Split] and [Escape]/[Unescape] implement RFC 6901 token handling for the
// fragment part of a reference.
package pathutil
