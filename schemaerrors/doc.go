// Package schemaerrors provides structured error types for the schemagraph library.
//
// Import path: github.com/erraggy/schemagraph/schemaerrors
//
// The types separate the three failure classes a schema document can produce:
// text that cannot be read, references that cannot be resolved, and a graph
// whose structure cannot be honored (duplicate properties, a discriminator on
// a non-string property, malformed known types). Instance validation failures
// are never reported through these types; the validator returns them as data.
//
// # Error Types
//
//   - [ParseError]: JSON/YAML reading failures and keyword shape problems
//   - [ReferenceError]: unresolvable or circular $ref pointers
//   - [StructureError]: invalid schema structure found while resolving or building
//   - [ConfigError]: invalid options
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrReference]: matches any [ReferenceError]
//   - [ErrCircularReference]: matches [ReferenceError] with IsCircular=true
//   - [ErrStructure]: matches any [StructureError]
//   - [ErrDuplicateSchema]: matches [StructureError] raised by a registry collision
//   - [ErrConfig]: matches any [ConfigError]
package schemaerrors
