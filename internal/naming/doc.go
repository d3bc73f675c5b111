// Package naming provides the case conversions shared by the builder and
// the code generators.
//
// ToPascalCase treats underscores, hyphens, dots and slashes as word
// separators and drops them; it names definitions derived from Go types.
// ToUpperCamelCase only treats hyphens as separators and keeps every other
// character; the generators apply their own identifier rules afterwards.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
