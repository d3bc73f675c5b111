package schemaerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates schema text could not be read.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a $ref could not be resolved.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a $ref chain that never reaches a concrete schema.
	ErrCircularReference = errors.New("circular reference")

	// ErrStructure indicates a schema graph that cannot be resolved as written.
	ErrStructure = errors.New("structure error")

	// ErrDuplicateSchema indicates a second registration for the same type identity.
	ErrDuplicateSchema = errors.New("duplicate schema")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to read a schema document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Pointer is the JSON pointer of the offending keyword, if known
	Pointer string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Pointer != "" {
		msg += " (" + e.Pointer + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Path is the JSON pointer of the schema holding the reference
	Path string
	// IsCircular is true when the reference chain loops without reaching a schema
	IsCircular bool
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error { return e.Cause }

// Is matches ErrReference, and ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// StructureError represents a schema graph that cannot be resolved as
// written, such as a property declared twice along an inheritance chain.
type StructureError struct {
	// TypeName names the schema or type being resolved
	TypeName string
	// Property is the offending property, if any
	Property string
	// Path is the JSON pointer of the offending node, if known
	Path string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *StructureError) Error() string {
	msg := "structure error"
	if e.TypeName != "" {
		msg += " on type '" + e.TypeName + "'"
	}
	if e.Property != "" {
		msg += " property '" + e.Property + "'"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *StructureError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *StructureError) Is(target error) bool { return target == ErrStructure }

// NewDuplicateProperty reports a property declared more than once on a type.
func NewDuplicateProperty(typeName, property string) *StructureError {
	return &StructureError{
		TypeName: typeName,
		Property: property,
		Message:  fmt.Sprintf("duplicate property: the JSON property '%s' is defined multiple times on type '%s'", property, typeName),
	}
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
