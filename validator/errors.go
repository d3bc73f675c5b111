package validator

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemagraph/schema"
)

// Kind identifies the rule a validation error violates.
type Kind int

// Validation error kinds.
const (
	KindUnknown Kind = iota
	KindStringExpected
	KindNumberExpected
	KindIntegerExpected
	KindBooleanExpected
	KindObjectExpected
	KindArrayExpected
	KindNullExpected
	KindPropertyRequired
	KindPatternMismatch
	KindStringTooShort
	KindStringTooLong
	KindNumberTooSmall
	KindNumberTooBig
	KindNumberNotMultipleOf
	KindTooManyItems
	KindTooFewItems
	KindItemsNotUnique
	KindDateTimeExpected
	KindURIExpected
	KindIPv4Expected
	KindIPv6Expected
	KindGUIDExpected
	KindEmailExpected
	KindHostnameExpected
	KindBase64Expected
	KindNotAnyOf
	KindNotAllOf
	KindNotOneOf
	KindExcludedSchemaValidates
	KindNotInEnumeration
	KindTooManyItemsInTuple
	KindArrayItemNotValid
	KindAdditionalItemNotValid
	KindAdditionalPropertiesNotValid
	KindNoAdditionalPropertiesAllowed
	KindTooManyProperties
	KindTooFewProperties
)

var kindNames = [...]string{
	KindUnknown:                       "Unknown",
	KindStringExpected:                "StringExpected",
	KindNumberExpected:                "NumberExpected",
	KindIntegerExpected:               "IntegerExpected",
	KindBooleanExpected:               "BooleanExpected",
	KindObjectExpected:                "ObjectExpected",
	KindArrayExpected:                 "ArrayExpected",
	KindNullExpected:                  "NullExpected",
	KindPropertyRequired:              "PropertyRequired",
	KindPatternMismatch:               "PatternMismatch",
	KindStringTooShort:                "StringTooShort",
	KindStringTooLong:                 "StringTooLong",
	KindNumberTooSmall:                "NumberTooSmall",
	KindNumberTooBig:                  "NumberTooBig",
	KindNumberNotMultipleOf:           "NumberNotMultipleOf",
	KindTooManyItems:                  "TooManyItems",
	KindTooFewItems:                   "TooFewItems",
	KindItemsNotUnique:                "ItemsNotUnique",
	KindDateTimeExpected:              "DateTimeExpected",
	KindURIExpected:                   "UriExpected",
	KindIPv4Expected:                  "IpV4Expected",
	KindIPv6Expected:                  "IpV6Expected",
	KindGUIDExpected:                  "GuidExpected",
	KindEmailExpected:                 "EmailExpected",
	KindHostnameExpected:              "HostnameExpected",
	KindBase64Expected:                "Base64Expected",
	KindNotAnyOf:                      "NotAnyOf",
	KindNotAllOf:                      "NotAllOf",
	KindNotOneOf:                      "NotOneOf",
	KindExcludedSchemaValidates:       "ExcludedSchemaValidates",
	KindNotInEnumeration:              "NotInEnumeration",
	KindTooManyItemsInTuple:           "TooManyItemsInTuple",
	KindArrayItemNotValid:             "ArrayItemNotValid",
	KindAdditionalItemNotValid:        "AdditionalItemNotValid",
	KindAdditionalPropertiesNotValid:  "AdditionalPropertiesNotValid",
	KindNoAdditionalPropertiesAllowed: "NoAdditionalPropertiesAllowed",
	KindTooManyProperties:             "TooManyProperties",
	KindTooFewProperties:              "TooFewProperties",
}

// String returns the kind name, e.g. "PropertyRequired".
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind name so reports serialize readably.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ValidationError is one violated rule.
//
// Composition, array item and additional property errors are child schema
// errors: they carry the errors of each sub-schema that was tried in Errors,
// so a report keeps the full depth of the schema composition. Errors is nil
// for every other kind.
type ValidationError struct {
	Kind Kind `json:"kind" yaml:"kind"`
	// Property is the offending property name, "[i]" for array items, or
	// empty for the value itself.
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	// Path is a JSON pointer fragment into the instance ("#/a/0/b").
	Path string `json:"path" yaml:"path"`
	// Schema is the node that produced the error.
	Schema *schema.Schema `json:"-" yaml:"-"`

	Errors []BranchErrors `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// BranchErrors are the errors one sub-schema produced for the value.
type BranchErrors struct {
	Schema *schema.Schema    `json:"-"      yaml:"-"`
	Errors []ValidationError `json:"errors" yaml:"errors"`
}

// IsChildSchemaError reports whether e carries nested branch errors.
func (e ValidationError) IsChildSchemaError() bool {
	return e.Errors != nil
}

// Error renders e as "Kind: Path". Child schema errors append one braced
// block per branch with the nested errors indented.
func (e ValidationError) Error() string {
	return e.String()
}

func (e ValidationError) String() string {
	var sb strings.Builder
	e.render(&sb)
	return strings.TrimSuffix(sb.String(), "\n")
}

func (e ValidationError) render(sb *strings.Builder) {
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Path)
	sb.WriteByte('\n')
	for _, branch := range e.Errors {
		sb.WriteString("{\n")
		for _, child := range branch.Errors {
			sb.WriteString("  ")
			sb.WriteString(strings.ReplaceAll(child.String(), "\n", "\n  "))
			sb.WriteByte('\n')
		}
		sb.WriteString("}\n")
	}
}

// Report renders a list of errors, one per line block.
func Report(errs []ValidationError) string {
	var sb strings.Builder
	for _, e := range errs {
		e.render(&sb)
	}
	return sb.String()
}

// Count returns the number of errors in errs, nested branch errors
// included.
func Count(errs []ValidationError) int {
	n := 0
	for _, e := range errs {
		n++
		for _, branch := range e.Errors {
			n += Count(branch.Errors)
		}
	}
	return n
}
