package constraints

import (
	"fmt"

	"github.com/erraggy/schemagraph/schema"
)

// Kind selects which fields of a Fact are meaningful.
type Kind int

const (
	// Range sets Min and/or Max.
	Range Kind = iota + 1
	// Pattern sets Pattern.
	Pattern
	// Length sets MinLen and/or MaxLen; it bounds strings or arrays.
	Length
	// StringLength is Length restricted to strings.
	StringLength
	// MinLength sets MinLen.
	MinLength
	// MaxLength sets MaxLen.
	MaxLength
	// MultipleOf sets Multiple.
	MultipleOf
	// DataType sets DataType, one of the DataType* names.
	DataType
	// Required marks the property required; AllowEmptyStrings relaxes it
	// for strings.
	Required
)

var kindNames = map[Kind]string{
	Range:        "range",
	Pattern:      "pattern",
	Length:       "length",
	StringLength: "stringLength",
	MinLength:    "minLength",
	MaxLength:    "maxLength",
	MultipleOf:   "multipleOf",
	DataType:     "dataType",
	Required:     "required",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Data type names accepted by DataType facts.
const (
	DataTypeDateTime = "datetime"
	DataTypeDate     = "date"
	DataTypeTime     = "time"
	DataTypeDuration = "duration"
	DataTypeEmail    = "email"
	DataTypeURL      = "url"
	DataTypePhone    = "phone"
)

// Fact is one constraint.
type Fact struct {
	Kind Kind

	Min *float64
	Max *float64

	Pattern string

	MinLen *int
	MaxLen *int

	Multiple *float64

	DataType string

	AllowEmptyStrings bool
}

// AttributeProvider answers typed constraint queries for one property.
type AttributeProvider interface {
	// RangeConstraint returns the merged range bounds.
	RangeConstraint() (min, max *float64, ok bool)
	// PatternConstraint returns the pattern, if any.
	PatternConstraint() (string, bool)
	// RequiredConstraint reports a required fact and whether it allows
	// empty strings.
	RequiredConstraint() (allowEmpty, ok bool)
	// Facts returns every fact in declaration order.
	Facts() []Fact
}

// List is a slice of facts implementing AttributeProvider.
type List []Fact

var _ AttributeProvider = List(nil)

// RangeConstraint implements AttributeProvider. Later facts override
// earlier bounds.
func (l List) RangeConstraint() (min, max *float64, ok bool) {
	for _, f := range l {
		if f.Kind != Range {
			continue
		}
		ok = true
		if f.Min != nil {
			min = f.Min
		}
		if f.Max != nil {
			max = f.Max
		}
	}
	return min, max, ok
}

// PatternConstraint implements AttributeProvider.
func (l List) PatternConstraint() (string, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Kind == Pattern {
			return l[i].Pattern, true
		}
	}
	return "", false
}

// RequiredConstraint implements AttributeProvider.
func (l List) RequiredConstraint() (allowEmpty, ok bool) {
	for _, f := range l {
		if f.Kind == Required {
			return f.AllowEmptyStrings, true
		}
	}
	return false, false
}

// Facts implements AttributeProvider.
func (l List) Facts() []Fact { return l }

// Apply writes the facts of p into node. Length facts bound items when node
// is an array and characters otherwise. A required fact on a string node
// without AllowEmptyStrings sets MinLength to 1.
func Apply(node *schema.Schema, p AttributeProvider) {
	if node == nil || p == nil {
		return
	}
	isArray := node.Type.Has(schema.TypeArray)

	for _, f := range p.Facts() {
		switch f.Kind {
		case Range:
			if f.Min != nil {
				node.Minimum = f.Min
			}
			if f.Max != nil {
				node.Maximum = f.Max
			}
		case Pattern:
			node.Pattern = f.Pattern
		case Length:
			if isArray {
				if f.MinLen != nil {
					node.MinItems = *f.MinLen
				}
				if f.MaxLen != nil {
					node.MaxItems = *f.MaxLen
				}
				continue
			}
			setLength(node, f)
		case StringLength:
			setLength(node, f)
		case MinLength:
			if isArray && f.MinLen != nil {
				node.MinItems = *f.MinLen
			} else if f.MinLen != nil {
				node.MinLength = f.MinLen
			}
		case MaxLength:
			if isArray && f.MaxLen != nil {
				node.MaxItems = *f.MaxLen
			} else if f.MaxLen != nil {
				node.MaxLength = f.MaxLen
			}
		case MultipleOf:
			node.MultipleOf = f.Multiple
		case DataType:
			if format := dataTypeFormat(f.DataType); format != "" {
				node.Format = format
			}
		case Required:
			if node.Type.Has(schema.TypeString) && !f.AllowEmptyStrings && node.MinLength == nil {
				node.MinLength = schema.Ptr(1)
			}
		}
	}
}

func setLength(node *schema.Schema, f Fact) {
	if f.MinLen != nil {
		node.MinLength = f.MinLen
	}
	if f.MaxLen != nil {
		node.MaxLength = f.MaxLen
	}
}

func dataTypeFormat(dataType string) string {
	switch dataType {
	case DataTypeDateTime:
		return schema.FormatDateTime
	case DataTypeDate:
		return schema.FormatDate
	case DataTypeTime:
		return schema.FormatTime
	case DataTypeDuration:
		return schema.FormatDuration
	case DataTypeEmail:
		return schema.FormatEmail
	case DataTypeURL:
		return schema.FormatURI
	case DataTypePhone:
		return schema.FormatPhone
	}
	return ""
}
