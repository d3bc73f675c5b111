package constraints

import (
	"errors"
	"strconv"
	"strings"

	"github.com/erraggy/schemagraph/schemaerrors"
)

// ParseTag reads a constraint tag such as
//
//	range=1|10,pattern=^a,minLength=2,maxLength=8,multipleOf=0.5,dataType=email,required
//
// Range bounds may be left empty ("range=|10"). "required=allowEmpty" keeps
// empty strings valid. Patterns cannot contain commas.
func ParseTag(tag string) (List, error) {
	var out List
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		f, err := parseFact(key, value)
		if err != nil {
			return nil, &schemaerrors.ConfigError{Option: key, Value: value, Message: "invalid constraint tag", Cause: err}
		}
		out = append(out, f)
	}
	return out, nil
}

func parseFact(key, value string) (Fact, error) {
	switch key {
	case "range":
		lo, hi, _ := strings.Cut(value, "|")
		min, err := optionalFloat(lo)
		if err != nil {
			return Fact{}, err
		}
		max, err := optionalFloat(hi)
		if err != nil {
			return Fact{}, err
		}
		return Fact{Kind: Range, Min: min, Max: max}, nil
	case "pattern":
		return Fact{Kind: Pattern, Pattern: value}, nil
	case "length", "stringLength":
		lo, hi, _ := strings.Cut(value, "|")
		min, err := optionalInt(lo)
		if err != nil {
			return Fact{}, err
		}
		max, err := optionalInt(hi)
		if err != nil {
			return Fact{}, err
		}
		kind := Length
		if key == "stringLength" {
			kind = StringLength
		}
		return Fact{Kind: kind, MinLen: min, MaxLen: max}, nil
	case "minLength":
		n, err := optionalInt(value)
		return Fact{Kind: MinLength, MinLen: n}, err
	case "maxLength":
		n, err := optionalInt(value)
		return Fact{Kind: MaxLength, MaxLen: n}, err
	case "multipleOf":
		f, err := optionalFloat(value)
		if err == nil && (f == nil || *f <= 0) {
			err = strconv.ErrRange
		}
		return Fact{Kind: MultipleOf, Multiple: f}, err
	case "dataType":
		if dataTypeFormat(value) == "" {
			return Fact{}, strconv.ErrSyntax
		}
		return Fact{Kind: DataType, DataType: value}, nil
	case "required":
		return Fact{Kind: Required, AllowEmptyStrings: value == "allowEmpty"}, nil
	default:
		return Fact{}, errUnknownKey
	}
}

var errUnknownKey = errors.New("unknown constraint")

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, strconv.ErrRange
	}
	return &n, nil
}
