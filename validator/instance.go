package validator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/erraggy/schemagraph/schemaerrors"
)

// ParseInstance decodes a JSON value for validation. Objects keep their
// member order as *sequencedmap.Map[string, any]; numbers stay json.Number so
// integer and float literals remain distinguishable.
func ParseInstance(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, &schemaerrors.ParseError{Path: "instance", Message: "invalid JSON instance", Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &schemaerrors.ParseError{Path: "instance", Message: "unexpected data after JSON value"}
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	default:
		// json.Number, string, bool or nil
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (any, error) {
	obj := sequencedmap.New[string, any]()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (any, error) {
	arr := []any{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// member is one object member in visiting order.
type member struct {
	name  string
	value any
}

// asObject returns the members of an object value. Ordered maps keep their
// order; Go maps are visited in sorted key order.
func asObject(v any) ([]member, bool) {
	switch o := v.(type) {
	case *sequencedmap.Map[string, any]:
		if o == nil {
			return nil, false
		}
		out := make([]member, 0, o.Len())
		for k, val := range o.All() {
			out = append(out, member{name: k, value: val})
		}
		return out, true
	case map[string]any:
		keys := make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make([]member, 0, len(o))
		for _, k := range keys {
			out = append(out, member{name: k, value: o[k]})
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
	out := make([]member, 0, len(keys))
	for _, k := range keys {
		out = append(out, member{name: k.String(), value: rv.MapIndex(k).Interface()})
	}
	return out, true
}

// asArray returns the elements of an array value.
func asArray(v any) ([]any, bool) {
	if a, ok := v.([]any); ok {
		return a, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is a string of bytes, not an array
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// asString returns the text of a string value.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// asNumber returns the exact value of a number and whether it is an integer
// literal. A json.Number is an integer only when written without a fraction
// or exponent, so "5.0" is not; a Go float is an integer when it is whole.
func asNumber(v any) (*big.Rat, bool, bool) {
	if n, ok := v.(json.Number); ok {
		s := string(n)
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, false, false
		}
		return r, !strings.ContainsAny(s, ".eE"), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int()), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(rv.Uint())), true, true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false, false
		}
		r, ok := ratFromFloat(f, rv.Type().Bits())
		return r, ok && f == math.Trunc(f), ok
	}
	return nil, false, false
}

// ratFromFloat converts through the shortest decimal rendering, so 0.1 is
// exactly 1/10 rather than its binary approximation.
func ratFromFloat(f float64, bits int) (*big.Rat, bool) {
	return new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, bits))
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// canonical renders v so that equal JSON values render identically: numbers
// by exact value, strings quoted, object members sorted by name.
func canonical(v any) string {
	var sb strings.Builder
	writeCanonical(&sb, v)
	return sb.String()
}

// textual renders v the way enum and uniqueItems compare values: a string
// is its own text, so "1" and 1 are the same value. Containers render
// canonically.
func textual(v any) string {
	if s, ok := asString(v); ok {
		return s
	}
	return canonical(v)
}

func writeCanonical(sb *strings.Builder, v any) {
	if isNull(v) {
		sb.WriteString("null")
		return
	}
	if b, ok := asBool(v); ok {
		sb.WriteString(strconv.FormatBool(b))
		return
	}
	if r, _, ok := asNumber(v); ok {
		sb.WriteString(r.RatString())
		return
	}
	if s, ok := asString(v); ok {
		sb.WriteString(strconv.Quote(s))
		return
	}
	if items, ok := asArray(v); ok {
		sb.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCanonical(sb, item)
		}
		sb.WriteByte(']')
		return
	}
	if members, ok := asObject(v); ok {
		slices.SortFunc(members, func(a, b member) int { return strings.Compare(a.name, b.name) })
		sb.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(m.name))
			sb.WriteByte(':')
			writeCanonical(sb, m.value)
		}
		sb.WriteByte('}')
		return
	}
	if b, ok := v.([]byte); ok {
		sb.WriteString(strconv.Quote(string(b)))
		return
	}
	fmt.Fprintf(sb, "%v", v)
}
