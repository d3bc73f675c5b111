package schema

import (
	"fmt"
	"strings"
)

// ObjectType is the set of JSON types a schema admits. Values combine, so
// TypeObject|TypeNull describes a nullable object.
type ObjectType uint16

const (
	// TypeNone means no type keyword was given.
	TypeNone    ObjectType = 0
	TypeArray   ObjectType = 1 << 0
	TypeBoolean ObjectType = 1 << 1
	TypeInteger ObjectType = 1 << 2
	TypeNull    ObjectType = 1 << 3
	TypeNumber  ObjectType = 1 << 4
	TypeObject  ObjectType = 1 << 5
	TypeString  ObjectType = 1 << 6
	// TypeFile is the Swagger 2 "file" pseudo type.
	TypeFile ObjectType = 1 << 7
)

// typeNames lists flags in declaration order; Flags and String rely on it.
var typeNames = []struct {
	flag ObjectType
	name string
}{
	{TypeArray, "array"},
	{TypeBoolean, "boolean"},
	{TypeInteger, "integer"},
	{TypeNull, "null"},
	{TypeNumber, "number"},
	{TypeObject, "object"},
	{TypeString, "string"},
	{TypeFile, "file"},
}

// Has reports whether every flag in f is set.
func (t ObjectType) Has(f ObjectType) bool {
	return f != TypeNone && t&f == f
}

// HasAny reports whether at least one flag in f is set.
func (t ObjectType) HasAny(f ObjectType) bool {
	return t&f != 0
}

// Flags returns the individual flags, in declaration order.
func (t ObjectType) Flags() []ObjectType {
	var out []ObjectType
	for _, n := range typeNames {
		if t&n.flag != 0 {
			out = append(out, n.flag)
		}
	}
	return out
}

// Names returns the JSON type names of the set flags.
func (t ObjectType) Names() []string {
	var out []string
	for _, n := range typeNames {
		if t&n.flag != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

// String renders the flags joined by '|', or "none".
func (t ObjectType) String() string {
	if t == TypeNone {
		return "none"
	}
	return strings.Join(t.Names(), "|")
}

// ParseObjectType maps a JSON type name to its flag.
func ParseObjectType(name string) (ObjectType, error) {
	for _, n := range typeNames {
		if n.name == name {
			return n.flag, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown type %q", name)
}
