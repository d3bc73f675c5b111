package schema

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/erraggy/schemagraph/internal/pathutil"
	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/speakeasy-api/openapi/sequencedmap"
	"go.yaml.in/yaml/v4"
)

// Load reads a JSON or YAML schema document. Property order follows the
// source text, and integer literals stay int64 while fractional literals
// become float64. References are recorded in RefPath only; run the resolver
// to link them.
func Load(data []byte, opts ...LoadOption) (*Document, error) {
	cfg, err := applyLoadOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("schema: invalid options: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &schemaerrors.ParseError{Path: cfg.sourceName, Message: "invalid JSON or YAML", Cause: err}
	}

	l := &loader{cfg: cfg}
	node := &root
	if node.Kind == 0 || node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, &schemaerrors.ParseError{Path: cfg.sourceName, Message: "empty document"}
		}
		node = node.Content[0]
	}

	s, err := l.schema(node, "#", 0)
	if err != nil {
		return nil, err
	}
	doc := NewDocument(s)
	doc.Source = cfg.sourceName
	cfg.logger.Debug("loaded schema document", "source", cfg.sourceName, "nodes", len(doc.nodes))
	return doc, nil
}

// LoadFile reads and loads the schema document at path.
func LoadFile(path string, opts ...LoadOption) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is caller supplied by design
	if err != nil {
		return nil, &schemaerrors.ParseError{Path: path, Message: "cannot read file", Cause: err}
	}
	return Load(data, append([]LoadOption{WithSourceName(path)}, opts...)...)
}

type loader struct {
	cfg *loadConfig
}

func (l *loader) fail(n *yaml.Node, pointer, format string, args ...any) error {
	return &schemaerrors.ParseError{
		Path:    l.cfg.sourceName,
		Line:    n.Line,
		Column:  n.Column,
		Pointer: pointer,
		Message: fmt.Sprintf(format, args...),
	}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func (l *loader) schema(n *yaml.Node, pointer string, depth int) (*Schema, error) {
	n = deref(n)
	if depth > l.cfg.maxDepth {
		return nil, l.fail(n, pointer, "nesting exceeds %d levels", l.cfg.maxDepth)
	}

	if n.Kind == yaml.ScalarNode && n.Tag == "!!bool" {
		// true accepts everything, false accepts nothing
		if n.Value == "true" {
			return &Schema{}, nil
		}
		return &Schema{Not: &Schema{}}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, l.fail(n, pointer, "schema must be an object")
	}

	s := &Schema{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v := deref(n.Content[i+1])
		at := pathutil.Join(pointer, key)
		if err := l.keyword(s, key, v, at, depth); err != nil {
			return nil, err
		}
	}

	if len(s.Enumeration) > 0 && len(s.EnumerationNames) > 0 && len(s.Enumeration) != len(s.EnumerationNames) {
		return nil, l.fail(n, pointer, "x-enumNames has %d entries but enum has %d", len(s.EnumerationNames), len(s.Enumeration))
	}
	return s, nil
}

func (l *loader) keyword(s *Schema, key string, v *yaml.Node, at string, depth int) error {
	var err error
	switch key {
	case "$ref":
		s.RefPath, err = l.str(v, at)
	case "id", "$id":
		s.ID, err = l.str(v, at)
	case "$schema":
		s.SchemaURI, err = l.str(v, at)
	case "title":
		s.Title, err = l.str(v, at)
	case "description":
		s.Description, err = l.str(v, at)
	case "format":
		s.Format, err = l.str(v, at)
	case "pattern":
		s.Pattern, err = l.str(v, at)
	case "x-typeName":
		s.TypeName, err = l.str(v, at)
	case "type":
		s.Type, err = l.objectType(v, at)
	case "default":
		s.Default = decodeValue(v)
	case "example":
		s.Example = decodeValue(v)

	case "allOf":
		s.AllOf, err = l.schemaList(v, at, depth)
	case "anyOf":
		s.AnyOf, err = l.schemaList(v, at, depth)
	case "oneOf":
		s.OneOf, err = l.schemaList(v, at, depth)
	case "not":
		s.Not, err = l.schema(v, at, depth+1)

	case "properties":
		s.Properties, err = l.schemaMap(v, at, depth)
	case "patternProperties":
		s.PatternProperties, err = l.schemaMap(v, at, depth)
	case "definitions":
		s.Definitions, err = l.schemaMap(v, at, depth)
	case "required":
		if v.Kind == yaml.ScalarNode {
			// draft-03 style boolean; draft-04 lists names on the parent
			l.cfg.logger.Debug("ignoring boolean required", "path", at)
			return nil
		}
		s.RequiredProperties, err = l.strList(v, at)
	case "additionalProperties":
		if v.Kind == yaml.ScalarNode {
			var b bool
			b, err = l.boolean(v, at)
			s.DisallowAdditionalProperties = !b
		} else {
			s.AdditionalPropertiesSchema, err = l.schema(v, at, depth+1)
		}
	case "minProperties":
		s.MinProperties, err = l.integer(v, at)
	case "maxProperties":
		s.MaxProperties, err = l.integer(v, at)

	case "items":
		if v.Kind == yaml.SequenceNode {
			s.Items, err = l.schemaList(v, at, depth)
		} else {
			s.Item, err = l.schema(v, at, depth+1)
		}
	case "additionalItems":
		if v.Kind == yaml.ScalarNode {
			var b bool
			b, err = l.boolean(v, at)
			s.DisallowAdditionalItems = !b
		} else {
			s.AdditionalItemsSchema, err = l.schema(v, at, depth+1)
		}
	case "minItems":
		s.MinItems, err = l.integer(v, at)
	case "maxItems":
		s.MaxItems, err = l.integer(v, at)
	case "uniqueItems":
		s.UniqueItems, err = l.boolean(v, at)

	case "enum":
		if v.Kind != yaml.SequenceNode {
			return l.fail(v, at, "enum must be an array")
		}
		for _, item := range v.Content {
			s.Enumeration = append(s.Enumeration, decodeValue(deref(item)))
		}
	case "x-enumNames":
		s.EnumerationNames, err = l.strList(v, at)

	case "minimum":
		s.Minimum, err = l.number(v, at)
	case "maximum":
		s.Maximum, err = l.number(v, at)
	case "exclusiveMinimum":
		s.IsExclusiveMinimum, s.Minimum, err = l.exclusiveBound(v, at, s.Minimum)
	case "exclusiveMaximum":
		s.IsExclusiveMaximum, s.Maximum, err = l.exclusiveBound(v, at, s.Maximum)
	case "multipleOf":
		s.MultipleOf, err = l.number(v, at)
	case "minLength":
		var n int
		n, err = l.integer(v, at)
		s.MinLength = &n
	case "maxLength":
		var n int
		n, err = l.integer(v, at)
		s.MaxLength = &n

	case "discriminator":
		s.Discriminator, err = l.discriminator(v, at)
	case "x-nullable", "nullable":
		var b bool
		b, err = l.boolean(v, at)
		s.IsNullableRaw = &b
	case "x-abstract":
		s.IsAbstract, err = l.boolean(v, at)
	case "x-deprecated", "deprecated":
		s.IsDeprecated, err = l.boolean(v, at)
	case "readOnly":
		s.IsReadOnly, err = l.boolean(v, at)
	case "writeOnly":
		s.IsWriteOnly, err = l.boolean(v, at)

	default:
		if strings.HasPrefix(key, "x-") {
			s.SetExtension(key, decodeValue(v))
			return nil
		}
		l.cfg.logger.Debug("ignoring unsupported keyword", "keyword", key, "path", at)
	}
	return err
}

func (l *loader) str(v *yaml.Node, at string) (string, error) {
	if v.Kind != yaml.ScalarNode {
		return "", l.fail(v, at, "expected a string")
	}
	return v.Value, nil
}

func (l *loader) boolean(v *yaml.Node, at string) (bool, error) {
	if v.Kind != yaml.ScalarNode || v.Tag != "!!bool" {
		return false, l.fail(v, at, "expected a boolean")
	}
	return strconv.ParseBool(v.Value)
}

func (l *loader) integer(v *yaml.Node, at string) (int, error) {
	if v.Kind != yaml.ScalarNode || v.Tag != "!!int" {
		return 0, l.fail(v, at, "expected an integer")
	}
	n, err := strconv.ParseInt(v.Value, 0, 64)
	if err != nil || n < 0 {
		return 0, l.fail(v, at, "expected a non-negative integer, got %q", v.Value)
	}
	return int(n), nil
}

func (l *loader) number(v *yaml.Node, at string) (*float64, error) {
	if v.Kind != yaml.ScalarNode || (v.Tag != "!!int" && v.Tag != "!!float") {
		return nil, l.fail(v, at, "expected a number")
	}
	f, err := strconv.ParseFloat(v.Value, 64)
	if err != nil {
		return nil, l.fail(v, at, "invalid number %q", v.Value)
	}
	return &f, nil
}

// exclusiveBound accepts the draft-04 boolean form and the draft-06 numeric
// form, which also sets the bound itself.
func (l *loader) exclusiveBound(v *yaml.Node, at string, current *float64) (bool, *float64, error) {
	if v.Kind == yaml.ScalarNode && v.Tag == "!!bool" {
		b, err := strconv.ParseBool(v.Value)
		return b, current, err
	}
	f, err := l.number(v, at)
	if err != nil {
		return false, current, err
	}
	return true, f, nil
}

func (l *loader) objectType(v *yaml.Node, at string) (ObjectType, error) {
	switch v.Kind {
	case yaml.ScalarNode:
		t, err := ParseObjectType(v.Value)
		if err != nil {
			return TypeNone, l.fail(v, at, "%v", err)
		}
		return t, nil
	case yaml.SequenceNode:
		var t ObjectType
		for _, item := range v.Content {
			f, err := ParseObjectType(deref(item).Value)
			if err != nil {
				return TypeNone, l.fail(item, at, "%v", err)
			}
			t |= f
		}
		return t, nil
	default:
		return TypeNone, l.fail(v, at, "type must be a string or an array of strings")
	}
}

func (l *loader) strList(v *yaml.Node, at string) ([]string, error) {
	if v.Kind != yaml.SequenceNode {
		return nil, l.fail(v, at, "expected an array of strings")
	}
	out := make([]string, 0, len(v.Content))
	for _, item := range v.Content {
		item = deref(item)
		if item.Kind != yaml.ScalarNode {
			return nil, l.fail(item, at, "expected an array of strings")
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func (l *loader) schemaList(v *yaml.Node, at string, depth int) ([]*Schema, error) {
	if v.Kind != yaml.SequenceNode {
		return nil, l.fail(v, at, "expected an array of schemas")
	}
	out := make([]*Schema, 0, len(v.Content))
	for i, item := range v.Content {
		s, err := l.schema(item, pathutil.Join(at, strconv.Itoa(i)), depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (l *loader) schemaMap(v *yaml.Node, at string, depth int) (*sequencedmap.Map[string, *Schema], error) {
	if v.Kind != yaml.MappingNode {
		return nil, l.fail(v, at, "expected an object of schemas")
	}
	out := sequencedmap.New[string, *Schema]()
	for i := 0; i+1 < len(v.Content); i += 2 {
		name := v.Content[i].Value
		s, err := l.schema(v.Content[i+1], pathutil.Join(at, name), depth+1)
		if err != nil {
			return nil, err
		}
		out.Set(name, s)
	}
	return out, nil
}

func (l *loader) discriminator(v *yaml.Node, at string) (*Discriminator, error) {
	if v.Kind == yaml.ScalarNode {
		return &Discriminator{PropertyName: v.Value}, nil
	}
	if v.Kind != yaml.MappingNode {
		return nil, l.fail(v, at, "discriminator must be a string or an object")
	}
	d := &Discriminator{}
	for i := 0; i+1 < len(v.Content); i += 2 {
		key := v.Content[i].Value
		val := deref(v.Content[i+1])
		switch key {
		case "propertyName":
			d.PropertyName = val.Value
		case "mapping":
			if val.Kind != yaml.MappingNode {
				return nil, l.fail(val, at, "discriminator mapping must be an object")
			}
			d.Mapping = sequencedmap.New[string, *Schema]()
			for j := 0; j+1 < len(val.Content); j += 2 {
				target := deref(val.Content[j+1])
				if target.Kind != yaml.ScalarNode {
					return nil, l.fail(target, at, "discriminator mapping values must be references")
				}
				d.Mapping.Set(val.Content[j].Value, &Schema{RefPath: target.Value})
			}
		}
	}
	if d.PropertyName == "" {
		return nil, l.fail(v, at, "discriminator requires propertyName")
	}
	return d, nil
}

// decodeValue converts an instance-valued node (default, example, enum
// members, extensions) keeping key order and the int/float distinction.
func decodeValue(n *yaml.Node) any {
	n = deref(n)
	switch n.Kind {
	case yaml.MappingNode:
		m := sequencedmap.New[string, any]()
		for i := 0; i+1 < len(n.Content); i += 2 {
			m.Set(n.Content[i].Value, decodeValue(n.Content[i+1]))
		}
		return m
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			out = append(out, decodeValue(item))
		}
		return out
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return nil
		case "!!bool":
			b, _ := strconv.ParseBool(n.Value)
			return b
		case "!!int":
			if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return i
			}
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return f
			}
		case "!!float":
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return f
			}
		}
		return n.Value
	}
	return nil
}
