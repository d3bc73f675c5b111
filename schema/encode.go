package schema

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/schemagraph/internal/pathutil"
	"github.com/goccy/go-json"
	"github.com/speakeasy-api/openapi/sequencedmap"
	"go.yaml.in/yaml/v4"
)

// MarshalYAML implements yaml.Marshaler. Keys are written in keyword order
// and properties in declaration order.
func (d *Document) MarshalYAML() (any, error) {
	return d.YAMLNode(d.Root), nil
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.SchemaJSON(d.Root)
}

// MarshalIndentJSON is MarshalJSON with indentation.
func (d *Document) MarshalIndentJSON(prefix, indent string) ([]byte, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, prefix, indent); err != nil {
		return nil, fmt.Errorf("schema: indenting json: %w", err)
	}
	return buf.Bytes(), nil
}

// SchemaJSON encodes one node of the document as JSON. References inside it
// are written relative to the document.
func (d *Document) SchemaJSON(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, d.YAMLNode(s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SchemaYAML encodes one node of the document as YAML.
func (d *Document) SchemaYAML(s *Schema) ([]byte, error) {
	return yaml.Marshal(d.YAMLNode(s))
}

// YAMLNode converts s to a yaml.Node tree.
func (d *Document) YAMLNode(s *Schema) *yaml.Node {
	e := &encoder{doc: d, active: make(map[*Schema]bool)}
	return e.schema(s)
}

type encoder struct {
	doc    *Document
	active map[*Schema]bool
}

// refPath returns the $ref text for an alias node.
func (e *encoder) refPath(s *Schema) string {
	if s.RefPath != "" {
		return s.RefPath
	}
	return e.pointerTo(s.Reference)
}

func (e *encoder) pointerTo(target *Schema) string {
	target = target.ActualSchema()
	if target == e.doc.Root {
		return "#"
	}
	if name, ok := e.doc.DefinitionName(target); ok {
		return pathutil.DefinitionRef(name)
	}
	if p, ok := e.doc.Locate(target); ok {
		return p
	}
	return "#"
}

func (e *encoder) schema(s *Schema) *yaml.Node {
	m := &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
	if s == nil {
		return m.node
	}
	if s.Reference != nil || s.RefPath != "" {
		m.str("$ref", e.refPath(s))
		return m.node
	}
	if e.active[s] {
		// structural cycle; emit a pointer instead of recursing forever
		m.str("$ref", e.pointerTo(s))
		return m.node
	}
	e.active[s] = true
	defer delete(e.active, s)

	m.str("$schema", s.SchemaURI)
	m.str("id", s.ID)
	m.str("title", s.Title)
	m.str("description", s.Description)
	m.str("x-typeName", s.TypeName)
	m.add("type", typeNode(s.Type))
	m.str("format", s.Format)
	if s.Default != nil {
		m.add("default", valueNode(s.Default))
	}
	if s.Example != nil {
		m.add("example", valueNode(s.Example))
	}

	m.add("allOf", e.list(s.AllOf))
	m.add("anyOf", e.list(s.AnyOf))
	m.add("oneOf", e.list(s.OneOf))
	if s.Not != nil {
		m.add("not", e.schema(s.Not))
	}

	m.add("properties", e.table(s.Properties))
	if len(s.RequiredProperties) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, r := range s.RequiredProperties {
			seq.Content = append(seq.Content, strNode(r))
		}
		m.add("required", seq)
	}
	switch {
	case s.AdditionalPropertiesSchema != nil:
		m.add("additionalProperties", e.schema(s.AdditionalPropertiesSchema))
	case s.DisallowAdditionalProperties:
		m.add("additionalProperties", boolNode(false))
	}
	m.add("patternProperties", e.table(s.PatternProperties))
	m.count("minProperties", s.MinProperties)
	m.count("maxProperties", s.MaxProperties)

	switch {
	case s.Item != nil:
		m.add("items", e.schema(s.Item))
	case len(s.Items) > 0:
		m.add("items", e.list(s.Items))
	}
	switch {
	case s.AdditionalItemsSchema != nil:
		m.add("additionalItems", e.schema(s.AdditionalItemsSchema))
	case s.DisallowAdditionalItems:
		m.add("additionalItems", boolNode(false))
	}
	m.count("minItems", s.MinItems)
	m.count("maxItems", s.MaxItems)
	if s.UniqueItems {
		m.add("uniqueItems", boolNode(true))
	}

	if len(s.Enumeration) > 0 {
		m.add("enum", valueNode(s.Enumeration))
	}
	if len(s.EnumerationNames) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, n := range s.EnumerationNames {
			seq.Content = append(seq.Content, strNode(n))
		}
		m.add("x-enumNames", seq)
	}

	m.number("minimum", s.Minimum)
	if s.IsExclusiveMinimum {
		m.add("exclusiveMinimum", boolNode(true))
	}
	m.number("maximum", s.Maximum)
	if s.IsExclusiveMaximum {
		m.add("exclusiveMaximum", boolNode(true))
	}
	m.number("multipleOf", s.MultipleOf)

	if s.MinLength != nil {
		m.add("minLength", intNode(int64(*s.MinLength)))
	}
	if s.MaxLength != nil {
		m.add("maxLength", intNode(int64(*s.MaxLength)))
	}
	m.str("pattern", s.Pattern)

	if s.Discriminator != nil {
		m.add("discriminator", e.discriminator(s.Discriminator))
	}
	if s.IsNullableRaw != nil {
		m.add("x-nullable", boolNode(*s.IsNullableRaw))
	}
	m.flag("x-abstract", s.IsAbstract)
	m.flag("x-deprecated", s.IsDeprecated)
	m.flag("readOnly", s.IsReadOnly)
	m.flag("writeOnly", s.IsWriteOnly)

	if s.Extensions != nil {
		for k, v := range s.Extensions.All() {
			m.add(k, valueNode(v))
		}
	}
	m.add("definitions", e.table(s.Definitions))
	return m.node
}

func (e *encoder) list(items []*Schema) *yaml.Node {
	if len(items) == 0 {
		return nil
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, it := range items {
		seq.Content = append(seq.Content, e.schema(it))
	}
	return seq
}

func (e *encoder) table(t *sequencedmap.Map[string, *Schema]) *yaml.Node {
	if t == nil || t.Len() == 0 {
		return nil
	}
	m := &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
	for name, s := range t.All() {
		m.add(name, e.schema(s))
	}
	return m.node
}

func (e *encoder) discriminator(d *Discriminator) *yaml.Node {
	if d.Mapping == nil || d.Mapping.Len() == 0 {
		return strNode(d.PropertyName)
	}
	m := &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
	m.str("propertyName", d.PropertyName)
	mm := &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
	for value, target := range d.Mapping.All() {
		mm.str(value, e.refPath(target))
	}
	m.add("mapping", mm.node)
	return m.node
}

// mapping appends key/value pairs to a MappingNode, skipping empty values.
type mapping struct {
	node *yaml.Node
}

func (m *mapping) add(key string, v *yaml.Node) {
	if v == nil {
		return
	}
	m.node.Content = append(m.node.Content, strNode(key), v)
}

func (m *mapping) str(key, v string) {
	if v != "" {
		m.add(key, strNode(v))
	}
}

func (m *mapping) flag(key string, v bool) {
	if v {
		m.add(key, boolNode(true))
	}
}

func (m *mapping) count(key string, v int) {
	if v > 0 {
		m.add(key, intNode(int64(v)))
	}
}

func (m *mapping) number(key string, v *float64) {
	if v != nil {
		m.add(key, numberNode(*v))
	}
}

func typeNode(t ObjectType) *yaml.Node {
	names := t.Names()
	switch len(names) {
	case 0:
		return nil
	case 1:
		return strNode(names[0])
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, n := range names {
		seq.Content = append(seq.Content, strNode(n))
	}
	return seq
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func boolNode(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

func intNode(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

// numberNode writes keyword numbers; integral values print without a fraction.
func numberNode(v float64) *yaml.Node {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return intNode(int64(v))
	}
	return floatNode(v)
}

// floatNode keeps a fractional marker so the value reloads as a float.
func floatNode(v float64) *yaml.Node {
	text := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eEnN") {
		text += ".0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}
}

// valueNode converts an instance value (default, enum member, extension).
func valueNode(v any) *yaml.Node {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		return boolNode(val)
	case int:
		return intNode(int64(val))
	case int32:
		return intNode(int64(val))
	case int64:
		return intNode(val)
	case float32:
		return floatNode(float64(val))
	case float64:
		return floatNode(val)
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: val.String()}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: val.String()}
	case string:
		return strNode(val)
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range val {
			seq.Content = append(seq.Content, valueNode(item))
		}
		return seq
	case *sequencedmap.Map[string, any]:
		m := &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
		if val != nil {
			for k, item := range val.All() {
				m.add(k, valueNode(item))
			}
		}
		return m.node
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		m := &mapping{node: &yaml.Node{Kind: yaml.MappingNode}}
		for _, k := range keys {
			m.add(k, valueNode(val[k]))
		}
		return m.node
	case fmt.Stringer:
		return strNode(val.String())
	default:
		return strNode(fmt.Sprint(val))
	}
}

// writeNodeJSON writes a yaml.Node tree as compact JSON. Scalars are written
// according to their tag; strings go through the JSON encoder for escaping.
func writeNodeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNodeJSON(buf, n.Content[0])
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.AliasNode:
		return writeNodeJSON(buf, n.Alias)
	default:
		switch n.Tag {
		case "!!null":
			buf.WriteString("null")
		case "!!bool", "!!int", "!!float":
			buf.WriteString(n.Value)
		default:
			return writeJSONString(buf, n.Value)
		}
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
