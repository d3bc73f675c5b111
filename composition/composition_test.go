package composition

import (
	"testing"

	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personEmployee = `{
  "definitions": {
    "Person": {
      "type": "object",
      "required": ["name"],
      "properties": {"name": {"type": "string"}}
    },
    "Employee": {
      "allOf": [
        {"$ref": "#/definitions/Person"},
        {"type": "object", "required": ["class"], "properties": {"class": {"type": "string"}}}
      ]
    },
    "Manager": {
      "allOf": [{"$ref": "#/definitions/Employee"}],
      "properties": {"office": {"type": "string"}}
    }
  }
}`

func loadResolved(t *testing.T, src string) *schema.Document {
	t.Helper()
	doc, err := schema.Load([]byte(src))
	require.NoError(t, err)
	require.NoError(t, resolver.Resolve(doc))
	return doc
}

func def(t *testing.T, doc *schema.Document, name string) *schema.Schema {
	t.Helper()
	s, ok := doc.Definition(name)
	require.True(t, ok, name)
	return s
}

func TestResolve_PersonEmployee(t *testing.T) {
	doc := loadResolved(t, personEmployee)
	person, employee := def(t, doc, "Person"), def(t, doc, "Employee")

	eff, err := Resolve(employee)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"name", "class"}, eff.PropertyNames()); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"name", "class"}, eff.Required)
	assert.Same(t, person, eff.Base)
	assert.Equal(t, []*schema.Schema{person}, eff.Chain)

	require.Len(t, eff.AllOf, 2)
	assert.Same(t, person, eff.AllOf[0].ActualSchema())
	assert.Same(t, employee.AllOf[1], eff.AllOf[1])
}

func TestResolve_MultiLevelChain(t *testing.T) {
	doc := loadResolved(t, personEmployee)
	head := def(t, doc, "Manager")

	eff, err := Resolve(head)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "class", "office"}, eff.PropertyNames())
	assert.Equal(t, []*schema.Schema{def(t, doc, "Employee"), def(t, doc, "Person")}, eff.Chain)

	// own properties sit directly on the node, so the own half is synthesized
	require.Len(t, eff.AllOf, 2)
	assert.Same(t, def(t, doc, "Employee"), eff.AllOf[0].ActualSchema())
	assert.Equal(t, []string{"office"}, eff.AllOf[1].PropertyNames())
}

func TestResolve_Idempotent(t *testing.T) {
	doc := loadResolved(t, personEmployee)
	employee := def(t, doc, "Employee")

	first, err := Resolve(employee)
	require.NoError(t, err)
	second, err := Resolve(employee)
	require.NoError(t, err)
	assert.Equal(t, first.PropertyNames(), second.PropertyNames())
	assert.Equal(t, first.Required, second.Required)
}

func TestResolve_DuplicateProperty(t *testing.T) {
	doc := loadResolved(t, `{
  "definitions": {
    "Base": {"type": "object", "properties": {"id": {"type": "string"}}},
    "Child": {"allOf": [{"$ref": "#/definitions/Base"}], "properties": {"id": {"type": "integer"}}}
  }
}`)
	child := def(t, doc, "Child")

	_, err := Resolve(child, WithDocument(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrStructure)
	assert.Contains(t, err.Error(), "duplicate property")
	assert.Contains(t, err.Error(), "'Child'")

	eff, err := Resolve(child, WithFlatten(true))
	require.NoError(t, err)
	id, _ := eff.Properties.Get("id")
	assert.Equal(t, schema.TypeInteger, id.Type)
	assert.Nil(t, eff.AllOf)
}

func TestResolve_RepeatedMixinContributesOnce(t *testing.T) {
	doc := loadResolved(t, `{
  "definitions": {
    "Base": {"type": "object", "properties": {"id": {"type": "string"}}},
    "Named": {"properties": {"name": {"type": "string"}}},
    "Thing": {"allOf": [{"$ref": "#/definitions/Base"}, {"$ref": "#/definitions/Named"}, {"$ref": "#/definitions/Named"}]}
  }
}`)
	thing := def(t, doc, "Thing")
	props, err := ActualProperties(thing)
	require.NoError(t, err)
	assert.Equal(t, 1, props.Len())

	eff, err := Resolve(thing)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, eff.PropertyNames())
}

func TestResolve_Discriminator(t *testing.T) {
	doc := loadResolved(t, `{
  "definitions": {
    "Pet": {"type": "object", "discriminator": "kind", "properties": {"kind": {"type": "string"}}},
    "Dog": {"allOf": [{"$ref": "#/definitions/Pet"}, {"properties": {"bark": {"type": "boolean"}}}]}
  }
}`)
	eff, err := Resolve(def(t, doc, "Dog"))
	require.NoError(t, err)
	require.NotNil(t, eff.Discriminator)
	assert.Equal(t, "kind", eff.Discriminator.PropertyName)
	assert.Same(t, def(t, doc, "Pet"), eff.DiscriminatorOwner)
}

func TestInheritance_Accessors(t *testing.T) {
	doc := loadResolved(t, personEmployee)
	person, employee, head := def(t, doc, "Person"), def(t, doc, "Employee"), def(t, doc, "Manager")

	assert.Same(t, person, InheritedSchema(employee))
	assert.Nil(t, InheritedSchema(person))
	assert.True(t, Inherits(head, person))
	assert.True(t, Inherits(employee, person))
	assert.False(t, Inherits(person, employee))
	assert.False(t, Inherits(person, person))
}

func TestInheritedSchema_IgnoresPrimitiveRefs(t *testing.T) {
	doc := loadResolved(t, `{
  "definitions": {
    "Code": {"type": "string"},
    "Wrapper": {"allOf": [{"$ref": "#/definitions/Code"}]}
  }
}`)
	assert.Nil(t, InheritedSchema(def(t, doc, "Wrapper")))
}

func TestFlatten_RemovesBaseFromTable(t *testing.T) {
	doc := loadResolved(t, `{
  "definitions": {
    "C": {"type": "object", "required": ["c"], "properties": {"c": {"type": "string"}}},
    "B": {"allOf": [{"$ref": "#/definitions/C"}, {"type": "object", "properties": {"b": {"type": "string"}}}]}
  }
}`)
	c, b := def(t, doc, "C"), def(t, doc, "B")

	require.NoError(t, Flatten(doc, b))

	assert.Equal(t, []string{"c", "b"}, b.PropertyNames())
	assert.Equal(t, []string{"c"}, b.RequiredProperties)
	assert.Empty(t, b.AllOf)
	assert.Equal(t, schema.TypeObject, b.Type)

	assert.True(t, doc.HasDefinition("B"))
	assert.False(t, doc.HasDefinition("C"))
	_, inArena := doc.ID(c)
	assert.True(t, inArena)
	assert.Contains(t, doc.Unreachable(), c)

	// second run changes nothing
	require.NoError(t, Flatten(doc, b))
	assert.Equal(t, []string{"c", "b"}, b.PropertyNames())
}

func TestFlatten_KeepsBaseStillReferenced(t *testing.T) {
	doc := loadResolved(t, `{
  "properties": {"c": {"$ref": "#/definitions/C"}},
  "definitions": {
    "C": {"type": "object", "properties": {"c": {"type": "string"}}},
    "B": {"allOf": [{"$ref": "#/definitions/C"}], "properties": {"b": {}}}
  }
}`)
	require.NoError(t, Flatten(doc, def(t, doc, "B")))
	assert.True(t, doc.HasDefinition("C"))
}

func TestFlattenAll(t *testing.T) {
	doc := loadResolved(t, personEmployee)
	require.NoError(t, FlattenAll(doc))

	assert.Equal(t, []string{"Manager"}, doc.DefinitionNames())
	head := def(t, doc, "Manager")
	assert.Equal(t, []string{"name", "class", "office"}, head.PropertyNames())
}

func TestDerivedSchemas(t *testing.T) {
	doc := loadResolved(t, personEmployee)
	derived := DerivedSchemas(doc, def(t, doc, "Person"))

	var names []string
	for _, d := range derived {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Manager", "Employee"}, names)
	assert.Empty(t, DerivedSchemas(doc, def(t, doc, "Manager")))
}

func TestRegisterDiscriminatorMappings(t *testing.T) {
	doc := loadResolved(t, `{
  "definitions": {
    "Pet": {"type": "object", "discriminator": "kind", "properties": {"kind": {"type": "string"}}},
    "Dog": {"allOf": [{"$ref": "#/definitions/Pet"}]},
    "Cat": {"allOf": [{"$ref": "#/definitions/Pet"}]}
  }
}`)
	RegisterDiscriminatorMappings(doc)
	RegisterDiscriminatorMappings(doc)

	pet := def(t, doc, "Pet")
	require.NotNil(t, pet.Discriminator.Mapping)
	assert.Equal(t, 2, pet.Discriminator.Mapping.Len())

	dog, ok := pet.Discriminator.MappedSchema("Dog")
	require.True(t, ok)
	assert.Same(t, def(t, doc, "Dog"), dog)
}
