package resolver

import (
	"testing"

	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(schema.NewDocument(nil))
	require.NoError(t, err)
	return r
}

func TestRegistry_AddGet(t *testing.T) {
	r := newRegistry(t)
	node := schema.New(schema.TypeObject)

	assert.False(t, r.HasSchema("Pet", false))
	require.NoError(t, r.AddSchema("Pet", false, node))
	assert.True(t, r.HasSchema("Pet", false))
	assert.False(t, r.HasSchema("Pet", true))

	got, err := r.GetSchema("Pet", false)
	require.NoError(t, err)
	assert.Same(t, node, got)

	_, tracked := r.Document().ID(node)
	assert.True(t, tracked)
}

func TestRegistry_VariantsAreDistinct(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.AddSchema("Color", true, schema.New(schema.TypeInteger)))
	require.NoError(t, r.AddSchema("Color", false, schema.New(schema.TypeString)))

	asInt, _ := r.GetSchema("Color", true)
	asString, _ := r.GetSchema("Color", false)
	assert.NotSame(t, asInt, asString)
}

func TestRegistry_DuplicateAdd(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.AddSchema("Pet", false, schema.New(schema.TypeObject)))

	err := r.AddSchema("Pet", false, schema.New(schema.TypeObject))
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrDuplicateSchema)
	assert.ErrorIs(t, err, schemaerrors.ErrStructure)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := newRegistry(t)
	_, err := r.GetSchema("Missing", false)
	assert.ErrorIs(t, err, schemaerrors.ErrReference)
}

func TestRegistry_AppendSchema(t *testing.T) {
	r := newRegistry(t)
	first := schema.New(schema.TypeObject)
	second := schema.New(schema.TypeObject)
	third := schema.New(schema.TypeObject)

	assert.Equal(t, "Foo", r.AppendSchema(first, "Foo"))
	assert.Equal(t, "Foo2", r.AppendSchema(second, "Foo"))
	assert.Equal(t, "Foo3", r.AppendSchema(third, "Foo"))
	assert.Equal(t, "Foo", r.AppendSchema(first, "Foo"))
	assert.Equal(t, "Anonymous", r.AppendSchema(schema.New(schema.TypeString), ""))

	assert.Equal(t, []string{"Foo", "Foo2", "Foo3", "Anonymous"}, r.Document().DefinitionNames())
}

func TestRegistry_PlaceholderForRecursiveType(t *testing.T) {
	r := newRegistry(t)
	node := schema.New(schema.TypeObject)
	require.NoError(t, r.AddSchema("Node", false, node))

	// while filling in Node, a property of type Node finds the placeholder
	self, err := r.GetSchema("Node", false)
	require.NoError(t, err)
	node.SetProperty("next", schema.NewReference(self))
	r.AppendSchema(node, "Node")

	next, _ := node.Property("next")
	assert.Same(t, node, next.ActualSchema())
}
