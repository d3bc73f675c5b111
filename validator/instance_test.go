package validator

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/speakeasy-api/openapi/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagraph/schemaerrors"
)

func TestParseInstance(t *testing.T) {
	v, err := ParseInstance([]byte(`{"z":1,"a":[true,null,"s",2.50],"m":{}}`))
	require.NoError(t, err)

	obj, ok := v.(*sequencedmap.Map[string, any])
	require.True(t, ok)

	var keys []string
	for k := range obj.All() {
		keys = append(keys, k)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, keys); diff != "" {
		t.Errorf("member order mismatch (-want +got):\n%s", diff)
	}

	z, _ := obj.Get("z")
	assert.Equal(t, json.Number("1"), z)

	a, _ := obj.Get("a")
	assert.Equal(t, []any{true, nil, "s", json.Number("2.50")}, a)
}

func TestParseInstance_Scalars(t *testing.T) {
	for src, want := range map[string]any{
		`"x"`:  "x",
		`true`: true,
		`null`: nil,
		`-1e3`: json.Number("-1e3"),
		` 42 `: json.Number("42"),
		`[]`:   []any{},
	} {
		v, err := ParseInstance([]byte(src))
		require.NoError(t, err, src)
		assert.Equal(t, want, v, src)
	}
}

func TestParseInstance_Errors(t *testing.T) {
	for _, src := range []string{``, `{`, `{"a":1}}`, `[1,2] 3`} {
		_, err := ParseInstance([]byte(src))
		require.Error(t, err, src)
		assert.ErrorIs(t, err, schemaerrors.ErrParse, src)
	}
}

func TestCanonical(t *testing.T) {
	ordered := sequencedmap.New[string, any]()
	ordered.Set("b", json.Number("2"))
	ordered.Set("a", "x")

	assert.Equal(t, canonical(map[string]any{"a": "x", "b": 2}), canonical(ordered))
	assert.Equal(t, canonical(json.Number("1.0")), canonical(int64(1)))
	assert.NotEqual(t, canonical("1"), canonical(1))
	assert.Equal(t, textual("1"), textual(1))
	assert.Equal(t, "[\"1\"]", textual([]any{"1"}))
	assert.Equal(t, "[null,true,\"s\"]", canonical([]any{nil, true, "s"}))
}
