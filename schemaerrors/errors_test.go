package schemaerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "schema.yaml",
			Line:    4,
			Column:  2,
			Pointer: "#/properties/a",
			Message: "type must be a string or array",
			Cause:   errors.New("boom"),
		}
		assert.Equal(t, "parse error in schema.yaml at line 4, column 2 (#/properties/a): type must be a string or array: boom", err.Error())
	})

	t.Run("minimal", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := fmt.Errorf("schema: %w", &ParseError{Message: "bad"})
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrReference)
	})
}

func TestReferenceError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReferenceError
		want     string
		circular bool
	}{
		{
			name: "missing definition",
			err:  &ReferenceError{Ref: "#/definitions/Pet", Path: "#/properties/pet", Message: "not found"},
			want: "reference error: #/definitions/Pet at #/properties/pet: not found",
		},
		{
			name:     "alias cycle",
			err:      &ReferenceError{Ref: "#/definitions/A", IsCircular: true},
			want:     "circular reference: #/definitions/A",
			circular: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrReference)
			assert.Equal(t, tt.circular, errors.Is(tt.err, ErrCircularReference))
		})
	}
}

func TestStructureError(t *testing.T) {
	err := NewDuplicateProperty("Employee", "name")
	assert.ErrorIs(t, err, ErrStructure)
	assert.Contains(t, err.Error(), "duplicate property")
	assert.Contains(t, err.Error(), "JSON property 'name' is defined multiple times on type 'Employee'")

	var se *StructureError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &se))
	assert.Equal(t, "Employee", se.TypeName)
	assert.Equal(t, "name", se.Property)
}

func TestDuplicateSchemaWrapping(t *testing.T) {
	err := &StructureError{TypeName: "Pet", Message: "already registered", Cause: ErrDuplicateSchema}
	assert.ErrorIs(t, err, ErrStructure)
	assert.ErrorIs(t, err, ErrDuplicateSchema)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "WithMaxDepth", Value: -1, Message: "must be positive"}
	assert.Equal(t, "configuration error for WithMaxDepth (value: -1): must be positive", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, err.Unwrap())
}
