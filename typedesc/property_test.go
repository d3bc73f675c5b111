package typedesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeProperty(t *testing.T) {
	tests := []struct {
		name         string
		facts        PropertyFacts
		handling     NullHandling
		wantNullable bool
		wantRequired bool
	}{
		{"nullable type, default hint", PropertyFacts{TypeIsNullable: true}, NullHandlingNull, true, false},
		{"value type", PropertyFacts{}, NullHandlingNull, false, false},
		{"required fact wins", PropertyFacts{TypeIsNullable: true, HasRequiredFact: true}, NullHandlingNull, false, true},
		{"disallow null", PropertyFacts{TypeIsNullable: true, Required: RequiredDisallowNull}, NullHandlingNull, false, false},
		{"allow null", PropertyFacts{TypeIsNullable: true, Required: RequiredAllowNull}, NullHandlingNull, true, true},
		{"always", PropertyFacts{TypeIsNullable: true, Required: RequiredAlways}, NullHandlingNull, false, true},
		{"reference type, null handling", PropertyFacts{IsReferenceType: true}, NullHandlingNull, true, false},
		{"reference type, not null handling", PropertyFacts{IsReferenceType: true, TypeIsNullable: true}, NullHandlingNotNull, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeProperty(tt.facts, tt.handling)
			assert.Equal(t, tt.wantNullable, got.IsNullable)
			assert.Equal(t, tt.wantRequired, got.IsRequired)
		})
	}
}
