package typedesc

// Required is the requiredness hint a host object model attaches to a
// property, before constraint facts are considered.
type Required int

const (
	// RequiredDefault leaves the decision to the type and constraints.
	RequiredDefault Required = iota
	// RequiredDisallowNull means the property may be absent but never null.
	RequiredDisallowNull
	// RequiredAllowNull means the property must be present but may be null.
	RequiredAllowNull
	// RequiredAlways means the property must be present and non-null.
	RequiredAlways
)

// NullHandling decides whether reference-typed properties admit null.
type NullHandling int

const (
	NullHandlingNull NullHandling = iota
	NullHandlingNotNull
)

// PropertyFacts are what the front end knows about a property.
type PropertyFacts struct {
	// TypeIsNullable is set for host types that can hold null on their own
	// (pointers, optional wrappers).
	TypeIsNullable bool
	// IsReferenceType marks types whose nullability follows the configured
	// NullHandling instead of TypeIsNullable.
	IsReferenceType bool
	Required        Required
	// HasRequiredFact is set when a required constraint is attached.
	HasRequiredFact bool
}

// PropertyDescription is the nullability decision for a property.
type PropertyDescription struct {
	IsNullable bool
	IsRequired bool
}

// DescribeProperty applies
//
//	nullable = typeNullable && !requiredFact && (hint == Default || hint == AllowNull)
//
// A required constraint always wins, as does a DisallowNull or Always hint.
func DescribeProperty(p PropertyFacts, refHandling NullHandling) PropertyDescription {
	typeNullable := p.TypeIsNullable
	if p.IsReferenceType {
		typeNullable = refHandling == NullHandlingNull
	}
	return PropertyDescription{
		IsNullable: typeNullable && !p.HasRequiredFact &&
			(p.Required == RequiredDefault || p.Required == RequiredAllowNull),
		IsRequired: p.HasRequiredFact || p.Required == RequiredAlways || p.Required == RequiredAllowNull,
	}
}
