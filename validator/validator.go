package validator

import (
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/erraggy/schemagraph/internal/pathutil"
	"github.com/erraggy/schemagraph/schema"
)

// Validator checks instances against schema nodes. A Validator holds no
// per-call state beyond its pattern cache and is safe for concurrent use.
type Validator struct {
	formats  bool
	logger   schema.Logger
	patterns *PatternCache
}

// New creates a Validator.
func New(opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Validator{
		formats:  cfg.formats,
		logger:   cfg.logger,
		patterns: cfg.patterns,
	}, nil
}

// Validate checks instance against node with a one-off Validator. The error
// reports invalid options only; violations are in the returned slice.
func Validate(instance any, node *schema.Schema, opts ...Option) ([]ValidationError, error) {
	v, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return v.Validate(instance, node), nil
}

// Validate checks instance against node and returns every violation. An
// empty result means the instance is valid. Instances are the values
// produced by ParseInstance or plain Go values (maps, slices, numbers,
// strings, booleans and nil).
func (v *Validator) Validate(instance any, node *schema.Schema) []ValidationError {
	if node == nil {
		return nil
	}
	errs := v.validate(instance, node, "", "#", nil)
	v.logger.Debug("validated instance", "errors", len(errs))
	return errs
}

// active holds the nodes entered for the current instance location, so a
// composition that loops back to itself without consuming the instance
// stops instead of recursing forever.
type active map[*schema.Schema]bool

func (v *Validator) validate(instance any, node *schema.Schema, property, path string, seen active) []ValidationError {
	s := node.ActualSchema()
	if seen[s] {
		return nil
	}
	if seen == nil {
		seen = active{}
	}
	seen[s] = true
	defer delete(seen, s)

	var errs []ValidationError
	at := func(kind Kind) {
		errs = append(errs, ValidationError{Kind: kind, Property: property, Path: path, Schema: s})
	}

	errs = append(errs, v.validateAnyOf(instance, s, property, path, seen)...)
	errs = append(errs, v.validateAllOf(instance, s, property, path, seen)...)
	errs = append(errs, v.validateOneOf(instance, s, property, path, seen)...)
	if s.Not != nil && len(v.validate(instance, s.Not, property, path, seen)) == 0 {
		at(KindExcludedSchemaValidates)
	}
	errs = append(errs, v.validateType(instance, s, property, path)...)
	if len(s.Enumeration) > 0 && !inEnumeration(instance, s.Enumeration) {
		at(KindNotInEnumeration)
	}
	errs = append(errs, v.validateProperties(instance, s, property, path)...)
	return errs
}

func (v *Validator) branches(instance any, subs []*schema.Schema, property, path string, seen active) ([]BranchErrors, int) {
	out := make([]BranchErrors, 0, len(subs))
	valid := 0
	for _, sub := range subs {
		errs := v.validate(instance, sub, property, path, seen)
		if len(errs) == 0 {
			valid++
		}
		out = append(out, BranchErrors{Schema: sub, Errors: errs})
	}
	return out, valid
}

func (v *Validator) validateAnyOf(instance any, s *schema.Schema, property, path string, seen active) []ValidationError {
	if len(s.AnyOf) == 0 {
		return nil
	}
	branches, valid := v.branches(instance, s.AnyOf, property, path, seen)
	if valid > 0 {
		return nil
	}
	return []ValidationError{{Kind: KindNotAnyOf, Property: property, Path: path, Schema: s, Errors: branches}}
}

// validateAllOf reports only the failing branches.
func (v *Validator) validateAllOf(instance any, s *schema.Schema, property, path string, seen active) []ValidationError {
	if len(s.AllOf) == 0 {
		return nil
	}
	branches, valid := v.branches(instance, s.AllOf, property, path, seen)
	if valid == len(s.AllOf) {
		return nil
	}
	failing := branches[:0]
	for _, b := range branches {
		if len(b.Errors) > 0 {
			failing = append(failing, b)
		}
	}
	return []ValidationError{{Kind: KindNotAllOf, Property: property, Path: path, Schema: s, Errors: failing}}
}

func (v *Validator) validateOneOf(instance any, s *schema.Schema, property, path string, seen active) []ValidationError {
	if len(s.OneOf) == 0 {
		return nil
	}
	branches, valid := v.branches(instance, s.OneOf, property, path, seen)
	if valid == 1 {
		return nil
	}
	return []ValidationError{{Kind: KindNotOneOf, Property: property, Path: path, Schema: s, Errors: branches}}
}

// validateType checks the declared type flags, then the constraints of the
// instance's own shape. With several flags the instance only has to match
// one of them; the mismatch errors of all flags are reported otherwise.
func (v *Validator) validateType(instance any, s *schema.Schema, property, path string) []ValidationError {
	var errs []ValidationError
	at := func(kind Kind) {
		errs = append(errs, ValidationError{Kind: kind, Property: property, Path: path, Schema: s})
	}

	null := isNull(instance)
	if !(null && s.IsNullableRaw != nil && *s.IsNullableRaw) {
		var mismatches []Kind
		matched := false
		for _, flag := range s.Type.Flags() {
			kind, ok := typeMismatch(instance, flag)
			if ok {
				matched = true
				break
			}
			mismatches = append(mismatches, kind)
		}
		if !matched {
			for _, kind := range mismatches {
				at(kind)
			}
		}
	}
	if null {
		return errs
	}

	if str, ok := asString(instance); ok {
		errs = append(errs, v.validateString(str, s, property, path)...)
	} else if num, _, ok := asNumber(instance); ok {
		errs = append(errs, validateNumber(num, s, property, path)...)
	} else if items, ok := asArray(instance); ok {
		errs = append(errs, v.validateArray(items, s, property, path)...)
	}
	return errs
}

// typeMismatch returns the error kind for instance not matching flag, or
// ok when it matches.
func typeMismatch(instance any, flag schema.ObjectType) (Kind, bool) {
	switch flag {
	case schema.TypeString:
		_, ok := asString(instance)
		return KindStringExpected, ok
	case schema.TypeNumber:
		_, _, ok := asNumber(instance)
		return KindNumberExpected, ok
	case schema.TypeInteger:
		_, integer, ok := asNumber(instance)
		return KindIntegerExpected, ok && integer
	case schema.TypeBoolean:
		_, ok := asBool(instance)
		return KindBooleanExpected, ok
	case schema.TypeNull:
		return KindNullExpected, isNull(instance)
	case schema.TypeObject:
		_, ok := asObject(instance)
		return KindObjectExpected, ok && !isNull(instance)
	case schema.TypeArray:
		_, ok := asArray(instance)
		return KindArrayExpected, ok && !isNull(instance)
	}
	// file values are not JSON instances and always pass
	return KindUnknown, true
}

func (v *Validator) validateString(str string, s *schema.Schema, property, path string) []ValidationError {
	var errs []ValidationError
	at := func(kind Kind) {
		errs = append(errs, ValidationError{Kind: kind, Property: property, Path: path, Schema: s})
	}

	if s.Pattern != "" {
		re, err := v.patterns.Compile(s.Pattern)
		if err != nil {
			v.logger.Warn("skipping invalid pattern", "pattern", s.Pattern, "path", path, "error", err)
		} else if !re.MatchString(str) {
			at(KindPatternMismatch)
		}
	}

	length := utf8.RuneCountInString(str)
	if s.MinLength != nil && length < *s.MinLength {
		at(KindStringTooShort)
	}
	if s.MaxLength != nil && length > *s.MaxLength {
		at(KindStringTooLong)
	}

	if v.formats && s.Format != "" {
		if check, ok := formatChecks[s.Format]; ok && !check.valid(str) {
			at(check.kind)
		}
	}
	return errs
}

func validateNumber(num *big.Rat, s *schema.Schema, property, path string) []ValidationError {
	var errs []ValidationError
	at := func(kind Kind) {
		errs = append(errs, ValidationError{Kind: kind, Property: property, Path: path, Schema: s})
	}

	if s.Minimum != nil {
		if bound, ok := ratFromFloat(*s.Minimum, 64); ok {
			c := num.Cmp(bound)
			if c < 0 || (c == 0 && s.IsExclusiveMinimum) {
				at(KindNumberTooSmall)
			}
		}
	}
	if s.Maximum != nil {
		if bound, ok := ratFromFloat(*s.Maximum, 64); ok {
			c := num.Cmp(bound)
			if c > 0 || (c == 0 && s.IsExclusiveMaximum) {
				at(KindNumberTooBig)
			}
		}
	}
	if s.MultipleOf != nil && *s.MultipleOf != 0 {
		if m, ok := ratFromFloat(*s.MultipleOf, 64); ok {
			if !new(big.Rat).Quo(num, m).IsInt() {
				at(KindNumberNotMultipleOf)
			}
		}
	}
	return errs
}

func (v *Validator) validateArray(items []any, s *schema.Schema, property, path string) []ValidationError {
	var errs []ValidationError
	at := func(kind Kind) {
		errs = append(errs, ValidationError{Kind: kind, Property: property, Path: path, Schema: s})
	}

	if s.MinItems > 0 && len(items) < s.MinItems {
		at(KindTooFewItems)
	}
	if s.MaxItems > 0 && len(items) > s.MaxItems {
		at(KindTooManyItems)
	}
	if s.UniqueItems && !unique(items) {
		at(KindItemsNotUnique)
	}

	for i, item := range items {
		index := fmt.Sprintf("[%d]", i)
		itemPath := pathutil.Join(path, strconv.Itoa(i))

		if s.Item != nil {
			if e, ok := v.child(s.Item, item, KindArrayItemNotValid, index, itemPath); ok {
				errs = append(errs, e)
			}
		}

		if len(s.Items) == 0 {
			continue
		}
		switch {
		case i < len(s.Items):
			if e, ok := v.child(s.Items[i], item, KindArrayItemNotValid, index, itemPath); ok {
				errs = append(errs, e)
			}
		case s.AdditionalItemsSchema != nil:
			if e, ok := v.child(s.AdditionalItemsSchema, item, KindAdditionalItemNotValid, index, itemPath); ok {
				errs = append(errs, e)
			}
		case !s.AllowAdditionalItems():
			errs = append(errs, ValidationError{Kind: KindTooManyItemsInTuple, Property: index, Path: itemPath, Schema: s})
		}
	}
	return errs
}

// child validates value against sub at a nested location. Any errors are
// wrapped in a child schema error of the given kind.
func (v *Validator) child(sub *schema.Schema, value any, kind Kind, property, path string) (ValidationError, bool) {
	errs := v.validate(value, sub, "", path, nil)
	if len(errs) == 0 {
		return ValidationError{}, false
	}
	return ValidationError{
		Kind:     kind,
		Property: property,
		Path:     path,
		Schema:   sub.ActualSchema(),
		Errors:   []BranchErrors{{Schema: sub, Errors: errs}},
	}, true
}

// validateProperties checks declared and additional members of an object
// instance. Non-object instances are left to the type check.
func (v *Validator) validateProperties(instance any, s *schema.Schema, property, path string) []ValidationError {
	members, ok := asObject(instance)
	if !ok || isNull(instance) {
		return nil
	}

	var errs []ValidationError
	present := make(map[string]any, len(members))
	for _, m := range members {
		present[m.name] = m.value
	}

	if s.Properties != nil {
		for name, prop := range s.Properties.All() {
			propPath := pathutil.Join(path, name)
			if value, ok := present[name]; ok {
				errs = append(errs, v.validate(value, prop, name, propPath, nil)...)
			} else if s.IsRequired(name) {
				errs = append(errs, ValidationError{Kind: KindPropertyRequired, Property: name, Path: propPath, Schema: s})
			}
		}
	}
	// required names without a declared property
	for _, name := range s.RequiredProperties {
		if _, declared := s.Property(name); declared {
			continue
		}
		if _, ok := present[name]; !ok {
			errs = append(errs, ValidationError{Kind: KindPropertyRequired, Property: name, Path: pathutil.Join(path, name), Schema: s})
		}
	}

	if s.MaxProperties > 0 && len(members) > s.MaxProperties {
		errs = append(errs, ValidationError{Kind: KindTooManyProperties, Property: property, Path: path, Schema: s})
	}
	if s.MinProperties > 0 && len(members) < s.MinProperties {
		errs = append(errs, ValidationError{Kind: KindTooFewProperties, Property: property, Path: path, Schema: s})
	}

	for _, m := range members {
		if _, declared := s.Property(m.name); declared {
			continue
		}
		memberPath := pathutil.Join(path, m.name)

		if pattern, ok := v.patternProperty(s, m.name, path); ok {
			if e, ok := v.child(pattern, m.value, KindAdditionalPropertiesNotValid, m.name, memberPath); ok {
				errs = append(errs, e)
			}
			continue
		}

		switch {
		case s.AdditionalPropertiesSchema != nil:
			if e, ok := v.child(s.AdditionalPropertiesSchema, m.value, KindAdditionalPropertiesNotValid, m.name, memberPath); ok {
				errs = append(errs, e)
			}
		case !s.AllowAdditionalProperties():
			errs = append(errs, ValidationError{Kind: KindNoAdditionalPropertiesAllowed, Property: m.name, Path: memberPath, Schema: s})
		}
	}
	return errs
}

// patternProperty returns the schema of the first patternProperties entry
// whose pattern matches name.
func (v *Validator) patternProperty(s *schema.Schema, name, path string) (*schema.Schema, bool) {
	if s.PatternProperties == nil {
		return nil, false
	}
	for pattern, sub := range s.PatternProperties.All() {
		re, err := v.patterns.Compile(pattern)
		if err != nil {
			v.logger.Warn("skipping invalid property pattern", "pattern", pattern, "path", path, "error", err)
			continue
		}
		if re.MatchString(name) {
			return sub, true
		}
	}
	return nil, false
}

func inEnumeration(instance any, values []any) bool {
	want := textual(instance)
	for _, v := range values {
		if textual(v) == want {
			return true
		}
	}
	return false
}

func unique(items []any) bool {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := textual(item)
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}
