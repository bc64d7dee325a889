// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validator contains functions to handle different schema arguments.
package validator

import (
	"fmt"
	"math/big"
	"regexp"
	"slices"
	"sync"

	"github.com/altshiftab/jsonvalidate/internal/validerr"
	"github.com/altshiftab/jsonvalidate/pkg/types"
	"github.com/altshiftab/jsonvalidate/pkg/value"
)

// Typed adapts a validation function that takes a specific argument
// type to the signature used by [types.Keyword].
func Typed[P types.PartValue](fn func(P, any, *types.ValidationState) error) func(types.PartValue, any, *types.ValidationState) error {
	return func(arg types.PartValue, instance any, state *types.ValidationState) error {
		p, ok := arg.(P)
		if !ok {
			return fmt.Errorf("jsonschema: %q argument is %T, want %T", state.Keyword(), arg, p)
		}
		return fn(p, instance, state)
	}
}

// ValidateTrue is used for keywords that always match.
// These keywords have meaning for the schema, but don't affect
// whether the schema validates an instance.
func ValidateTrue(types.PartValue, any, *types.ValidationState) error {
	return nil
}

// ValidateRef implements the $ref keyword.
// The target is applied to the same instance. Its errors are
// located under "$ref" in the schema path.
func ValidateRef(arg types.PartString, instance any, state *types.ValidationState) error {
	if state.Opts.Resolver == nil {
		return fmt.Errorf("jsonschema: no resolver for reference %q", string(arg))
	}
	target, leave, err := state.Opts.Resolver.Enter(state.Ctx, state.Schema, string(arg), state.InstancePath)
	if err != nil {
		return err
	}
	defer leave()

	if target == nil {
		// Already applying this target to this instance location.
		return nil
	}
	return target.ValidateInPlace(instance, state)
}

// ValidateAllOf implements the allOf keyword.
func ValidateAllOf(arg types.PartSchemas, instance any, state *types.ValidationState) error {
	var topErr error
	for i, s := range arg {
		validerr.AddError(&topErr, s.ValidateInPlace(instance, state, i))
	}
	return topErr
}

// ValidateAnyOf implements the anyOf keyword.
func ValidateAnyOf(arg types.PartSchemas, instance any, state *types.ValidationState) error {
	ok := false
	var causes []*validerr.ValidationError
	var topErr error
	for i, s := range arg {
		if err := s.ValidateInPlace(instance, state, i); err != nil {
			if !validerr.IsValidationError(err) {
				validerr.AddError(&topErr, err)
			}
			causes = append(causes, validerr.Flatten(err)...)
		} else {
			// Continue to check all subschemas
			// to report broken ones.
			ok = true
		}
	}
	if topErr != nil {
		return topErr
	}
	if !ok {
		return &validerr.ValidationError{
			Message: `no "anyOf" schema matches`,
			Causes:  causes,
		}
	}
	return nil
}

// ValidateOneOf implements the oneOf keyword.
func ValidateOneOf(arg types.PartSchemas, instance any, state *types.ValidationState) error {
	c := 0
	var causes []*validerr.ValidationError
	var topErr error
	for i, s := range arg {
		if err := s.ValidateInPlace(instance, state, i); err != nil {
			if !validerr.IsValidationError(err) {
				validerr.AddError(&topErr, err)
			}
			causes = append(causes, validerr.Flatten(err)...)
		} else {
			c++
		}
	}
	if topErr != nil {
		return topErr
	}
	switch c {
	case 1:
		return nil
	case 0:
		return &validerr.ValidationError{
			Message: `no "oneOf" schema matches`,
			Causes:  causes,
		}
	default:
		return &validerr.ValidationError{
			Message: fmt.Sprintf(`%d "oneOf" schemas match, want exactly one`, c),
		}
	}
}

// ValidateNot implements the not keyword.
func ValidateNot(arg types.PartSchema, instance any, state *types.ValidationState) error {
	if err := arg.S.ValidateInPlace(instance, state); err != nil {
		if !validerr.IsValidationError(err) {
			return err
		}
		return nil
	}
	return &validerr.ValidationError{
		Message: `"not" schema matched`,
	}
}

// ValidateType implements the type keyword.
func ValidateType(arg types.PartStringOrStrings, instance any, state *types.ValidationState) error {
	want := arg.Strings
	if want == nil {
		want = []string{arg.String}
	}
	for _, typ := range want {
		ok, err := matchType(typ, instance)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	if arg.Strings == nil {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("instance has type %q, want %q", value.TypeName(instance), arg.String),
		}
	}
	return &validerr.ValidationError{
		Message: fmt.Sprintf("instance has type %q, want one of %q", value.TypeName(instance), arg.Strings),
	}
}

// CheckTypes reports a type keyword that names an unknown type,
// so that it is rejected when the schema is built.
func CheckTypes(arg types.PartValue) error {
	sos, ok := arg.(types.PartStringOrStrings)
	if !ok {
		return nil
	}
	names := sos.Strings
	if names == nil {
		names = []string{sos.String}
	}
	for _, typ := range names {
		if _, err := matchType(typ, nil); err != nil {
			return err
		}
	}
	return nil
}

// matchType reports whether instance has the JSON type typ.
func matchType(typ string, instance any) (bool, error) {
	k := value.KindOf(instance)
	switch typ {
	case "null":
		return k == value.Null, nil
	case "boolean":
		return k == value.Boolean, nil
	case "object":
		return k == value.Object, nil
	case "array":
		return k == value.Array, nil
	case "number":
		return k == value.Number, nil
	case "string":
		return k == value.String, nil
	case "integer":
		return value.IsInteger(instance), nil
	default:
		return false, fmt.Errorf(`jsonschema: "type" argument is unsupported string %q`, typ)
	}
}

// ValidateEnum implements the enum keyword.
func ValidateEnum(arg types.PartAny, instance any, state *types.ValidationState) error {
	s, ok := arg.V.([]any)
	if !ok {
		return fmt.Errorf(`jsonschema: "enum" argument is %T, must be an array`, arg.V)
	}
	for _, e := range s {
		if value.Equal(instance, e) {
			return nil
		}
	}
	return &validerr.ValidationError{
		Message: `no "enum" value matched`,
	}
}

// ValidateMultipleOf implements the multipleOf keyword.
// The division is exact, so 0.3 is a multiple of 0.1.
func ValidateMultipleOf(arg types.PartNumber, instance any, state *types.ValidationState) error {
	return multipleOf(arg, instance, state.Keyword())
}

// multipleOf checks that instance is an integral multiple of arg.
func multipleOf(arg types.PartNumber, instance any, keyword string) error {
	if arg.R.Sign() <= 0 {
		return fmt.Errorf("jsonschema: %q argument is %s, must be greater than 0", keyword, arg)
	}
	r, ok := value.Rat(instance)
	if !ok {
		return nil
	}
	quo := new(big.Rat).Quo(r, arg.R)
	if !quo.IsInt() {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("value %v is not a multiple of %s", instance, arg),
		}
	}
	return nil
}

// ValidateMaximum implements the maximum keyword.
// A sibling "exclusiveMaximum" of true makes the limit exclusive.
func ValidateMaximum(arg types.PartNumber, instance any, state *types.ValidationState) error {
	r, ok := value.Rat(instance)
	if !ok {
		return nil
	}
	c := r.Cmp(arg.R)
	if exclusive(state, "exclusiveMaximum") {
		if c >= 0 {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("value %v is not less than exclusive maximum %s", instance, arg),
			}
		}
	} else if c > 0 {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("value %v is larger than maximum %s", instance, arg),
		}
	}
	return nil
}

// ValidateMinimum implements the minimum keyword.
// A sibling "exclusiveMinimum" of true makes the limit exclusive.
func ValidateMinimum(arg types.PartNumber, instance any, state *types.ValidationState) error {
	r, ok := value.Rat(instance)
	if !ok {
		return nil
	}
	c := r.Cmp(arg.R)
	if exclusive(state, "exclusiveMinimum") {
		if c <= 0 {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("value %v is not greater than exclusive minimum %s", instance, arg),
			}
		}
	} else if c < 0 {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("value %v is smaller than minimum %s", instance, arg),
		}
	}
	return nil
}

// exclusive reports whether the boolean keyword is true
// in the schema being validated.
func exclusive(state *types.ValidationState, keyword string) bool {
	pv, ok := state.Schema.LookupKeyword(keyword)
	if !ok {
		return false
	}
	b, ok := pv.(types.PartBool)
	return ok && bool(b)
}

// ValidateMaxLength implements the maxLength keyword.
func ValidateMaxLength(arg types.PartInt, instance any, state *types.ValidationState) error {
	if arg < 0 {
		return fmt.Errorf(`jsonschema: "maxLength" argument is %d, must be non-negative`, arg)
	}
	if s, ok := instance.(string); ok {
		if n := value.Len(s); types.PartInt(n) > arg {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("length %d of %q is more than maxLength %d", n, s, arg),
			}
		}
	}
	return nil
}

// ValidateMinLength implements the minLength keyword.
func ValidateMinLength(arg types.PartInt, instance any, state *types.ValidationState) error {
	if arg < 0 {
		return fmt.Errorf(`jsonschema: "minLength" argument is %d, must be non-negative`, arg)
	}
	if s, ok := instance.(string); ok {
		if n := value.Len(s); types.PartInt(n) < arg {
			return &validerr.ValidationError{
				Message: fmt.Sprintf("length %d of %q is less than minLength %d", n, s, arg),
			}
		}
	}
	return nil
}

// regexps caches compiled regular expressions by source.
// The values are *regexp.Regexp or error.
var regexps sync.Map

// compileRegexp compiles a schema regular expression.
// The patterns are not anchored.
func compileRegexp(keyword, pattern string) (*regexp.Regexp, error) {
	if v, ok := regexps.Load(pattern); ok {
		if re, ok := v.(*regexp.Regexp); ok {
			return re, nil
		}
		return nil, fmt.Errorf("jsonschema: %q regexp %q failed: %w", keyword, pattern, v.(error))
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		regexps.Store(pattern, err)
		return nil, fmt.Errorf("jsonschema: %q regexp %q failed: %w", keyword, pattern, err)
	}
	v, _ := regexps.LoadOrStore(pattern, re)
	return v.(*regexp.Regexp), nil
}

// CheckRegexps compiles the regular expressions of a pattern or
// patternProperties keyword, so that a bad one is reported when
// the schema is built.
func CheckRegexps(arg types.PartValue) error {
	switch arg := arg.(type) {
	case types.PartString:
		_, err := compileRegexp("pattern", string(arg))
		return err
	case types.PartMapSchema:
		for _, pattern := range sortedKeys(arg) {
			if _, err := compileRegexp("patternProperties", pattern); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidatePattern implements the pattern keyword.
func ValidatePattern(arg types.PartString, instance any, state *types.ValidationState) error {
	re, err := compileRegexp("pattern", string(arg))
	if err != nil {
		return err
	}
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	if !re.MatchString(s) {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("%q does not match pattern %q", s, string(arg)),
		}
	}
	return nil
}

// ValidateMaxItems implements the maxItems keyword.
func ValidateMaxItems(arg types.PartInt, instance any, state *types.ValidationState) error {
	a, ok := instance.([]any)
	if !ok {
		return nil
	}
	if types.PartInt(len(a)) > arg {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("array has %d items, more than maxItems %d", len(a), arg),
		}
	}
	return nil
}

// ValidateMinItems implements the minItems keyword.
func ValidateMinItems(arg types.PartInt, instance any, state *types.ValidationState) error {
	a, ok := instance.([]any)
	if !ok {
		return nil
	}
	if types.PartInt(len(a)) < arg {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("array has %d items, fewer than minItems %d", len(a), arg),
		}
	}
	return nil
}

// ValidateUniqueItems implements the uniqueItems keyword.
// Only the first duplicate is reported.
func ValidateUniqueItems(arg types.PartBool, instance any, state *types.ValidationState) error {
	if !arg {
		return nil
	}
	a, ok := instance.([]any)
	if !ok {
		return nil
	}
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if value.Equal(a[i], a[j]) {
				return &validerr.ValidationError{
					Message: fmt.Sprintf("items %d and %d are equal", i, j),
				}
			}
		}
	}
	return nil
}

// ValidateMaxProperties implements the maxProperties keyword.
func ValidateMaxProperties(arg types.PartInt, instance any, state *types.ValidationState) error {
	m, ok := instance.(map[string]any)
	if !ok {
		return nil
	}
	if types.PartInt(len(m)) > arg {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("object has %d properties, more than maxProperties %d", len(m), arg),
		}
	}
	return nil
}

// ValidateMinProperties implements the minProperties keyword.
func ValidateMinProperties(arg types.PartInt, instance any, state *types.ValidationState) error {
	m, ok := instance.(map[string]any)
	if !ok {
		return nil
	}
	if types.PartInt(len(m)) < arg {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("object has %d properties, fewer than minProperties %d", len(m), arg),
		}
	}
	return nil
}

// ValidateRequired implements the required keyword.
// Each missing property is reported at its own location.
func ValidateRequired(arg types.PartStrings, instance any, state *types.ValidationState) error {
	m, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var topErr error
	for _, name := range arg {
		if _, found := m[name]; !found {
			validerr.AddUnique(&topErr, &validerr.ValidationError{
				InstancePath: state.InstancePath.Append(name),
				Keyword:      state.Keyword(),
				SchemaPath:   state.SchemaPath.Append(state.Keyword()),
				Message:      fmt.Sprintf("missing required property %q", name),
			})
		}
	}
	return topErr
}

// ValidateProperties implements the properties keyword.
func ValidateProperties(arg types.PartMapSchema, instance any, state *types.ValidationState) error {
	m, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var topErr error
	for _, name := range sortedKeys(arg) {
		v, found := m[name]
		if !found {
			continue
		}
		validerr.AddError(&topErr, arg[name].ValidateElement(v, state, name, name))
		state.Notes.MarkProperty(name)
	}
	return topErr
}

// ValidatePatternProperties implements the patternProperties keyword.
func ValidatePatternProperties(arg types.PartMapSchema, instance any, state *types.ValidationState) error {
	patterns := sortedKeys(arg)
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := compileRegexp("patternProperties", p)
		if err != nil {
			return err
		}
		res[i] = re
	}

	m, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var topErr error
	for _, name := range value.Keys(m) {
		for i, re := range res {
			if !re.MatchString(name) {
				continue
			}
			validerr.AddError(&topErr, arg[patterns[i]].ValidateElement(m[name], state, name, patterns[i]))
			state.Notes.MarkProperty(name)
		}
	}
	return topErr
}

// ValidateAdditionalProperties implements the additionalProperties keyword.
// It applies to the members not matched by "properties" or
// "patternProperties" in the same schema.
func ValidateAdditionalProperties(arg types.PartSchema, instance any, state *types.ValidationState) error {
	m, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var topErr error
	for _, name := range value.Keys(m) {
		if state.Notes.PropertyEvaluated(name) {
			continue
		}
		if arg.S.IsFalse() {
			validerr.AddValidationError(&topErr, &validerr.ValidationError{
				InstancePath: state.InstancePath.Append(name),
				Message:      fmt.Sprintf("additional property %q is not allowed", name),
			})
			continue
		}
		validerr.AddError(&topErr, arg.S.ValidateElement(m[name], state, name))
	}
	return topErr
}

// ValidateDependencies implements the dependencies keyword.
func ValidateDependencies(arg types.PartMapArrayOrSchema, instance any, state *types.ValidationState) error {
	m, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var topErr error
	for _, name := range sortedKeys(arg) {
		if _, found := m[name]; !found {
			continue
		}

		as := arg[name]
		if as.Schema != nil {
			validerr.AddError(&topErr, as.Schema.ValidateInPlace(instance, state, name))
			continue
		}
		for _, dep := range as.Array {
			if _, found := m[dep]; !found {
				validerr.AddUnique(&topErr, &validerr.ValidationError{
					InstancePath: state.InstancePath.Append(dep),
					Keyword:      state.Keyword(),
					SchemaPath:   state.SchemaPath.Append(state.Keyword(), name),
					Message:      fmt.Sprintf("property %q requires property %q", name, dep),
				})
			}
		}
	}
	return topErr
}

// formatValidator is the type of a function that validates a format.
type formatValidator = func(any, *types.ValidationState) error

// formatValidators maps format keywords to functions that validate them.
var formatValidators map[string]formatValidator

// formatValidatorsLock is a lock for formatValidators.
var formatValidatorsLock sync.RWMutex

// RegisterFormatValidator records a validator to use for
// a format keyword.
func RegisterFormatValidator(format string, fv formatValidator) {
	formatValidatorsLock.Lock()
	defer formatValidatorsLock.Unlock()
	if formatValidators == nil {
		formatValidators = make(map[string]formatValidator)
	}
	formatValidators[format] = fv
}

// Formats returns the names of the registered formats.
func Formats() []string {
	formatValidatorsLock.RLock()
	defer formatValidatorsLock.RUnlock()
	return sortedKeys(formatValidators)
}

// ValidateFormat implements the format keyword.
// Unknown formats always match.
func ValidateFormat(arg types.PartString, instance any, state *types.ValidationState) error {
	if !state.Opts.ValidateFormat {
		return nil
	}

	formatValidatorsLock.RLock()
	fv := formatValidators[string(arg)]
	formatValidatorsLock.RUnlock()
	if fv == nil {
		return nil
	}

	err := fv(instance, state)
	if err != nil && !validerr.IsValidationError(err) {
		err = &validerr.ValidationError{
			Message: err.Error(),
		}
	}
	return err
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
