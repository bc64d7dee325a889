// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/altshiftab/jsonvalidate/internal/validerr"
	"github.com/altshiftab/jsonvalidate/pkg/types"
	"github.com/altshiftab/jsonvalidate/pkg/value"
)

// ValidateTypeUnion implements the draft 3 type keyword.
// Each element is a type name or a schema; the instance
// must match at least one of them.
func ValidateTypeUnion(arg types.PartTypeUnion, instance any, state *types.ValidationState) error {
	ok, err := matchTypeUnion(arg, instance, state)
	if err != nil {
		return err
	}
	if !ok {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("instance has type %q, want %s", value.TypeName(instance), arg),
		}
	}
	return nil
}

// ValidateDisallow implements the draft 3 disallow keyword,
// which is the inverse of type.
func ValidateDisallow(arg types.PartTypeUnion, instance any, state *types.ValidationState) error {
	ok, err := matchTypeUnion(arg, instance, state)
	if err != nil {
		return err
	}
	if ok {
		return &validerr.ValidationError{
			Message: fmt.Sprintf("instance type %q is disallowed by %s", value.TypeName(instance), arg),
		}
	}
	return nil
}

// matchTypeUnion reports whether instance matches any element of arg.
// Unknown type names never match.
func matchTypeUnion(arg types.PartTypeUnion, instance any, state *types.ValidationState) (bool, error) {
	matched := false
	for i, ts := range arg {
		if ts.Schema != nil {
			toks := []any{i}
			if len(arg) == 1 {
				toks = nil
			}
			err := ts.Schema.ValidateInPlace(instance, state, toks...)
			if err == nil {
				matched = true
			} else if !validerr.IsValidationError(err) {
				return false, err
			}
			continue
		}

		if matchDraft3Type(ts.Type, instance) {
			matched = true
		}
	}
	return matched, nil
}

// matchDraft3Type reports whether instance has the draft 3 type typ.
func matchDraft3Type(typ string, instance any) bool {
	switch typ {
	case "any":
		return value.KindOf(instance) != value.Invalid
	case "integer":
		// Draft 3 does not treat 1.0 as an integer.
		if n, ok := instance.(json.Number); ok && strings.ContainsAny(string(n), ".eE") {
			return false
		}
		return value.IsInteger(instance)
	case "null", "boolean", "object", "array", "number", "string":
		ok, _ := matchType(typ, instance)
		return ok
	}
	return false
}

// ValidateExtends implements the draft 3 extends keyword.
// The instance must match every schema.
func ValidateExtends(arg types.PartSchemaOrSchemas, instance any, state *types.ValidationState) error {
	if arg.Schema != nil {
		return arg.Schema.ValidateInPlace(instance, state)
	}
	var topErr error
	for i, s := range arg.Schemas {
		validerr.AddError(&topErr, s.ValidateInPlace(instance, state, i))
	}
	return topErr
}

// ValidateDivisibleBy implements the draft 3 divisibleBy keyword.
func ValidateDivisibleBy(arg types.PartNumber, instance any, state *types.ValidationState) error {
	return multipleOf(arg, instance, state.Keyword())
}

// ValidateDraft3Properties implements the draft 3 properties keyword.
// In draft 3 a property schema may say "required": true,
// which is reported as a "required" failure at the missing
// property's location.
func ValidateDraft3Properties(arg types.PartMapSchema, instance any, state *types.ValidationState) error {
	m, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var topErr error
	for _, name := range sortedKeys(arg) {
		s := arg[name]
		v, found := m[name]
		if !found {
			if pv, ok := s.LookupKeyword("required"); ok && pv == types.PartBool(true) {
				validerr.AddValidationError(&topErr, &validerr.ValidationError{
					InstancePath: state.InstancePath.Append(name),
					SchemaPath:   state.SchemaPath.Append(state.Keyword(), name, "required"),
					Keyword:      "required",
					Message:      fmt.Sprintf("missing required property %q", name),
				})
			}
			continue
		}
		validerr.AddError(&topErr, s.ValidateElement(v, state, name, name))
		state.Notes.MarkProperty(name)
	}
	return topErr
}
