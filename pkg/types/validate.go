// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"context"
	"errors"

	"github.com/altshiftab/jsonvalidate/internal/validerr"
	"github.com/altshiftab/jsonvalidate/pkg/notes"
)

// MaxDepth is the default for the deepest nesting of schemas that
// validation will follow before giving up.
const MaxDepth = 1000

// ErrTooDeep is returned when validation nests more schemas deep
// than [ValidateOpts.MaxDepth] allows. This normally means a schema
// that refers to itself without consuming any of the instance.
var ErrTooDeep = errors.New("jsonschema: recursion while validating schema too deep")

// Validate reports whether instance satisfies schema.
// If it does, this will return nil.
// If it does not, this will return an error with type either
// [*ValidationError] or [*ValidationErrors].
// A non-nil error with a different type indicates some error
// during validation processing, such as an unresolvable reference.
//
// An instance is a value read from JSON,
// with a Go type like map[string]any or []any.
// Numbers may be float64, any integer type, or [encoding/json.Number].
func (s *Schema) Validate(ctx context.Context, instance any) error {
	return s.ValidateWithOpts(ctx, instance, nil)
}

// ValidateOpts describes validation options.
// These are uncommon so we use a separate method for them.
type ValidateOpts struct {
	// Resolver resolves "$ref" keywords.
	// If it is nil any reference is an error.
	Resolver RefResolver

	// Whether to validate the format keyword.
	// In order for this to be effective, the package
	// jsonvalidate/pkg/format must be blank imported;
	// by default the format keyword always matches.
	ValidateFormat bool

	// MaxDepth limits the nesting of schemas, counting each
	// subschema applied, not each level of the instance.
	// Zero means [MaxDepth]. A negative value means no limit,
	// for use when Resolver bounds the references it follows.
	MaxDepth int
}

// maxDepth returns the effective nesting limit, or -1 for none.
func (vo *ValidateOpts) maxDepth() int {
	switch {
	case vo.MaxDepth == 0:
		return MaxDepth
	case vo.MaxDepth < 0:
		return -1
	}
	return vo.MaxDepth
}

// RefResolver finds the schema that a "$ref" keyword refers to.
type RefResolver interface {
	// Enter resolves ref, which appears in the schema from,
	// and records that the target is being applied to the
	// instance at instancePath. The caller must call leave
	// when it is done with the target.
	//
	// If the target is already being applied to the same
	// instance location, Enter returns a nil target and a nil
	// error. The caller treats that as success.
	Enter(ctx context.Context, from *Schema, ref string, instancePath Path) (target *Schema, leave func(), err error)
}

// ValidateWithOpts is like Validate but supports options.
func (s *Schema) ValidateWithOpts(ctx context.Context, instance any, opts *ValidateOpts) error {
	if opts == nil {
		opts = &ValidateOpts{}
	}
	state := &ValidationState{
		Ctx:  ctx,
		Root: s,
		Opts: opts,
	}
	return s.ValidateSubSchema(instance, state)
}

// ValidateSubSchema reports whether instance satisfies s,
// where s is a sub-schema of some larger validation request.
// The instance is at state.InstancePath and s is at state.SchemaPath.
// This is like Validate but also accepts the current validation state.
func (s *Schema) ValidateSubSchema(instance any, state *ValidationState) error {
	if err := state.Ctx.Err(); err != nil {
		return err
	}

	subState, err := state.Child()
	if err != nil {
		return err
	}
	subState.Schema = s

	parts := s.Parts
	if p, ok := s.Exclusive(); ok {
		parts = []Part{p}
	}

	var topErr error
	for i, p := range parts {
		if p.Keyword.Validate == nil {
			continue
		}
		subState.Index = i
		if err := p.Keyword.Validate(p.Value, instance, subState); err != nil {
			if p.Keyword == &BoolKeyword {
				validerr.Locate(err, "false", subState.InstancePath, subState.SchemaPath)
			} else {
				validerr.Locate(err, p.Keyword.Name, subState.InstancePath, subState.SchemaPath.Append(p.Keyword.Name))
			}
			validerr.AddError(&topErr, err)
		}
	}
	return topErr
}

// ValidateInPlace validates instance against s, where s appears
// under the current keyword of state and applies to the same
// instance. toks locate s relative to the keyword, as for
// the index of an "allOf" element.
func (s *Schema) ValidateInPlace(instance any, state *ValidationState, toks ...any) error {
	sub := *state
	sub.SchemaPath = state.SchemaPath.Append(state.Keyword()).Append(toks...)
	return s.ValidateSubSchema(instance, &sub)
}

// ValidateElement validates elem, which is the member instTok of the
// current instance, against s, which appears under the current keyword
// of state at toks.
func (s *Schema) ValidateElement(elem any, state *ValidationState, instTok any, toks ...any) error {
	sub := *state
	sub.InstancePath = state.InstancePath.Append(instTok)
	sub.SchemaPath = state.SchemaPath.Append(state.Keyword()).Append(toks...)
	return s.ValidateSubSchema(elem, &sub)
}

// ValidationState is state we maintain while validating a schema.
// This does not apply to subschemas or parent schemas.
// This is exported for use by additional schema implementations.
// It is not expected to be used by code that just wants to validate a schema.
type ValidationState struct {
	// Ctx is the context of the validation request.
	Ctx context.Context
	// The root of the Schema being validated.
	Root *Schema
	// The Schema being validated.
	Schema *Schema
	// The index in schema.Parts of the keyword currently being validated.
	Index int
	// Notes created during validation of the keywords of Schema.
	Notes notes.Notes
	// Depth of tree when validating. Used to avoid infinite recursion.
	Depth int
	// Validation options. Never nil.
	Opts *ValidateOpts

	// InstancePath is the location of the instance being validated.
	InstancePath validerr.Path
	// SchemaPath is the location of Schema, following references.
	SchemaPath validerr.Path
}

// Child returns a new ValidationState that is a child of vs.
// This can be used to validate a subschema without changing
// the notes stored in vs.
func (vs *ValidationState) Child() (*ValidationState, error) {
	if limit := vs.Opts.maxDepth(); limit >= 0 && vs.Depth > limit {
		return nil, ErrTooDeep
	}
	return &ValidationState{
		Ctx:          vs.Ctx,
		Root:         vs.Root,
		Schema:       vs.Schema,
		Index:        vs.Index,
		Depth:        vs.Depth + 1,
		Opts:         vs.Opts,
		InstancePath: vs.InstancePath,
		SchemaPath:   vs.SchemaPath,
	}, nil
}

// Keyword returns the name of the keyword being validated.
func (vs *ValidationState) Keyword() string {
	if p, ok := vs.Schema.Exclusive(); ok {
		return p.Keyword.Name
	}
	return vs.Schema.Parts[vs.Index].Keyword.Name
}

// ValidationError is returned by a validation function
// when an instance fails validation.
type ValidationError = validerr.ValidationError

// ValidationErrors is a collection of ValidationError values.
type ValidationErrors = validerr.ValidationErrors

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return validerr.IsValidationError(err)
}

// Path is a location within a JSON document, as used by
// [ValidationError] and [RefResolver].
type Path = validerr.Path
