// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"

	"github.com/altshiftab/jsonvalidate/internal/validerr"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

// ValidateItems validates an items keyword.
// The argument is either a single schema, which applies to every
// element, or an array of schemas, which apply to the elements
// at the same index.
func ValidateItems(arg types.PartSchemaOrSchemas, instance any, state *types.ValidationState) error {
	a, ok := instance.([]any)
	if !ok {
		return nil
	}

	var topErr error
	if arg.Schema != nil {
		for i, v := range a {
			validerr.AddError(&topErr, arg.Schema.ValidateElement(v, state, i))
		}
		state.Notes.MarkAllItems()
		return topErr
	}

	for i, s := range arg.Schemas {
		if i >= len(a) {
			break
		}
		validerr.AddError(&topErr, s.ValidateElement(a[i], state, i, i))
	}
	// Record the number of schemas, not the number of elements
	// checked, so that additionalItems starts after them.
	state.Notes.MarkItems(len(arg.Schemas))
	return topErr
}

// ValidateAdditionalItems validates an additionalItems keyword.
// It only has an effect when "items" in the same schema
// is an array of schemas.
func ValidateAdditionalItems(arg types.PartSchema, instance any, state *types.ValidationState) error {
	a, ok := instance.([]any)
	if !ok {
		return nil
	}

	count, all, ok := state.Notes.Items()
	if !ok || all {
		return nil
	}

	var topErr error
	for i := count; i < len(a); i++ {
		if arg.S.IsFalse() {
			validerr.AddValidationError(&topErr, &validerr.ValidationError{
				InstancePath: state.InstancePath.Append(i),
				Message:      fmt.Sprintf("additional item %d is not allowed, at most %d items", i, count),
			})
			continue
		}
		validerr.AddError(&topErr, arg.S.ValidateElement(a[i], state, i))
	}
	return topErr
}
