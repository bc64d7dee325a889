// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validerr defines the errors return by a failure to validate.
package validerr

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Path is a location within a JSON document.
// Each element is either a string, naming an object member or
// a schema keyword, or an int, indexing an array.
type Path []any

// Append returns a new path with toks added.
// The receiver is not modified.
func (p Path) Append(toks ...any) Path {
	return append(slices.Clip(p), toks...)
}

// String returns the path as a JSON pointer starting with '#'.
func (p Path) String() string {
	if len(p) == 0 {
		return "#"
	}
	var sb strings.Builder
	sb.WriteByte('#')
	for _, tok := range p {
		sb.WriteByte('/')
		switch tok := tok.(type) {
		case int:
			sb.WriteString(strconv.Itoa(tok))
		case string:
			sb.WriteString(escaper.Replace(tok))
		default:
			fmt.Fprint(&sb, tok)
		}
	}
	return sb.String()
}

// escaper escapes a JSON pointer token.
var escaper = strings.NewReplacer("~", "~0", "/", "~1")

// Equal reports whether two paths are the same.
func (p Path) Equal(q Path) bool {
	return p.Compare(q) == 0
}

// Compare orders paths element by element.
// Array indexes sort before member names, and a path sorts
// before any longer path that it is a prefix of.
func (p Path) Compare(q Path) int {
	for i := range min(len(p), len(q)) {
		if c := compareToken(p[i], q[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(p), len(q))
}

// compareToken compares two path elements.
func compareToken(a, b any) int {
	ai, aIsInt := a.(int)
	bi, bIsInt := b.(int)
	switch {
	case aIsInt && bIsInt:
		return cmp.Compare(ai, bi)
	case aIsInt:
		return -1
	case bIsInt:
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// ValidationError is returned by a validation function
// when an instance fails validation.
type ValidationError struct {
	// InstancePath is the location in the instance that failed.
	InstancePath Path `json:"instancePath"`
	// SchemaPath is the location of the failing keyword in the schema,
	// following references.
	SchemaPath Path `json:"schemaPath"`
	// Keyword is the name of the keyword that failed.
	Keyword string `json:"keyword"`
	// Message describes the failure.
	Message string `json:"error"`
	// Causes holds the failures of the subschemas of an
	// "anyOf" or "oneOf" keyword that did not match.
	Causes []*ValidationError `json:"causes,omitempty"`
}

// InstanceLocation returns the instance path as a JSON pointer.
func (ve *ValidationError) InstanceLocation() string {
	return ve.InstancePath.String()
}

// KeywordLocation returns the schema path as a JSON pointer.
func (ve *ValidationError) KeywordLocation() string {
	return ve.SchemaPath.String()
}

// Error returns the error message that a user should see.
// This implements the error interface.
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.InstancePath, ve.Message)
}

// ValidationErrors is a collection of ValidationError values.
type ValidationErrors struct {
	Errs []*ValidationError
}

// Error returns the error message that a user should see.
// This implements the error interface.
func (ves *ValidationErrors) Error() string {
	if len(ves.Errs) == 1 {
		return ves.Errs[0].Error()
	}
	errs := make([]error, len(ves.Errs))
	for i, ve := range ves.Errs {
		errs[i] = ve
	}
	return errors.Join(errs...).Error()
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	switch err.(type) {
	case *ValidationError, *ValidationErrors:
		return true
	}
	return false
}

// Flatten returns the individual validation errors in err.
// It returns nil if err is not a validation error.
func Flatten(err error) []*ValidationError {
	switch e := err.(type) {
	case *ValidationError:
		return []*ValidationError{e}
	case *ValidationErrors:
		return e.Errs
	}
	return nil
}

// Locate fills in the location of the validation errors in err
// that don't have one yet. Errors reported by nested schemas are
// already located and are left alone.
func Locate(err error, keyword string, instancePath, schemaPath Path) {
	for _, ve := range Flatten(err) {
		if ve.Keyword != "" {
			continue
		}
		ve.Keyword = keyword
		if ve.InstancePath == nil {
			ve.InstancePath = instancePath
		}
		if ve.SchemaPath == nil {
			ve.SchemaPath = schemaPath
		}
	}
}

// AddError adds an error, which may be a validation error,
// to another error.
// A non-validation error replaces any validation errors,
// as validation results are meaningless if the schema is broken.
func AddError(perr *error, err error) {
	if err == nil {
		return
	}

	switch e := err.(type) {
	case *ValidationError:
		AddValidationError(perr, e)
		return
	case *ValidationErrors:
		for _, ve := range e.Errs {
			AddValidationError(perr, ve)
		}
		return
	}

	// The new error is not a validation error.

	if *perr == nil || IsValidationError(*perr) {
		*perr = err
	} else if unwrap, ok := (*perr).(interface{ Unwrap() []error }); ok && len(unwrap.Unwrap()) > 0 {
		*perr = errors.Join(append(unwrap.Unwrap(), err)...)
	} else {
		*perr = errors.Join(*perr, err)
	}
}

// AddValidationError adds a [ValidationError] to an existing error.
func AddValidationError(perr *error, ve *ValidationError) {
	if *perr == nil {
		*perr = ve
	} else if one, ok := (*perr).(*ValidationError); ok {
		*perr = &ValidationErrors{
			Errs: []*ValidationError{
				one,
				ve,
			},
		}
	} else if ves, ok := (*perr).(*ValidationErrors); ok {
		ves.Errs = append(ves.Errs, ve)
	} else {
		// Don't disturb an existing error that is not a validation error.
	}
}

// AddUnique is like [AddValidationError], but does nothing if *perr
// already holds an error for the same keyword at the same locations.
// A keyword implementation uses this so that it doesn't report
// the same failure twice.
func AddUnique(perr *error, ve *ValidationError) {
	for _, old := range Flatten(*perr) {
		if old.Keyword == ve.Keyword &&
			old.InstancePath.Equal(ve.InstancePath) &&
			old.SchemaPath.Equal(ve.SchemaPath) {

			return
		}
	}
	AddValidationError(perr, ve)
}

// Sort sorts errors by instance location and then by schema location.
// Validation normally reports errors in schema evaluation order;
// this is for callers that want output that is stable across schema
// rewrites. Errors at the same locations keep their relative order.
func Sort(errs []*ValidationError) {
	slices.SortStableFunc(errs, func(a, b *ValidationError) int {
		if c := a.InstancePath.Compare(b.InstancePath); c != 0 {
			return c
		}
		return a.SchemaPath.Compare(b.SchemaPath)
	})
}
