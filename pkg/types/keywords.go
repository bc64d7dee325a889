// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "sync"

// SchemaKeyword is a keyword to hold the schema version.
// Every root schema built by [SchemaFromJSON] has one.
var SchemaKeyword = Keyword{
	Name:     "$schema",
	ArgType:  ArgTypeString,
	Validate: validateTrue,
}

// BoolKeyword is not a real keyword, but is used to represent the
// special schema values "true" and "false".
var BoolKeyword = Keyword{
	Name:     "$bool",
	ArgType:  ArgTypeBool,
	Validate: validateBool,
}

// unknownKeywords holds the keywords made up for names that
// the vocabulary does not know, so that each name is only
// allocated once.
var unknownKeywords sync.Map // map[string]*Keyword

// unknownKeyword returns the Keyword to use for an unrecognized name.
// Unrecognized keywords are kept so that JSON pointers can refer
// to schemas inside them, but they always validate.
func unknownKeyword(name string) *Keyword {
	if k, ok := unknownKeywords.Load(name); ok {
		return k.(*Keyword)
	}
	k, _ := unknownKeywords.LoadOrStore(name, &Keyword{
		Name:     name,
		ArgType:  ArgTypeAny,
		Validate: validateTrue,
	})
	return k.(*Keyword)
}

// validateTrue is a validator function that always succeeds.
func validateTrue(PartValue, any, *ValidationState) error {
	return nil
}

// validateBool handles the special $bool keyword,
// which does not actually appear in schema definitions.
func validateBool(arg PartValue, instance any, state *ValidationState) error {
	if !arg.(PartBool) {
		return &ValidationError{
			Message: "false schema never matches",
		}
	}
	return nil
}
