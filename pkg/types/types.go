// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types defines the JSON schema types.
// Most programs do not need to use this package.
//
// This package is used with a specific set of JSON schema drafts,
// that must be imported separately.
// For example, to use draft 4, a program should also
//
//	import _ "github.com/altshiftab/jsonvalidate/pkg/draft4"
package types

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/altshiftab/jsonvalidate/pkg/types/arg_type"
)

// Schema is a compiled JSON schema.
// A JSON schema determines whether an instance is valid or not.
// Do not create values of this type directly.
// Instead, use [SchemaFromJSON] on a parsed JSON document.
//
// A Schema is not modified after it has been built,
// and may be used concurrently by multiple goroutines.
type Schema struct {
	// The different elements of this Schema,
	// sorted by [Vocabulary.Cmp].
	Parts []Part
}

// Clone returns a copy of a Schema.
func (s *Schema) Clone() *Schema {
	return &Schema{Parts: slices.Clone(s.Parts)}
}

// String returns a somewhat readable representation of a Schema.
// The format differs from JSON output.
func (s *Schema) String() string {
	var sb strings.Builder
	sb.WriteString("Schema{")
	for i, part := range s.Parts {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "{%s %v}", part.Keyword.Name, part.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Part is one part of a JSON schema.
// This is a keyword, such as "id" or "properties",
// along with the value associated with that keyword in the schema.
type Part struct {
	Keyword *Keyword
	Value   PartValue
}

// Keyword is a schema keyword.
type Keyword struct {
	// Name is the keyword, such as allOf, anyOf, and so forth.
	Name string

	// ArgType is the type of argument expected.
	ArgType ArgType

	// Validate is a function that checks whether the schema matches
	// the keyword. arg is the value from the schema, which is [Part.Value].
	// instance is the object to validate.
	//
	// The function returns an error if any.
	// A failure to validate will be type [*ValidationError]
	// or type [*ValidationErrors].
	// Any other error type indicates a problem with the schema itself,
	// or a failure to resolve a reference, not the instance.
	Validate func(arg PartValue, instance any, state *ValidationState) error

	// Check, if not nil, reports whether arg is usable when the
	// schema is built, such as whether a regular expression compiles.
	Check func(arg PartValue) error

	// Exclusive is true if the other keywords of a schema
	// are ignored when this keyword is present.
	// This is the "$ref" keyword in draft 4 and earlier.
	Exclusive bool
}

// PartValue is the value of a JSON schema element.
// This is accessed via a type switch.
// The possible types are
//   - [PartBool]
//   - [PartString]
//   - [PartStrings]
//   - [PartStringOrStrings]
//   - [PartInt]
//   - [PartNumber]
//   - [PartSchema]
//   - [PartSchemas]
//   - [PartMapSchema]
//   - [PartSchemaOrSchemas]
//   - [PartMapArrayOrSchema]
//   - [PartTypeUnion]
//   - [PartAny]
type PartValue interface {
	partValue() // restrict to types defined in this package
}

// PartBool is a schema part value that is a bool.
// This is a compact representation of a JSON schema.
// A value of true is the schema that matches every value.
// A value of false is the schema that matches no values.
type PartBool bool

// PartString is a schema part value that is a string.
// For example, the schema keyword "pattern" has a string
// value that must be a regexp that must match the instance value.
type PartString string

// PartStrings is a schema part value that is a list of strings.
// For example, the schema keyword "required" takes a list of strings
// where each string is a property that the instance is required to have.
type PartStrings []string

// PartStringOrStrings is a schema part that is either a single string
// or a list of strings. This is basically just for the "type" keyword,
// which takes either a single type string or an array of type strings.
// If the Strings is not nil, the String field must be the empty string.
type PartStringOrStrings struct {
	String  string
	Strings []string
}

// PartInt is a schema part value that is an integer.
// For example, the schema keyword "minLength" specifies
// the minimum length of a string.
type PartInt int64

// PartNumber is a schema part value that is a number,
// held exactly. For example, the schema keyword "maximum"
// specifies the maximum value of a number.
type PartNumber struct {
	R *big.Rat
}

// String returns the number in decimal form when that is exact.
func (pn PartNumber) String() string {
	if pn.R == nil {
		return "<nil>"
	}
	if pn.R.IsInt() {
		return pn.R.Num().String()
	}
	if f, exact := pn.R.FloatPrec(); exact {
		return pn.R.FloatString(f)
	}
	return pn.R.RatString()
}

// PartSchema is a schema part value that is a reference to a schema.
// For example, the schema keyword "not" refers to a schema;
// the instance matches if it does not match that schema.
type PartSchema struct {
	S *Schema
}

// PartSchemas is a schema part value that is a list of schemas.
// For example, the schema keyword "allOf" matches an instance
// if the instance matches each schema in the list.
type PartSchemas []*Schema

// PartMapSchema is a schema part value that is a map from strings to schemas.
// For example, the schema keyword "properties" has a mapping
// from field names to schemas, and matches an instance if the
// corresponding instance fields match the schemas.
type PartMapSchema map[string]*Schema

// PartSchemaOrSchemas is either a single schema (like [PartSchema])
// or a list of schemas (like [PartSchemas]). For example,
// the keyword "items" takes either a single schema
// or a list of schemas. Exactly one of the fields will be nil.
type PartSchemaOrSchemas struct {
	Schema  *Schema
	Schemas []*Schema
}

// PartMapArrayOrSchema is a map from strings to elements,
// where each element is either an array of strings or a schema.
// This is used for the "dependencies" keyword.
type PartMapArrayOrSchema map[string]ArrayOrSchema

// ArrayOrSchema is the element type of the PartMapArrayOrSchema map.
// Exactly one of the fields will be nil.
type ArrayOrSchema struct {
	Array  []string // a zero-length slice is []string{}, not nil
	Schema *Schema
}

// PartTypeUnion is a list whose elements are either type names or
// schemas. This is used for the draft 3 "type" and "disallow" keywords.
type PartTypeUnion []TypeOrSchema

// String returns the union in a readable form, such as ["string" "null"].
func (tu PartTypeUnion) String() string {
	elems := make([]string, len(tu))
	for i, ts := range tu {
		if ts.Schema != nil {
			elems[i] = ts.Schema.String()
		} else {
			elems[i] = strconv.Quote(ts.Type)
		}
	}
	return "[" + strings.Join(elems, " ") + "]"
}

// TypeOrSchema is the element type of PartTypeUnion.
// If Schema is nil the element is the type name Type.
type TypeOrSchema struct {
	Type   string
	Schema *Schema
}

// PartAny is a schema part value that is an arbitrary type.
// For example, the schema keyword "enum" expects an array,
// and matches an instance if the instance is equal to one of the
// elements in the array.
type PartAny struct {
	V any
}

// Define a partValue method for each permitted Part type.
// This implements the [PartValue] interface.

func (PartBool) partValue()             {}
func (PartString) partValue()           {}
func (PartStrings) partValue()          {}
func (PartStringOrStrings) partValue()  {}
func (PartInt) partValue()              {}
func (PartNumber) partValue()           {}
func (PartSchema) partValue()           {}
func (PartSchemas) partValue()          {}
func (PartMapSchema) partValue()        {}
func (PartSchemaOrSchemas) partValue()  {}
func (PartMapArrayOrSchema) partValue() {}
func (PartTypeUnion) partValue()        {}
func (PartAny) partValue()              {}

// ArgType is an enumeration of the possible schema part types.
type ArgType = arg_type.ArgType

const (
	ArgTypeBool             = arg_type.ArgTypeBool
	ArgTypeString           = arg_type.ArgTypeString
	ArgTypeStrings          = arg_type.ArgTypeStrings
	ArgTypeStringOrStrings  = arg_type.ArgTypeStringOrStrings
	ArgTypeInt              = arg_type.ArgTypeInt
	ArgTypeNumber           = arg_type.ArgTypeNumber
	ArgTypeSchema           = arg_type.ArgTypeSchema
	ArgTypeSchemas          = arg_type.ArgTypeSchemas
	ArgTypeMapSchema        = arg_type.ArgTypeMapSchema
	ArgTypeSchemaOrSchemas  = arg_type.ArgTypeSchemaOrSchemas
	ArgTypeMapArrayOrSchema = arg_type.ArgTypeMapArrayOrSchema
	ArgTypeTypeUnion        = arg_type.ArgTypeTypeUnion
	ArgTypeAny              = arg_type.ArgTypeAny
)

// LookupKeyword returns the value associated with a keyword in the schema.
// The bool result reports whether the keyword is present at all.
func (s *Schema) LookupKeyword(keyword string) (PartValue, bool) {
	for _, part := range s.Parts {
		if part.Keyword.Name == keyword {
			return part.Value, true
		}
	}
	return nil, false
}

// Exclusive returns the part of s whose keyword overrides
// all other keywords, if there is one.
func (s *Schema) Exclusive() (Part, bool) {
	for _, part := range s.Parts {
		if part.Keyword.Exclusive {
			return part, true
		}
	}
	return Part{}, false
}

// IsFalse reports whether s is the schema that matches nothing.
func (s *Schema) IsFalse() bool {
	isBool, isTrue := s.isBoolSchema()
	return isBool && !isTrue
}

// isBoolSchema reports whether schema is a boolean schema,
// and reports whether it is the "true" schema.
func (s *Schema) isBoolSchema() (isBoolSchema, isTrueSchema bool) {
	for _, part := range s.Parts {
		if part.Keyword == &SchemaKeyword {
			continue
		}
		if part.Keyword != &BoolKeyword {
			return false, false
		}
		isBoolSchema = true
		isTrueSchema = bool(part.Value.(PartBool))
	}
	return isBoolSchema, isTrueSchema
}
