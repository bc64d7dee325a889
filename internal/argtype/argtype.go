// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argtype defines a few helpers for types.ArgType,
// used when reporting malformed schemas.
package argtype

import (
	"fmt"

	"github.com/altshiftab/jsonvalidate/pkg/types/arg_type"
)

// nameToString maps [types.ArgType] to a short name.
var nameToString = map[arg_type.ArgType]string{
	arg_type.ArgTypeBool:             "Bool",
	arg_type.ArgTypeString:           "String",
	arg_type.ArgTypeStrings:          "Strings",
	arg_type.ArgTypeStringOrStrings:  "StringOrStrings",
	arg_type.ArgTypeInt:              "Int",
	arg_type.ArgTypeNumber:           "Number",
	arg_type.ArgTypeSchema:           "Schema",
	arg_type.ArgTypeSchemas:          "Schemas",
	arg_type.ArgTypeMapSchema:        "MapSchema",
	arg_type.ArgTypeSchemaOrSchemas:  "SchemaOrSchemas",
	arg_type.ArgTypeMapArrayOrSchema: "MapArrayOrSchema",
	arg_type.ArgTypeTypeUnion:        "TypeUnion",
	arg_type.ArgTypeAny:              "Any",
}

// Name returns a short name for a [types.ArgType].
func Name(sat arg_type.ArgType) string {
	if n, ok := nameToString[sat]; ok {
		return n
	}
	panic(fmt.Sprintf("unexpected ArgType value %d", sat))
}

// descriptions maps [types.ArgType] to the JSON that a schema
// author must write.
var descriptions = map[arg_type.ArgType]string{
	arg_type.ArgTypeBool:             "boolean",
	arg_type.ArgTypeString:           "string",
	arg_type.ArgTypeStrings:          "array of strings",
	arg_type.ArgTypeStringOrStrings:  "string or array of strings",
	arg_type.ArgTypeInt:              "integer",
	arg_type.ArgTypeNumber:           "number",
	arg_type.ArgTypeSchema:           "schema",
	arg_type.ArgTypeSchemas:          "array of schemas",
	arg_type.ArgTypeMapSchema:        "object of schemas",
	arg_type.ArgTypeSchemaOrSchemas:  "schema or array of schemas",
	arg_type.ArgTypeMapArrayOrSchema: "object of schemas or arrays of strings",
	arg_type.ArgTypeTypeUnion:        "type name, schema, or array of those",
	arg_type.ArgTypeAny:              "any value",
}

// Description describes the JSON expected for a [types.ArgType].
func Description(sat arg_type.ArgType) string {
	if d, ok := descriptions[sat]; ok {
		return d
	}
	panic(fmt.Sprintf("unexpected Argtype %d", sat))
}
