// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package draft4

import (
	"github.com/altshiftab/jsonvalidate/internal/validator"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

// keywords lists the draft 4 keywords in evaluation order.
// "additionalProperties" and "additionalItems" read the notes
// left by the keywords before them, so the order matters.
var keywords = []*types.Keyword{
	{Name: "id", ArgType: types.ArgTypeString, Validate: validator.ValidateTrue},
	{Name: "$ref", ArgType: types.ArgTypeString, Validate: validator.Typed(validator.ValidateRef), Exclusive: true},
	{Name: "title", ArgType: types.ArgTypeAny, Validate: validator.ValidateTrue},
	{Name: "description", ArgType: types.ArgTypeAny, Validate: validator.ValidateTrue},
	{Name: "default", ArgType: types.ArgTypeAny, Validate: validator.ValidateTrue},
	{Name: "definitions", ArgType: types.ArgTypeMapSchema, Validate: validator.ValidateTrue},

	{Name: "type", ArgType: types.ArgTypeStringOrStrings, Validate: validator.Typed(validator.ValidateType), Check: validator.CheckTypes},
	{Name: "enum", ArgType: types.ArgTypeAny, Validate: validator.Typed(validator.ValidateEnum)},
	{Name: "format", ArgType: types.ArgTypeString, Validate: validator.Typed(validator.ValidateFormat)},

	{Name: "multipleOf", ArgType: types.ArgTypeNumber, Validate: validator.Typed(validator.ValidateMultipleOf)},
	{Name: "maximum", ArgType: types.ArgTypeNumber, Validate: validator.Typed(validator.ValidateMaximum)},
	{Name: "exclusiveMaximum", ArgType: types.ArgTypeBool, Validate: validator.ValidateTrue},
	{Name: "minimum", ArgType: types.ArgTypeNumber, Validate: validator.Typed(validator.ValidateMinimum)},
	{Name: "exclusiveMinimum", ArgType: types.ArgTypeBool, Validate: validator.ValidateTrue},

	{Name: "maxLength", ArgType: types.ArgTypeInt, Validate: validator.Typed(validator.ValidateMaxLength)},
	{Name: "minLength", ArgType: types.ArgTypeInt, Validate: validator.Typed(validator.ValidateMinLength)},
	{Name: "pattern", ArgType: types.ArgTypeString, Validate: validator.Typed(validator.ValidatePattern), Check: validator.CheckRegexps},

	{Name: "items", ArgType: types.ArgTypeSchemaOrSchemas, Validate: validator.Typed(validator.ValidateItems)},
	{Name: "additionalItems", ArgType: types.ArgTypeSchema, Validate: validator.Typed(validator.ValidateAdditionalItems)},
	{Name: "maxItems", ArgType: types.ArgTypeInt, Validate: validator.Typed(validator.ValidateMaxItems)},
	{Name: "minItems", ArgType: types.ArgTypeInt, Validate: validator.Typed(validator.ValidateMinItems)},
	{Name: "uniqueItems", ArgType: types.ArgTypeBool, Validate: validator.Typed(validator.ValidateUniqueItems)},

	{Name: "maxProperties", ArgType: types.ArgTypeInt, Validate: validator.Typed(validator.ValidateMaxProperties)},
	{Name: "minProperties", ArgType: types.ArgTypeInt, Validate: validator.Typed(validator.ValidateMinProperties)},
	{Name: "required", ArgType: types.ArgTypeStrings, Validate: validator.Typed(validator.ValidateRequired)},
	{Name: "properties", ArgType: types.ArgTypeMapSchema, Validate: validator.Typed(validator.ValidateProperties)},
	{Name: "patternProperties", ArgType: types.ArgTypeMapSchema, Validate: validator.Typed(validator.ValidatePatternProperties), Check: validator.CheckRegexps},
	{Name: "additionalProperties", ArgType: types.ArgTypeSchema, Validate: validator.Typed(validator.ValidateAdditionalProperties)},
	{Name: "dependencies", ArgType: types.ArgTypeMapArrayOrSchema, Validate: validator.Typed(validator.ValidateDependencies)},

	{Name: "allOf", ArgType: types.ArgTypeSchemas, Validate: validator.Typed(validator.ValidateAllOf)},
	{Name: "anyOf", ArgType: types.ArgTypeSchemas, Validate: validator.Typed(validator.ValidateAnyOf)},
	{Name: "oneOf", ArgType: types.ArgTypeSchemas, Validate: validator.Typed(validator.ValidateOneOf)},
	{Name: "not", ArgType: types.ArgTypeSchema, Validate: validator.Typed(validator.ValidateNot)},
}

// keywordMap maps the draft 4 keywords to their definitions.
var keywordMap = func() map[string]*types.Keyword {
	m := make(map[string]*types.Keyword, len(keywords))
	for _, k := range keywords {
		m[k.Name] = k
	}
	return m
}()

// keywordCmp orders keywords by their position in keywords.
var keywordCmp = func() func(string, string) int {
	names := []string{types.SchemaKeyword.Name}
	for _, k := range keywords {
		names = append(names, k.Name)
	}
	return types.RankCmp(names...)
}()
