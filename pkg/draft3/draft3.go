// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package draft3 defines the keywords used by JSON schema draft 3.
// A schema uses draft 3 if its "$schema" keyword says so,
// or if draft 3 is requested as the default.
package draft3

import (
	"embed"
	"net/url"

	"github.com/altshiftab/jsonvalidate/internal/metaschema"
	"github.com/altshiftab/jsonvalidate/internal/validator"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

// SchemaID is the "$schema" value of draft 3, without the trailing '#'.
const SchemaID = "http://json-schema.org/draft-03/schema"

// Vocabulary is the draft 3 vocabulary.
var Vocabulary = &types.Vocabulary{
	Name:       "draft3",
	Schema:     SchemaID,
	Keywords:   keywordMap,
	Cmp:        keywordCmp,
	IDKeyword:  "id",
	MetaSchema: checkMetaSchema,
}

func init() {
	types.RegisterVocabulary(Vocabulary, false)
}

//go:embed metaschema/*.json
var metaFS embed.FS

// checkMetaSchema checks whether uri refers to the meta-schema,
// and returns the parsed document if it does.
func checkMetaSchema(uri *url.URL) (any, error) {
	return metaschema.Load(SchemaID, "/draft-03/", &metaFS, uri)
}

// keywords lists the draft 3 keywords in evaluation order.
var keywords = []*types.Keyword{
	{Name: "id", ArgType: types.ArgTypeString, Validate: validator.ValidateTrue},
	{Name: "$ref", ArgType: types.ArgTypeString, Validate: validator.Typed(validator.ValidateRef), Exclusive: true},
	{Name: "title", ArgType: types.ArgTypeAny, Validate: validator.ValidateTrue},
	{Name: "description", ArgType: types.ArgTypeAny, Validate: validator.ValidateTrue},
	{Name: "default", ArgType: types.ArgTypeAny, Validate: validator.ValidateTrue},
	// "required" is checked by the "properties" of the parent schema.
	{Name: "required", ArgType: types.ArgTypeBool, Validate: validator.ValidateTrue},

	{Name: "type", ArgType: types.ArgTypeTypeUnion, Validate: validator.Typed(validator.ValidateTypeUnion)},
	{Name: "disallow", ArgType: types.ArgTypeTypeUnion, Validate: validator.Typed(validator.ValidateDisallow)},
	{Name: "extends", ArgType: types.ArgTypeSchemaOrSchemas, Validate: validator.Typed(validator.ValidateExtends)},
	{Name: "enum", ArgType: types.ArgTypeAny, Validate: validator.Typed(validator.ValidateEnum)},
	{Name: "format", ArgType: types.ArgTypeString, Validate: validator.Typed(validator.ValidateFormat)},

	{Name: "divisibleBy", ArgType: types.ArgTypeNumber, Validate: validator.Typed(validator.ValidateDivisibleBy)},
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

	{Name: "properties", ArgType: types.ArgTypeMapSchema, Validate: validator.Typed(validator.ValidateDraft3Properties)},
	{Name: "patternProperties", ArgType: types.ArgTypeMapSchema, Validate: validator.Typed(validator.ValidatePatternProperties), Check: validator.CheckRegexps},
	{Name: "additionalProperties", ArgType: types.ArgTypeSchema, Validate: validator.Typed(validator.ValidateAdditionalProperties)},
	{Name: "dependencies", ArgType: types.ArgTypeMapArrayOrSchema, Validate: validator.Typed(validator.ValidateDependencies)},
}

// keywordMap maps the draft 3 keywords to their definitions.
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
