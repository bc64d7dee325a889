// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"

	"github.com/altshiftab/jsonvalidate/internal/argtype"
	"github.com/altshiftab/jsonvalidate/pkg/value"
)

// SchemaFromJSON builds a [Schema] from a JSON value that has
// already been parsed, as by [encoding/json.Unmarshal] into an
// empty interface value. Numbers may be float64 or [encoding/json.Number].
// The value v is not modified or retained, except that values
// of unrecognized keywords and of "enum" and "default" are shared.
//
// The optional schemaID argument is something like [draft4.SchemaID].
// It is used if the schema does not have a "$schema" keyword.
// If both are missing the default vocabulary is used.
// The result always has a "$schema" part recording the vocabulary.
func SchemaFromJSON(schemaID string, v any) (*Schema, error) {
	var s Schema
	if err := s.buildTopFromJSON(schemaID, v); err != nil {
		return nil, err
	}
	return &s, nil
}

// buildTopFromJSON builds a [Schema] from JSON parsed into the
// empty interface value v. This assumes that this is the root schema.
func (s *Schema) buildTopFromJSON(schemaID string, v any) error {
	var version string
	if m, ok := v.(map[string]any); ok {
		if schemaVal, ok := m[SchemaKeyword.Name]; ok {
			version, ok = schemaVal.(string)
			if !ok {
				return errors.New("jsonschema: $schema does not have a string value")
			}
		}
	}

	if version == "" {
		version = schemaID
	}

	var vocabulary *Vocabulary
	if version == "" {
		vocabulary = DefaultVocabulary()
		if vocabulary == nil {
			return errors.New("jsonschema: JSON schema version not specified and there is no default")
		}
	} else {
		vocabulary = LookupVocabulary(version)
		if vocabulary == nil {
			return fmt.Errorf("jsonschema: JSON schema version %q not recognized", version)
		}
	}

	if err := s.buildFromJSON(v, vocabulary); err != nil {
		return err
	}

	if _, ok := s.LookupKeyword(SchemaKeyword.Name); !ok {
		s.Parts = append([]Part{{&SchemaKeyword, PartString(vocabulary.Schema)}}, s.Parts...)
	}
	return nil
}

// BuildSubSchema builds a [Schema] that is part of a larger schema
// using the given vocabulary. This is used to turn the value of an
// unrecognized keyword into a schema when a JSON pointer refers to it.
func BuildSubSchema(v any, vocabulary *Vocabulary) (*Schema, error) {
	var s Schema
	if err := s.buildFromJSON(v, vocabulary); err != nil {
		return nil, err
	}
	return &s, nil
}

// buildFromJSON builds a [Schema] from JSON parsed into the
// empty interface value v.
func (s *Schema) buildFromJSON(v any, vocabulary *Vocabulary) error {
	switch v := v.(type) {
	case bool:
		s.Parts = append(s.Parts, Part{
			&BoolKeyword,
			PartBool(v),
		})

	case map[string]any:
		for keyword, val := range v {
			if err := s.addKeywordFromJSON(keyword, val, vocabulary); err != nil {
				return err
			}
		}
		s.Finalize(vocabulary)

	default:
		return fmt.Errorf("jsonschema: unexpected type %T while decoding schema", v)
	}
	return nil
}

// addKeywordFromJSON adds a [Schema] keyword and value parsed from JSON.
func (s *Schema) addKeywordFromJSON(keyword string, val any, vocabulary *Vocabulary) error {
	if len(keyword) == 0 {
		return errors.New("jsonschema: empty JSON keyword")
	}

	sk, ok := vocabulary.Keywords[keyword]
	if !ok {
		if keyword == SchemaKeyword.Name {
			sk = &SchemaKeyword
		} else {
			// Unrecognized keywords are ignored.
			// They do not affect the validation result.
			s.Parts = append(s.Parts, Part{
				Keyword: unknownKeyword(keyword),
				Value:   PartAny{val},
			})
			return nil
		}
	}

	spv, err := partFromJSON(sk, val, vocabulary)
	if err != nil {
		return err
	}
	if sk.Check != nil {
		if err := sk.Check(spv); err != nil {
			return err
		}
	}
	s.Parts = append(s.Parts, Part{
		Keyword: sk,
		Value:   spv,
	})
	return nil
}

// partFromJSON converts the JSON value of a keyword
// into the argument type the keyword expects.
func partFromJSON(sk *Keyword, val any, vocabulary *Vocabulary) (PartValue, error) {
	keyword := sk.Name
	wrongType := func() error {
		return fmt.Errorf("jsonschema: %q argument is type %T, want %s", keyword, val, argtype.Description(sk.ArgType))
	}

	subSchema := func(v any) (*Schema, error) {
		var s Schema
		if err := s.buildFromJSON(v, vocabulary); err != nil {
			return nil, fmt.Errorf("%q: %w", keyword, err)
		}
		return &s, nil
	}

	subSchemas := func(as []any) ([]*Schema, error) {
		schemas := make([]*Schema, 0, len(as))
		for _, a := range as {
			s, err := subSchema(a)
			if err != nil {
				return nil, err
			}
			schemas = append(schemas, s)
		}
		return schemas, nil
	}

	strings := func(vals []any) ([]string, error) {
		strs := make([]string, 0, len(vals))
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("jsonschema: %q argument item %d is %T, want string", keyword, i, v)
			}
			strs = append(strs, s)
		}
		return strs, nil
	}

	switch sk.ArgType {
	case ArgTypeBool:
		b, ok := val.(bool)
		if !ok {
			return nil, wrongType()
		}
		return PartBool(b), nil

	case ArgTypeString:
		s, ok := val.(string)
		if !ok {
			return nil, wrongType()
		}
		return PartString(s), nil

	case ArgTypeStrings:
		vals, ok := val.([]any)
		if !ok {
			return nil, wrongType()
		}
		strs, err := strings(vals)
		if err != nil {
			return nil, err
		}
		return PartStrings(strs), nil

	case ArgTypeStringOrStrings:
		if s, ok := val.(string); ok {
			return PartStringOrStrings{String: s}, nil
		}
		vals, ok := val.([]any)
		if !ok {
			return nil, wrongType()
		}
		strs, err := strings(vals)
		if err != nil {
			return nil, err
		}
		return PartStringOrStrings{Strings: strs}, nil

	case ArgTypeInt:
		r, ok := value.Rat(val)
		if !ok {
			return nil, wrongType()
		}
		if !r.IsInt() || !r.Num().IsInt64() {
			return nil, fmt.Errorf("jsonschema: %q argument %v is not an integer", keyword, val)
		}
		return PartInt(r.Num().Int64()), nil

	case ArgTypeNumber:
		r, ok := value.Rat(val)
		if !ok {
			return nil, wrongType()
		}
		return PartNumber{r}, nil

	case ArgTypeSchema:
		s, err := subSchema(val)
		if err != nil {
			return nil, err
		}
		return PartSchema{s}, nil

	case ArgTypeSchemas:
		as, ok := val.([]any)
		if !ok {
			return nil, wrongType()
		}
		schemas, err := subSchemas(as)
		if err != nil {
			return nil, err
		}
		return PartSchemas(schemas), nil

	case ArgTypeMapSchema:
		jm, ok := val.(map[string]any)
		if !ok {
			return nil, wrongType()
		}
		nm := make(map[string]*Schema, len(jm))
		for k, v := range jm {
			s, err := subSchema(v)
			if err != nil {
				return nil, err
			}
			nm[k] = s
		}
		return PartMapSchema(nm), nil

	case ArgTypeSchemaOrSchemas:
		if as, ok := val.([]any); ok {
			schemas, err := subSchemas(as)
			if err != nil {
				return nil, err
			}
			return PartSchemaOrSchemas{Schemas: schemas}, nil
		}
		s, err := subSchema(val)
		if err != nil {
			return nil, err
		}
		return PartSchemaOrSchemas{Schema: s}, nil

	case ArgTypeMapArrayOrSchema:
		jm, ok := val.(map[string]any)
		if !ok {
			return nil, wrongType()
		}
		nm := make(map[string]ArrayOrSchema, len(jm))
		for k, v := range jm {
			var as ArrayOrSchema
			switch v := v.(type) {
			case bool, map[string]any:
				s, err := subSchema(v)
				if err != nil {
					return nil, err
				}
				as.Schema = s
			case []any:
				strs, err := strings(v)
				if err != nil {
					return nil, err
				}
				as.Array = strs
			case string:
				// Draft 3 permits a single property name.
				as.Array = []string{v}
			default:
				return nil, fmt.Errorf("jsonschema: %q argument item %s is %T, want schema or array of strings", keyword, k, v)
			}
			nm[k] = as
		}
		return PartMapArrayOrSchema(nm), nil

	case ArgTypeTypeUnion:
		elems, ok := val.([]any)
		if !ok {
			elems = []any{val}
		}
		tu := make(PartTypeUnion, 0, len(elems))
		for i, e := range elems {
			switch e := e.(type) {
			case string:
				tu = append(tu, TypeOrSchema{Type: e})
			case map[string]any:
				s, err := subSchema(e)
				if err != nil {
					return nil, err
				}
				tu = append(tu, TypeOrSchema{Schema: s})
			default:
				return nil, fmt.Errorf("jsonschema: %q argument item %d is %T, want string or schema", keyword, i, e)
			}
		}
		return tu, nil

	case ArgTypeAny:
		return PartAny{val}, nil
	}
	panic("can't happen")
}
