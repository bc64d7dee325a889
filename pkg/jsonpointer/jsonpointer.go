// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonpointer implements JSON pointers into compiled schemas.
// This is not a fully general package.
package jsonpointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/altshiftab/jsonvalidate/internal/argtype"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

// DerefSchema takes a JSON pointer and a root schema and returns
// the schema to which the pointer refers. The pointer has already
// been percent-decoded, as is the fragment of a [net/url.URL].
// The vocabulary is used to build schemas found inside keywords
// that it does not recognize.
//
// A pointer that does not lead to a schema is an error.
func DerefSchema(vocabulary *types.Vocabulary, root *types.Schema, pointer string) (*types.Schema, error) {
	if pointer == "" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("JSON pointer %q does not start with '/'", pointer)
	}
	toks := strings.Split(pointer[1:], "/")
	for i := range toks {
		toks[i] = decodeToken(toks[i])
	}

	s := root
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		part, ok := findPart(s, tok)
		if !ok {
			return nil, fmt.Errorf("when dereferencing pointer %q: no keyword %q", pointer, tok)
		}

		// next returns the token following the keyword.
		next := func(what string) (string, error) {
			i++
			if i >= len(toks) {
				return "", fmt.Errorf("when dereferencing pointer %q expected %s after %q", pointer, what, tok)
			}
			return toks[i], nil
		}
		index := func(n int) (int, error) {
			t, err := next("array index")
			if err != nil {
				return 0, err
			}
			idx, err := strconv.Atoi(t)
			if err != nil {
				return 0, fmt.Errorf("when dereferencing pointer %q got token %q, expected array index", pointer, t)
			}
			if idx < 0 || idx >= n {
				return 0, fmt.Errorf("when dereferencing pointer %q array index %d out of range (length %d)", pointer, idx, n)
			}
			return idx, nil
		}

		switch pv := part.Value.(type) {
		case types.PartSchema:
			s = pv.S

		case types.PartSchemas:
			idx, err := index(len(pv))
			if err != nil {
				return nil, err
			}
			s = pv[idx]

		case types.PartMapSchema:
			key, err := next("map key")
			if err != nil {
				return nil, err
			}
			ms, ok := pv[key]
			if !ok {
				return nil, fmt.Errorf("when dereferencing pointer %q map key %q not present", pointer, key)
			}
			s = ms

		case types.PartSchemaOrSchemas:
			if pv.Schema != nil {
				s = pv.Schema
				break
			}
			idx, err := index(len(pv.Schemas))
			if err != nil {
				return nil, err
			}
			s = pv.Schemas[idx]

		case types.PartMapArrayOrSchema:
			key, err := next("map key")
			if err != nil {
				return nil, err
			}
			mv, ok := pv[key]
			if !ok {
				return nil, fmt.Errorf("when dereferencing pointer %q map key %q not present", pointer, key)
			}
			if mv.Schema == nil {
				return nil, fmt.Errorf("when dereferencing pointer %q map key %q is not a schema", pointer, key)
			}
			s = mv.Schema

		case types.PartTypeUnion:
			idx, err := index(len(pv))
			if err != nil {
				return nil, err
			}
			if pv[idx].Schema == nil {
				return nil, fmt.Errorf("when dereferencing pointer %q element %d of %q is not a schema", pointer, idx, tok)
			}
			s = pv[idx].Schema

		case types.PartAny:
			// The rest of the pointer walks the raw JSON value.
			v, err := walk(pointer, pv.V, toks[i+1:])
			if err != nil {
				return nil, err
			}
			sub, err := types.BuildSubSchema(v, vocabulary)
			if err != nil {
				return nil, fmt.Errorf("when dereferencing pointer %q failed to build schema: %w", pointer, err)
			}
			return sub, nil

		default:
			return nil, fmt.Errorf("when dereferencing pointer %q unexpected part type %s", pointer, argtype.Name(part.Keyword.ArgType))
		}
	}

	return s, nil
}

// findPart returns the part of s with keyword name.
func findPart(s *types.Schema, name string) (types.Part, bool) {
	for _, part := range s.Parts {
		if part.Keyword == &types.BoolKeyword {
			continue
		}
		if part.Keyword.Name == name {
			return part, true
		}
	}
	return types.Part{}, false
}

// walk follows toks through a JSON value.
func walk(pointer string, v any, toks []string) (any, error) {
	for _, tok := range toks {
		switch jv := v.(type) {
		case map[string]any:
			e, ok := jv[tok]
			if !ok {
				return nil, fmt.Errorf("when dereferencing pointer %q key %q not present", pointer, tok)
			}
			v = e
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("when dereferencing pointer %q for token %q, expected array index", pointer, tok)
			}
			if idx < 0 || idx >= len(jv) {
				return nil, fmt.Errorf("when dereferencing pointer %q array index %d out of range (length %d)", pointer, idx, len(jv))
			}
			v = jv[idx]
		default:
			return nil, fmt.Errorf("when dereferencing pointer %q unexpected type %T at %q", pointer, v, tok)
		}
	}
	return v, nil
}

// decodeToken unmangles a token in a JSON pointer.
func decodeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}
