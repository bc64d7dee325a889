// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types_test

import (
	"context"
	"errors"
	"testing"

	"github.com/altshiftab/jsonvalidate/pkg/draft4"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

// single returns the only validation error in err.
func single(t *testing.T, err error) *types.ValidationError {
	t.Helper()
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var ves *types.ValidationErrors
	if !errors.As(err, &ves) || len(ves.Errs) != 1 {
		t.Fatalf("expected single ValidationError, got %T: %v", err, err)
	}
	return ves.Errs[0]
}

func TestTypeUnderProperties(t *testing.T) {
	schemaJSON := map[string]any{
		"$schema": draft4.SchemaID + "#",
		"properties": map[string]any{
			"name": map[string]any{
				"type": "string",
			},
		},
	}

	s, err := types.SchemaFromJSON("", schemaJSON)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}

	err = s.Validate(context.Background(), map[string]any{"name": 123})
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}

	ve := single(t, err)
	if got := ve.KeywordLocation(); got != "#/properties/name/type" {
		t.Errorf("keyword location: got %q, want %q", got, "#/properties/name/type")
	}
	if got := ve.InstanceLocation(); got != "#/name" {
		t.Errorf("instance location: got %q, want %q", got, "#/name")
	}
	if ve.Keyword != "type" {
		t.Errorf("keyword: got %q, want %q", ve.Keyword, "type")
	}
	if ve.Message == "" {
		t.Errorf("error message should not be empty")
	}
}

func TestRequiredMissing(t *testing.T) {
	s, err := types.SchemaFromJSON(draft4.SchemaID, map[string]any{
		"required": []any{"a", "b"},
	})
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}

	err = s.Validate(context.Background(), map[string]any{"b": 1})
	ve := single(t, err)
	if got := ve.InstanceLocation(); got != "#/a" {
		t.Errorf("instance location: got %q, want %q", got, "#/a")
	}
	if got := ve.KeywordLocation(); got != "#/required" {
		t.Errorf("keyword location: got %q, want %q", got, "#/required")
	}
}

func TestBooleanSchema(t *testing.T) {
	s, err := types.SchemaFromJSON("", false)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	ve := single(t, s.Validate(context.Background(), 1))
	if ve.Keyword != "false" {
		t.Errorf("keyword: got %q, want %q", ve.Keyword, "false")
	}

	s, err = types.SchemaFromJSON("", true)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	if err := s.Validate(context.Background(), 1); err != nil {
		t.Errorf("true schema: %v", err)
	}
}

func TestRefWithoutResolver(t *testing.T) {
	s, err := types.SchemaFromJSON("", map[string]any{"$ref": "#"})
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	err = s.Validate(context.Background(), 1)
	if err == nil || types.IsValidationError(err) {
		t.Fatalf("got %v, want a non-validation error", err)
	}
}

// refResolver resolves every reference to the root schema.
type refResolver struct{}

func (refResolver) Enter(ctx context.Context, from *types.Schema, ref string, instancePath types.Path) (*types.Schema, func(), error) {
	return from, func() {}, nil
}

func TestTooDeep(t *testing.T) {
	// Each reference leads back to a schema that makes another
	// reference, without ever being recognized as in progress.
	s, err := types.SchemaFromJSON("", map[string]any{"$ref": "#"})
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	err = s.ValidateWithOpts(context.Background(), 1, &types.ValidateOpts{Resolver: refResolver{}})
	if !errors.Is(err, types.ErrTooDeep) {
		t.Fatalf("got %v, want %v", err, types.ErrTooDeep)
	}
}

func TestMaxDepthOption(t *testing.T) {
	// A schema of nested "items", 40 deep, matched by an
	// instance of nested arrays.
	raw := map[string]any{"type": "array"}
	instance := any([]any{})
	for range 40 {
		raw = map[string]any{"items": raw}
		instance = []any{instance}
	}
	s, err := types.SchemaFromJSON("", raw)
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}

	for _, test := range []struct {
		maxDepth int
		wantErr  bool
	}{
		{0, false},
		{-1, false},
		{100, false},
		{10, true},
	} {
		err := s.ValidateWithOpts(context.Background(), instance, &types.ValidateOpts{MaxDepth: test.maxDepth})
		if test.wantErr {
			if !errors.Is(err, types.ErrTooDeep) {
				t.Errorf("MaxDepth %d: got %v, want %v", test.maxDepth, err, types.ErrTooDeep)
			}
		} else if err != nil {
			t.Errorf("MaxDepth %d: unexpected error %v", test.maxDepth, err)
		}
	}
}

func TestNonValidationErrorWins(t *testing.T) {
	s, err := types.SchemaFromJSON("", map[string]any{
		"type":  "string",
		"allOf": []any{map[string]any{"$ref": "#"}},
	})
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	// With no resolver the reference fails, and the type
	// violation is discarded.
	err = s.Validate(context.Background(), 1)
	if err == nil || types.IsValidationError(err) {
		t.Fatalf("got %v, want a non-validation error", err)
	}
}

func TestSchemaFromJSONErrors(t *testing.T) {
	tests := []any{
		map[string]any{"$schema": "http://example.com/unknown"},
		map[string]any{"$schema": 4},
		map[string]any{"minLength": "x"},
		map[string]any{"required": true},
		map[string]any{"properties": []any{}},
		map[string]any{"pattern": "(["},
		map[string]any{"patternProperties": map[string]any{"[": map[string]any{}}},
		"schema",
	}
	for _, test := range tests {
		if _, err := types.SchemaFromJSON("", test); err == nil {
			t.Errorf("SchemaFromJSON(%v) succeeded unexpectedly", test)
		}
	}
}

func TestKeywordOrder(t *testing.T) {
	s, err := types.SchemaFromJSON("", map[string]any{
		"additionalProperties": false,
		"properties":           map[string]any{"a": map[string]any{}},
		"title":                "t",
	})
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	var names []string
	for _, p := range s.Parts {
		names = append(names, p.Keyword.Name)
	}
	want := []string{"$schema", "title", "properties", "additionalProperties"}
	if len(names) != len(want) {
		t.Fatalf("got keywords %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got keywords %v, want %v", names, want)
		}
	}
}

func TestVocabularyOf(t *testing.T) {
	s, err := types.SchemaFromJSON("", map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if v := types.VocabularyOf(s); v != draft4.Vocabulary {
		t.Errorf("VocabularyOf = %v, want draft4", v)
	}
	if v := types.DefaultVocabulary(); v != draft4.Vocabulary {
		t.Errorf("DefaultVocabulary = %v, want draft4", v)
	}
}
