// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonpointer_test

import (
	"context"
	"testing"

	"github.com/altshiftab/jsonvalidate/pkg/draft4"
	"github.com/altshiftab/jsonvalidate/pkg/jsonpointer"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

var testSchema = map[string]any{
	"definitions": map[string]any{
		"a/b": map[string]any{"type": "string"},
		"m~n": map[string]any{"type": "null"},
	},
	"items": []any{
		map[string]any{"type": "integer"},
		map[string]any{"type": "boolean"},
	},
	"not": map[string]any{"type": "array"},
	"dependencies": map[string]any{
		"x": map[string]any{"type": "object"},
		"y": []any{"x"},
	},
	"extra": map[string]any{
		"nested": map[string]any{"type": "number"},
	},
}

func TestDerefSchema(t *testing.T) {
	root, err := types.SchemaFromJSON(draft4.SchemaID, testSchema)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		pointer string
		// instance must be accepted by the target,
		// and bad must be rejected.
		instance, bad any
	}{
		{"/definitions/a~1b", "s", 1},
		{"/definitions/m~0n", nil, 1},
		{"/items/0", 1, "s"},
		{"/items/1", true, 1},
		{"/not", []any{}, 1},
		{"/dependencies/x", map[string]any{}, 1},
		{"/extra/nested", 1.5, "s"},
	}
	for _, test := range tests {
		s, err := jsonpointer.DerefSchema(draft4.Vocabulary, root, test.pointer)
		if err != nil {
			t.Errorf("%s: %v", test.pointer, err)
			continue
		}
		if err := s.Validate(context.Background(), test.instance); err != nil {
			t.Errorf("%s: validating %v: %v", test.pointer, test.instance, err)
		}
		if err := s.Validate(context.Background(), test.bad); err == nil {
			t.Errorf("%s: validating %v succeeded unexpectedly", test.pointer, test.bad)
		}
	}

	s, err := jsonpointer.DerefSchema(draft4.Vocabulary, root, "")
	if err != nil || s != root {
		t.Errorf(`DerefSchema("") = %v, %v, want root`, s, err)
	}
}

func TestDerefSchemaErrors(t *testing.T) {
	root, err := types.SchemaFromJSON(draft4.SchemaID, testSchema)
	if err != nil {
		t.Fatal(err)
	}

	for _, pointer := range []string{
		"definitions",
		"/nosuch",
		"/definitions",
		"/definitions/missing",
		"/items/2",
		"/items/x",
		"/dependencies/y",
		"/extra/missing",
		"/not/type",
	} {
		if s, err := jsonpointer.DerefSchema(draft4.Vocabulary, root, pointer); err == nil {
			t.Errorf("DerefSchema(%q) = %v, want error", pointer, s)
		}
	}
}
