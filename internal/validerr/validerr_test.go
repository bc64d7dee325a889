// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		p    Path
		want string
	}{
		{nil, "#"},
		{Path{}, "#"},
		{Path{"a"}, "#/a"},
		{Path{"a", 0, "b"}, "#/a/0/b"},
		{Path{"a/b", "c~d"}, "#/a~1b/c~0d"},
		{Path{""}, "#/"},
	}
	for _, test := range tests {
		if got := test.p.String(); got != test.want {
			t.Errorf("%#v.String() = %q, want %q", test.p, got, test.want)
		}
	}
}

func TestPathAppendDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = "a"
	p1 := base.Append("b")
	p2 := base.Append("c")
	assert.Equal(t, Path{"a", "b"}, p1)
	assert.Equal(t, Path{"a", "c"}, p2)
}

func TestPathCompare(t *testing.T) {
	assert.Equal(t, 0, Path{"a", 1}.Compare(Path{"a", 1}))
	assert.Equal(t, -1, Path{"a"}.Compare(Path{"a", 1}))
	assert.Equal(t, -1, Path{0}.Compare(Path{"a"}))
	assert.Equal(t, 1, Path{"b"}.Compare(Path{"a", "z"}))
	assert.Equal(t, -1, Path{2}.Compare(Path{10}))
}

func TestAddError(t *testing.T) {
	var err error
	AddError(&err, nil)
	assert.NoError(t, err)

	AddError(&err, &ValidationError{Message: "one"})
	AddError(&err, &ValidationErrors{Errs: []*ValidationError{{Message: "two"}, {Message: "three"}}})
	require.IsType(t, &ValidationErrors{}, err)
	assert.Len(t, Flatten(err), 3)

	broken := errors.New("broken schema")
	AddError(&err, broken)
	assert.Same(t, broken, err)
	assert.False(t, IsValidationError(err))

	// Once broken, later violations are dropped.
	AddError(&err, &ValidationError{Message: "four"})
	assert.Same(t, broken, err)

	other := errors.New("also broken")
	AddError(&err, other)
	assert.ErrorIs(t, err, broken)
	assert.ErrorIs(t, err, other)
}

func TestAddUnique(t *testing.T) {
	var err error
	AddUnique(&err, &ValidationError{InstancePath: Path{"a"}, Message: "missing"})
	AddUnique(&err, &ValidationError{InstancePath: Path{"a"}, Message: "missing again"})
	AddUnique(&err, &ValidationError{InstancePath: Path{"b"}, Message: "missing"})
	errs := Flatten(err)
	require.Len(t, errs, 2)
	assert.Equal(t, Path{"a"}, errs[0].InstancePath)
	assert.Equal(t, Path{"b"}, errs[1].InstancePath)
}

func TestLocate(t *testing.T) {
	inner := &ValidationError{
		InstancePath: Path{"x"},
		SchemaPath:   Path{"properties", "x", "type"},
		Keyword:      "type",
		Message:      "nested",
	}
	fresh := &ValidationError{Message: "fresh"}
	err := &ValidationErrors{Errs: []*ValidationError{inner, fresh}}

	Locate(err, "minProperties", Path{}, Path{"minProperties"})

	assert.Equal(t, "type", inner.Keyword)
	assert.Equal(t, Path{"properties", "x", "type"}, inner.SchemaPath)
	assert.Equal(t, "minProperties", fresh.Keyword)
	assert.Equal(t, Path{}, fresh.InstancePath)
	assert.Equal(t, "#/minProperties", fresh.KeywordLocation())
	assert.Equal(t, "#: fresh", fresh.Error())
}

func TestSort(t *testing.T) {
	errs := []*ValidationError{
		{InstancePath: Path{"b"}, SchemaPath: Path{"properties", "b", "type"}, Message: "1"},
		{InstancePath: Path{}, SchemaPath: Path{"required"}, Message: "2"},
		{InstancePath: Path{"a"}, SchemaPath: Path{"properties", "a", "type"}, Message: "3"},
		{InstancePath: Path{"a"}, SchemaPath: Path{"additionalProperties"}, Message: "4"},
	}
	Sort(errs)
	var got []string
	for _, ve := range errs {
		got = append(got, ve.Message)
	}
	assert.Equal(t, []string{"2", "4", "3", "1"}, got)
}
