// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		v    any
		want Kind
	}{
		{nil, Null},
		{true, Boolean},
		{"x", String},
		{[]any{}, Array},
		{map[string]any{}, Object},
		{1.5, Number},
		{float32(2), Number},
		{7, Number},
		{uint64(7), Number},
		{json.Number("1e400"), Number},
		{big.NewRat(1, 3), Number},
		{math.NaN(), Invalid},
		{math.Inf(1), Invalid},
		{json.Number("bogus"), Invalid},
		{struct{}{}, Invalid},
	}
	for _, test := range tests {
		if got := KindOf(test.v); got != test.want {
			t.Errorf("KindOf(%#v) = %v, want %v", test.v, got, test.want)
		}
	}
}

func TestIsInteger(t *testing.T) {
	assert.True(t, IsInteger(1.0))
	assert.True(t, IsInteger(json.Number("1.0")))
	assert.True(t, IsInteger(json.Number("12345678901234567890123")))
	assert.True(t, IsInteger(-3))
	assert.False(t, IsInteger(1.5))
	assert.False(t, IsInteger("1"))
	assert.False(t, IsInteger(true))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "integer", TypeName(4.0))
	assert.Equal(t, "number", TypeName(4.5))
	assert.Equal(t, "string", TypeName("4"))
	assert.Equal(t, "null", TypeName(nil))
	assert.Equal(t, "object", TypeName(map[string]any{}))
}

func TestRatDecimal(t *testing.T) {
	r, ok := Rat(0.1)
	assert.True(t, ok)
	assert.Equal(t, "1/10", r.RatString())

	r, ok = Rat(json.Number("0.30"))
	assert.True(t, ok)
	assert.Equal(t, "3/10", r.RatString())

	_, ok = Rat("0.1")
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{1, 1.0, true},
		{json.Number("1.0"), 1, true},
		{0.1, json.Number("0.1"), true},
		{true, 1, false},
		{false, 0, false},
		{nil, nil, true},
		{nil, false, false},
		{"a", "a", true},
		{[]any{1, "a"}, []any{1.0, "a"}, true},
		{[]any{1, 2}, []any{2, 1}, false},
		{[]any{1}, []any{1, 1}, false},
		{
			map[string]any{"a": 1, "b": []any{true}},
			map[string]any{"b": []any{true}, "a": 1.0},
			true,
		},
		{map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{map[string]any{"a": nil}, map[string]any{}, false},
		{[]any{}, map[string]any{}, false},
	}
	for _, test := range tests {
		if got := Equal(test.a, test.b); got != test.want {
			t.Errorf("Equal(%v, %v) = %t, want %t", test.a, test.b, got, test.want)
		}
		if got := Equal(test.b, test.a); got != test.want {
			t.Errorf("Equal(%v, %v) = %t, want %t", test.b, test.a, got, test.want)
		}
	}
}

func TestLen(t *testing.T) {
	assert.Equal(t, 2, Len("\U0001f4a9\U0001f4a9"))
	assert.Equal(t, 3, Len("abc"))
}
