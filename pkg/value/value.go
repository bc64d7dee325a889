// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value describes the JSON values that may be validated:
// null, booleans, numbers, strings, arrays and objects,
// as produced by encoding/json or gopkg.in/yaml.v3.
//
// Numbers are compared exactly. A number may be any Go integer or
// floating-point type, a [json.Number], or a [*big.Rat].
package value

import (
	"encoding/json"
	"maps"
	"math"
	"math/big"
	"slices"
	"strconv"
	"unicode/utf8"
)

// Kind is the kind of a JSON value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Boolean
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Invalid: "invalid",
	Null:    "null",
	Boolean: "boolean",
	Number:  "number",
	String:  "string",
	Array:   "array",
	Object:  "object",
}

// String returns the JSON schema name of a kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// KindOf returns the kind of v.
// It returns Invalid for values that can't appear in a JSON document,
// including floating-point NaN and infinities.
func KindOf(v any) Kind {
	switch v := v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Invalid
		}
		return Number
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return Invalid
		}
		return Number
	case json.Number:
		if _, ok := new(big.Rat).SetString(string(v)); !ok {
			return Invalid
		}
		return Number
	case *big.Rat:
		if v == nil {
			return Invalid
		}
		return Number
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Number
	}
	return Invalid
}

// Rat returns v as an exact rational number,
// and reports whether v is a number.
// Floating-point values are converted through their shortest
// decimal representation, so that 0.1 is exactly 1/10.
// The result must not be modified.
func Rat(v any) (*big.Rat, bool) {
	switch v := v.(type) {
	case json.Number:
		return new(big.Rat).SetString(string(v))
	case float64:
		return floatRat(v, 64)
	case float32:
		return floatRat(float64(v), 32)
	case *big.Rat:
		return v, v != nil
	case int:
		return new(big.Rat).SetInt64(int64(v)), true
	case int8:
		return new(big.Rat).SetInt64(int64(v)), true
	case int16:
		return new(big.Rat).SetInt64(int64(v)), true
	case int32:
		return new(big.Rat).SetInt64(int64(v)), true
	case int64:
		return new(big.Rat).SetInt64(v), true
	case uint:
		return new(big.Rat).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Rat).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Rat).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Rat).SetUint64(v), true
	}
	return nil, false
}

// floatRat converts a float to a rational using its shortest
// decimal representation at the given bit size.
func floatRat(f float64, bitSize int) (*big.Rat, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, bitSize))
}

// IsInteger reports whether v is a number with no fractional part.
// 1.0 is an integer.
func IsInteger(v any) bool {
	r, ok := Rat(v)
	return ok && r.IsInt()
}

// TypeName returns the JSON schema type name of v, for messages.
// Integral numbers are reported as "integer".
func TypeName(v any) string {
	k := KindOf(v)
	if k == Number && IsInteger(v) {
		return "integer"
	}
	return k.String()
}

// Len returns the length of s in Unicode code points.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Keys returns the keys of an object in sorted order.
func Keys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// Equal reports whether a and b are the same JSON value.
// Numbers are equal if they are mathematically equal, so 1 and 1.0
// are equal. Booleans are never equal to numbers.
// Object key order is irrelevant.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case Null:
		return true
	case Boolean:
		return a.(bool) == b.(bool)
	case String:
		return a.(string) == b.(string)
	case Number:
		ra, _ := Rat(a)
		rb, _ := Rat(b)
		return ra.Cmp(rb) == 0
	case Array:
		aa, ab := a.([]any), b.([]any)
		if len(aa) != len(ab) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], ab[i]) {
				return false
			}
		}
		return true
	case Object:
		ma, mb := a.(map[string]any), b.(map[string]any)
		if len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	}
	return false
}
