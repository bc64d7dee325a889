// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"slices"
	"strings"
)

// Finalize sorts the schema keywords into the order required for validation.
// Normally there is no need to call this explicitly.
// It is called automatically by [SchemaFromJSON].
func (s *Schema) Finalize(v *Vocabulary) {
	slices.SortStableFunc(s.Parts, func(a, b Part) int {
		return v.Cmp(a.Keyword.Name, b.Keyword.Name)
	})
}

// RankCmp returns a keyword comparison function for a [Vocabulary].
// Keywords are ordered by their index in ranked. Keywords that are
// not listed sort after all listed ones, by name.
// Keywords that consult notes left by other keywords, such as
// "additionalProperties", must be ranked after those keywords.
func RankCmp(ranked ...string) func(string, string) int {
	rank := make(map[string]int, len(ranked))
	for i, name := range ranked {
		rank[name] = i
	}
	return func(a, b string) int {
		ra, aok := rank[a]
		rb, bok := rank[b]
		switch {
		case aok && bok:
			return ra - rb
		case aok:
			return -1
		case bok:
			return 1
		}
		return strings.Compare(a, b)
	}
}
