// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Children returns an iterator over the immediate subschemas.
// The first iterator value is the location of the subschema
// relative to s, as an escaped JSON pointer without a leading slash,
// such as "properties/a~1b" or "items/0".
// The second is the schema itself.
// Subschemas inside unrecognized keywords are not visited.
func (s *Schema) Children() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		for _, part := range s.Parts {
			name := escapeToken(part.Keyword.Name)
			indexed := func(i int) string {
				return name + "/" + strconv.Itoa(i)
			}
			keyed := func(k string) string {
				return name + "/" + escapeToken(k)
			}

			switch pv := part.Value.(type) {
			case PartSchema:
				if !yield(name, pv.S) {
					return
				}

			case PartSchemas:
				for i, sub := range pv {
					if !yield(indexed(i), sub) {
						return
					}
				}

			case PartMapSchema:
				// Sort for determinism.
				for _, k := range slices.Sorted(maps.Keys(pv)) {
					if !yield(keyed(k), pv[k]) {
						return
					}
				}

			case PartSchemaOrSchemas:
				if pv.Schema != nil {
					if !yield(name, pv.Schema) {
						return
					}
				} else {
					for i, sub := range pv.Schemas {
						if !yield(indexed(i), sub) {
							return
						}
					}
				}

			case PartMapArrayOrSchema:
				for _, k := range slices.Sorted(maps.Keys(pv)) {
					if pv[k].Schema == nil {
						continue
					}
					if !yield(keyed(k), pv[k].Schema) {
						return
					}
				}

			case PartTypeUnion:
				for i, ts := range pv {
					if ts.Schema == nil {
						continue
					}
					if !yield(indexed(i), ts.Schema) {
						return
					}
				}
			}
		}
	}
}

// tokenEscaper escapes a JSON pointer token.
var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// escapeToken escapes a JSON pointer token.
func escapeToken(tok string) string {
	return tokenEscaper.Replace(tok)
}
