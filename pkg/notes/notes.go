// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package notes defines a type that holds information passed
// between keywords of a single schema during validation.
// This permits validation of one keyword to depend on information
// gathered while validating another keyword.
//
// For example, "additionalProperties" only applies to the members
// of an object that were not matched by "properties" or
// "patternProperties", and "additionalItems" only applies to the
// array elements not covered by an array-valued "items".
//
// People who are only interested in validating JSON values using
// standard JSON schemas do not need to use this package.
package notes

import (
	"fmt"
	"maps"
	"slices"
)

// Notes records which parts of an instance have been evaluated
// by the keywords of one schema.
//
// The zero value of Notes is directly usable.
// Notes may not be used concurrently by multiple goroutines.
type Notes struct {
	props    map[string]bool
	items    int  // number of leading array elements evaluated
	allItems bool // every array element was evaluated
	sawItems bool
}

// MarkProperty records that the object member name was evaluated.
func (n *Notes) MarkProperty(name string) {
	if n.props == nil {
		n.props = make(map[string]bool)
	}
	n.props[name] = true
}

// PropertyEvaluated reports whether the object member name was evaluated.
func (n *Notes) PropertyEvaluated(name string) bool {
	return n.props[name]
}

// MarkItems records that the first count array elements were evaluated.
func (n *Notes) MarkItems(count int) {
	n.sawItems = true
	n.items = max(n.items, count)
}

// MarkAllItems records that every array element was evaluated.
func (n *Notes) MarkAllItems() {
	n.sawItems = true
	n.allItems = true
}

// Items reports how many leading array elements were evaluated.
// all is true if every element was evaluated.
// ok is false if no keyword has evaluated array elements.
func (n *Notes) Items() (count int, all, ok bool) {
	return n.items, n.allItems, n.sawItems
}

// Clear clears all current notes.
func (n *Notes) Clear() {
	*n = Notes{}
}

// IsEmpty reports whether there are no notes.
func (n *Notes) IsEmpty() bool {
	return len(n.props) == 0 && !n.sawItems
}

// String returns a printable Notes.
func (n Notes) String() string {
	props := slices.Sorted(maps.Keys(n.props))
	switch {
	case !n.sawItems:
		return fmt.Sprintf("properties:%v", props)
	case n.allItems:
		return fmt.Sprintf("properties:%v items:all", props)
	default:
		return fmt.Sprintf("properties:%v items:%d", props, n.items)
	}
}
