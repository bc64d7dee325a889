// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notes

import (
	"testing"
)

func checkItems(t *testing.T, n *Notes, wantCount int, wantAll, wantOK bool) {
	t.Helper()
	count, all, ok := n.Items()
	if count != wantCount || all != wantAll || ok != wantOK {
		t.Errorf("n.Items() = %d, %t, %t, want %d, %t, %t", count, all, ok, wantCount, wantAll, wantOK)
	}
}

func TestNotes(t *testing.T) {
	var n Notes
	if !n.IsEmpty() {
		t.Error("n.IsEmpty() == false, want true")
	}
	if n.PropertyEvaluated("a") {
		t.Error(`n.PropertyEvaluated("a") == true, want false`)
	}
	checkItems(t, &n, 0, false, false)

	n.MarkProperty("b")
	n.MarkProperty("a")
	if !n.PropertyEvaluated("a") {
		t.Error(`n.PropertyEvaluated("a") == false, want true`)
	}
	if n.IsEmpty() {
		t.Error("n.IsEmpty() == true, want false")
	}

	n.MarkItems(3)
	n.MarkItems(2)
	checkItems(t, &n, 3, false, true)

	want := "properties:[a b] items:3"
	if got := n.String(); got != want {
		t.Errorf("n.String() == %q, want %q", got, want)
	}

	n.MarkAllItems()
	checkItems(t, &n, 3, true, true)
}

func TestClear(t *testing.T) {
	var n Notes
	n.MarkProperty("key1")
	n.MarkAllItems()
	n.Clear()
	if n.PropertyEvaluated("key1") {
		t.Error(`n.PropertyEvaluated("key1") == true, want false`)
	}
	checkItems(t, &n, 0, false, false)
	if !n.IsEmpty() {
		t.Error("n.IsEmpty() == false, want true")
	}
}
