// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"regexp/syntax"
	"strings"

	"github.com/google/uuid"
)

// isRegex reports whether s is a regular expression.
// Only the RE2 syntax accepted by Go is supported.
func isRegex(s string) bool {
	_, err := syntax.Parse(s, syntax.Perl)
	return err == nil
}

// isUUID reports whether s is a UUID in the hyphenated form.
// uuid.Parse also accepts URN and braced forms, which are not UUID strings.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// isJSONPointer reports whether s is an RFC 6901 JSON pointer.
func isJSONPointer(s string) bool {
	if s == "" {
		return true
	}
	if s[0] != '/' {
		return false
	}
	for {
		_, after, found := strings.Cut(s, "~")
		if !found {
			return true
		}
		if after == "" || (after[0] != '0' && after[0] != '1') {
			return false
		}
		s = after
	}
}
