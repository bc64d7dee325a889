// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"net/url"
	"strings"
)

// isURI reports whether s is an absolute RFC 3986 URI.
func isURI(s string) bool {
	u, ok := parseURI(s)
	return ok && u.IsAbs()
}

// isURIReference reports whether s is an RFC 3986 URI reference,
// which may be relative.
func isURIReference(s string) bool {
	_, ok := parseURI(s)
	return ok
}

// parseURI parses s, rejecting characters that RFC 3986 does not
// permit to appear unescaped. net/url is more lenient.
func parseURI(s string) (*url.URL, bool) {
	for i := range len(s) {
		c := s[i]
		if c <= ' ' || c >= 0x7f || strings.IndexByte(`"<>\^`+"`{|}", c) >= 0 {
			return nil, false
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	return u, true
}
