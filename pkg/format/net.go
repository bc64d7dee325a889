// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"net/mail"
	"net/netip"
	"strings"
	"sync"

	"golang.org/x/net/idna"
)

// hostnameProfile checks hostnames against the registration rules,
// which limit labels to letters, digits and hyphens.
var hostnameProfile = sync.OnceValue(func() *idna.Profile {
	return idna.New(
		idna.ValidateForRegistration(),
		idna.VerifyDNSLength(true),
	)
})

// isHostname reports whether s is an RFC 1123 hostname.
func isHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	for i := range len(s) {
		if s[i] >= 0x80 || s[i] == '_' {
			return false
		}
	}
	for label := range strings.SplitSeq(s, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
	}
	_, err := hostnameProfile().ToASCII(s)
	return err == nil
}

func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

func isIPv6(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6() && addr.Zone() == ""
}

// isEmail reports whether s is a bare RFC 5322 address
// with an ASCII domain.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || strings.ContainsAny(s, "<>") {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	if strings.HasPrefix(domain, "[") {
		return true
	}
	for i := range len(domain) {
		c := domain[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '.') {
			return false
		}
	}
	return true
}

// fmtInvalid returns the message for a string that does not
// have the format described by what.
func fmtInvalid(s, what string) string {
	return fmt.Sprintf("%q is not a valid %s", s, what)
}
