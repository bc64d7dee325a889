// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format defines checkers for the format keyword.
// By default the format keyword always matches.
// If this package is imported, and format checking is requested,
// the formats of draft 4 and draft 3 are verified.
// Unknown formats still match.
package format

import (
	"github.com/altshiftab/jsonvalidate/internal/validator"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

func init() {
	for name, fv := range checkers {
		validator.RegisterFormatValidator(name, fv)
	}
}

// checkers maps format names to the functions that check them.
// Several names are the draft 3 spelling of a draft 4 format.
var checkers = map[string]func(any, *types.ValidationState) error{
	"date-time":     stringChecker("date-time", isDateTime),
	"date":          stringChecker("date", isDate),
	"time":          stringChecker("time", isTime),
	"email":         stringChecker("email address", isEmail),
	"hostname":      stringChecker("hostname", isHostname),
	"host-name":     stringChecker("hostname", isHostname),
	"ipv4":          stringChecker("IPv4 address", isIPv4),
	"ip-address":    stringChecker("IPv4 address", isIPv4),
	"ipv6":          stringChecker("IPv6 address", isIPv6),
	"uri":           stringChecker("URI", isURI),
	"uri-reference": stringChecker("URI reference", isURIReference),
	"regex":         stringChecker("regular expression", isRegex),
	"uuid":          stringChecker("UUID", isUUID),
	"json-pointer":  stringChecker("JSON pointer", isJSONPointer),
}

// RegisterFormatValidator registers a custom format checker.
// If a schema uses format with the given name, fv is called
// with the instance value; it returns an error if the instance
// does not match. A checker registered for a name used by this
// package replaces it.
func RegisterFormatValidator(format string, fv func(any, *types.ValidationState) error) {
	validator.RegisterFormatValidator(format, fv)
}

// stringChecker returns a checker that applies ok to string
// instances. Other instances always match.
func stringChecker(what string, ok func(string) bool) func(any, *types.ValidationState) error {
	return func(instance any, state *types.ValidationState) error {
		s, isString := instance.(string)
		if !isString || ok(s) {
			return nil
		}
		return &types.ValidationError{
			Message: fmtInvalid(s, what),
		}
	}
}
