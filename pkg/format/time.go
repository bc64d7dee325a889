// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"regexp"
	"strconv"
	"time"
)

var (
	dateRE = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	// timeRE matches an RFC 3339 partial-time with an optional offset.
	// Draft 3 times carry no offset.
	timeRE = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.\d+)?((?:[Zz]|([+-])(\d{2}):(\d{2}))?)$`)
)

// isDateTime reports whether s is an RFC 3339 date-time.
func isDateTime(s string) bool {
	if len(s) < 11 || (s[10] != 'T' && s[10] != 't') {
		return false
	}
	if !isDate(s[:10]) {
		return false
	}
	return checkTime(s[11:], true)
}

// isDate reports whether s is an RFC 3339 full-date.
func isDate(s string) bool {
	m := dateRE.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day
}

// isTime reports whether s is a time of day, with or without
// a time zone offset.
func isTime(s string) bool {
	return checkTime(s, false)
}

// checkTime reports whether s is a valid time. If needOffset is set
// the time must end with a time zone offset.
// A leap second is accepted only at 23:59:60 UTC.
func checkTime(s string, needOffset bool) bool {
	m := timeRE.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	if needOffset && m[4] == "" {
		return false
	}
	hour, minute, second := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if hour > 23 || minute > 59 || second > 60 {
		return false
	}

	offset := 0
	if m[5] != "" {
		oh, om := atoi(m[6]), atoi(m[7])
		if oh > 23 || om > 59 {
			return false
		}
		offset = oh*60 + om
		if m[5] == "-" {
			offset = -offset
		}
	}

	if second == 60 {
		utc := ((hour*60+minute-offset)%(24*60) + 24*60) % (24 * 60)
		if utc != 23*60+59 {
			return false
		}
	}
	return true
}

// atoi converts a string of digits matched by a regexp.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
