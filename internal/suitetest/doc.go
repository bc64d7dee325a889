// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package suitetest runs the JSON-Schema-Test-Suite against the
// validator. The suite is not checked in; "go generate" fetches it
// into the tests and remotes directories, and the tests are skipped
// when it is missing.
package suitetest

//go:generate go run ../cmd/testgen -drafts draft3,draft4
