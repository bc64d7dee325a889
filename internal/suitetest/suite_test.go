// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package suitetest

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/altshiftab/jsonvalidate/pkg/jsonschema"
	"github.com/altshiftab/jsonvalidate/pkg/loader"
)

// group is a JSON file in the test suite.
type group struct {
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Tests       []struct {
		Description string          `json:"description"`
		Data        json.RawMessage `json:"data"`
		Valid       bool            `json:"valid"`
	} `json:"tests"`
}

// remoteLoader serves the suite's remote documents the way the
// suite expects them to be found.
var remoteLoader = loader.FS{
	FS:     os.DirFS("remotes"),
	Prefix: "http://localhost:1234/",
}

// skip lists the test groups and tests that are known not to pass,
// keyed by file name relative to the draft directory, and then by
// group description, and then optionally by test description.
var skip = map[string]map[string][]string{
	// Go regular expressions are RE2, not ECMA 262.
	"optional/ecmascript-regex.json": nil,
	"optional/non-bmp-regex.json":    nil,
	// Numbers are compared by value, so 1.0 is an integer.
	"optional/zeroTerminatedFloats.json": nil,
	// Format checkers for these formats are not provided.
	"optional/format/color.json":         nil,
	"optional/format/utc-millisec.json":  nil,
	"optional/format/style.json":         nil,
	"optional/format/phone.json":         nil,
	"optional/format/uri-template.json":  nil,
	"optional/format/idn-hostname.json":  nil,
	"optional/format/idn-email.json":     nil,
	"optional/format/iri.json":           nil,
	"optional/format/iri-reference.json": nil,
}

func TestDraft4(t *testing.T) {
	runSuite(t, "draft4", nil)
}

func TestDraft3(t *testing.T) {
	runSuite(t, "draft3", &jsonschema.Options{DefaultDraft: "draft3"})
}

// runSuite runs every test file for draft.
func runSuite(t *testing.T, draft string, opts *jsonschema.Options) {
	dir := filepath.Join("tests", draft)
	if _, err := os.Stat(dir); err != nil {
		t.Skipf("test suite not present in %s; run go generate", dir)
	}

	var files []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".json") {
			files = append(files, p)
		}
		return nil
	})
	require.NoError(t, err)

	for _, file := range files {
		rel := filepath.ToSlash(strings.TrimPrefix(file, dir+string(filepath.Separator)))
		t.Run(rel, func(t *testing.T) {
			skipGroups, skipped := skip[rel]
			if skipped && skipGroups == nil {
				t.Skip("known failure")
			}

			var o jsonschema.Options
			if opts != nil {
				o = *opts
			}
			o.Loader = remoteLoader
			o.ValidateFormat = path.Dir(rel) == "optional/format"

			runFile(t, file, &o, skipGroups)
		})
	}
}

// runFile runs the tests in one suite file.
func runFile(t *testing.T, file string, opts *jsonschema.Options, skipGroups map[string][]string) {
	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var groups []group
	require.NoError(t, json.Unmarshal(data, &groups))

	for _, g := range groups {
		t.Run(g.Description, func(t *testing.T) {
			skipTests, skipped := skipGroups[g.Description]
			if skipped && skipTests == nil {
				t.Skip("known failure")
			}

			schema, err := jsonschema.Compile(decode(t, g.Schema), opts)
			require.NoError(t, err)

			for _, test := range g.Tests {
				t.Run(test.Description, func(t *testing.T) {
					for _, s := range skipTests {
						if s == test.Description {
							t.Skip("known failure")
						}
					}

					violations, err := schema.Validate(context.Background(), decode(t, test.Data))
					require.NoError(t, err)
					if test.Valid && len(violations) > 0 {
						t.Errorf("unexpected violations for %s:\n%s", test.Data, spew.Sdump(violations))
					}
					if !test.Valid && len(violations) == 0 {
						t.Errorf("no violations for %s against %s", test.Data, g.Schema)
					}
				})
			}
		})
	}
}

// decode decodes a JSON value with exact numbers.
func decode(t *testing.T, data []byte) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}
