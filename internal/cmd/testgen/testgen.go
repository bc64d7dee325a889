// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// testgen downloads the JSON-Schema-Test-Suite from json-schema-org
// and copies the parts used by the suite tests into the current
// directory. It is invoked by "go generate" in internal/suitetest.
//
// Only the draft directories named with -drafts are copied,
// along with the remote documents that their tests refer to.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	drafts = flag.String("drafts", "draft3,draft4", "comma separated list of test suite drafts to copy")
	ref    = flag.String("ref", "", "test suite commit or tag to check out; the default branch if empty")
)

const repo = "https://github.com/json-schema-org/JSON-Schema-Test-Suite"

func main() {
	log.SetFlags(0)
	log.SetPrefix("testgen: ")
	flag.Parse()

	tempDir, err := os.MkdirTemp("", "jsonvalidate-testgen")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	run(tempDir, "git", "clone", "--quiet", repo, "suite")
	suite := filepath.Join(tempDir, "suite")
	if *ref != "" {
		run(suite, "git", "checkout", "--quiet", *ref)
	}

	copyDir(filepath.Join(suite, "remotes"), "remotes")
	for draft := range strings.SplitSeq(*drafts, ",") {
		draft = strings.TrimSpace(draft)
		if draft == "" {
			continue
		}
		from := filepath.Join(suite, "tests", draft)
		if _, err := os.Stat(from); err != nil {
			log.Fatalf("no tests for %q: %v", draft, err)
		}
		to := filepath.Join("tests", draft)
		if err := os.MkdirAll(to, 0o755); err != nil {
			log.Fatal(err)
		}
		copyDir(from, to)
	}

	for _, dir := range []string{"remotes", "tests"} {
		copyFile(filepath.Join(suite, "LICENSE"), filepath.Join(dir, "LICENSE"))
		writeREADME(filepath.Join(dir, "README"))
	}
}

// run runs a command in dir, exiting on failure.
func run(dir string, name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	fmt.Printf("> %s %s\n", name, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}

// copyDir copies all the files in a directory, recursively.
func copyDir(fromDir, toDir string) {
	fsys := os.DirFS(fromDir)
	keep := make(map[string]bool)
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Fatal(err)
		}

		if strings.HasPrefix(path, "README") {
			return nil
		}

		fpath, err := filepath.Localize(path)
		if err != nil {
			log.Fatal(err)
		}
		newPath := filepath.Join(toDir, fpath)
		if d.IsDir() {
			if err := os.MkdirAll(newPath, 0o755); err != nil {
				log.Fatal(err)
			}
			keep[fpath] = true
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// The testsuite has a "latest" symlink.
			// Ignore it.
			return nil
		}
		if !d.Type().IsRegular() {
			log.Fatalf("%s: not a regular file: mode %s %#o", path, d.Type(), d.Type())
		}

		info, err := fs.Stat(fsys, path)
		if err != nil {
			log.Fatal(err)
		}
		if info.Mode()&0o111 != 0 {
			log.Fatalf("%s is executable: mode %s %#o", path, info.Mode(), info.Mode())
		}

		newContents, err := fs.ReadFile(fsys, path)
		if err != nil {
			log.Fatal(err)
		}

		oldContents, err := os.ReadFile(newPath)
		if err == nil && bytes.Equal(newContents, oldContents) {
			// File is unchanged.
			keep[fpath] = true
			return nil
		}

		fmt.Printf("updating %s\n", path)

		if err := os.WriteFile(newPath, newContents, 0o644); err != nil {
			log.Fatal(err)
		}

		keep[fpath] = true

		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	err = fs.WalkDir(os.DirFS(toDir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Fatal(err)
		}
		if keep[path] {
			return nil
		}

		if path == "LICENSE" || path == "README" {
			return nil
		}
		fmt.Printf("removing %s\n", path)

		if err := os.RemoveAll(filepath.Join(toDir, path)); err != nil {
			log.Fatal(err)
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
}

// copyFile copies a file.
func copyFile(fromFile, toFile string) {
	data, err := os.ReadFile(fromFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(toFile, data, 0o644); err != nil {
		log.Fatal(err)
	}
}

// writeREADME writes our local README file.
func writeREADME(to string) {
	if err := os.WriteFile(to, []byte(readme), 0o644); err != nil {
		log.Fatal(err)
	}
}

const readme = `The contents of this directory are copied from
https://github.com/json-schema-org/JSON-Schema-Test-Suite.

The files in this directory are covered by the LICENSE file
in this directory. These files are only used for testing,
and the LICENSE only applies to explicit copies of these files.
Packages that import the jsonvalidate packages will not import
these files, and will not be subject to this LICENSE.
`
