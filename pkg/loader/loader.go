// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader defines how schema documents that are referred
// to by URI are retrieved.
//
// The validator never performs network access on its own.
// A program that wants remote references to be followed supplies
// a [Loader], such as one backed by an HTTP client.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by a [Loader] that has no document
// for a URI.
var ErrNotFound = errors.New("schema document not found")

// Loader retrieves the schema document at a URI.
// The URI never has a fragment.
// The result is a parsed JSON value, as produced by [Decode].
//
// A Loader may be called concurrently by multiple goroutines.
type Loader interface {
	Load(ctx context.Context, uri *url.URL) (any, error)
}

// Func adapts a function to the [Loader] interface.
type Func func(ctx context.Context, uri *url.URL) (any, error)

// Load calls f.
func (f Func) Load(ctx context.Context, uri *url.URL) (any, error) {
	return f(ctx, uri)
}

// Map is a [Loader] that serves documents from memory.
// The keys are absolute URIs without fragments.
type Map map[string]any

// Load returns the document for uri.
func (m Map) Load(ctx context.Context, uri *url.URL) (any, error) {
	u := *uri
	u.Fragment = ""
	u.RawFragment = ""
	if v, ok := m[u.String()]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, &u)
}

// FS is a [Loader] that serves documents from a file system.
// A URI that starts with Prefix is mapped to the file named by
// the rest of the URI. Files ending in .yaml or .yml are parsed
// as YAML, and all other files as JSON.
type FS struct {
	FS     fs.FS
	Prefix string
}

// Load reads and parses the file for uri.
func (l FS) Load(ctx context.Context, uri *url.URL) (any, error) {
	u := *uri
	u.Fragment = ""
	u.RawFragment = ""
	name, ok := strings.CutPrefix(u.String(), l.Prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, &u)
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, &u)
		}
		return nil, err
	}
	return Decode(name, data)
}

// Decode parses a schema document. If name ends in .yaml or .yml
// the document is YAML; otherwise it is JSON.
// JSON numbers are returned as [encoding/json.Number] so that
// no precision is lost.
func Decode(name string, data []byte) (any, error) {
	switch path.Ext(name) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("can't parse YAML document %s: %w", name, err)
		}
		return normalizeYAML(v)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("can't parse JSON document %s: %w", name, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("can't parse JSON document %s: unexpected data after top-level value", name)
	}
	return v, nil
}

// normalizeYAML converts a decoded YAML value into the types
// that a JSON decoder would produce.
func normalizeYAML(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			ne, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			v[k] = ne
		}
		return v, nil
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("YAML mapping key %v is %T, want string", k, k)
			}
			ne, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			m[ks] = ne
		}
		return m, nil
	case []any:
		for i, e := range v {
			ne, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			v[i] = ne
		}
		return v, nil
	case time.Time:
		// YAML resolves unquoted timestamps; JSON has only strings.
		return v.Format(time.RFC3339Nano), nil
	}
	return v, nil
}
