// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestDecodeJSON(t *testing.T) {
	v, err := Decode("a.json", []byte(`{"type": "integer", "maximum": 0.1}`))
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, "integer", m["type"])
	assert.Equal(t, json.Number("0.1"), m["maximum"])

	_, err = Decode("a.json", []byte(`{} {}`))
	assert.Error(t, err)
	_, err = Decode("a.json", []byte(`{`))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	src := "type: object\nproperties:\n  when:\n    enum: [2001-12-14t21:59:43.10-05:00]\n  n:\n    minimum: 1\n"
	v, err := Decode("s.yaml", []byte(src))
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, "object", m["type"])
	props := m["properties"].(map[string]any)
	n := props["n"].(map[string]any)
	assert.Equal(t, 1, n["minimum"])
	when := props["when"].(map[string]any)
	enum := when["enum"].([]any)
	require.Len(t, enum, 1)
	assert.IsType(t, "", enum[0])
}

func TestMap(t *testing.T) {
	m := Map{"http://example.com/s.json": map[string]any{"type": "string"}}
	v, err := m.Load(context.Background(), mustParse(t, "http://example.com/s.json#/definitions/a"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "string"}, v)

	_, err = m.Load(context.Background(), mustParse(t, "http://example.com/other.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFS(t *testing.T) {
	fsys := fstest.MapFS{
		"integer.json":        {Data: []byte(`{"type": "integer"}`)},
		"folder/item.yaml":    {Data: []byte("type: array\n")},
		"folder/invalid.json": {Data: []byte(`{`)},
	}
	l := FS{FS: fsys, Prefix: "http://localhost:1234/"}
	ctx := context.Background()

	v, err := l.Load(ctx, mustParse(t, "http://localhost:1234/integer.json"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "integer"}, v)

	v, err = l.Load(ctx, mustParse(t, "http://localhost:1234/folder/item.yaml"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "array"}, v)

	_, err = l.Load(ctx, mustParse(t, "http://localhost:1234/missing.json"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Load(ctx, mustParse(t, "http://elsewhere/integer.json"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.Load(ctx, mustParse(t, "http://localhost:1234/folder/invalid.json"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
