// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metaschema loads the meta-schemas embedded in the
// schema version packages.
package metaschema

import (
	"embed"
	"fmt"
	"net/url"
	"strings"

	"github.com/altshiftab/jsonvalidate/internal/schemacache"
	"github.com/altshiftab/jsonvalidate/pkg/loader"
)

// metaCache is a cache of the parsed meta-schema documents.
// We use a single cache since they shouldn't change.
var metaCache schemacache.ConcurrentCache[any]

// Load checks whether uri refers to a meta-schema in metaFS,
// and loads it if it does. If uri is not a meta-schema,
// this returns nil, nil. metaFS is for schemaID,
// and prefix is the URI path prefix, such as "/draft-04/".
// The result is the parsed JSON document, which must not be modified.
func Load(schemaID, prefix string, metaFS *embed.FS, uri *url.URL) (any, error) {
	if uri.Scheme != "http" && uri.Scheme != "https" {
		return nil, nil
	}
	if uri.Host != "json-schema.org" {
		return nil, nil
	}
	path, ok := strings.CutPrefix(uri.Path, prefix)
	if !ok || path == "" {
		return nil, nil
	}

	if doc, ok := metaCache.Load(schemaID, path); ok {
		return doc, nil
	}

	data, err := metaFS.ReadFile("metaschema/" + path + ".json")
	if err != nil {
		return nil, fmt.Errorf("can't find meta-schema URI %q: %v", uri, err)
	}

	doc, err := loader.Decode(path+".json", data)
	if err != nil {
		return nil, fmt.Errorf("can't parse meta-schema URI %q: %v", uri, err)
	}

	return metaCache.Store(schemaID, path, doc), nil
}
