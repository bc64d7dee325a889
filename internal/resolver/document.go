// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/altshiftab/jsonvalidate/pkg/jsonpointer"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

// Document is a compiled schema document along with the
// identifiers declared inside it.
//
// A Document is safe for concurrent use. The only changes made
// after it is built are memoized JSON pointer lookups.
type Document struct {
	// URI is the canonical URI of the document, without a fragment.
	// It is empty for a document that was not loaded from a URI
	// and has no base URI.
	URI *url.URL
	// Root is the compiled root schema.
	Root *types.Schema
	// Vocabulary is the schema version of Root.
	Vocabulary *types.Vocabulary

	// ids maps the canonical URIs declared with the id keyword,
	// and the document URI itself, to their schemas.
	ids map[string]*types.Schema
	// anchors maps canonical URIs with a plain name fragment,
	// declared as "id": "#name", to their schemas.
	anchors map[string]*types.Schema

	mu sync.Mutex
	// bases maps every schema in the document to its base URI.
	bases map[*types.Schema]*url.URL
	// derefs memoizes JSON pointer lookups.
	derefs map[derefKey]*types.Schema
}

// derefKey is the key of Document.derefs.
type derefKey struct {
	from    *types.Schema
	pointer string
}

// NewDocument compiles the parsed JSON document raw, which was
// retrieved from uri. uri may be nil. vocabulary is used if the
// document has no "$schema" keyword; if it is nil the default
// vocabulary is used.
func NewDocument(uri *url.URL, raw any, vocabulary *types.Vocabulary) (*Document, error) {
	schemaID := ""
	if vocabulary != nil {
		schemaID = vocabulary.Schema
	}
	root, err := types.SchemaFromJSON(schemaID, raw)
	if err != nil {
		return nil, err
	}

	base := &url.URL{}
	if uri != nil {
		base = canonical(uri)
		base.Fragment = ""
		base.RawFragment = ""
	}

	d := &Document{
		URI:        base,
		Root:       root,
		Vocabulary: types.VocabularyOf(root),
		ids:        make(map[string]*types.Schema),
		anchors:    make(map[string]*types.Schema),
		bases:      make(map[*types.Schema]*url.URL),
		derefs:     make(map[derefKey]*types.Schema),
	}
	d.ids[base.String()] = root
	d.index(root, base)
	return d, nil
}

// index records the base URI of s and its subschemas,
// along with any identifiers they declare.
func (d *Document) index(s *types.Schema, base *url.URL) {
	base = d.declare(s, base)
	d.bases[s] = base
	for _, child := range s.Children() {
		d.index(child, base)
	}
}

// declare handles the id keyword of s, if any,
// and returns the base URI for s.
func (d *Document) declare(s *types.Schema, base *url.URL) *url.URL {
	if d.Vocabulary == nil || d.Vocabulary.IDKeyword == "" {
		return base
	}
	if _, ok := s.Exclusive(); ok {
		// Keywords beside "$ref" are ignored, including "id".
		return base
	}
	pv, ok := s.LookupKeyword(d.Vocabulary.IDKeyword)
	if !ok {
		return base
	}
	id, ok := pv.(types.PartString)
	if !ok || id == "" {
		return base
	}
	u, err := url.Parse(string(id))
	if err != nil {
		// A malformed id can't be referred to; ignore it.
		return base
	}

	abs := canonical(base.ResolveReference(u))
	if u.Scheme == "" && u.Host == "" && u.Path == "" && u.Fragment != "" && !strings.HasPrefix(u.Fragment, "/") {
		// A location-independent identifier.
		if _, dup := d.anchors[abs.String()]; !dup {
			d.anchors[abs.String()] = s
		}
		return base
	}

	abs.Fragment = ""
	abs.RawFragment = ""
	if _, dup := d.ids[abs.String()]; !dup {
		d.ids[abs.String()] = s
	}
	return abs
}

// Base returns the base URI of s, which must be in the document.
// The result must not be modified.
func (d *Document) Base(s *types.Schema) *url.URL {
	if b, ok := d.base(s); ok {
		return b
	}
	return d.URI
}

// base returns the base URI of s and whether s is in the document.
func (d *Document) base(s *types.Schema) (*url.URL, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.bases[s]
	return b, ok
}

// deref returns the schema at the JSON pointer relative to from,
// which is a schema in the document.
func (d *Document) deref(from *types.Schema, pointer string) (*types.Schema, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := derefKey{from, pointer}
	if s, ok := d.derefs[key]; ok {
		return s, nil
	}

	s, err := jsonpointer.DerefSchema(d.Vocabulary, from, pointer)
	if err != nil {
		return nil, err
	}
	if _, ok := d.bases[s]; !ok {
		// A schema built from the value of an unknown keyword.
		base, ok := d.bases[from]
		if !ok {
			base = d.URI
		}
		d.index(s, base)
	}
	d.derefs[key] = s
	return s, nil
}

// String returns the URI of the document, for messages.
func (d *Document) String() string {
	if d.URI.String() == "" {
		return "<anonymous>"
	}
	return d.URI.String()
}

// canonical returns a copy of u with a lower case scheme and host
// and without a default port.
func canonical(u *url.URL) *url.URL {
	c := *u
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	switch {
	case c.Scheme == "http" && strings.HasSuffix(c.Host, ":80"):
		c.Host = strings.TrimSuffix(c.Host, ":80")
	case c.Scheme == "https" && strings.HasSuffix(c.Host, ":443"):
		c.Host = strings.TrimSuffix(c.Host, ":443")
	}
	if c.Fragment == "" {
		c.RawFragment = ""
	}
	return &c
}

// errorf returns an error about a document.
func (d *Document) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %s", d, fmt.Sprintf(format, args...))
}
