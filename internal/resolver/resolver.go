// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolver resolves "$ref" keywords while an instance
// is being validated.
//
// A [Document] is a compiled schema document with an index of the
// identifiers it declares. A [Context] is created for each
// validation request; it tracks the documents that the request has
// used, the stack of references being followed, and which schemas
// are being applied to which instance locations.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/altshiftab/jsonvalidate/internal/schemacache"
	"github.com/altshiftab/jsonvalidate/pkg/loader"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

var (
	// ErrUnresolvedReference means that a reference does not
	// lead to any known or loadable schema.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrCyclicReference means that a chain of references
	// leads back to itself without applying any other keyword.
	ErrCyclicReference = errors.New("cyclic reference")
)

// ResolutionError describes a reference that could not be resolved.
// It matches [ErrUnresolvedReference] or [ErrCyclicReference]
// with [errors.Is], as well as the underlying error, if any.
type ResolutionError struct {
	// Ref is the value of the "$ref" keyword.
	Ref string
	// URI is the absolute form of Ref, if known.
	URI string
	// Err is the underlying error, such as a loader failure.
	// It may be nil.
	Err error

	kind error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "jsonschema: %v %q", e.kind, e.Ref)
	if e.URI != "" && e.URI != e.Ref {
		fmt.Fprintf(&sb, " (%s)", e.URI)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// Unwrap returns the kind of failure and the underlying error.
func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.Err}
}

// metaDocs holds the compiled meta-schema documents.
// They never change, so they are shared by all requests.
var metaDocs schemacache.ConcurrentCache[*Document]

// DefaultMaxDepth is the default limit on nested references.
const DefaultMaxDepth = 1000

// Options configures a [Context].
type Options struct {
	// Loader retrieves documents that are not otherwise known.
	// If nil only references into known documents are resolved.
	Loader loader.Loader
	// Cache holds documents shared between requests. It may be nil.
	Cache *schemacache.Shared[*Document]
	// Logger receives debug messages. If nil nothing is logged.
	Logger *slog.Logger
	// MaxDepth limits the number of nested references.
	// Zero means DefaultMaxDepth.
	MaxDepth int
}

// frame is an entry on the reference stack.
type frame struct {
	doc    *Document
	target *types.Schema
	base   *url.URL
}

// activeKey identifies a schema being applied to an instance location.
type activeKey struct {
	target   *types.Schema
	instance string
}

// resolved is a memoized reference.
type resolved struct {
	target *types.Schema
	doc    *Document
}

// Context resolves references for a single validation request.
// It is not safe for concurrent use.
type Context struct {
	root     *Document
	loader   loader.Loader
	cache    *schemacache.Shared[*Document]
	logger   *slog.Logger
	maxDepth int

	// ids and anchors combine the identifiers of the documents
	// that this request has used.
	ids     map[string]resolved
	anchors map[string]resolved

	stack  []frame
	active map[activeKey]bool
	memo   map[string]resolved
}

// NewContext returns a Context for validating against root.
// opts may be nil.
func NewContext(root *Document, opts *Options) *Context {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	c := &Context{
		root:     root,
		loader:   opts.Loader,
		cache:    opts.Cache,
		logger:   logger,
		maxDepth: maxDepth,
		ids:      make(map[string]resolved),
		anchors:  make(map[string]resolved),
		active:   make(map[activeKey]bool),
		memo:     make(map[string]resolved),
	}
	c.addDocument(root)
	c.stack = append(c.stack, frame{doc: root, target: root.Root, base: root.Base(root.Root)})
	c.active[activeKey{root.Root, types.Path(nil).String()}] = true
	return c
}

// addDocument makes the identifiers of d known.
// Identifiers that are already known keep their meaning.
func (c *Context) addDocument(d *Document) {
	// Memoized lookups can add identifiers to a shared document.
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, s := range d.ids {
		if _, ok := c.ids[id]; !ok {
			c.ids[id] = resolved{s, d}
		}
	}
	for a, s := range d.anchors {
		if _, ok := c.anchors[a]; !ok {
			c.anchors[a] = resolved{s, d}
		}
	}
}

// Scope returns the current base URI, which is the base of the
// schema most recently entered through a reference. References in
// schemas outside the current document are resolved against it.
// The result must not be modified.
func (c *Context) Scope() *url.URL {
	return c.stack[len(c.stack)-1].base
}

// Depth returns the number of references being followed.
func (c *Context) Depth() int {
	return len(c.stack) - 1
}

// Enter implements [types.RefResolver].
// It resolves ref and pushes the target onto the reference stack.
// The returned leave function pops it again.
func (c *Context) Enter(ctx context.Context, from *types.Schema, ref string, instancePath types.Path) (*types.Schema, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if len(c.stack) > c.maxDepth {
		return nil, nil, &ResolutionError{
			Ref:  ref,
			Err:  fmt.Errorf("more than %d nested references", c.maxDepth),
			kind: ErrCyclicReference,
		}
	}

	r, err := c.resolve(ctx, c.stack[len(c.stack)-1].doc, from, ref)
	if err != nil {
		return nil, nil, err
	}

	key := activeKey{r.target, instancePath.String()}
	if c.active[key] {
		c.logger.DebugContext(ctx, "reference already in progress", "ref", ref, "instance", key.instance)
		return nil, func() {}, nil
	}
	c.active[key] = true
	c.stack = append(c.stack, frame{doc: r.doc, target: r.target, base: r.doc.Base(r.target)})

	leave := func() {
		c.stack = c.stack[:len(c.stack)-1]
		delete(c.active, key)
	}
	return r.target, leave, nil
}

// Resolve returns the schema that ref refers to, where ref
// appears in the schema from, which is in the document of the
// schema most recently entered.
func (c *Context) Resolve(ctx context.Context, from *types.Schema, ref string) (*types.Schema, error) {
	r, err := c.resolve(ctx, c.stack[len(c.stack)-1].doc, from, ref)
	if err != nil {
		return nil, err
	}
	return r.target, nil
}

// resolve resolves ref in the schema from in document doc.
// A schema that doc does not know, such as one built by the
// caller, takes the current scope as its base.
// If the target is itself a reference, the chain is followed
// to make sure that it ends.
func (c *Context) resolve(ctx context.Context, doc *Document, from *types.Schema, ref string) (resolved, error) {
	base, ok := doc.base(from)
	if !ok {
		base = c.Scope()
	}
	memoKey := base.String() + "\x00" + ref
	if r, ok := c.memo[memoKey]; ok {
		return r, nil
	}

	r, err := c.lookup(ctx, doc, base, ref)
	if err != nil {
		return resolved{}, err
	}

	seen := make(map[*types.Schema]bool)
	if _, ok := from.Exclusive(); ok {
		seen[from] = true
	}
	cur := r
	for {
		if seen[cur.target] {
			return resolved{}, &ResolutionError{
				Ref:  ref,
				URI:  base.ResolveReference(mustParse(ref)).String(),
				kind: ErrCyclicReference,
			}
		}
		if len(seen) > c.maxDepth {
			return resolved{}, &ResolutionError{
				Ref:  ref,
				Err:  fmt.Errorf("more than %d chained references", c.maxDepth),
				kind: ErrCyclicReference,
			}
		}
		seen[cur.target] = true

		p, ok := cur.target.Exclusive()
		if !ok {
			break
		}
		next, ok := p.Value.(types.PartString)
		if !ok {
			break
		}
		cur, err = c.lookup(ctx, cur.doc, cur.doc.Base(cur.target), string(next))
		if err != nil {
			return resolved{}, err
		}
	}

	c.logger.DebugContext(ctx, "resolved reference", "ref", ref, "base", base.String(), "document", r.doc.String())
	c.memo[memoKey] = r
	return r, nil
}

// mustParse parses a reference that is already known to be valid.
func mustParse(ref string) *url.URL {
	u, err := url.Parse(ref)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// lookup finds the schema for the reference ref, relative to
// base, which is in doc.
func (c *Context) lookup(ctx context.Context, doc *Document, base *url.URL, ref string) (resolved, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return resolved{}, &ResolutionError{Ref: ref, Err: err, kind: ErrUnresolvedReference}
	}
	abs := canonical(base.ResolveReference(refURL))
	fragment := abs.Fragment
	docURI := *abs
	docURI.Fragment = ""
	docURI.RawFragment = ""

	fail := func(err error) (resolved, error) {
		return resolved{}, &ResolutionError{Ref: ref, URI: abs.String(), Err: err, kind: ErrUnresolvedReference}
	}

	if fragment != "" && !strings.HasPrefix(fragment, "/") {
		if r, ok := c.anchors[abs.String()]; ok {
			return r, nil
		}
		// The anchor may be in a document we haven't loaded yet.
		if _, err := c.resource(ctx, doc, &docURI); err != nil {
			return fail(err)
		}
		if r, ok := c.anchors[abs.String()]; ok {
			return r, nil
		}
		return fail(nil)
	}

	res, err := c.resource(ctx, doc, &docURI)
	if err != nil {
		return fail(err)
	}
	if fragment == "" {
		return res, nil
	}

	target, err := res.doc.deref(res.target, fragment)
	if err != nil {
		return fail(err)
	}
	return resolved{target, res.doc}, nil
}

// resource returns the schema identified by uri, which has no fragment.
// The schema may be in a known document, a meta-schema, or a document
// retrieved with the loader.
func (c *Context) resource(ctx context.Context, doc *Document, uri *url.URL) (resolved, error) {
	key := uri.String()
	if r, ok := c.ids[key]; ok {
		return r, nil
	}

	if d, err := c.metaDocument(uri); err != nil {
		return resolved{}, err
	} else if d != nil {
		c.addDocument(d)
		return c.known(key, d)
	}

	if !uri.IsAbs() {
		return resolved{}, fmt.Errorf("relative URI %q with no base URI", key)
	}

	vocabulary := doc.Vocabulary
	schemaID := ""
	if vocabulary != nil {
		schemaID = vocabulary.Schema
	}

	if c.loader == nil {
		if c.cache != nil {
			if d, ok := c.cache.Load(schemaID, key); ok {
				c.addDocument(d)
				return c.known(key, d)
			}
		}
		return resolved{}, errors.New("no loader for remote references")
	}

	fetch := func(ctx context.Context) (*Document, error) {
		c.logger.DebugContext(ctx, "loading schema document", "uri", key)
		raw, err := c.loader.Load(ctx, uri)
		if err != nil {
			return nil, err
		}
		return NewDocument(uri, raw, vocabulary)
	}

	var d *Document
	var err error
	if c.cache != nil {
		d, err = c.cache.Get(ctx, schemaID, key, fetch)
	} else {
		d, err = fetch(ctx)
	}
	if err != nil {
		return resolved{}, err
	}
	c.addDocument(d)
	return c.known(key, d)
}

// known returns the schema for key, which d should have declared.
func (c *Context) known(key string, d *Document) (resolved, error) {
	if r, ok := c.ids[key]; ok {
		return r, nil
	}
	return resolved{}, d.errorf("document does not declare %q", key)
}

// metaDocument returns the meta-schema document at uri,
// or nil if uri is not a meta-schema of any registered vocabulary.
func (c *Context) metaDocument(uri *url.URL) (*Document, error) {
	for _, v := range types.Vocabularies() {
		if v.MetaSchema == nil {
			continue
		}
		raw, err := v.MetaSchema(uri)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}

		key := uri.String()
		if d, ok := metaDocs.Load(v.Schema, key); ok {
			return d, nil
		}
		d, err := NewDocument(uri, raw, v)
		if err != nil {
			return nil, fmt.Errorf("can't compile meta-schema %s: %w", key, err)
		}
		return metaDocs.Store(v.Schema, key, d), nil
	}
	return nil, nil
}
