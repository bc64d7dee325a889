// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonschema validates JSON values against JSON schemas.
//
// Draft 4 is the default schema version. Draft 3 is used by schemas
// that name it in their "$schema" keyword, or when it is requested
// with [Options.DefaultDraft].
//
// Validation reports two kinds of outcome separately.
// An instance that does not conform to its schema produces a list
// of [Violation] values and a nil error. A schema that can't be
// applied, such as one with a reference that can't be resolved,
// produces a non-nil error and no violations.
package jsonschema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"

	"github.com/altshiftab/jsonvalidate/internal/resolver"
	"github.com/altshiftab/jsonvalidate/internal/schemacache"
	"github.com/altshiftab/jsonvalidate/internal/validerr"
	_ "github.com/altshiftab/jsonvalidate/pkg/draft3"
	_ "github.com/altshiftab/jsonvalidate/pkg/draft4"
	_ "github.com/altshiftab/jsonvalidate/pkg/format"
	"github.com/altshiftab/jsonvalidate/pkg/loader"
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

// Violation describes one way in which an instance fails to
// conform to a schema.
type Violation = validerr.ValidationError

// Path is a location in a JSON document: a list of object keys
// and array indexes.
type Path = validerr.Path

var (
	// ErrUnresolvedReference is matched by errors for references
	// that don't lead to a schema.
	ErrUnresolvedReference = resolver.ErrUnresolvedReference
	// ErrCyclicReference is matched by errors for references
	// that lead back to themselves.
	ErrCyclicReference = resolver.ErrCyclicReference
)

// ResolutionError describes a reference that could not be resolved.
type ResolutionError = resolver.ResolutionError

// Options configures [Compile]. A nil *Options means the defaults.
type Options struct {
	// DefaultDraft is the schema version used by schemas without a
	// "$schema" keyword. It is either a version name, like "draft3",
	// or a "$schema" URI. The default is draft 4.
	DefaultDraft string
	// BaseURI is the URI of the schema document, used to resolve
	// relative references.
	BaseURI string
	// Loader retrieves documents for references outside the schema.
	// If nil, such references can only be resolved from Cache.
	Loader loader.Loader
	// Cache shares retrieved documents between validations.
	Cache *FetchCache
	// ValidateFormat turns on checking of the format keyword.
	ValidateFormat bool
	// SortViolations sorts violations by instance location and then
	// by schema location. Otherwise they are in evaluation order.
	SortViolations bool
	// Logger receives debug messages about reference resolution.
	Logger *slog.Logger
	// MaxDepth limits how many references may be followed at once.
	// Exceeding it is reported as [ErrCyclicReference].
	// Zero means 1000.
	MaxDepth int
}

// FetchCacheOptions configures a [FetchCache].
type FetchCacheOptions = schemacache.SharedOptions

// FetchCache holds schema documents retrieved by a [loader.Loader].
// It may be shared by any number of schemas and goroutines.
// Concurrent requests for the same document result in one retrieval.
type FetchCache struct {
	shared *schemacache.Shared[*resolver.Document]
}

// NewFetchCache returns an empty cache. opts may be nil.
func NewFetchCache(opts *FetchCacheOptions) *FetchCache {
	return &FetchCache{shared: schemacache.NewShared[*resolver.Document](opts)}
}

// Len returns the number of documents in the cache.
func (fc *FetchCache) Len() int {
	return fc.shared.Len()
}

// Schema is a compiled schema. It is safe for concurrent use.
type Schema struct {
	doc  *resolver.Document
	opts Options
}

// Compile compiles schema, which is a value decoded from JSON,
// such as a map[string]any or a bool.
func Compile(schema any, opts *Options) (*Schema, error) {
	if opts == nil {
		opts = &Options{}
	}

	var vocabulary *types.Vocabulary
	if opts.DefaultDraft != "" {
		vocabulary = types.LookupVocabularyName(opts.DefaultDraft)
		if vocabulary == nil {
			vocabulary = types.LookupVocabulary(opts.DefaultDraft)
		}
		if vocabulary == nil {
			return nil, fmt.Errorf("jsonschema: unknown schema version %q", opts.DefaultDraft)
		}
	}

	var base *url.URL
	if opts.BaseURI != "" {
		u, err := url.Parse(opts.BaseURI)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: bad base URI: %w", err)
		}
		base = u
	}

	doc, err := resolver.NewDocument(base, schema, vocabulary)
	if err != nil {
		return nil, err
	}
	return &Schema{doc: doc, opts: *opts}, nil
}

// New compiles the schema in the JSON text data with the default options.
func New(data []byte) (*Schema, error) {
	v, err := decode(data)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("json decode: %w", err))
	}
	s, err := Compile(v, nil)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("compile: %w", err))
	}
	return s, nil
}

// decode decodes a single JSON value, keeping numbers exact.
func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// Validate checks instance, a value decoded from JSON, against s.
// It returns the violations found, which is empty if the instance
// conforms. If the schema can't be applied, it returns an error
// and no violations.
func (s *Schema) Validate(ctx context.Context, instance any) ([]*Violation, error) {
	ropts := &resolver.Options{
		Loader:   s.opts.Loader,
		Logger:   s.opts.Logger,
		MaxDepth: s.opts.MaxDepth,
	}
	if s.opts.Cache != nil {
		ropts.Cache = s.opts.Cache.shared
	}
	rc := resolver.NewContext(s.doc, ropts)

	err := s.doc.Root.ValidateWithOpts(ctx, instance, &types.ValidateOpts{
		Resolver:       rc,
		ValidateFormat: s.opts.ValidateFormat,
		// Schema nesting is bounded by the references rc
		// will follow, so only that limit applies.
		MaxDepth: -1,
	})
	if err == nil {
		return nil, nil
	}
	if !validerr.IsValidationError(err) {
		return nil, err
	}

	violations := validerr.Flatten(err)
	if s.opts.SortViolations {
		validerr.Sort(violations)
	}
	return violations, nil
}

// Validate compiles schema with the default options and checks
// instance against it.
func Validate(ctx context.Context, schema any, instance any) ([]*Violation, error) {
	s, err := Compile(schema, nil)
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, instance)
}
