// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemacache

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// instrumentationName names the tracer and meter of a [Shared] cache.
const instrumentationName = "github.com/altshiftab/jsonvalidate/internal/schemacache"

// SharedOptions configures a [Shared] cache.
// The zero value is ready to use.
type SharedOptions struct {
	// FetchTimeout bounds a single fetch. Zero means no limit
	// beyond the context of the request that started the fetch,
	// which is not canceled when that request gives up.
	FetchTimeout time.Duration

	// Logger receives debug messages about fetches.
	// If nil nothing is logged.
	Logger *slog.Logger

	// TracerProvider provides the tracer for fetch spans.
	// If nil the global provider is used.
	TracerProvider trace.TracerProvider

	// MeterProvider provides the meter for the cache counters.
	// If nil the global provider is used.
	MeterProvider metric.MeterProvider
}

// Shared is a cache of fetched values that may be shared by
// concurrent validation requests. Concurrent requests for the
// same key share a single fetch. Only successful fetches are
// stored; a failed fetch is tried again by the next request.
type Shared[V any] struct {
	cache   ConcurrentCache[V]
	group   singleflight.Group
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer

	hits    metric.Int64Counter
	misses  metric.Int64Counter
	fetches metric.Int64Counter
}

// NewShared returns a new empty [Shared] cache.
// opts may be nil.
func NewShared[V any](opts *SharedOptions) *Shared[V] {
	if opts == nil {
		opts = &SharedOptions{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := opts.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	meter := mp.Meter(instrumentationName)
	return &Shared[V]{
		timeout: opts.FetchTimeout,
		logger:  logger,
		tracer:  tp.Tracer(instrumentationName),
		hits:    counter(meter, "jsonschema.fetch_cache.hits", "Lookups answered from the cache"),
		misses:  counter(meter, "jsonschema.fetch_cache.misses", "Lookups not answered from the cache"),
		fetches: counter(meter, "jsonschema.fetch_cache.fetches", "Fetches started"),
	}
}

// counter creates a counter, falling back to a no-op counter
// if the meter rejects it.
func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("1"))
	if err != nil {
		otel.Handle(err)
		c, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter(name)
	}
	return c
}

// Len returns the number of cached values.
func (s *Shared[V]) Len() int {
	return s.cache.Len()
}

// Load checks the cache for a value without fetching it.
func (s *Shared[V]) Load(schemaID, path string) (V, bool) {
	return s.cache.Load(schemaID, path)
}

// Get returns the cached value for the key, calling fetch
// to produce it if it is not cached. If ctx is done before the
// fetch completes Get returns ctx.Err(), but the fetch goes on
// for the benefit of other requests and of later calls.
func (s *Shared[V]) Get(ctx context.Context, schemaID, path string, fetch func(context.Context) (V, error)) (V, error) {
	attrs := metric.WithAttributes(attribute.String("jsonschema.schema_id", schemaID))
	if v, ok := s.cache.Load(schemaID, path); ok {
		s.hits.Add(ctx, 1, attrs)
		return v, nil
	}
	s.misses.Add(ctx, 1, attrs)

	ch := s.group.DoChan(schemaID+"\x00"+path, func() (any, error) {
		if v, ok := s.cache.Load(schemaID, path); ok {
			return v, nil
		}
		return s.fetch(ctx, schemaID, path, fetch)
	})

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			var zero V
			return zero, r.Err
		}
		return r.Val.(V), nil
	}
}

// fetch runs fetch detached from the cancellation of ctx
// and stores a successful result.
func (s *Shared[V]) fetch(ctx context.Context, schemaID, path string, fetch func(context.Context) (V, error)) (V, error) {
	fctx := context.WithoutCancel(ctx)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(fctx, s.timeout)
		defer cancel()
	}

	fctx, span := s.tracer.Start(fctx, "jsonschema.fetch",
		trace.WithAttributes(
			attribute.String("jsonschema.schema_id", schemaID),
			attribute.String("jsonschema.uri", path),
		),
	)
	defer span.End()

	s.fetches.Add(fctx, 1, metric.WithAttributes(attribute.String("jsonschema.schema_id", schemaID)))
	start := time.Now()
	v, err := fetch(fctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.DebugContext(fctx, "schema fetch failed", "uri", path, "error", err)
		return v, err
	}

	span.SetStatus(codes.Ok, "")
	s.logger.DebugContext(fctx, "schema fetched", "uri", path, "duration", time.Since(start))
	return s.cache.Store(schemaID, path, v), nil
}
