// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemacache is a simple in-process cache for schema
// documents that have been loaded and parsed.
package schemacache

import "sync"

// Cache is a cache that holds values of type V,
// normally parsed schema documents.
type Cache[V any] struct {
	m map[cacheKey]V
}

// cacheKey is the key type of Cache.
// We need to track both the schema draft and the path,
// as it is possible, at least in the testsuite,
// for the same path to be used by different schema drafts.
type cacheKey struct {
	schemaID string
	path     string
}

// Load checks the cache for a value.
// The bool result reports whether the path is cached.
func (c *Cache[V]) Load(schemaID, path string) (V, bool) {
	v, ok := c.m[cacheKey{schemaID, path}]
	return v, ok
}

// Store stores a value in the cache.
// It returns the value to use, which may differ
// if it has already been cached.
func (c *Cache[V]) Store(schemaID, path string, v V) V {
	key := cacheKey{schemaID, path}
	if old, ok := c.m[key]; ok {
		return old
	}

	if c.m == nil {
		c.m = make(map[cacheKey]V)
	}

	c.m[key] = v
	return v
}

// Len returns the number of cached values.
func (c *Cache[V]) Len() int {
	return len(c.m)
}

// ConcurrentCache is a cache that permits concurrent access.
type ConcurrentCache[V any] struct {
	cache Cache[V]
	mu    sync.Mutex
}

// Load checks the cache for a value.
// The bool result reports whether the path is cached.
func (cc *ConcurrentCache[V]) Load(schemaID, path string) (V, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cache.Load(schemaID, path)
}

// Store stores a value in the cache.
// It returns the value to use, which may differ
// if some other goroutine already cached it.
func (cc *ConcurrentCache[V]) Store(schemaID, path string, v V) V {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cache.Store(schemaID, path, v)
}

// Len returns the number of cached values.
func (cc *ConcurrentCache[V]) Len() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cache.Len()
}
