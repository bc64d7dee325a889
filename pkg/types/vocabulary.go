// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"cmp"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"sync"
)

// Vocabulary is a vocabulary type: a list of known keywords.
// Each schema version defines an instance of this type.
type Vocabulary struct {
	// The name of this schema version, for messages.
	// Something like draft4.
	Name string
	// The URI that describes this schema version.
	// The value of the $schema keyword, without any trailing '#'.
	// Something like "http://json-schema.org/draft-04/schema".
	Schema string
	// The keywords of this schema version.
	Keywords map[string]*Keyword
	// The sorting function of this schema.
	// Used to sort the keywords of an instance of the schema.
	Cmp func(string, string) int
	// IDKeyword is the keyword that sets the base URI of a schema.
	// This is "id" for draft 4 and earlier.
	IDKeyword string
	// MetaSchema returns the parsed meta-schema document at uri,
	// or nil if uri does not refer to one of the meta-schemas of
	// this schema version. It may be nil.
	MetaSchema func(uri *url.URL) (any, error)
}

// A registry is a mapping from schema name to Vocabulary.
type registry struct {
	mu      sync.Mutex
	mapping map[string]*Vocabulary
	defval  *Vocabulary // default vocabulary
}

// Adds adds an item to the registry.
func (r *registry) add(s string, v *Vocabulary, def bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mapping == nil {
		r.mapping = make(map[string]*Vocabulary)
	}
	if _, found := r.mapping[s]; found {
		panic(fmt.Sprintf("jsonschema: multiple attempts to add %q to registry", s))
	}
	r.mapping[s] = v
	if def {
		if r.defval != nil {
			panic("jsonschema: multiple default vocabularies")
		}
		r.defval = v
	}
}

// lookup returns an element from the registry,
// or nil if not present.
func (r *registry) lookup(s string) *Vocabulary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mapping[s]
}

// lookupName returns the element with the given Name,
// or nil if not present.
func (r *registry) lookupName(name string) *Vocabulary {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.mapping {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// def returns the default vocabulary,
// or nil if there isn't one.
func (r *registry) def() *Vocabulary {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.defval != nil {
		return r.defval
	}
	if len(r.mapping) == 1 {
		for _, v := range r.mapping {
			return v
		}
	}
	return nil
}

// all returns all registered vocabularies sorted by name.
func (r *registry) all() []*Vocabulary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.SortedFunc(maps.Values(r.mapping), func(a, b *Vocabulary) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

// reg is the global registry.
var reg registry

// RegisterVocabulary registers a vocabulary.
// The def argument is true for the default vocabulary.
// It's normally not necessary to call this;
// importing a JSON schema version package will register it.
func RegisterVocabulary(v *Vocabulary, def bool) {
	reg.add(v.Schema, v, def)
}

// LookupVocabulary returns a registered vocabulary, or nil if no vocabulary
// was registered under that $schema URI.
func LookupVocabulary(s string) *Vocabulary {
	// Schemas normally write "http://json-schema.org/draft-04/schema#".
	s = strings.TrimSuffix(s, "#")
	return reg.lookup(s)
}

// LookupVocabularyName returns the registered vocabulary with
// the given [Vocabulary.Name], or nil if there is none.
func LookupVocabularyName(name string) *Vocabulary {
	return reg.lookupName(name)
}

// DefaultVocabulary returns the default vocabulary, or nil if there isn't one.
func DefaultVocabulary() *Vocabulary {
	return reg.def()
}

// Vocabularies returns all registered vocabularies, sorted by name.
func Vocabularies() []*Vocabulary {
	return reg.all()
}

// VocabularyOf returns the vocabulary recorded in the "$schema"
// keyword of a root schema, or nil if there is none.
func VocabularyOf(s *Schema) *Vocabulary {
	if pv, ok := s.LookupKeyword(SchemaKeyword.Name); ok {
		if ps, ok := pv.(PartString); ok {
			return LookupVocabulary(string(ps))
		}
	}
	return nil
}
