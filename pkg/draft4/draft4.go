// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package draft4 defines the keywords used by
// JSON schema draft 4. This is the default version.
package draft4

import (
	"github.com/altshiftab/jsonvalidate/pkg/types"
)

// SchemaID is the "$schema" value of draft 4, without the trailing '#'.
const SchemaID = "http://json-schema.org/draft-04/schema"

// Vocabulary is the draft 4 vocabulary.
var Vocabulary = &types.Vocabulary{
	Name:       "draft4",
	Schema:     SchemaID,
	Keywords:   keywordMap,
	Cmp:        keywordCmp,
	IDKeyword:  "id",
	MetaSchema: checkMetaSchema,
}

func init() {
	types.RegisterVocabulary(Vocabulary, true)
}
