// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
)

// Client is the shared handle to the search engine. Every engine call
// acquires mu for its duration only; query planning and response encoding
// happen outside the critical section, matching the serialized-access
// model the service requires around the single underlying connection.
type Client struct {
	es *elasticsearch.Client
	mu sync.Mutex
}

// SearchOptions configures a Search call beyond the raw query body.
type SearchOptions struct {
	From               int
	Size               int
	Sort               []map[string]interface{}
	MinScore           float64
	TrackScores        bool
	Highlight          map[string]interface{}
	CaptureRequestBody bool
}

// SearchResponse is the decoded result of a Search call.
type SearchResponse struct {
	Total       int64
	Hits        []Hit
	RawRequest  string // "POST /<index>/_search" line plus the on-wire request body, set iff CaptureRequestBody
	RawResponse []byte
}

// Hit is a single matched document plus its optional highlight fragments.
type Hit struct {
	Source    []byte
	Highlight map[string][]string
}

// BulkItem is one document targeted for indexing in a bulk request.
type BulkItem struct {
	ID     string
	Source interface{}
}

// MappingRequest captures the settings+mappings body for an index create.
type MappingRequest struct {
	Settings map[string]interface{}
	Mappings map[string]interface{}
}

// Error wraps a non-2xx engine response with its status and body, so
// callers can distinguish a read-path failure (log + degrade) from a
// write-path failure (surface to the client) without re-parsing text.
type Error struct {
	Status string
	Body   string
}

func (e *Error) Error() string {
	if e.Body != "" {
		return e.Status + ": " + e.Body
	}
	return e.Status
}
