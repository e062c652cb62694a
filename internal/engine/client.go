// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package engine is a thin adapter over the search engine connection:
// bulk index, delete, delete-index, create-mapping, search, and refresh.
// It owns the single mutex that serializes engine calls across all
// handlers; query planning and JSON encoding are expected to happen
// outside of any call into this package.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// New creates a Client connected to the given addresses.
func New(addresses []string) (*Client, error) {
	cfg := elasticsearch.Config{Addresses: addresses}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine client: %w", err)
	}

	return &Client{es: es}, nil
}

// Ping verifies the engine is reachable, used at startup so the service
// fails fast rather than serving traffic against a dead connection.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to ping engine: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("engine ping failed: %s", res.Status())
	}
	return nil
}

// BulkIndex indexes every item into index in a single bulk request.
func (c *Client) BulkIndex(ctx context.Context, index string, items []BulkItem) error {
	if len(items) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, item := range items {
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": index,
				"_id":    item.ID,
			},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal bulk meta: %w", err)
		}
		sourceLine, err := json.Marshal(item.Source)
		if err != nil {
			return fmt.Errorf("failed to marshal bulk source: %w", err)
		}
		buf.Write(metaLine)
		buf.WriteByte('\n')
		buf.Write(sourceLine)
		buf.WriteByte('\n')
	}

	c.mu.Lock()
	res, err := c.es.Bulk(bytes.NewReader(buf.Bytes()),
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithIndex(index),
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to execute bulk index: %w", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.IsError() {
		return &Error{Status: res.Status(), Body: string(body)}
	}

	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int    `json:"status"`
			Error  *json.RawMessage `json:"error,omitempty"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if parsed.Errors {
		return &Error{Status: res.Status(), Body: string(body)}
	}
	return nil
}

// Delete removes a single document by id. A 404 is treated as success —
// deleting an already-absent document is not an error.
func (c *Client) Delete(ctx context.Context, index, id string) error {
	c.mu.Lock()
	res, err := c.es.Delete(index, id, c.es.Delete.WithContext(ctx))
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		body, _ := io.ReadAll(res.Body)
		return &Error{Status: res.Status(), Body: string(body)}
	}
	return nil
}

// DeleteIndex drops an entire index, ignoring a not-found response so the
// index lifecycle reset stays idempotent.
func (c *Client) DeleteIndex(ctx context.Context, index string) error {
	c.mu.Lock()
	res, err := c.es.Indices.Delete([]string{index}, c.es.Indices.Delete.WithContext(ctx))
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		body, _ := io.ReadAll(res.Body)
		return &Error{Status: res.Status(), Body: string(body)}
	}
	return nil
}

// CreateMapping creates index with the given settings + mappings body.
func (c *Client) CreateMapping(ctx context.Context, index string, req MappingRequest) error {
	body := map[string]interface{}{
		"settings": req.Settings,
		"mappings": req.Mappings,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping request: %w", err)
	}

	c.mu.Lock()
	res, err := c.es.Indices.Create(index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(bytes.NewReader(payload)),
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to create index mapping: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		respBody, _ := io.ReadAll(res.Body)
		return &Error{Status: res.Status(), Body: string(respBody)}
	}
	return nil
}

// Search executes query against index with the given options.
func (c *Client) Search(ctx context.Context, index string, query map[string]interface{}, opts SearchOptions) (*SearchResponse, error) {
	body := make(map[string]interface{}, len(query)+4)
	for k, v := range query {
		body[k] = v
	}
	body["from"] = opts.From
	body["size"] = opts.Size
	if len(opts.Sort) > 0 {
		body["sort"] = opts.Sort
	}
	if opts.MinScore > 0 {
		body["min_score"] = opts.MinScore
	}
	if opts.TrackScores {
		body["track_scores"] = true
	}
	if len(opts.Highlight) > 0 {
		body["highlight"] = opts.Highlight
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search body: %w", err)
	}

	reqOpts := []func(*esapi.SearchRequest){
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(payload)),
	}

	c.mu.Lock()
	res, err := c.es.Search(reqOpts...)
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.IsError() {
		return nil, &Error{Status: res.Status(), Body: string(respBody)}
	}

	parsed, err := parseSearchResponse(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if opts.CaptureRequestBody {
		parsed.RawRequest = formatRawRequest(index, payload)
	}
	parsed.RawResponse = respBody
	return parsed, nil
}

// Refresh forces the index to make recent writes visible to search,
// used only by tests that need synchronous read-after-write semantics.
func (c *Client) Refresh(ctx context.Context, index string) error {
	c.mu.Lock()
	res, err := c.es.Indices.Refresh(
		c.es.Indices.Refresh.WithContext(ctx),
		c.es.Indices.Refresh.WithIndex(index),
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to refresh index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return &Error{Status: res.Status(), Body: string(body)}
	}
	return nil
}

// formatRawRequest renders the debug echo of a search request, prefixed
// by its HTTP method/path line (P7: raw_es_query must start with that
// line, matching the engine's own request/response log convention).
func formatRawRequest(index string, payload []byte) string {
	return fmt.Sprintf("POST /%s/_search\n%s", index, strings.TrimSpace(string(payload)))
}

func parseSearchResponse(body []byte) (*SearchResponse, error) {
	var raw struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source    json.RawMessage     `json:"_source"`
				Highlight map[string][]string `json:"highlight,omitempty"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	hits := make([]Hit, len(raw.Hits.Hits))
	for i, h := range raw.Hits.Hits {
		hits[i] = Hit{Source: h.Source, Highlight: h.Highlight}
	}

	return &SearchResponse{
		Total: raw.Hits.Total.Value,
		Hits:  hits,
	}, nil
}
