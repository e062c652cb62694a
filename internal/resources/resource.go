// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"context"
	"net/url"
)

// Resource is the shared read-path capability: search. TalentStore
// implements it; ScoreStore does not, since scores are only looked up
// internally by the talent cascade delete. Index and delete are methods of
// each store rather than of this interface. Index reset is a property of
// the index itself (see internal/index), not of a particular resource.
type Resource interface {
	// Search runs the given query-string parameters against index and
	// returns an engine-agnostic result set.
	Search(ctx context.Context, index string, params url.Values) (SearchResults, error)
}
