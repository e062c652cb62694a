// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package querydsl builds Elasticsearch Query DSL bool queries from the
// four standard compartments (must, should, filter, must_not). It
// generalizes the teacher's single must/must_not FilterBuilder into the
// full compartment set the query planner needs: must for scored keyword
// matching, should for soft-boost clauses, filter for non-scoring
// constraints, and must_not for exclusions.
package querydsl

// Clause is a single Query DSL clause, e.g. {"term": {"field": "value"}}.
type Clause map[string]interface{}

// BoolBuilder accumulates clauses across the four bool compartments and
// renders the final query body.
type BoolBuilder struct {
	must               []Clause
	should             []Clause
	filter             []Clause
	mustNot            []Clause
	minimumShouldMatch int
}

// New returns an empty BoolBuilder.
func New() *BoolBuilder {
	return &BoolBuilder{}
}

// Must appends a scored, required clause.
func (b *BoolBuilder) Must(c Clause) *BoolBuilder {
	if c == nil {
		return b
	}
	b.must = append(b.must, c)
	return b
}

// Should appends an optional, boosting clause.
func (b *BoolBuilder) Should(c Clause) *BoolBuilder {
	if c == nil {
		return b
	}
	b.should = append(b.should, c)
	return b
}

// Filter appends a non-scoring, required clause.
func (b *BoolBuilder) Filter(c Clause) *BoolBuilder {
	if c == nil {
		return b
	}
	b.filter = append(b.filter, c)
	return b
}

// MustNot appends an exclusion clause.
func (b *BoolBuilder) MustNot(c Clause) *BoolBuilder {
	if c == nil {
		return b
	}
	b.mustNot = append(b.mustNot, c)
	return b
}

// SetMinimumShouldMatch sets minimum_should_match on the rendered bool
// query. Zero (the default) omits the key, which is ES's own default of 0
// when must/filter clauses are present and 1 when should is the only
// compartment populated.
func (b *BoolBuilder) SetMinimumShouldMatch(n int) *BoolBuilder {
	b.minimumShouldMatch = n
	return b
}

// Empty reports whether no clause has been added to any compartment.
func (b *BoolBuilder) Empty() bool {
	return len(b.must) == 0 && len(b.should) == 0 && len(b.filter) == 0 && len(b.mustNot) == 0
}

// Build renders the accumulated compartments into a bool query clause,
// e.g. {"bool": {"must": [...], "filter": [...], ...}}. Compartments with
// no clauses are omitted entirely, matching the teacher's pattern of only
// emitting must_not when populated.
func (b *BoolBuilder) Build() Clause {
	boolBody := map[string]interface{}{}

	if len(b.must) > 0 {
		boolBody["must"] = toAny(b.must)
	}
	if len(b.should) > 0 {
		boolBody["should"] = toAny(b.should)
		if b.minimumShouldMatch > 0 {
			boolBody["minimum_should_match"] = b.minimumShouldMatch
		}
	}
	if len(b.filter) > 0 {
		boolBody["filter"] = toAny(b.filter)
	}
	if len(b.mustNot) > 0 {
		boolBody["must_not"] = toAny(b.mustNot)
	}

	return Clause{"bool": boolBody}
}

// BuildQuery wraps Build in the top-level {"query": ...} envelope expected
// by the Elasticsearch Search API. An empty builder produces a
// match_all query, matching the silent no-constraint degrade the planner
// requires when every filter source is absent.
func (b *BoolBuilder) BuildQuery() map[string]interface{} {
	if b.Empty() {
		return map[string]interface{}{
			"query": Clause{"match_all": map[string]interface{}{}},
		}
	}
	return map[string]interface{}{"query": b.Build()}
}

func toAny(clauses []Clause) []map[string]interface{} {
	out := make([]map[string]interface{}, len(clauses))
	for i, c := range clauses {
		out[i] = c
	}
	return out
}

// Term builds a {"term": {field: value}} clause.
func Term(field string, value interface{}) Clause {
	return Clause{"term": map[string]interface{}{field: value}}
}

// Terms builds a {"terms": {field: values}} clause. Returns nil if values
// is empty, so callers can pass the result straight to Must/Should/Filter
// and have it silently degrade to no constraint.
func Terms(field string, values []interface{}) Clause {
	if len(values) == 0 {
		return nil
	}
	return Clause{"terms": map[string]interface{}{field: values}}
}

// Range builds a {"range": {field: {op: value, ...}}} clause.
func Range(field string, bounds map[string]interface{}) Clause {
	if len(bounds) == 0 {
		return nil
	}
	return Clause{"range": map[string]interface{}{field: bounds}}
}

// Exists builds an {"exists": {"field": field}} clause.
func Exists(field string) Clause {
	return Clause{"exists": map[string]interface{}{"field": field}}
}

// QueryString builds a {"query_string": {...}} clause over the given
// fields.
func QueryString(query string, fields []string) Clause {
	if query == "" {
		return nil
	}
	return Clause{
		"query_string": map[string]interface{}{
			"query":            query,
			"fields":           fields,
			"default_operator": "AND",
		},
	}
}

// Nested wraps an inner query in a {"nested": {"path": ..., "query": ...}}
// clause, used for the desired_roles array-of-objects filter.
func Nested(path string, query Clause) Clause {
	if query == nil {
		return nil
	}
	return Clause{
		"nested": map[string]interface{}{
			"path":  path,
			"query": query,
		},
	}
}

// Bool wraps an already-built BoolBuilder result as a sub-clause, for
// nesting a should-group inside a must compartment.
func Bool(b *BoolBuilder) Clause {
	if b == nil || b.Empty() {
		return nil
	}
	return b.Build()
}
