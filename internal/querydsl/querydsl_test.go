// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package querydsl

import (
	"reflect"
	"testing"
)

func TestBoolBuilderEmptyDegradesToMatchAll(t *testing.T) {
	b := New()
	got := b.BuildQuery()
	want := map[string]interface{}{
		"query": Clause{"match_all": map[string]interface{}{}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildQuery() on empty builder = %#v, want %#v", got, want)
	}
}

func TestBoolBuilderCompartments(t *testing.T) {
	b := New().
		Must(Term("accepted", true)).
		Filter(Range("batch_starts_at", map[string]interface{}{"lte": "now"})).
		MustNot(Term("company_id", 7))

	got := b.Build()
	boolBody, ok := got["bool"].(map[string]interface{})
	if !ok {
		t.Fatalf("Build() missing bool key: %#v", got)
	}
	if _, ok := boolBody["should"]; ok {
		t.Errorf("should compartment should be omitted when empty, got %#v", boolBody)
	}
	if _, ok := boolBody["must"]; !ok {
		t.Errorf("must compartment missing: %#v", boolBody)
	}
	if _, ok := boolBody["filter"]; !ok {
		t.Errorf("filter compartment missing: %#v", boolBody)
	}
	if _, ok := boolBody["must_not"]; !ok {
		t.Errorf("must_not compartment missing: %#v", boolBody)
	}
}

func TestTermsNilOnEmpty(t *testing.T) {
	if c := Terms("work_locations", nil); c != nil {
		t.Errorf("Terms(nil) = %#v, want nil", c)
	}
	b := New().Filter(Terms("work_locations", nil))
	if !b.Empty() {
		t.Errorf("Filter(nil clause) should not add to the builder")
	}
}

func TestMinimumShouldMatch(t *testing.T) {
	b := New().Should(Term("skills", "go")).SetMinimumShouldMatch(1)
	got := b.Build()
	boolBody := got["bool"].(map[string]interface{})
	if boolBody["minimum_should_match"] != 1 {
		t.Errorf("minimum_should_match = %v, want 1", boolBody["minimum_should_match"])
	}
}
