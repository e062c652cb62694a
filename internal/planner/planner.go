// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package planner translates a coerced query-string parameter map into the
// engine's boolean query tree, sort/paging options, and highlighting
// configuration. It is the hard center of the service: every filter
// source degrades silently on bad or missing input rather than failing
// the request.
package planner

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/icalialabs/searchspot/internal/params"
	"github.com/icalialabs/searchspot/internal/querydsl"
)

// keywordFields is the six-field list the full-text keyword clause and
// highlighting both search against.
var keywordFields = []string{
	"skills", "summary", "headline", "desired_work_roles", "work_experiences", "educations",
}

// keywordAnalyzedFields is the subset that additionally carries a
// .keyword multi-field, per the index mapping.
var keywordAnalyzedFields = map[string]bool{
	"summary": true, "headline": true, "skills": true,
}

const (
	featureNoFulltextSearch = "no_fulltext_search"
	featureKeywordsShould   = "keywords_should"

	defaultPerPage = 10
	minScoreWhenKeywordsPresent = 0.56
)

// Plan is the fully assembled query, ready to hand to the engine client.
type Plan struct {
	Query              map[string]interface{}
	Index              string
	From               int
	Size               int
	Sort               []map[string]interface{}
	MinScore           float64
	TrackScores        bool
	Highlight          map[string]interface{}
	CaptureRequestBody bool
}

// Build assembles a Plan from raw query-string parameters and the
// reference instant used as "now" for batch-window visibility.
func Build(values url.Values, now time.Time) Plan {
	b := querydsl.New()

	noFulltext := hasFeature(values, featureNoFulltextSearch)
	keywordsShould := hasFeature(values, featureKeywordsShould)

	keyword, quoted := keywordValue(values)

	addLanguageFilters(b, values)
	addTermsFilters(b, values)
	addVisibilityFilter(b, values, now)
	addDesiredRoleFilter(b, values)
	addSalaryFilter(b, values)
	addExclusions(b, values)
	addBookmarkedTalents(b, values)

	keywordClause := keywordClause(keyword, quoted, noFulltext)
	if keywordClause != nil {
		if keywordsShould {
			b.Should(keywordClause)
		} else {
			b.Must(keywordClause)
		}
	}

	plan := Plan{
		Query: b.BuildQuery(),
		Index: params.Scalar(values, "index"),
	}

	plan.From, plan.Size = paging(values)

	if keywordClause != nil {
		plan.MinScore = minScoreWhenKeywordsPresent
		plan.TrackScores = true
		plan.Highlight = highlightConfig(quoted, noFulltext)
	} else {
		plan.Sort = defaultSort()
	}

	if params.Scalar(values, "debug_es_query") == "true" {
		plan.CaptureRequestBody = true
	}

	return plan
}

func hasFeature(values url.Values, name string) bool {
	for _, f := range params.VecFromParams(values, "features") {
		if f == name {
			return true
		}
	}
	return false
}

func keywordValue(values url.Values) (keyword string, quoted bool) {
	keyword = params.Scalar(values, "keywords")
	if keyword == "" {
		return "", false
	}
	return keyword, strings.Contains(keyword, `"`)
}

func fieldName(base string, quoted, noFulltext bool) string {
	name := base
	if noFulltext && keywordAnalyzedFields[base] {
		name += ".keyword"
	}
	if quoted {
		name += ".raw"
	}
	return name
}

func keywordClause(keyword string, quoted, noFulltext bool) querydsl.Clause {
	if keyword == "" {
		return nil
	}
	fields := make([]string, len(keywordFields))
	for i, f := range keywordFields {
		fields[i] = fieldName(f, quoted, noFulltext)
	}
	return querydsl.QueryString(keyword, fields)
}

func highlightConfig(quoted, noFulltext bool) map[string]interface{} {
	fieldsCfg := make(map[string]interface{}, len(keywordFields))
	settings := map[string]interface{}{
		"type":        "plain",
		"term_vector": "with_positions_offsets",
	}
	for _, f := range keywordFields {
		fieldsCfg[fieldName(f, quoted, noFulltext)] = settings
	}
	return map[string]interface{}{
		"encoder":       "html",
		"pre_tags":      []string{""},
		"post_tags":     []string{""},
		"fragment_size": 1,
		"fields":        fieldsCfg,
	}
}

func addLanguageFilters(b *querydsl.BoolBuilder, values url.Values) {
	for _, lang := range params.VecFromParams(values, "languages") {
		if lang == "" {
			continue
		}
		b.Must(querydsl.Term("languages", lang))
	}
}

func addTermsFilters(b *querydsl.BoolBuilder, values url.Values) {
	orFields := []string{"professional_experience", "work_authorization", "work_locations", "current_location"}
	for _, field := range orFields {
		vals := toAnySlice(params.VecFromParams(values, field))
		if c := querydsl.Terms(field, vals); c != nil {
			b.Must(c)
		}
	}
}

func addBookmarkedTalents(b *querydsl.BoolBuilder, values url.Values) {
	ids := params.I32VecFromParams(values, "bookmarked_talents")
	if c := querydsl.Terms("id", i32SliceToAny(ids)); c != nil {
		b.Filter(c)
	}
}

func addVisibilityFilter(b *querydsl.BoolBuilder, values url.Values, now time.Time) {
	epochStr := params.Scalar(values, "epoch")
	epochPresent := epochStr != ""

	var visibility querydsl.Clause
	if epochPresent {
		visibility = querydsl.New().
			Must(querydsl.Term("accepted", true)).
			Must(querydsl.Term("batch_starts_at", epochStr)).
			Build()
	} else {
		ref := now.UTC().Format(time.RFC3339)
		visibility = querydsl.New().
			Must(querydsl.Term("accepted", true)).
			Must(querydsl.Range("batch_starts_at", map[string]interface{}{"lte": ref})).
			Must(querydsl.Range("batch_ends_at", map[string]interface{}{"gte": ref})).
			Build()
	}

	presented := params.I32VecFromParams(values, "presented_talents")
	if len(presented) == 0 {
		b.Must(visibility)
		return
	}

	presentedClause := querydsl.New().Must(querydsl.Terms("id", i32SliceToAny(presented))).Build()
	b.Must(querydsl.New().Should(visibility).Should(presentedClause).SetMinimumShouldMatch(1).Build())
}

// experienceBands is the band ladder in ascending order; it matches the
// Band values stored in desired_roles.experience.
var experienceBands = []string{"0..1", "1..2", "2..4", "4..6", "6..8", "8+"}

// bandsAtLeast maps a minimum-years bound onto the set of experience bands
// that satisfy "at least min years", per the fixed ladder.
func bandsAtLeast(min int) []string {
	switch {
	case min <= 1:
		return experienceBands[0:]
	case min == 2:
		return experienceBands[1:]
	case min == 3, min == 4:
		return experienceBands[2:]
	case min == 5, min == 6:
		return experienceBands[3:]
	case min == 7, min == 8:
		return experienceBands[4:]
	default:
		return experienceBands[5:]
	}
}

func addDesiredRoleFilter(b *querydsl.BoolBuilder, values url.Values) {
	items := params.VecFromParams(values, "desired_work_roles")
	if len(items) == 0 {
		return
	}

	roleGroup := querydsl.New()
	for _, item := range items {
		parts := strings.Split(item, ":")
		role := parts[0]
		if role == "" {
			continue
		}

		if len(parts) == 1 {
			roleGroup.Should(querydsl.Term("desired_work_roles.raw", role))
			continue
		}

		min, ok := parseNonNegativeInt(parts[1])
		if !ok {
			roleGroup.Should(querydsl.Term("desired_work_roles.raw", role))
			continue
		}

		if len(parts) >= 3 {
			if max, ok := parseNonNegativeInt(parts[2]); ok && max < min {
				// max < min is not a meaningful bound; ignore the upper
				// bound but keep the role's minimum-experience filter.
				_ = max
			}
		}

		bandGroup := querydsl.New()
		for _, band := range bandsAtLeast(min) {
			bandGroup.Should(querydsl.Nested("desired_roles", querydsl.New().
				Must(querydsl.Term("desired_roles.role", role)).
				Must(querydsl.Term("desired_roles.experience", band)).
				Build()))
		}
		bandGroup.SetMinimumShouldMatch(1)
		roleGroup.Should(bandGroup.Build())
	}
	roleGroup.SetMinimumShouldMatch(1)

	if !roleGroup.Empty() {
		b.Filter(roleGroup.Build())
	}
}

func addSalaryFilter(b *querydsl.BoolBuilder, values url.Values) {
	maxSalary, ok := params.ScalarU64(values, "maximum_salary")
	if !ok {
		return
	}

	locations := params.VecFromParams(values, "work_locations")

	if len(locations) == 0 {
		b.Filter(querydsl.Nested("salary_expectations",
			querydsl.New().Must(querydsl.Range("salary_expectations.minimum", map[string]interface{}{"lte": maxSalary})).Build()))
		return
	}

	locationGroup := querydsl.New()
	for _, loc := range locations {
		if loc == "" {
			continue
		}
		locationGroup.Should(querydsl.Nested("salary_expectations",
			querydsl.New().
				Must(querydsl.Range("salary_expectations.minimum", map[string]interface{}{"lte": maxSalary})).
				Must(querydsl.Term("salary_expectations.city", loc)).
				Build()))
	}
	locationGroup.SetMinimumShouldMatch(1)
	if !locationGroup.Empty() {
		b.Filter(locationGroup.Build())
	}
}

func addExclusions(b *querydsl.BoolBuilder, values url.Values) {
	if companyID, ok := params.ScalarI32(values, "company_id"); ok {
		b.MustNot(querydsl.Term("contacted_company_ids", companyID))
		b.MustNot(querydsl.Term("blocked_companies", companyID))
	}

	if c := querydsl.Terms("id", i32SliceToAny(params.I32VecFromParams(values, "contacted_talents"))); c != nil {
		b.MustNot(c)
	}
	if c := querydsl.Terms("id", i32SliceToAny(params.I32VecFromParams(values, "ignored_talents"))); c != nil {
		b.MustNot(c)
	}
}

func defaultSort() []map[string]interface{} {
	return []map[string]interface{}{
		{"batch_starts_at": map[string]interface{}{"order": "desc", "unmapped_type": "date"}},
		{"weight": map[string]interface{}{"order": "desc", "unmapped_type": "long"}},
		{"added_to_batch_at": map[string]interface{}{"order": "desc", "unmapped_type": "date"}},
	}
}

func paging(values url.Values) (from, size int) {
	from = 0
	if v, ok := params.ScalarU64(values, "offset"); ok {
		from = int(v)
	}

	size = defaultPerPage
	if v, ok := params.ScalarU64(values, "per_page"); ok && v != 0 {
		size = int(v)
	}
	return from, size
}

func parseNonNegativeInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func toAnySlice(ss []string) []interface{} {
	out := make([]interface{}, 0, len(ss))
	for _, s := range ss {
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func i32SliceToAny(vs []int32) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
