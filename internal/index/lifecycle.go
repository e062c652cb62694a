// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"context"

	"github.com/icalialabs/searchspot/internal/engine"
)

// Reset idempotently (re)creates the talent index: a best-effort delete
// followed by a mapping+settings create carrying the trigram analyzer
// chain. Renaming a field here must be mirrored in the query planner,
// since the planner's field names are only valid against this mapping.
func Reset(ctx context.Context, client *engine.Client, index string) error {
	if err := client.DeleteIndex(ctx, index); err != nil {
		return err
	}
	return client.CreateMapping(ctx, index, engine.MappingRequest{
		Settings: settings(),
		Mappings: mappings(),
	})
}

func settings() map[string]interface{} {
	return map[string]interface{}{
		"number_of_shards": 1,
		"analysis": map[string]interface{}{
			"filter": map[string]interface{}{
				"trigrams_filter": map[string]interface{}{
					"type":     "ngram",
					"min_gram": 2,
					"max_gram": 20,
				},
				"words_splitter": map[string]interface{}{
					"type":               "word_delimiter",
					"preserve_original":  true,
					"catenate_all":       true,
				},
				"english_words_filter": map[string]interface{}{
					"type":      "stop",
					"stopwords": "_english_",
				},
				"tech_words_filter": map[string]interface{}{
					"type":      "stop",
					"stopwords": []string{"js"},
				},
				"strip_js": map[string]interface{}{
					"type":        "pattern_replace",
					"pattern":     "\\.?js$",
					"replacement": "",
				},
				"protect_keywords": map[string]interface{}{
					"type":           "keyword_marker",
					"keywords":       []string{"C++", "C#"},
					"ignore_case":    true,
				},
			},
			"analyzer": map[string]interface{}{
				"trigrams": map[string]interface{}{
					"type":      "custom",
					"tokenizer": "whitespace",
					"filter": []string{
						"lowercase", "words_splitter", "trigrams_filter",
						"english_words_filter", "tech_words_filter",
					},
				},
				"words": map[string]interface{}{
					"type":      "custom",
					"tokenizer": "keyword",
					"filter": []string{
						"lowercase", "words_splitter", "english_words_filter", "tech_words_filter",
					},
				},
				"keywords": map[string]interface{}{
					"type":      "custom",
					"tokenizer": "standard",
					"filter": []string{
						"lowercase", "protect_keywords", "trim", "english_words_filter", "strip_js",
					},
				},
			},
		},
	}
}

// trigramAnalyzedFields carry the trigrams analyzer at index time and a
// words search analyzer, plus a not_analyzed .raw sibling field.
var trigramAnalyzedFields = []string{
	"desired_work_roles", "work_experiences", "educations",
}

// multiFieldTextFields additionally carry a .keyword subfield using the
// keywords analyzer.
var multiFieldTextFields = []string{"skills", "summary", "headline"}

var notAnalyzedIntegerFields = []string{
	"id", "contacted_company_ids", "blocked_companies", "weight",
}

var notAnalyzedKeywordFields = []string{
	"desired_work_roles_vanilla", "desired_work_roles_experience",
	"professional_experience", "work_locations", "languages",
	"current_location", "work_authorization", "avatar_url", "latest_position",
}

var dateFields = []string{"batch_starts_at", "batch_ends_at", "added_to_batch_at"}

func mappings() map[string]interface{} {
	properties := map[string]interface{}{}

	for _, f := range notAnalyzedIntegerFields {
		properties[f] = map[string]interface{}{"type": "integer", "index": true}
	}
	for _, f := range notAnalyzedKeywordFields {
		properties[f] = map[string]interface{}{"type": "keyword"}
	}
	for _, f := range dateFields {
		properties[f] = map[string]interface{}{"type": "date", "format": "date_optional_time"}
	}

	properties["accepted"] = map[string]interface{}{"type": "boolean"}

	for _, f := range trigramAnalyzedFields {
		properties[f] = map[string]interface{}{
			"type":            "text",
			"analyzer":        "trigrams",
			"search_analyzer": "words",
			"fields": map[string]interface{}{
				"raw": map[string]interface{}{"type": "keyword"},
			},
		}
	}

	for _, f := range multiFieldTextFields {
		properties[f] = map[string]interface{}{
			"type":            "text",
			"analyzer":        "trigrams",
			"search_analyzer": "words",
			"fields": map[string]interface{}{
				"raw":     map[string]interface{}{"type": "keyword"},
				"keyword": map[string]interface{}{"type": "text", "analyzer": "keywords"},
			},
		}
	}

	properties["salary_expectations"] = map[string]interface{}{
		"type": "nested",
		"properties": map[string]interface{}{
			"minimum":  map[string]interface{}{"type": "long"},
			"currency": map[string]interface{}{"type": "keyword"},
			"city":     map[string]interface{}{"type": "keyword"},
		},
	}

	properties["desired_roles"] = map[string]interface{}{
		"type": "nested",
		"properties": map[string]interface{}{
			"role":       map[string]interface{}{"type": "keyword"},
			"experience": map[string]interface{}{"type": "keyword"},
		},
	}

	return map[string]interface{}{"properties": properties}
}
