// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package httpapi wires the four generic resource-operation handlers
// (search, index, delete, reset) to chi routes, following
// original_source/src/server.rs's SearchableHandler/IndexableHandler/
// DeletableHandler/ResettableHandler shape — here expressed with Go
// generic type parameters over the resource's document type instead of
// Rust's PhantomData<R>.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/icalialabs/searchspot/internal/resources"
	"github.com/icalialabs/searchspot/internal/telemetry"
)

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Searcher is the capability SearchableHandler needs; resources.TalentStore
// satisfies it directly.
type Searcher interface {
	Search(ctx context.Context, index string, params url.Values) (resources.SearchResults, error)
}

// SearchableHandler handles GET requests: run the resource's search and
// encode SearchResults as JSON with status 200. Engine read failures are
// logged and degrade to an empty result set rather than surfacing an
// error to the client (§7 Engine read errors); authentication is applied
// by the RequireAuth route middleware, not here.
func SearchableHandler(store Searcher, index string, logger *telemetry.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := store.Search(r.Context(), index, r.URL.Query())
		if err != nil {
			if logger != nil {
				logger.Error(r.Context(), "httpapi.SearchableHandler", err.Error())
			}
			results = resources.SearchResults{Talents: []resources.SearchResult{}}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(results)
	}
}

// Indexer is the capability IndexableHandler needs, parameterized over
// the resource's document type.
type Indexer[T any] interface {
	IndexAll(ctx context.Context, index string, items []T) error
}

// IndexableHandler handles POST requests: decode a JSON array of T from
// the body, bulk-index it, and respond 201 empty on success or 422
// {error} on decode or engine failure.
func IndexableHandler[T any](store Indexer[T], index string, logger *telemetry.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []T
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, "invalid request body")
			return
		}

		if err := store.IndexAll(r.Context(), index, items); err != nil {
			if logger != nil {
				logger.Error(r.Context(), "httpapi.IndexableHandler", err.Error())
			}
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}

// Deleter is the capability DeletableHandler needs.
type Deleter interface {
	DeleteByID(ctx context.Context, index string, id int64) error
}

// DeletableHandler handles DELETE /:id requests, responding 204 empty on
// success or 422 {error} on engine failure.
func DeletableHandler(store Deleter, index string, logger *telemetry.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, "invalid id")
			return
		}

		if err := store.DeleteByID(r.Context(), index, id); err != nil {
			if logger != nil {
				logger.Error(r.Context(), "httpapi.DeletableHandler", err.Error())
			}
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// Resettable is the capability ResettableHandler needs.
type Resettable interface {
	DeleteIndex(ctx context.Context, index string) error
}

// ResettableHandler handles DELETE (no id) requests that drop every
// document in the index, responding 204 empty on success or 422 {error}
// on engine failure.
func ResettableHandler(store Resettable, index string, logger *telemetry.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteIndex(r.Context(), index); err != nil {
			if logger != nil {
				logger.Error(r.Context(), "httpapi.ResettableHandler", err.Error())
			}
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
