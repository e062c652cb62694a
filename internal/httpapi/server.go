// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/icalialabs/searchspot/internal/auth"
	"github.com/icalialabs/searchspot/internal/monitor"
	"github.com/icalialabs/searchspot/internal/resources"
	"github.com/icalialabs/searchspot/internal/telemetry"
)

// Deps bundles everything the router needs to build its handlers: the
// resource stores, the target ES index, the TOTP verifier, the crash
// monitor, and the structured logger.
type Deps struct {
	Talents *resources.TalentStore
	Scores  *resources.ScoreStore
	Index   string
	Auth    *auth.Verifier
	Monitor monitor.Provider
	Logger  *telemetry.Logger
}

// NewRouter builds the full HTTP surface (§6.1): CORS and panic recovery
// apply to every route; each route additionally requires the read or
// write TOTP scope per §4.G.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Recover(deps.Monitor, deps.Logger))
	r.Use(AccessLog(deps.Logger))

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(deps.Auth, auth.Read))
		r.Get("/talents", SearchableHandler(deps.Talents, deps.Index, deps.Logger))
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(deps.Auth, auth.Write))
		r.Post("/talents", IndexableHandler[resources.Talent](deps.Talents, deps.Index, deps.Logger))
		r.Delete("/talents/{id}", DeletableHandler(deps.Talents, deps.Index, deps.Logger))
		r.Delete("/talents", ResettableHandler(deps.Talents, deps.Index, deps.Logger))
		r.Post("/scores", IndexableHandler[resources.Score](deps.Scores, deps.Index, deps.Logger))
	})

	return r
}
