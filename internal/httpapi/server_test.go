// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/icalialabs/searchspot/internal/auth"
	"github.com/icalialabs/searchspot/internal/monitor"
	"github.com/icalialabs/searchspot/internal/telemetry"
)

func TestNewRouterRejectsWriteRouteWithoutAuth(t *testing.T) {
	verifier := &auth.Verifier{Enabled: true, ReadSecret: "r", WriteSecret: "w"}
	logger := telemetry.New("searchspot-test", monitor.NullProvider{})

	router := NewRouter(Deps{Auth: verifier, Monitor: monitor.NullProvider{}, Logger: logger, Index: "talents"})

	req := httptest.NewRequest(http.MethodPost, "/talents", strings.NewReader(`[]`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestNewRouterAllowsPreflightWithoutAuth(t *testing.T) {
	verifier := &auth.Verifier{Enabled: true, ReadSecret: "r", WriteSecret: "w"}
	logger := telemetry.New("searchspot-test", monitor.NullProvider{})

	router := NewRouter(Deps{Auth: verifier, Monitor: monitor.NullProvider{}, Logger: logger, Index: "talents"})

	req := httptest.NewRequest(http.MethodOptions, "/talents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for CORS preflight", rec.Code)
	}
}
