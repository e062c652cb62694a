// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/icalialabs/searchspot/internal/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSSetsHeadersAndHandlesPreflight(t *testing.T) {
	handler := CORS(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/talents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Allow-Origin = %q, want *", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRequireAuthBypassesWhenDisabled(t *testing.T) {
	verifier := &auth.Verifier{Enabled: false}
	handler := RequireAuth(verifier, auth.Read)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/talents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when auth disabled", rec.Code)
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	verifier := &auth.Verifier{Enabled: true, ReadSecret: "JBSWY3DPEHPK3PXP", ReadLifetime: 30 * time.Second}
	handler := RequireAuth(verifier, auth.Read)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/talents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestRequireAuthAcceptsValidCode(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"
	verifier := &auth.Verifier{Enabled: true, ReadSecret: secret, ReadLifetime: 30 * time.Second}
	handler := RequireAuth(verifier, auth.Read)(okHandler())

	code, err := totp.GenerateCodeCustom(secret, time.Now(), totp.ValidateOpts{
		Period: 30, Skew: 0, Digits: otp.DigitsSix, Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		t.Fatalf("failed to generate code: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/talents", nil)
	req.Header.Set("Authorization", "token "+code)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a valid code", rec.Code)
	}
}

func TestRecoverConvertsPanicTo500(t *testing.T) {
	handler := Recover(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/talents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestRequestIDSetsUniqueHeaderPerRequest(t *testing.T) {
	handler := RequestID(okHandler())

	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, httptest.NewRequest(http.MethodGet, "/talents", nil))

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/talents", nil))

	id1, id2 := rec1.Header().Get("X-Request-Id"), rec2.Header().Get("X-Request-Id")
	if id1 == "" || id2 == "" {
		t.Fatal("expected X-Request-Id to be set on both responses")
	}
	if id1 == id2 {
		t.Error("expected distinct request ids across requests")
	}
}
