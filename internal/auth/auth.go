// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package auth verifies the RFC 6238 TOTP codes carried in the
// "Authorization: token <code>" header, against separate read and write
// secrets.
package auth

import (
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Scope distinguishes the read-secret and write-secret verification paths.
type Scope int

const (
	Read Scope = iota
	Write
)

// Verifier validates TOTP codes for both scopes. Enabled gates the check
// entirely — when false every request is authorized without inspecting
// the header, matching auth.enabled = false in configuration.
type Verifier struct {
	Enabled       bool
	ReadSecret    string
	WriteSecret   string
	ReadLifetime  time.Duration
	WriteLifetime time.Duration
}

// ExtractToken pulls the 6-digit code out of an "Authorization: token
// <code>" header value. Returns ("", false) for any other shape.
func ExtractToken(header string) (string, bool) {
	const prefix = "token "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	code := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if code == "" {
		return "", false
	}
	return code, true
}

// Verify checks code against the secret for scope, using the configured
// lifetime as the TOTP step size. A disabled verifier always succeeds.
func (v *Verifier) Verify(scope Scope, code string) bool {
	if !v.Enabled {
		return true
	}

	secret, lifetime := v.ReadSecret, v.ReadLifetime
	if scope == Write {
		secret, lifetime = v.WriteSecret, v.WriteLifetime
	}
	if lifetime <= 0 {
		lifetime = 30 * time.Second
	}

	ok, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    uint(lifetime.Seconds()),
		Skew:      0,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return ok
}
