// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package monitor is a pluggable panic/error-report sink. A null
// implementation no-ops; a network implementation forwards to a
// rollbar-like crash-reporting service (here, Sentry). Selecting a
// network provider by an unrecognised name is a fatal configuration
// error, matching the fail-fast posture the rest of configuration loading
// uses.
package monitor

import (
	"context"
	"fmt"
)

// Provider is the crash-monitor capability: send an error-level message
// with its source location, and forward a recovered panic plus its stack
// trace.
type Provider interface {
	Send(ctx context.Context, message, location string)
	SendPanic(ctx context.Context, recovered interface{}, stack []byte)
}

// Config mirrors the optional [monitor] configuration section.
type Config struct {
	Provider    string
	Enabled     bool
	AccessToken string
	Environment string
}

// New resolves Config into a Provider. An empty or disabled config yields
// the null provider. An unknown provider name is a fatal configuration
// error — the caller should abort startup rather than serve traffic
// without the monitor it was told to use.
func New(cfg Config) (Provider, error) {
	if !cfg.Enabled || cfg.Provider == "" {
		return NullProvider{}, nil
	}

	switch cfg.Provider {
	case "sentry", "rollbar":
		return newSentryProvider(cfg)
	default:
		return nil, fmt.Errorf("monitor: unknown provider %q", cfg.Provider)
	}
}
