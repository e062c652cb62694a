// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// sentryProvider forwards reports to Sentry, the Go-ecosystem stand-in
// for a Rollbar-like crash monitor (searchspot's original target had no
// direct Go client in the pack).
type sentryProvider struct {
	environment string
}

func newSentryProvider(cfg Config) (Provider, error) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.AccessToken,
		Environment: cfg.Environment,
	}); err != nil {
		return nil, fmt.Errorf("monitor: failed to initialize sentry: %w", err)
	}
	return &sentryProvider{environment: cfg.Environment}, nil
}

func (p *sentryProvider) Send(ctx context.Context, message, location string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("location", location)
		scope.SetTag("environment", p.environment)
		sentry.CaptureMessage(message)
	})
}

func (p *sentryProvider) SendPanic(ctx context.Context, recovered interface{}, stack []byte) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetExtra("stack", string(stack))
		scope.SetTag("environment", p.environment)
		sentry.CurrentHub().Recover(recovered)
	})
	// Panic reports must land before the handler re-raises or continues,
	// so block briefly for delivery rather than relying on process exit
	// to flush the transport.
	sentry.Flush(2 * time.Second)
}
