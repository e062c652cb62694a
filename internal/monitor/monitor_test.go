// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"testing"
)

func TestNewReturnsNullWhenDisabled(t *testing.T) {
	p, err := New(Config{Enabled: false, Provider: "sentry"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(NullProvider); !ok {
		t.Errorf("expected NullProvider, got %T", p)
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(Config{Enabled: true, Provider: "carrier-pigeon"})
	if err == nil {
		t.Error("expected an error for an unknown monitor provider")
	}
}

func TestNullProviderNoop(t *testing.T) {
	var p NullProvider
	p.Send(context.Background(), "boom", "handler.go:1")
	p.SendPanic(context.Background(), "boom", []byte("stack"))
}
