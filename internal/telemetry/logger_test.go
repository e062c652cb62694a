// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"testing"
)

type recordingMonitor struct {
	messages  []string
	locations []string
}

func (r *recordingMonitor) Send(ctx context.Context, message, location string) {
	r.messages = append(r.messages, message)
	r.locations = append(r.locations, location)
}

func (r *recordingMonitor) SendPanic(ctx context.Context, recovered interface{}, stack []byte) {}

func TestErrorForwardsToMonitor(t *testing.T) {
	m := &recordingMonitor{}
	logger := New("searchspot", m)

	logger.Error(context.Background(), "handlers.go:42", "engine write failed")

	if len(m.messages) != 1 || m.messages[0] != "engine write failed" {
		t.Errorf("monitor.Send messages = %v, want [\"engine write failed\"]", m.messages)
	}
	if len(m.locations) != 1 || m.locations[0] != "handlers.go:42" {
		t.Errorf("monitor.Send locations = %v, want [\"handlers.go:42\"]", m.locations)
	}
}

func TestInfoDoesNotForwardToMonitor(t *testing.T) {
	m := &recordingMonitor{}
	logger := New("searchspot", m)

	logger.Info(context.Background(), "starting up")

	if len(m.messages) != 0 {
		t.Errorf("Info should not forward to monitor, got %v", m.messages)
	}
}

func TestNilMonitorIsSafe(t *testing.T) {
	logger := New("searchspot", nil)
	logger.Error(context.Background(), "x.go:1", "boom")
}
