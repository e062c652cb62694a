// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry provides structured, trace-correlated logging. It
// replaces bare log.Printf calls throughout the service with JSON lines
// that carry the service name and, when the call happens inside a traced
// request, the active trace/span IDs.
package telemetry

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/icalialabs/searchspot/internal/monitor"
)

// Logger emits structured log lines and, for Error, additionally forwards
// the message to the configured crash Monitor — the error-level log path
// the monitor's error-report sink is wired to (§4.I).
type Logger struct {
	serviceName string
	monitor     monitor.Provider
}

// New creates a Logger. monitor may be nil, in which case Error only logs
// and does not attempt to forward the report.
func New(serviceName string, m monitor.Provider) *Logger {
	return &Logger{serviceName: serviceName, monitor: m}
}

func (l *Logger) Info(ctx context.Context, msg string, attrs ...attribute.KeyValue) {
	l.logWithLevel(ctx, "INFO", msg, attrs...)
}

func (l *Logger) Warn(ctx context.Context, msg string, attrs ...attribute.KeyValue) {
	l.logWithLevel(ctx, "WARN", msg, attrs...)
}

// Error logs at error level and, when a monitor is configured, also sends
// the message and its call-site location to the monitor.
func (l *Logger) Error(ctx context.Context, location, msg string, attrs ...attribute.KeyValue) {
	l.logWithLevel(ctx, "ERROR", msg, attrs...)
	if l.monitor != nil {
		l.monitor.Send(ctx, msg, location)
	}
}

func (l *Logger) Debug(ctx context.Context, msg string, attrs ...attribute.KeyValue) {
	l.logWithLevel(ctx, "DEBUG", msg, attrs...)
}

func (l *Logger) logWithLevel(ctx context.Context, level, msg string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	traceID, spanID := "", ""
	if span.SpanContext().IsValid() {
		traceID = span.SpanContext().TraceID().String()
		spanID = span.SpanContext().SpanID().String()
	}

	attrStr := ""
	for _, attr := range attrs {
		attrStr += " " + string(attr.Key) + "=" + attr.Value.Emit()
	}

	log.Printf(`{"timestamp":"%s","level":"%s","service":"%s","message":"%s","trace_id":"%s","span_id":"%s"%s}`,
		time.Now().UTC().Format(time.RFC3339Nano),
		level,
		l.serviceName,
		msg,
		traceID,
		spanID,
		attrStr,
	)
}
