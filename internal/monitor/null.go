// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package monitor

import "context"

// NullProvider discards every report. Used when monitoring is disabled
// or unconfigured.
type NullProvider struct{}

func (NullProvider) Send(ctx context.Context, message, location string)            {}
func (NullProvider) SendPanic(ctx context.Context, recovered interface{}, stack []byte) {}
