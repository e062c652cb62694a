// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package index defines the talent index's analyzer chain, field
// mappings, and the reset lifecycle that (re)creates it.
package index

// DefaultName is the conventional name of the talent index. Requests that
// do not set the "index" query parameter target the configured es.index;
// nothing in the service reads this constant.
const DefaultName = "talents"

// DocType is the legacy talent document type name. Bulk index metadata
// carries only _index and _id; this constant is not sent to the engine.
const DocType = "talent"
