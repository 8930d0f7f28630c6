// Package source provides thin readers over the four source kinds:
// embedded sqlite database files, semicolon-delimited text, xlsx sheets,
// and the BigQuery warehouse. Readers return raw frames; all
// normalization happens in the extract package.
package source

import "errors"

// ErrConnectorUnavailable marks a file-backed source that cannot be
// reached (unconfigured path, missing file, missing driver capability).
// Callers with a fallback path must treat it as recoverable.
var ErrConnectorUnavailable = errors.New("source: connector unavailable")

// ErrWarehouseUnavailable marks a warehouse query that cannot run
// because no project id is configured or the client cannot be built.
var ErrWarehouseUnavailable = errors.New("source: warehouse unavailable")
