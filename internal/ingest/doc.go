// Package ingest reads tabular files into grid rows.
//
// Supported inputs are JSON (an array of objects, a single object, or a stream of
// objects), NDJSON, YAML (a sequence of mappings or a single mapping) and delimited
// text (CSV, TSV, or any single-character separator). Field order follows the source:
// the CSV header or the key order of the first document that mentions a field.
//
// Several files can be read concurrently with LoadFiles; their rows are concatenated
// in argument order.
package ingest
