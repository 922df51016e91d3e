// Package batch walks large slices in fixed-size chunks.
//
// Chunking keeps long single-pass jobs (such as building the filter index for
// hundreds of thousands of rows) cancellable between chunks and lets callers report
// progress without the job itself knowing about logging or UI.
package batch
