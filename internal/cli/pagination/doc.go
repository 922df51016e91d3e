// Package pagination provides utilities for CLI pagination and sorting flags.
//
// This package contains the pagination logic shared by vgrid commands that print rows:
//   - PaginationParams: CLI flag parsing and validation
//   - PaginationMeta: Response metadata for paginated results
//   - ParseSort: "field[:asc|desc]" sort expressions mapped onto grid sort directions
//
// Pages are 1-based on the command line and 0-based (pageIndex) inside the grid.
package pagination
