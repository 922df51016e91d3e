package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/vgrid/internal/grid"
)

// Pagination defaults and validation limits.
const (
	DefaultPage     = 1
	MinPage         = 1
	DefaultPageSize = grid.DefaultPageSize
	MinPageSize     = 1
	MaxPageSize     = 10000
)

// Common validation errors.
var (
	ErrInvalidPageSize      = errors.New("page-size must be between 1 and 10000")
	ErrInvalidPage          = errors.New("page must be >= 1, or 0 for offset mode")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc', 'desc' or 'none'")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
)

// PaginationParams holds CLI pagination flags and provides validation.
// Supports two pagination modes:
//   - Page-based: --page and --page-size (the default)
//   - Offset-based: --offset and --limit
//
// These modes are mutually exclusive.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Page is the 1-based page number (page-based mode).
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// Offset is the number of rows to skip (offset-based mode).
	Offset int

	// Limit caps the number of rows returned in offset-based mode. 0 means no cap.
	Limit int

	// SortField is the column field to sort by. Empty keeps load order.
	SortField string

	// SortDir is the sort direction for SortField.
	SortDir grid.SortDirection
}

// NewPaginationParams creates a PaginationParams showing the first default-sized page.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Validate checks if the pagination parameters are valid and consistent (value receiver).
func (p PaginationParams) Validate() error {
	if p.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if p.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// A bare field sorts ascending; an empty string keeps load order.
// Examples: "name", "age:desc", "city:none"
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field string, dir grid.SortDirection, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", grid.SortNone, nil
	}

	parts := strings.Split(sortStr, ":")
	order := string(grid.SortAsc)
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.TrimSpace(parts[1])
	default:
		return "", grid.SortNone, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", grid.SortNone, ErrEmptySortField
	}

	dir, ok := grid.ParseSortDirection(order)
	if !ok {
		return "", grid.SortNone, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, dir, nil
}

// IsPageBased returns true if page-based pagination is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// PageIndex returns the 0-based page index used by the grid, or 0 in offset mode.
func (p PaginationParams) PageIndex() int {
	if !p.IsPageBased() {
		return 0
	}
	return p.Page - 1
}

// CalculateTotalPages calculates the total number of pages given a total row count.
func (p PaginationParams) CalculateTotalPages(totalResults int) int {
	if totalResults == 0 || p.PageSize <= 0 {
		return 0
	}
	pages := totalResults / p.PageSize
	if totalResults%p.PageSize > 0 {
		pages++
	}
	return pages
}

// Window returns the row range selected by the parameters over total rows.
// A page past the end is capped to the last page; an offset past the end yields
// an empty range.
func (p PaginationParams) Window(total int) grid.VisibleRange {
	if total <= 0 {
		return grid.VisibleRange{}
	}

	if p.IsPageBased() {
		start := p.PageIndex() * p.PageSize
		if start >= total {
			start = (p.CalculateTotalPages(total) - 1) * p.PageSize
		}
		return grid.VisibleRange{Start: start, End: start + p.PageSize}.Clamp(total)
	}

	end := total
	if p.Limit > 0 {
		end = p.Offset + p.Limit
	}
	return grid.VisibleRange{Start: p.Offset, End: end}.Clamp(total)
}
