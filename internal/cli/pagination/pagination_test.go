package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vgrid/internal/grid"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  PaginationParams
		wantErr error
		errMsg  string
	}{
		{
			name:   "valid default",
			params: *NewPaginationParams(),
		},
		{
			name:   "valid offset mode",
			params: PaginationParams{Offset: 20, Limit: 10, PageSize: 50},
		},
		{
			name:   "valid offset mode without limit",
			params: PaginationParams{PageSize: 50},
		},
		{
			name:   "negative limit",
			params: PaginationParams{Limit: -1, PageSize: 50},
			errMsg: "limit cannot be negative",
		},
		{
			name:   "negative offset",
			params: PaginationParams{Offset: -1, PageSize: 50},
			errMsg: "offset cannot be negative",
		},
		{
			name:    "negative page",
			params:  PaginationParams{Page: -1, PageSize: 50},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "zero page-size",
			params:  PaginationParams{Page: 1},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "page-size too large",
			params:  PaginationParams{Page: 1, PageSize: MaxPageSize + 1},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "mixed modes",
			params:  PaginationParams{Page: 1, Offset: 10, PageSize: 50},
			wantErr: ErrMixedPaginationModes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantField string
		wantDir   grid.SortDirection
		wantErr   error
	}{
		{name: "empty keeps load order", input: "", wantDir: grid.SortNone},
		{name: "field only", input: "name", wantField: "name", wantDir: grid.SortAsc},
		{name: "explicit asc", input: "name:asc", wantField: "name", wantDir: grid.SortAsc},
		{name: "explicit desc", input: "age:DESC", wantField: "age", wantDir: grid.SortDesc},
		{name: "none", input: "age:none", wantField: "age", wantDir: grid.SortNone},
		{name: "whitespace", input: " city : desc ", wantField: "city", wantDir: grid.SortDesc},
		{name: "too many colons", input: "a:b:c", wantErr: ErrInvalidSortFormat},
		{name: "empty field", input: ":asc", wantErr: ErrEmptySortField},
		{name: "bad order", input: "name:up", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, dir, err := ParseSort(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestPaginationParams_Window(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		total  int
		want   grid.VisibleRange
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 10}, 25, grid.VisibleRange{Start: 0, End: 10}},
		{"last partial page", PaginationParams{Page: 3, PageSize: 10}, 25, grid.VisibleRange{Start: 20, End: 25}},
		{"page past end is capped", PaginationParams{Page: 9, PageSize: 10}, 25, grid.VisibleRange{Start: 20, End: 25}},
		{"empty dataset", PaginationParams{Page: 2, PageSize: 10}, 0, grid.VisibleRange{}},
		{"offset and limit", PaginationParams{Offset: 5, Limit: 3, PageSize: 10}, 25, grid.VisibleRange{Start: 5, End: 8}},
		{"offset without limit", PaginationParams{Offset: 20, PageSize: 10}, 25, grid.VisibleRange{Start: 20, End: 25}},
		{"offset past end", PaginationParams{Offset: 40, Limit: 5, PageSize: 10}, 25, grid.VisibleRange{Start: 25, End: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Window(tt.total))
		})
	}
}

func TestPaginationParams_PageIndex(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1}.PageIndex())
	assert.Equal(t, 4, PaginationParams{Page: 5}.PageIndex())
	assert.Equal(t, 0, PaginationParams{Offset: 30}.PageIndex())
}

func TestCalculateTotalPages(t *testing.T) {
	p := PaginationParams{Page: 1, PageSize: 10}
	assert.Equal(t, 0, p.CalculateTotalPages(0))
	assert.Equal(t, 1, p.CalculateTotalPages(10))
	assert.Equal(t, 3, p.CalculateTotalPages(21))
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		total  int
		want   PaginationMeta
	}{
		{
			name:   "middle page",
			params: PaginationParams{Page: 2, PageSize: 10},
			total:  35,
			want: PaginationMeta{
				CurrentPage: 2, PageSize: 10, TotalPages: 4, TotalItems: 35,
				HasPrevious: true, HasNext: true,
			},
		},
		{
			name:   "capped page reports the last page",
			params: PaginationParams{Page: 99, PageSize: 10},
			total:  35,
			want: PaginationMeta{
				CurrentPage: 4, PageSize: 10, TotalPages: 4, TotalItems: 35,
				HasPrevious: true, HasNext: false,
			},
		},
		{
			name:   "offset mode uses limit as page size",
			params: PaginationParams{Offset: 20, Limit: 10, PageSize: 50},
			total:  35,
			want: PaginationMeta{
				CurrentPage: 3, PageSize: 10, TotalPages: 4, TotalItems: 35,
				HasPrevious: true, HasNext: true,
			},
		},
		{
			name:   "empty",
			params: PaginationParams{Page: 1, PageSize: 10},
			total:  0,
			want:   PaginationMeta{CurrentPage: 1, PageSize: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginationMeta(tt.params, tt.total))
		})
	}
}
