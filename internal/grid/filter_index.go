package grid

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/vgrid/internal/batch"
	"github.com/rshade/vgrid/internal/logging"
)

// BroadenThreshold is the word-boundary match count below which a query is re-run
// as an unanchored substring match.
const BroadenThreshold = 50

// indexBatchSize is the number of rows indexed between cancellation checks.
const indexBatchSize = 5000

// FilterEntry pairs a row with its precomputed search text (" v1 v2 ... ").
type FilterEntry struct {
	Row        Row
	SearchText string
}

// FilterIndex holds one FilterEntry per loaded row, addressed by load position.
type FilterIndex struct {
	entries []FilterEntry
	caser   cases.Caser
}

// IndexOption configures BuildFilterIndex.
type IndexOption func(*indexSettings)

type indexSettings struct {
	idField string
}

// WithIdentityField keeps field out of the search text unless a column explicitly
// opts it in as filterable.
func WithIdentityField(field string) IndexOption {
	return func(s *indexSettings) {
		s.idField = field
	}
}

// BuildFilterIndex computes the search text of every row in one pass.
//
// When at least one column is filterable only those columns contribute, in column
// order. Otherwise every field of the row except the identity field contributes:
// declared columns first, then undeclared fields in lexical order.
func BuildFilterIndex(ctx context.Context, rows []Row, columns []ColumnDef, opts ...IndexOption) *FilterIndex {
	ix := &FilterIndex{
		entries: make([]FilterEntry, len(rows)),
		caser:   cases.Lower(language.Und),
	}
	if len(rows) == 0 {
		return ix
	}

	var settings indexSettings
	for _, opt := range opts {
		opt(&settings)
	}
	fields, allFields := searchFields(columns, settings.idField)
	log := logging.FromContext(ctx)

	p, err := batch.NewProcessor[Row](indexBatchSize)
	if err != nil {
		p = batch.NewProcessorWithDefaults[Row]()
	}
	p.WithProgressCallback(func(progress batch.Progress) {
		log.Debug().
			Str("component", "grid").
			Str("operation", "build_filter_index").
			Int("indexed", progress.ProcessedItems).
			Int("total", progress.TotalItems).
			Msg("filter index progress")
	})

	err = p.Process(ctx, rows, func(_ context.Context, chunk []Row, offset int) error {
		var sb strings.Builder
		for i, row := range chunk {
			sb.Reset()
			sb.WriteByte(' ')
			for _, f := range fields {
				sb.WriteString(FormatValue(row[f]))
				sb.WriteByte(' ')
			}
			if allFields {
				for _, f := range row.SortedKeys() {
					if f == settings.idField || ColumnIndex(columns, f) >= 0 {
						continue
					}
					sb.WriteString(FormatValue(row[f]))
					sb.WriteByte(' ')
				}
			}
			ix.entries[offset+i] = FilterEntry{Row: row, SearchText: ix.caser.String(sb.String())}
		}
		return nil
	})
	if err != nil {
		// Cancelled mid-build: rows not yet indexed keep an empty search text and
		// only match the empty query.
		log.Warn().Err(err).Str("component", "grid").Msg("filter index build interrupted")
		for i := range ix.entries {
			if ix.entries[i].Row == nil {
				ix.entries[i] = FilterEntry{Row: rows[i]}
			}
		}
	}

	return ix
}

// searchFields returns the filterable fields, or all declared fields other than
// idField with allFields set when no column is marked filterable.
//
//nolint:nonamedreturns // Named returns document the flag.
func searchFields(columns []ColumnDef, idField string) (fields []string, allFields bool) {
	for _, c := range columns {
		if c.Filterable {
			fields = append(fields, c.Field)
		}
	}
	if len(fields) > 0 {
		return fields, false
	}
	for _, c := range columns {
		if c.Field == idField {
			continue
		}
		fields = append(fields, c.Field)
	}
	return fields, true
}

// Len returns the number of indexed rows.
func (ix *FilterIndex) Len() int {
	return len(ix.entries)
}

// Entry returns the entry at load position i.
func (ix *FilterIndex) Entry(i int) FilterEntry {
	return ix.entries[i]
}

// Normalize lowercases a query the same way search texts were lowercased.
func (ix *FilterIndex) Normalize(query string) string {
	return ix.caser.String(query)
}

// Query returns the positions from order whose entries match query, in the order given.
//
// The first pass requires the query to start a token (" " + query). When that yields
// fewer than BroadenThreshold rows, the unanchored substring match is returned instead;
// it is always a superset of the first pass. The empty query matches every row.
func (ix *FilterIndex) Query(query string, order []int) []int {
	q := ix.Normalize(query)
	if q == "" {
		return append([]int(nil), order...)
	}

	narrow := ix.match(order, " "+q)
	if len(narrow) >= BroadenThreshold {
		return narrow
	}
	return ix.match(order, q)
}

func (ix *FilterIndex) match(order []int, needle string) []int {
	out := make([]int, 0, len(order))
	for _, pos := range order {
		if pos < 0 || pos >= len(ix.entries) {
			continue
		}
		if strings.Contains(ix.entries[pos].SearchText, needle) {
			out = append(out, pos)
		}
	}
	return out
}
