package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/vgrid/internal/grid"
	"github.com/rshade/vgrid/internal/logging"
)

// Format identifies an input file format.
type Format string

// Supported formats.
const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
	FormatTSV    Format = "tsv"
)

// StdinPath reads from standard input.
const StdinPath = "-"

// Common ingest errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrNotTabular        = errors.New("input is not a list of records")
	ErrNoInput           = errors.New("no input files")
)

// Dataset is the result of reading one or more inputs.
type Dataset struct {
	// Fields lists every field in first-seen order.
	Fields []string
	Rows   []grid.Row
}

// Columns returns one column per field, titled by its name.
func (d *Dataset) Columns() []grid.ColumnDef {
	return grid.ColumnsFromFields(d.Fields)
}

// Options controls how inputs are read.
type Options struct {
	// Format forces a format; FormatAuto picks one from the file extension.
	Format Format
	// Separator forces the delimiter of delimited text; 0 detects it.
	Separator rune
	// IDField names the identity field. Rows without one get a generated ULID.
	// Empty disables identity assignment.
	IDField string
	// Stdin replaces os.Stdin for StdinPath.
	Stdin io.Reader
}

// ParseFormat parses a format name; "" and "auto" yield FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, "auto":
		return FormatAuto, nil
	case "jsonl":
		return FormatNDJSON, nil
	case "yml":
		return FormatYAML, nil
	case FormatJSON, FormatNDJSON, FormatYAML, FormatCSV, FormatTSV:
		return f, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".ndjson", ".jsonl":
		return FormatNDJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Parse decodes data in the given format. FormatAuto sniffs the first
// non-blank byte: '[' or '{' is JSON, anything else delimited text.
func Parse(data []byte, format Format, opts Options) (*Dataset, error) {
	if format == FormatAuto {
		format = sniff(data)
	}
	switch format {
	case FormatJSON, FormatNDJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatCSV:
		return parseDelimited(data, opts.Separator)
	case FormatTSV:
		sep := opts.Separator
		if sep == 0 {
			sep = '\t'
		}
		return parseDelimited(data, sep)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func sniff(data []byte) Format {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[', '{':
			return FormatJSON
		default:
			return FormatCSV
		}
	}
	return FormatCSV
}

// LoadFile reads and parses one input.
func LoadFile(ctx context.Context, path string, opts Options) (*Dataset, error) {
	log := logging.FromContext(ctx)

	format := opts.Format
	if format == FormatAuto && path != StdinPath {
		detected, err := DetectFormat(path)
		if err == nil {
			format = detected
		}
	}

	data, err := readInput(path, opts)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("component", "ingest").
		Str("operation", "load_file").
		Str("path", path).
		Str("format", string(format)).
		Int("data_size_bytes", len(data)).
		Msg("parsing input")

	ds, err := Parse(data, format, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	log.Debug().
		Str("component", "ingest").
		Str("path", path).
		Int("rows", len(ds.Rows)).
		Int("fields", len(ds.Fields)).
		Msg("input parsed")
	return ds, nil
}

func readInput(path string, opts Options) ([]byte, error) {
	if path == StdinPath {
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// LoadFiles reads every path concurrently and concatenates the rows in argument
// order. The first failure cancels the remaining reads.
func LoadFiles(ctx context.Context, paths []string, opts Options) (*Dataset, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	parts := make([]*Dataset, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			ds, err := LoadFile(gCtx, path, opts)
			if err != nil {
				return err
			}
			parts[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := Merge(parts...)
	if opts.IDField != "" {
		n := AssignIDs(merged.Rows, opts.IDField)
		logging.FromContext(ctx).Debug().
			Str("component", "ingest").
			Str("id_field", opts.IDField).
			Int("assigned", n).
			Msg("row identities assigned")
	}
	return merged, nil
}

// Merge concatenates datasets, unioning their fields in first-seen order.
func Merge(parts ...*Dataset) *Dataset {
	out := &Dataset{Rows: []grid.Row{}}
	fields := newFieldSet()
	for _, p := range parts {
		if p == nil {
			continue
		}
		for _, f := range p.Fields {
			fields.add(f)
		}
		out.Rows = append(out.Rows, p.Rows...)
	}
	out.Fields = fields.list
	return out
}

// AssignIDs stores a new ULID under field in every row that lacks a value there,
// and returns how many rows were changed.
func AssignIDs(rows []grid.Row, field string) int {
	n := 0
	for _, row := range rows {
		if row == nil {
			continue
		}
		if v, ok := row[field]; ok && v != nil && v != "" {
			continue
		}
		row[field] = ulid.Make().String()
		n++
	}
	return n
}

type fieldSet struct {
	seen map[string]bool
	list []string
}

func newFieldSet() *fieldSet {
	return &fieldSet{seen: make(map[string]bool), list: []string{}}
}

func (s *fieldSet) add(f string) {
	if s.seen[f] {
		return
	}
	s.seen[f] = true
	s.list = append(s.list, f)
}
