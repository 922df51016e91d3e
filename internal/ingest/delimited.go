package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/domonda/go-types/charset"

	"github.com/rshade/vgrid/internal/grid"
)

// Encodings tried in order when decoding delimited text.
//
//nolint:gochecknoglobals // Read-only lookup table.
var detectEncodings = []string{"UTF-8", "UTF-16LE", "ISO 8859-1", "Windows 1252"}

// Characters whose byte form differs between the candidate encodings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var encodingTests = []string{"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "é", "è", "ñ", "§", "€"}

// candidateSeparators are counted on the header line when no separator is given.
const candidateSeparators = ",;\t|"

// parseDelimited decodes the charset, picks a separator and reads records with the
// first one as header. Cells stay strings; empty header cells are named column_N
// and repeated ones get a _2, _3 suffix.
func parseDelimited(data []byte, sep rune) (*Dataset, error) {
	decoded, err := decodeCharset(data)
	if err != nil {
		return nil, err
	}

	header, body := splitFirstLine(decoded)
	if declared := sepHeader(header); declared != 0 {
		if sep == 0 {
			sep = declared
		}
		decoded = body
		header, _ = splitFirstLine(body)
	}
	if sep == 0 {
		sep = detectSeparator(header)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	names, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{Fields: []string{}, Rows: []grid.Row{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	names = headerNames(names)

	rows := []grid.Row{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", len(rows)+1, err)
		}
		if len(rec) == 1 && rec[0] == "" {
			continue
		}
		row := make(grid.Row, len(names))
		for i, name := range names {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	return &Dataset{Fields: names, Rows: rows}, nil
}

func decodeCharset(data []byte) ([]byte, error) {
	data = charset.TrimBOM(data, charset.BOMUTF8)

	encodings := make([]charset.Encoding, 0, len(detectEncodings))
	for _, name := range detectEncodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, fmt.Errorf("loading encoding %s: %w", name, err)
		}
		encodings = append(encodings, enc)
	}

	decoded, _, err := charset.AutoDecode(data, encodings, encodingTests)
	if err != nil {
		return nil, fmt.Errorf("detecting text encoding: %w", err)
	}
	return decoded, nil
}

func splitFirstLine(data []byte) ([]byte, []byte) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return bytes.TrimRight(data, "\r"), nil
	}
	return bytes.TrimRight(data[:i], "\r"), data[i+1:]
}

// sepHeader reads a spreadsheet style "sep=;" first line.
func sepHeader(line []byte) rune {
	line = bytes.Trim(bytes.TrimSpace(line), `"`)
	if len(line) != len("sep=")+1 {
		return 0
	}
	if !bytes.EqualFold(line[:4], []byte("sep=")) {
		return 0
	}
	return rune(line[4])
}

// detectSeparator returns the candidate that occurs most often outside quotes in the
// header line; comma wins ties and the empty case.
func detectSeparator(header []byte) rune {
	counts := make(map[rune]int, len(candidateSeparators))
	quoted := false
	for _, r := range string(header) {
		if r == '"' {
			quoted = !quoted
			continue
		}
		if !quoted && strings.ContainsRune(candidateSeparators, r) {
			counts[r]++
		}
	}
	best := ','
	for _, r := range candidateSeparators {
		if counts[r] > counts[best] {
			best = r
		}
	}
	return best
}

func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	used := make(map[string]int, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		used[name]++
		if n := used[name]; n > 1 {
			name += "_" + strconv.Itoa(n)
		}
		names[i] = name
	}
	return names
}
