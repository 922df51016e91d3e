package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rshade/vgrid/internal/grid"
)

// parseJSON reads an array of objects, a single object, or a whitespace separated
// stream of either (which covers NDJSON). Object key order is kept as field order,
// numbers stay json.Number so integers and decimals keep their text.
func parseJSON(data []byte) (*Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	fields := newFieldSet()
	rows := []grid.Row{}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}

		switch tok {
		case json.Delim('{'):
			row, err := readObject(dec, fields)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		case json.Delim('['):
			for dec.More() {
				elem, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("decoding JSON: %w", err)
				}
				if elem != json.Delim('{') {
					return nil, fmt.Errorf("%w: array element %d is not an object", ErrNotTabular, len(rows))
				}
				row, err := readObject(dec, fields)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("decoding JSON: %w", err)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected %v", ErrNotTabular, tok)
		}
	}

	return &Dataset{Fields: fields.list, Rows: rows}, nil
}

// readObject reads the members of an object whose '{' was already consumed.
func readObject(dec *json.Decoder, fields *fieldSet) (grid.Row, error) {
	row := grid.Row{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding JSON key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("decoding JSON: unexpected key %v", keyTok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding JSON value of %q: %w", key, err)
		}
		row[key] = flatten(v)
		fields.add(key)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return row, nil
}

// flatten renders nested objects and arrays as compact JSON so every cell is a scalar.
func flatten(v any) any {
	switch v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return v
	}
}
