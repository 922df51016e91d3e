package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rshade/vgrid/internal/grid"
)

// parseYAML reads a sequence of mappings or a single mapping from each document of
// a (possibly multi-document) stream. Mapping key order is kept as field order.
func parseYAML(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	fields := newFieldSet()
	rows := []grid.Row{}

	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
		if len(doc.Content) == 0 {
			continue
		}

		root := doc.Content[0]
		switch root.Kind {
		case yaml.MappingNode:
			row, err := readMapping(root, fields)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		case yaml.SequenceNode:
			for i, item := range root.Content {
				if item.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("%w: sequence item %d (line %d) is not a mapping",
						ErrNotTabular, i, item.Line)
				}
				row, err := readMapping(item, fields)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
		default:
			return nil, fmt.Errorf("%w: line %d", ErrNotTabular, root.Line)
		}
	}

	return &Dataset{Fields: fields.list, Rows: rows}, nil
}

func readMapping(n *yaml.Node, fields *fieldSet) (grid.Row, error) {
	row := make(grid.Row, len(n.Content)/2) //nolint:mnd // Key/value pairs.
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			return nil, fmt.Errorf("decoding YAML value of %q (line %d): %w", key, n.Content[i+1].Line, err)
		}
		row[key] = flatten(v)
		fields.add(key)
	}
	return row, nil
}
