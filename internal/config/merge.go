package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for merging.
const (
	keyGrid    = "grid"
	keyOutput  = "output"
	keyLogging = "logging"
	keyIngest  = "ingest"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyGrid:    true,
	keyOutput:  true,
	keyLogging: true,
	keyIngest:  true,
}

// MergeYAML loads a YAML file and overlays it onto target one section at a time.
// Within a section, fields present in the overlay replace the target's and absent
// fields keep their value; lists (grid.columns) are replaced whole. A section that
// fails to decode leaves target untouched.
func MergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	merged := *target
	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = overlaySection(&merged, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	*target = merged
	return nil
}

func overlaySection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyGrid:
		return decodeOnto(&target.Grid, node)
	case keyOutput:
		return decodeOnto(&target.Output, node)
	case keyLogging:
		return decodeOnto(&target.Logging, node)
	case keyIngest:
		return decodeOnto(&target.Ingest, node)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// decodeOnto decodes node over a copy of *dst and stores it only on success.
func decodeOnto[T any](dst *T, node *yaml.Node) error {
	v := *dst
	if err := node.Decode(&v); err != nil {
		return err
	}
	*dst = v
	return nil
}
