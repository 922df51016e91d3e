// Package config loads vgrid settings from ~/.vgrid/config.yaml, a project-local
// .vgrid/config.yaml overlay and VGRID_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/vgrid/internal/grid"
)

// Directory and file names.
const (
	DirName        = ".vgrid"
	ConfigFileName = "config.yaml"
	LogFileName    = "vgrid.log"
)

// Scheduling defaults of the interactive grid.
const (
	DefaultFilterDebounce = 150 * time.Millisecond
	DefaultSettleDelay    = 200 * time.Millisecond
)

// Terminal geometry: one cell per pixel, header outside the scrolled content.
const (
	terminalItemSize        = 1
	terminalMinBuffer       = 10
	terminalMaxBuffer       = 20
	terminalResizeThreshold = 2
	terminalMinColumnWidth  = 3
)

// outputTypeFile marks file logging in logging.Config.
const outputTypeFile = "file"

// Config is the full vgrid configuration.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Ingest  IngestConfig  `yaml:"ingest"`

	path string
}

// GridConfig holds the grid options.
type GridConfig struct {
	ItemSize        float64          `yaml:"item_size"`
	HeaderSize      float64          `yaml:"header_size"`
	PageSize        int              `yaml:"page_size"`
	MinBuffer       float64          `yaml:"min_buffer"`
	MaxBuffer       float64          `yaml:"max_buffer"`
	Filterable      bool             `yaml:"filterable"`
	Resizable       bool             `yaml:"resizable"`
	AutoSize        bool             `yaml:"auto_size"`
	IDField         string           `yaml:"id_field"`
	RTL             bool             `yaml:"rtl"`
	ResizeThreshold float64          `yaml:"resize_threshold"`
	MinColumnWidth  float64          `yaml:"min_column_width"`
	FilterDebounce  time.Duration    `yaml:"filter_debounce"`
	SettleDelay     time.Duration    `yaml:"settle_delay"`
	Columns         []grid.ColumnDef `yaml:"columns,omitempty"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	MaxCellWidth  int    `yaml:"max_cell_width"`
}

// LoggingConfig controls log destination and verbosity.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// IngestConfig sets input parsing defaults.
type IngestConfig struct {
	Format    string `yaml:"format"`
	Separator string `yaml:"separator"`
}

// Validation errors.
var (
	ErrInvalidItemSize = errors.New("grid.item_size must be > 0")
	ErrInvalidPageSize = errors.New("grid.page_size must be > 0")
	ErrInvalidBuffers  = errors.New("grid.max_buffer must be >= grid.min_buffer >= 0")
	ErrInvalidFormat   = errors.New("output.default_format must be table, json or ndjson")
	ErrInvalidSep      = errors.New("ingest.separator must be a single character")
)

// Default returns the built-in configuration tuned for a terminal.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			ItemSize:        terminalItemSize,
			HeaderSize:      0,
			PageSize:        grid.DefaultPageSize,
			MinBuffer:       terminalMinBuffer,
			MaxBuffer:       terminalMaxBuffer,
			Filterable:      true,
			Resizable:       true,
			AutoSize:        true,
			IDField:         grid.DefaultIDField,
			ResizeThreshold: terminalResizeThreshold,
			MinColumnWidth:  terminalMinColumnWidth,
			FilterDebounce:  DefaultFilterDebounce,
			SettleDelay:     DefaultSettleDelay,
		},
		Output: OutputConfig{
			DefaultFormat: "table",
			MaxCellWidth:  40, //nolint:mnd // Readable default.
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(defaultDir(), "logs", LogFileName),
		},
	}
}

// New loads the user config file on top of the defaults and applies environment
// overrides. A missing or unreadable file leaves the defaults in place.
func New() *Config {
	cfg := Default()
	cfg.path = filepath.Join(defaultDir(), ConfigFileName)
	if _, err := os.Stat(cfg.path); err == nil {
		_ = cfg.Load()
	}
	cfg.applyEnv()
	return cfg
}

// NewFromFile loads path on top of the defaults and applies environment overrides.
func NewFromFile(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Path returns the file the config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// Load reads the config file onto c.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", c.path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", c.path, err)
	}
	return nil
}

// Save writes c to its path, creating the directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Validate checks the grid and output settings.
func (c *Config) Validate() error {
	switch {
	case c.Grid.ItemSize <= 0:
		return ErrInvalidItemSize
	case c.Grid.PageSize <= 0:
		return ErrInvalidPageSize
	case c.Grid.MinBuffer < 0 || c.Grid.MaxBuffer < c.Grid.MinBuffer:
		return ErrInvalidBuffers
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}
	if n := len([]rune(c.Ingest.Separator)); n > 1 {
		return fmt.Errorf("%w: got %q", ErrInvalidSep, c.Ingest.Separator)
	}
	_, dropped := grid.ValidateColumns(c.Grid.Columns)
	if len(dropped) > 0 {
		return fmt.Errorf("grid.columns: empty or duplicate fields %q", dropped)
	}
	if err := grid.ValidateFormatters(c.Grid.Columns); err != nil {
		return fmt.Errorf("grid.columns: %w", err)
	}
	return nil
}

// applyEnv applies VGRID_* overrides. Unparseable values are ignored.
func (c *Config) applyEnv() {
	if v := os.Getenv("VGRID_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VGRID_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v, ok := os.LookupEnv("VGRID_LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v := os.Getenv("VGRID_OUTPUT_FORMAT"); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv("VGRID_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Grid.PageSize = n
		}
	}
	if v := os.Getenv("VGRID_ID_FIELD"); v != "" {
		c.Grid.IDField = v
	}
	if v := os.Getenv("VGRID_RTL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Grid.RTL = b
		}
	}
}

// ParseColumns parses "field", "field:Title" or "field:Title:format" entries, comma
// separated. An empty title defaults to the field name.
func ParseColumns(list string) []grid.ColumnDef {
	var cols []grid.ColumnDef
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, rest, _ := strings.Cut(part, ":")
		title, format, _ := strings.Cut(rest, ":")
		field = strings.TrimSpace(field)
		title = strings.TrimSpace(title)
		if title == "" {
			title = field
		}
		cols = append(cols, grid.ColumnDef{Field: field, Title: title, FormatName: strings.TrimSpace(format)})
	}
	return cols
}

// defaultDir returns $VGRID_HOME or ~/.vgrid.
func defaultDir() string {
	if dir := os.Getenv("VGRID_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultDir exposes the config directory.
func DefaultDir() string {
	return defaultDir()
}

// EnsureLogDir creates the directory of the configured log file.
func EnsureLogDir() error {
	file := GetGlobalConfig().Logging.File
	if file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	return nil
}

//nolint:gochecknoglobals // Process-wide configuration, set once per CLI invocation.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// GetGlobalConfig returns the process-wide config, loading it on first use.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// SetGlobalConfig replaces the process-wide config.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalConfigForTest clears the process-wide config.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}
