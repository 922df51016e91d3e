package tui

import (
	"time"

	"github.com/rshade/vgrid/internal/config"
	"github.com/rshade/vgrid/internal/grid"
)

// Options configures a GridModel.
type Options struct {
	Title string

	Filterable bool
	Resizable  bool
	AutoSize   bool
	RTL        bool

	ItemSize   float64
	HeaderSize float64
	PageSize   int
	MinBuffer  float64
	MaxBuffer  float64

	ResizeThreshold float64
	MinColumnWidth  float64
	MaxCellWidth    int
	FallbackWidth   int

	FilterDebounce time.Duration
	SettleDelay    time.Duration

	Events grid.Events
}

// OptionsFromConfig maps the configuration onto grid model options.
func OptionsFromConfig(cfg *config.Config) Options {
	g := cfg.Grid
	return Options{
		Filterable:      g.Filterable,
		Resizable:       g.Resizable,
		AutoSize:        g.AutoSize,
		RTL:             g.RTL,
		ItemSize:        g.ItemSize,
		HeaderSize:      g.HeaderSize,
		PageSize:        g.PageSize,
		MinBuffer:       g.MinBuffer,
		MaxBuffer:       g.MaxBuffer,
		ResizeThreshold: g.ResizeThreshold,
		MinColumnWidth:  g.MinColumnWidth,
		MaxCellWidth:    cfg.Output.MaxCellWidth,
		FallbackWidth:   DefaultFallbackWidth,
		FilterDebounce:  g.FilterDebounce,
		SettleDelay:     g.SettleDelay,
	}
}

func (o Options) direction() grid.Direction {
	if o.RTL {
		return grid.RightToLeft
	}
	return grid.LeftToRight
}
