package grid

import (
	"errors"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Auto-sizing defaults.
const (
	DefaultColumnWidth = 100
	DefaultWidthMargin = 20
)

// ErrUnmeasurable is returned by measurers that cannot size a piece of text.
var ErrUnmeasurable = errors.New("text cannot be measured")

// Measurer returns the rendered width of text in the active font or cell metric.
type Measurer interface {
	Measure(text string) (float64, error)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(text string) (float64, error)

// Measure calls f(text).
func (f MeasurerFunc) Measure(text string) (float64, error) {
	return f(text)
}

// ColumnWidths maps a field to its width.
type ColumnWidths map[string]float64

// Sum returns the total width.
func (w ColumnWidths) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// WidthEstimator picks column widths from the rendered window.
type WidthEstimator struct {
	measurer Measurer
	margin   float64
	fallback float64
	log      zerolog.Logger
}

// WidthOption configures a WidthEstimator.
type WidthOption func(*WidthEstimator)

// WithMargin sets the width kept free of redistribution.
func WithMargin(margin float64) WidthOption {
	return func(e *WidthEstimator) {
		e.margin = margin
	}
}

// WithFallback sets the width used when a column cannot be measured.
func WithFallback(width float64) WidthOption {
	return func(e *WidthEstimator) {
		if width > 0 {
			e.fallback = width
		}
	}
}

// WithLogger sets the logger that records measurement fallbacks at debug level.
func WithLogger(l *zerolog.Logger) WidthOption {
	return func(e *WidthEstimator) {
		if l != nil {
			e.log = l.With().Str("component", "grid").Logger()
		}
	}
}

// NewWidthEstimator creates an estimator around m.
func NewWidthEstimator(m Measurer, opts ...WidthOption) *WidthEstimator {
	e := &WidthEstimator{
		measurer: m,
		margin:   DefaultWidthMargin,
		fallback: DefaultColumnWidth,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate measures the widest cell of each column among window (the rows currently
// rendered), then spreads whatever is left of viewportWidth minus the margin evenly
// over all columns.
//
// The returned columns are a copy of columns with Width set to the pixel string of the
// estimate, except that a column with an explicit Width keeps it unless forced is set.
// The returned ColumnWidths always holds the raw estimates.
func (e *WidthEstimator) Estimate(
	columns []ColumnDef, window []Row, viewportWidth float64, forced bool,
) ([]ColumnDef, ColumnWidths) {
	widths := make(ColumnWidths, len(columns))
	for _, c := range columns {
		widths[c.Field] = e.measureColumn(c, window)
	}

	if len(columns) > 0 {
		extra := viewportWidth - widths.Sum() - e.margin
		if extra > 0 {
			share := extra / float64(len(columns))
			for _, c := range columns {
				widths[c.Field] += share
			}
		}
	}

	out := make([]ColumnDef, len(columns))
	copy(out, columns)
	for i := range out {
		if out[i].Width != "" && !forced {
			continue
		}
		out[i].Width = FormatPixels(widths[out[i].Field])
	}
	return out, widths
}

// measureColumn measures the cell with the most characters; the first one wins ties.
func (e *WidthEstimator) measureColumn(c ColumnDef, window []Row) float64 {
	if len(window) == 0 || e.measurer == nil {
		return e.fallback
	}
	longest, longestLen := "", -1
	for _, row := range window {
		text := c.Cell(row)
		if n := utf8.RuneCountInString(text); n > longestLen {
			longest, longestLen = text, n
		}
	}
	w, err := e.measurer.Measure(longest)
	if err == nil && w < 0 {
		err = ErrUnmeasurable
	}
	if err != nil {
		e.log.Debug().
			Err(err).
			Str("field", c.Field).
			Float64("fallback", e.fallback).
			Msg("column width fallback")
		return e.fallback
	}
	return w
}
