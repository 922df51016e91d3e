// Package tui is the terminal front end of the data grid.
//
// GridModel is a Bubble Tea model that drives the renderer-agnostic grid core:
// scroll and resize events feed grid.Viewport, the filter box and sort keys go
// through a debounce and a settle delay before reaching grid.DataSource, column
// widths are estimated one tick after a render, and header drags are handled by
// grid.ResizeController. Geometry is one terminal cell per pixel.
package tui
