// Package grid implements the renderer-agnostic core of the virtual data grid.
//
// The package keeps render cost bounded to the visible window of a large dataset:
//   - DataSource owns the loaded rows, the active sort and the active filter result,
//     and serves windowed slices in O(window) time
//   - FilterIndex precomputes one lowercase search string per row and answers
//     word-boundary queries with a broadened substring fallback
//   - Viewport maps a scroll offset to the visible row range with buffer hysteresis
//   - WidthEstimator derives column widths from the measured text of visible cells
//   - ResizeController reallocates width between two adjacent columns during a drag
//
// Nothing in this package blocks or spawns goroutines. Callers drive it from a single
// event loop and own any timers (debounce, settle delay, measurement tick).
// Geometry is expressed in abstract pixels; terminal renderers use one cell per pixel.
package grid
