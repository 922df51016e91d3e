package grid

import "math"

// Defaults of the fixed-size virtual scroll strategy, in pixels.
const (
	DefaultItemSize   = 47
	DefaultHeaderSize = 56
	DefaultPageSize   = 50
	DefaultMinBuffer  = 1000
	DefaultMaxBuffer  = 2000
)

// VisibleRange is a half-open index range [Start, End) over the active rows.
type VisibleRange struct {
	Start int
	End   int
}

// Len returns End - Start.
func (r VisibleRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether index i is inside the range.
func (r VisibleRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Clamp restricts the range to [0, length] keeping Start <= End.
func (r VisibleRange) Clamp(length int) VisibleRange {
	r.Start = min(max(r.Start, 0), length)
	r.End = min(max(r.End, r.Start), length)
	return r
}

// Viewport is a fixed-row-height virtualization strategy.
//
// It renders the rows geometrically inside the viewport plus off-screen buffer rows.
// Both buffer bounds are totals split evenly between the two sides. A recompute
// renders maxBuffer worth of rows around the viewport; later scrolls keep that range
// while at least half of minBuffer remains rendered beyond each edge (or the data
// ends there), so small deltas never recompute.
type Viewport struct {
	itemSize   float64
	headerSize float64
	minBuffer  float64
	maxBuffer  float64

	viewportSize float64
	dataLength   int
	offset       float64
	rng          VisibleRange
	recomputes   int
}

// NewViewport creates a viewport. Non-positive itemSize falls back to DefaultItemSize;
// maxBuffer is raised to minBuffer when smaller.
func NewViewport(itemSize, minBuffer, maxBuffer float64) *Viewport {
	if itemSize <= 0 {
		itemSize = DefaultItemSize
	}
	minBuffer = math.Max(minBuffer, 0)
	maxBuffer = math.Max(maxBuffer, minBuffer)
	return &Viewport{
		itemSize:   itemSize,
		headerSize: DefaultHeaderSize,
		minBuffer:  minBuffer,
		maxBuffer:  maxBuffer,
	}
}

// SetHeaderSize sets the header height added to page jump offsets.
func (v *Viewport) SetHeaderSize(h float64) {
	v.headerSize = math.Max(h, 0)
}

// Attach binds the viewport to a measured size and data length and computes the
// initial range as if the data had just appeared.
func (v *Viewport) Attach(viewportSize float64, dataLength int) {
	v.viewportSize = math.Max(viewportSize, 0)
	v.SetDataLength(dataLength)
}

// SetViewportSize updates the viewport height and recomputes the range.
func (v *Viewport) SetViewportSize(size float64) {
	v.viewportSize = math.Max(size, 0)
	v.offset = v.clampOffset(v.offset)
	v.recompute()
}

// SetDataLength updates the active row count. The offset is clamped so the range
// never references rows past the new length.
func (v *Viewport) SetDataLength(n int) {
	v.dataLength = max(n, 0)
	v.offset = v.clampOffset(v.offset)
	v.recompute()
}

// OnScroll handles a scroll to offset, recomputing the range only when the
// rendered buffer has run low.
func (v *Viewport) OnScroll(offset float64) {
	v.offset = v.clampOffset(offset)
	if v.covers() {
		return
	}
	v.recompute()
}

// ScrollToOffset jumps to an absolute offset.
func (v *Viewport) ScrollToOffset(offset float64) {
	v.OnScroll(offset)
}

// ScrollBy scrolls by delta pixels (negative scrolls up).
func (v *Viewport) ScrollBy(delta float64) {
	v.OnScroll(v.offset + delta)
}

// PageOffset is the offset whose first row starts page pageIndex:
// pageIndex * pageSize * itemSize + headerSize.
func (v *Viewport) PageOffset(pageIndex, pageSize int) float64 {
	return float64(pageIndex)*float64(pageSize)*v.itemSize + v.headerSize
}

// ScrollToPage jumps to PageOffset(pageIndex, pageSize).
func (v *Viewport) ScrollToPage(pageIndex, pageSize int) {
	v.ScrollToOffset(v.PageOffset(pageIndex, pageSize))
}

// ScrollToIndex scrolls the minimum distance that makes row i fully visible.
func (v *Viewport) ScrollToIndex(i int) {
	if v.dataLength == 0 {
		return
	}
	i = min(max(i, 0), v.dataLength-1)
	top := float64(i) * v.itemSize
	bottom := top + v.itemSize
	switch {
	case top < v.offset:
		v.OnScroll(top)
	case bottom > v.offset+v.viewportSize:
		v.OnScroll(bottom - v.viewportSize)
	}
}

// Range returns the rendered range.
func (v *Viewport) Range() VisibleRange {
	return v.rng
}

// Geometric returns the rows that intersect the viewport, ignoring buffers.
func (v *Viewport) Geometric() VisibleRange {
	first := int(math.Floor(v.offset / v.itemSize))
	last := int(math.Ceil((v.offset + v.viewportSize) / v.itemSize))
	return VisibleRange{Start: first, End: last}.Clamp(v.dataLength)
}

// FirstVisible returns the index of the row at the top of the viewport.
func (v *Viewport) FirstVisible() int {
	return v.Geometric().Start
}

// ViewportRowCount returns how many rows fit the viewport height (rounded up).
func (v *Viewport) ViewportRowCount() int {
	return int(math.Ceil(v.viewportSize / v.itemSize))
}

// Offset returns the current scroll offset.
func (v *Viewport) Offset() float64 {
	return v.offset
}

// MaxOffset returns the largest offset that still fills the viewport.
func (v *Viewport) MaxOffset() float64 {
	return math.Max(0, float64(v.dataLength)*v.itemSize-v.viewportSize)
}

// ItemSize returns the fixed row height.
func (v *Viewport) ItemSize() float64 {
	return v.itemSize
}

// DataLength returns the active row count the viewport was last told about.
func (v *Viewport) DataLength() int {
	return v.dataLength
}

// Recomputes counts full range recomputations; scrolls absorbed by the buffer do not count.
func (v *Viewport) Recomputes() int {
	return v.recomputes
}

func (v *Viewport) clampOffset(offset float64) float64 {
	if math.IsNaN(offset) {
		return 0
	}
	return math.Min(math.Max(offset, 0), v.MaxOffset())
}

// bufferRows converts the buffer bounds to rows: the rows kept behind and ahead on a
// recompute, and the minimum rows that must remain on each side to skip one.
//
//nolint:nonamedreturns // Named returns document the three row counts.
func (v *Viewport) bufferRows() (behind, ahead, keep int) {
	total := int(math.Floor(v.maxBuffer / v.itemSize))
	behind = total / 2 //nolint:mnd // Split evenly.
	ahead = total - behind
	keep = min(int(math.Ceil(v.minBuffer/(2*v.itemSize))), behind) //nolint:mnd // Per side.
	return behind, ahead, keep
}

// covers reports whether the current range still spans the viewport with at least
// the minimum buffer on both sides.
func (v *Viewport) covers() bool {
	if v.rng.End > v.dataLength {
		return false
	}
	geo := v.Geometric()
	_, _, keep := v.bufferRows()
	needStart := max(0, geo.Start-keep)
	needEnd := min(v.dataLength, geo.End+keep)
	return v.rng.Start <= needStart && v.rng.End >= needEnd
}

// recompute renders the geometric rows plus the full buffer:
// Start = max(0, first - behind), End = min(length, last + ahead).
func (v *Viewport) recompute() {
	geo := v.Geometric()
	behind, ahead, _ := v.bufferRows()
	v.rng = VisibleRange{
		Start: max(0, geo.Start-behind),
		End:   min(v.dataLength, geo.End+ahead),
	}.Clamp(v.dataLength)
	v.recomputes++
}
