package grid

import "math"

// Resize defaults.
const (
	DefaultResizeThreshold = 10
	DefaultMinColumnWidth  = 20
)

// ResizeState is the drag lifecycle state.
type ResizeState int

// Resize states.
const (
	ResizeIdle ResizeState = iota
	ResizeArmed
	ResizeDragging
)

func (s ResizeState) String() string {
	switch s {
	case ResizeArmed:
		return "armed"
	case ResizeDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Cursor is the pointer affordance a renderer should show over a header cell.
type Cursor string

// Cursors.
const (
	CursorPointer   Cursor = "pointer"
	CursorColResize Cursor = "col-resize"
)

// Direction is the horizontal layout direction.
type Direction int

// Layout directions.
const (
	LeftToRight Direction = iota
	RightToLeft
)

// Sign is +1 for LeftToRight and -1 for RightToLeft.
func (d Direction) Sign() float64 {
	if d == RightToLeft {
		return -1
	}
	return 1
}

// PointerCapture routes global pointer moves and releases to the controller for the
// duration of a drag. Acquire is called once when a drag starts and Release once
// when it ends, whether by release, cancel or focus loss.
type PointerCapture interface {
	Acquire()
	Release()
}

// ResizeConfig configures a ResizeController.
type ResizeConfig struct {
	Enabled   bool
	Threshold float64
	MinWidth  float64
	Direction Direction
}

// DefaultResizeConfig returns an enabled left-to-right configuration.
func DefaultResizeConfig() ResizeConfig {
	return ResizeConfig{
		Enabled:   true,
		Threshold: DefaultResizeThreshold,
		MinWidth:  DefaultMinColumnWidth,
		Direction: LeftToRight,
	}
}

// ResizeUpdate is the new width pair produced by a drag move.
type ResizeUpdate struct {
	Column    int
	Width     float64
	NextWidth float64
}

// Apply writes the pair onto columns as pixel strings.
func (u ResizeUpdate) Apply(columns []ColumnDef) {
	if u.Column < 0 || u.Column+1 >= len(columns) {
		return
	}
	columns[u.Column].Width = FormatPixels(u.Width)
	columns[u.Column+1].Width = FormatPixels(u.NextWidth)
}

// ResizeController moves the boundary between column i and i+1 while keeping their
// combined width constant.
type ResizeController struct {
	cfg     ResizeConfig
	capture PointerCapture

	state      ResizeState
	armedCol   int
	column     int
	startX     float64
	startWidth float64
	startNext  float64
	captured   bool
}

// NewResizeController creates a controller. capture may be nil.
func NewResizeController(cfg ResizeConfig, capture PointerCapture) *ResizeController {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultResizeThreshold
	}
	cfg.MinWidth = math.Max(cfg.MinWidth, 0)
	return &ResizeController{cfg: cfg, capture: capture, armedCol: -1, column: -1}
}

// State returns the current state.
func (c *ResizeController) State() ResizeState {
	return c.state
}

// ArmedColumn returns the column whose trailing edge is armed, or -1.
func (c *ResizeController) ArmedColumn() int {
	if c.state != ResizeArmed {
		return -1
	}
	return c.armedCol
}

// DragColumn returns the column being dragged, or -1.
func (c *ResizeController) DragColumn() int {
	if c.state != ResizeDragging {
		return -1
	}
	return c.column
}

// SetDirection changes the layout direction. Ignored while dragging.
func (c *ResizeController) SetDirection(d Direction) {
	if c.state == ResizeDragging {
		return
	}
	c.cfg.Direction = d
}

// SetEnabled turns interactive resize on or off. Disabling cancels a drag.
func (c *ResizeController) SetEnabled(enabled bool) {
	if !enabled {
		c.Cancel()
		c.disarm()
	}
	c.cfg.Enabled = enabled
}

// Hover is called as the pointer moves over header cell col at local x of a cell
// cellWidth wide. Within Threshold of the trailing edge the edge is armed.
func (c *ResizeController) Hover(col int, x, cellWidth float64) Cursor {
	if !c.cfg.Enabled || c.state == ResizeDragging {
		return CursorPointer
	}
	c.disarm()
	if c.cfg.Direction == RightToLeft {
		x = cellWidth - x
	}
	if cellWidth-x < c.cfg.Threshold {
		c.state = ResizeArmed
		c.armedCol = col
		return CursorColResize
	}
	return CursorPointer
}

// Leave disarms when the pointer leaves the header.
func (c *ResizeController) Leave() {
	if c.state == ResizeArmed {
		c.disarm()
	}
}

func (c *ResizeController) disarm() {
	if c.state == ResizeArmed {
		c.state = ResizeIdle
	}
	c.armedCol = -1
}

// Press starts a drag on col at pointer x. widths holds the current width of every
// column. It returns false when resize is disabled, a drag is already active, the
// edge is not armed, or col has no right-hand neighbour.
func (c *ResizeController) Press(col int, x float64, widths []float64) bool {
	if !c.cfg.Enabled || c.state != ResizeArmed || c.armedCol != col {
		return false
	}
	if col < 0 || col+1 >= len(widths) {
		return false
	}
	c.state = ResizeDragging
	c.column = col
	c.startX = x
	c.startWidth = widths[col]
	c.startNext = widths[col+1]
	c.armedCol = -1
	if c.capture != nil && !c.captured {
		c.capture.Acquire()
	}
	c.captured = true
	return true
}

// Move applies a pointer move during a drag. The pair total never changes; each side
// is kept at or above MinWidth unless it already started below it.
func (c *ResizeController) Move(x float64) (ResizeUpdate, bool) {
	if c.state != ResizeDragging {
		return ResizeUpdate{}, false
	}
	pair := c.startWidth + c.startNext
	offset := (x - c.startX) * c.cfg.Direction.Sign()
	lo := math.Min(c.cfg.MinWidth, c.startWidth)
	hi := pair - math.Min(c.cfg.MinWidth, c.startNext)
	w := math.Min(math.Max(c.startWidth+offset, lo), hi)
	return ResizeUpdate{Column: c.column, Width: w, NextWidth: pair - w}, true
}

// Release ends the drag. Repeated calls are no-ops.
func (c *ResizeController) Release() bool {
	return c.end()
}

// Cancel ends the drag when the release was missed, e.g. the window lost focus.
// Widths already applied by Move stay as they are.
func (c *ResizeController) Cancel() bool {
	return c.end()
}

func (c *ResizeController) end() bool {
	if c.state != ResizeDragging {
		return false
	}
	if c.captured && c.capture != nil {
		c.capture.Release()
	}
	c.captured = false
	c.state = ResizeIdle
	c.column = -1
	return true
}
