package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/vgrid/internal/grid"
	"github.com/rshade/vgrid/internal/logging"
	listview "github.com/rshade/vgrid/internal/tui/list"
)

// ViewState is the screen the grid model shows.
type ViewState int

const (
	// ViewStateList shows the grid.
	ViewStateList ViewState = iota
	// ViewStateDetail shows every field of the selected row.
	ViewStateDetail
	// ViewStateQuitting is set once the program is asked to exit.
	ViewStateQuitting
)

// Layout constants.
const (
	defaultWidth  = 80
	defaultHeight = 24

	// headerLines is the column header; footerLines are filter, status and help.
	headerLines = 1
	footerLines = 3

	// wheelRows is how far one wheel notch scrolls.
	wheelRows = 3

	filterInputCharLimit = 256
	filterPromptWidth    = 10
)

// pendingWork is the sort and filter waiting for the settle delay.
type pendingWork struct {
	query     string
	hasQuery  bool
	sortField string
	sortDir   grid.SortDirection
	hasSort   bool
}

// pointerCapture routes every pointer event to the resize controller while a
// drag is active, wherever the pointer is.
type pointerCapture struct {
	active   bool
	acquired int
	released int
}

func (p *pointerCapture) Acquire() {
	p.active = true
	p.acquired++
}

func (p *pointerCapture) Release() {
	p.active = false
	p.released++
}

// GridModel is the Bubble Tea model of the interactive grid.
type GridModel struct {
	ctx   context.Context
	opts  Options
	state ViewState

	ds      *grid.DataSource
	vp      *grid.Viewport
	sizer   *grid.WidthEstimator
	resizer *grid.ResizeController
	capture *pointerCapture
	events  grid.Events

	filter    textinput.Model
	filtering bool
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	detail    *listview.VirtualListModel[detailField]
	printer   *message.Printer

	width    int
	height   int
	selected int
	pointer  grid.Cursor
	status   string

	filterGen     int
	settleGen     int
	measureGen    int
	measureForced bool
	pending       pendingWork
}

// NewGridModel creates the model around a loaded data source.
func NewGridModel(ctx context.Context, ds *grid.DataSource, opts Options) *GridModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = grid.DefaultPageSize
	}
	if opts.FallbackWidth <= 0 {
		opts.FallbackWidth = DefaultFallbackWidth
	}

	m := &GridModel{
		ctx:     ctx,
		opts:    opts,
		state:   ViewStateList,
		ds:      ds,
		vp:      grid.NewViewport(opts.ItemSize, opts.MinBuffer, opts.MaxBuffer),
		sizer:   grid.NewWidthEstimator(NewCellMeasurer(opts.MaxCellWidth),
			grid.WithFallback(float64(opts.FallbackWidth)),
			grid.WithLogger(logging.FromContext(ctx)),
		),
		capture: &pointerCapture{},
		filter:  newFilterInput(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
		printer: message.NewPrinter(language.English),
		width:   defaultWidth,
		height:  defaultHeight,
		pointer: grid.CursorPointer,
	}
	m.vp.SetHeaderSize(opts.HeaderSize)
	m.resizer = grid.NewResizeController(grid.ResizeConfig{
		Enabled:   opts.Resizable,
		Threshold: opts.ResizeThreshold,
		MinWidth:  opts.MinColumnWidth,
		Direction: opts.direction(),
	}, m.capture)
	m.events = m.wrapEvents(opts.Events)

	m.vp.Attach(m.viewportSize(), ds.Len())
	return m
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.Placeholder = "type to filter rows"
	ti.CharLimit = filterInputCharLimit
	return ti
}

// wrapEvents logs and reports grid events before passing them on.
func (m *GridModel) wrapEvents(user grid.Events) grid.Events {
	return grid.Events{
		OnSortChange: func(field string, dir grid.SortDirection) {
			m.log().Debug().Str("field", field).Stringer("direction", dir).Msg("sort changed")
			if field == "" {
				m.status = "load order"
			} else {
				m.status = "sorted by " + field + " " + dir.String()
			}
			user.SortChanged(field, dir)
		},
		OnPageChange: func(pageIndex, pageSize int) {
			m.log().Debug().Int("page_index", pageIndex).Int("page_size", pageSize).Msg("page changed")
			m.status = m.printer.Sprintf("page %d", pageIndex+1)
			user.PageChanged(pageIndex, pageSize)
		},
	}
}

func (m *GridModel) log() *zerolog.Logger {
	l := logging.FromContext(m.ctx).With().Str("component", "tui").Logger()
	return &l
}

// Init starts the program: sets the window title and schedules the first measurement.
func (m *GridModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.scheduleMeasure(false)}
	if m.opts.Title != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.opts.Title))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m *GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, m.scheduleMeasure(true)
	case tea.BlurMsg:
		if m.resizer.Cancel() {
			m.log().Debug().Msg("resize cancelled on focus loss")
		}
		m.resizer.Leave()
		return m, nil
	case filterDebounceMsg:
		return m, m.onFilterDebounce(msg)
	case settleMsg:
		return m, m.onSettle(msg)
	case measureMsg:
		m.onMeasure(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.ds.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *GridModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateQuitting:
		return m, nil
	}

	if m.filtering {
		return m, m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case msg.String() == "esc" && m.resizer.State() == grid.ResizeDragging:
		m.resizer.Cancel()
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.selected + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.jumpPage(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.jumpPage(1)
	case key.Matches(msg, m.keys.Home):
		m.moveTo(0)
	case key.Matches(msg, m.keys.End):
		m.moveTo(m.ds.Len() - 1)
	case key.Matches(msg, m.keys.Filter):
		if m.ds.FilterEnabled() {
			m.filtering = true
			return m, m.filter.Focus()
		}
		m.status = "filtering is disabled"
	case key.Matches(msg, m.keys.Clear):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			return m, m.queueFilter()
		}
	case key.Matches(msg, m.keys.Sort):
		return m, m.cycleSortColumn()
	case key.Matches(msg, m.keys.Direction):
		return m, m.cycleSortDirection()
	case key.Matches(msg, m.keys.Detail):
		m.openDetail()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleFilterKey edits the filter box. enter keeps the query, esc clears it;
// both leave the box.
func (m *GridModel) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		if m.filter.Value() == "" {
			return nil
		}
		m.filter.SetValue("")
		return m.queueFilter()
	case "ctrl+c":
		m.state = ViewStateQuitting
		return tea.Quit
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.queueFilter())
}

// moveTo selects row i and scrolls the minimum needed to show it.
func (m *GridModel) moveTo(i int) {
	n := m.ds.Len()
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(i, 0), n-1)
	m.vp.ScrollToIndex(m.selected)
}

// jumpPage moves one page of PageSize rows through Viewport.ScrollToPage.
func (m *GridModel) jumpPage(delta int) {
	n := m.ds.Len()
	if n == 0 {
		return
	}
	size := m.opts.PageSize
	last := (n - 1) / size
	page := min(max(m.selected/size+delta, 0), last)

	m.vp.ScrollToPage(page, size)
	m.selected = min(page*size, n-1)
	if !m.vp.Geometric().Contains(m.selected) {
		m.vp.ScrollToIndex(m.selected)
	}
	m.events.PageChanged(page, size)
}

// layout resizes the viewport to the body height and keeps the selection visible.
func (m *GridModel) layout() {
	m.vp.SetViewportSize(m.viewportSize())
	m.vp.ScrollToIndex(m.selected)
	m.help.Width = m.width
	m.filter.Width = max(m.width-filterPromptWidth, 1)
	if m.detail != nil {
		m.detail.SetSize(m.width, m.detailHeight())
	}
}

func (m *GridModel) bodyRows() int {
	return max(m.height-headerLines-footerLines, 1)
}

func (m *GridModel) viewportSize() float64 {
	return float64(m.bodyRows()) * m.vp.ItemSize()
}

// clampSelection keeps the selection inside the active rows.
func (m *GridModel) clampSelection() {
	m.selected = min(m.selected, max(m.ds.Len()-1, 0))
}

// State returns the current screen.
func (m *GridModel) State() ViewState {
	return m.state
}

// Selected returns the selected row index in the active rows.
func (m *GridModel) Selected() int {
	return m.selected
}

// DataSource returns the data source the model drives.
func (m *GridModel) DataSource() *grid.DataSource {
	return m.ds
}

// Viewport returns the viewport window manager.
func (m *GridModel) Viewport() *grid.Viewport {
	return m.vp
}
