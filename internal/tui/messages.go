package tui

// filterDebounceMsg fires when the filter box has been quiet for the debounce
// delay. Only the message carrying the latest generation is acted on.
type filterDebounceMsg struct {
	gen int
}

// settleMsg runs the pending sort and filter after the settle delay.
type settleMsg struct {
	gen int
}

// measureMsg re-estimates column widths once the window has rendered.
type measureMsg struct {
	gen int
}
