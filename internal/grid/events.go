package grid

// Events are the notifications surfaced to the embedding application.
// Nil handlers are skipped.
type Events struct {
	OnSortChange func(field string, dir SortDirection)
	OnPageChange func(pageIndex, pageSize int)
}

// SortChanged fires OnSortChange.
func (e Events) SortChanged(field string, dir SortDirection) {
	if e.OnSortChange != nil {
		e.OnSortChange(field, dir)
	}
}

// PageChanged fires OnPageChange.
func (e Events) PageChanged(pageIndex, pageSize int) {
	if e.OnPageChange != nil {
		e.OnPageChange(pageIndex, pageSize)
	}
}
