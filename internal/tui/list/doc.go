// Package listview provides a virtual scrolling list for Bubble Tea programs.
//
// The list keeps a cursor and renders only the rows that intersect its height.
// Windowing is delegated to grid.Viewport with a one-cell item size, so the list
// scrolls the same way the data grid does:
//   - Keyboard navigation (up/down, j/k, pgup/pgdn, home/end)
//   - Minimal scrolling that keeps the cursor on screen
//   - O(height) rendering regardless of item count
package listview
