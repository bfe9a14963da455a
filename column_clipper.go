package grid

import "sort"

// ColumnWindow is the set of columns to materialize: the frozen prefix
// [0, Frozen) always, plus the scrollable band [Start, End).
type ColumnWindow struct {
	Frozen int
	Start  int
	End    int
}

// Len returns the number of materialized columns.
func (w ColumnWindow) Len() int { return w.Frozen + w.End - w.Start }

// Contains reports whether column i is materialized.
func (w ColumnWindow) Contains(i int) bool {
	return (i >= 0 && i < w.Frozen) || (i >= w.Start && i < w.End)
}

// Each calls fn for every materialized column, frozen ones first.
func (w ColumnWindow) Each(fn func(i int)) {
	for i := 0; i < w.Frozen; i++ {
		fn(i)
	}
	for i := w.Start; i < w.End; i++ {
		fn(i)
	}
}

// ComputeVisibleColumns returns the columns intersecting the viewport.
// Scrollable columns are visible when they overlap the region right of the
// frozen columns, [scrollLeft+frozenWidth, scrollLeft+viewportWidth) in
// content space, widened by overscan columns on each side.
func ComputeVisibleColumns(scrollLeft, viewportWidth float32, m ColumnMetrics, overscan int) ColumnWindow {
	n := m.Len()
	frozen := m.FrozenCount()
	w := ColumnWindow{Frozen: frozen, Start: frozen, End: frozen}
	if n == frozen || viewportWidth <= 0 {
		return w
	}
	if scrollLeft < 0 {
		scrollLeft = 0
	}

	lo := scrollLeft + m.FrozenWidth()
	hi := scrollLeft + viewportWidth
	if hi <= lo {
		return w
	}
	start := max(frozen, m.IndexAtOffset(lo))
	// first column starting at or past the right edge
	end := sort.Search(n, func(i int) bool { return m.Left(i) >= hi })

	w.Start = max(frozen, start-overscan)
	w.End = min(n, end+overscan)
	if w.End < w.Start {
		w.End = w.Start
	}
	return w
}

// ScrollToColumn returns the smallest horizontal scroll change that shows
// column target in full, neither under the frozen columns nor past the right
// edge. The second result is false when no scroll is needed, the column is
// frozen, or target is out of range. Columns wider than the scrollable area
// are aligned to its left edge.
func ScrollToColumn(target int, scrollLeft, viewportWidth float32, m ColumnMetrics) (float32, bool) {
	if target < m.FrozenCount() || target >= m.Len() {
		return scrollLeft, false
	}
	fw := m.FrozenWidth()
	left := m.Left(target)
	right := left + m.Width(target)

	next := scrollLeft
	switch {
	case left < scrollLeft+fw:
		next = left - fw
	case right > scrollLeft+viewportWidth:
		next = min(right-viewportWidth, left-fw)
	}
	next = clampf(next, 0, maxf(0, m.TotalWidth()-viewportWidth))
	if next == scrollLeft {
		return scrollLeft, false
	}
	return next, true
}
