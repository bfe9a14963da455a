package grid

// ComputeRenderWindow calculates the band of rows to materialize for a scroll
// offset: the rows intersecting the viewport plus overscan rows on each side,
// clamped to [0, rowCount].
func ComputeRenderWindow(scrollTop, viewportHeight float32, rowCount int, rowHeight float32, overscan int) RenderWindow {
	if rowCount <= 0 || rowHeight <= 0 {
		return RenderWindow{}
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}

	start := max(0, RowIndexAtOffset(scrollTop, rowHeight)-overscan)
	end := min(rowCount, ceilDiv(scrollTop+viewportHeight, rowHeight)+overscan)
	if start > rowCount {
		start = rowCount
	}
	if end < start {
		end = start
	}
	return RenderWindow{Start: start, End: end}
}

// RowClipper is the vertical windowing manager. It keeps the materialized row
// band and only moves a bound when it drifted more than the hysteresis away
// from the freshly computed value, or when it is near a data boundary.
// Overscan must exceed the hysteresis so the lag never exposes a gap.
//
// Usage:
//
//	rows := NewRowClipper(33, 10, 5)
//	rows.Update(scrollTop, viewportHeight, count)
//	for i := rows.Window().Start; i < rows.Window().End; i++ {
//	    y := rows.RowY(i, baseY, scrollTop)
//	}
type RowClipper struct {
	RowHeight  float32
	Overscan   int
	Hysteresis int

	window   RenderWindow
	visible  RenderWindow
	rowCount int
}

// NewRowClipper creates a clipper with an empty window.
func NewRowClipper(rowHeight float32, overscan, hysteresis int) *RowClipper {
	return &RowClipper{RowHeight: rowHeight, Overscan: overscan, Hysteresis: hysteresis}
}

// Update recomputes the window for a scroll event or resize, throttled by the
// hysteresis. Returns true if the window changed.
func (c *RowClipper) Update(scrollTop, viewportHeight float32, rowCount int) bool {
	if rowCount != c.rowCount {
		return c.Reset(scrollTop, viewportHeight, rowCount)
	}
	next := ComputeRenderWindow(scrollTop, viewportHeight, rowCount, c.RowHeight, c.Overscan)
	c.updateVisible(scrollTop, viewportHeight)

	cur := c.window
	if abs(next.Start-cur.Start) > c.Hysteresis || next.Start < c.Hysteresis {
		cur.Start = next.Start
	}
	if abs(next.End-cur.End) > c.Hysteresis || next.End > rowCount-c.Hysteresis {
		cur.End = next.End
	}
	// Bounds moved independently; never let them cross.
	if cur.Start > cur.End || cur.End > rowCount {
		cur = next
	}

	changed := cur != c.window
	if changed {
		gridLogger.Debug("row window moved",
			"from", c.window, "to", cur, "computed", next, "scrollTop", scrollTop)
	}
	c.window = cur
	return changed
}

// Reset recomputes the window unconditionally, e.g. after the row count changed.
func (c *RowClipper) Reset(scrollTop, viewportHeight float32, rowCount int) bool {
	next := ComputeRenderWindow(scrollTop, viewportHeight, rowCount, c.RowHeight, c.Overscan)
	c.rowCount = rowCount
	c.updateVisible(scrollTop, viewportHeight)
	changed := next != c.window
	if changed {
		gridLogger.Debug("row window reset", "from", c.window, "to", next, "rows", rowCount)
	}
	c.window = next
	return changed
}

func (c *RowClipper) updateVisible(scrollTop, viewportHeight float32) {
	if c.RowHeight <= 0 || c.rowCount == 0 {
		c.visible = RenderWindow{}
		return
	}
	start := int(float64(scrollTop)/float64(c.RowHeight) + 0.5)
	start = clampi(start, 0, c.rowCount)
	end := min(start+ceilDiv(viewportHeight, c.RowHeight), c.rowCount)
	c.visible = RenderWindow{Start: start, End: max(start, end)}
}

// Window returns the materialized row band.
func (c *RowClipper) Window() RenderWindow { return c.window }

// VisibleRows returns the rows actually on screen, without overscan.
func (c *RowClipper) VisibleRows() RenderWindow { return c.visible }

// RowCount returns the row count the window was computed for.
func (c *RowClipper) RowCount() int { return c.rowCount }

// UpperHeight is the pixel height of the spacer above the window.
func (c *RowClipper) UpperHeight() float32 {
	return float32(c.window.Start) * c.RowHeight
}

// LowerHeight is the pixel height of the spacer below the window.
func (c *RowClipper) LowerHeight() float32 {
	return float32(c.rowCount-c.window.End) * c.RowHeight
}

// ContentHeight returns the total scrollable extent.
func (c *RowClipper) ContentHeight() float32 {
	return float32(c.rowCount) * c.RowHeight
}

// RowY calculates the screen y of a row given the surface origin and scroll.
func (c *RowClipper) RowY(row int, baseY, scrollTop float32) float32 {
	return baseY + RowTopOffset(row, c.RowHeight) - scrollTop
}

// MaxScroll returns the maximum valid scroll offset.
func (c *RowClipper) MaxScroll(viewportHeight float32) float32 {
	return maxf(0, c.ContentHeight()-viewportHeight)
}

// ScrollToRow returns the scroll offset needed to make a row fully visible.
// The second result is false when the row is already visible or out of range.
func (c *RowClipper) ScrollToRow(row int, currentScroll, viewportHeight float32) (float32, bool) {
	if row < 0 || row >= c.rowCount {
		return currentScroll, false
	}

	rowTop := RowTopOffset(row, c.RowHeight)
	rowBottom := rowTop + c.RowHeight

	if rowTop < currentScroll {
		return rowTop, true
	}
	if rowBottom > currentScroll+viewportHeight {
		return clampf(rowBottom-viewportHeight, 0, c.MaxScroll(viewportHeight)), true
	}
	return currentScroll, false
}

// JumpScroll returns the offset that puts row at the top of the viewport,
// limited so the last page stays full.
func (c *RowClipper) JumpScroll(row int, viewportHeight float32) float32 {
	row = clampi(row, 0, max(0, c.rowCount-1))
	return clampf(RowTopOffset(row, c.RowHeight), 0, c.MaxScroll(viewportHeight))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
