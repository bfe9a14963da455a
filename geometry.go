package grid

import (
	"math"
	"sort"
)

// RowTopOffset returns the content y offset of a row's top edge.
func RowTopOffset(row int, rowHeight float32) float32 {
	return float32(row) * rowHeight
}

// RowIndexAtOffset returns the row containing the content y offset.
// A non-positive row height yields row 0.
func RowIndexAtOffset(offset, rowHeight float32) int {
	if rowHeight <= 0 || offset <= 0 {
		return 0
	}
	return int(math.Floor(float64(offset)/float64(rowHeight) + 1e-9))
}

// ColumnMetrics is a cumulative-width table over an ordered column model.
// Frozen columns form a leading prefix and never scroll horizontally.
type ColumnMetrics struct {
	offsets []float32 // offsets[i] = left edge of column i, offsets[n] = total width
	frozen  int
}

// NewColumnMetrics builds the cumulative width table for cols.
// Only the leading run of frozen columns counts as frozen.
func NewColumnMetrics(cols []Column) ColumnMetrics {
	m := ColumnMetrics{offsets: make([]float32, len(cols)+1)}
	leading := true
	for i, c := range cols {
		w := c.Width
		if w < 0 {
			w = 0
		}
		m.offsets[i+1] = m.offsets[i] + w
		if leading && c.Frozen {
			m.frozen++
		} else {
			leading = false
		}
	}
	return m
}

// Len returns the number of columns.
func (m ColumnMetrics) Len() int {
	if len(m.offsets) == 0 {
		return 0
	}
	return len(m.offsets) - 1
}

// Left returns the content x offset of column i's left edge.
func (m ColumnMetrics) Left(i int) float32 {
	if i <= 0 || len(m.offsets) == 0 {
		return 0
	}
	if i >= len(m.offsets) {
		return m.offsets[len(m.offsets)-1]
	}
	return m.offsets[i]
}

// Width returns the width of column i, or 0 when out of range.
func (m ColumnMetrics) Width(i int) float32 {
	if i < 0 || i >= m.Len() {
		return 0
	}
	return m.offsets[i+1] - m.offsets[i]
}

// TotalWidth returns the sum of all column widths.
func (m ColumnMetrics) TotalWidth() float32 {
	if len(m.offsets) == 0 {
		return 0
	}
	return m.offsets[len(m.offsets)-1]
}

// FrozenCount returns the number of pinned leading columns.
func (m ColumnMetrics) FrozenCount() int { return m.frozen }

// FrozenWidth returns the combined width of the pinned leading columns.
func (m ColumnMetrics) FrozenWidth() float32 { return m.Left(m.frozen) }

// IndexAtOffset returns the column whose [left, right) span contains the
// content x offset. Offsets past the last column clamp to the last column.
func (m ColumnMetrics) IndexAtOffset(x float32) int {
	n := m.Len()
	if n == 0 || x <= 0 {
		return 0
	}
	// first column whose right edge is past x
	i := sort.Search(n, func(i int) bool { return m.offsets[i+1] > x })
	if i >= n {
		return n - 1
	}
	return i
}
