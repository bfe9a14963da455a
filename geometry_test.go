package grid_test

import (
	"testing"

	"github.com/go-theft-auto/grid"
)

func TestRowOffsetRoundTrip(t *testing.T) {
	for _, h := range []float32{1, 20, 33, 33.5, 48} {
		for i := 0; i < 5000; i++ {
			got := grid.RowIndexAtOffset(grid.RowTopOffset(i, h), h)
			if got != i {
				t.Fatalf("RowIndexAtOffset(RowTopOffset(%d, %v)) = %d", i, h, got)
			}
		}
	}
}

func TestRowIndexAtOffset(t *testing.T) {
	tests := []struct {
		offset float32
		height float32
		want   int
	}{
		{0, 33, 0},
		{32.9, 33, 0},
		{33, 33, 1},
		{3300, 33, 100},
		{-10, 33, 0},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := grid.RowIndexAtOffset(tt.offset, tt.height); got != tt.want {
			t.Errorf("RowIndexAtOffset(%v, %v) = %d, want %d", tt.offset, tt.height, got, tt.want)
		}
	}
}

func testColumns(widths ...float32) []grid.Column {
	cols := make([]grid.Column, len(widths))
	for i, w := range widths {
		cols[i] = grid.Column{Key: string(rune('a' + i)), Width: w, Editable: true}
	}
	return cols
}

func TestColumnMetrics(t *testing.T) {
	cols := testColumns(100, 50, 200, 80)
	cols[0].Frozen = true
	cols[2].Frozen = true // not part of the leading run
	m := grid.NewColumnMetrics(cols)

	if m.Len() != 4 {
		t.Fatalf("Expected 4 columns, got %d", m.Len())
	}
	if m.FrozenCount() != 1 {
		t.Errorf("Expected 1 frozen column, got %d", m.FrozenCount())
	}
	if m.FrozenWidth() != 100 {
		t.Errorf("Expected frozen width 100, got %v", m.FrozenWidth())
	}
	if m.TotalWidth() != 430 {
		t.Errorf("Expected total width 430, got %v", m.TotalWidth())
	}
	if m.Left(2) != 150 || m.Width(2) != 200 {
		t.Errorf("Expected column 2 at 150 width 200, got %v width %v", m.Left(2), m.Width(2))
	}

	offsets := []struct {
		x    float32
		want int
	}{
		{0, 0}, {99, 0}, {100, 1}, {149, 1}, {150, 2}, {349, 2}, {350, 3}, {429, 3}, {1000, 3},
	}
	for _, tt := range offsets {
		if got := m.IndexAtOffset(tt.x); got != tt.want {
			t.Errorf("IndexAtOffset(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestColumnMetricsRoundTrip(t *testing.T) {
	m := grid.NewColumnMetrics(testColumns(90, 120, 33, 250, 60, 75))
	for i := 0; i < m.Len(); i++ {
		if got := m.IndexAtOffset(m.Left(i)); got != i {
			t.Errorf("IndexAtOffset(Left(%d)) = %d", i, got)
		}
	}
}

func TestColumnMetricsEmpty(t *testing.T) {
	m := grid.NewColumnMetrics(nil)
	if m.Len() != 0 || m.TotalWidth() != 0 || m.IndexAtOffset(50) != 0 {
		t.Errorf("Expected empty metrics, got len=%d total=%v", m.Len(), m.TotalWidth())
	}
}
