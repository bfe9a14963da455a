package grid_test

import (
	"math/rand"
	"testing"

	"github.com/go-theft-auto/grid"
)

const (
	testRowHeight = 33
	testOverscan  = 10
)

func TestComputeRenderWindowAtTop(t *testing.T) {
	w := grid.ComputeRenderWindow(0, 330, 1000, testRowHeight, testOverscan)
	want := grid.RenderWindow{Start: 0, End: 20}
	if w != want {
		t.Errorf("Expected %+v, got %+v", want, w)
	}
}

func TestComputeRenderWindowScrolled(t *testing.T) {
	w := grid.ComputeRenderWindow(3300, 330, 1000, testRowHeight, testOverscan)
	want := grid.RenderWindow{Start: 90, End: 120}
	if w != want {
		t.Errorf("Expected %+v, got %+v", want, w)
	}
}

func TestComputeRenderWindowBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		count := rng.Intn(300)
		top := float32(rng.Intn(20000))
		height := float32(rng.Intn(1200))
		w := grid.ComputeRenderWindow(top, height, count, testRowHeight, testOverscan)
		if w.Start < 0 || w.Start > w.End || w.End > count {
			t.Fatalf("window %+v out of bounds for count=%d top=%v height=%v", w, count, top, height)
		}
		again := grid.ComputeRenderWindow(top, height, count, testRowHeight, testOverscan)
		if again != w {
			t.Fatalf("Expected identical windows, got %+v and %+v", w, again)
		}
	}
}

func TestComputeRenderWindowEmpty(t *testing.T) {
	if w := grid.ComputeRenderWindow(500, 330, 0, testRowHeight, testOverscan); w.Len() != 0 {
		t.Errorf("Expected empty window, got %+v", w)
	}
}

func TestRowClipperExtentInvariant(t *testing.T) {
	c := grid.NewRowClipper(testRowHeight, testOverscan, 5)
	rng := rand.New(rand.NewSource(7))
	count := 1000
	c.Reset(0, 330, count)
	for step := 0; step < 3000; step++ {
		if step%500 == 499 {
			count += rng.Intn(50) - 20
		}
		maxTop := float32(count*testRowHeight - 330)
		top := float32(rng.Intn(int(maxf(maxTop, 1))))
		c.Update(top, 330, count)

		w := c.Window()
		if w.Start < 0 || w.Start > w.End || w.End > count {
			t.Fatalf("step %d: window %+v out of bounds for %d rows", step, w, count)
		}
		total := c.UpperHeight() + float32(w.Len())*testRowHeight + c.LowerHeight()
		if total != float32(count)*testRowHeight {
			t.Fatalf("step %d: extent %v, want %v", step, total, float32(count)*testRowHeight)
		}
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func TestRowClipperNoGapWhileScrolling(t *testing.T) {
	c := grid.NewRowClipper(testRowHeight, testOverscan, 5)
	c.Reset(0, 330, 1000)
	for top := float32(0); top < 30000; top += 7 {
		c.Update(top, 330, 1000)
		visible := grid.ComputeRenderWindow(top, 330, 1000, testRowHeight, 0)
		w := c.Window()
		if visible.Start < w.Start || visible.End > w.End {
			t.Fatalf("scrollTop %v: visible rows %+v not inside window %+v", top, visible, w)
		}
	}
}

func TestRowClipperHysteresis(t *testing.T) {
	c := grid.NewRowClipper(testRowHeight, testOverscan, 5)
	c.Reset(0, 330, 1000)

	// Two rows down: end moves by 2, inside the hysteresis.
	if c.Update(66, 330, 1000) {
		t.Errorf("Expected no window change, got %+v", c.Window())
	}
	if want := (grid.RenderWindow{Start: 0, End: 20}); c.Window() != want {
		t.Errorf("Expected %+v, got %+v", want, c.Window())
	}

	// Seven rows down: end moves by 7.
	if !c.Update(231, 330, 1000) {
		t.Error("Expected window change")
	}
	if want := (grid.RenderWindow{Start: 0, End: 27}); c.Window() != want {
		t.Errorf("Expected %+v, got %+v", want, c.Window())
	}
}

func TestRowClipperNearEndAlwaysUpdates(t *testing.T) {
	c := grid.NewRowClipper(testRowHeight, testOverscan, 5)
	c.Reset(float32(980*testRowHeight), 330, 1000)
	if c.Window().End != 1000 {
		t.Fatalf("Expected window to reach the last row, got %+v", c.Window())
	}
	// Near the last row the end follows exactly, even for a one row move.
	c.Update(float32(979*testRowHeight), 330, 1000)
	if c.Window().End != 999 {
		t.Errorf("Expected end 999, got %+v", c.Window())
	}
}

func TestRowClipperRowCountChangeResets(t *testing.T) {
	c := grid.NewRowClipper(testRowHeight, testOverscan, 5)
	c.Reset(0, 330, 1000)
	c.Update(66, 330, 1000)

	if !c.Update(66, 330, 12) {
		t.Error("Expected window change on row count change")
	}
	want := grid.ComputeRenderWindow(66, 330, 12, testRowHeight, testOverscan)
	if c.Window() != want {
		t.Errorf("Expected %+v, got %+v", want, c.Window())
	}
	if c.LowerHeight() != 0 {
		t.Errorf("Expected no lower spacer, got %v", c.LowerHeight())
	}
}

func TestRowClipperVisibleRows(t *testing.T) {
	c := grid.NewRowClipper(testRowHeight, testOverscan, 5)
	c.Reset(3300, 330, 1000)
	if want := (grid.RenderWindow{Start: 100, End: 110}); c.VisibleRows() != want {
		t.Errorf("Expected %+v, got %+v", want, c.VisibleRows())
	}
	// Rounds to the nearest row.
	c.Update(3300+20, 330, 1000)
	if c.VisibleRows().Start != 101 {
		t.Errorf("Expected first visible row 101, got %d", c.VisibleRows().Start)
	}
}

func TestRowClipperScrollToRow(t *testing.T) {
	c := grid.NewRowClipper(testRowHeight, testOverscan, 5)
	c.Reset(3300, 330, 1000)

	if _, ok := c.ScrollToRow(105, 3300, 330); ok {
		t.Error("Expected visible row to need no scroll")
	}
	if top, ok := c.ScrollToRow(99, 3300, 330); !ok || top != 99*testRowHeight {
		t.Errorf("Expected scroll to %v, got %v (%v)", 99*testRowHeight, top, ok)
	}
	if top, ok := c.ScrollToRow(110, 3300, 330); !ok || top != 111*testRowHeight-330 {
		t.Errorf("Expected scroll to %v, got %v (%v)", 111*testRowHeight-330, top, ok)
	}
	if _, ok := c.ScrollToRow(1000, 3300, 330); ok {
		t.Error("Expected out of range row to be ignored")
	}
}

func TestRowClipperJumpScroll(t *testing.T) {
	c := grid.NewRowClipper(testRowHeight, testOverscan, 5)
	c.Reset(0, 330, 100)
	if got := c.JumpScroll(20, 330); got != 20*testRowHeight {
		t.Errorf("Expected %v, got %v", 20*testRowHeight, got)
	}
	// The last page stays full.
	if got := c.JumpScroll(99, 330); got != 100*testRowHeight-330 {
		t.Errorf("Expected %v, got %v", 100*testRowHeight-330, got)
	}
}
