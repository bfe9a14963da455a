package grid_test

import (
	"testing"
	"time"

	"github.com/go-theft-auto/grid"
)

var testBounds = grid.Rect{X: 0, Y: 0, W: 800, H: 400}

func newAutoScroller() (*grid.AutoScroller, *grid.MemorySurface, *grid.FrameClock) {
	surface := grid.NewMemorySurface(testBounds)
	surface.SetContentSize(4000, 40000)
	clock := grid.NewFrameClock()
	a := grid.NewAutoScroller(surface, clock, grid.DefaultConfig(), nil)
	a.LeftInset = 100
	return a, surface, clock
}

func TestClassifyEdge(t *testing.T) {
	tests := []struct {
		name string
		p    grid.Vec2
		want grid.EdgeZone
	}{
		{"middle", grid.Vec2{X: 400, Y: 200}, grid.EdgeNone},
		{"right", grid.Vec2{X: 750, Y: 200}, grid.EdgeRight},
		{"left past frozen", grid.Vec2{X: 150, Y: 200}, grid.EdgeLeft},
		{"bottom", grid.Vec2{X: 400, Y: 350}, grid.EdgeBottom},
		{"top", grid.Vec2{X: 400, Y: 50}, grid.EdgeTop},
		{"right beats bottom", grid.Vec2{X: 750, Y: 350}, grid.EdgeRight},
		{"left beats top", grid.Vec2{X: 150, Y: 50}, grid.EdgeLeft},
		{"between bands", grid.Vec2{X: 400, Y: 150}, grid.EdgeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.ClassifyEdge(tt.p, testBounds, 100, 100); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	// A viewport shorter than two bands is in both vertical zones; bottom wins.
	short := grid.Rect{W: 800, H: 150}
	if got := grid.ClassifyEdge(grid.Vec2{X: 400, Y: 75}, short, 100, 100); got != grid.EdgeBottom {
		t.Errorf("Expected bottom, got %v", got)
	}
}

func TestAutoScrollSingleTimer(t *testing.T) {
	a, surface, clock := newAutoScroller()

	a.Evaluate(grid.Vec2{X: 750, Y: 200})
	if clock.Pending() != 1 {
		t.Fatalf("Expected 1 timer, got %d", clock.Pending())
	}
	if a.Direction() != grid.EdgeRight {
		t.Errorf("Expected right, got %v", a.Direction())
	}

	// Further moves inside the same zone keep the same timer.
	a.Evaluate(grid.Vec2{X: 760, Y: 220})
	a.Evaluate(grid.Vec2{X: 790, Y: 100})
	if clock.Pending() != 1 {
		t.Fatalf("Expected 1 timer, got %d", clock.Pending())
	}

	clock.Advance(30 * time.Millisecond)
	if surface.ScrollLeft() != 60 {
		t.Errorf("Expected scrollLeft 60 after three ticks, got %v", surface.ScrollLeft())
	}

	a.Evaluate(grid.Vec2{X: 400, Y: 200})
	if clock.Pending() != 0 {
		t.Errorf("Expected no timer after leaving the zone, got %d", clock.Pending())
	}
	if a.Active() {
		t.Error("Expected auto-scroll to be inactive")
	}
}

func TestAutoScrollDirectionChange(t *testing.T) {
	a, surface, clock := newAutoScroller()
	surface.SetScrollLeft(500)

	a.Evaluate(grid.Vec2{X: 750, Y: 200})
	a.Evaluate(grid.Vec2{X: 150, Y: 200})
	if clock.Pending() != 1 || a.Direction() != grid.EdgeLeft {
		t.Fatalf("Expected one left timer, got %d timers dir %v", clock.Pending(), a.Direction())
	}
	clock.Advance(10 * time.Millisecond)
	if surface.ScrollLeft() != 480 {
		t.Errorf("Expected 480, got %v", surface.ScrollLeft())
	}
}

func TestAutoScrollLeftStopsAtZero(t *testing.T) {
	a, surface, clock := newAutoScroller()
	surface.SetScrollLeft(30)

	a.Evaluate(grid.Vec2{X: 150, Y: 200})
	clock.Advance(50 * time.Millisecond)
	if surface.ScrollLeft() != 0 {
		t.Errorf("Expected scrollLeft 0, got %v", surface.ScrollLeft())
	}
	if a.Active() || clock.Pending() != 0 {
		t.Errorf("Expected timer to stop at the left end, got %d", clock.Pending())
	}
}

func TestAutoScrollRightStopsWhenClamped(t *testing.T) {
	a, surface, clock := newAutoScroller()
	surface.SetScrollLeft(3190)

	a.Evaluate(grid.Vec2{X: 750, Y: 200})
	clock.Advance(100 * time.Millisecond)
	if surface.ScrollLeft() != 3200 {
		t.Errorf("Expected scrollLeft clamped at 3200, got %v", surface.ScrollLeft())
	}
	if a.Active() {
		t.Error("Expected timer to stop once clamped")
	}
}

func TestAutoScrollVertical(t *testing.T) {
	a, surface, clock := newAutoScroller()
	cfg := grid.DefaultConfig()

	a.Evaluate(grid.Vec2{X: 400, Y: 350})
	if surface.ScrollTop() != cfg.VerticalStep {
		t.Errorf("Expected one vertical step, got %v", surface.ScrollTop())
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no timer for vertical zones, got %d", clock.Pending())
	}

	a.Evaluate(grid.Vec2{X: 400, Y: 50})
	a.Evaluate(grid.Vec2{X: 400, Y: 50})
	if surface.ScrollTop() != 0 {
		t.Errorf("Expected top zone to clamp at 0, got %v", surface.ScrollTop())
	}
}

func TestAutoScrollVerticalCancelsHorizontal(t *testing.T) {
	a, _, clock := newAutoScroller()
	a.Evaluate(grid.Vec2{X: 750, Y: 200})
	a.Evaluate(grid.Vec2{X: 400, Y: 350})
	if clock.Pending() != 0 {
		t.Errorf("Expected horizontal timer canceled, got %d", clock.Pending())
	}
}

func TestAutoScrollOnTick(t *testing.T) {
	a, _, clock := newAutoScroller()
	ticks := 0
	a.OnTick = func() { ticks++ }
	a.Evaluate(grid.Vec2{X: 750, Y: 200})
	clock.Advance(25 * time.Millisecond)
	if ticks != 2 {
		t.Errorf("Expected 2 ticks, got %d", ticks)
	}
}

func TestAutoScrollUnmounted(t *testing.T) {
	a, surface, clock := newAutoScroller()
	surface.SetMounted(false)
	if zone := a.Evaluate(grid.Vec2{X: 750, Y: 200}); zone != grid.EdgeNone {
		t.Errorf("Expected no zone on an unmounted surface, got %v", zone)
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no timer, got %d", clock.Pending())
	}
}
