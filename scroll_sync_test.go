package grid_test

import (
	"testing"
	"time"

	"github.com/go-theft-auto/grid"
)

// syncFixture wires a ScrollSync between a surface and a scrollbar the way
// Grid does, without the rest of the grid.
type syncFixture struct {
	surface *grid.MemorySurface
	overlay *grid.MemoryScrollbar
	clock   *grid.FrameClock
	sync    *grid.ScrollSync
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		surface: grid.NewMemorySurface(grid.Rect{W: 800, H: 330}),
		overlay: grid.NewMemoryScrollbar(),
		clock:   grid.NewFrameClock(),
	}
	f.surface.SetContentSize(800, 33000)
	f.sync = grid.NewScrollSync(f.surface, f.overlay, f.clock, 300*time.Millisecond, nil)
	f.surface.SetScrollHandler(func() { f.sync.OnPrimaryScroll(f.surface.ScrollTop()) })
	f.overlay.SetScrollHandler(func() { f.sync.OnOverlayScroll(f.overlay.ScrollTop()) })
	return f
}

func TestScrollSyncOverlayDriven(t *testing.T) {
	f := newSyncFixture()

	f.overlay.SetScrollTop(500)

	if f.surface.ScrollTop() != 500 {
		t.Errorf("Expected primary at 500, got %v", f.surface.ScrollTop())
	}
	if f.overlay.Writes() != 1 {
		t.Errorf("Expected exactly 1 overlay write, got %d", f.overlay.Writes())
	}
	if f.sync.Guarded() {
		t.Error("Expected guard consumed by the primary scroll")
	}
}

func TestScrollSyncPrimaryDriven(t *testing.T) {
	f := newSyncFixture()

	f.surface.SetScrollTop(1200)
	if f.overlay.ScrollTop() != 1200 {
		t.Errorf("Expected overlay at 1200, got %v", f.overlay.ScrollTop())
	}
	if f.overlay.Writes() != 1 {
		t.Errorf("Expected 1 overlay write, got %d", f.overlay.Writes())
	}
	if f.sync.LastTop() != 1200 {
		t.Errorf("Expected last top 1200, got %v", f.sync.LastTop())
	}
}

func TestScrollSyncSameValueSkipped(t *testing.T) {
	f := newSyncFixture()
	f.surface.SetScrollTop(300)
	writes := f.overlay.Writes()

	// A primary scroll event reporting the overlay's own offset.
	f.sync.OnPrimaryScroll(300)
	if f.overlay.Writes() != writes {
		t.Errorf("Expected no overlay write for the same value, got %d", f.overlay.Writes()-writes)
	}

	// An overlay event at the last primary offset.
	if f.sync.OnOverlayScroll(300) {
		t.Error("Expected overlay scroll at the last primary offset to be a no-op")
	}
	if f.sync.Guarded() {
		t.Error("Expected no guard after a no-op")
	}
}

func TestScrollSyncUnchangedPrimaryClearsGuard(t *testing.T) {
	f := newSyncFixture()
	f.surface.SetScrollTop(33000 - 330)

	// Past the end: the primary clamps and does not move.
	if f.sync.OnOverlayScroll(99999) {
		t.Error("Expected no primary write past the end")
	}
	if f.sync.Guarded() {
		t.Error("Expected guard cleared when the primary did not move")
	}
}

func TestScrollSyncOverlayPastEndClamps(t *testing.T) {
	f := newSyncFixture()
	end := float32(33000 - 330)

	f.overlay.SetScrollTop(1e6)
	if f.surface.ScrollTop() != end {
		t.Errorf("Expected primary clamped to %v, got %v", end, f.surface.ScrollTop())
	}
	if f.overlay.ScrollTop() != end {
		t.Errorf("Expected overlay pulled back to %v, got %v", end, f.overlay.ScrollTop())
	}
	if f.overlay.Writes() != 2 {
		t.Errorf("Expected the user write plus one correction, got %d", f.overlay.Writes())
	}
	if f.sync.Guarded() {
		t.Error("Expected guard consumed by the primary scroll")
	}

	// Already at the end: the primary does not move, the overlay still follows.
	f.overlay.SetScrollTop(2e6)
	if f.overlay.ScrollTop() != end {
		t.Errorf("Expected overlay pulled back to %v, got %v", end, f.overlay.ScrollTop())
	}
	if f.overlay.Writes() != 4 {
		t.Errorf("Expected one more correction, got %d writes", f.overlay.Writes())
	}
}

func TestScrollSyncSettle(t *testing.T) {
	f := newSyncFixture()
	if !f.sync.Settled() {
		t.Fatal("Expected settled before any scroll")
	}

	f.surface.SetScrollTop(100)
	if f.sync.Settled() {
		t.Error("Expected unsettled right after a scroll")
	}

	f.clock.Advance(200 * time.Millisecond)
	f.surface.SetScrollTop(200)
	f.clock.Advance(200 * time.Millisecond)
	if f.sync.Settled() {
		t.Error("Expected settle timer restarted by the second scroll")
	}

	f.clock.Advance(100 * time.Millisecond)
	if !f.sync.Settled() {
		t.Error("Expected settled 300ms after the last scroll")
	}
	if f.clock.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", f.clock.Pending())
	}
}

func TestScrollSyncSettleClearsStaleGuard(t *testing.T) {
	f := newSyncFixture()
	f.surface.SetScrollHandler(nil)

	// Without a primary handler the guard is never consumed.
	f.sync.OnOverlayScroll(400)
	if !f.sync.Guarded() {
		t.Fatal("Expected guard set")
	}
	f.sync.OnPrimaryScroll(400)
	f.sync.OnOverlayScroll(800)
	f.clock.Advance(300 * time.Millisecond)
	if f.sync.Guarded() {
		t.Error("Expected settle timer to clear the guard")
	}
}

func TestScrollSyncOverlayReleased(t *testing.T) {
	f := newSyncFixture()
	f.surface.SetScrollHandler(nil)
	f.sync.OnOverlayScroll(400)
	f.sync.OverlayReleased()
	if f.sync.Guarded() {
		t.Error("Expected release to clear the guard")
	}
}

func TestScrollSyncUnmountedRetry(t *testing.T) {
	f := newSyncFixture()
	f.surface.SetMounted(false)

	if f.sync.OnOverlayScroll(660) {
		t.Error("Expected no write while unmounted")
	}
	if f.surface.ScrollTop() != 0 {
		t.Errorf("Expected primary untouched, got %v", f.surface.ScrollTop())
	}

	f.surface.SetMounted(true)
	if !f.sync.Retry() {
		t.Error("Expected retry to apply the deferred offset")
	}
	if f.surface.ScrollTop() != 660 {
		t.Errorf("Expected primary at 660, got %v", f.surface.ScrollTop())
	}
	if f.sync.Retry() {
		t.Error("Expected nothing left to retry")
	}
}

func TestScrollSyncStop(t *testing.T) {
	f := newSyncFixture()
	f.surface.SetScrollTop(100)
	f.sync.Stop()
	if f.clock.Pending() != 0 {
		t.Errorf("Expected settle timer canceled, got %d", f.clock.Pending())
	}
	writes := f.overlay.Writes()
	f.surface.SetScrollTop(200)
	if f.overlay.Writes() != writes {
		t.Error("Expected no sync after Stop")
	}
}
