package grid

import (
	"log/slog"
	"time"
)

// ScrollSync keeps the overlay scrollbar and the primary surface at the same
// vertical offset without letting their scroll handlers feed each other.
//
// Two rules break the cycle. An overlay-driven write sets the guard, and the
// primary's next scroll handler consumes it instead of writing back. A
// primary scroll whose offset already equals the overlay's is not propagated.
// Separately, the overlay counts as settled once no scroll happened for the
// settle delay; that flag only affects presentation.
type ScrollSync struct {
	primary Surface
	overlay Scrollbar
	sched   Scheduler
	delay   time.Duration
	logger  *slog.Logger

	lastTop     float32 // Primary offset seen by the last primary scroll
	guard       bool
	settled     bool
	settleTimer Timer
	pending     *float32 // Overlay offset that arrived while unmounted
	stopped     bool
}

// NewScrollSync wires primary and overlay. Either may be nil.
func NewScrollSync(primary Surface, overlay Scrollbar, sched Scheduler, settleDelay time.Duration, logger *slog.Logger) *ScrollSync {
	if logger == nil {
		logger = gridLogger
	}
	return &ScrollSync{
		primary: primary,
		overlay: overlay,
		sched:   sched,
		delay:   settleDelay,
		logger:  logger,
		settled: true,
	}
}

// Guarded reports whether an overlay-driven write is waiting for the
// primary's scroll handler.
func (s *ScrollSync) Guarded() bool { return s.guard }

// Settled reports whether the settle delay passed since the last scroll.
func (s *ScrollSync) Settled() bool { return s.settled }

// LastTop returns the primary offset seen by the last primary scroll.
func (s *ScrollSync) LastTop() float32 { return s.lastTop }

// OnPrimaryScroll runs in the primary surface's scroll handler.
func (s *ScrollSync) OnPrimaryScroll(top float32) {
	if s.stopped {
		return
	}
	s.lastTop = top
	switch {
	case s.guard:
		s.guard = false
		s.logger.Debug("overlay sync skipped, write came from overlay", "top", top)
	case s.overlay == nil:
	case s.overlay.ScrollTop() == top:
		s.logger.Debug("overlay sync skipped, same value", "top", top)
	default:
		s.overlay.SetScrollTop(top)
	}
	s.restartSettle()
}

// OnOverlayScroll runs when the overlay scrollbar moved to top. It returns
// true if the primary surface was written.
func (s *ScrollSync) OnOverlayScroll(top float32) bool {
	if s.stopped || s.primary == nil {
		return false
	}
	if top == s.lastTop {
		return false
	}
	if !s.primary.Mounted() {
		s.pending = &top
		s.logger.Debug("overlay scroll deferred, surface not mounted", "top", top)
		return false
	}
	s.pending = nil
	before := s.primary.ScrollTop()
	s.guard = true
	s.primary.SetScrollTop(top)
	got := s.primary.ScrollTop()
	moved := got != before
	if !moved {
		// No scroll event will follow an unchanged offset.
		s.guard = false
	}
	if got != top {
		s.reconcileOverlay(got)
	}
	return moved
}

// reconcileOverlay writes the primary's clamped offset back to the overlay
// once, after an overlay write past the content extent.
func (s *ScrollSync) reconcileOverlay(top float32) {
	if s.overlay == nil || s.overlay.ScrollTop() == top {
		return
	}
	s.logger.Debug("overlay clamped to primary", "top", top)
	s.overlay.SetScrollTop(top)
}

// Retry applies an overlay offset deferred while the surface was unmounted.
func (s *ScrollSync) Retry() bool {
	if s.pending == nil {
		return false
	}
	top := *s.pending
	return s.OnOverlayScroll(top)
}

// OverlayReleased runs on pointer-up over the overlay scrollbar.
func (s *ScrollSync) OverlayReleased() {
	s.guard = false
}

func (s *ScrollSync) restartSettle() {
	if s.settleTimer != nil {
		s.settleTimer.Stop()
		s.settleTimer = nil
	}
	if s.sched == nil {
		return
	}
	s.settled = false
	s.settleTimer = s.sched.AfterFunc(s.delay, func() {
		s.settleTimer = nil
		s.settled = true
		s.guard = false
	})
}

// Stop cancels the settle timer and ignores later scrolls.
func (s *ScrollSync) Stop() {
	s.stopped = true
	s.guard = false
	s.pending = nil
	if s.settleTimer != nil {
		s.settleTimer.Stop()
		s.settleTimer = nil
	}
}
