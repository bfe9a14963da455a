package grid

import (
	"log/slog"
	"time"
)

// EdgeZone is the viewport band the pointer is in during a drag.
type EdgeZone int

const (
	EdgeNone EdgeZone = iota
	EdgeRight
	EdgeLeft
	EdgeBottom
	EdgeTop
)

func (z EdgeZone) String() string {
	switch z {
	case EdgeRight:
		return "right"
	case EdgeLeft:
		return "left"
	case EdgeBottom:
		return "bottom"
	case EdgeTop:
		return "top"
	default:
		return "none"
	}
}

// Horizontal reports whether the zone scrolls on the x axis.
func (z EdgeZone) Horizontal() bool { return z == EdgeRight || z == EdgeLeft }

// ClassifyEdge returns the edge zone containing p. Zones are band pixels wide
// inside bounds; the left zone starts after leftInset (the frozen columns).
// Only one zone is returned, checked right, left, bottom, top.
func ClassifyEdge(p Vec2, bounds Rect, leftInset, band float32) EdgeZone {
	x := p.X - bounds.X
	y := p.Y - bounds.Y
	switch {
	case x+band > bounds.W:
		return EdgeRight
	case x-band < leftInset:
		return EdgeLeft
	case y+band > bounds.H:
		return EdgeBottom
	case y-band < 0:
		return EdgeTop
	}
	return EdgeNone
}

// AutoScroller scrolls the surface while a range drag is near an edge. It
// owns at most one repeating timer, for horizontal scrolling. Vertical zones
// scroll once per pointer move.
type AutoScroller struct {
	surface Surface
	sched   Scheduler
	logger  *slog.Logger

	Band           float32
	HorizontalStep float32
	VerticalStep   float32
	Interval       time.Duration
	LeftInset      float32 // Frozen width; the left zone starts after it

	// OnTick runs after every timer-driven scroll, e.g. to re-hit-test the
	// cell under the pointer.
	OnTick func()

	timer Timer
	dir   EdgeZone
}

// NewAutoScroller creates a controller using cfg's edge constants.
func NewAutoScroller(surface Surface, sched Scheduler, cfg Config, logger *slog.Logger) *AutoScroller {
	if logger == nil {
		logger = gridLogger
	}
	return &AutoScroller{
		surface:        surface,
		sched:          sched,
		logger:         logger,
		Band:           cfg.EdgeBand,
		HorizontalStep: cfg.HorizontalStep,
		VerticalStep:   cfg.VerticalStep,
		Interval:       cfg.AutoScrollInterval,
	}
}

// Active reports whether the horizontal timer is running.
func (a *AutoScroller) Active() bool { return a.timer != nil }

// Direction returns the zone of the running timer, or EdgeNone.
func (a *AutoScroller) Direction() EdgeZone { return a.dir }

// Evaluate handles one pointer move during a drag at screen position p.
func (a *AutoScroller) Evaluate(p Vec2) EdgeZone {
	if a.surface == nil || !a.surface.Mounted() {
		a.Stop()
		return EdgeNone
	}
	zone := ClassifyEdge(p, a.surface.Bounds(), a.LeftInset, a.Band)
	switch zone {
	case EdgeRight, EdgeLeft:
		a.start(zone)
	case EdgeBottom:
		a.Stop()
		a.surface.SetScrollTop(a.surface.ScrollTop() + a.VerticalStep)
	case EdgeTop:
		a.Stop()
		a.surface.SetScrollTop(maxf(0, a.surface.ScrollTop()-a.VerticalStep))
	default:
		a.Stop()
	}
	return zone
}

func (a *AutoScroller) start(dir EdgeZone) {
	if a.timer != nil && a.dir == dir {
		return
	}
	a.Stop()
	if a.sched == nil {
		return
	}
	a.dir = dir
	a.timer = a.sched.Every(a.Interval, a.tick)
	a.logger.Debug("auto-scroll started", "dir", dir)
}

func (a *AutoScroller) tick() {
	left := a.surface.ScrollLeft()
	if a.dir == EdgeLeft {
		if left <= 0 {
			a.Stop()
			return
		}
		a.surface.SetScrollLeft(maxf(0, left-a.HorizontalStep))
	} else {
		a.surface.SetScrollLeft(left + a.HorizontalStep)
		if a.surface.ScrollLeft() == left {
			// Clamped at the right end.
			a.Stop()
			return
		}
	}
	if a.OnTick != nil {
		a.OnTick()
	}
}

// Stop cancels the horizontal timer, if any.
func (a *AutoScroller) Stop() {
	if a.timer == nil {
		return
	}
	a.timer.Stop()
	a.logger.Debug("auto-scroll stopped", "dir", a.dir)
	a.timer = nil
	a.dir = EdgeNone
}
