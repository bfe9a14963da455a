package grid

import (
	"context"
	"log/slog"
)

// Option configures a Grid.
type Option func(*Grid)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(g *Grid) { g.cfg = cfg }
}

// WithRowHeight sets the fixed row height.
func WithRowHeight(h float32) Option {
	return func(g *Grid) { g.cfg.RowHeight = h }
}

// WithSurface sets the primary scrollable surface.
func WithSurface(s Surface) Option {
	return func(g *Grid) { g.surface = s }
}

// WithOverlay sets the overlay scrollbar kept in sync with the surface.
func WithOverlay(sb Scrollbar) Option {
	return func(g *Grid) { g.overlay = sb }
}

// WithScheduler sets the scheduler for auto-scroll and settle timers.
// The default is a FrameClock the host must advance.
func WithScheduler(s Scheduler) Option {
	return func(g *Grid) { g.sched = s }
}

// WithPermission sets the modify-permission check. Without it the grid is
// read-only.
func WithPermission(fn PermissionFunc) Option {
	return func(g *Grid) { g.canModify = fn }
}

// WithModifyRecord sets the edit callback. Defaults to the provider's
// ModifyRecord when it implements Editor.
func WithModifyRecord(fn func(ctx context.Context, id, key string, value any) error) Option {
	return func(g *Grid) { g.modify = fn }
}

// WithLoadMore sets the callback run when the viewport reaches the last row.
// It must not block; the host loads asynchronously and then calls
// Grid.DataChanged or Grid.LoadMore.
func WithLoadMore(fn func()) Option {
	return func(g *Grid) { g.onHitBottom = fn }
}

// WithScrollStore sets the callback receiving the scroll position on Dispose.
func WithScrollStore(fn func(top, left float32)) Option {
	return func(g *Grid) { g.scrollStore = fn }
}

// WithScrollToRow jumps to row once the grid is created.
func WithScrollToRow(row int) Option {
	return func(g *Grid) { g.initialRow = row }
}

// WithLogger sets the grid's logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClipboard sets where Copy writes.
func WithClipboard(cp ClipboardProvider) Option {
	return func(g *Grid) { g.clipboard = cp }
}

// WithStyle sets the style used by Render.
func WithStyle(s Style) Option {
	return func(g *Grid) { g.lastStyle = s }
}
