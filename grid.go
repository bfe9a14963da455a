package grid

import (
	"context"
	"fmt"
	"log/slog"
)

// Grid is one records body: a virtualized, selectable view over a
// DataProvider hosted on a scrollable Surface.
//
// All methods must be called from the host's event loop. Timer callbacks run
// through the Scheduler on that same loop, so no locking is needed.
type Grid struct {
	cfg      Config
	provider DataProvider
	columns  []Column
	metrics  ColumnMetrics

	surface  Surface
	overlay  Scrollbar
	sched    Scheduler
	logger   *slog.Logger
	notifies bool // Surface reports its own scroll events

	viewport Viewport
	rows     *RowClipper
	cols     ColumnWindow

	selection *SelectionEngine
	sync      *ScrollSync
	auto      *AutoScroller
	bus       *Bus
	cache     *FrameStore[Record]
	actions   *ActionRegistry
	clipboard ClipboardProvider

	canModify   PermissionFunc
	modify      func(ctx context.Context, id, key string, value any) error
	onHitBottom func()
	scrollStore func(top, left float32)
	initialRow  int

	lastPointer Vec2
	atBottom    bool
	thumbDrag   *thumbDrag
	lastStyle   Style
	fontTexture uint32
	disposed    bool
}

// New creates a grid over provider with the given columns.
func New(provider DataProvider, columns []Column, opts ...Option) (*Grid, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil data provider", ErrInvalidConfig)
	}
	g := &Grid{
		cfg:        DefaultConfig(),
		provider:   provider,
		logger:     gridLogger,
		bus:        NewBus(),
		cache:      NewFrameStore[Record](),
		actions:    NewActionRegistry(),
		initialRow: -1,
		lastStyle:  DefaultStyle(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	if g.surface == nil {
		g.surface = NewMemorySurface(Rect{})
	}
	if g.sched == nil {
		g.sched = NewFrameClock()
	}
	if g.modify == nil {
		if ed, ok := provider.(Editor); ok {
			g.modify = ed.ModifyRecord
		}
	}

	g.rows = NewRowClipper(g.cfg.RowHeight, g.cfg.Overscan, g.cfg.Hysteresis)
	g.selection = NewSelectionEngine(g.bus, g.logger)
	g.selection.Affordance = g.directEditable
	g.sync = NewScrollSync(g.surface, g.overlay, g.sched, g.cfg.SettleDelay, g.logger)
	g.auto = NewAutoScroller(g.surface, g.sched, g.cfg, g.logger)
	g.auto.OnTick = g.retrack
	g.selection.OnChange = func(next Selection) {
		// Auto-scroll lives only as long as an uncommitted range.
		if !next.Dragging() {
			g.auto.Stop()
		}
	}

	if n, ok := g.surface.(ScrollNotifier); ok {
		g.notifies = true
		n.SetScrollHandler(g.HandleScroll)
	}
	if n, ok := g.overlay.(ScrollNotifier); ok {
		n.SetScrollHandler(func() { g.HandleOverlayScroll(g.overlay.ScrollTop()) })
	}

	g.registerDefaultActions()
	g.setColumns(columns)
	g.DataChanged()

	if g.initialRow >= 0 {
		g.JumpToRow(g.initialRow)
	}
	return g, nil
}

// Config returns the grid's configuration.
func (g *Grid) Config() Config { return g.cfg }

// Bus returns the grid's event bus.
func (g *Grid) Bus() *Bus { return g.bus }

// Scheduler returns the scheduler driving the grid's timers.
func (g *Grid) Scheduler() Scheduler { return g.sched }

// Surface returns the hosting surface.
func (g *Grid) Surface() Surface { return g.surface }

// Actions returns the key binding registry.
func (g *Grid) Actions() *ActionRegistry { return g.actions }

// Columns returns the column model.
func (g *Grid) Columns() []Column { return g.columns }

// Metrics returns the cumulative column width table.
func (g *Grid) Metrics() ColumnMetrics { return g.metrics }

// Viewport returns the last observed scroll offsets and size.
func (g *Grid) Viewport() Viewport { return g.viewport }

// RowCount returns the provider's record count as last observed.
func (g *Grid) RowCount() int { return g.rows.RowCount() }

// Disposed reports whether Dispose was called.
func (g *Grid) Disposed() bool { return g.disposed }

// ScrollSettled reports whether scrolling has been quiet for the settle delay.
func (g *Grid) ScrollSettled() bool { return g.sync.Settled() }

// AutoScrolling reports whether the horizontal auto-scroll timer is running.
func (g *Grid) AutoScrolling() bool { return g.auto.Active() }

// Subscribe registers fn on the grid's bus.
func (g *Grid) Subscribe(topic Topic, fn func(Event)) (cancel func()) {
	return g.bus.Subscribe(topic, fn)
}

func (g *Grid) observe() {
	b := g.surface.Bounds()
	g.viewport = Viewport{
		ScrollTop:  g.surface.ScrollTop(),
		ScrollLeft: g.surface.ScrollLeft(),
		Height:     b.H,
		Width:      b.W,
	}
}

func (g *Grid) updateContentSize() {
	if cs, ok := g.surface.(ContentSizer); ok {
		cs.SetContentSize(g.metrics.TotalWidth(), g.rows.ContentHeight())
	}
}

func (g *Grid) updateColumns() {
	g.cols = ComputeVisibleColumns(g.viewport.ScrollLeft, g.viewport.Width, g.metrics, g.cfg.ColumnOverscan)
}

// HandleScroll runs when the primary surface scrolled.
func (g *Grid) HandleScroll() {
	if g.disposed {
		return
	}
	if !g.surface.Mounted() {
		g.logger.Debug("scroll ignored, surface not mounted")
		return
	}
	g.observe()
	v := g.viewport
	g.rows.Update(v.ScrollTop, v.Height, g.provider.RecordCount())
	g.updateColumns()
	g.sync.OnPrimaryScroll(v.ScrollTop)
	g.checkBottom()
}

func (g *Grid) checkBottom() {
	v := g.viewport
	at := g.rows.RowCount() > 0 && v.ScrollTop+v.Height >= g.rows.ContentHeight()
	if at && !g.atBottom && g.onHitBottom != nil {
		g.logger.Debug("scrolled to bottom, requesting more records", "rows", g.rows.RowCount())
		g.onHitBottom()
	}
	g.atBottom = at
}

// HandleOverlayScroll runs when the overlay scrollbar moved to top.
func (g *Grid) HandleOverlayScroll(top float32) {
	if g.disposed {
		return
	}
	if g.sync.OnOverlayScroll(top) && !g.notifies {
		g.HandleScroll()
	}
}

// OverlayReleased runs on pointer-up over the overlay scrollbar.
func (g *Grid) OverlayReleased() {
	if g.disposed {
		return
	}
	g.sync.OverlayReleased()
}

// HandleResize runs after the surface's viewport size changed.
func (g *Grid) HandleResize() {
	if g.disposed {
		return
	}
	g.observe()
	g.rows.Update(g.viewport.ScrollTop, g.viewport.Height, g.provider.RecordCount())
	g.updateColumns()
	if g.sync.Retry() && !g.notifies {
		g.HandleScroll()
	}
}

func (g *Grid) scrollTo(top, left float32) {
	s := g.surface
	if !s.Mounted() {
		g.logger.Debug("scroll write ignored, surface not mounted", "top", top, "left", left)
		return
	}
	changed := top != s.ScrollTop() || left != s.ScrollLeft()
	s.SetScrollTop(top)
	s.SetScrollLeft(left)
	if changed && !g.notifies {
		g.HandleScroll()
	}
}

// JumpToRow scrolls so row is at the top of the viewport, or as close as the
// last page allows.
func (g *Grid) JumpToRow(row int) {
	if g.disposed || g.rows.RowCount() == 0 {
		return
	}
	g.scrollTo(g.rows.JumpScroll(row, g.viewport.Height), g.surface.ScrollLeft())
}

// ScrollToColumn scrolls the least amount that shows column col in full.
// Returns false when no scroll was needed.
func (g *Grid) ScrollToColumn(col int) bool {
	if g.disposed {
		return false
	}
	left, ok := ScrollToColumn(col, g.surface.ScrollLeft(), g.viewport.Width, g.metrics)
	if !ok {
		return false
	}
	g.scrollTo(g.surface.ScrollTop(), left)
	return true
}

// ScrollCellIntoView scrolls both axes so pos is fully visible.
func (g *Grid) ScrollCellIntoView(pos CellPosition) bool {
	if g.disposed {
		return false
	}
	top, vok := g.rows.ScrollToRow(pos.Row, g.surface.ScrollTop(), g.viewport.Height)
	left, hok := ScrollToColumn(pos.Column, g.surface.ScrollLeft(), g.viewport.Width, g.metrics)
	if !vok && !hok {
		return false
	}
	g.scrollTo(top, left)
	return true
}

// DataChanged runs after the provider's row set changed. The window is
// recomputed unconditionally and cached records are dropped.
func (g *Grid) DataChanged() {
	if g.disposed {
		return
	}
	g.observe()
	count := g.provider.RecordCount()
	g.cache.Clear()
	g.rows.Reset(g.viewport.ScrollTop, g.viewport.Height, count)
	g.updateContentSize()
	g.updateColumns()
	g.selection.SetBounds(count, len(g.columns))
	g.atBottom = false
}

// SetColumns replaces the column model.
func (g *Grid) SetColumns(cols []Column) {
	if g.disposed {
		return
	}
	g.setColumns(cols)
	g.updateContentSize()
	g.observe()
	g.updateColumns()
}

func (g *Grid) setColumns(cols []Column) {
	g.columns = append([]Column(nil), cols...)
	g.metrics = NewColumnMetrics(g.columns)
	g.auto.LeftInset = g.metrics.FrozenWidth()
	g.selection.SetBounds(g.rows.RowCount(), len(g.columns))
}

// LoadMore asks a Loader provider for further records. Provider errors are
// returned unchanged; on success the grid picks up the new row count.
func (g *Grid) LoadMore(ctx context.Context) error {
	if g.disposed {
		return ErrDisposed
	}
	l, ok := g.provider.(Loader)
	if !ok {
		return ErrNoLoader
	}
	if err := l.LoadMore(ctx); err != nil {
		return err
	}
	if g.disposed {
		return nil
	}
	g.DataChanged()
	return nil
}

// CellAt returns the cell under screen position p.
func (g *Grid) CellAt(p Vec2) (CellPosition, bool) {
	b := g.surface.Bounds()
	if !b.Contains(p) {
		return CellPosition{}, false
	}
	x, y := p.X-b.X, p.Y-b.Y
	row := RowIndexAtOffset(y+g.viewport.ScrollTop, g.cfg.RowHeight)
	if row >= g.rows.RowCount() {
		return CellPosition{}, false
	}
	var content float32
	if x < g.metrics.FrozenWidth() {
		content = x
	} else {
		content = x + g.viewport.ScrollLeft
	}
	if content >= g.metrics.TotalWidth() {
		return CellPosition{}, false
	}
	return CellPosition{Row: row, Column: g.metrics.IndexAtOffset(content)}, true
}

// CellRect returns the screen rectangle of pos, or false if its column is
// not materialized.
func (g *Grid) CellRect(pos CellPosition) (Rect, bool) {
	if !g.cols.Contains(pos.Column) || !g.rows.Window().Contains(pos.Row) {
		return Rect{}, false
	}
	b := g.surface.Bounds()
	x := b.X + g.metrics.Left(pos.Column)
	if pos.Column >= g.metrics.FrozenCount() {
		x -= g.viewport.ScrollLeft
	}
	y := g.rows.RowY(pos.Row, b.Y, g.viewport.ScrollTop)
	return Rect{X: x, Y: y, W: g.metrics.Width(pos.Column), H: g.cfg.RowHeight}, true
}

// Record returns the record at row through the per-frame cache.
func (g *Grid) Record(row int) (Record, bool) {
	return g.cache.GetOrLoad(row, func() (Record, bool) { return g.provider.RecordByIndex(row) })
}

func (g *Grid) directEditable(p CellPosition) bool {
	if p.Column < 0 || p.Column >= len(g.columns) {
		return false
	}
	rec, _ := g.Record(p.Row)
	return CanOpenEditor(g.columns[p.Column], rec, g.canModify, ActivationSingle)
}

// PointerDown handles a primary button press at screen position p.
func (g *Grid) PointerDown(p Vec2, shift bool) bool {
	if g.disposed {
		return false
	}
	g.lastPointer = p
	cell, ok := g.CellAt(p)
	if !ok {
		return false
	}
	return g.selection.PointerDown(cell, shift)
}

// PointerMove handles pointer motion. While a press is held the selection
// follows the pointer, and a range drag may auto-scroll near the edges.
func (g *Grid) PointerMove(p Vec2) bool {
	if g.disposed {
		return false
	}
	g.lastPointer = p
	if !g.selection.Pressed() {
		return false
	}
	changed := false
	if cell, ok := g.CellAt(p); ok {
		changed = g.selection.PointerMove(cell)
	}
	if g.selection.State().Dragging() {
		if zone := g.auto.Evaluate(p); zone == EdgeTop || zone == EdgeBottom {
			g.retrack()
		}
	}
	return changed
}

// retrack moves the drag focus to whatever cell is now under the pointer.
func (g *Grid) retrack() {
	if !g.selection.Pressed() {
		return
	}
	if cell, ok := g.CellAt(g.lastPointer); ok {
		g.selection.PointerMove(cell)
	}
}

// PointerUp ends a press anywhere. It commits a dragged range and always
// cancels auto-scrolling.
func (g *Grid) PointerUp() bool {
	if g.disposed {
		return false
	}
	g.auto.Stop()
	return g.selection.PointerUp()
}

// DoubleClick requests an editor for the cell at p. The selection shape is
// not changed.
func (g *Grid) DoubleClick(p Vec2) bool {
	if g.disposed {
		return false
	}
	cell, ok := g.CellAt(p)
	if !ok {
		return false
	}
	return g.requestEditor(cell, ActivationDouble)
}

func (g *Grid) requestEditor(pos CellPosition, trigger Activation) bool {
	if pos.Column < 0 || pos.Column >= len(g.columns) {
		return false
	}
	rec, _ := g.Record(pos.Row)
	if !CanOpenEditor(g.columns[pos.Column], rec, g.canModify, trigger) {
		g.logger.Debug("editor refused", "pos", pos, "trigger", trigger, "type", g.columns[pos.Column].Type)
		return false
	}
	g.bus.Publish(EditorRequested{Position: pos, Trigger: trigger})
	return true
}

// ContextMenu moves the selection to the cell at p unless it is already
// selected.
func (g *Grid) ContextMenu(p Vec2) bool {
	if g.disposed {
		return false
	}
	cell, ok := g.CellAt(p)
	if !ok || g.selection.State().Contains(cell) {
		return false
	}
	return g.selection.Select(cell)
}

// Selection returns the current selection.
func (g *Grid) Selection() Selection { return g.selection.State() }

// SelectNone clears the selection, e.g. on an outside click.
func (g *Grid) SelectNone() bool {
	if g.disposed {
		return false
	}
	g.auto.Stop()
	return g.selection.SelectNone()
}

// Select selects one cell programmatically.
func (g *Grid) Select(pos CellPosition) bool {
	if g.disposed {
		return false
	}
	return g.selection.Select(pos)
}

// SelectColumn selects the first cell of col, as a header click does.
func (g *Grid) SelectColumn(col int) bool {
	if g.disposed {
		return false
	}
	return g.selection.Select(CellPosition{Row: 0, Column: col})
}

// SelectAll selects every cell.
func (g *Grid) SelectAll() bool {
	if g.disposed || g.rows.RowCount() == 0 || len(g.columns) == 0 {
		return false
	}
	return g.selection.SelectRange(
		CellPosition{},
		CellPosition{Row: g.rows.RowCount() - 1, Column: len(g.columns) - 1},
	)
}

// DragEnter publishes a drag-enter event for a dragged row hovering row.
func (g *Grid) DragEnter(row int) bool {
	if g.disposed || row < 0 || row >= g.rows.RowCount() {
		return false
	}
	g.bus.Publish(DragEnter{Row: row})
	return true
}

// RequestEdit writes value into the cell at pos through the edit callback,
// after the column capability and permission checks.
func (g *Grid) RequestEdit(ctx context.Context, pos CellPosition, value any) error {
	if g.disposed {
		return ErrDisposed
	}
	if pos.Column < 0 || pos.Column >= len(g.columns) {
		return fmt.Errorf("column %d: %w", pos.Column, ErrRecordNotFound)
	}
	rec, ok := g.provider.RecordByIndex(pos.Row)
	if !ok {
		return fmt.Errorf("row %d: %w", pos.Row, ErrRecordNotFound)
	}
	col := g.columns[pos.Column]
	if col.Type.ReadOnly() || !col.Editable {
		return fmt.Errorf("column %q: %w", col.Key, ErrNotEditable)
	}
	if g.canModify == nil || !g.canModify(rec) {
		return fmt.Errorf("record %q: %w", rec.ID(), ErrPermissionDenied)
	}
	if g.modify == nil {
		return ErrNoEditor
	}
	if err := g.modify(ctx, rec.ID(), col.Key, value); err != nil {
		return err
	}
	g.cache.Delete(pos.Row)
	return nil
}

// Window returns the materialized row band.
func (g *Grid) Window() RenderWindow { return g.rows.Window() }

// VisibleRows returns the rows on screen, without overscan.
func (g *Grid) VisibleRows() RenderWindow { return g.rows.VisibleRows() }

// VisibleColumns returns the materialized columns.
func (g *Grid) VisibleColumns() ColumnWindow { return g.cols }

// Spacers returns the heights of the blocks standing in for the rows above
// and below the window.
func (g *Grid) Spacers() (upper, lower float32) {
	return g.rows.UpperHeight(), g.rows.LowerHeight()
}

// RowView is one materialized row.
type RowView struct {
	Index  int
	Y      float32 // Screen y of the row's top edge
	Record Record  // Nil if the provider had no record at Index
}

// Rows starts a render cycle and returns the materialized rows. The provider
// is asked at most once per row per cycle.
func (g *Grid) Rows() []RowView {
	if g.disposed {
		return nil
	}
	g.cache.NextFrame()
	w := g.rows.Window()
	b := g.surface.Bounds()
	out := make([]RowView, 0, w.Len())
	for i := w.Start; i < w.End; i++ {
		rec, _ := g.Record(i)
		out = append(out, RowView{Index: i, Y: g.rows.RowY(i, b.Y, g.viewport.ScrollTop), Record: rec})
	}
	return out
}

// Dispose cancels every timer, closes the bus and stores the scroll
// position. Later calls on the grid are no-ops.
func (g *Grid) Dispose() {
	if g.disposed {
		return
	}
	if g.scrollStore != nil {
		g.scrollStore(g.surface.ScrollTop(), g.surface.ScrollLeft())
	}
	g.auto.Stop()
	g.sync.Stop()
	g.bus.Close()
	if n, ok := g.surface.(ScrollNotifier); ok {
		n.SetScrollHandler(nil)
	}
	if n, ok := g.overlay.(ScrollNotifier); ok {
		n.SetScrollHandler(nil)
	}
	g.cache.Clear()
	g.disposed = true
	g.logger.Debug("grid disposed")
}
