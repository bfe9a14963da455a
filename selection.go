package grid

import "log/slog"

// SelectionKind tags the shape of a Selection.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionCell
	SelectionRange
)

func (k SelectionKind) String() string {
	switch k {
	case SelectionCell:
		return "cell"
	case SelectionRange:
		return "range"
	default:
		return "none"
	}
}

// Selection is the grid's selection state. For SelectionCell, Anchor and
// Focus are the same position. Committed is false while a range drag is
// still in progress.
type Selection struct {
	Kind      SelectionKind
	Anchor    CellPosition
	Focus     CellPosition
	Committed bool
}

// CellSelection returns a single-cell selection.
func CellSelection(p CellPosition) Selection {
	return Selection{Kind: SelectionCell, Anchor: p, Focus: p, Committed: true}
}

// RangeSelection returns a range selection.
func RangeSelection(anchor, focus CellPosition, committed bool) Selection {
	return Selection{Kind: SelectionRange, Anchor: anchor, Focus: focus, Committed: committed}
}

// Range returns the normalized cell rectangle. Zero for SelectionNone.
func (s Selection) Range() CellRange {
	if s.Kind == SelectionNone {
		return CellRange{}
	}
	return NewCellRange(s.Anchor, s.Focus)
}

// IsSingleCell reports whether exactly one cell is selected.
func (s Selection) IsSingleCell() bool {
	return s.Kind != SelectionNone && s.Anchor == s.Focus
}

// Dragging reports whether a range drag is in progress.
func (s Selection) Dragging() bool {
	return s.Kind == SelectionRange && !s.Committed
}

// Contains reports whether p is selected.
func (s Selection) Contains(p CellPosition) bool {
	return s.Kind != SelectionNone && s.Range().Contains(p)
}

// SelectionEngine is the only writer of a grid's Selection. Every transition
// is published on the bus as a SelectionChanged event.
type SelectionEngine struct {
	state   Selection
	pressed bool // Primary pointer button held since a pointer-down on a cell

	rows, cols int
	bus        *Bus
	logger     *slog.Logger

	// Affordance reports whether a single activation on p may show an
	// editor. Nil means never.
	Affordance func(p CellPosition) bool

	// OnChange runs after every state change, before subscribers are
	// notified.
	OnChange func(next Selection)
}

// NewSelectionEngine creates an engine in SelectionNone publishing on bus.
func NewSelectionEngine(bus *Bus, logger *slog.Logger) *SelectionEngine {
	if logger == nil {
		logger = gridLogger
	}
	return &SelectionEngine{bus: bus, logger: logger}
}

// State returns the current selection.
func (e *SelectionEngine) State() Selection { return e.state }

// Pressed reports whether the pointer is held after a pointer-down on a cell.
func (e *SelectionEngine) Pressed() bool { return e.pressed }

// SetBounds sets the valid index space. A selection outside it becomes None.
func (e *SelectionEngine) SetBounds(rows, cols int) {
	e.rows, e.cols = rows, cols
	if e.state.Kind == SelectionNone {
		return
	}
	if !e.inBounds(e.state.Anchor) || !e.inBounds(e.state.Focus) {
		e.pressed = false
		e.set(Selection{}, SourceProgram, false)
	}
}

func (e *SelectionEngine) inBounds(p CellPosition) bool {
	return p.Row >= 0 && p.Row < e.rows && p.Column >= 0 && p.Column < e.cols
}

func (e *SelectionEngine) reject(op string, p CellPosition) bool {
	e.logger.Debug("selection rejected", "op", op, "pos", p, "rows", e.rows, "cols", e.cols)
	return false
}

// PointerDown handles a press on cell p. Without shift the selection becomes
// Cell(p). With shift it extends from the existing anchor into an
// uncommitted range, or degrades to Cell(p) when nothing is selected.
func (e *SelectionEngine) PointerDown(p CellPosition, shift bool) bool {
	if !e.inBounds(p) {
		return e.reject("pointer-down", p)
	}
	e.pressed = true
	if !shift || e.state.Kind == SelectionNone {
		next := CellSelection(p)
		e.set(next, SourcePointer, e.affordance(p))
		return true
	}
	e.set(RangeSelection(e.state.Anchor, p, false), SourcePointer, false)
	return true
}

// PointerMove handles the pointer entering cell p. While the button is held
// the focus follows the pointer; a Cell grows into an uncommitted Range.
// Returns true if the selection changed.
func (e *SelectionEngine) PointerMove(p CellPosition) bool {
	if !e.pressed || e.state.Kind == SelectionNone {
		return false
	}
	if !e.inBounds(p) {
		return e.reject("pointer-move", p)
	}
	if e.state.Focus == p && e.state.Kind == SelectionRange {
		return false
	}
	if e.state.Kind == SelectionCell && e.state.Anchor == p {
		return false
	}
	e.set(RangeSelection(e.state.Anchor, p, false), SourcePointer, false)
	return true
}

// PointerUp ends a press. An uncommitted range becomes committed.
func (e *SelectionEngine) PointerUp() bool {
	e.pressed = false
	if !e.state.Dragging() {
		return false
	}
	next := e.state
	next.Committed = true
	e.set(next, SourcePointer, false)
	return true
}

// MoveTo is a keyboard move: the selection collapses to Cell(p).
func (e *SelectionEngine) MoveTo(p CellPosition) bool {
	if !e.inBounds(p) {
		return e.reject("move", p)
	}
	e.set(CellSelection(p), SourceKeyboard, false)
	return true
}

// ExtendTo is a keyboard range extension from the current anchor to p.
// Keyboard ranges are committed immediately; no button is held.
func (e *SelectionEngine) ExtendTo(p CellPosition) bool {
	if !e.inBounds(p) {
		return e.reject("extend", p)
	}
	if e.state.Kind == SelectionNone {
		e.set(CellSelection(p), SourceKeyboard, false)
		return true
	}
	if p == e.state.Anchor {
		e.set(CellSelection(p), SourceKeyboard, false)
		return true
	}
	e.set(RangeSelection(e.state.Anchor, p, true), SourceKeyboard, false)
	return true
}

// Select sets Cell(p) programmatically.
func (e *SelectionEngine) Select(p CellPosition) bool {
	if !e.inBounds(p) {
		return e.reject("select", p)
	}
	e.set(CellSelection(p), SourceProgram, false)
	return true
}

// SelectRange sets a committed range programmatically.
func (e *SelectionEngine) SelectRange(anchor, focus CellPosition) bool {
	if !e.inBounds(anchor) {
		return e.reject("select-range", anchor)
	}
	if !e.inBounds(focus) {
		return e.reject("select-range", focus)
	}
	if anchor == focus {
		e.set(CellSelection(anchor), SourceProgram, false)
		return true
	}
	e.set(RangeSelection(anchor, focus, true), SourceProgram, false)
	return true
}

// SelectNone clears the selection.
func (e *SelectionEngine) SelectNone() bool {
	e.pressed = false
	if e.state.Kind == SelectionNone {
		return false
	}
	e.set(Selection{}, SourceProgram, false)
	return true
}

func (e *SelectionEngine) affordance(p CellPosition) bool {
	return e.Affordance != nil && e.Affordance(p)
}

func (e *SelectionEngine) set(next Selection, source InputSource, openEditor bool) {
	prev := e.state
	e.state = next
	if prev == next && !openEditor {
		return
	}
	if e.OnChange != nil && prev != next {
		e.OnChange(next)
	}
	if gridVerbose() {
		e.logger.Debug("selection changed",
			"from", prev.Kind, "to", next.Kind, "anchor", next.Anchor, "focus", next.Focus,
			"committed", next.Committed, "source", source)
	}
	if e.bus != nil {
		e.bus.Publish(SelectionChanged{Previous: prev, Current: next, Source: source, OpenEditor: openEditor})
	}
}
