package grid

// KeyDown dispatches a key press through the action registry.
// Returns true if an action handled it.
func (g *Grid) KeyDown(key Key, mods Modifiers) bool {
	if g.disposed {
		return false
	}
	name, ok := g.actions.Dispatch(key, mods)
	if ok {
		g.logger.Debug("key action", "action", name, "key", KeyBinding{Key: key, Mods: mods})
	}
	return ok
}

func (g *Grid) registerDefaultActions() {
	r := g.actions
	hasSelection := func() bool { return g.selection.State().Kind != SelectionNone }

	r.Register("move-up", KeyUp, 0, func() { g.moveBy(-1, 0) })
	r.Register("move-down", KeyDown, 0, func() { g.moveBy(1, 0) })
	r.Register("move-left", KeyLeft, 0, func() { g.moveBy(0, -1) })
	r.Register("move-right", KeyRight, 0, func() { g.moveBy(0, 1) })
	r.Register("move-right", KeyTab, 0, func() { g.moveBy(0, 1) })
	r.Register("move-left", KeyTab, ModShift, func() { g.moveBy(0, -1) })

	r.Register("extend-up", KeyUp, ModShift, func() { g.extendBy(-1, 0) })
	r.Register("extend-down", KeyDown, ModShift, func() { g.extendBy(1, 0) })
	r.Register("extend-left", KeyLeft, ModShift, func() { g.extendBy(0, -1) })
	r.Register("extend-right", KeyRight, ModShift, func() { g.extendBy(0, 1) })

	r.Register("page-up", KeyPageUp, 0, func() { g.moveBy(-g.pageRows(), 0) })
	r.Register("page-down", KeyPageDown, 0, func() { g.moveBy(g.pageRows(), 0) })

	r.Register("first-column", KeyHome, 0, func() { g.moveTo(g.focusOrOrigin().Row, 0) })
	r.Register("last-column", KeyEnd, 0, func() { g.moveTo(g.focusOrOrigin().Row, len(g.columns)-1) })
	r.Register("first-row", KeyHome, ModCtrl, func() { g.moveTo(0, g.focusOrOrigin().Column) })
	r.Register("last-row", KeyEnd, ModCtrl, func() { g.moveTo(g.rows.RowCount()-1, g.focusOrOrigin().Column) })
	r.Register("extend-first-column", KeyHome, ModShift, func() { g.extendTo(g.focusOrOrigin().Row, 0) })
	r.Register("extend-last-column", KeyEnd, ModShift, func() { g.extendTo(g.focusOrOrigin().Row, len(g.columns)-1) })

	r.RegisterWithCondition("open-editor", KeyEnter, 0, func() {
		g.requestEditor(g.selection.State().Focus, ActivationDouble)
	}, func() bool { return g.selection.State().IsSingleCell() })
	r.RegisterWithCondition("select-none", KeyEscape, 0, func() { g.SelectNone() }, hasSelection)
	r.Register("select-all", KeyA, ModCtrl, func() { g.SelectAll() })
	r.RegisterWithCondition("copy", KeyC, ModCtrl, func() { g.Copy() }, hasSelection)
}

func (g *Grid) focusOrOrigin() CellPosition {
	sel := g.selection.State()
	if sel.Kind == SelectionNone {
		return CellPosition{}
	}
	return sel.Focus
}

// pageRows is the number of rows one page moves: the rows fully on screen.
func (g *Grid) pageRows() int {
	return max(1, int(g.viewport.Height/g.cfg.RowHeight))
}

func (g *Grid) clampCell(row, col int) (CellPosition, bool) {
	if g.rows.RowCount() == 0 || len(g.columns) == 0 {
		return CellPosition{}, false
	}
	return CellPosition{
		Row:    clampi(row, 0, g.rows.RowCount()-1),
		Column: clampi(col, 0, len(g.columns)-1),
	}, true
}

// moveBy moves the focus. With nothing selected the first cell is selected.
func (g *Grid) moveBy(dRow, dCol int) {
	if g.selection.State().Kind == SelectionNone {
		g.moveTo(0, 0)
		return
	}
	f := g.selection.State().Focus.Offset(dRow, dCol)
	g.moveTo(f.Row, f.Column)
}

func (g *Grid) moveTo(row, col int) {
	p, ok := g.clampCell(row, col)
	if !ok {
		return
	}
	if g.selection.MoveTo(p) {
		g.ScrollCellIntoView(p)
	}
}

func (g *Grid) extendBy(dRow, dCol int) {
	f := g.focusOrOrigin().Offset(dRow, dCol)
	g.extendTo(f.Row, f.Column)
}

func (g *Grid) extendTo(row, col int) {
	p, ok := g.clampCell(row, col)
	if !ok {
		return
	}
	if g.selection.ExtendTo(p) {
		g.ScrollCellIntoView(p)
	}
}
