package grid

// Renderer draws a finished DrawList.
type Renderer interface {
	Render(dl *DrawList) error
	FontTextureID() uint32 // 0 if the renderer has no bitmap font
	Resize(width, height int)
}

// Render draws the grid into a pooled DrawList and hands it to r.
func (g *Grid) Render(r Renderer) error {
	if g.disposed {
		return nil
	}
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	g.fontTexture = r.FontTextureID()
	g.Draw(dl, g.lastStyle)
	dl.Finalize()
	return r.Render(dl)
}

// Draw paints the materialized rows: backgrounds, cells, selection, focus
// outline and the overlay scrollbar. Frozen columns are drawn last so they
// cover scrolled content.
func (g *Grid) Draw(dl *DrawList, style Style) {
	if g.disposed {
		return
	}
	g.lastStyle = style
	b := g.surface.Bounds()
	if b.W <= 0 || b.H <= 0 {
		return
	}
	rows := g.Rows()
	fw := g.metrics.FrozenWidth()

	dl.PushClipRect(b.X, b.Y, b.Right(), b.Bottom())
	dl.AddRect(b.X, b.Y, b.W, b.H, style.BackgroundColor)

	// Scrollable columns
	dl.PushClipRect(b.X+fw, b.Y, b.Right(), b.Bottom())
	g.drawCells(dl, style, rows, false)
	dl.PopClipRect()

	// Frozen columns
	if fw > 0 {
		dl.PushClipRect(b.X, b.Y, b.X+fw, b.Bottom())
		g.drawCells(dl, style, rows, true)
		dl.PopClipRect()
		dl.AddVLine(b.X+fw-1, b.Y, b.H, style.FrozenEdgeColor)
	}

	g.drawFocus(dl, style)
	g.drawScrollbar(dl, style)
	dl.PopClipRect()
}

func (g *Grid) columnX(col int) float32 {
	x := g.surface.Bounds().X + g.metrics.Left(col)
	if col >= g.metrics.FrozenCount() {
		x -= g.viewport.ScrollLeft
	}
	return x
}

func (g *Grid) drawCells(dl *DrawList, style Style, rows []RowView, frozen bool) {
	b := g.surface.Bounds()
	h := g.cfg.RowHeight
	first, last := g.cols.Start, g.cols.End
	if frozen {
		first, last = 0, g.cols.Frozen
	}
	if first >= last {
		return
	}
	x0 := g.columnX(first)
	x1 := g.columnX(last-1) + g.metrics.Width(last-1)

	for _, rv := range rows {
		bg := style.BackgroundColor
		if frozen && style.FrozenBgColor != 0 {
			bg = style.FrozenBgColor
		} else if rv.Index%2 == 1 && style.RowBgAltColor != 0 {
			bg = style.RowBgAltColor
		}
		dl.AddRect(x0, rv.Y, x1-x0, h, bg)
		dl.AddHLine(x0, rv.Y+h-1, x1-x0, style.GridLineColor)
	}
	for c := first; c < last; c++ {
		x := g.columnX(c) + g.metrics.Width(c) - 1
		dl.AddVLine(x, b.Y, g.rows.ContentHeight()-g.viewport.ScrollTop, style.GridLineColor)
	}

	g.drawRangeFill(dl, style, frozen)

	if g.fontTexture == 0 || style.CharWidth <= 0 {
		return
	}
	dl.SetTexture(g.fontTexture)
	ty := (h - style.CharHeight) / 2
	for _, rv := range rows {
		if rv.Record == nil {
			continue
		}
		for c := first; c < last; c++ {
			col := g.columns[c]
			text := FormatValue(rv.Record.Value(col.Key))
			maxChars := int((g.metrics.Width(c) - 2*style.CellPadding) / style.CharWidth)
			if maxChars <= 0 || text == "" {
				continue
			}
			text = truncateRunes(text, maxChars)
			color := style.TextColor
			if col.Type.ReadOnly() {
				color = style.TextDisabledColor
			}
			dl.AddText(g.columnX(c)+style.CellPadding, rv.Y+ty, text, color, style.CharWidth, style.CharHeight)
		}
	}
	dl.SetTexture(0)
}

// drawRangeFill shades the selected range's part in the frozen or the
// scrollable columns.
func (g *Grid) drawRangeFill(dl *DrawList, style Style, frozen bool) {
	sel := g.selection.State()
	if sel.Kind != SelectionRange || sel.IsSingleCell() {
		return
	}
	r := sel.Range()
	fc := g.metrics.FrozenCount()
	first, last := r.TopLeft.Column, r.BottomRight.Column
	if frozen {
		last = min(last, fc-1)
	} else {
		first = max(first, fc)
	}
	if first > last {
		return
	}
	b := g.surface.Bounds()
	x := g.columnX(first)
	w := g.columnX(last) + g.metrics.Width(last) - x
	y := g.rows.RowY(r.TopLeft.Row, b.Y, g.viewport.ScrollTop)
	h := float32(r.Rows()) * g.cfg.RowHeight
	dl.AddRect(x, y, w, h, style.SelectedBgColor)
	dl.AddRectOutline(x, y, w, h, style.SelectionBorder, 1)
}

func (g *Grid) drawFocus(dl *DrawList, style Style) {
	sel := g.selection.State()
	if sel.Kind == SelectionNone {
		return
	}
	b := g.surface.Bounds()
	p := sel.Focus
	x := g.columnX(p.Column)
	y := g.rows.RowY(p.Row, b.Y, g.viewport.ScrollTop)
	w := g.metrics.Width(p.Column)
	if p.Column >= g.metrics.FrozenCount() && x < b.X+g.metrics.FrozenWidth() {
		// Hidden under the frozen columns.
		return
	}
	dl.AddRectOutline(x, y, w, g.cfg.RowHeight, style.FocusColor, style.BorderSize)
	if sel.IsSingleCell() && g.directEditable(p) {
		s := SpaceSM + SpaceXS
		dl.AddRect(x+w-s, y+g.cfg.RowHeight-s, s, s, style.EditableHintColor)
	}
}

// scrollbarTrack returns the overlay scrollbar's track and thumb, or false
// when everything fits.
func (g *Grid) scrollbarTrack(style Style) (track, thumb Rect, ok bool) {
	b := g.surface.Bounds()
	content := g.rows.ContentHeight()
	if content <= b.H || style.ScrollbarSize <= 0 {
		return Rect{}, Rect{}, false
	}
	track = Rect{X: b.Right() - style.ScrollbarSize, Y: b.Y, W: style.ScrollbarSize, H: b.H}
	thumbH := maxf(style.ScrollbarMinGrab, b.H*b.H/content)
	thumbH = min(thumbH, b.H)

	top := g.viewport.ScrollTop
	if g.overlay != nil {
		top = g.overlay.ScrollTop()
	}
	frac := clampf(top/(content-b.H), 0, 1)
	thumb = Rect{X: track.X, Y: b.Y + frac*(b.H-thumbH), W: track.W, H: thumbH}
	return track, thumb, true
}

func (g *Grid) drawScrollbar(dl *DrawList, style Style) {
	track, thumb, ok := g.scrollbarTrack(style)
	if !ok {
		return
	}
	dl.AddRect(track.X, track.Y, track.W, track.H, style.ScrollbarBgColor)
	grab := style.ScrollbarGrabColor
	if g.sync.Settled() && g.thumbDrag == nil {
		grab = style.ScrollbarSettled
	}
	dl.AddRect(thumb.X, thumb.Y, thumb.W, thumb.H, grab)
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
