package grid

// thumbDrag tracks a press on the overlay scrollbar thumb.
type thumbDrag struct {
	grabOffset float32 // Pointer y minus thumb top at press time
}

// navigationKeys are polled for repeat in HandleInput.
var navigationKeys = [...]Key{
	KeyUp, KeyDown, KeyLeft, KeyRight, KeyTab,
	KeyPageUp, KeyPageDown, KeyHome, KeyEnd,
}

// pressOnlyKeys fire once per press.
var pressOnlyKeys = [...]Key{KeyEnter, KeyEscape, KeyA, KeyC}

// HandleInput translates one frame of polled input into grid operations.
// Hosts with event callbacks can call the pointer and key methods directly
// instead.
func (g *Grid) HandleInput(in *InputState) {
	if g.disposed || in == nil {
		return
	}
	p := in.MousePos()
	mods := in.Modifiers()

	if in.MouseWheelY != 0 || in.MouseWheelX != 0 {
		if g.surface.Bounds().Contains(p) {
			top := g.surface.ScrollTop() - in.MouseWheelY*g.cfg.WheelStep
			left := g.surface.ScrollLeft() - in.MouseWheelX*g.cfg.WheelStep
			if mods.Has(ModShift) && in.MouseWheelX == 0 {
				top = g.surface.ScrollTop()
				left = g.surface.ScrollLeft() - in.MouseWheelY*g.cfg.WheelStep
			}
			g.scrollTo(maxf(0, top), maxf(0, left))
		}
	}

	if g.handleScrollbarInput(in, p) {
		return
	}

	switch {
	case in.MouseDoubleClicked(MouseButtonLeft):
		g.DoubleClick(p)
	case in.MouseClicked(MouseButtonLeft):
		if !g.PointerDown(p, mods.Has(ModShift)) && !g.surface.Bounds().Contains(p) {
			g.SelectNone()
		}
	case in.MouseClicked(MouseButtonRight):
		g.ContextMenu(p)
	}

	if in.MouseDown(MouseButtonLeft) && p != g.lastPointer {
		g.PointerMove(p)
	}
	if in.MouseReleased(MouseButtonLeft) {
		g.PointerUp()
	}

	for _, k := range navigationKeys {
		if in.KeyRepeated(k) {
			g.KeyDown(k, mods)
		}
	}
	for _, k := range pressOnlyKeys {
		if in.KeyPressed(k) {
			g.KeyDown(k, mods)
		}
	}
}

// handleScrollbarInput drags the overlay scrollbar thumb. Returns true while
// the scrollbar owns the pointer.
func (g *Grid) handleScrollbarInput(in *InputState, p Vec2) bool {
	if g.overlay == nil {
		return false
	}
	track, thumb, ok := g.scrollbarTrack(g.lastStyle)
	if !ok {
		g.thumbDrag = nil
		return false
	}

	if g.thumbDrag == nil {
		if !in.MouseClicked(MouseButtonLeft) || !track.Contains(p) {
			return false
		}
		grab := thumb.H / 2
		if thumb.Contains(p) {
			grab = p.Y - thumb.Y
		}
		g.thumbDrag = &thumbDrag{grabOffset: grab}
	}

	if in.MouseDown(MouseButtonLeft) || in.MouseClicked(MouseButtonLeft) {
		b := g.surface.Bounds()
		span := track.H - thumb.H
		var frac float32
		if span > 0 {
			frac = clampf((p.Y-g.thumbDrag.grabOffset-track.Y)/span, 0, 1)
		}
		top := frac * (g.rows.ContentHeight() - b.H)
		g.overlay.SetScrollTop(top)
		if _, notifies := g.overlay.(ScrollNotifier); !notifies {
			g.HandleOverlayScroll(top)
		}
	}
	if in.MouseReleased(MouseButtonLeft) || !in.MouseDown(MouseButtonLeft) {
		g.thumbDrag = nil
		g.OverlayReleased()
	}
	return true
}
