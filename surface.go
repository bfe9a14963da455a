package grid

// Surface is the host's scrollable viewport. Offsets are in content pixels;
// Bounds is the viewport rectangle in screen pixels.
type Surface interface {
	ScrollTop() float32
	ScrollLeft() float32
	SetScrollTop(v float32)
	SetScrollLeft(v float32)
	Bounds() Rect
	Mounted() bool
}

// Scrollbar is the overlay scroll indicator kept in sync with the surface.
type Scrollbar interface {
	ScrollTop() float32
	SetScrollTop(v float32)
}

// ScrollNotifier is implemented by surfaces and scrollbars that report
// scroll changes through a handler the grid installs.
type ScrollNotifier interface {
	SetScrollHandler(fn func())
}

// ContentSizer is implemented by surfaces that need the scrollable extent.
type ContentSizer interface {
	SetContentSize(w, h float32)
}

// MemorySurface is an in-process Surface. Writes clamp to the content extent
// and call the scroll handler synchronously when an offset changes.
type MemorySurface struct {
	top, left float32
	bounds    Rect
	content   Vec2
	unmounted bool
	onScroll  func()
}

// NewMemorySurface creates a mounted surface with the given viewport bounds.
func NewMemorySurface(bounds Rect) *MemorySurface {
	return &MemorySurface{bounds: bounds}
}

func (s *MemorySurface) ScrollTop() float32  { return s.top }
func (s *MemorySurface) ScrollLeft() float32 { return s.left }
func (s *MemorySurface) Bounds() Rect        { return s.bounds }
func (s *MemorySurface) Mounted() bool       { return !s.unmounted }

// SetMounted toggles whether the surface accepts scroll writes.
func (s *MemorySurface) SetMounted(m bool) { s.unmounted = !m }

// SetBounds resizes the viewport and re-clamps the offsets.
func (s *MemorySurface) SetBounds(r Rect) {
	s.bounds = r
	s.SetScrollTop(s.top)
	s.SetScrollLeft(s.left)
}

// SetContentSize sets the scrollable extent.
func (s *MemorySurface) SetContentSize(w, h float32) {
	s.content = Vec2{X: w, Y: h}
}

// ContentSize returns the scrollable extent.
func (s *MemorySurface) ContentSize() Vec2 { return s.content }

// SetScrollHandler installs the handler called after an offset changes.
func (s *MemorySurface) SetScrollHandler(fn func()) { s.onScroll = fn }

func (s *MemorySurface) SetScrollTop(v float32) {
	if s.unmounted {
		return
	}
	v = clampf(v, 0, maxf(0, s.content.Y-s.bounds.H))
	if v == s.top {
		return
	}
	s.top = v
	if s.onScroll != nil {
		s.onScroll()
	}
}

func (s *MemorySurface) SetScrollLeft(v float32) {
	if s.unmounted {
		return
	}
	v = clampf(v, 0, maxf(0, s.content.X-s.bounds.W))
	if v == s.left {
		return
	}
	s.left = v
	if s.onScroll != nil {
		s.onScroll()
	}
}

// MemoryScrollbar is an in-process Scrollbar that counts writes.
type MemoryScrollbar struct {
	top      float32
	writes   int
	onScroll func()
}

// NewMemoryScrollbar creates a scrollbar at offset 0.
func NewMemoryScrollbar() *MemoryScrollbar {
	return &MemoryScrollbar{}
}

func (b *MemoryScrollbar) ScrollTop() float32 { return b.top }

// SetScrollTop stores v and calls the scroll handler if it changed.
func (b *MemoryScrollbar) SetScrollTop(v float32) {
	b.writes++
	if v < 0 {
		v = 0
	}
	if v == b.top {
		return
	}
	b.top = v
	if b.onScroll != nil {
		b.onScroll()
	}
}

// SetScrollHandler installs the handler called after the offset changes.
func (b *MemoryScrollbar) SetScrollHandler(fn func()) { b.onScroll = fn }

// Writes returns how many times SetScrollTop was called.
func (b *MemoryScrollbar) Writes() int { return b.writes }
