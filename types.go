package grid

import "math"

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.H }

// CellPosition identifies one cell. Row and Column are 0-based.
type CellPosition struct {
	Row    int
	Column int
}

// Offset returns the position moved by the given deltas.
func (p CellPosition) Offset(dRow, dCol int) CellPosition {
	return CellPosition{Row: p.Row + dRow, Column: p.Column + dCol}
}

// CellRange is a normalized rectangle of cells, both corners inclusive.
type CellRange struct {
	TopLeft     CellPosition
	BottomRight CellPosition
}

// NewCellRange builds a normalized range from two arbitrary corners.
func NewCellRange(a, b CellPosition) CellRange {
	return CellRange{
		TopLeft:     CellPosition{Row: min(a.Row, b.Row), Column: min(a.Column, b.Column)},
		BottomRight: CellPosition{Row: max(a.Row, b.Row), Column: max(a.Column, b.Column)},
	}
}

// Contains reports whether p lies inside the range.
func (r CellRange) Contains(p CellPosition) bool {
	return p.Row >= r.TopLeft.Row && p.Row <= r.BottomRight.Row &&
		p.Column >= r.TopLeft.Column && p.Column <= r.BottomRight.Column
}

// Rows returns the number of rows covered.
func (r CellRange) Rows() int { return r.BottomRight.Row - r.TopLeft.Row + 1 }

// Columns returns the number of columns covered.
func (r CellRange) Columns() int { return r.BottomRight.Column - r.TopLeft.Column + 1 }

// Viewport is the scroll offset and pixel size of the hosting surface.
type Viewport struct {
	ScrollTop  float32
	ScrollLeft float32
	Height     float32
	Width      float32
}

// RenderWindow is a half-open index range [Start, End) of materialized items.
type RenderWindow struct {
	Start int
	End   int
}

// Len returns the number of items in the window.
func (w RenderWindow) Len() int { return w.End - w.Start }

// Contains reports whether idx is inside the window.
func (w RenderWindow) Contains(idx int) bool { return idx >= w.Start && idx < w.End }

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorGray        uint32 = 0xFF808080
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c uint32, a uint8) uint32 {
	return c&0x00FFFFFF | uint32(a)<<24
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// clampi clamps an int to [lo, hi].
func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ceilDiv returns ceil(a/b) for non-negative pixel values.
func ceilDiv(a, b float32) int {
	return int(math.Ceil(float64(a)/float64(b) - 1e-9))
}
