package grid

// Spacing constants for cell layout.
const (
	SpaceXS float32 = 2
	SpaceSM float32 = 4
	SpaceMD float32 = 8
)

// Style defines the visual appearance of the grid body.
type Style struct {
	// Text
	TextColor         uint32
	TextDisabledColor uint32

	// Body
	BackgroundColor uint32
	RowBgAltColor   uint32 // Alternate row background (0 = none)
	FrozenBgColor   uint32 // Frozen column background
	GridLineColor   uint32
	FrozenEdgeColor uint32 // Rule between frozen and scrollable columns

	// Selection
	SelectedBgColor   uint32 // Range fill, usually translucent
	SelectionBorder   uint32
	FocusColor        uint32 // Focused cell outline
	EditableHintColor uint32 // Corner marker on a directly editable focused cell

	// Overlay scrollbar
	ScrollbarBgColor   uint32
	ScrollbarGrabColor uint32
	ScrollbarSettled   uint32 // Grab color once scrolling settled
	ScrollbarSize      float32
	ScrollbarMinGrab   float32

	// Text metrics for the bitmap font
	CharWidth   float32
	CharHeight  float32
	CellPadding float32

	BorderSize float32
}

// DefaultStyle returns a light spreadsheet style.
func DefaultStyle() Style {
	return Style{
		TextColor:         RGBA(33, 37, 41, 255),
		TextDisabledColor: RGBA(134, 142, 150, 255),

		BackgroundColor: ColorWhite,
		RowBgAltColor:   RGBA(248, 249, 250, 255),
		FrozenBgColor:   RGBA(245, 246, 248, 255),
		GridLineColor:   RGBA(222, 226, 230, 255),
		FrozenEdgeColor: RGBA(173, 181, 189, 255),

		SelectedBgColor:   RGBA(51, 154, 240, 40),
		SelectionBorder:   RGBA(51, 154, 240, 255),
		FocusColor:        RGBA(28, 126, 214, 255),
		EditableHintColor: RGBA(28, 126, 214, 255),

		ScrollbarBgColor:   RGBA(0, 0, 0, 10),
		ScrollbarGrabColor: RGBA(0, 0, 0, 110),
		ScrollbarSettled:   RGBA(0, 0, 0, 50),
		ScrollbarSize:      8,
		ScrollbarMinGrab:   24,

		CharWidth:   8,
		CharHeight:  8,
		CellPadding: SpaceMD,

		BorderSize: 2,
	}
}

// DarkStyle returns a dark variant of DefaultStyle.
func DarkStyle() Style {
	s := DefaultStyle()
	s.TextColor = RGBA(230, 230, 230, 255)
	s.TextDisabledColor = RGBA(120, 120, 120, 255)
	s.BackgroundColor = RGBA(24, 24, 27, 255)
	s.RowBgAltColor = RGBA(30, 30, 34, 255)
	s.FrozenBgColor = RGBA(36, 36, 40, 255)
	s.GridLineColor = RGBA(52, 52, 58, 255)
	s.FrozenEdgeColor = RGBA(90, 90, 98, 255)
	s.SelectedBgColor = RGBA(77, 171, 247, 50)
	s.ScrollbarBgColor = RGBA(255, 255, 255, 10)
	s.ScrollbarGrabColor = RGBA(255, 255, 255, 110)
	s.ScrollbarSettled = RGBA(255, 255, 255, 50)
	return s
}
