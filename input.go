package grid

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key the grid reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeySpace
	KeyA
	KeyC
	KeyCount
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether every bit of m2 is set.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// Key repeat timing constants
const (
	KeyRepeatDelay    float32 = 0.4  // Initial delay before repeat starts (seconds)
	KeyRepeatInterval float32 = 0.03 // Repeat interval once repeating (seconds)
)

// doubleClickSlop is how far apart in pixels two clicks may land and still
// count as a double click.
const doubleClickSlop = 4

// InputState holds input state for the current frame.
// Host adapters (GLFW, terminal) populate it; Grid.HandleInput consumes it.
type InputState struct {
	// Mouse position in screen pixels
	MouseX, MouseY float32

	mouseDown          [MouseButtonCount]bool
	mouseClicked       [MouseButtonCount]bool // True on the frame button was pressed
	mouseUp            [MouseButtonCount]bool // True on the frame button was released
	mouseDoubleClicked [MouseButtonCount]bool

	// Double click detection
	DoubleClickTime float32 // Seconds; 0 disables detection
	time            float32
	frameDt         float32 // Last Tick delta, for key repeat
	lastClickTime   [MouseButtonCount]float32
	lastClickPos    [MouseButtonCount]Vec2
	hasLastClick    [MouseButtonCount]bool

	// Mouse wheel
	MouseWheelX float32
	MouseWheelY float32

	keyDown     [KeyCount]bool
	keyPressed  [KeyCount]bool
	keyUp       [KeyCount]bool
	keyHoldTime [KeyCount]float32

	// Modifiers
	ModCtrl  bool
	ModShift bool
	ModAlt   bool
	ModSuper bool
}

// NewInputState creates a new InputState with a 300ms double click window.
func NewInputState() *InputState {
	return &InputState{DoubleClickTime: 0.3}
}

// Reset clears per-frame input state.
// Call this at the start of each frame before collecting input.
func (s *InputState) Reset() {
	s.mouseClicked = [MouseButtonCount]bool{}
	s.mouseUp = [MouseButtonCount]bool{}
	s.mouseDoubleClicked = [MouseButtonCount]bool{}
	s.keyPressed = [KeyCount]bool{}
	s.keyUp = [KeyCount]bool{}
	s.MouseWheelX = 0
	s.MouseWheelY = 0
}

// Tick advances the input clock and key hold times.
// Call this once per frame with the frame's delta time in seconds.
func (s *InputState) Tick(dt float32) {
	s.time += dt
	s.frameDt = dt
	for key := Key(0); key < KeyCount; key++ {
		if s.keyDown[key] {
			s.keyHoldTime[key] += dt
		}
	}
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX = x
	s.MouseY = y
}

// MousePos returns the mouse position as a vector.
func (s *InputState) MousePos() Vec2 { return Vec2{X: s.MouseX, Y: s.MouseY} }

// SetMouseButton sets mouse button state and detects double clicks.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}

	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down

	if down && !wasDown {
		s.mouseClicked[button] = true
		s.detectDoubleClick(button)
	}
	if !down && wasDown {
		s.mouseUp[button] = true
	}
}

func (s *InputState) detectDoubleClick(button MouseButton) {
	pos := s.MousePos()
	if s.DoubleClickTime > 0 && s.hasLastClick[button] {
		d := pos.Sub(s.lastClickPos[button])
		near := d.X*d.X+d.Y*d.Y <= doubleClickSlop*doubleClickSlop
		if near && s.time-s.lastClickTime[button] <= s.DoubleClickTime {
			s.mouseDoubleClicked[button] = true
			// A third click starts a new pair.
			s.hasLastClick[button] = false
			return
		}
	}
	s.hasLastClick[button] = true
	s.lastClickTime[button] = s.time
	s.lastClickPos[button] = pos
}

// SetKey sets key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key < 0 || key >= KeyCount {
		return
	}

	wasDown := s.keyDown[key]
	s.keyDown[key] = down

	if down && !wasDown {
		s.keyPressed[key] = true
		s.keyHoldTime[key] = 0
	}
	if !down && wasDown {
		s.keyUp[key] = true
		s.keyHoldTime[key] = 0
	}
}

// SetMouseWheel sets the mouse wheel delta.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX = x
	s.MouseWheelY = y
}

// Modifiers returns the held modifiers as a bitmask.
func (s *InputState) Modifiers() Modifiers {
	var m Modifiers
	if s.ModShift {
		m |= ModShift
	}
	if s.ModCtrl {
		m |= ModCtrl
	}
	if s.ModAlt {
		m |= ModAlt
	}
	if s.ModSuper {
		m |= ModSuper
	}
	return m
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was just clicked (pressed this frame).
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// MouseDoubleClicked returns true if this frame's click completed a double click.
func (s *InputState) MouseDoubleClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDoubleClicked[button]
}

// MouseReleased returns true if a mouse button was just released.
func (s *InputState) MouseReleased(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseUp[button]
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyDown[key]
}

// KeyPressed returns true if a key was just pressed (pressed this frame).
func (s *InputState) KeyPressed(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// KeyRepeated returns true if a key should trigger this frame.
// Returns true on initial press, then after KeyRepeatDelay, then every KeyRepeatInterval.
func (s *InputState) KeyRepeated(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	if s.keyPressed[key] {
		return true
	}
	if !s.keyDown[key] {
		return false
	}

	holdTime := s.keyHoldTime[key]
	if holdTime < KeyRepeatDelay {
		return false
	}
	since := holdTime - KeyRepeatDelay
	prev := since - s.frameDt
	if prev < 0 {
		return true
	}
	return int(since/KeyRepeatInterval) > int(prev/KeyRepeatInterval)
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	switch k {
	case KeyNone:
		return "--"
	case KeyTab:
		return "Tab"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyPageUp:
		return "PgUp"
	case KeyPageDown:
		return "PgDn"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Esc"
	case KeySpace:
		return "Space"
	case KeyA:
		return "A"
	case KeyC:
		return "C"
	}
	return "?"
}
