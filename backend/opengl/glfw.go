package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
)

// GLFWInputAdapter feeds GLFW window events into a grid.InputState.
type GLFWInputAdapter struct {
	window   *glfw.Window
	input    *grid.InputState
	onResize func(width, height int)
	lastTime float64
}

// NewGLFWInputAdapter installs the window callbacks.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	a := &GLFWInputAdapter{
		window:   window,
		input:    grid.NewInputState(),
		lastTime: glfw.GetTime(),
	}

	window.SetKeyCallback(a.keyCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)
	window.SetFramebufferSizeCallback(a.framebufferSizeCallback)

	return a
}

// OnResize sets the framebuffer resize handler.
func (a *GLFWInputAdapter) OnResize(fn func(width, height int)) {
	a.onResize = fn
}

// Update clears last frame's edges, polls events and returns the input for
// this frame together with the elapsed seconds.
func (a *GLFWInputAdapter) Update() (*grid.InputState, float32) {
	a.input.Reset()
	glfw.PollEvents()

	now := glfw.GetTime()
	dt := float32(now - a.lastTime)
	a.lastTime = now
	a.input.Tick(dt)

	pressed := func(l, r glfw.Key) bool {
		return a.window.GetKey(l) == glfw.Press || a.window.GetKey(r) == glfw.Press
	}
	a.input.ModCtrl = pressed(glfw.KeyLeftControl, glfw.KeyRightControl)
	a.input.ModShift = pressed(glfw.KeyLeftShift, glfw.KeyRightShift)
	a.input.ModAlt = pressed(glfw.KeyLeftAlt, glfw.KeyRightAlt)
	a.input.ModSuper = pressed(glfw.KeyLeftSuper, glfw.KeyRightSuper)

	return a.input, dt
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *grid.InputState {
	return a.input
}

func (a *GLFWInputAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k, ok := gridKeys[key]
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b, ok := gridButtons[button]
	if !ok {
		return
	}
	a.input.SetMouseButton(b, action == glfw.Press)
}

func (a *GLFWInputAdapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(a.input.MouseWheelX+float32(xoff), a.input.MouseWheelY+float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(_ *glfw.Window, x, y float64) {
	a.input.SetMousePos(float32(x), float32(y))
}

func (a *GLFWInputAdapter) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if a.onResize != nil {
		a.onResize(width, height)
	}
}

var gridKeys = map[glfw.Key]grid.Key{
	glfw.KeyTab:      grid.KeyTab,
	glfw.KeyLeft:     grid.KeyLeft,
	glfw.KeyRight:    grid.KeyRight,
	glfw.KeyUp:       grid.KeyUp,
	glfw.KeyDown:     grid.KeyDown,
	glfw.KeyPageUp:   grid.KeyPageUp,
	glfw.KeyPageDown: grid.KeyPageDown,
	glfw.KeyHome:     grid.KeyHome,
	glfw.KeyEnd:      grid.KeyEnd,
	glfw.KeyEnter:    grid.KeyEnter,
	glfw.KeyKPEnter:  grid.KeyEnter,
	glfw.KeyEscape:   grid.KeyEscape,
	glfw.KeySpace:    grid.KeySpace,
	glfw.KeyA:        grid.KeyA,
	glfw.KeyC:        grid.KeyC,
}

var gridButtons = map[glfw.MouseButton]grid.MouseButton{
	glfw.MouseButtonLeft:   grid.MouseButtonLeft,
	glfw.MouseButtonRight:  grid.MouseButtonRight,
	glfw.MouseButtonMiddle: grid.MouseButtonMiddle,
}

// Clipboard is a grid.ClipboardProvider backed by the GLFW window.
type Clipboard struct {
	Window *glfw.Window
}

func (c Clipboard) GetText() string     { return c.Window.GetClipboardString() }
func (c Clipboard) SetText(text string) { c.Window.SetClipboardString(text) }
