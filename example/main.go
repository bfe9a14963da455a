// Example opens a GLFW window with a 50 000 x 200 synthetic grid.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Click and shift-click select ranges, dragging past the viewport edges
// auto-scrolls, Ctrl+C copies the selection as TSV.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/opengl"
	"github.com/go-theft-auto/grid/internal/sample"
)

const (
	windowWidth  = 1024
	windowHeight = 640
	windowTitle  = "grid example"

	rowCount    = 50_000
	columnCount = 200
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	w, h := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(w, h)
	if err != nil {
		return fmt.Errorf("grid renderer: %w", err)
	}
	defer renderer.Delete()

	cols := sample.Columns(columnCount)
	surface := grid.NewMemorySurface(grid.Rect{W: float32(w), H: float32(h)})
	clock := grid.NewFrameClock()

	g, err := grid.New(sample.NewProvider(rowCount, cols), cols,
		grid.WithSurface(surface),
		grid.WithOverlay(grid.NewMemoryScrollbar()),
		grid.WithScheduler(clock),
		grid.WithClipboard(opengl.Clipboard{Window: window}),
		grid.WithPermission(func(grid.Record) bool { return true }),
		grid.WithStyle(grid.DarkStyle()),
	)
	if err != nil {
		return fmt.Errorf("create grid: %w", err)
	}
	defer g.Dispose()

	g.Subscribe(grid.TopicEditorRequested, func(e grid.Event) {
		req := e.(grid.EditorRequested)
		slog.Info("editor requested", "row", req.Position.Row, "col", req.Position.Column, "trigger", req.Trigger)
	})

	input := opengl.NewGLFWInputAdapter(window)
	input.OnResize(func(width, height int) {
		renderer.Resize(width, height)
		surface.SetBounds(grid.Rect{W: float32(width), H: float32(height)})
		g.HandleResize()
	})

	for !window.ShouldClose() {
		in, dt := input.Update()
		clock.Advance(time.Duration(float64(dt) * float64(time.Second)))
		g.HandleInput(in)

		fw, fh := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := g.Render(renderer); err != nil {
			return fmt.Errorf("grid render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
