// Command gen renders the grid in documented states, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/backend/opengl"
	"github.com/go-theft-auto/grid/internal/sample"
)

const (
	maxWidth  = 800
	maxHeight = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot is one grid state to capture.
type screenshot struct {
	name   string // filename without extension
	width  int
	height int
	style  grid.Style
	setup  func(g *grid.Grid, clock *grid.FrameClock)
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
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(maxWidth, maxHeight, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(maxWidth, maxHeight)
	if err != nil {
		return fmt.Errorf("grid renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// The hidden window stays at maxWidth x maxHeight; only the projection
	// follows the screenshot size.
	renderer.Resize(s.width, s.height)

	// Fresh grid per screenshot so no state leaks between captures.
	cols := sample.Columns(24)
	clock := grid.NewFrameClock()
	g, err := grid.New(sample.NewProvider(5_000, cols), cols,
		grid.WithSurface(grid.NewMemorySurface(grid.Rect{W: float32(s.width), H: float32(s.height)})),
		grid.WithOverlay(grid.NewMemoryScrollbar()),
		grid.WithScheduler(clock),
		grid.WithPermission(func(grid.Record) bool { return true }),
		grid.WithStyle(s.style),
	)
	if err != nil {
		return err
	}
	defer g.Dispose()

	if s.setup != nil {
		s.setup(g, clock)
	}

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if err := g.Render(renderer); err != nil {
		return err
	}

	img := readFramebuffer(s.width, s.height)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// readFramebuffer copies the bottom-left origin framebuffer into a top-left
// origin image.
func readFramebuffer(width, height int) *image.RGBA {
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stride := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * stride
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], pixels[src:src+stride])
	}
	return img
}

func buildScreenshots() []screenshot {
	light := grid.DefaultStyle()
	dark := grid.DarkStyle()

	return []screenshot{
		{name: "grid", width: 640, height: 360, style: light},
		{
			name: "grid_cell", width: 640, height: 360, style: light,
			setup: func(g *grid.Grid, _ *grid.FrameClock) {
				g.Select(grid.CellPosition{Row: 3, Column: 1})
			},
		},
		{
			name: "grid_range", width: 640, height: 360, style: light,
			setup: func(g *grid.Grid, _ *grid.FrameClock) {
				g.Select(grid.CellPosition{Row: 2, Column: 1})
				for i := 0; i < 4; i++ {
					g.KeyDown(grid.KeyDown, grid.ModShift)
				}
				g.KeyDown(grid.KeyRight, grid.ModShift)
			},
		},
		{
			name: "grid_frozen", width: 640, height: 360, style: dark,
			setup: func(g *grid.Grid, _ *grid.FrameClock) {
				g.ScrollToColumn(12)
				g.JumpToRow(400)
			},
		},
		{
			name: "grid_autoscroll", width: 640, height: 360, style: dark,
			setup: func(g *grid.Grid, clock *grid.FrameClock) {
				g.PointerDown(grid.Vec2{X: 300, Y: 100}, false)
				g.PointerMove(grid.Vec2{X: 630, Y: 100})
				clock.Advance(200 * time.Millisecond)
				g.PointerUp()
			},
		},
		{
			name: "grid_select_all", width: 480, height: 240, style: dark,
			setup: func(g *grid.Grid, _ *grid.FrameClock) {
				g.SelectAll()
			},
		},
	}
}
