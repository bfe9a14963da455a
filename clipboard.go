package grid

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ClipboardProvider abstracts clipboard access.
//
// For GLFW:
//
//	type GLFWClipboard struct {
//	    window *glfw.Window
//	}
//
//	func (c *GLFWClipboard) GetText() string {
//	    return c.window.GetClipboardString()
//	}
//
//	func (c *GLFWClipboard) SetText(text string) {
//	    c.window.SetClipboardString(text)
//	}
type ClipboardProvider interface {
	// GetText retrieves text from the clipboard.
	// Returns empty string if clipboard is empty or contains non-text data.
	GetText() string

	// SetText copies text to the clipboard.
	SetText(text string)
}

// SystemClipboard is the OS clipboard via xclip/xsel, pbcopy or the Windows API.
type SystemClipboard struct{}

// GetText reads the OS clipboard. Errors read as empty.
func (SystemClipboard) GetText() string {
	s, err := clipboard.ReadAll()
	if err != nil {
		gridLogger.Debug("clipboard read failed", "err", err)
		return ""
	}
	return s
}

// SetText writes the OS clipboard.
func (SystemClipboard) SetText(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		gridLogger.Debug("clipboard write failed", "err", err)
	}
}

// ClipboardAvailable reports whether the OS clipboard can be used.
func ClipboardAvailable() bool { return !clipboard.Unsupported }

// MemoryClipboard holds text in process.
type MemoryClipboard struct {
	Text string
}

func (c *MemoryClipboard) GetText() string     { return c.Text }
func (c *MemoryClipboard) SetText(text string) { c.Text = text }

// FormatValue renders a cell value as plain text.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case []string:
		return strings.Join(x, ", ")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

// SelectionTSV returns the selected cells as tab-separated lines.
func (g *Grid) SelectionTSV() (string, bool) {
	sel := g.selection.State()
	if sel.Kind == SelectionNone {
		return "", false
	}
	r := sel.Range()
	var b strings.Builder
	for row := r.TopLeft.Row; row <= r.BottomRight.Row; row++ {
		rec, _ := g.provider.RecordByIndex(row)
		for col := r.TopLeft.Column; col <= r.BottomRight.Column; col++ {
			if col > r.TopLeft.Column {
				b.WriteByte('\t')
			}
			if rec != nil {
				b.WriteString(tsvEscaper.Replace(FormatValue(rec.Value(g.columns[col].Key))))
			}
		}
		if row < r.BottomRight.Row {
			b.WriteByte('\n')
		}
	}
	return b.String(), true
}

// Copy writes the selection as TSV to the clipboard provider.
func (g *Grid) Copy() bool {
	if g.disposed {
		return false
	}
	text, ok := g.SelectionTSV()
	if !ok {
		return false
	}
	if g.clipboard == nil {
		g.logger.Debug("copy skipped, no clipboard")
		return false
	}
	g.clipboard.SetText(text)
	return true
}
