package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/grid"
)

// fakeNow is a manually advanced wall clock.
type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time          { return f.t }
func (f *fakeNow) step(d time.Duration)    { f.t = f.t.Add(d) }
func newFakeNow() *fakeNow                 { return &fakeNow{t: time.Unix(1_700_000_000, 0)} }
func press(x, y int) tea.MouseMsg          { return mouse(x, y, tea.MouseButtonLeft, tea.MouseActionPress) }
func release(x, y int) tea.MouseMsg        { return mouse(x, y, tea.MouseButtonLeft, tea.MouseActionRelease) }
func motion(x, y int) tea.MouseMsg         { return mouse(x, y, tea.MouseButtonLeft, tea.MouseActionMotion) }
func keyMsg(t tea.KeyType) tea.KeyMsg      { return tea.KeyMsg{Type: t} }
func runeMsg(r rune) tea.KeyMsg            { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }
func sizeMsg(w, h int) tea.WindowSizeMsg   { return tea.WindowSizeMsg{Width: w, Height: h} }
func wheel(b tea.MouseButton) tea.MouseMsg { return mouse(5, 5, b, tea.MouseActionPress) }
func mouse(x, y int, b tea.MouseButton, a tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: b, Action: a}
}

// Pixel widths; in the terminal they become 10, 15, 20, 30 and 20 columns.
func testColumns() []grid.Column {
	return []grid.Column{
		{Key: "name", Name: "Name", Type: grid.ColumnText, Width: 80, Frozen: true, Editable: true},
		{Key: "date", Name: "Date", Type: grid.ColumnDate, Width: 120, Editable: true},
		{Key: "status", Name: "Status", Type: grid.ColumnSingleSelect, Width: 160, Editable: true},
		{Key: "notes", Name: "Notes", Type: grid.ColumnLongText, Width: 240, Editable: true},
		{Key: "created", Name: "Created", Type: grid.ColumnCreatedTime, Width: 160},
	}
}

func testRecords(start, n int) []grid.Record {
	out := make([]grid.Record, n)
	for i := range out {
		row := start + i
		out[i] = &grid.MapRecord{RecordID: fmt.Sprintf("r%d", row), Values: map[string]any{
			"name":    fmt.Sprintf("row %d", row),
			"date":    fmt.Sprintf("2024-01-%02d", row%28+1),
			"status":  "open",
			"notes":   "note",
			"created": "2024-01-01 10:00",
		}}
	}
	return out
}

type pagedProvider struct {
	*grid.SliceProvider
	next int
}

func (p *pagedProvider) LoadMore(context.Context) error {
	p.Append(testRecords(p.next, 50)...)
	p.next += 50
	return nil
}

type fixture struct {
	m     *Model
	clock *fakeNow
	clip  *grid.MemoryClipboard
}

// newFixture builds a 60x12 terminal: a header line, ten body lines and a
// status line.
func newFixture(t *testing.T, provider grid.DataProvider) *fixture {
	t.Helper()
	if provider == nil {
		provider = grid.NewSliceProvider(testRecords(0, 100))
	}
	f := &fixture{clock: newFakeNow(), clip: &grid.MemoryClipboard{}}
	m, err := New(provider, testColumns(),
		WithClock(f.clock.now),
		WithClipboard(f.clip),
		WithGridOptions(grid.WithPermission(func(grid.Record) bool { return true })),
	)
	require.NoError(t, err)
	f.m = m
	f.send(sizeMsg(60, 12))
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func TestTerminalColumns(t *testing.T) {
	cols := TerminalColumns(testColumns())
	widths := make([]float32, len(cols))
	for i, c := range cols {
		widths[i] = c.Width
	}
	assert.Equal(t, []float32{10, 15, 20, 30, 20}, widths)
	assert.Equal(t, float32(80), testColumns()[0].Width, "input must not be modified")
}

func TestModel_View(t *testing.T) {
	f := newFixture(t, nil)
	lines := strings.Split(f.m.View(), "\n")
	require.Len(t, lines, 12)

	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[0], "Status")
	assert.Contains(t, lines[1], "row 0")
	assert.Contains(t, lines[10], "row 9")
	assert.Contains(t, lines[11], "no selection")
	assert.Contains(t, lines[11], "100 rows")
	// Thumb at the top of the overlay scrollbar.
	assert.True(t, strings.HasSuffix(lines[1], "┃"), "got %q", lines[1])
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m, err := New(grid.NewSliceProvider(testRecords(0, 3)), testColumns(), WithClipboard(&grid.MemoryClipboard{}))
	require.NoError(t, err)
	assert.Empty(t, m.View())
}

func TestModel_ClickAndExtend(t *testing.T) {
	f := newFixture(t, nil)

	// Screen x 12 is in the date column, line 3 is row 2.
	f.send(press(12, 3))
	f.send(release(12, 3))
	sel := f.m.Grid().Selection()
	assert.Equal(t, grid.SelectionCell, sel.Kind)
	assert.Equal(t, grid.CellPosition{Row: 2, Column: 1}, sel.Focus)

	f.send(keyMsg(tea.KeyShiftDown))
	f.send(keyMsg(tea.KeyShiftDown))
	sel = f.m.Grid().Selection()
	assert.Equal(t, grid.SelectionRange, sel.Kind)
	assert.Equal(t, grid.NewCellRange(grid.CellPosition{Row: 2, Column: 1}, grid.CellPosition{Row: 4, Column: 1}), sel.Range())

	f.send(keyMsg(tea.KeyCtrlC))
	assert.Equal(t, "2024-01-03\n2024-01-04\n2024-01-05", f.clip.Text)
	assert.Contains(t, f.m.View(), "copied 3×1")
}

func TestModel_HeaderSelectsColumn(t *testing.T) {
	f := newFixture(t, nil)
	f.send(press(30, 0))
	sel := f.m.Grid().Selection()
	assert.Equal(t, grid.CellPosition{Row: 0, Column: 2}, sel.Focus)
}

func TestModel_WheelScrollsAndTicks(t *testing.T) {
	f := newFixture(t, nil)
	cmd := f.send(wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, float32(3), f.m.Grid().Viewport().ScrollTop)
	assert.NotNil(t, cmd, "pending settle timer must schedule a tick")
	assert.False(t, f.m.Grid().ScrollSettled())

	f.clock.step(350 * time.Millisecond)
	f.send(tickMsg{})
	assert.True(t, f.m.Grid().ScrollSettled())

	f.send(wheel(tea.MouseButtonWheelUp))
	assert.Equal(t, float32(0), f.m.Grid().Viewport().ScrollTop)
}

func TestModel_DragAutoScroll(t *testing.T) {
	f := newFixture(t, nil)
	f.send(press(30, 5))
	f.send(motion(58, 5))
	require.True(t, f.m.Grid().AutoScrolling())
	assert.Equal(t, grid.SelectionRange, f.m.Grid().Selection().Kind)

	f.clock.step(30 * time.Millisecond)
	f.send(tickMsg{})
	assert.Greater(t, f.m.Grid().Viewport().ScrollLeft, float32(0))
	assert.Contains(t, f.m.View(), "scrolling")

	f.send(release(58, 5))
	assert.False(t, f.m.Grid().AutoScrolling())
}

func TestModel_EnterOpensEditor(t *testing.T) {
	f := newFixture(t, nil)
	f.send(press(30, 2))
	f.send(release(30, 2))
	f.send(keyMsg(tea.KeyEnter))
	require.True(t, f.m.Editing())
	assert.Contains(t, f.m.View(), "Status, row 2: open")

	// Keys go to the editor while it is open, q included.
	f.send(runeMsg('!'))
	f.send(runeMsg('q'))
	assert.False(t, f.m.Grid().Disposed())
	f.send(keyMsg(tea.KeyEnter))
	assert.False(t, f.m.Editing())

	rec, ok := f.m.Grid().Record(1)
	require.True(t, ok)
	assert.Equal(t, "open!q", rec.Value("status"))
	assert.Contains(t, f.m.View(), "saved")
}

func TestModel_EditorEscapeDiscards(t *testing.T) {
	f := newFixture(t, nil)
	f.send(press(2, 4))
	f.send(release(2, 4))
	f.send(keyMsg(tea.KeyEnter))
	require.True(t, f.m.Editing())

	f.send(runeMsg('x'))
	f.send(keyMsg(tea.KeyEsc))
	assert.False(t, f.m.Editing())
	rec, _ := f.m.Grid().Record(3)
	assert.Equal(t, "row 3", rec.Value("name"))
}

func TestModel_ReadOnlyColumnRefusesEditor(t *testing.T) {
	f := newFixture(t, nil)
	f.send(press(30, 2))
	f.send(release(30, 2))
	for range 3 {
		f.send(keyMsg(tea.KeyRight))
	}
	require.Equal(t, 4, f.m.Grid().Selection().Focus.Column)
	f.send(keyMsg(tea.KeyEnter))
	assert.False(t, f.m.Editing())
}

func TestModel_LoadMore(t *testing.T) {
	p := &pagedProvider{SliceProvider: grid.NewSliceProvider(testRecords(0, 50)), next: 50}
	f := newFixture(t, p)
	require.Equal(t, 50, f.m.Grid().RowCount())

	f.send(loadMoreMsg{})
	assert.Equal(t, 100, f.m.Grid().RowCount())
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t, nil)
	cmd := f.send(runeMsg('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, f.m.Grid().Disposed())
	assert.Empty(t, f.m.View())
}

func TestFitCell(t *testing.T) {
	assert.Equal(t, " hello │", fitCell("hello", 8))
	assert.Equal(t, " abc…│", fitCell("abcdefghij", 6))
	assert.Equal(t, " a b │", fitCell("a\nb", 6))
	assert.Equal(t, "  ", fitCell("x", 2))
}

func TestCutCols(t *testing.T) {
	assert.Equal(t, "bc…", cutCols(" abc…│", 2, 5))
	assert.Equal(t, " abc…│", cutCols(" abc…│", 0, 6))
	assert.Equal(t, " 本", cutCols("日本", 1, 4))
}
