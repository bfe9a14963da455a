// Package tui hosts a grid in the terminal with bubbletea.
//
// One terminal cell is one unit of the grid's coordinate space: rows are one
// line high and column widths are counted in characters. The top line holds
// the column headers, the bottom line the status, and the rightmost column
// the overlay scrollbar.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/grid"
)

// tickInterval drives the grid's timers while any are pending.
const tickInterval = 10 * time.Millisecond

// pixelsPerChar converts pixel column widths to terminal columns.
const pixelsPerChar = 8

type tickMsg struct{}

type loadMoreMsg struct{}

type config struct {
	keys      KeyMap
	styles    Styles
	now       func() time.Time
	clipboard grid.ClipboardProvider
	gridOpts  []grid.Option
}

// Option configures a Model.
type Option func(*config)

// WithKeyMap replaces the key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(c *config) { c.keys = k }
}

// WithStyles replaces the styles.
func WithStyles(s Styles) Option {
	return func(c *config) { c.styles = s }
}

// WithClock sets the wall clock used to advance the grid's timers.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithClipboard sets where copied ranges go. The OS clipboard is used when
// available.
func WithClipboard(cp grid.ClipboardProvider) Option {
	return func(c *config) { c.clipboard = cp }
}

// WithGridOptions passes options through to grid.New. They are applied after
// the terminal defaults.
func WithGridOptions(opts ...grid.Option) Option {
	return func(c *config) { c.gridOpts = append(c.gridOpts, opts...) }
}

// Model is a bubbletea model around one grid.
type Model struct {
	grid    *grid.Grid
	surface *grid.MemorySurface
	overlay *grid.MemoryScrollbar
	clock   *grid.FrameClock
	input   *grid.InputState
	keys    KeyMap
	styles  Styles
	now     func() time.Time
	last    time.Time

	loader   bool
	wantMore bool
	ticking  bool
	quitting bool

	width, height int
	status        string

	editor  textinput.Model
	editing *grid.CellPosition
}

// TerminalConfig scales the grid's pixel constants to character cells.
func TerminalConfig() grid.Config {
	cfg := grid.DefaultConfig()
	cfg.RowHeight = 1
	cfg.EdgeBand = 3
	cfg.HorizontalStep = 2
	cfg.VerticalStep = 1
	cfg.WheelStep = 3
	return cfg
}

// TerminalColumns converts pixel widths to character widths.
func TerminalColumns(cols []grid.Column) []grid.Column {
	out := make([]grid.Column, len(cols))
	for i, c := range cols {
		c.Width = float32(max(4, int(c.Width/pixelsPerChar+0.5)))
		out[i] = c
	}
	return out
}

func terminalStyle() grid.Style {
	s := grid.DefaultStyle()
	s.ScrollbarSize = 1
	s.ScrollbarMinGrab = 1
	s.CharWidth = 1
	s.CharHeight = 1
	s.CellPadding = 1
	return s
}

// New creates a model showing provider's records under columns. Column
// widths are given in pixels and converted to characters.
func New(provider grid.DataProvider, columns []grid.Column, opts ...Option) (*Model, error) {
	cfg := config{keys: DefaultKeyMap(), styles: DefaultStyles(), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clipboard == nil {
		if grid.ClipboardAvailable() {
			cfg.clipboard = grid.SystemClipboard{}
		} else {
			cfg.clipboard = &grid.MemoryClipboard{}
		}
	}

	m := &Model{
		surface: grid.NewMemorySurface(grid.Rect{Y: 1}),
		overlay: grid.NewMemoryScrollbar(),
		clock:   grid.NewFrameClock(),
		input:   grid.NewInputState(),
		keys:    cfg.keys,
		styles:  cfg.styles,
		now:     cfg.now,
		editor:  textinput.New(),
	}
	_, m.loader = provider.(grid.Loader)

	gridOpts := append([]grid.Option{
		grid.WithConfig(TerminalConfig()),
		grid.WithSurface(m.surface),
		grid.WithOverlay(m.overlay),
		grid.WithScheduler(m.clock),
		grid.WithClipboard(cfg.clipboard),
		grid.WithStyle(terminalStyle()),
		grid.WithLoadMore(func() { m.wantMore = true }),
	}, cfg.gridOpts...)

	g, err := grid.New(provider, TerminalColumns(columns), gridOpts...)
	if err != nil {
		return nil, err
	}
	m.grid = g

	g.Subscribe(grid.TopicEditorRequested, func(e grid.Event) {
		m.beginEdit(e.(grid.EditorRequested).Position)
	})
	return m, nil
}

// beginEdit opens the inline editor on the status line, seeded with the
// cell's current text.
func (m *Model) beginEdit(pos grid.CellPosition) {
	col := m.grid.Columns()[pos.Column]
	var value string
	if rec, ok := m.grid.Record(pos.Row); ok {
		value = grid.FormatValue(rec.Value(col.Key))
	}
	m.editing = &pos
	m.editor.Prompt = fmt.Sprintf("%s, row %d: ", col.Name, pos.Row+1)
	m.editor.SetValue(value)
	m.editor.CursorEnd()
	m.editor.Focus()
	m.status = ""
}

// editKey feeds a key to the open editor. Enter writes the value through the
// grid, Escape discards it.
func (m *Model) editKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		pos := *m.editing
		m.endEdit()
		if err := m.grid.RequestEdit(context.Background(), pos, m.editor.Value()); err != nil {
			slog.Debug("edit rejected", "pos", pos, "err", err)
			m.status = "edit failed: " + err.Error()
		} else {
			m.status = "saved"
		}
		return nil
	case tea.KeyEsc:
		m.endEdit()
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *Model) endEdit() {
	m.editing = nil
	m.editor.Blur()
}

// Editing reports whether the inline editor is open.
func (m *Model) Editing() bool { return m.editing != nil }

// Grid returns the hosted grid.
func (m *Model) Grid() *grid.Grid { return m.grid }

// Run starts a full-screen program and blocks until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd { return nil }

// Update handles terminal events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.advance()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if m.editing != nil {
			return m, tea.Batch(m.editKey(msg), m.followUp())
		}
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.grid.Dispose()
			return m, tea.Quit
		}
		k, mods, ok := m.keys.gridKey(msg)
		if !ok {
			break
		}
		m.status = ""
		if m.grid.KeyDown(k, mods) && k == grid.KeyC {
			r := m.grid.Selection().Range()
			m.status = fmt.Sprintf("copied %d×%d", r.Rows(), r.Columns())
		}

	case tea.MouseMsg:
		m.mouse(msg)

	case tickMsg:
		m.ticking = false

	case loadMoreMsg:
		if err := m.grid.LoadMore(context.Background()); err != nil {
			slog.Debug("load more failed", "err", err)
			m.status = "load failed: " + err.Error()
		}
	}

	return m, m.followUp()
}

// advance moves the grid's clock to the current wall time.
func (m *Model) advance() {
	now := m.now()
	if m.last.IsZero() {
		m.last = now
		return
	}
	dt := now.Sub(m.last)
	m.last = now
	if dt <= 0 {
		return
	}
	m.input.Tick(float32(dt.Seconds()))
	m.clock.Advance(dt)
}

// followUp schedules a tick while timers are pending and a page load when
// the grid hit the bottom.
func (m *Model) followUp() tea.Cmd {
	var cmds []tea.Cmd
	if m.wantMore {
		m.wantMore = false
		if m.loader {
			cmds = append(cmds, func() tea.Msg { return loadMoreMsg{} })
		}
	}
	if !m.ticking && !m.quitting && m.clock.Pending() > 0 {
		m.ticking = true
		cmds = append(cmds, tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.surface.SetBounds(grid.Rect{Y: 1, W: float32(w), H: float32(max(0, h-2))})
	m.grid.HandleResize()
}

// mouse feeds one mouse event through the grid's frame input.
func (m *Model) mouse(msg tea.MouseMsg) {
	in := m.input
	in.Reset()
	in.SetMousePos(float32(msg.X)+0.5, float32(msg.Y)+0.5)
	in.ModShift, in.ModCtrl, in.ModAlt = msg.Shift, msg.Ctrl, msg.Alt

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		in.SetMouseWheel(0, 1)
	case tea.MouseButtonWheelDown:
		in.SetMouseWheel(0, -1)
	case tea.MouseButtonWheelLeft:
		in.SetMouseWheel(1, 0)
	case tea.MouseButtonWheelRight:
		in.SetMouseWheel(-1, 0)
	case tea.MouseButtonLeft, tea.MouseButtonRight:
		b := grid.MouseButtonLeft
		if msg.Button == tea.MouseButtonRight {
			b = grid.MouseButtonRight
		}
		switch msg.Action {
		case tea.MouseActionPress:
			if b == grid.MouseButtonLeft && msg.Y == 0 && m.headerClick(msg.X) {
				return
			}
			in.SetMouseButton(b, true)
		case tea.MouseActionRelease:
			in.SetMouseButton(b, false)
		}
	case tea.MouseButtonNone:
		// Terminals without button reporting on release.
		if msg.Action == tea.MouseActionRelease {
			in.SetMouseButton(grid.MouseButtonLeft, false)
			in.SetMouseButton(grid.MouseButtonRight, false)
		}
	}
	m.grid.HandleInput(in)
}

// headerClick selects the column under x.
func (m *Model) headerClick(x int) bool {
	pos, ok := m.grid.CellAt(grid.Vec2{X: float32(x) + 0.5, Y: m.surface.Bounds().Y + 0.5})
	if !ok {
		return false
	}
	m.status = ""
	return m.grid.SelectColumn(pos.Column)
}

// View renders the header, the materialized rows, the scrollbar and the
// status line.
func (m *Model) View() string {
	if m.quitting || m.width <= 1 || m.height <= 2 {
		return ""
	}
	body := m.height - 2
	contentW := m.width - 1

	lines := make([]string, 0, m.height)
	lines = append(lines, m.header(contentW)+" ")

	rowLines := make([]string, body)
	blank := strings.Repeat(" ", contentW)
	for i := range rowLines {
		rowLines[i] = blank
	}
	top := int(m.surface.Bounds().Y)
	for _, rv := range m.grid.Rows() {
		y := int(rv.Y) - top
		if y < 0 || y >= body {
			continue
		}
		rowLines[y] = m.row(rv, contentW)
	}
	bar := m.scrollbar(body)
	for i, l := range rowLines {
		lines = append(lines, l+bar[i])
	}

	lines = append(lines, m.statusLine())
	return strings.Join(lines, "\n")
}

// span is the visible slice of one grid column on screen.
type span struct {
	col      int
	x        int // Screen column of the grid column's left edge
	from, to int // Visible screen columns
}

// spans lists the visible column slices left to right.
func (m *Model) spans(width int) []span {
	metrics := m.grid.Metrics()
	win := m.grid.VisibleColumns()
	left := m.grid.Viewport().ScrollLeft
	fw := int(metrics.FrozenWidth())

	var out []span
	add := func(c, x, lo int) {
		w := int(metrics.Width(c))
		from, to := max(x, lo), min(x+w, width)
		if from < to {
			out = append(out, span{col: c, x: x, from: from, to: to})
		}
	}
	for c := 0; c < win.Frozen; c++ {
		add(c, int(metrics.Left(c)), 0)
	}
	for c := win.Start; c < win.End; c++ {
		add(c, int(metrics.Left(c)-left), fw)
	}
	return out
}

// compose joins styled segments, padding gaps to width.
func compose(width int, spans []span, render func(s span) string) string {
	var b strings.Builder
	cursor := 0
	for _, s := range spans {
		if s.from > cursor {
			b.WriteString(strings.Repeat(" ", s.from-cursor))
		}
		b.WriteString(render(s))
		cursor = s.to
	}
	if cursor < width {
		b.WriteString(strings.Repeat(" ", width-cursor))
	}
	return b.String()
}

func (m *Model) header(width int) string {
	cols := m.grid.Columns()
	return compose(width, m.spans(width), func(s span) string {
		w := int(m.grid.Metrics().Width(s.col))
		text := cutCols(fitCell(cols[s.col].Name, w), s.from-s.x, s.to-s.x)
		return m.styles.Header.Render(text)
	})
}

func (m *Model) row(rv grid.RowView, width int) string {
	cols := m.grid.Columns()
	sel := m.grid.Selection()
	frozen := m.grid.Metrics().FrozenCount()

	return compose(width, m.spans(width), func(s span) string {
		col := cols[s.col]
		pos := grid.CellPosition{Row: rv.Index, Column: s.col}

		var value string
		if rv.Record != nil {
			value = grid.FormatValue(rv.Record.Value(col.Key))
		}
		w := int(m.grid.Metrics().Width(s.col))
		text := cutCols(fitCell(value, w), s.from-s.x, s.to-s.x)

		st := m.styles.Cell
		switch {
		case s.col < frozen:
			st = m.styles.Frozen
		case rv.Index%2 == 1:
			st = m.styles.AltRow
		}
		if col.Type.ReadOnly() {
			st = st.Inherit(m.styles.ReadOnly)
		}
		switch {
		case sel.Kind != grid.SelectionNone && sel.Focus == pos:
			st = m.styles.Focus
		case sel.Kind == grid.SelectionRange && sel.Contains(pos):
			st = m.styles.Range
		}
		return st.Render(text)
	})
}

// scrollbar returns one glyph per body line.
func (m *Model) scrollbar(body int) []string {
	out := make([]string, body)
	content := float32(m.grid.RowCount()) * m.grid.Config().RowHeight
	h := float32(body)
	if content <= h || body == 0 {
		for i := range out {
			out[i] = " "
		}
		return out
	}
	thumbH := max(1, h*h/content)
	frac := min(max(m.overlay.ScrollTop()/(content-h), 0), 1)
	thumbY := frac * (h - thumbH)
	first := int(thumbY)
	last := max(first+1, int(thumbY+thumbH))

	thumb := m.styles.Thumb
	if m.grid.ScrollSettled() {
		thumb = m.styles.Settled
	}
	for i := range out {
		if i >= first && i < last {
			out[i] = thumb.Render("┃")
		} else {
			out[i] = m.styles.Track.Render("│")
		}
	}
	return out
}

func (m *Model) statusLine() string {
	if m.editing != nil {
		m.editor.Width = max(1, m.width-runewidth.StringWidth(m.editor.Prompt)-1)
		return m.editor.View()
	}
	var parts []string
	sel := m.grid.Selection()
	switch sel.Kind {
	case grid.SelectionNone:
		parts = append(parts, "no selection")
	default:
		cols := m.grid.Columns()
		parts = append(parts, fmt.Sprintf("R%d C%d %s", sel.Focus.Row+1, sel.Focus.Column+1, cols[sel.Focus.Column].Name))
		if sel.Kind == grid.SelectionRange && !sel.IsSingleCell() {
			r := sel.Range()
			parts = append(parts, fmt.Sprintf("%d×%d", r.Rows(), r.Columns()))
		}
	}
	parts = append(parts, fmt.Sprintf("%d rows", m.grid.RowCount()))
	if m.grid.AutoScrolling() {
		parts = append(parts, "scrolling")
	}

	left := strings.Join(parts, "  ")
	if m.status != "" {
		left += "  " + m.status
	}
	var help []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	right := strings.Join(help, " · ")

	gap := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return m.styles.Status.Render(runewidth.Truncate(left, m.width, ""))
	}
	return m.styles.Status.Render(left) + strings.Repeat(" ", gap) + m.styles.Status.Render(right)
}
