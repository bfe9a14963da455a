package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/grid"
)

// KeyMap holds the terminal key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	ExtendUp    key.Binding
	ExtendDown  key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding
	Tab         key.Binding
	BackTab     key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	FirstRow    key.Binding
	LastRow     key.Binding
	Edit        key.Binding
	Deselect    key.Binding
	SelectAll   key.Binding
	Copy        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		ExtendUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("⇧↑", "extend up")),
		ExtendDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("⇧↓", "extend down")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("⇧←", "extend left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("⇧→", "extend right")),
		Tab:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		BackTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("⇧tab", "previous cell")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:        key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("home", "first column")),
		End:         key.NewBinding(key.WithKeys("end", "$"), key.WithHelp("end", "last column")),
		FirstRow:    key.NewBinding(key.WithKeys("ctrl+home", "g"), key.WithHelp("g", "first row")),
		LastRow:     key.NewBinding(key.WithKeys("ctrl+end", "G"), key.WithHelp("G", "last row")),
		Edit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Deselect:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		SelectAll:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Copy:        key.NewBinding(key.WithKeys("ctrl+c", "y"), key.WithHelp("y", "copy")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.ExtendDown, k.Edit, k.Copy, k.Quit}
}

// gridKey maps a key message to the grid key it stands for.
func (k KeyMap) gridKey(msg tea.KeyMsg) (grid.Key, grid.Modifiers, bool) {
	table := []struct {
		b    key.Binding
		key  grid.Key
		mods grid.Modifiers
	}{
		{k.Up, grid.KeyUp, 0},
		{k.Down, grid.KeyDown, 0},
		{k.Left, grid.KeyLeft, 0},
		{k.Right, grid.KeyRight, 0},
		{k.ExtendUp, grid.KeyUp, grid.ModShift},
		{k.ExtendDown, grid.KeyDown, grid.ModShift},
		{k.ExtendLeft, grid.KeyLeft, grid.ModShift},
		{k.ExtendRight, grid.KeyRight, grid.ModShift},
		{k.Tab, grid.KeyTab, 0},
		{k.BackTab, grid.KeyTab, grid.ModShift},
		{k.PageUp, grid.KeyPageUp, 0},
		{k.PageDown, grid.KeyPageDown, 0},
		{k.Home, grid.KeyHome, 0},
		{k.End, grid.KeyEnd, 0},
		{k.FirstRow, grid.KeyHome, grid.ModCtrl},
		{k.LastRow, grid.KeyEnd, grid.ModCtrl},
		{k.Edit, grid.KeyEnter, 0},
		{k.Deselect, grid.KeyEscape, 0},
		{k.SelectAll, grid.KeyA, grid.ModCtrl},
		{k.Copy, grid.KeyC, grid.ModCtrl},
	}
	for _, e := range table {
		if key.Matches(msg, e.b) {
			return e.key, e.mods, true
		}
	}
	return grid.KeyNone, 0, false
}
