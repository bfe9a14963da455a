package tui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles of the terminal grid.
type Styles struct {
	Header    lipgloss.Style
	Cell      lipgloss.Style
	AltRow    lipgloss.Style
	Frozen    lipgloss.Style
	ReadOnly  lipgloss.Style
	Range     lipgloss.Style
	Focus     lipgloss.Style
	Track     lipgloss.Style
	Thumb     lipgloss.Style
	Settled   lipgloss.Style
	Status    lipgloss.Style
	StatusMsg lipgloss.Style
}

// DefaultStyles adapts to light and dark terminals.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Background(lipgloss.AdaptiveColor{Light: "252", Dark: "237"}),
		Cell:      lipgloss.NewStyle(),
		AltRow:    lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "255", Dark: "235"}),
		Frozen:    lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "254", Dark: "236"}),
		ReadOnly:  lipgloss.NewStyle().Faint(true),
		Range:     lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "153", Dark: "24"}),
		Focus:     lipgloss.NewStyle().Reverse(true).Bold(true),
		Track:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "238"}),
		Thumb:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"}),
		Settled:   lipgloss.NewStyle().Faint(true),
		Status:    lipgloss.NewStyle().Faint(true),
		StatusMsg: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}),
	}
}
