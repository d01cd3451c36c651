package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Header   lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Error    lipgloss.Style
	OK       lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#24292e")).
			Padding(0, 2),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			Width(60).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#d73a49")),
		OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("#28a745")),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#24292e")).
			Padding(0, 3),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("240")).
			Padding(0, 3),
	}
}
