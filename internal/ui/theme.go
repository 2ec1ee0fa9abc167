package ui

import "github.com/charmbracelet/lipgloss"

// ThemeKey is the kv key the chosen theme persists under.
const ThemeKey = "todoTheme"

// Theme is a named set of styles. Two palettes exist, light and dark,
// toggled at runtime and persisted across sessions.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Stats    lipgloss.Style
	Bar      lipgloss.Style
	BarEmpty lipgloss.Style
	Cursor   lipgloss.Style
	Done     lipgloss.Style
	Overdue  lipgloss.Style
	DueSoon  lipgloss.Style
	Badge    lipgloss.Style
	Help     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
}

func Light() Theme {
	return Theme{
		Name:     "light",
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		Stats:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Bar:      lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		BarEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245")),
		Overdue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("124")),
		DueSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("61")),
		Help:     lipgloss.NewStyle().Faint(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("124")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
	}
}

func Dark() Theme {
	return Theme{
		Name:     "dark",
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Stats:    lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Bar:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		BarEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("243")),
		Overdue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		DueSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("140")),
		Help:     lipgloss.NewStyle().Faint(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	}
}

func themeByName(name string) Theme {
	if name == "dark" {
		return Dark()
	}
	return Light()
}
