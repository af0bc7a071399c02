package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Site accent presets offered in the site form.
var accentColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

// Colors handed to new tags in order.
var tagColors = []string{"#FF6F61", "#6B5B95", "#88B04B", "#F7CAC9", "#92A8D1", "#955251", "#B565A7", "#009B77"}

// Styles
var (
	// Tabs
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// Draft banner
	bannerStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorWarning).
			Padding(0, 1)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

// accent returns the site accent color, or the default when unset.
func accent(color string) lipgloss.Color {
	if color == "" {
		return colorPrimary
	}
	return lipgloss.Color(color)
}

func activeTabStyle(color string) lipgloss.Style {
	c := accent(color)
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(c).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(c).
		Padding(0, 2)
}

func activePanelStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent(color)).
		Padding(1, 2)
}

func selectedItemStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accent(color)).Bold(true)
}

func dot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
