package tui

import "github.com/charmbracelet/lipgloss"

// Lipgloss styles (emerald theme to match the plant domain)
var (
	// Header style - bright green background, bold black text
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Bold(true).
			Padding(0, 1)

	// Tab bar styles
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("29")).
			Bold(true).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 1)

	// Section title style - bold green
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			MarginTop(1)

	// Label style - dim green
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35"))

	// Value style - bright white
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	// Dim style - for units and secondary info
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// Status styles
	healthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// Container style - rounded border
	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("29")).
			Padding(1, 2)

	// Overlay box for the blocking submit state
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(1, 3)

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// Sparkline containers for the good/bad growth series
	goodSparkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	badSparkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// footerKeys renders a "[k] label" footer line.
func footerKeys(pairs ...string) string {
	out := ""
	for i := 0; i+1 < len(pairs); i += 2 {
		out += footerKeyStyle.Render("["+pairs[i]+"]") + footerStyle.Render(" "+pairs[i+1]+"  ")
	}
	return out
}
