package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// BannerStyle frames the welcome banner.
	BannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(BorderColor).
			Bold(true).
			Padding(0, 2)

	CommandStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	AgentStyle = lipgloss.NewStyle().
			Foreground(AgentColor).
			Bold(true)

	RoleStyle = lipgloss.NewStyle().
			Foreground(RoleColor)
)

// Indicators are rendered on use so they follow the active color profile.

func SuccessIndicator() string { return SuccessStyle.Render("✓") }
func ErrorIndicator() string   { return ErrorStyle.Render("✗") }
func WarningIndicator() string { return WarningStyle.Render("!") }
func InfoIndicator() string    { return InfoStyle.Render("•") }

// Indent prefixes every line of s with level*2 spaces.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
