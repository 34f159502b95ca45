package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	CrawlYellow = lipgloss.Color("#FFE81F")
	SpaceDark   = lipgloss.Color("#111827")
	SlateLight  = lipgloss.Color("#374151")
	DimGray     = lipgloss.Color("#6B7280")
	LightGray   = lipgloss.Color("#9CA3AF")
	White       = lipgloss.Color("#F9FAFB")
	Red         = lipgloss.Color("#EF4444")
	Blue        = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(CrawlYellow).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(CrawlYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Underline(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Width(24)
)

// Panel styles
var (
	PageStyle = lipgloss.NewStyle().
			Padding(1, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(SpaceDark).
			Background(CrawlYellow).
			Bold(true).
			Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Tab styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(SpaceDark).
			Background(CrawlYellow).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(CrawlYellow).
			Padding(1, 2).
			Background(SpaceDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(SpaceDark).
			Background(CrawlYellow).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

var SpinnerStyle = lipgloss.NewStyle().Foreground(CrawlYellow)

// Match highlight styles for jump results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(CrawlYellow).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(CrawlYellow).
					Background(SlateLight).
					Bold(true)
)

// Truncate shortens s to width runes, ending in "..." when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
