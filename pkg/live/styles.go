package live

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles the model renders with.
type Styles struct {
	Title   lipgloss.Style
	Box     lipgloss.Style
	Focused lipgloss.Style
	Label   lipgloss.Style
	Summary lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles builds the default styles around an accent colour such as
// "#2563eb". An empty accent falls back to blue.
func NewStyles(accent string) Styles {
	if accent == "" {
		accent = "#2563eb"
	}
	color := lipgloss.Color(accent)
	muted := lipgloss.Color("#6b7280")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1).
		Width(30)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(color).
			Bold(true).
			MarginBottom(1),
		Box:     box,
		Focused: box.BorderForeground(color),
		Label: lipgloss.NewStyle().
			Foreground(muted),
		Summary: lipgloss.NewStyle().
			Bold(true).
			MarginTop(1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b91c1c")),
		Help: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
	}
}
