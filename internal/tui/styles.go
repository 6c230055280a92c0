package tui

import "github.com/charmbracelet/lipgloss"

// Theme is a board color palette
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Surface   lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Success   lipgloss.Color
}

// DarkTheme is the default palette
var DarkTheme = Theme{
	Primary:   lipgloss.Color("#4ECDC4"),
	Secondary: lipgloss.Color("#6C757D"),
	Text:      lipgloss.Color("#FFFFFF"),
	Muted:     lipgloss.Color("#888888"),
	Border:    lipgloss.Color("#333333"),
	Surface:   lipgloss.Color("#16213e"),
	Danger:    lipgloss.Color("#FF6B6B"),
	Warning:   lipgloss.Color("#FFE66D"),
	Success:   lipgloss.Color("#95E1A3"),
}

// LightTheme is the light palette
var LightTheme = Theme{
	Primary:   lipgloss.Color("#00897B"),
	Secondary: lipgloss.Color("#546E7A"),
	Text:      lipgloss.Color("#212121"),
	Muted:     lipgloss.Color("#757575"),
	Border:    lipgloss.Color("#BDBDBD"),
	Surface:   lipgloss.Color("#ECEFF1"),
	Danger:    lipgloss.Color("#C62828"),
	Warning:   lipgloss.Color("#F9A825"),
	Success:   lipgloss.Color("#2E7D32"),
}

type styles struct {
	header       lipgloss.Style
	tab          lipgloss.Style
	tabActive    lipgloss.Style
	column       lipgloss.Style
	columnTitle  lipgloss.Style
	card         lipgloss.Style
	cardSelected lipgloss.Style
	muted        lipgloss.Style
	danger       lipgloss.Style
	warning      lipgloss.Style
	success      lipgloss.Style
	status       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		tab:    lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		tabActive: lipgloss.NewStyle().Bold(true).Foreground(t.Text).
			Background(t.Surface).Padding(0, 1),
		column: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		columnTitle:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		card:         lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1),
		cardSelected: lipgloss.NewStyle().Bold(true).Foreground(t.Text).Background(t.Surface).Padding(0, 1),
		muted:        lipgloss.NewStyle().Foreground(t.Muted),
		danger:       lipgloss.NewStyle().Foreground(t.Danger),
		warning:      lipgloss.NewStyle().Foreground(t.Warning),
		success:      lipgloss.NewStyle().Foreground(t.Success),
		status:       lipgloss.NewStyle().Foreground(t.Secondary).Padding(0, 1),
	}
}

// priorityStyle picks a color for a task priority
func (s styles) priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "critical":
		return s.danger
	case "high":
		return s.warning
	case "medium":
		return s.success
	default:
		return s.muted
	}
}
