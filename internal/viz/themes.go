package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the live view.
type Theme struct {
	Name    string
	Primary lipgloss.Color // header, rope
	Accent  lipgloss.Color // energy graph
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Calm    lipgloss.Color // running, slack springs
	Warning lipgloss.Color // paused
	Hot     lipgloss.Color // dragging, stretched springs
}

var (
	ThemeNeon = Theme{
		Name:    "neon",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#00ff87"),
		Text:    lipgloss.Color("#e0e0e0"),
		Muted:   lipgloss.Color("#666688"),
		Calm:    lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Hot:     lipgloss.Color("#ff5f87"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Calm:    lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Hot:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Calm:    lipgloss.Color("#cccccc"),
		Warning: lipgloss.Color("#ffaa00"),
		Hot:     lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeNeon, ThemeRetro, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
