package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the set of lipgloss styles for one theme.
type styles struct {
	canvas  lipgloss.Style
	rope    lipgloss.Style
	stats   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	drag    lipgloss.Style
	calm    lipgloss.Style
	hot     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(canvasPadY, canvasPadX),
		rope:   lipgloss.NewStyle().Foreground(t.Primary),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(statsWidth),
		header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Calm),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		drag:    lipgloss.NewStyle().Bold(true).Foreground(t.Hot),
		calm:    lipgloss.NewStyle().Foreground(t.Calm),
		hot:     lipgloss.NewStyle().Foreground(t.Hot),
	}
}

// StrainProfile renders per-spring strain along the chain as a sparkline.
// Compressed and slack springs sit on the baseline; strain at or above full
// fills the cell.
func (s styles) StrainProfile(strains []float64, width int, full float64) string {
	if len(strains) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	step := len(strains) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(strains); i++ {
		norm := strains[i*step] / full
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}
		c := string(chars[int(norm*float64(len(chars)-1))])
		if norm > 0.6 {
			b.WriteString(s.hot.Render(c))
		} else {
			b.WriteString(s.calm.Render(c))
		}
	}
	return b.String()
}
