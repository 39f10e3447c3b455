package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the status and hint styles of one theme. View rebuilds them
// on every frame so cycling themes restyles the panel.
type Styles struct {
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Recording lipgloss.Style
	Hint      lipgloss.Style
}

func NewStyles(t Theme) Styles {
	status := lipgloss.NewStyle().Bold(true)
	return Styles{
		Running:   status.Foreground(t.Success),
		Paused:    status.Foreground(t.Warning),
		Recording: status.Foreground(t.Error).Blink(true),
		Hint:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
	}
}

// GradientText blends each rune of text from start to end in Lab space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, err := colorful.Hex(string(start))
	if err != nil {
		return text
	}
	to, err := colorful.Hex(string(end))
	if err != nil {
		return text
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(c).Bold(true).Render(string(r)))
	}
	return result.String()
}
