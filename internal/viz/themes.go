package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view. Primary and Secondary drive the title gradient
// and the energy chart, Muted the untinted braille cells and hints, and the
// last three the run status.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

func newTheme(name, primary, secondary, muted, success, warning, failure string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.Color(primary),
		Secondary: lipgloss.Color(secondary),
		Muted:     lipgloss.Color(muted),
		Success:   lipgloss.Color(success),
		Warning:   lipgloss.Color(warning),
		Error:     lipgloss.Color(failure),
	}
}

var (
	ThemeCyberpunk = newTheme("cyberpunk", "#ff00ff", "#00ffff", "#666666", "#00ff00", "#ff8800", "#ff0000")
	ThemePhosphor  = newTheme("phosphor", "#33ff66", "#1fae48", "#1d5c2c", "#a6ffbf", "#e8ff5a", "#ff5a3c")
	ThemeOcean     = newTheme("ocean", "#0077be", "#00a8cc", "#4488aa", "#00ff88", "#ffcc00", "#ff4444")
	ThemeEmber     = newTheme("ember", "#ff6b35", "#f7c59f", "#7a4e3a", "#9bd770", "#ffd166", "#ef233c")
	ThemeMono      = newTheme("mono", "#ffffff", "#bbbbbb", "#777777", "#dddddd", "#aaaaaa", "#ff3333")

	CurrentTheme = ThemeCyberpunk

	// Themes is the order the t key cycles through.
	Themes = []Theme{ThemeCyberpunk, ThemePhosphor, ThemeOcean, ThemeEmber, ThemeMono}
)

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
