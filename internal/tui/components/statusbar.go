package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar. left is typically the key
// hints, right a clock or status message.
func RenderStatusBar(width int, left, right string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.SurfaceHover).
		Width(width)

	if left == "" {
		left = " [?]help  [t]heme  [r]eload  [q]uit"
	}
	if right != "" {
		right += " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
