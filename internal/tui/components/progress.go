package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

// UsageColor colors a consumption ratio: safe below 0.8, warn below 1, danger above.
func UsageColor(ratio float64) lipgloss.Color {
	t := theme.Active
	switch {
	case ratio >= 1:
		return t.Danger
	case ratio >= 0.8:
		return t.Warn
	default:
		return t.Safe
	}
}

// ProgressColor colors an achievement ratio where higher is better.
func ProgressColor(ratio float64) lipgloss.Color {
	t := theme.Active
	switch {
	case ratio >= 0.9:
		return t.Safe
	case ratio >= 0.6:
		return t.Warn
	default:
		return t.Danger
	}
}

// ProgressBar renders a labeled bar for pct (0-100) using color.
func ProgressBar(label string, pct float64, color lipgloss.Color, labelW, barWidth int) string {
	t := theme.Active
	ratio := min(max(pct/100, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	out := bar.ViewAs(ratio) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct))
	if label != "" {
		out = labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + spaceStyle.Render(" ") + out
	}
	return out
}
