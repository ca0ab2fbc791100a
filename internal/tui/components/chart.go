package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// ColumnChart renders one vertical bar per value, left to right, with the
// label under each column. The tallest value fills height rows.
func ColumnChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	height = max(height, 2)

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	n := len(values)
	colW := max(width/n, 3)
	barW := max(colW-2, 1)

	bg := lipgloss.NewStyle().Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		for _, v := range values {
			scaled := v / peak * float64(height)
			var cell string
			switch {
			case scaled >= float64(row):
				cell = strings.Repeat("█", barW)
			case scaled > float64(row-1):
				idx := int((scaled - float64(row-1)) * 8)
				idx = min(max(idx, 1), 8)
				cell = strings.Repeat(string(eighths[idx]), barW)
			default:
				cell = strings.Repeat(" ", barW)
			}
			b.WriteString(bg.Render(" "))
			b.WriteString(barStyle.Render(cell))
			b.WriteString(bg.Render(strings.Repeat(" ", colW-barW-1)))
		}
		b.WriteString("\n")
	}
	b.WriteString(axisStyle.Render(strings.Repeat("─", colW*n)))

	if len(labels) == n {
		b.WriteString("\n")
		for _, lbl := range labels {
			b.WriteString(axisStyle.Render(fitLabel(lbl, colW)))
		}
	}
	return b.String()
}

// HorizontalBar renders a single bar proportional to value/peak.
func HorizontalBar(value, peak float64, color lipgloss.Color, width int) string {
	t := theme.Active
	width = max(width, 1)
	filled := 0
	if peak > 0 && value > 0 {
		filled = int(math.Round(value / peak * float64(width)))
		filled = min(max(filled, 1), width)
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(strings.Repeat("░", width-filled))
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}
	var buf strings.Builder
	for _, v := range values {
		idx := min(max(int(v/peak*7)+1, 1), 8)
		buf.WriteRune(eighths[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

func fitLabel(s string, w int) string {
	r := []rune(s)
	if len(r) > w-1 {
		r = r[:max(w-1, 1)]
	}
	return " " + string(r) + strings.Repeat(" ", max(w-1-len(r), 0))
}
