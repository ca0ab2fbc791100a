package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/components"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	shares := a.snap.Categories
	inner := components.CardInnerWidth(cw)
	title := "Where It Went · " + a.snap.At.Format("January 2006")

	if len(shares) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("Nothing spent this month yet.")
		return components.ContentCard(title, empty, cw)
	}

	nameW := 10
	for _, s := range shares {
		nameW = max(nameW, lipgloss.Width(s.Category.Name()))
	}
	nameW = min(nameW, inner/3)
	const amountW, pctW = 12, 5
	barW := max(inner-nameW-amountW-pctW-3, 5)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	peak := shares[0].Amount
	var b strings.Builder
	for i, s := range shares {
		color := t.Accent
		if s.Category.IsFixedBill() {
			color = t.Fixed
		}
		name := truncStr(s.Category.Name(), nameW)
		b.WriteString(nameStyle.Render(name + strings.Repeat(" ", nameW-lipgloss.Width(name))))
		b.WriteString(space)
		b.WriteString(components.HorizontalBar(s.Amount, peak, color, barW))
		b.WriteString(space)
		b.WriteString(numStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatMoney(s.Amount))))
		b.WriteString(space)
		b.WriteString(numStyle.Render(fmt.Sprintf("%*s", pctW, cli.FormatPercent(s.Percent))))
		if i < len(shares)-1 {
			b.WriteString("\n")
		}
	}

	legend := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Render(" ■ spend  ") +
		lipgloss.NewStyle().Foreground(t.Fixed).Background(t.Background).Render("■ fixed bill")

	return lipgloss.JoinVertical(lipgloss.Left, components.ContentCard(title, b.String(), cw), legend)
}
