package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/insight"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/components"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	b := a.snap.Budget
	cal := a.snap.Calendar

	safeColor := t.Safe
	switch insight.BudgetLevel(b.BudgetUsedPercent()) {
	case insight.LevelWarn:
		safeColor = t.Warn
	case insight.LevelCritical:
		safeColor = t.Danger
	}

	metrics := []components.Metric{
		{
			Label: "Safe to spend today",
			Value: cli.FormatMoney(b.DailySafeSpend),
			Hint:  cli.FormatDays(cal.DaysRemainingInMonth) + " left this month",
			Color: safeColor,
		},
		{
			Label: "Variable budget left",
			Value: cli.FormatMoney(b.RemainingVariableBudget),
			Hint:  "of " + cli.FormatMoney(b.MonthlyVariableBudget),
		},
		{
			Label: "Runway",
			Value: cli.FormatRunway(b.DaysOfRunway),
			Hint:  "at " + cli.FormatMoney(b.AvgDailyBurn) + "/day",
		},
		{
			Label: "Discipline",
			Value: cli.FormatPercent(b.DisciplineScore),
			Hint:  "projected " + cli.FormatMoney(b.ProjectedMonthlySavings),
			Color: components.ProgressColor(b.DisciplineScore / 100),
		},
	}

	var rows []string
	if a.isCompactLayout() {
		rows = append(rows,
			components.MetricCardRow(metrics[:2], cw),
			components.MetricCardRow(metrics[2:], cw))
	} else {
		rows = append(rows, components.MetricCardRow(metrics, cw))
	}

	// Budget usage
	inner := components.CardInnerWidth(cw)
	used := b.BudgetUsedPercent()
	var budget strings.Builder
	budget.WriteString(components.ProgressBar("Budget used", used, components.UsageColor(used/100), 12, inner-18))
	budget.WriteString("\n")
	budget.WriteString(a.kvLine("Spent this month", cli.FormatMoney(b.TotalSpentThisMonth), inner))
	budget.WriteString("\n")
	budget.WriteString(a.kvLine("  variable", cli.FormatMoney(b.VariableSpentThisMonth), inner))
	budget.WriteString("\n")
	budget.WriteString(a.kvLine("  fixed bills", cli.FormatMoney(b.FixedSpentThisMonth), inner))
	budget.WriteString("\n")
	budget.WriteString(a.kvLine("Liquidity", cli.FormatMoney(b.CurrentLiquidity), inner))
	rows = append(rows, components.ContentCard("This Month", budget.String(), cw))

	// Timeline + countdown
	values := make([]float64, len(a.snap.Timeline))
	labels := make([]string, len(a.snap.Timeline))
	for i, d := range a.snap.Timeline {
		values[i] = d.Amount
		labels[i] = d.Label
	}
	if a.isCompactLayout() {
		rows = append(rows,
			components.ContentCard("Last 7 Days", components.ColumnChart(values, labels, t.Accent, inner, 6), cw),
			components.ContentCard("Year Countdown", a.renderCountdown(inner), cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		chartW := components.CardInnerWidth(widths[0])
		rows = append(rows, components.CardRow([]string{
			components.ContentCard("Last 7 Days", components.ColumnChart(values, labels, t.Accent, chartW, 6), widths[0]),
			components.ContentCard("Year Countdown", a.renderCountdown(components.CardInnerWidth(widths[1])), widths[1]),
		}))
	}

	headline := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background).Italic(true).
		Render(" " + insight.Headline(a.snap))
	rows = append(rows, headline)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a App) renderCountdown(width int) string {
	t := theme.Active
	cal := a.snap.Calendar
	big := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).
		Render(cli.FormatCountdown(cal.SecondsUntilYearEnd))
	sub := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("until " + a.snap.At.Format("2006") + " closes")
	bar := components.ProgressBar("", cal.YearProgressPercent, t.Info, 0, width-6)
	return big + "\n" + sub + "\n\n" + bar
}

// kvLine renders a label on the left and a value flush right.
func (a App) kvLine(label, value string, width int) string {
	t := theme.Active
	l := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(label)
	v := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Render(value)
	gap := max(width-lipgloss.Width(l)-lipgloss.Width(v), 1)
	return l + lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap)) + v
}
