package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/engine"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/insight"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/components"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

// historyRows is how many months the Path tab lists.
const historyRows = 6

func (a App) renderPathTab(cw int) string {
	t := theme.Active
	g := a.snap.Goals
	p := a.ledger.Profile
	inner := components.CardInnerWidth(cw)

	var goals strings.Builder
	goals.WriteString(components.ProgressBar("Yearly goal", g.YearlyGoalProgress,
		components.ProgressColor(g.YearlyGoalProgress/100), 14, inner-20))
	goals.WriteString("\n")
	goals.WriteString(components.ProgressBar("This month", g.MonthlyContributionProgress,
		components.ProgressColor(g.MonthlyContributionProgress/100), 14, inner-20))
	goals.WriteString("\n\n")
	goals.WriteString(a.kvLine("Saved this year", cli.FormatMoney(g.YearToDateSavings), inner))
	goals.WriteString("\n")
	goals.WriteString(a.kvLine("Yearly goal", cli.FormatMoney(p.YearlySavingsGoal), inner))
	goals.WriteString("\n")
	goals.WriteString(a.kvLine("Still to save", cli.FormatMoney(g.RemainingToYearlyGoal), inner))
	goals.WriteString("\n")
	goals.WriteString(a.kvLine("Needed per day", cli.FormatMoney(g.DailySavingsNeeded), inner))

	noteStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Italic(true)
	goals.WriteString("\n\n")
	goals.WriteString(noteStyle.Render(insight.GoalMilestone(g.YearlyGoalProgress)))
	goals.WriteString("\n")
	goals.WriteString(noteStyle.Render(insight.Encouragement(a.snap, cli.Currency())))

	rows := []string{components.ContentCard("Path to Goal", goals.String(), cw)}

	// Monthly history, newest first
	var hist strings.Builder
	history := a.snap.MonthlyHistory
	if len(history) == 0 {
		hist.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No history yet."))
	}
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(history) > 1 {
		trend := make([]float64, 0, historyRows)
		for i := min(len(history), historyRows) - 1; i >= 0; i-- {
			trend = append(trend, history[i].TotalSpent)
		}
		hist.WriteString(numStyle.Render("spend trend ") + components.Sparkline(trend, t.Accent))
		hist.WriteString("\n")
	}
	for i, m := range history[:min(len(history), historyRows)] {
		saved := lipgloss.NewStyle().Foreground(t.Safe).Background(t.Surface)
		if m.SavingsAchieved < 0 {
			saved = saved.Foreground(t.Danger)
		}
		hist.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", m.Label)))
		hist.WriteString(numStyle.Render(fmt.Sprintf("%14s", "spent "+cli.FormatMoney(m.TotalSpent))))
		hist.WriteString(saved.Render(fmt.Sprintf("%16s", "saved "+cli.FormatMoney(m.SavingsAchieved))))
		if i < min(len(history), historyRows)-1 {
			hist.WriteString("\n")
		}
	}

	// What this month's variable spend would grow to if invested instead.
	cost := engine.OpportunityCost(a.snap.Budget.VariableSpentThisMonth)
	var opp strings.Builder
	opp.WriteString(lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true).
		Render(cli.FormatMoney(float64(cost))))
	opp.WriteString("\n")
	opp.WriteString(numStyle.Render(fmt.Sprintf("this month's %s of variable spend,",
		cli.FormatMoney(a.snap.Budget.VariableSpentThisMonth))))
	opp.WriteString("\n")
	opp.WriteString(numStyle.Render(fmt.Sprintf("invested for %d years at %.0f%%",
		engine.OpportunityYears, engine.OpportunityRate*100)))

	if a.isCompactLayout() {
		rows = append(rows,
			components.ContentCard("Monthly History", hist.String(), cw),
			components.ContentCard("Opportunity Cost", opp.String(), cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		rows = append(rows, components.CardRow([]string{
			components.ContentCard("Monthly History", hist.String(), widths[0]),
			components.ContentCard("Opportunity Cost", opp.String(), widths[1]),
		}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
