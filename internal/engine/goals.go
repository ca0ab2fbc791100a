package engine

import (
	"math"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// YearToDateSavings sums savings achieved across the history buckets that
// fall in year.
func YearToDateSavings(history []model.MonthlySummary, year int) float64 {
	var total float64
	for _, m := range history {
		if m.Year == year {
			total += m.SavingsAchieved
		}
	}
	return total
}

// CalculateGoals derives yearly and monthly goal progress.
func CalculateGoals(p model.Profile, ytd, projectedMonthlySavings float64, w Window) model.GoalStats {
	g := model.GoalStats{YearToDateSavings: ytd}

	if p.YearlySavingsGoal > 0 {
		g.YearlyGoalProgress = clamp(ytd/p.YearlySavingsGoal*100, 0, 100)
		g.RemainingToYearlyGoal = math.Max(0, p.YearlySavingsGoal-ytd)
	}
	if p.TargetMonthlyContribution > 0 {
		g.MonthlyContributionProgress = clamp(projectedMonthlySavings/p.TargetMonthlyContribution*100, 0, 100)
	}

	days := w.DaysRemainingInYear()
	if days < 1 {
		days = 1
	}
	g.DailySavingsNeeded = g.RemainingToYearlyGoal / float64(days)
	return g
}
