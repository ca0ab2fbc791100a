package engine

import (
	"math"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// CalculateBudget derives safe spend, burn rate, runway and discipline from
// the profile and this month's spend.
func CalculateBudget(p model.Profile, split MonthSplit, w Window) model.BudgetStats {
	b := model.BudgetStats{
		TotalSpentThisMonth:    split.Total,
		VariableSpentThisMonth: split.Variable,
		FixedSpentThisMonth:    split.Fixed,
	}

	b.IdealMonthlySavings = p.MonthlyIncome * p.EffectiveSavingsRatio()
	b.MonthlyVariableBudget = p.MonthlyIncome - p.FixedCosts - b.IdealMonthlySavings
	b.RemainingVariableBudget = math.Max(0, b.MonthlyVariableBudget-split.Variable)

	if days := w.DaysRemainingInMonth(); days > 0 {
		b.DailySafeSpend = b.RemainingVariableBudget / float64(days)
	} else {
		b.DailySafeSpend = b.RemainingVariableBudget
	}

	day := w.DayOfMonth
	if day < 1 {
		day = 1
	}
	b.AvgDailyBurn = split.Total / float64(day)
	b.CurrentLiquidity = p.MonthlyIncome - split.Total

	if b.AvgDailyBurn > 0 {
		b.DaysOfRunway = int(math.Floor(b.CurrentLiquidity / b.AvgDailyBurn))
	} else {
		b.DaysOfRunway = model.UnboundedRunway
	}

	b.ProjectedMonthlySavings = p.MonthlyIncome - split.Total
	b.DisciplineScore = disciplineScore(b.ProjectedMonthlySavings, b.IdealMonthlySavings)
	return b
}

// disciplineScore is projected over ideal savings as a 0-100 percentage.
// With no ideal to measure against, any positive saving scores 100.
func disciplineScore(projected, ideal float64) float64 {
	if ideal == 0 {
		if projected > 0 {
			return 100
		}
		return 0
	}
	return clamp(projected/ideal*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
