package model

// UnboundedRunway is reported as days of runway when nothing has been spent.
const UnboundedRunway = 999

// BudgetStats holds the current month's budget and discipline figures.
// Values are kept at full precision; rounding happens when rendered.
type BudgetStats struct {
	IdealMonthlySavings     float64 `json:"ideal_monthly_savings"`
	MonthlyVariableBudget   float64 `json:"monthly_variable_budget"`
	TotalSpentThisMonth     float64 `json:"total_spent_this_month"`
	VariableSpentThisMonth  float64 `json:"variable_spent_this_month"`
	FixedSpentThisMonth     float64 `json:"fixed_spent_this_month"`
	RemainingVariableBudget float64 `json:"remaining_variable_budget"`
	DailySafeSpend          float64 `json:"daily_safe_spend"`
	AvgDailyBurn            float64 `json:"avg_daily_burn"`
	CurrentLiquidity        float64 `json:"current_liquidity"`
	DaysOfRunway            int     `json:"days_of_runway"`
	ProjectedMonthlySavings float64 `json:"projected_monthly_savings"`
	DisciplineScore         float64 `json:"discipline_score"` // 0-100
}

// BudgetUsedPercent is the share of the variable budget already spent.
func (b BudgetStats) BudgetUsedPercent() float64 {
	if b.MonthlyVariableBudget <= 0 {
		if b.VariableSpentThisMonth > 0 {
			return 100
		}
		return 0
	}
	return b.VariableSpentThisMonth / b.MonthlyVariableBudget * 100
}

// GoalStats holds progress toward the yearly and monthly savings targets.
type GoalStats struct {
	YearToDateSavings           float64 `json:"year_to_date_savings"`
	YearlyGoalProgress          float64 `json:"yearly_goal_progress"` // 0-100
	RemainingToYearlyGoal       float64 `json:"remaining_to_yearly_goal"`
	MonthlyContributionProgress float64 `json:"monthly_contribution_progress"` // 0-100
	DailySavingsNeeded          float64 `json:"daily_savings_needed"`
}
