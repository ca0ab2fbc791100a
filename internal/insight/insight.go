// Package insight turns a metrics snapshot into short advisory messages.
package insight

import (
	"fmt"
	"math"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// Level classifies how close a figure is to its limit.
type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelCritical:
		return "critical"
	default:
		return "ok"
	}
}

// BudgetLevel classifies a budget-used percentage.
func BudgetLevel(usedPct float64) Level {
	switch {
	case usedPct >= 100:
		return LevelCritical
	case usedPct >= 80:
		return LevelWarn
	default:
		return LevelOK
	}
}

// GoalMilestone describes how far along the yearly goal is.
func GoalMilestone(progress float64) string {
	switch {
	case progress >= 100:
		return "Yearly goal reached. Everything from here is extra."
	case progress >= 75:
		return "Final stretch: three quarters of the yearly goal is saved."
	case progress >= 50:
		return "Halfway there. Keep the momentum."
	case progress >= 25:
		return "A quarter of the way to the yearly goal."
	case progress > 0:
		return "The first savings are in. Build on them."
	default:
		return "No savings toward the yearly goal yet."
	}
}

// Pace describes the month's discipline score.
func Pace(discipline float64) string {
	switch {
	case discipline > 90:
		return "On pace: spending is well inside the savings plan."
	case discipline > 60:
		return "Slightly behind: trim discretionary spend to catch up."
	default:
		return "Off pace: this month's savings target is at risk."
	}
}

// Encouragement congratulates a met goal or a disciplined month, and
// otherwise suggests a small saving for today based on the daily amount
// still needed to reach the yearly goal.
func Encouragement(s model.Snapshot, currency string) string {
	if s.Goals.RemainingToYearlyGoal <= 0 {
		return "Nothing left to close on the yearly goal."
	}
	if s.Budget.DisciplineScore > 80 {
		return "Elite discipline this month. Keep the momentum."
	}
	nudge := math.Floor(s.Goals.DailySavingsNeeded * 0.05)
	if nudge < 1 {
		return fmt.Sprintf("Set aside a little today; %s%.0f a day closes the gap.", currency, math.Ceil(s.Goals.DailySavingsNeeded))
	}
	return fmt.Sprintf("Try saving an extra %s%.0f today to stay ahead of the yearly goal.", currency, nudge)
}

// Headline picks the single most pressing message for a status line.
func Headline(s model.Snapshot) string {
	b := s.Budget
	switch {
	case b.MonthlyVariableBudget <= 0:
		return "Fixed costs and savings leave no room for variable spend this month."
	case b.RemainingVariableBudget == 0:
		return "Variable budget used up for this month."
	case BudgetLevel(b.BudgetUsedPercent()) == LevelWarn:
		return "Over 80% of this month's variable budget is spent."
	default:
		return Pace(b.DisciplineScore)
	}
}
