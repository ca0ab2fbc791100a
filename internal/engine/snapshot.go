// Package engine derives budgeting metrics from a profile, a transaction
// log and an explicit instant. It performs no I/O and keeps no state
// between calls.
package engine

import (
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// Compute builds the metrics snapshot for now. Inputs are not modified.
func Compute(p model.Profile, txs []model.Transaction, now time.Time) model.Snapshot {
	w := ResolveWindow(now)

	totals := MonthlyTotals(txs, w)
	history := MonthlyHistory(totals, p.MonthlyIncome)
	split := CurrentMonthSplit(txs, w)

	budget := CalculateBudget(p, split, w)
	ytd := YearToDateSavings(history, w.Month.Year)
	goals := CalculateGoals(p, ytd, budget.ProjectedMonthlySavings, w)

	return model.Snapshot{
		At:             now,
		Calendar:       w.Stats(),
		Budget:         budget,
		Goals:          goals,
		MonthlyHistory: history,
		Categories:     CategoryShares(txs, w, w.Month),
		Timeline:       Timeline(txs, w, TimelineDays),
	}
}
