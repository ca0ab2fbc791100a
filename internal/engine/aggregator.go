package engine

import (
	"sort"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// MonthSplit is the current month's spend divided by fixed-ness.
type MonthSplit struct {
	Total    float64
	Variable float64
	Fixed    float64
	Count    int
}

// MonthlyTotals sums every transaction into its calendar month bucket,
// regardless of whether it is fixed.
func MonthlyTotals(txs []model.Transaction, w Window) map[MonthKey]float64 {
	totals := make(map[MonthKey]float64)
	for _, tx := range txs {
		totals[w.KeyOf(tx.Timestamp)] += tx.Amount
	}
	return totals
}

// MonthlyHistory turns monthly totals into summaries, newest month first.
func MonthlyHistory(totals map[MonthKey]float64, income float64) []model.MonthlySummary {
	keys := make([]MonthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[j].Before(keys[i])
	})

	history := make([]model.MonthlySummary, 0, len(keys))
	for _, k := range keys {
		spent := totals[k]
		history = append(history, model.MonthlySummary{
			Label:           k.Label(),
			Year:            k.Year,
			Month:           k.Month,
			TotalSpent:      spent,
			SavingsAchieved: income - spent,
		})
	}
	return history
}

// CurrentMonthSplit totals this month's spend, separating fixed bills from
// discretionary spend.
func CurrentMonthSplit(txs []model.Transaction, w Window) MonthSplit {
	var split MonthSplit
	for _, tx := range txs {
		if !w.InCurrentMonth(tx.Timestamp) {
			continue
		}
		split.Count++
		split.Total += tx.Amount
		if tx.IsFixed {
			split.Fixed += tx.Amount
		} else {
			split.Variable += tx.Amount
		}
	}
	return split
}

// CategoryShares groups the given month's transactions by category, sorted
// by amount descending. Categories without spend in the month are omitted.
func CategoryShares(txs []model.Transaction, w Window, month MonthKey) []model.CategoryShare {
	byCat := make(map[model.Category]*model.CategoryShare)
	var total float64
	for _, tx := range txs {
		if w.KeyOf(tx.Timestamp) != month {
			continue
		}
		cs, ok := byCat[tx.Category]
		if !ok {
			cs = &model.CategoryShare{Category: tx.Category}
			byCat[tx.Category] = cs
		}
		cs.Amount += tx.Amount
		cs.Count++
		total += tx.Amount
	}

	shares := make([]model.CategoryShare, 0, len(byCat))
	for _, cs := range byCat {
		if total > 0 {
			cs.Percent = cs.Amount / total * 100
		}
		shares = append(shares, *cs)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		if shares[i].Category.Name() != shares[j].Category.Name() {
			return shares[i].Category.Name() < shares[j].Category.Name()
		}
		return !shares[i].Category.IsFixedBill() && shares[j].Category.IsFixedBill()
	})
	return shares
}

// Timeline sums spend per local day for the last n days, oldest first.
func Timeline(txs []model.Transaction, w Window, n int) []model.DaySpend {
	days := w.LastDays(n)
	idx := make(map[string]int, len(days))
	for i, d := range days {
		idx[d.Key] = i
	}
	for _, tx := range txs {
		if i, ok := idx[w.DayKey(tx.Timestamp)]; ok {
			days[i].Amount += tx.Amount
		}
	}
	return days
}
