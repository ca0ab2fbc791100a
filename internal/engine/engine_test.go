package engine

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func spend(t *testing.T, amount float64, cat model.Category, fixed bool, at string) model.Transaction {
	t.Helper()
	return model.NewTransaction(amount, cat, fixed, mustTime(t, at), "")
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func baseProfile() model.Profile {
	return model.Profile{
		MonthlyIncome: 60000,
		FixedCosts:    20000,
		SavingsRatio:  0.25,
	}
}

func TestCompute_NoTransactions(t *testing.T) {
	snap := Compute(baseProfile(), nil, mustTime(t, "2025-06-15 10:00"))
	b := snap.Budget

	if b.IdealMonthlySavings != 15000 {
		t.Errorf("IdealMonthlySavings = %.2f, want 15000", b.IdealMonthlySavings)
	}
	if b.MonthlyVariableBudget != 25000 {
		t.Errorf("MonthlyVariableBudget = %.2f, want 25000", b.MonthlyVariableBudget)
	}
	if b.RemainingVariableBudget != 25000 {
		t.Errorf("RemainingVariableBudget = %.2f, want 25000", b.RemainingVariableBudget)
	}
	if b.DailySafeSpend != 1562.5 {
		t.Errorf("DailySafeSpend = %.4f, want 1562.5", b.DailySafeSpend)
	}
	if b.AvgDailyBurn != 0 {
		t.Errorf("AvgDailyBurn = %.2f, want 0", b.AvgDailyBurn)
	}
	if b.DaysOfRunway != model.UnboundedRunway {
		t.Errorf("DaysOfRunway = %d, want %d", b.DaysOfRunway, model.UnboundedRunway)
	}
	if b.DisciplineScore != 100 {
		t.Errorf("DisciplineScore = %.2f, want 100", b.DisciplineScore)
	}
	if len(snap.MonthlyHistory) != 0 {
		t.Errorf("MonthlyHistory has %d entries, want 0", len(snap.MonthlyHistory))
	}
	if len(snap.Categories) != 0 {
		t.Errorf("Categories has %d entries, want 0", len(snap.Categories))
	}
}

func TestCompute_VariableSpendReducesSafeSpend(t *testing.T) {
	txs := []model.Transaction{spend(t, 5000, model.Food, false, "2025-06-03 12:00")}
	snap := Compute(baseProfile(), txs, mustTime(t, "2025-06-15 10:00"))
	b := snap.Budget

	if b.RemainingVariableBudget != 20000 {
		t.Errorf("RemainingVariableBudget = %.2f, want 20000", b.RemainingVariableBudget)
	}
	if b.DailySafeSpend != 1250 {
		t.Errorf("DailySafeSpend = %.2f, want 1250", b.DailySafeSpend)
	}
	if b.ProjectedMonthlySavings != 55000 {
		t.Errorf("ProjectedMonthlySavings = %.2f, want 55000", b.ProjectedMonthlySavings)
	}
}

func TestCompute_Runway(t *testing.T) {
	txs := []model.Transaction{spend(t, 4000, model.Transport, false, "2025-06-04 12:00")}
	b := Compute(baseProfile(), txs, mustTime(t, "2025-06-10 10:00")).Budget

	if b.AvgDailyBurn != 400 {
		t.Errorf("AvgDailyBurn = %.2f, want 400", b.AvgDailyBurn)
	}
	if b.CurrentLiquidity != 56000 {
		t.Errorf("CurrentLiquidity = %.2f, want 56000", b.CurrentLiquidity)
	}
	if b.DaysOfRunway != 140 {
		t.Errorf("DaysOfRunway = %d, want 140", b.DaysOfRunway)
	}
}

func TestCompute_FixedBillsExcludedFromSafeSpend(t *testing.T) {
	txs := []model.Transaction{
		spend(t, 12000, model.FixedBill("Room Rent"), true, "2025-06-01 09:00"),
		spend(t, 4000, model.Shopping, false, "2025-06-10 18:30"),
	}
	b := Compute(baseProfile(), txs, mustTime(t, "2025-06-15 10:00")).Budget

	if b.TotalSpentThisMonth != 16000 {
		t.Errorf("TotalSpentThisMonth = %.2f, want 16000", b.TotalSpentThisMonth)
	}
	if b.VariableSpentThisMonth != 4000 || b.FixedSpentThisMonth != 12000 {
		t.Errorf("split = %.2f variable / %.2f fixed, want 4000 / 12000",
			b.VariableSpentThisMonth, b.FixedSpentThisMonth)
	}
	if b.RemainingVariableBudget != 21000 {
		t.Errorf("RemainingVariableBudget = %.2f, want 21000", b.RemainingVariableBudget)
	}
	if b.CurrentLiquidity != 44000 {
		t.Errorf("CurrentLiquidity = %.2f, want 44000", b.CurrentLiquidity)
	}
}

func TestCompute_OverspendClampsRemainingBudget(t *testing.T) {
	txs := []model.Transaction{spend(t, 30000, model.Entertainment, false, "2025-06-02 20:00")}
	b := Compute(baseProfile(), txs, mustTime(t, "2025-06-15 10:00")).Budget
	if b.RemainingVariableBudget != 0 {
		t.Errorf("RemainingVariableBudget = %.2f, want 0", b.RemainingVariableBudget)
	}
	if b.DailySafeSpend != 0 {
		t.Errorf("DailySafeSpend = %.2f, want 0", b.DailySafeSpend)
	}
}

func TestCompute_NegativeVariableBudget(t *testing.T) {
	p := model.Profile{MonthlyIncome: 10000, FixedCosts: 9000, SavingsRatio: 0.5}
	b := Compute(p, nil, mustTime(t, "2025-06-15 10:00")).Budget
	if b.MonthlyVariableBudget != -4000 {
		t.Errorf("MonthlyVariableBudget = %.2f, want -4000", b.MonthlyVariableBudget)
	}
	if b.RemainingVariableBudget != 0 {
		t.Errorf("RemainingVariableBudget = %.2f, want 0", b.RemainingVariableBudget)
	}
}

func TestCompute_DefaultSavingsRatio(t *testing.T) {
	p := model.Profile{MonthlyIncome: 50000}
	b := Compute(p, nil, mustTime(t, "2025-06-15 10:00")).Budget
	if b.IdealMonthlySavings != 10000 {
		t.Errorf("IdealMonthlySavings = %.2f, want 10000 (20%% fallback)", b.IdealMonthlySavings)
	}
}

func TestCompute_DisciplineScore(t *testing.T) {
	now := mustTime(t, "2025-06-15 10:00")
	tests := []struct {
		name   string
		income float64
		spent  float64
		want   float64
	}{
		{"ahead of target", 60000, 10000, 100},
		{"half of target", 60000, 52500, 50},
		{"overspent", 60000, 70000, 0},
		{"no income, no spend", 0, 0, 0},
		{"no income, spend", 0, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.Profile{MonthlyIncome: tt.income, SavingsRatio: 0.25}
			var txs []model.Transaction
			if tt.spent > 0 {
				txs = append(txs, spend(t, tt.spent, model.OtherSpend, false, "2025-06-05 10:00"))
			}
			got := Compute(p, txs, now).Budget.DisciplineScore
			if got != tt.want {
				t.Errorf("DisciplineScore = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestDisciplineScore_ZeroIdeal(t *testing.T) {
	if got := disciplineScore(500, 0); got != 100 {
		t.Errorf("disciplineScore(500, 0) = %.2f, want 100", got)
	}
	if got := disciplineScore(0, 0); got != 0 {
		t.Errorf("disciplineScore(0, 0) = %.2f, want 0", got)
	}
	if got := disciplineScore(-10, 0); got != 0 {
		t.Errorf("disciplineScore(-10, 0) = %.2f, want 0", got)
	}
}

func TestCompute_ZeroYearlyGoal(t *testing.T) {
	p := baseProfile()
	txs := []model.Transaction{spend(t, 1000, model.Food, false, "2025-03-02 10:00")}
	g := Compute(p, txs, mustTime(t, "2025-06-15 10:00")).Goals
	if g.YearlyGoalProgress != 0 {
		t.Errorf("YearlyGoalProgress = %.2f, want 0", g.YearlyGoalProgress)
	}
	if g.RemainingToYearlyGoal != 0 {
		t.Errorf("RemainingToYearlyGoal = %.2f, want 0", g.RemainingToYearlyGoal)
	}
}

func TestCompute_ZeroMonthlyTarget(t *testing.T) {
	p := baseProfile()
	p.TargetMonthlyContribution = 0
	g := Compute(p, nil, mustTime(t, "2025-06-15 10:00")).Goals
	if g.MonthlyContributionProgress != 0 {
		t.Errorf("MonthlyContributionProgress = %.2f, want 0", g.MonthlyContributionProgress)
	}
}

func TestCompute_GoalProgress(t *testing.T) {
	p := baseProfile()
	p.YearlySavingsGoal = 200000
	p.TargetMonthlyContribution = 100000
	txs := []model.Transaction{
		spend(t, 10000, model.Food, false, "2025-05-20 10:00"),
		spend(t, 20000, model.Transport, false, "2025-06-02 10:00"),
	}
	g := Compute(p, txs, mustTime(t, "2025-06-15 10:00")).Goals

	// May 50000 + June 40000
	if g.YearToDateSavings != 90000 {
		t.Errorf("YearToDateSavings = %.2f, want 90000", g.YearToDateSavings)
	}
	if !approx(g.YearlyGoalProgress, 45) {
		t.Errorf("YearlyGoalProgress = %.2f, want 45", g.YearlyGoalProgress)
	}
	if g.RemainingToYearlyGoal != 110000 {
		t.Errorf("RemainingToYearlyGoal = %.2f, want 110000", g.RemainingToYearlyGoal)
	}
	if !approx(g.MonthlyContributionProgress, 40) {
		t.Errorf("MonthlyContributionProgress = %.2f, want 40", g.MonthlyContributionProgress)
	}
	// 2025-06-15: 165 days elapsed, 200 remaining
	if want := 110000.0 / 200; g.DailySavingsNeeded != want {
		t.Errorf("DailySavingsNeeded = %.4f, want %.4f", g.DailySavingsNeeded, want)
	}
}

func TestCompute_GoalProgressCapped(t *testing.T) {
	p := baseProfile()
	p.YearlySavingsGoal = 1000
	p.TargetMonthlyContribution = 1000
	txs := []model.Transaction{spend(t, 10, model.Food, false, "2025-06-02 10:00")}
	g := Compute(p, txs, mustTime(t, "2025-06-15 10:00")).Goals
	if g.YearlyGoalProgress != 100 {
		t.Errorf("YearlyGoalProgress = %.2f, want 100", g.YearlyGoalProgress)
	}
	if g.MonthlyContributionProgress != 100 {
		t.Errorf("MonthlyContributionProgress = %.2f, want 100", g.MonthlyContributionProgress)
	}
	if g.RemainingToYearlyGoal != 0 {
		t.Errorf("RemainingToYearlyGoal = %.2f, want 0", g.RemainingToYearlyGoal)
	}
}

func TestCompute_HistoryAcrossYears(t *testing.T) {
	txs := []model.Transaction{
		spend(t, 1000, model.Food, false, "2024-12-10 10:00"),
		spend(t, 500, model.Food, false, "2024-12-28 10:00"),
		spend(t, 2000, model.Health, false, "2025-01-05 10:00"),
	}
	snap := Compute(baseProfile(), txs, mustTime(t, "2025-01-20 10:00"))

	if len(snap.MonthlyHistory) != 2 {
		t.Fatalf("MonthlyHistory has %d entries, want 2", len(snap.MonthlyHistory))
	}
	jan, dec := snap.MonthlyHistory[0], snap.MonthlyHistory[1]
	if jan.Year != 2025 || jan.Month != time.January || jan.Label != "Jan" || jan.TotalSpent != 2000 {
		t.Errorf("history[0] = %+v, want Jan 2025 with 2000 spent", jan)
	}
	if dec.Year != 2024 || dec.Month != time.December || dec.TotalSpent != 1500 {
		t.Errorf("history[1] = %+v, want Dec 2024 with 1500 spent", dec)
	}
	if dec.SavingsAchieved != 58500 {
		t.Errorf("Dec SavingsAchieved = %.2f, want 58500", dec.SavingsAchieved)
	}
	if snap.Goals.YearToDateSavings != 58000 {
		t.Errorf("YearToDateSavings = %.2f, want 58000 (current year only)", snap.Goals.YearToDateSavings)
	}
}

func TestCompute_HistorySortedAndUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := mustTime(t, "2022-01-01 00:00")
	var txs []model.Transaction
	for i := 0; i < 400; i++ {
		at := start.Add(time.Duration(rng.Intn(3*365*24)) * time.Hour)
		txs = append(txs, model.NewTransaction(float64(rng.Intn(5000)+1), model.Food, false, at, ""))
	}
	history := Compute(baseProfile(), txs, mustTime(t, "2024-12-31 23:00")).MonthlyHistory

	for i := 1; i < len(history); i++ {
		prev := MonthKey{Year: history[i-1].Year, Month: history[i-1].Month}
		cur := MonthKey{Year: history[i].Year, Month: history[i].Month}
		if !cur.Before(prev) {
			t.Fatalf("history[%d] %v not strictly before history[%d] %v", i, cur, i-1, prev)
		}
	}
}

func TestCompute_ClampedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := mustTime(t, "2025-06-15 10:00")
	cats := model.SpendCategories
	for i := 0; i < 200; i++ {
		p := model.Profile{
			MonthlyIncome:             float64(rng.Intn(100000)),
			FixedCosts:                float64(rng.Intn(80000)),
			YearlySavingsGoal:         float64(rng.Intn(500000)),
			TargetMonthlyContribution: float64(rng.Intn(40000)),
			SavingsRatio:              rng.Float64(),
		}
		var txs []model.Transaction
		for j := rng.Intn(30); j > 0; j-- {
			at := now.AddDate(0, 0, -rng.Intn(120))
			txs = append(txs, model.NewTransaction(float64(rng.Intn(20000)+1), cats[rng.Intn(len(cats))], rng.Intn(4) == 0, at, ""))
		}
		snap := Compute(p, txs, now)
		if snap.Budget.RemainingVariableBudget < 0 {
			t.Fatalf("case %d: RemainingVariableBudget = %.2f < 0", i, snap.Budget.RemainingVariableBudget)
		}
		for name, v := range map[string]float64{
			"DisciplineScore":             snap.Budget.DisciplineScore,
			"YearlyGoalProgress":          snap.Goals.YearlyGoalProgress,
			"MonthlyContributionProgress": snap.Goals.MonthlyContributionProgress,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("case %d: %s = %.2f, want within [0, 100]", i, name, v)
			}
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	txs := []model.Transaction{
		spend(t, 120.5, model.Food, false, "2025-06-14 09:00"),
		spend(t, 120.5, model.Transport, false, "2025-06-13 09:00"),
		spend(t, 900, model.FixedBill("Internet/WiFi"), true, "2025-06-01 09:00"),
		spend(t, 75.25, model.Health, false, "2025-05-30 09:00"),
	}
	now := mustTime(t, "2025-06-15 10:00")
	a := Compute(baseProfile(), txs, now)
	b := Compute(baseProfile(), txs, now)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Compute is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	txs := []model.Transaction{
		spend(t, 10, model.Food, false, "2025-06-01 09:00"),
		spend(t, 20, model.Food, false, "2025-06-02 09:00"),
	}
	before := append([]model.Transaction(nil), txs...)
	Compute(baseProfile(), txs, mustTime(t, "2025-06-15 10:00"))
	if !reflect.DeepEqual(before, txs) {
		t.Fatal("Compute modified its transaction slice")
	}
}

func TestCategoryShares(t *testing.T) {
	txs := []model.Transaction{
		spend(t, 300, model.Food, false, "2025-06-01 09:00"),
		spend(t, 100, model.Food, false, "2025-06-02 09:00"),
		spend(t, 600, model.Shopping, false, "2025-06-03 09:00"),
		spend(t, 999, model.Health, false, "2025-05-31 09:00"),
	}
	w := ResolveWindow(mustTime(t, "2025-06-15 10:00"))
	shares := CategoryShares(txs, w, w.Month)

	if len(shares) != 2 {
		t.Fatalf("got %d shares, want 2 (Health is last month)", len(shares))
	}
	if shares[0].Category != model.Shopping || shares[0].Amount != 600 || !approx(shares[0].Percent, 60) {
		t.Errorf("shares[0] = %+v, want Shopping 600 (60%%)", shares[0])
	}
	if shares[1].Category != model.Food || shares[1].Amount != 400 || shares[1].Count != 2 {
		t.Errorf("shares[1] = %+v, want Food 400 over 2 entries", shares[1])
	}
}

func TestCategoryShares_TiesOrderedByName(t *testing.T) {
	txs := []model.Transaction{
		spend(t, 50, model.Transport, false, "2025-06-01 09:00"),
		spend(t, 50, model.Entertainment, false, "2025-06-01 10:00"),
	}
	w := ResolveWindow(mustTime(t, "2025-06-15 10:00"))
	shares := CategoryShares(txs, w, w.Month)
	if shares[0].Category != model.Entertainment || shares[1].Category != model.Transport {
		t.Errorf("tie order = %s, %s; want Entertainment, Transport", shares[0].Category, shares[1].Category)
	}
}

func TestTimeline(t *testing.T) {
	txs := []model.Transaction{
		spend(t, 40, model.Food, false, "2025-06-15 08:00"),
		spend(t, 10, model.Food, false, "2025-06-15 09:00"),
		spend(t, 25, model.Transport, false, "2025-06-14 22:00"),
		spend(t, 99, model.Transport, false, "2025-06-08 22:00"), // 8 days ago
	}
	w := ResolveWindow(mustTime(t, "2025-06-15 10:00"))
	days := Timeline(txs, w, TimelineDays)

	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	if days[0].Key != "2025-06-09" || days[6].Key != "2025-06-15" {
		t.Errorf("range = %s..%s, want 2025-06-09..2025-06-15", days[0].Key, days[6].Key)
	}
	if days[6].Label != "Today" || days[5].Label != "Yest." || days[4].Label != "Fri" {
		t.Errorf("labels = %q %q %q, want Fri Yest. Today", days[4].Label, days[5].Label, days[6].Label)
	}
	if days[6].Amount != 50 || days[5].Amount != 25 {
		t.Errorf("amounts today/yesterday = %.2f/%.2f, want 50/25", days[6].Amount, days[5].Amount)
	}
	if days[0].Amount != 0 {
		t.Errorf("oldest day amount = %.2f, want 0", days[0].Amount)
	}
}

func TestOpportunityCost(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{1000, 3105},
		{1, 3},
		{0, 0},
		{-250, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := OpportunityCost(tt.amount); got != tt.want {
			t.Errorf("OpportunityCost(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}
