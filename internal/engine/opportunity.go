package engine

import "math"

const (
	// OpportunityRate is the assumed annual growth of invested money.
	OpportunityRate = 0.12
	// OpportunityYears is the horizon used for opportunity cost.
	OpportunityYears = 10
)

// OpportunityCost returns what amount would grow to if invested for
// OpportunityYears at OpportunityRate, floored to whole units. Non-positive
// and non-finite amounts yield 0.
func OpportunityCost(amount float64) int64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0
	}
	return int64(math.Floor(amount * math.Pow(1+OpportunityRate, OpportunityYears)))
}
