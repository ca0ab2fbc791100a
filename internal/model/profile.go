package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// DefaultSavingsRatio is used when a profile carries no savings ratio.
const DefaultSavingsRatio = 0.20

// RiskAppetite is the investment temperament chosen at onboarding.
type RiskAppetite string

const (
	RiskLow    RiskAppetite = "low"
	RiskMedium RiskAppetite = "medium"
	RiskHigh   RiskAppetite = "high"
)

// RiskAppetites lists the appetites in ascending order.
var RiskAppetites = []RiskAppetite{RiskLow, RiskMedium, RiskHigh}

// SavingsRatio returns the share of income suggested for the appetite.
func (r RiskAppetite) SavingsRatio() float64 {
	switch r {
	case RiskLow:
		return 0.15
	case RiskMedium:
		return 0.25
	case RiskHigh:
		return 0.40
	default:
		return DefaultSavingsRatio
	}
}

// ParseRiskAppetite resolves a case-insensitive appetite name.
func ParseRiskAppetite(s string) (RiskAppetite, error) {
	r := RiskAppetite(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range RiskAppetites {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown risk appetite %q (want low, medium or high)", s)
}

// Profile is the user's declared financial baseline.
type Profile struct {
	Name                      string       `json:"name" toml:"name"`
	MonthlyIncome             float64      `json:"monthly_income" toml:"monthly_income"`
	FixedCosts                float64      `json:"fixed_costs" toml:"fixed_costs"`
	YearlySavingsGoal         float64      `json:"yearly_savings_goal" toml:"yearly_savings_goal"`
	TargetMonthlyContribution float64      `json:"target_monthly_contribution" toml:"target_monthly_contribution"`
	SavingsRatio              float64      `json:"savings_ratio" toml:"savings_ratio"`
	RiskAppetite              RiskAppetite `json:"risk_appetite,omitempty" toml:"risk_appetite,omitempty"`
}

// EffectiveSavingsRatio returns the configured ratio, or the default when unset.
func (p Profile) EffectiveSavingsRatio() float64 {
	if p.SavingsRatio == 0 {
		return DefaultSavingsRatio
	}
	return p.SavingsRatio
}

// Validate reports every field that is out of range.
func (p Profile) Validate() error {
	var problems []string
	money := []struct {
		name string
		v    float64
	}{
		{"monthly income", p.MonthlyIncome},
		{"fixed costs", p.FixedCosts},
		{"yearly savings goal", p.YearlySavingsGoal},
		{"target monthly contribution", p.TargetMonthlyContribution},
	}
	for _, m := range money {
		if math.IsNaN(m.v) || math.IsInf(m.v, 0) || m.v < 0 {
			problems = append(problems, fmt.Sprintf("%s must be a non-negative amount", m.name))
		}
	}
	if math.IsNaN(p.SavingsRatio) || p.SavingsRatio < 0 || p.SavingsRatio > 1 {
		problems = append(problems, "savings ratio must be between 0 and 1")
	}
	if p.RiskAppetite != "" {
		if _, err := ParseRiskAppetite(string(p.RiskAppetite)); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n- %s", ErrInvalidProfile, strings.Join(problems, "\n- "))
}
