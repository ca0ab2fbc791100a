package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui/theme"
)

// setupValues holds the raw form fields. Amounts stay strings until the
// form completes so validation can report bad input inline.
type setupValues struct {
	name      string
	income    string
	fixed     string
	yearly    string
	monthly   string
	risk      string
	themeName string
}

func newSetupValues(p model.Profile, themeName string) *setupValues {
	v := &setupValues{
		name:      p.Name,
		risk:      string(p.RiskAppetite),
		themeName: themeName,
	}
	if v.risk == "" {
		v.risk = string(model.RiskMedium)
	}
	amount := func(f float64) string {
		if f == 0 {
			return ""
		}
		return fmt.Sprintf("%.0f", f)
	}
	v.income = amount(p.MonthlyIncome)
	v.fixed = amount(p.FixedCosts)
	v.yearly = amount(p.YearlySavingsGoal)
	v.monthly = amount(p.TargetMonthlyContribution)
	return v
}

// newSetupForm builds the profile wizard.
func newSetupForm(vals *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finflex").
				Description("Tell us about your month. Everything stays on this machine."),
			huh.NewInput().
				Title("Your name").
				Value(&vals.name),
			huh.NewInput().
				Title("Monthly income").
				Placeholder("85000").
				Validate(validateAmount(true)).
				Value(&vals.income),
			huh.NewInput().
				Title("Fixed costs per month").
				Description("Rent, EMIs, subscriptions. Used to size the variable budget.").
				Placeholder("25000").
				Validate(validateAmount(false)).
				Value(&vals.fixed),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Yearly savings goal").
				Validate(validateAmount(false)).
				Value(&vals.yearly),
			huh.NewInput().
				Title("Target monthly contribution").
				Validate(validateAmount(false)).
				Value(&vals.monthly),
			huh.NewSelect[string]().
				Title("Risk appetite").
				Description("Sets how much of your income is reserved as savings.").
				Options(
					huh.NewOption("Low (save 15%)", string(model.RiskLow)),
					huh.NewOption("Medium (save 25%)", string(model.RiskMedium)),
					huh.NewOption("High (save 40%)", string(model.RiskHigh)),
				).
				Value(&vals.risk),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.themeName),
		),
	).WithTheme(huh.ThemeCharm())
}

// validateAmount accepts blank input for optional fields.
func validateAmount(required bool) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			if required {
				return fmt.Errorf("required")
			}
			return nil
		}
		_, err := parseFormAmount(s)
		return err
	}
}

func parseFormAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if s == "0" {
		return 0, nil
	}
	return model.ParseAmount(s)
}

// profile converts completed form values into a validated profile.
func (v *setupValues) profile() (model.Profile, error) {
	p := model.Profile{Name: strings.TrimSpace(v.name)}
	fields := []struct {
		raw string
		dst *float64
	}{
		{v.income, &p.MonthlyIncome},
		{v.fixed, &p.FixedCosts},
		{v.yearly, &p.YearlySavingsGoal},
		{v.monthly, &p.TargetMonthlyContribution},
	}
	for _, f := range fields {
		amt, err := parseFormAmount(f.raw)
		if err != nil {
			return model.Profile{}, err
		}
		*f.dst = amt
	}
	risk, err := model.ParseRiskAppetite(v.risk)
	if err != nil {
		return model.Profile{}, err
	}
	p.RiskAppetite = risk
	p.SavingsRatio = risk.SavingsRatio()
	return p, p.Validate()
}

// RunSetup runs the wizard standalone and returns the resulting profile and
// chosen theme. It is used by the setup command outside the dashboard.
func RunSetup(current model.Profile, themeName string) (model.Profile, string, error) {
	vals := newSetupValues(current, themeName)
	if err := newSetupForm(vals).Run(); err != nil {
		return model.Profile{}, "", err
	}
	p, err := vals.profile()
	if err != nil {
		return model.Profile{}, "", err
	}
	return p, vals.themeName, nil
}
