package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/config"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/store"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/tui"
)

var (
	flagSetupName    string
	flagSetupIncome  float64
	flagSetupFixed   float64
	flagSetupYearly  float64
	flagSetupMonthly float64
	flagSetupRatio   float64
	flagSetupRisk    string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create or update your financial profile",
	Long: "Create or update your financial profile. Without flags an interactive form runs; " +
		"with flags the profile is updated directly.",
	Example: `  finflex setup
  finflex setup --income 85000 --fixed-costs 25000 --yearly-goal 200000 --risk medium`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	f := setupCmd.Flags()
	f.StringVar(&flagSetupName, "name", "", "Your name")
	f.Float64Var(&flagSetupIncome, "income", 0, "Monthly income")
	f.Float64Var(&flagSetupFixed, "fixed-costs", 0, "Fixed costs per month")
	f.Float64Var(&flagSetupYearly, "yearly-goal", 0, "Yearly savings goal")
	f.Float64Var(&flagSetupMonthly, "monthly-target", 0, "Target monthly contribution")
	f.Float64Var(&flagSetupRatio, "savings-ratio", 0, "Share of income to save, 0 to 1")
	f.StringVar(&flagSetupRisk, "risk", "", "Risk appetite: low, medium or high")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	current, err := e.repo.LoadProfile(ctx)
	if err != nil && !errors.Is(err, store.ErrNoProfile) {
		return err
	}

	var p model.Profile
	if profileFlagsSet(cmd) {
		p, err = profileFromFlags(cmd, current)
	} else {
		var themeName string
		p, themeName, err = tui.RunSetup(current, e.cfg.Appearance.Theme)
		if err == nil && themeName != e.cfg.Appearance.Theme {
			e.cfg.Appearance.Theme = themeName
			if err := config.Save(e.cfg); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
		}
	}
	if err != nil {
		return err
	}

	if err := e.repo.SaveProfile(ctx, p); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Monthly income", cli.FormatMoney(p.MonthlyIncome)},
		{"Fixed costs", cli.FormatMoney(p.FixedCosts)},
		{"Savings ratio", cli.FormatPercent(p.EffectiveSavingsRatio() * 100)},
		{"Yearly goal", cli.FormatMoney(p.YearlySavingsGoal)},
		{"Monthly target", cli.FormatMoney(p.TargetMonthlyContribution)},
	}))
	fmt.Println()
	fmt.Println("  Profile saved. Run `finflex` for today's numbers.")
	return nil
}

var profileFlagNames = []string{"name", "income", "fixed-costs", "yearly-goal", "monthly-target", "savings-ratio", "risk"}

func profileFlagsSet(cmd *cobra.Command) bool {
	for _, name := range profileFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// profileFromFlags applies the flags that were set on top of current.
func profileFromFlags(cmd *cobra.Command, current model.Profile) (model.Profile, error) {
	p := current
	f := cmd.Flags()
	if f.Changed("name") {
		p.Name = flagSetupName
	}
	if f.Changed("income") {
		p.MonthlyIncome = flagSetupIncome
	}
	if f.Changed("fixed-costs") {
		p.FixedCosts = flagSetupFixed
	}
	if f.Changed("yearly-goal") {
		p.YearlySavingsGoal = flagSetupYearly
	}
	if f.Changed("monthly-target") {
		p.TargetMonthlyContribution = flagSetupMonthly
	}
	if f.Changed("risk") {
		risk, err := model.ParseRiskAppetite(flagSetupRisk)
		if err != nil {
			return p, err
		}
		p.RiskAppetite = risk
		if !f.Changed("savings-ratio") {
			p.SavingsRatio = risk.SavingsRatio()
		}
	}
	if f.Changed("savings-ratio") {
		p.SavingsRatio = flagSetupRatio
	}
	return p, p.Validate()
}
