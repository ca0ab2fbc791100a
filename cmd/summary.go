package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/insight"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "This month's budget, runway and discipline",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	l, err := e.requireProfile(cmd.Context())
	if err != nil {
		return err
	}
	s := l.Snapshot(e.now)
	b := s.Budget
	cal := s.Calendar

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINFLEX  %s", e.now.Format("Mon 02 Jan 2006"))))
	fmt.Println()

	rows := [][]string{
		{"Safe to spend today", cli.FormatMoney(b.DailySafeSpend)},
		{"Variable budget left", fmt.Sprintf("%s of %s", cli.FormatMoney(b.RemainingVariableBudget), cli.FormatMoney(b.MonthlyVariableBudget))},
		{"Days left in month", cli.FormatDays(cal.DaysRemainingInMonth)},
		{"---"},
		{"Spent this month", cli.FormatMoney(b.TotalSpentThisMonth)},
		{"  variable", cli.FormatMoney(b.VariableSpentThisMonth)},
		{"  fixed bills", cli.FormatMoney(b.FixedSpentThisMonth)},
		{"Avg daily burn", cli.FormatMoney(b.AvgDailyBurn)},
		{"---"},
		{"Liquidity", cli.FormatMoney(b.CurrentLiquidity)},
		{"Runway", cli.FormatRunway(b.DaysOfRunway)},
		{"Ideal savings", cli.FormatMoney(b.IdealMonthlySavings)},
		{"Projected savings", cli.FormatSigned(b.ProjectedMonthlySavings)},
		{"Discipline", cli.RenderMeter(b.DisciplineScore, 20, true)},
		{"---"},
		{"Year closes in", cli.FormatCountdown(cal.SecondsUntilYearEnd)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Println("  " + cli.Muted(insight.Headline(s)))
	if lvl := insight.BudgetLevel(b.BudgetUsedPercent()); lvl != insight.LevelOK {
		fmt.Printf("  Budget used: %s\n", cli.RenderMeter(b.BudgetUsedPercent(), 20, false))
	}
	return nil
}
