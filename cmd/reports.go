package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/engine"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/insight"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Spend and savings per month",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "This month's spend by category",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Spend over the last seven days",
	Args:  cobra.NoArgs,
	RunE:  runTimeline,
}

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Progress toward the yearly and monthly savings goals",
	Args:  cobra.NoArgs,
	RunE:  runGoals,
}

func init() {
	rootCmd.AddCommand(historyCmd, categoriesCmd, timelineCmd, goalsCmd)
}

// snapshot loads the ledger and computes metrics at the evaluation instant.
func snapshot(cmd *cobra.Command) (model.Snapshot, model.Profile, error) {
	e, err := openEnv()
	if err != nil {
		return model.Snapshot{}, model.Profile{}, err
	}
	defer e.Close()

	l, err := e.requireProfile(cmd.Context())
	if err != nil {
		return model.Snapshot{}, model.Profile{}, err
	}
	return l.Snapshot(e.now), l.Profile, nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, _, err := snapshot(cmd)
	if err != nil {
		return err
	}
	if len(s.MonthlyHistory) == 0 {
		fmt.Println("\n  No months recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(s.MonthlyHistory))
	trend := make([]float64, len(s.MonthlyHistory))
	for i, m := range s.MonthlyHistory {
		rows = append(rows, []string{m.Label, cli.FormatMoney(m.TotalSpent), cli.FormatSigned(m.SavingsAchieved)})
		trend[len(trend)-1-i] = m.TotalSpent
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly History",
		Headers: []string{"Month", "Spent", "Saved"},
		Rows:    rows,
	}))
	if len(trend) > 1 {
		fmt.Printf("\n  Spend trend  %s\n", cli.RenderSparkline(trend))
	}
	return nil
}

func runCategories(cmd *cobra.Command, _ []string) error {
	s, _, err := snapshot(cmd)
	if err != nil {
		return err
	}
	if len(s.Categories) == 0 {
		fmt.Println("\n  Nothing spent this month yet.")
		return nil
	}

	peak := s.Categories[0].Amount
	rows := make([][]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		name := c.Category.Name()
		if c.Category.IsFixedBill() {
			name += " (fixed)"
		}
		rows = append(rows, []string{
			name,
			cli.FormatNumber(int64(c.Count)),
			cli.FormatMoney(c.Amount),
			cli.FormatPercent(c.Percent),
			cli.RenderHorizontalBar(c.Amount, peak, 20),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Spend by Category  " + s.At.Format("January 2006"),
		Headers: []string{"Category", "Count", "Amount", "Share", ""},
		Rows:    rows,
	}))
	return nil
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	s, _, err := snapshot(cmd)
	if err != nil {
		return err
	}

	peak := 0.0
	total := 0.0
	for _, d := range s.Timeline {
		peak = max(peak, d.Amount)
		total += d.Amount
	}
	rows := make([][]string, 0, len(s.Timeline)+2)
	for _, d := range s.Timeline {
		rows = append(rows, []string{
			d.Label,
			d.Date.Format("02 Jan"),
			cli.FormatMoney(d.Amount),
			cli.RenderHorizontalBar(d.Amount, peak, 24),
		})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", cli.FormatMoney(total), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Last 7 Days",
		Headers: []string{"Day", "Date", "Spent", ""},
		Rows:    rows,
	}))
	return nil
}

func runGoals(cmd *cobra.Command, _ []string) error {
	s, p, err := snapshot(cmd)
	if err != nil {
		return err
	}
	g := s.Goals

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PATH TO GOAL  %d", s.At.Year())))
	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Yearly goal", cli.FormatMoney(p.YearlySavingsGoal)},
		{"Saved this year", cli.FormatMoney(g.YearToDateSavings)},
		{"Progress", cli.RenderMeter(g.YearlyGoalProgress, 24, true)},
		{"Still to save", cli.FormatMoney(g.RemainingToYearlyGoal)},
		{"Needed per day", cli.FormatMoney(g.DailySavingsNeeded)},
		{"Days left in year", cli.FormatDays(s.Calendar.DaysRemainingInYear)},
		{"", ""},
		{"Monthly target", cli.FormatMoney(p.TargetMonthlyContribution)},
		{"Projected this month", cli.FormatSigned(s.Budget.ProjectedMonthlySavings)},
		{"Contribution", cli.RenderMeter(g.MonthlyContributionProgress, 24, true)},
	}))
	fmt.Println()
	fmt.Println("  " + cli.Accent(insight.GoalMilestone(g.YearlyGoalProgress)))
	fmt.Println("  " + cli.Muted(insight.Pace(s.Budget.DisciplineScore)))
	fmt.Println("  " + cli.Muted(insight.Encouragement(s, cli.Currency())))
	return nil
}

var costCmd = &cobra.Command{
	Use:   "cost <amount>",
	Short: "What an amount would grow to if invested instead",
	Args:  cobra.ExactArgs(1),
	RunE:  runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)
}

func runCost(_ *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	amount, err := model.ParseAmount(args[0])
	if err != nil {
		return err
	}
	future := engine.OpportunityCost(amount)
	fmt.Printf("  %s invested for %d years at %.0f%% a year grows to %s\n",
		cli.FormatAmount(amount), engine.OpportunityYears, engine.OpportunityRate*100,
		cli.FormatMoney(float64(future)))
	return nil
}
