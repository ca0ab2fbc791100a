package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/engine"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

var (
	flagAddNote  string
	flagAddDate  string
	flagAddFixed bool
	flagBillDate string
)

var addCmd = &cobra.Command{
	Use:   "add <amount> <category>",
	Short: "Record a spend",
	Long: "Record a spend. Category is one of: " + spendCategoryNames() +
		". Any other name is recorded as a fixed bill.",
	Example: `  finflex add 450 food --note "team lunch"
  finflex add 1,299.50 shopping --date 2024-06-12
  finflex add 18000 rent`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

var fixedCmd = &cobra.Command{
	Use:   "fixed <label=amount>...",
	Short: "Record this month's fixed bills in one go",
	Long:  "Record several fixed bills at once. Common labels: " + strings.Join(model.FixedBillLabels, ", ") + ".",
	Example: `  finflex fixed rent=18000 electricity=1450 internet=799`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFixed,
}

func init() {
	addCmd.Flags().StringVar(&flagAddNote, "note", "", "Free-text note")
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Day of the spend (YYYY-MM-DD, default today)")
	addCmd.Flags().BoolVar(&flagAddFixed, "fixed", false, "Mark as a fixed bill")
	fixedCmd.Flags().StringVar(&flagBillDate, "date", "", "Day the bills were paid (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(addCmd, fixedCmd)
}

func spendCategoryNames() string {
	names := make([]string, len(model.SpendCategories))
	for i, c := range model.SpendCategories {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := model.ParseAmount(args[0])
	if err != nil {
		return err
	}
	cat, err := model.ParseCategory(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ts, err := entryTime(flagAddDate, e.now)
	if err != nil {
		return err
	}
	if flagAddFixed && !cat.IsFixedBill() {
		cat = model.FixedBill(cat.Name())
	}
	tx := model.NewTransaction(amount, cat, cat.IsFixedBill(), ts, strings.TrimSpace(flagAddNote))
	if err := e.repo.SaveTransaction(cmd.Context(), tx); err != nil {
		return err
	}
	e.log.WithField("id", tx.ID).Debug("transaction added")

	kind := "spend"
	if tx.IsFixed {
		kind = "fixed bill"
	}
	fmt.Printf("  Added %s %s to %s (%s)\n", cli.FormatAmount(tx.Amount), kind, tx.Category, shortID(tx.ID))
	if !tx.IsFixed {
		fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("Invested instead, that's %s in %d years.",
			cli.FormatMoney(float64(engine.OpportunityCost(tx.Amount))), engine.OpportunityYears)))
	}
	return nil
}

func runFixed(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ts, err := entryTime(flagBillDate, e.now)
	if err != nil {
		return err
	}

	txs := make([]model.Transaction, 0, len(args))
	total := 0.0
	for _, arg := range args {
		label, raw, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(label) == "" {
			return fmt.Errorf("invalid bill %q (want label=amount)", arg)
		}
		amount, err := model.ParseAmount(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		txs = append(txs, model.NewTransaction(amount, model.FixedBill(label), true, ts, model.BulkFixedNote))
		total += amount
	}

	if err := e.repo.SaveTransactions(cmd.Context(), txs); err != nil {
		return err
	}
	for _, tx := range txs {
		fmt.Printf("  %-16s %s\n", tx.Category, cli.FormatAmount(tx.Amount))
	}
	fmt.Printf("  Recorded %d fixed bills totalling %s\n", len(txs), cli.FormatAmount(total))
	return nil
}
