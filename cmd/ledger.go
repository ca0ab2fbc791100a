package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

var (
	flagListLimit int
	flagListMonth string

	flagEditAmount   string
	flagEditCategory string
	flagEditNote     string
	flagEditDate     string
	flagEditFixed    bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded transactions, newest first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a recorded transaction",
	Long:  "Change a recorded transaction. The id may be abbreviated to any unique prefix.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a recorded transaction",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "n", 20, "Maximum rows to show (0 for all)")
	listCmd.Flags().StringVar(&flagListMonth, "month", "", "Only this month (YYYY-MM)")

	editCmd.Flags().StringVar(&flagEditAmount, "amount", "", "New amount")
	editCmd.Flags().StringVar(&flagEditCategory, "category", "", "New category")
	editCmd.Flags().StringVar(&flagEditNote, "note", "", "New note")
	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New day (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&flagEditFixed, "fixed", false, "Mark as fixed bill (--fixed=false for spend)")

	rootCmd.AddCommand(listCmd, editCmd, deleteCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	var month time.Time
	if flagListMonth != "" {
		m, err := time.ParseInLocation("2006-01", flagListMonth, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --month %q (want YYYY-MM)", flagListMonth)
		}
		month = m
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	txs, err := e.repo.ListTransactions(cmd.Context())
	if err != nil {
		return err
	}

	var rows [][]string
	total := 0.0
	for _, tx := range txs {
		if tx.Timestamp.After(e.now) {
			continue
		}
		if !month.IsZero() {
			local := tx.Timestamp.In(time.Local)
			if local.Year() != month.Year() || local.Month() != month.Month() {
				continue
			}
		}
		if flagListLimit > 0 && len(rows) >= flagListLimit {
			break
		}
		kind := ""
		if tx.IsFixed {
			kind = "fixed"
		}
		rows = append(rows, []string{
			shortID(tx.ID),
			cli.FormatWhen(tx.Timestamp, e.now),
			tx.Category.Name(),
			kind,
			cli.FormatAmount(tx.Amount),
			tx.Note,
		})
		total += tx.Amount
	}

	if len(rows) == 0 {
		fmt.Println("\n  No transactions recorded.")
		fmt.Println("  Add one with: finflex add <amount> <category>")
		return nil
	}

	rows = append(rows, []string{"---"}, []string{"", "", "Total", "", cli.FormatAmount(total), ""})
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Ledger",
		Headers: []string{"ID", "When", "Category", "", "Amount", "Note"},
		Rows:    rows,
	}))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("amount") && !flags.Changed("category") && !flags.Changed("note") &&
		!flags.Changed("date") && !flags.Changed("fixed") {
		return fmt.Errorf("nothing to change; pass at least one of --amount --category --note --date --fixed")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	tx, err := resolveID(ctx, e.repo, args[0])
	if err != nil {
		return err
	}

	if flags.Changed("amount") {
		if tx.Amount, err = model.ParseAmount(flagEditAmount); err != nil {
			return err
		}
	}
	if flags.Changed("category") {
		if tx.Category, err = model.ParseCategory(flagEditCategory); err != nil {
			return err
		}
		tx.IsFixed = tx.Category.IsFixedBill()
	}
	if flags.Changed("note") {
		tx.Note = strings.TrimSpace(flagEditNote)
	}
	if flags.Changed("date") {
		clock := tx.Timestamp.In(e.now.Location())
		d, err := time.ParseInLocation(dateLayout, flagEditDate, e.now.Location())
		if err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", flagEditDate)
		}
		tx.Timestamp = time.Date(d.Year(), d.Month(), d.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), e.now.Location())
		if err := model.CheckNotFuture(tx.Timestamp, e.now); err != nil {
			return err
		}
	}
	if flags.Changed("fixed") {
		tx.IsFixed = flagEditFixed
		if tx.IsFixed && !tx.Category.IsFixedBill() {
			tx.Category = model.FixedBill(tx.Category.Name())
		}
		if !tx.IsFixed && tx.Category.IsFixedBill() {
			tx.Category = model.OtherSpend
		}
	}

	if err := e.repo.SaveTransaction(ctx, tx); err != nil {
		return err
	}
	fmt.Printf("  Updated %s: %s %s on %s\n", shortID(tx.ID), cli.FormatAmount(tx.Amount),
		tx.Category, tx.Timestamp.Format("02 Jan 2006"))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	tx, err := resolveID(ctx, e.repo, args[0])
	if err != nil {
		return err
	}
	if err := e.repo.DeleteTransaction(ctx, tx.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s %s from %s\n", cli.FormatAmount(tx.Amount), tx.Category, tx.Timestamp.Format("02 Jan 2006"))
	return nil
}
