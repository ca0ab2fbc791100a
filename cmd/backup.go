package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/pipeline"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/source"
)

var (
	flagImportOverwrite bool
	flagImportWorkers   int
	flagPurgeYes        bool
)

var importCmd = &cobra.Command{
	Use:   "import <file|dir>...",
	Short: "Import JSON backups into the ledger",
	Long: "Import JSON backups into the ledger. Directories are scanned for *.json files. " +
		"Transactions with an existing id are replaced; later files win.",
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the profile and ledger to a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete the profile and every transaction",
	Args:  cobra.NoArgs,
	RunE:  runPurge,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportOverwrite, "overwrite-profile", false, "Replace the stored profile with the imported one")
	importCmd.Flags().IntVar(&flagImportWorkers, "workers", runtime.NumCPU(), "Files parsed in parallel")
	purgeCmd.Flags().BoolVar(&flagPurgeYes, "yes", false, "Confirm deletion")
	rootCmd.AddCommand(importCmd, exportCmd, purgeCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	paths, err := pipeline.ResolvePaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("  No backups found.")
		return nil
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	progressFn := func(current, total int) {
		progressf("\r  Parsing [%d/%d]", current, total)
	}
	res, err := pipeline.Import(ctx, paths, flagImportWorkers, progressFn)
	if err != nil {
		return err
	}
	progressf("\n")

	if err := pipeline.Apply(ctx, e.repo, res, flagImportOverwrite, e.log); err != nil {
		return err
	}

	fmt.Printf("  Imported %s transactions from %d of %d files\n",
		cli.FormatNumber(int64(len(res.Transactions))), res.ParsedFiles, res.TotalFiles)
	if res.Profile != nil {
		fmt.Println("  Backup included a profile")
	}
	if res.Duplicates > 0 {
		fmt.Printf("  %d duplicate ids merged (later files win)\n", res.Duplicates)
	}
	if res.FileErrors > 0 || res.ParseErrors > 0 {
		fmt.Printf("  Skipped %d unreadable files and %d invalid records\n", res.FileErrors, res.ParseErrors)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	l, err := e.ledger(cmd.Context())
	if err != nil {
		return err
	}
	p := &l.Profile
	if !l.HasProfile {
		p = nil
	}
	if err := source.WriteFile(args[0], p, l.Transactions, e.now); err != nil {
		return err
	}
	fmt.Printf("  Exported %s transactions to %s\n", cli.FormatNumber(int64(len(l.Transactions))), args[0])
	return nil
}

func runPurge(cmd *cobra.Command, _ []string) error {
	if !flagPurgeYes {
		return fmt.Errorf("purge deletes your profile and every transaction; re-run with --yes to confirm")
	}
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.repo.Purge(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("  Ledger purged.")
	return nil
}
