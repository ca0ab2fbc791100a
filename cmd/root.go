// Package cmd implements the finflex CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/cli"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/config"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/logging"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/pipeline"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/store"
)

const dateLayout = "2006-01-02"

var (
	flagAsOf    string
	flagDataDir string
	flagNoColor bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "finflex",
	Short:         "Financial discipline metrics for your month",
	Long:          "Track spending against your savings plan: safe daily spend, runway, discipline score and goal progress.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Evaluate as of the end of this day (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Ledger directory (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// env is the shared state most commands need: config, logger, the open
// ledger and the evaluation instant.
type env struct {
	cfg  config.Config
	log  *logrus.Logger
	repo *store.Ledger
	now  time.Time
}

// loadConfig reads config and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	cli.Configure(cfg.General.Currency, cfg.General.Locale)
	return cfg, nil
}

// openEnv loads config and opens the ledger. Callers must Close it.
func openEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	now, err := evalNow()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	repo, err := store.Open(config.LedgerPath(cfg), log)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return &env{cfg: cfg, log: log, repo: repo, now: now}, nil
}

func (e *env) Close() {
	if err := e.repo.Close(); err != nil {
		e.log.WithError(err).Warn("closing ledger")
	}
}

// ledger loads the profile and transactions.
func (e *env) ledger(ctx context.Context) (pipeline.Ledger, error) {
	return pipeline.LoadLedger(ctx, e.repo)
}

// requireProfile loads the ledger and fails with a setup hint when no
// profile has been saved.
func (e *env) requireProfile(ctx context.Context) (pipeline.Ledger, error) {
	l, err := e.ledger(ctx)
	if err != nil {
		return l, err
	}
	if !l.HasProfile {
		return l, errors.New("no profile yet; run `finflex setup` first")
	}
	return l, nil
}

// evalNow is the instant metrics are evaluated at: --as-of's end of day, or
// the current time.
func evalNow() (time.Time, error) {
	if flagAsOf == "" {
		return time.Now(), nil
	}
	d, err := time.ParseInLocation(dateLayout, flagAsOf, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q (want YYYY-MM-DD)", flagAsOf)
	}
	return model.EndOfDay(d), nil
}

// entryTime resolves a --date flag to a timestamp on that local day, keeping
// the clock time of now. Blank means now. Future days are rejected.
func entryTime(date string, now time.Time) (time.Time, error) {
	if date == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	ts := time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	if err := model.CheckNotFuture(ts, now); err != nil {
		return time.Time{}, err
	}
	return ts, nil
}

// progressf writes progress to stderr unless --quiet.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID finds the transaction whose ID equals or starts with prefix.
func resolveID(ctx context.Context, repo store.Repository, prefix string) (model.Transaction, error) {
	if tx, err := repo.GetTransaction(ctx, prefix); err == nil {
		return tx, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return model.Transaction{}, err
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	var matches []model.Transaction
	for _, tx := range txs {
		if strings.HasPrefix(tx.ID, prefix) {
			matches = append(matches, tx)
		}
	}
	switch len(matches) {
	case 0:
		return model.Transaction{}, fmt.Errorf("transaction %q: %w", prefix, store.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return model.Transaction{}, fmt.Errorf("id prefix %q matches %d transactions", prefix, len(matches))
	}
}
