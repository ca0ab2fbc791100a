package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// WriteFile writes a backup to path atomically. p may be nil.
func WriteFile(path string, p *model.Profile, txs []model.Transaction, now time.Time) error {
	out := RawExport{
		Version:      ExportVersion,
		ExportedAt:   now.UTC().Format(time.RFC3339),
		Transactions: make([]RawTransaction, 0, len(txs)),
	}
	if p != nil {
		out.Profile = &RawProfile{
			Name:                      p.Name,
			MonthlyIncome:             p.MonthlyIncome,
			FixedCosts:                p.FixedCosts,
			YearlySavingsGoal:         p.YearlySavingsGoal,
			TargetMonthlyContribution: p.TargetMonthlyContribution,
			SavingsRatio:              p.SavingsRatio,
			RiskAppetite:              string(p.RiskAppetite),
		}
	}
	for _, tx := range txs {
		out.Transactions = append(out.Transactions, fromModel(tx))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".finflex-export-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
