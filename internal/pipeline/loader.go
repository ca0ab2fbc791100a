// Package pipeline moves ledger data between backups, the store and the
// metrics engine.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/engine"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/store"
)

// Ledger is everything the engine needs from the store.
type Ledger struct {
	Profile      model.Profile
	HasProfile   bool
	Transactions []model.Transaction
}

// LoadLedger reads the profile and transactions from repo. A missing
// profile is reported through HasProfile, not as an error.
func LoadLedger(ctx context.Context, repo store.Repository) (Ledger, error) {
	var l Ledger
	p, err := repo.LoadProfile(ctx)
	switch {
	case errors.Is(err, store.ErrNoProfile):
	case err != nil:
		return l, err
	default:
		l.Profile = p
		l.HasProfile = true
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		return l, fmt.Errorf("loading ledger: %w", err)
	}
	l.Transactions = txs
	return l, nil
}

// Snapshot computes the metrics for the ledger at now.
func (l Ledger) Snapshot(now time.Time) model.Snapshot {
	return engine.Compute(l.Profile, l.Transactions, now)
}
