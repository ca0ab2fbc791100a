// Package store persists the profile and transaction ledger.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

var (
	// ErrNotFound is returned when a transaction ID does not exist.
	ErrNotFound = errors.New("transaction not found")
	// ErrNoProfile is returned before onboarding has saved a profile.
	ErrNoProfile = errors.New("no profile saved")
)

// Repository is the durable home of the profile and the transaction log.
type Repository interface {
	LoadProfile(ctx context.Context) (model.Profile, error)
	SaveProfile(ctx context.Context, p model.Profile) error
	// ListTransactions returns the ledger newest first.
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id string) (model.Transaction, error)
	// SaveTransaction inserts tx or fully replaces the entry with the same ID.
	SaveTransaction(ctx context.Context, tx model.Transaction) error
	SaveTransactions(ctx context.Context, txs []model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	// Purge removes the profile and every transaction.
	Purge(ctx context.Context) error
	Close() error
}

func sortNewestFirst(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Timestamp.Equal(txs[j].Timestamp) {
			return txs[i].Timestamp.After(txs[j].Timestamp)
		}
		return txs[i].ID < txs[j].ID
	})
}
