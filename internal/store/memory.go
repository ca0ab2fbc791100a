package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

// Memory is an in-process Repository used for tests and dry runs.
type Memory struct {
	mu      sync.RWMutex
	profile *model.Profile
	txs     map[string]model.Transaction
}

var _ Repository = (*Memory)(nil)

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{txs: make(map[string]model.Transaction)}
}

func (m *Memory) LoadProfile(_ context.Context) (model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return model.Profile{}, ErrNoProfile
	}
	return *m.profile, nil
}

func (m *Memory) SaveProfile(_ context.Context, p model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = &p
	return nil
}

func (m *Memory) ListTransactions(_ context.Context) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	txs := make([]model.Transaction, 0, len(m.txs))
	for _, t := range m.txs {
		txs = append(txs, t)
	}
	sortNewestFirst(txs)
	return txs, nil
}

func (m *Memory) GetTransaction(_ context.Context, id string) (model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.txs[id]
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

func (m *Memory) SaveTransaction(ctx context.Context, tx model.Transaction) error {
	return m.SaveTransactions(ctx, []model.Transaction{tx})
}

func (m *Memory) SaveTransactions(_ context.Context, txs []model.Transaction) error {
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range txs {
		m.txs[t.ID] = t
	}
	return nil
}

func (m *Memory) DeleteTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.txs, id)
	return nil
}

func (m *Memory) Purge(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = nil
	m.txs = make(map[string]model.Transaction)
	return nil
}

func (m *Memory) Close() error { return nil }
