package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Ledger is the SQLite-backed Repository.
type Ledger struct {
	db  *sql.DB
	log logrus.FieldLogger
}

var _ Repository = (*Ledger)(nil)

// Open migrates and opens the ledger database at dbPath, creating the
// directory if needed.
func Open(dbPath string, log logrus.FieldLogger) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if err := Migrate(dbPath, log); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	return &Ledger{db: db, log: log.WithField("component", "store")}, nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// LoadProfile returns the saved profile or ErrNoProfile.
func (l *Ledger) LoadProfile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	var risk string
	err := l.db.QueryRowContext(ctx, `SELECT name, monthly_income, fixed_costs, yearly_savings_goal,
		target_monthly_contribution, savings_ratio, risk_appetite FROM profile WHERE id = 1`).
		Scan(&p.Name, &p.MonthlyIncome, &p.FixedCosts, &p.YearlySavingsGoal,
			&p.TargetMonthlyContribution, &p.SavingsRatio, &risk)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNoProfile
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("loading profile: %w", err)
	}
	p.RiskAppetite = model.RiskAppetite(risk)
	return p, nil
}

// SaveProfile replaces the stored profile.
func (l *Ledger) SaveProfile(ctx context.Context, p model.Profile) error {
	_, err := l.db.ExecContext(ctx, `INSERT OR REPLACE INTO profile
		(id, name, monthly_income, fixed_costs, yearly_savings_goal,
		 target_monthly_contribution, savings_ratio, risk_appetite, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.MonthlyIncome, p.FixedCosts, p.YearlySavingsGoal,
		p.TargetMonthlyContribution, p.SavingsRatio, string(p.RiskAppetite), nowStamp(),
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// ListTransactions returns every transaction, newest first.
func (l *Ledger) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, amount, category, is_fixed, timestamp_ms, note
		FROM transactions ORDER BY timestamp_ms DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetTransaction returns one transaction by ID.
func (l *Ledger) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	row := l.db.QueryRowContext(ctx, `SELECT id, amount, category, is_fixed, timestamp_ms, note
		FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx, err
}

// SaveTransaction inserts or replaces a single transaction.
func (l *Ledger) SaveTransaction(ctx context.Context, tx model.Transaction) error {
	return l.SaveTransactions(ctx, []model.Transaction{tx})
}

// SaveTransactions writes txs in one database transaction. Nothing is
// written if any entry is invalid.
func (l *Ledger) SaveTransactions(ctx context.Context, txs []model.Transaction) error {
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	dbtx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	stmt, err := dbtx.PrepareContext(ctx, `INSERT OR REPLACE INTO transactions
		(id, amount, category, is_fixed, timestamp_ms, note, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	stamp := nowStamp()
	for _, t := range txs {
		isFixed := 0
		if t.IsFixed {
			isFixed = 1
		}
		if _, err := stmt.ExecContext(ctx, t.ID, t.Amount, t.Category.Name(), isFixed,
			t.Timestamp.UnixMilli(), t.Note, stamp); err != nil {
			return fmt.Errorf("saving transaction %s: %w", t.ID, err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return err
	}
	l.log.WithField("count", len(txs)).Debug("transactions saved")
	return nil
}

// DeleteTransaction removes one transaction.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Purge removes the profile and the whole ledger.
func (l *Ledger) Purge(ctx context.Context) error {
	dbtx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	for _, q := range []string{"DELETE FROM transactions", "DELETE FROM profile"} {
		if _, err := dbtx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("purging ledger: %w", err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return err
	}
	l.log.Info("ledger purged")
	return nil
}

// TransactionCount returns the number of stored transactions.
func (l *Ledger) TransactionCount(ctx context.Context) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (model.Transaction, error) {
	var (
		t        model.Transaction
		category string
		isFixed  int
		ms       int64
	)
	if err := r.Scan(&t.ID, &t.Amount, &category, &isFixed, &ms, &t.Note); err != nil {
		return model.Transaction{}, err
	}
	t.IsFixed = isFixed != 0
	cat, err := model.StoredCategory(category, t.IsFixed)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	t.Category = cat
	t.Timestamp = time.UnixMilli(ms)
	return t, nil
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
