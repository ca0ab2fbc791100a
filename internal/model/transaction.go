package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned for zero, negative or non-numeric amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrFutureDated is returned when an entry is dated after today.
	ErrFutureDated = errors.New("entry is dated in the future")
)

// BulkFixedNote marks bills recorded through the bulk fixed-bill entry.
const BulkFixedNote = "Bulk Monthly Fixed"

// Transaction is one spending event in the ledger.
type Transaction struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Category  Category  `json:"category"`
	IsFixed   bool      `json:"is_fixed"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// NewTransaction builds a transaction with a fresh identifier. The timestamp
// is truncated to millisecond precision.
func NewTransaction(amount float64, cat Category, isFixed bool, ts time.Time, note string) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Amount:    amount,
		Category:  cat,
		IsFixed:   isFixed,
		Timestamp: ts.Truncate(time.Millisecond),
		Note:      strings.TrimSpace(note),
	}
}

// Validate checks the ledger invariants of a single transaction.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return errors.New("transaction has no id")
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount <= 0 {
		return fmt.Errorf("transaction %s: %w: %v", t.ID, ErrInvalidAmount, t.Amount)
	}
	if t.Category.IsZero() {
		return fmt.Errorf("transaction %s: %w", t.ID, ErrInvalidCategory)
	}
	if t.Timestamp.IsZero() {
		return fmt.Errorf("transaction %s has no timestamp", t.ID)
	}
	return nil
}

// ParseAmount parses a user-entered amount such as "1,250.50", rounded to
// two decimal places. Only positive amounts are accepted.
func ParseAmount(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, s)
	}
	return d.InexactFloat64(), nil
}

// EndOfDay returns the last instant of t's local calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Millisecond)
}

// CheckNotFuture rejects timestamps after the end of now's calendar day.
// Backdating is allowed.
func CheckNotFuture(ts, now time.Time) error {
	if ts.After(EndOfDay(now)) {
		return fmt.Errorf("%w: %s", ErrFutureDated, ts.Format("2006-01-02"))
	}
	return nil
}
