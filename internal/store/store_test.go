package store

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "data", "ledger.db"), quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func repos(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"sqlite": openLedger(t),
		"memory": NewMemory(),
	}
}

func at(day int, hour int) time.Time {
	return time.Date(2025, time.June, day, hour, 0, 0, 0, time.Local)
}

func TestRepository_ProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.LoadProfile(ctx); !errors.Is(err, ErrNoProfile) {
				t.Fatalf("LoadProfile on empty store = %v, want ErrNoProfile", err)
			}
			want := model.Profile{
				Name:                      "Asha",
				MonthlyIncome:             60000,
				FixedCosts:                20000,
				YearlySavingsGoal:         180000,
				TargetMonthlyContribution: 15000,
				SavingsRatio:              0.25,
				RiskAppetite:              model.RiskMedium,
			}
			if err := repo.SaveProfile(ctx, want); err != nil {
				t.Fatalf("SaveProfile: %v", err)
			}
			got, err := repo.LoadProfile(ctx)
			if err != nil {
				t.Fatalf("LoadProfile: %v", err)
			}
			if got != want {
				t.Errorf("LoadProfile = %+v, want %+v", got, want)
			}
		})
	}
}

func TestRepository_TransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			old := model.NewTransaction(120, model.Food, false, at(1, 9), "lunch")
			mid := model.NewTransaction(12000, model.FixedBill("Room Rent"), true, at(2, 9), model.BulkFixedNote)
			latest := model.NewTransaction(45.5, model.Transport, false, at(3, 18), "")
			if err := repo.SaveTransactions(ctx, []model.Transaction{mid, old, latest}); err != nil {
				t.Fatalf("SaveTransactions: %v", err)
			}

			txs, err := repo.ListTransactions(ctx)
			if err != nil {
				t.Fatalf("ListTransactions: %v", err)
			}
			if len(txs) != 3 {
				t.Fatalf("got %d transactions, want 3", len(txs))
			}
			if txs[0].ID != latest.ID || txs[2].ID != old.ID {
				t.Errorf("order = %s, %s, %s; want newest first", txs[0].Note, txs[1].Note, txs[2].Note)
			}
			rent := txs[1]
			if !rent.IsFixed || !rent.Category.IsFixedBill() || rent.Category.Name() != "Room Rent" {
				t.Errorf("fixed bill = %+v, want fixed Room Rent", rent)
			}
			if !rent.Timestamp.Equal(mid.Timestamp) {
				t.Errorf("timestamp = %v, want %v", rent.Timestamp, mid.Timestamp)
			}
		})
	}
}

func TestRepository_EditKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			orig := model.NewTransaction(300, model.Shopping, false, at(5, 12), "shoes")
			if err := repo.SaveTransaction(ctx, orig); err != nil {
				t.Fatalf("SaveTransaction: %v", err)
			}
			edited := orig
			edited.Amount = 250
			edited.Category = model.Entertainment
			edited.Note = "concert"
			if err := repo.SaveTransaction(ctx, edited); err != nil {
				t.Fatalf("SaveTransaction (edit): %v", err)
			}

			txs, _ := repo.ListTransactions(ctx)
			if len(txs) != 1 {
				t.Fatalf("got %d transactions after edit, want 1", len(txs))
			}
			got, err := repo.GetTransaction(ctx, orig.ID)
			if err != nil {
				t.Fatalf("GetTransaction: %v", err)
			}
			if got.Amount != 250 || got.Category != model.Entertainment || got.Note != "concert" {
				t.Errorf("edited = %+v", got)
			}
		})
	}
}

func TestRepository_FixedBillKeepsLabelKind(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			bill := model.NewTransaction(800, model.FixedBill("Transport"), true, at(3, 9), "")
			other := model.NewTransaction(500, model.FixedBill("other"), true, at(3, 9), model.BulkFixedNote)
			spend := model.NewTransaction(200, model.Transport, false, at(4, 9), "")
			if err := repo.SaveTransactions(ctx, []model.Transaction{bill, other, spend}); err != nil {
				t.Fatalf("SaveTransactions: %v", err)
			}

			for _, want := range []model.Transaction{bill, other, spend} {
				got, err := repo.GetTransaction(ctx, want.ID)
				if err != nil {
					t.Fatalf("GetTransaction(%.0f): %v", want.Amount, err)
				}
				if got.Category != want.Category || got.IsFixed != want.IsFixed {
					t.Errorf("amount %.0f: category %q fixed=%v (bill label %v), want %q fixed=%v",
						want.Amount, got.Category, got.IsFixed, got.Category.IsFixedBill(), want.Category, want.IsFixed)
				}
			}

			txs, err := repo.ListTransactions(ctx)
			if err != nil {
				t.Fatalf("ListTransactions: %v", err)
			}
			for _, tx := range txs {
				if tx.IsFixed != tx.Category.IsFixedBill() {
					t.Errorf("%s: IsFixed=%v but IsFixedBill=%v", tx.Category, tx.IsFixed, tx.Category.IsFixedBill())
				}
			}
		})
	}
}

func TestRepository_RejectsInvalidBatch(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			good := model.NewTransaction(10, model.Food, false, at(1, 9), "")
			bad := model.NewTransaction(0, model.Food, false, at(1, 9), "")
			err := repo.SaveTransactions(ctx, []model.Transaction{good, bad})
			if !errors.Is(err, model.ErrInvalidAmount) {
				t.Fatalf("SaveTransactions = %v, want ErrInvalidAmount", err)
			}
			txs, _ := repo.ListTransactions(ctx)
			if len(txs) != 0 {
				t.Errorf("got %d transactions, want none written", len(txs))
			}
		})
	}
}

func TestRepository_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			a := model.NewTransaction(10, model.Food, false, at(1, 9), "")
			b := model.NewTransaction(20, model.Health, false, at(2, 9), "")
			_ = repo.SaveTransactions(ctx, []model.Transaction{a, b})
			_ = repo.SaveProfile(ctx, model.Profile{MonthlyIncome: 1000})

			if err := repo.DeleteTransaction(ctx, a.ID); err != nil {
				t.Fatalf("DeleteTransaction: %v", err)
			}
			if err := repo.DeleteTransaction(ctx, a.ID); !errors.Is(err, ErrNotFound) {
				t.Errorf("second DeleteTransaction = %v, want ErrNotFound", err)
			}
			if _, err := repo.GetTransaction(ctx, a.ID); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetTransaction = %v, want ErrNotFound", err)
			}

			if err := repo.Purge(ctx); err != nil {
				t.Fatalf("Purge: %v", err)
			}
			txs, _ := repo.ListTransactions(ctx)
			if len(txs) != 0 {
				t.Errorf("got %d transactions after purge, want 0", len(txs))
			}
			if _, err := repo.LoadProfile(ctx); !errors.Is(err, ErrNoProfile) {
				t.Errorf("LoadProfile after purge = %v, want ErrNoProfile", err)
			}
		})
	}
}

func TestOpen_ReopensExistingLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := Open(path, quietLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tx := model.NewTransaction(99, model.Transport, false, at(4, 8), "")
	if err := l.SaveTransaction(context.Background(), tx); err != nil {
		t.Fatalf("SaveTransaction: %v", err)
	}
	_ = l.Close()

	l, err = Open(path, quietLogger())
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer func() { _ = l.Close() }()
	n, err := l.TransactionCount(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("TransactionCount = %d, %v; want 1", n, err)
	}
}
