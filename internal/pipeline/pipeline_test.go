package pipeline

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/logging"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/source"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/store"
)

func writeBackup(t *testing.T, path string, p *model.Profile, txs ...model.Transaction) {
	t.Helper()
	if err := source.WriteFile(path, p, txs, time.Now()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestImport_MergesLaterFilesOver(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.Local)
	shared := model.NewTransaction(100, model.Food, false, ts, "first")
	other := model.NewTransaction(50, model.Health, false, ts, "")

	edited := shared
	edited.Amount = 120
	edited.Note = "second"

	first := filepath.Join(dir, "1.json")
	second := filepath.Join(dir, "2.json")
	writeBackup(t, first, &model.Profile{Name: "old", MonthlyIncome: 1000}, shared, other)
	writeBackup(t, second, &model.Profile{Name: "new", MonthlyIncome: 2000}, edited)

	var calls atomic.Int64
	res, err := Import(context.Background(), []string{first, second, filepath.Join(dir, "missing.json")}, 2,
		func(current, total int) {
			calls.Add(1)
			if total != 3 {
				t.Errorf("progress total = %d, want 3", total)
			}
		})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("progress called %d times, want 3", calls.Load())
	}
	if res.ParsedFiles != 2 || res.FileErrors != 1 {
		t.Errorf("parsed %d, file errors %d; want 2 and 1", res.ParsedFiles, res.FileErrors)
	}
	if res.Duplicates != 1 || len(res.Transactions) != 2 {
		t.Fatalf("duplicates %d, transactions %d; want 1 and 2", res.Duplicates, len(res.Transactions))
	}
	if res.Transactions[0].Amount != 120 || res.Transactions[0].Note != "second" {
		t.Errorf("merged = %+v, want the later edit", res.Transactions[0])
	}
	if res.Profile == nil || res.Profile.Name != "new" {
		t.Errorf("Profile = %+v, want the later profile", res.Profile)
	}
}

func TestApply_KeepsExistingProfile(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	_ = repo.SaveProfile(ctx, model.Profile{Name: "kept", MonthlyIncome: 10})

	res := &ImportResult{
		Profile:      &model.Profile{Name: "imported"},
		Transactions: []model.Transaction{model.NewTransaction(5, model.Food, false, time.Now(), "")},
	}
	if err := Apply(ctx, repo, res, false, logging.Discard()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	l, err := LoadLedger(ctx, repo)
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if l.Profile.Name != "kept" || len(l.Transactions) != 1 {
		t.Errorf("ledger = %+v", l)
	}

	if err := Apply(ctx, repo, res, true, logging.Discard()); err != nil {
		t.Fatalf("Apply overwrite: %v", err)
	}
	l, _ = LoadLedger(ctx, repo)
	if l.Profile.Name != "imported" {
		t.Errorf("Profile.Name = %q, want imported", l.Profile.Name)
	}
}

func TestLoadLedger_NoProfile(t *testing.T) {
	l, err := LoadLedger(context.Background(), store.NewMemory())
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if l.HasProfile {
		t.Error("HasProfile = true on an empty store")
	}
	snap := l.Snapshot(time.Date(2025, time.June, 15, 9, 0, 0, 0, time.Local))
	if snap.Budget.DaysOfRunway != model.UnboundedRunway {
		t.Errorf("DaysOfRunway = %d, want sentinel", snap.Budget.DaysOfRunway)
	}
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	writeBackup(t, filepath.Join(dir, "a.json"), nil)
	single := filepath.Join(t.TempDir(), "b.json")
	writeBackup(t, single, nil)

	paths, err := ResolvePaths([]string{dir, single})
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	if len(paths) != 2 || paths[1] != single {
		t.Errorf("ResolvePaths = %v", paths)
	}
	if _, err := ResolvePaths([]string{filepath.Join(dir, "nope")}); err == nil {
		t.Error("ResolvePaths accepted a missing path")
	}
}
