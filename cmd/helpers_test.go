package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/model"
	"github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/internal/store"
)

func TestEntryTime(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, time.June, 16, 21, 30, 5, 0, loc)

	got, err := entryTime("", now)
	if err != nil || !got.Equal(now) {
		t.Errorf("blank date = %v, %v; want now", got, err)
	}

	got, err = entryTime("2024-06-10", now)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.June, 10, 21, 30, 5, 0, loc)
	if !got.Equal(want) {
		t.Errorf("entryTime = %v, want %v", got, want)
	}

	if _, err := entryTime("2024-06-17", now); !errors.Is(err, model.ErrFutureDated) {
		t.Errorf("tomorrow: err = %v, want ErrFutureDated", err)
	}
	if _, err := entryTime("16/06/2024", now); err == nil {
		t.Error("malformed date should fail")
	}
}

func TestEvalNow_AsOf(t *testing.T) {
	defer func() { flagAsOf = "" }()

	flagAsOf = "2024-02-29"
	got, err := evalNow()
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 29 || got.Hour() != 23 {
		t.Errorf("evalNow = %v, want end of 29 Feb 2024", got)
	}

	flagAsOf = "yesterday"
	if _, err := evalNow(); err == nil {
		t.Error("invalid --as-of should fail")
	}
}

func TestResolveID(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	at := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	txs := []model.Transaction{
		{ID: "abc123", Amount: 10, Category: model.Food, Timestamp: at},
		{ID: "abd456", Amount: 20, Category: model.Food, Timestamp: at},
	}
	if err := repo.SaveTransactions(ctx, txs); err != nil {
		t.Fatal(err)
	}

	tx, err := resolveID(ctx, repo, "abc")
	if err != nil || tx.ID != "abc123" {
		t.Errorf("resolveID(abc) = %v, %v", tx.ID, err)
	}
	if _, err := resolveID(ctx, repo, "ab"); err == nil {
		t.Error("ambiguous prefix should fail")
	}
	if _, err := resolveID(ctx, repo, "zzz"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
	if tx, err := resolveID(ctx, repo, "abd456"); err != nil || tx.Amount != 20 {
		t.Errorf("exact id = %+v, %v", tx, err)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0f8c2a9e-1111-2222"); got != "0f8c2a9e" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}
