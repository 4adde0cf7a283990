package store

import (
	"context"
	"testing"
	"time"

	"fairvalue/pkg/core/dcf"
)

func TestValuationRepoFileFallback(t *testing.T) {
	repo := NewValuationRepo(nil, t.TempDir())
	res := &dcf.Result{FairValuePerShare: 42.5, ImpliedCAGRPct: 8.00, UpDownsidePct: 21.43}

	id, err := repo.Save(context.Background(), "run-1", "intc", 35.0, res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty record id")
	}

	rec, err := repo.LatestByTicker(context.Background(), "INTC")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record, got nil")
	}
	if rec.Ticker != "INTC" || rec.CurrentPrice != 35.0 {
		t.Errorf("bad record: %+v", rec)
	}
	if rec.Result == nil || rec.Result.FairValuePerShare != 42.5 {
		t.Errorf("bad stored result: %+v", rec.Result)
	}
}

func TestValuationRepoLatestWins(t *testing.T) {
	repo := NewValuationRepo(nil, t.TempDir())
	ctx := context.Background()

	if _, err := repo.Save(ctx, "", "AAPL", 100, &dcf.Result{FairValuePerShare: 90}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond) // distinct CreatedAt timestamps
	if _, err := repo.Save(ctx, "", "AAPL", 110, &dcf.Result{FairValuePerShare: 95}); err != nil {
		t.Fatal(err)
	}

	rec, err := repo.LatestByTicker(ctx, "aapl")
	if err != nil || rec == nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if rec.CurrentPrice != 110 {
		t.Errorf("expected latest record (price 110), got %+v", rec)
	}
}

func TestValuationRepoMiss(t *testing.T) {
	repo := NewValuationRepo(nil, t.TempDir())
	rec, err := repo.LatestByTicker(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("miss should not error: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil on miss, got %+v", rec)
	}
}
