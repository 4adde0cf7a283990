package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fairvalue/pkg/core/dcf"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ValuationRepo stores completed valuation runs. DB primary, JSON-file
// fallback when no pool is configured, the same hybrid either/or as the
// rest of the tool: a laptop user without Postgres still gets history.
type ValuationRepo struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewValuationRepo creates a repo. With a nil pool and empty dir it defaults
// to .cache/valuations.
func NewValuationRepo(pool *pgxpool.Pool, dir string) *ValuationRepo {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "valuations")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check valuation repo dir: %v\n", err)
		}
	}
	return &ValuationRepo{pool: pool, fileDir: dir}
}

// Record is one persisted valuation run.
type Record struct {
	ID           string      `json:"id"`
	RunID        string      `json:"run_id"` // shared by all tickers of a batch run
	Ticker       string      `json:"ticker"`
	CurrentPrice float64     `json:"current_price"`
	Result       *dcf.Result `json:"result"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Save persists a run under a fresh uuid and returns the record ID. runID may
// be empty for single-ticker runs.
func (r *ValuationRepo) Save(ctx context.Context, runID, ticker string, price float64, res *dcf.Result) (string, error) {
	rec := Record{
		ID:           uuid.NewString(),
		RunID:        runID,
		Ticker:       strings.ToUpper(ticker),
		CurrentPrice: price,
		Result:       res,
		CreatedAt:    time.Now().UTC(),
	}

	if r.pool != nil {
		payload, err := json.Marshal(rec.Result)
		if err != nil {
			return "", fmt.Errorf("marshal result: %w", err)
		}
		query := `
			INSERT INTO valuations (id, run_id, ticker, current_price, result, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := r.pool.Exec(ctx, query,
			rec.ID, rec.RunID, rec.Ticker, rec.CurrentPrice, payload, rec.CreatedAt); err != nil {
			return "", fmt.Errorf("insert valuation: %w", err)
		}
		return rec.ID, nil
	}

	if r.fileDir != "" {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal record: %w", err)
		}
		path := filepath.Join(r.fileDir, rec.ID+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
		return rec.ID, nil
	}
	return "", fmt.Errorf("valuation repo has neither db pool nor file dir")
}

// LatestByTicker returns the most recent run for a ticker, nil on a miss.
func (r *ValuationRepo) LatestByTicker(ctx context.Context, ticker string) (*Record, error) {
	ticker = strings.ToUpper(ticker)

	if r.pool != nil {
		query := `
			SELECT id, run_id, ticker, current_price, result, created_at
			FROM valuations
			WHERE ticker = $1
			ORDER BY created_at DESC
			LIMIT 1
		`
		var rec Record
		var payload []byte
		err := r.pool.QueryRow(ctx, query, ticker).Scan(
			&rec.ID, &rec.RunID, &rec.Ticker, &rec.CurrentPrice, &payload, &rec.CreatedAt)
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("query valuation: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Result); err != nil {
			return nil, fmt.Errorf("unmarshal stored result: %w", err)
		}
		return &rec, nil
	}

	if r.fileDir != "" {
		return r.scanLatest(ticker)
	}
	return nil, nil
}

// scanLatest walks the file dir for the newest record of a ticker. Linear, but
// the local cache is small by construction.
func (r *ValuationRepo) scanLatest(ticker string) (*Record, error) {
	entries, err := os.ReadDir(r.fileDir)
	if err != nil {
		return nil, nil
	}
	var latest *Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.fileDir, e.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		if rec.Ticker != ticker {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			cp := rec
			latest = &cp
		}
	}
	return latest, nil
}
