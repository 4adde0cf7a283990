package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fairvalue/pkg/core/dcf"
	"fairvalue/pkg/core/quote"
	"fairvalue/pkg/core/report"
	"fairvalue/pkg/core/store"
)

var provider quote.Provider
var repo *store.ValuationRepo

// InitHandler wires the package-level collaborators. A nil repo disables
// persistence; a nil provider falls back to Yahoo.
func InitHandler(p quote.Provider, r *store.ValuationRepo) {
	provider = p
	if provider == nil {
		provider = quote.NewYahooProvider("")
	}
	repo = r
}

// ValuationRequest mirrors the CLI inputs. Rates are percents; growth and
// margin take one entry for a uniform rate or one per projected year.
type ValuationRequest struct {
	Ticker       string    `json:"ticker"`
	RevGrowthPct []float64 `json:"rev_growth_pct"`
	FCFMarginPct []float64 `json:"fcf_margin_pct"`
	Years        int       `json:"years"`
	DiscountPct  float64   `json:"discount_rate_pct"`
	TerminalPct  float64   `json:"terminal_growth_pct"`
}

type ValuationResponse struct {
	Snapshot   *quote.Snapshot `json:"snapshot"`
	Result     *dcf.Result     `json:"result"`
	TrendTable string          `json:"trend_table"`
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// buildAssumptions applies the tool-wide defaults (7 years, 10% return,
// 2.5% terminal growth) and converts percents to fractions.
func buildAssumptions(req *ValuationRequest) (dcf.Assumptions, error) {
	if req.Years == 0 {
		req.Years = 7
	}
	if req.DiscountPct == 0 {
		req.DiscountPct = 10.0
	}
	if req.TerminalPct == 0 {
		req.TerminalPct = 2.5
	}
	growth, err := percentSchedule("rev_growth_pct", req.RevGrowthPct)
	if err != nil {
		return dcf.Assumptions{}, err
	}
	margin, err := percentSchedule("fcf_margin_pct", req.FCFMarginPct)
	if err != nil {
		return dcf.Assumptions{}, err
	}
	return dcf.Assumptions{
		RevenueGrowth:  growth,
		FCFMargin:      margin,
		Years:          req.Years,
		DiscountRate:   req.DiscountPct / 100,
		TerminalGrowth: req.TerminalPct / 100,
	}, nil
}

func percentSchedule(field string, pcts []float64) (dcf.Schedule, error) {
	switch len(pcts) {
	case 0:
		return dcf.Schedule{}, fmt.Errorf("%s is required", field)
	case 1:
		return dcf.Uniform(pcts[0] / 100), nil
	default:
		fractions := make([]float64, len(pcts))
		for i, p := range pcts {
			fractions[i] = p / 100
		}
		return dcf.PerYear(fractions...), nil
	}
}

func runValuation(ctx context.Context, req *ValuationRequest) (*ValuationResponse, int, error) {
	if strings.TrimSpace(req.Ticker) == "" {
		return nil, http.StatusBadRequest, fmt.Errorf("ticker is required")
	}
	assumptions, err := buildAssumptions(req)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	snap, err := provider.Fetch(fetchCtx, req.Ticker)
	if err != nil {
		return nil, http.StatusBadGateway, fmt.Errorf("quote fetch failed: %w", err)
	}

	result, err := dcf.Valuate(assumptions, snap.MarketFacts())
	if err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}

	if repo != nil {
		if _, err := repo.Save(ctx, "", snap.Ticker, snap.Price, result); err != nil {
			fmt.Printf("[WARNING] Failed to persist valuation: %v\n", err)
		}
	}
	return &ValuationResponse{
		Snapshot:   snap,
		Result:     result,
		TrendTable: quote.TrendTable(snap),
	}, http.StatusOK, nil
}

// HandleValuation computes a full valuation (forward + three reverse solves)
// for a ticker.
func HandleValuation(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, status, err := runValuation(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleValuationReport renders the same computation as a markdown document.
func HandleValuationReport(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, status, err := runValuation(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	avgMargin := 0.0
	for _, m := range req.FCFMarginPct {
		avgMargin += m
	}
	avgMargin /= float64(len(req.FCFMarginPct))

	md, err := report.Markdown(report.Inputs{
		Ticker:       resp.Snapshot.Ticker,
		Currency:     resp.Snapshot.Currency,
		Years:        req.Years,
		MarginPct:    avgMargin,
		DiscountPct:  req.DiscountPct,
		TerminalPct:  req.TerminalPct,
		CurrentPrice: resp.Snapshot.Price,
	}, resp.Result, resp.TrendTable)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(md))
}
