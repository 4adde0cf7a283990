package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	coreadvisor "fairvalue/pkg/core/advisor"
	"fairvalue/pkg/core/agent"
	"fairvalue/pkg/core/quote"
)

var adv *coreadvisor.Advisor
var provider quote.Provider

func InitHandler(mgr *agent.Manager, p quote.Provider) {
	adv = coreadvisor.New(mgr)
	provider = p
	if provider == nil {
		provider = quote.NewYahooProvider("")
	}
}

type suggestRequest struct {
	Ticker string `json:"ticker"`
	Years  int    `json:"years"`
}

// HandleSuggest fetches the ticker's trend history and asks the configured
// LLM for assumption suggestions.
func HandleSuggest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}
	if req.Years == 0 {
		req.Years = 7
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	snap, err := provider.Fetch(ctx, req.Ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	suggestion, err := adv.Suggest(ctx, snap, req.Years)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggestion)
}

// HandleContext returns a short search-grounded commentary for a ticker. The
// snapshot fetch supplies the company name so the search query is unambiguous.
func HandleContext(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		http.Error(w, "ticker query parameter is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	snap, err := provider.Fetch(ctx, ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	commentary, err := adv.MarketContext(ctx, snap.Ticker, snap.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"ticker":  snap.Ticker,
		"context": commentary,
	})
}
