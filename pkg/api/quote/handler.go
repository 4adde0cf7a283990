package quote

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	corequote "fairvalue/pkg/core/quote"
)

var provider corequote.Provider

func InitHandler(p corequote.Provider) {
	provider = p
	if provider == nil {
		provider = corequote.NewYahooProvider("")
	}
}

// HandleQuote returns the market snapshot for ?ticker=XXXX, including the
// trend table the UI shows next to the assumption inputs.
func HandleQuote(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	snap, err := provider.Fetch(ctx, ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		*corequote.Snapshot
		TrendTable string `json:"trend_table"`
	}{snap, corequote.TrendTable(snap)})
}
