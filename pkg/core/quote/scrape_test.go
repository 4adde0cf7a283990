package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const statisticsPageFixture = `<html><body>
<h1>Intel Corporation (INTC)</h1>
<table>
  <tr><td>Market Cap</td><td>145.2B</td></tr>
  <tr><td>Shares Outstanding</td><td>4.20B</td></tr>
  <tr><td>Revenue (ttm)</td><td>54.00B</td></tr>
  <tr><td>Current Stock Price</td><td>$34.50</td></tr>
</table>
</body></html>`

func TestScrapeFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stocks/intc/statistics/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(statisticsPageFixture))
	}))
	defer srv.Close()

	p := NewScrapeProvider()
	p.BaseURL = srv.URL

	snap, err := p.Fetch(context.Background(), "INTC")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if snap.Price != 34.50 {
		t.Errorf("expected price 34.50, got %g", snap.Price)
	}
	if snap.Shares != 4.2e9 {
		t.Errorf("expected 4.2B shares, got %g", snap.Shares)
	}
	if snap.Revenue != 54e9 {
		t.Errorf("expected 54B revenue, got %g", snap.Revenue)
	}
	if snap.Name != "Intel Corporation (INTC)" {
		t.Errorf("bad name %q", snap.Name)
	}
}

func TestScrapeFetchIncompletePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><h1>Nothing here</h1></body></html>"))
	}))
	defer srv.Close()

	p := NewScrapeProvider()
	p.BaseURL = srv.URL

	if _, err := p.Fetch(context.Background(), "INTC"); err == nil {
		t.Error("expected error for page without statistics")
	}
}
