package quote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ScrapeProvider is a fallback that pulls the same facts off the statistics
// page of stockanalysis.com when the JSON API is unavailable. The page lays
// data out as label/value table rows, so the scrape keys on row labels rather
// than markup positions.
type ScrapeProvider struct {
	Client  *http.Client
	BaseURL string
}

func NewScrapeProvider() *ScrapeProvider {
	return &ScrapeProvider{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: "https://stockanalysis.com",
	}
}

func (p *ScrapeProvider) Name() string { return "scrape" }

func (p *ScrapeProvider) Fetch(ctx context.Context, ticker string) (*Snapshot, error) {
	u := fmt.Sprintf("%s/stocks/%s/statistics/", p.BaseURL, strings.ToLower(ticker))
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Provider: "scrape", StatusCode: resp.StatusCode, Message: resp.Status}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape parse: %w", err)
	}

	snap := &Snapshot{Ticker: strings.ToUpper(ticker), Currency: "USD"}
	snap.Name = strings.TrimSpace(doc.Find("h1").First().Text())

	// Label/value rows; the same labels appear across page layouts.
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		value := strings.TrimSpace(cells.Last().Text())
		switch {
		case strings.EqualFold(label, "Current Stock Price") || strings.EqualFold(label, "Stock Price"):
			snap.Price, _ = parseScaledNumber(value)
		case strings.EqualFold(label, "Shares Outstanding"):
			snap.Shares, _ = parseScaledNumber(value)
		case strings.EqualFold(label, "Revenue") || strings.EqualFold(label, "Revenue (ttm)"):
			snap.Revenue, _ = parseScaledNumber(value)
		}
	})

	if snap.Price <= 0 || snap.Shares <= 0 || snap.Revenue <= 0 {
		return nil, fmt.Errorf("scrape: incomplete statistics for %s (price=%g shares=%g revenue=%g)",
			ticker, snap.Price, snap.Shares, snap.Revenue)
	}
	return snap, nil
}

// parseScaledNumber reads human-formatted figures like "1.23B", "$45.67",
// "12,345" or "345.6M" into a plain float.
func parseScaledNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" || strings.EqualFold(s, "n/a") {
		return 0, fmt.Errorf("no value")
	}

	scale := 1.0
	switch {
	case strings.HasSuffix(s, "T"):
		scale, s = 1e12, strings.TrimSuffix(s, "T")
	case strings.HasSuffix(s, "B"):
		scale, s = 1e9, strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "M"):
		scale, s = 1e6, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "K"):
		scale, s = 1e3, strings.TrimSuffix(s, "K")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return v * scale, nil
}
