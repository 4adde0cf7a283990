// Package watchlist loads batch-mode input files: which tickers to value and
// the growth/margin estimates to use for each. Two formats are supported:
// the classic CSV sheet and a friendlier Hjson file that allows comments and
// per-year estimate lists.
package watchlist

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fairvalue/pkg/core/utils"
)

// Entry is one ticker's estimates, as percents. A single value means uniform
// across the horizon; multiple values are per-year.
type Entry struct {
	Ticker       string
	RevGrowthPct []float64
	FCFMarginPct []float64
}

var csvHeader = []string{"Stock", "Rev_Growth_Estimate (%)", "FCF_Margin_Estimate (%)"}

// Load reads a watchlist, dispatching on file extension (.csv or .hjson).
func Load(path string) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".hjson", ".json":
		return LoadHJSON(path)
	default:
		return nil, fmt.Errorf("unsupported watchlist format: %s", path)
	}
}

// LoadCSV reads the classic batch sheet: Stock, Rev_Growth_Estimate (%),
// FCF_Margin_Estimate (%). A header row is detected and skipped.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read watchlist csv: %w", err)
	}

	var entries []Entry
	for i, rec := range records {
		if len(rec) < 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(rec))
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "Stock") {
			continue
		}
		growth, err := parsePercentList(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d growth: %w", i+1, err)
		}
		margin, err := parsePercentList(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d margin: %w", i+1, err)
		}
		entries = append(entries, Entry{
			Ticker:       strings.ToUpper(strings.TrimSpace(rec[0])),
			RevGrowthPct: growth,
			FCFMarginPct: margin,
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("watchlist %s has no entries", path)
	}
	return entries, nil
}

// hjson schema; estimates may be a single number or a per-year list.
type hjsonFile struct {
	Stocks []struct {
		Ticker       string      `json:"ticker"`
		RevGrowthPct interface{} `json:"rev_growth_pct"`
		FCFMarginPct interface{} `json:"fcf_margin_pct"`
	} `json:"stocks"`
}

// LoadHJSON reads a hand-written Hjson watchlist.
func LoadHJSON(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	var file hjsonFile
	if err := utils.ParseHJSONToStruct(string(data), &file); err != nil {
		return nil, err
	}

	var entries []Entry
	for i, s := range file.Stocks {
		if s.Ticker == "" {
			return nil, fmt.Errorf("stock %d: missing ticker", i+1)
		}
		growth, err := toFloats(s.RevGrowthPct)
		if err != nil {
			return nil, fmt.Errorf("%s growth: %w", s.Ticker, err)
		}
		margin, err := toFloats(s.FCFMarginPct)
		if err != nil {
			return nil, fmt.Errorf("%s margin: %w", s.Ticker, err)
		}
		entries = append(entries, Entry{
			Ticker:       strings.ToUpper(s.Ticker),
			RevGrowthPct: growth,
			FCFMarginPct: margin,
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("watchlist %s has no entries", path)
	}
	return entries, nil
}

// WriteTemplateCSV scaffolds an input sheet for a ticker list, with estimate
// columns left for the user to fill in.
func WriteTemplateCSV(path string, tickers []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tickers {
		if err := w.Write([]string{strings.ToUpper(strings.TrimSpace(t)), "", ""}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// parsePercentList reads "12.5" or a semicolon/space separated per-year list
// like "12.5;10;8".
func parsePercentList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ';' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty estimate")
	}
	out := make([]float64, 0, len(fields))
	for _, fld := range fields {
		v, err := strconv.ParseFloat(fld, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", fld)
		}
		out = append(out, v)
	}
	return out, nil
}

func toFloats(v interface{}) ([]float64, error) {
	switch t := v.(type) {
	case float64:
		return []float64{t}, nil
	case int:
		return []float64{float64(t)}, nil
	case []interface{}:
		out := make([]float64, 0, len(t))
		for _, e := range t {
			f, ok := e.(float64)
			if !ok {
				return nil, fmt.Errorf("non-numeric entry %v", e)
			}
			out = append(out, f)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("empty estimate list")
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("missing estimate")
	default:
		return nil, fmt.Errorf("unsupported estimate type %T", v)
	}
}
