// batch runs the DCF calculator over a watchlist of stocks and writes the
// answers to a timestamped results CSV.
//
// Generate an input sheet from a ticker list, fill in the estimates, run it:
//
//	batch -file dow30.txt -gen
//	batch -file dow30.csv
//	batch -file watch.hjson -years 7 -rrr 10 -tgr 2.5
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fairvalue/pkg/core/dcf"
	"fairvalue/pkg/core/quote"
	"fairvalue/pkg/core/report"
	"fairvalue/pkg/core/store"
	"fairvalue/pkg/core/watchlist"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// fetchDelay keeps batch runs under the data source's informal rate limits.
const fetchDelay = 2500 * time.Millisecond

func main() {
	file := flag.String("file", "", "Watchlist file (.csv or .hjson), or a ticker list with -gen")
	gen := flag.Bool("gen", false, "Generate an input CSV template from a ticker list file")
	years := flag.Int("years", 7, "Number of years to run this analysis for")
	rrr := flag.Float64("rrr", 10.0, "Required rate of return %")
	tgr := flag.Float64("tgr", 2.5, "Terminal growth rate %")
	outDir := flag.String("out", "results", "Directory for the results CSV")
	flag.Parse()

	godotenv.Load()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *gen {
		if err := generateTemplate(*file); err != nil {
			log.Fatalf("template generation failed: %v", err)
		}
		return
	}

	entries, err := watchlist.Load(*file)
	if err != nil {
		log.Fatalf("watchlist load failed: %v", err)
	}

	ctx := context.Background()
	runID := uuid.NewString()

	// Persist runs when a database is configured; skip silently otherwise.
	var repo *store.ValuationRepo
	if err := store.InitDB(ctx); err == nil {
		repo = store.NewValuationRepo(store.GetPool(), "")
		defer store.Close()
	}

	provider := quote.NewYahooProvider(os.Getenv("HTTP_PROXY"))
	rows := make([]report.BatchRow, 0, len(entries))
	for i, entry := range entries {
		if i > 0 {
			time.Sleep(fetchDelay)
		}
		rows = append(rows, valueOne(ctx, provider, repo, runID, entry, *years, *rrr, *tgr))
	}

	path, err := report.WriteBatchCSV(*outDir, filepath.Base(*file), rows)
	if err != nil {
		log.Fatalf("results write failed: %v", err)
	}
	fmt.Printf("Wrote %d results to %s (run %s)\n", len(rows), path, runID)
}

func valueOne(ctx context.Context, provider quote.Provider, repo *store.ValuationRepo,
	runID string, entry watchlist.Entry, years int, rrr, tgr float64) report.BatchRow {

	row := report.BatchRow{Ticker: entry.Ticker, AssumedMarginPct: average(entry.FCFMarginPct)}

	snap, err := provider.Fetch(ctx, entry.Ticker)
	if err != nil {
		fmt.Printf("[WARNING] %s: quote fetch failed: %v\n", entry.Ticker, err)
		row.Err = err
		return row
	}

	assumptions := dcf.Assumptions{
		RevenueGrowth:  toSchedule(entry.RevGrowthPct),
		FCFMargin:      toSchedule(entry.FCFMarginPct),
		Years:          years,
		DiscountRate:   rrr / 100,
		TerminalGrowth: tgr / 100,
	}
	result, err := dcf.Valuate(assumptions, snap.MarketFacts())
	if err != nil {
		fmt.Printf("[WARNING] %s: valuation failed: %v\n", entry.Ticker, err)
		row.Err = err
		return row
	}

	row.Result = result
	row.CurrentPrice = snap.Price
	fmt.Printf("Analyzed %s: fair value $%.2f vs price $%.2f\n",
		entry.Ticker, result.FairValuePerShare, snap.Price)

	if repo != nil {
		if _, err := repo.Save(ctx, runID, entry.Ticker, snap.Price, result); err != nil {
			fmt.Printf("[WARNING] %s: persist failed: %v\n", entry.Ticker, err)
		}
	}
	return row
}

// generateTemplate reads one ticker per line and scaffolds the input CSV next
// to the list file.
func generateTemplate(listPath string) error {
	f, err := os.Open(listPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var tickers []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			tickers = append(tickers, line)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(tickers) == 0 {
		return fmt.Errorf("no tickers in %s", listPath)
	}

	out := strings.TrimSuffix(listPath, filepath.Ext(listPath)) + ".csv"
	if err := watchlist.WriteTemplateCSV(out, tickers); err != nil {
		return err
	}
	fmt.Printf("Wrote template %s. Fill in the estimates and run 'batch -file %s'\n", out, out)
	return nil
}

func toSchedule(pcts []float64) dcf.Schedule {
	if len(pcts) == 1 {
		return dcf.Uniform(pcts[0] / 100)
	}
	fractions := make([]float64, len(pcts))
	for i, p := range pcts {
		fractions[i] = p / 100
	}
	return dcf.PerYear(fractions...)
}

func average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
