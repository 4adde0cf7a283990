// fairvalue calculates the intrinsic value of a stock with a discounted free
// cash flow model, and the reverse: the growth rate, FCF margin, or annualized
// return that would justify the current market price.
//
// Usage:
//
//	fairvalue -ticker INTC -growth 12.2 -margin 20
//	fairvalue -ticker INTC -growth 14,12,10,10,8,8,6 -margin 20 -years 7 -rrr 10 -tgr 2.5
//	fairvalue -ticker INTC -growth 12.2 -margin 20 -beta 1.2 -silent
//
// Growth and margin are percents; a comma list supplies one value per year.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"fairvalue/pkg/core/dcf"
	"fairvalue/pkg/core/quote"
	"fairvalue/pkg/core/report"

	"github.com/joho/godotenv"
)

// CAPM fallback parameters for -beta: 10-year treasury yield and the long-run
// market risk premium.
const (
	defaultRiskFree      = 4.3
	defaultMarketPremium = 4.18
)

func main() {
	ticker := flag.String("ticker", "", "Stock ticker (required)")
	growth := flag.String("growth", "", "Revenue growth rate %, single value or per-year comma list (required)")
	margin := flag.String("margin", "", "FCF margin %, single value or per-year comma list (required)")
	years := flag.Int("years", 7, "Number of years to run this analysis for")
	rrr := flag.Float64("rrr", 10.0, "Required rate of return %")
	tgr := flag.Float64("tgr", 2.5, "Terminal growth rate %")
	beta := flag.Float64("beta", 0, "Derive the required return via CAPM from this equity beta instead of -rrr")
	silent := flag.Bool("silent", false, "Suppress the narrative output, print only fair value")
	flag.Parse()

	godotenv.Load()

	if *ticker == "" || *growth == "" || *margin == "" {
		flag.Usage()
		os.Exit(2)
	}

	growthPct, err := parsePercents(*growth)
	if err != nil {
		log.Fatalf("bad -growth: %v", err)
	}
	marginPct, err := parsePercents(*margin)
	if err != nil {
		log.Fatalf("bad -margin: %v", err)
	}

	discountPct := *rrr
	if *beta != 0 {
		discountPct = 100 * dcf.CostOfEquityCAPM(defaultRiskFree/100, *beta, defaultMarketPremium/100)
	}

	assumptions := dcf.Assumptions{
		RevenueGrowth:  toSchedule(growthPct),
		FCFMargin:      toSchedule(marginPct),
		Years:          *years,
		DiscountRate:   discountPct / 100,
		TerminalGrowth: *tgr / 100,
	}

	provider := quote.NewYahooProvider(os.Getenv("HTTP_PROXY"))
	snap, err := provider.Fetch(context.Background(), *ticker)
	if err != nil {
		log.Fatalf("quote fetch failed: %v", err)
	}

	result, err := dcf.Valuate(assumptions, snap.MarketFacts())
	if err != nil {
		log.Fatalf("valuation failed: %v", err)
	}

	if *silent {
		fmt.Printf("%.2f\n", result.FairValuePerShare)
		return
	}

	fmt.Println(quote.TrendTable(snap))
	fmt.Println(report.Text(report.Inputs{
		Ticker:       snap.Ticker,
		Currency:     snap.Currency,
		Years:        *years,
		MarginPct:    average(marginPct),
		DiscountPct:  discountPct,
		TerminalPct:  *tgr,
		CurrentPrice: snap.Price,
	}, result))
}

func parsePercents(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", p)
		}
		out = append(out, v)
	}
	return out, nil
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
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
