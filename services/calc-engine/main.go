// calc-engine is a standalone JSON-in/JSON-out wrapper around the valuation
// engine, for scripting and cross-checking without the data-provider layer.
//
//	calc-engine -mode calculate -data '{"rev_growth":[0.10],"fcf_margin":[0.2],"years":5,"discount_rate":0.10,"terminal_growth":0.025,"revenue":1000,"shares":100,"price":30}'
//	calc-engine -mode check -data '{...}'
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"fairvalue/pkg/core/dcf"
)

type payload struct {
	RevGrowth      []float64 `json:"rev_growth"`
	FCFMargin      []float64 `json:"fcf_margin"`
	Years          int       `json:"years"`
	DiscountRate   float64   `json:"discount_rate"`
	TerminalGrowth float64   `json:"terminal_growth"`
	Revenue        float64   `json:"revenue"`
	Shares         float64   `json:"shares"`
	Price          float64   `json:"price"`
}

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "JSON data payload")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	var data payload
	if err := json.Unmarshal([]byte(*dataStr), &data); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}

	assumptions, facts := data.toEngine()

	switch *mode {
	case "check":
		runChecks(assumptions, facts)
	case "calculate":
		runCalculation(assumptions, facts)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func (p payload) toEngine() (dcf.Assumptions, dcf.MarketFacts) {
	toSchedule := func(vals []float64) dcf.Schedule {
		if len(vals) == 1 {
			return dcf.Uniform(vals[0])
		}
		return dcf.PerYear(vals...)
	}
	a := dcf.Assumptions{
		RevenueGrowth:  toSchedule(p.RevGrowth),
		FCFMargin:      toSchedule(p.FCFMargin),
		Years:          p.Years,
		DiscountRate:   p.DiscountRate,
		TerminalGrowth: p.TerminalGrowth,
	}
	return a, dcf.MarketFacts{Revenue: p.Revenue, Shares: p.Shares, Price: p.Price}
}

func runChecks(a dcf.Assumptions, f dcf.MarketFacts) {
	if err := a.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Success: inputs are valid")
}

func runCalculation(a dcf.Assumptions, f dcf.MarketFacts) {
	result, err := dcf.Valuate(a, f)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
