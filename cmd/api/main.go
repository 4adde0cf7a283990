package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	apiadvisor "fairvalue/pkg/api/advisor"
	apiquote "fairvalue/pkg/api/quote"
	apivaluation "fairvalue/pkg/api/valuation"
	"fairvalue/pkg/core/agent"
	"fairvalue/pkg/core/quote"
	"fairvalue/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// LLM provider config for the assumption advisor
	var agentCfg agent.Config
	configData, err := os.ReadFile("config/models.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to read config/models.yaml: %v\n", err)
		fmt.Println("  Falling back to default provider (gemini)")
	} else if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse config/models.yaml: %v\n", err)
	}
	agentMgr := agent.NewManager(agentCfg)

	// Valuation history store: Postgres when configured, local files otherwise
	var repo *store.ValuationRepo
	if err := store.InitDB(context.Background()); err != nil {
		fmt.Printf("[WARNING] Database unavailable (%v), using file store\n", err)
		repo = store.NewValuationRepo(nil, "")
	} else {
		repo = store.NewValuationRepo(store.GetPool(), "")
		defer store.Close()
	}

	provider := quote.NewYahooProvider(os.Getenv("HTTP_PROXY"))

	// Valuation endpoints
	apivaluation.InitHandler(provider, repo)
	http.HandleFunc("/api/valuation", apivaluation.HandleValuation)
	http.HandleFunc("/api/valuation/report", apivaluation.HandleValuationReport)

	// Quote endpoint
	apiquote.InitHandler(provider)
	http.HandleFunc("/api/quote", apiquote.HandleQuote)

	// Assumption advisor endpoint
	apiadvisor.InitHandler(agentMgr, provider)
	http.HandleFunc("/api/advisor/suggest", apiadvisor.HandleSuggest)
	http.HandleFunc("/api/advisor/context", apiadvisor.HandleContext)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/valuation")
	fmt.Println("  - POST /api/valuation/report  (markdown)")
	fmt.Println("  - GET  /api/quote?ticker=XXXX")
	fmt.Println("  - POST /api/advisor/suggest")
	fmt.Println("  - GET  /api/advisor/context?ticker=XXXX")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
