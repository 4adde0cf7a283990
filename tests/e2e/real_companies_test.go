package e2e_test

// CompanyInfo carries a fundamentals snapshot frozen from public filings so
// the pipeline tests run without network access. Monetary figures are USD;
// histories run newest first and cover the last four fiscal years.
type CompanyInfo struct {
	Ticker         string
	Name           string
	Industry       string
	Price          float64
	Shares         float64
	Revenue        float64
	RevenueHistory []float64
	FCFHistory     []float64
	SharesHistory  []float64
}

// CompanyUniverse covers a spread of industries and growth profiles: steady
// mega caps, a high-growth name, a declining one, and a low-margin retailer.
var CompanyUniverse = []CompanyInfo{
	{
		Ticker: "AAPL", Name: "Apple Inc.", Industry: "Technology",
		Price: 229.0, Shares: 15.2e9, Revenue: 391.0e9,
		RevenueHistory: []float64{391.0e9, 383.3e9, 394.3e9, 365.8e9},
		FCFHistory:     []float64{108.8e9, 99.6e9, 111.4e9, 92.9e9},
		SharesHistory:  []float64{15.2e9, 15.6e9, 16.0e9, 16.5e9},
	},
	{
		Ticker: "MSFT", Name: "Microsoft Corporation", Industry: "Technology",
		Price: 415.0, Shares: 7.43e9, Revenue: 245.1e9,
		RevenueHistory: []float64{245.1e9, 211.9e9, 198.3e9, 168.1e9},
		FCFHistory:     []float64{74.1e9, 59.5e9, 65.1e9, 56.1e9},
		SharesHistory:  []float64{7.43e9, 7.45e9, 7.50e9, 7.55e9},
	},
	{
		Ticker: "NVDA", Name: "NVIDIA Corporation", Industry: "Technology",
		Price: 135.0, Shares: 24.5e9, Revenue: 130.5e9,
		RevenueHistory: []float64{130.5e9, 60.9e9, 27.0e9, 26.9e9},
		FCFHistory:     []float64{60.9e9, 27.0e9, 3.8e9, 8.1e9},
		SharesHistory:  []float64{24.5e9, 24.6e9, 24.7e9, 24.9e9},
	},
	{
		Ticker: "JNJ", Name: "Johnson & Johnson", Industry: "Healthcare",
		Price: 158.0, Shares: 2.41e9, Revenue: 88.8e9,
		RevenueHistory: []float64{88.8e9, 85.2e9, 79.9e9, 78.7e9},
		FCFHistory:     []float64{20.1e9, 18.3e9, 17.2e9, 19.8e9},
		SharesHistory:  []float64{2.41e9, 2.41e9, 2.60e9, 2.63e9},
	},
	{
		Ticker: "JPM", Name: "JPMorgan Chase & Co.", Industry: "Financial",
		Price: 242.0, Shares: 2.82e9, Revenue: 166.9e9,
		RevenueHistory: []float64{166.9e9, 145.7e9, 122.3e9, 121.6e9},
		FCFHistory:     []float64{52.0e9, 44.1e9, 38.8e9, 40.2e9},
		SharesHistory:  []float64{2.82e9, 2.87e9, 2.94e9, 2.97e9},
	},
	{
		Ticker: "WMT", Name: "Walmart Inc.", Industry: "Retail",
		Price: 92.0, Shares: 8.03e9, Revenue: 681.0e9,
		RevenueHistory: []float64{681.0e9, 648.1e9, 611.3e9, 572.8e9},
		FCFHistory:     []float64{12.7e9, 15.1e9, 12.0e9, 11.1e9},
		SharesHistory:  []float64{8.03e9, 8.05e9, 8.10e9, 8.26e9},
	},
	{
		Ticker: "INTC", Name: "Intel Corporation", Industry: "Technology",
		Price: 24.0, Shares: 4.33e9, Revenue: 53.1e9,
		RevenueHistory: []float64{53.1e9, 54.2e9, 63.1e9, 79.0e9},
		FCFHistory:     []float64{-15.7e9, -14.3e9, -9.4e9, 9.1e9},
		SharesHistory:  []float64{4.33e9, 4.22e9, 4.14e9, 4.07e9},
	},
	{
		Ticker: "XOM", Name: "Exxon Mobil Corporation", Industry: "Energy",
		Price: 118.0, Shares: 4.38e9, Revenue: 339.2e9,
		RevenueHistory: []float64{339.2e9, 334.7e9, 398.7e9, 276.7e9},
		FCFHistory:     []float64{34.4e9, 33.2e9, 58.4e9, 36.1e9},
		SharesHistory:  []float64{4.38e9, 3.96e9, 4.07e9, 4.23e9},
	},
}

// FindCompany returns the fixture for a ticker, or nil when absent.
func FindCompany(ticker string) *CompanyInfo {
	for i := range CompanyUniverse {
		if CompanyUniverse[i].Ticker == ticker {
			return &CompanyUniverse[i]
		}
	}
	return nil
}
