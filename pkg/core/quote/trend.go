package quote

import (
	"fmt"
	"math"
	"strings"
)

// TrendPoint is one trailing-window observation, e.g. the annualized revenue
// growth over the last 3 years. Valid is false when the history is too short
// or contains non-finite entries.
type TrendPoint struct {
	WindowYears int
	Value       float64
	Valid       bool
}

// AnnualizedRates computes trailing compounded growth rates from an annual
// series ordered newest first: one point per window from the longest the
// history supports down to 1 year.
//
// FORMULA: rate_w = (latest / value_w_years_ago)^(1/w) − 1
func AnnualizedRates(history []float64) []TrendPoint {
	if len(history) < 2 {
		return nil
	}
	points := make([]TrendPoint, 0, len(history)-1)
	latest := history[0]
	for w := len(history) - 1; w >= 1; w-- {
		base := history[w]
		p := TrendPoint{WindowYears: w}
		if isFinite(latest) && isFinite(base) && base != 0 && latest/base > 0 {
			p.Value = math.Pow(latest/base, 1/float64(w)) - 1
			p.Valid = true
		}
		points = append(points, p)
	}
	return points
}

// Margins divides two newest-first series element-wise (FCF over revenue),
// returned oldest first to line up with AnnualizedRates windows.
func Margins(revenue, fcf []float64) []TrendPoint {
	n := len(revenue)
	if len(fcf) < n {
		n = len(fcf)
	}
	if n < 2 {
		return nil
	}
	points := make([]TrendPoint, 0, n-1)
	for i := n - 2; i >= 0; i-- {
		p := TrendPoint{WindowYears: i + 1}
		if isFinite(revenue[i]) && isFinite(fcf[i]) && revenue[i] != 0 {
			p.Value = fcf[i] / revenue[i]
			p.Valid = true
		}
		points = append(points, p)
	}
	return points
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// TrendTable renders the historical context block shown alongside a valuation:
// revenue growth, dilution/buybacks and FCF margins over trailing windows.
func TrendTable(s *Snapshot) string {
	var b strings.Builder
	title := s.Name
	if title == "" {
		title = s.Ticker
	}
	if s.Currency != "" {
		title = fmt.Sprintf("%s (%s)", title, s.Currency)
	}
	fmt.Fprintf(&b, "%-28s %10s %10s %10s\n", title, "3 Years", "2 Years", "1 Year")
	writeTrendRow(&b, "Revenue Growth", AnnualizedRates(s.RevenueHistory))
	writeTrendRow(&b, "Dilution(+)/Buybacks(-)", AnnualizedRates(s.SharesHistory))
	writeTrendRow(&b, "FCF Margins", Margins(s.RevenueHistory, s.FCFHistory))
	return b.String()
}

func writeTrendRow(b *strings.Builder, label string, points []TrendPoint) {
	cells := map[int]string{1: "-", 2: "-", 3: "-"}
	for _, p := range points {
		if p.Valid && p.WindowYears >= 1 && p.WindowYears <= 3 {
			cells[p.WindowYears] = fmt.Sprintf("%.2f%%", p.Value*100)
		}
	}
	fmt.Fprintf(b, "%-28s %10s %10s %10s\n", label, cells[3], cells[2], cells[1])
}
