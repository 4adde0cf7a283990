package dcf

import "math"

// The reverse solver answers "what would have to be true for the market price
// to equal fair value" one lever at a time. Each solve holds the other two
// assumption dimensions at the caller's original values, so the three answers
// are independent what-ifs, not a mutually consistent scenario.
//
// The objective |fairValue(x) − price| is V-shaped and not differentiable at
// its zero, so a derivative-free Brent minimization (golden section plus
// parabolic interpolation over an expanded downhill bracket) is used. None of
// the probed candidates mutate shared state; the three solves are safe to run
// concurrently if a caller wants to.

const (
	solveTol     = 1e-12
	solveMaxIter = 250

	// A reverse solve counts as converged when the remaining price gap is
	// negligible at corporate-finance magnitudes.
	residualTol = 1e-6
)

// SolveOutcome is the result of one reverse solve. Value is the solved lever
// as an unrounded fraction, Percent the reporting form rounded to 2 decimals;
// both are meaningful only when Converged.
type SolveOutcome struct {
	Value      float64 `json:"value"`
	Percent    float64 `json:"percent"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"`
}

// SolveRequiredGrowth finds the uniform revenue growth rate that makes fair
// value reproduce the current price, with margin and rates held fixed.
func SolveRequiredGrowth(a Assumptions, f MarketFacts) (SolveOutcome, error) {
	if err := a.Validate(); err != nil {
		return SolveOutcome{}, err
	}
	if err := f.Validate(); err != nil {
		return SolveOutcome{}, err
	}
	objective := func(x float64) float64 {
		probe := a
		probe.RevenueGrowth = Uniform(x)
		return math.Abs(fairValue(probe, f) - f.Price)
	}
	return finishSolve("revenue growth", objective, f.Price)
}

// SolveRequiredMargin finds the uniform FCF margin that reproduces the current
// price, with growth and rates held fixed.
func SolveRequiredMargin(a Assumptions, f MarketFacts) (SolveOutcome, error) {
	if err := a.Validate(); err != nil {
		return SolveOutcome{}, err
	}
	if err := f.Validate(); err != nil {
		return SolveOutcome{}, err
	}
	objective := func(x float64) float64 {
		probe := a
		probe.FCFMargin = Uniform(x)
		return math.Abs(fairValue(probe, f) - f.Price)
	}
	return finishSolve("fcf margin", objective, f.Price)
}

// SolveRequiredDiscountRate finds the discount rate (annualized return) that
// reproduces the current price, with growth, margin and terminal growth held
// fixed. Candidates at or below the terminal growth floor would hit the
// undefined region of the Gordon formula, so the objective maps them to a
// graded finite penalty that steers the search back above the floor.
func SolveRequiredDiscountRate(a Assumptions, f MarketFacts) (SolveOutcome, error) {
	if err := a.Validate(); err != nil {
		return SolveOutcome{}, err
	}
	if err := f.Validate(); err != nil {
		return SolveOutcome{}, err
	}
	floor := a.TerminalGrowth + 1e-6
	objective := func(x float64) float64 {
		if x <= floor {
			return 1e12 * (1 + floor - x)
		}
		probe := a
		probe.DiscountRate = x
		return math.Abs(fairValue(probe, f) - f.Price)
	}
	return finishSolve("discount rate", objective, f.Price)
}

func finishSolve(lever string, objective func(float64) float64, price float64) (SolveOutcome, error) {
	x, residual, iters := brentMinimize(objective, 0, 1)
	out := SolveOutcome{
		Value:      x,
		Percent:    round2(100 * x),
		Converged:  residual <= residualTol*math.Max(1, price),
		Iterations: iters,
		Residual:   residual,
	}
	if !out.Converged {
		return out, &NonConvergenceError{Lever: lever, Residual: residual}
	}
	return out, nil
}

// bracket walks downhill from the initial pair (a, b) with golden-ratio step
// expansion until it finds a triple with f(b) below both ends. Standard
// minimum-bracketing ahead of Brent's method; the downhill direction may be
// negative, so a > b > c is a valid bracket too.
func bracket(f func(float64) float64, xa, xb float64) (a, b, c, fa, fb, fc float64) {
	const gold = 1.618034
	a, b = xa, xb
	fa, fb = f(a), f(b)
	if fa < fb {
		a, b = b, a
		fa, fb = fb, fa
	}
	c = b + gold*(b-a)
	fc = f(c)
	for iter := 0; fc < fb && iter < 500; iter++ {
		a, fa = b, fb
		b, fb = c, fc
		c = b + gold*(b-a)
		fc = f(c)
	}
	return a, b, c, fa, fb, fc
}

// brentMinimize locates the minimum of f starting from the bracket seeds
// (xa, xb) and returns the minimizer, its objective value, and the iteration
// count. Brent's method: parabolic interpolation where it helps, golden-section
// bisection where it does not.
func brentMinimize(f func(float64) float64, xa, xb float64) (xmin, fmin float64, iterations int) {
	const cgold = 0.3819660

	a, b, c, _, fb, _ := bracket(f, xa, xb)
	lo, hi := math.Min(a, c), math.Max(a, c)

	x, w, v := b, b, b
	fx, fw, fv := fb, fb, fb
	var d, e float64

	for iter := 0; iter < solveMaxIter; iter++ {
		iterations = iter + 1
		mid := 0.5 * (lo + hi)
		tol1 := solveTol*math.Abs(x) + 1e-11
		tol2 := 2 * tol1
		if math.Abs(x-mid) <= tol2-0.5*(hi-lo) {
			break
		}

		useGolden := true
		if math.Abs(e) > tol1 {
			// Trial parabolic fit through x, w, v.
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			eTmp := e
			e = d
			if math.Abs(p) < math.Abs(0.5*q*eTmp) && p > q*(lo-x) && p < q*(hi-x) {
				d = p / q
				u := x + d
				if u-lo < tol2 || hi-u < tol2 {
					d = math.Copysign(tol1, mid-x)
				}
				useGolden = false
			}
		}
		if useGolden {
			if x >= mid {
				e = lo - x
			} else {
				e = hi - x
			}
			d = cgold * e
		}

		var u float64
		if math.Abs(d) >= tol1 {
			u = x + d
		} else {
			u = x + math.Copysign(tol1, d)
		}
		fu := f(u)

		if fu <= fx {
			if u >= x {
				lo = x
			} else {
				hi = x
			}
			v, w, x = w, x, u
			fv, fw, fx = fw, fx, fu
		} else {
			if u < x {
				lo = u
			} else {
				hi = u
			}
			if fu <= fw || w == x {
				v, w = w, u
				fv, fw = fw, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}
	return x, fx, iterations
}
