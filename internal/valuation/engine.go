package valuation

import (
	"fmt"
	"math"

	"github.com/quantfold/intrinsic/internal/models"
)

// Params are the valuation policy knobs. They are plain configuration:
// the engine never mutates them and holds no other state.
type Params struct {
	HorizonYears        int
	GrowthClampMin      float64
	GrowthClampMax      float64
	TerminalMultipleCap float64
}

// DefaultParams returns the standard 20-year policy.
func DefaultParams() Params {
	return Params{
		HorizonYears:        20,
		GrowthClampMin:      0.0,
		GrowthClampMax:      0.15,
		TerminalMultipleCap: 25.0,
	}
}

// Engine computes intrinsic valuations from a financial snapshot. All
// methods are pure functions of their arguments and the configured
// params; the engine is safe for concurrent use.
type Engine struct {
	params Params
}

// NewEngine creates an engine with the given policy parameters.
func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

// Params returns the engine's policy parameters.
func (e *Engine) Params() Params {
	return e.params
}

// ComputeDiscountRate derives the discount rate via CAPM:
// riskFreeRate + beta * marketRiskPremium. A resulting rate at or below
// zero is rejected; discounting 20 compounding years with it is
// numerically degenerate.
func (e *Engine) ComputeDiscountRate(riskFreeRate, beta, marketRiskPremium float64) (float64, error) {
	rate := riskFreeRate + beta*marketRiskPremium
	if rate <= 0 {
		return 0, fmt.Errorf("%w: computed discount rate %.4f is not positive", ErrInvalidInput, rate)
	}
	return rate, nil
}

// ComputeGrowthRate derives a compound annual growth rate from the first
// and last observations of the operating cash flow history, then clamps
// it to the configured band. Clamping is reported, not hidden: both the
// raw and clamped values come back along with a flag.
func (e *Engine) ComputeGrowthRate(ocfHistory []float64) (models.GrowthRate, error) {
	if len(ocfHistory) < 2 {
		return models.GrowthRate{}, fmt.Errorf(
			"%w: operating cash flow history too short to compute growth rate (have %d observations, need 2)",
			ErrInsufficientData, len(ocfHistory))
	}

	first := ocfHistory[0]
	last := ocfHistory[len(ocfHistory)-1]
	if first <= 0 {
		return models.GrowthRate{}, fmt.Errorf(
			"%w: earliest operating cash flow %.2f is not positive, growth rate undefined",
			ErrInsufficientData, first)
	}
	if last <= 0 {
		return models.GrowthRate{}, fmt.Errorf(
			"%w: latest operating cash flow %.2f is not positive, growth rate undefined",
			ErrInsufficientData, last)
	}

	years := float64(len(ocfHistory) - 1)
	raw := math.Pow(last/first, 1/years) - 1

	clamped := raw
	if clamped < e.params.GrowthClampMin {
		clamped = e.params.GrowthClampMin
	}
	if clamped > e.params.GrowthClampMax {
		clamped = e.params.GrowthClampMax
	}

	return models.GrowthRate{
		Raw:        raw,
		Clamped:    clamped,
		WasClamped: clamped != raw,
	}, nil
}

// ProjectAndDiscount builds the projected and discounted cash flow
// series for years 1..horizon:
//
//	projected[t] = lastOcf * (1+growthRate)^t
//	discounted[t] = projected[t] / (1+discountRate)^t
//
// Both slices are ordered by year ascending with exactly horizon
// entries. The arithmetic order is fixed so identical inputs reproduce
// identical floating-point outputs.
func (e *Engine) ProjectAndDiscount(lastOcf, growthRate, discountRate float64) (projected, discounted []float64) {
	horizon := e.params.HorizonYears
	projected = make([]float64, horizon)
	discounted = make([]float64, horizon)

	for year := 1; year <= horizon; year++ {
		p := lastOcf * math.Pow(1+growthRate, float64(year))
		projected[year-1] = p
		discounted[year-1] = p / math.Pow(1+discountRate, float64(year))
	}
	return projected, discounted
}

// IntrinsicValuePerShare sums the discounted series and divides by
// shares outstanding.
func (e *Engine) IntrinsicValuePerShare(discounted []float64, sharesOutstanding float64) (float64, error) {
	if sharesOutstanding <= 0 {
		return 0, fmt.Errorf("%w: shares outstanding %.0f is not positive", ErrInvalidInput, sharesOutstanding)
	}

	var total float64
	for _, v := range discounted {
		total += v
	}
	return total / sharesOutstanding, nil
}

// TerminalMultiple returns the earnings multiple applied past the
// projection horizon. The Gordon-style multiple 1/(r-g) blows up as the
// discount rate approaches the growth rate, so the configured cap is a
// hard ceiling; when discountRate <= growthRate the cap applies
// directly.
func (e *Engine) TerminalMultiple(growthRate, discountRate float64) float64 {
	ceiling := e.params.TerminalMultipleCap
	if discountRate <= growthRate {
		return ceiling
	}
	multiple := 1 / (discountRate - growthRate)
	if multiple > ceiling {
		return ceiling
	}
	return multiple
}

// EPSFairValue computes a terminal-capped EPS valuation: trailing EPS is
// grown at the clamped growth rate over the horizon, each year
// discounted back, plus a discounted terminal value at the capped
// multiple. A non-positive EPS still produces a value; flagging it as
// low-confidence is the caller's job.
func (e *Engine) EPSFairValue(epsTrailing, growthRate, discountRate float64) (float64, error) {
	if discountRate <= 0 {
		return 0, fmt.Errorf("%w: discount rate %.4f is not positive", ErrInvalidInput, discountRate)
	}

	horizon := e.params.HorizonYears
	var value float64
	var epsAtHorizon float64

	for year := 1; year <= horizon; year++ {
		eps := epsTrailing * math.Pow(1+growthRate, float64(year))
		value += eps / math.Pow(1+discountRate, float64(year))
		if year == horizon {
			epsAtHorizon = eps
		}
	}

	terminal := epsAtHorizon * e.TerminalMultiple(growthRate, discountRate)
	value += terminal / math.Pow(1+discountRate, float64(horizon))

	return value, nil
}

// NetCashPerShare converts total cash and total debt into per-share
// adjustments to the OCF-based intrinsic value.
func (e *Engine) NetCashPerShare(totalCash, totalDebt, sharesOutstanding float64) (cashPerShare, debtPerShare float64, err error) {
	if sharesOutstanding <= 0 {
		return 0, 0, fmt.Errorf("%w: shares outstanding %.0f is not positive", ErrInvalidInput, sharesOutstanding)
	}
	return totalCash / sharesOutstanding, totalDebt / sharesOutstanding, nil
}

// Options carries per-invocation overrides for Valuate.
type Options struct {
	// DiscountRateOverride, when non-nil, replaces the CAPM-derived rate
	// for the whole pipeline. The same validity rules apply.
	DiscountRateOverride *float64
}

// Valuate runs the full pipeline: discount rate (derived or overridden),
// growth rate, 20-year projection, intrinsic value per share, net cash
// adjustment, and EPS fair value. The input is not mutated; calling
// Valuate repeatedly with different overrides requires no refetch.
func (e *Engine) Valuate(input *models.FinancialInput, market models.MarketParams, opts Options) (*models.ValuationResult, error) {
	var discountRate float64
	var overridden bool

	if opts.DiscountRateOverride != nil {
		discountRate = *opts.DiscountRateOverride
		overridden = true
		if discountRate <= 0 {
			return nil, fmt.Errorf("%w: discount rate override %.4f is not positive", ErrInvalidInput, discountRate)
		}
	} else {
		var err error
		discountRate, err = e.ComputeDiscountRate(market.RiskFreeRate, input.Beta, market.MarketRiskPremium)
		if err != nil {
			return nil, err
		}
	}

	growth, err := e.ComputeGrowthRate(input.OCFHistory)
	if err != nil {
		return nil, err
	}

	projected, discounted := e.ProjectAndDiscount(input.LastOCF(), growth.Clamped, discountRate)

	intrinsic, err := e.IntrinsicValuePerShare(discounted, input.SharesOutstanding)
	if err != nil {
		return nil, err
	}

	cashPS, debtPS, err := e.NetCashPerShare(input.TotalCash, input.TotalDebt, input.SharesOutstanding)
	if err != nil {
		return nil, err
	}
	adjusted := intrinsic + cashPS - debtPS

	epsValue, err := e.EPSFairValue(input.EPSTrailing, growth.Clamped, discountRate)
	if err != nil {
		return nil, err
	}

	result := &models.ValuationResult{
		Ticker:                 input.Ticker,
		DiscountRate:           discountRate,
		DiscountRateOverride:   overridden,
		GrowthRate:             growth,
		ProjectedOCF:           projected,
		DiscountedOCF:          discounted,
		IntrinsicValuePerShare: intrinsic,
		CashPerShare:           cashPS,
		DebtPerShare:           debtPS,
		AdjustedValuePerShare:  adjusted,
		EPSFairValue:           epsValue,
		EPSLowConfidence:       input.EPSTrailing <= 0,
		CurrentPrice:           input.CurrentPrice,
	}

	if input.CurrentPrice > 0 {
		result.UpsidePercentage = (adjusted - input.CurrentPrice) / input.CurrentPrice * 100
		if input.CurrentPrice < adjusted {
			result.Status = models.StatusUnderpriced
		} else {
			result.Status = models.StatusOverpriced
		}
	}

	return result, nil
}
