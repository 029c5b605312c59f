package models

import "time"

// FinancialInput is the per-company snapshot the valuation engine consumes.
// It is built once per ticker lookup and never mutated afterwards.
type FinancialInput struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name,omitempty"`

	// OCFHistory holds annual operating cash flow figures, oldest first.
	// At least two observations are required to derive a growth rate.
	OCFHistory []float64 `json:"ocf_history"`

	SharesOutstanding float64 `json:"shares_outstanding"`
	EPSTrailing       float64 `json:"eps_trailing"`
	Beta              float64 `json:"beta"`
	CurrentPrice      float64 `json:"current_price"`

	// Balance sheet figures used for the net cash adjustment.
	TotalCash float64 `json:"total_cash"`
	TotalDebt float64 `json:"total_debt"`

	FetchTime time.Time `json:"fetch_time"`
}

// LastOCF returns the most recent operating cash flow observation,
// or 0 if the history is empty.
func (f *FinancialInput) LastOCF() float64 {
	if len(f.OCFHistory) == 0 {
		return 0
	}
	return f.OCFHistory[len(f.OCFHistory)-1]
}

// MarketParams carries the economy-wide inputs to the discount rate.
// They come from operator configuration rather than the per-ticker fetch.
type MarketParams struct {
	RiskFreeRate      float64   `json:"risk_free_rate"`
	MarketRiskPremium float64   `json:"market_risk_premium"`
	Source            string    `json:"source"`
	AsOf              time.Time `json:"as_of"`
}

// GrowthRate is the derived OCF growth rate. Raw is the CAGR as computed
// from the history; Clamped is the value actually used for projection.
// WasClamped tells callers that the band was applied.
type GrowthRate struct {
	Raw        float64 `json:"raw"`
	Clamped    float64 `json:"clamped"`
	WasClamped bool    `json:"was_clamped"`
}

// YearValue is one year of a projection series.
type YearValue struct {
	Year       int     `json:"year"`
	Projected  float64 `json:"projected"`
	Discounted float64 `json:"discounted"`
}

// ValuationResult is the full output of a single engine run. It is
// recomputed on every invocation; nothing here outlives an analysis
// session.
type ValuationResult struct {
	Ticker string `json:"ticker"`

	DiscountRate         float64    `json:"discount_rate"`
	DiscountRateOverride bool       `json:"discount_rate_override"`
	GrowthRate           GrowthRate `json:"growth_rate"`

	ProjectedOCF  []float64 `json:"projected_ocf"`
	DiscountedOCF []float64 `json:"discounted_ocf"`

	IntrinsicValuePerShare float64 `json:"intrinsic_value_per_share"`

	// Net cash adjustment to the OCF-based value.
	CashPerShare          float64 `json:"cash_per_share"`
	DebtPerShare          float64 `json:"debt_per_share"`
	AdjustedValuePerShare float64 `json:"adjusted_value_per_share"`

	EPSFairValue     float64 `json:"eps_fair_value"`
	EPSLowConfidence bool    `json:"eps_low_confidence"`

	CurrentPrice     float64 `json:"current_price"`
	UpsidePercentage float64 `json:"upside_percentage"`
	Status           string  `json:"status"`
}

// Years returns the projection series as per-year rows for display.
func (r *ValuationResult) Years() []YearValue {
	out := make([]YearValue, len(r.ProjectedOCF))
	for i := range r.ProjectedOCF {
		out[i] = YearValue{Year: i + 1, Projected: r.ProjectedOCF[i], Discounted: r.DiscountedOCF[i]}
	}
	return out
}

// Status constants for valuation results.
const (
	StatusUnderpriced = "Underpriced"
	StatusOverpriced  = "Overpriced"
)
