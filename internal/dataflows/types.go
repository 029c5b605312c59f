package dataflows

import (
	"time"

	"github.com/quantfold/intrinsic/internal/config"
	"github.com/shopspring/decimal"
)

// Config is an alias for the main application config
type Config = config.Config

// QuoteData is the market snapshot for a symbol as fetched, before
// conversion to engine inputs. Prices stay decimal at this layer.
type QuoteData struct {
	Symbol            string          `json:"symbol"`
	CompanyName       string          `json:"company_name"`
	Price             decimal.Decimal `json:"price"`
	EPSTrailing       decimal.Decimal `json:"eps_trailing"`
	SharesOutstanding float64         `json:"shares_outstanding"`
	BookValue         decimal.Decimal `json:"book_value"`
	MarketCap         int64           `json:"market_cap"`
	Timestamp         time.Time       `json:"timestamp"`
}

// timeseriesResponse mirrors the Yahoo fundamentals-timeseries payload
// for the annual operating cash flow series.
type timeseriesResponse struct {
	Timeseries struct {
		Result []struct {
			Meta struct {
				Symbol []string `json:"symbol"`
				Type   []string `json:"type"`
			} `json:"meta"`
			Timestamp []int64            `json:"timestamp"`
			AnnualOCF []*timeseriesPoint `json:"annualCashFlowFromContinuingOperatingActivities"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"timeseries"`
}

type timeseriesPoint struct {
	AsOfDate      string   `json:"asOfDate"`
	PeriodType    string   `json:"periodType"`
	ReportedValue rawValue `json:"reportedValue"`
}

// quoteSummaryResponse mirrors the Yahoo quoteSummary payload for the
// modules this application requests.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				Beta rawValue `json:"beta"`
			} `json:"summaryDetail"`
			FinancialData struct {
				TotalCash         rawValue `json:"totalCash"`
				TotalDebt         rawValue `json:"totalDebt"`
				OperatingCashflow rawValue `json:"operatingCashflow"`
			} `json:"financialData"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

// rawValue is Yahoo's {raw, fmt} number envelope. Raw is nil when the
// field is present but empty.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (v rawValue) Value() (float64, bool) {
	if v.Raw == nil {
		return 0, false
	}
	return *v.Raw, true
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
