package dataflows

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	timeseriesBaseURL   = "https://query1.finance.yahoo.com/ws/fundamentals-timeseries/v1/finance/timeseries"
	quoteSummaryBaseURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"

	annualOCFType = "annualCashFlowFromContinuingOperatingActivities"
)

// Statistics holds the quoteSummary figures the valuation needs beyond
// the plain quote: beta and the balance sheet totals.
type Statistics struct {
	Beta      *float64 `json:"beta"`
	TotalCash float64  `json:"total_cash"`
	TotalDebt float64  `json:"total_debt"`
}

// FundamentalsClient fetches annual statement history and key statistics
// from the Yahoo fundamentals endpoints.
type FundamentalsClient struct {
	client *resty.Client
	cache  *CacheManager
}

// NewFundamentalsClient creates a new fundamentals client.
func NewFundamentalsClient(config *Config) *FundamentalsClient {
	cacheDir := filepath.Join(config.DataCacheDir, "fundamentals")
	cache := NewCacheManager(cacheDir, config.FundamentalsTTL, config.CacheEnabled)

	client := resty.New()
	client.SetTimeout(config.RequestTimeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; intrinsic/1.0)")

	return &FundamentalsClient{
		client: client,
		cache:  cache,
	}
}

// GetOCFHistory returns annual operating cash flow figures for the past
// years, ordered oldest to newest.
func (fc *FundamentalsClient) GetOCFHistory(symbol string, years int) ([]float64, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)
	if years <= 0 {
		years = 5
	}

	cacheKey := map[string]interface{}{"symbol": symbol, "years": years}

	var cached []float64
	if fc.cache.Get("fundamentals", "ocf_history", cacheKey, &cached) {
		return cached, nil
	}

	end := time.Now()
	start := end.AddDate(-years-1, 0, 0)

	var result []float64
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := fc.client.R().
			SetQueryParams(map[string]string{
				"type":    annualOCFType,
				"period1": fmt.Sprintf("%d", start.Unix()),
				"period2": fmt.Sprintf("%d", end.Unix()),
			}).
			Get(fmt.Sprintf("%s/%s", timeseriesBaseURL, symbol))
		if err != nil {
			return fmt.Errorf("failed to fetch OCF history for %s: %w", symbol, err)
		}
		if resp.StatusCode() == 404 {
			return fmt.Errorf("%w: %s", ErrNotFound, symbol)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching OCF history for %s", resp.StatusCode(), symbol)
		}

		result, err = parseOCFTimeseries(resp.Body())
		return err
	})

	if err != nil {
		return nil, err
	}

	fc.cache.Set("fundamentals", "ocf_history", cacheKey, result)

	return result, nil
}

// GetStatistics returns beta and balance sheet totals for a symbol.
func (fc *FundamentalsClient) GetStatistics(symbol string) (*Statistics, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	var cached Statistics
	if fc.cache.Get("fundamentals", "statistics", symbol, &cached) {
		return &cached, nil
	}

	var result *Statistics
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := fc.client.R().
			SetQueryParam("modules", "summaryDetail,financialData").
			Get(fmt.Sprintf("%s/%s", quoteSummaryBaseURL, symbol))
		if err != nil {
			return fmt.Errorf("failed to fetch statistics for %s: %w", symbol, err)
		}
		if resp.StatusCode() == 404 {
			return fmt.Errorf("%w: %s", ErrNotFound, symbol)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching statistics for %s", resp.StatusCode(), symbol)
		}

		result, err = parseQuoteSummary(resp.Body())
		return err
	})

	if err != nil {
		return nil, err
	}

	fc.cache.Set("fundamentals", "statistics", symbol, result)

	return result, nil
}

// parseOCFTimeseries decodes the fundamentals-timeseries payload into an
// oldest-first series of annual operating cash flow values.
func parseOCFTimeseries(body []byte) ([]float64, error) {
	var payload timeseriesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode timeseries response: %w", err)
	}

	if e := payload.Timeseries.Error; e != nil {
		if strings.EqualFold(e.Code, "not found") {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, e.Description)
		}
		return nil, fmt.Errorf("timeseries error %s: %s", e.Code, e.Description)
	}
	if len(payload.Timeseries.Result) == 0 {
		return nil, fmt.Errorf("%w: no timeseries result", ErrNotFound)
	}

	points := payload.Timeseries.Result[0].AnnualOCF
	type dated struct {
		date  string
		value float64
	}
	rows := make([]dated, 0, len(points))
	for _, p := range points {
		if p == nil {
			continue
		}
		if v, ok := p.ReportedValue.Value(); ok {
			rows = append(rows, dated{date: p.AsOfDate, value: v})
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no annual operating cash flow data", ErrNotFound)
	}

	// ISO dates sort lexically.
	sort.Slice(rows, func(i, j int) bool { return rows[i].date < rows[j].date })

	result := make([]float64, len(rows))
	for i, r := range rows {
		result[i] = r.value
	}
	return result, nil
}

// parseQuoteSummary decodes the quoteSummary payload into Statistics.
func parseQuoteSummary(body []byte) (*Statistics, error) {
	var payload quoteSummaryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode quoteSummary response: %w", err)
	}

	if e := payload.QuoteSummary.Error; e != nil {
		if strings.EqualFold(e.Code, "not found") {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, e.Description)
		}
		return nil, fmt.Errorf("quoteSummary error %s: %s", e.Code, e.Description)
	}
	if len(payload.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: no quoteSummary result", ErrNotFound)
	}

	r := payload.QuoteSummary.Result[0]
	stats := &Statistics{}
	if v, ok := r.SummaryDetail.Beta.Value(); ok {
		stats.Beta = &v
	}
	if v, ok := r.FinancialData.TotalCash.Value(); ok {
		stats.TotalCash = v
	}
	if v, ok := r.FinancialData.TotalDebt.Value(); ok {
		stats.TotalDebt = v
	}
	return stats, nil
}
