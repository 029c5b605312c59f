package dataflows

import (
	"errors"
	"testing"
)

const ocfTimeseriesFixture = `{
  "timeseries": {
    "result": [
      {
        "meta": {"symbol": ["AAPL"], "type": ["annualCashFlowFromContinuingOperatingActivities"]},
        "timestamp": [1632960000, 1664496000, 1696032000],
        "annualCashFlowFromContinuingOperatingActivities": [
          {"asOfDate": "2023-09-30", "periodType": "12M", "reportedValue": {"raw": 110543000000, "fmt": "110.54B"}},
          {"asOfDate": "2021-09-30", "periodType": "12M", "reportedValue": {"raw": 104038000000, "fmt": "104.04B"}},
          {"asOfDate": "2022-09-30", "periodType": "12M", "reportedValue": {"raw": 122151000000, "fmt": "122.15B"}}
        ]
      }
    ],
    "error": null
  }
}`

func TestParseOCFTimeseriesOrdersOldestFirst(t *testing.T) {
	values, err := parseOCFTimeseries([]byte(ocfTimeseriesFixture))
	if err != nil {
		t.Fatalf("parseOCFTimeseries: %v", err)
	}

	want := []float64{104038000000, 122151000000, 110543000000}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("value %d: expected %v, got %v", i, want[i], values[i])
		}
	}
}

func TestParseOCFTimeseriesNotFound(t *testing.T) {
	body := `{"timeseries": {"result": [], "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`

	_, err := parseOCFTimeseries([]byte(body))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseOCFTimeseriesEmptySeries(t *testing.T) {
	body := `{"timeseries": {"result": [{"meta": {}, "annualCashFlowFromContinuingOperatingActivities": []}], "error": null}}`

	_, err := parseOCFTimeseries([]byte(body))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty series, got %v", err)
	}
}

func TestParseQuoteSummary(t *testing.T) {
	body := `{
	  "quoteSummary": {
	    "result": [
	      {
	        "summaryDetail": {"beta": {"raw": 1.29, "fmt": "1.29"}},
	        "financialData": {
	          "totalCash": {"raw": 61555000000, "fmt": "61.56B"},
	          "totalDebt": {"raw": 104590000000, "fmt": "104.59B"},
	          "operatingCashflow": {"raw": 110543000000, "fmt": "110.54B"}
	        }
	      }
	    ],
	    "error": null
	  }
	}`

	stats, err := parseQuoteSummary([]byte(body))
	if err != nil {
		t.Fatalf("parseQuoteSummary: %v", err)
	}
	if stats.Beta == nil || *stats.Beta != 1.29 {
		t.Fatalf("expected beta 1.29, got %v", stats.Beta)
	}
	if stats.TotalCash != 61555000000 {
		t.Fatalf("expected total cash 61555000000, got %v", stats.TotalCash)
	}
	if stats.TotalDebt != 104590000000 {
		t.Fatalf("expected total debt 104590000000, got %v", stats.TotalDebt)
	}
}

func TestParseQuoteSummaryMissingBeta(t *testing.T) {
	body := `{
	  "quoteSummary": {
	    "result": [
	      {
	        "summaryDetail": {"beta": {}},
	        "financialData": {"totalCash": {"raw": 100}, "totalDebt": {"raw": 50}}
	      }
	    ],
	    "error": null
	  }
	}`

	stats, err := parseQuoteSummary([]byte(body))
	if err != nil {
		t.Fatalf("parseQuoteSummary: %v", err)
	}
	if stats.Beta != nil {
		t.Fatalf("expected nil beta when field is empty, got %v", *stats.Beta)
	}
}
