package dataflows

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// YahooFinanceClient fetches quote-level data for a symbol: current
// price, trailing EPS, shares outstanding, book value.
type YahooFinanceClient struct {
	cache *CacheManager
}

// NewYahooFinanceClient creates a new Yahoo Finance client.
func NewYahooFinanceClient(config *Config) *YahooFinanceClient {
	cacheDir := filepath.Join(config.DataCacheDir, "yahoo_finance")
	cache := NewCacheManager(cacheDir, config.QuoteCacheTTL, config.CacheEnabled)

	return &YahooFinanceClient{
		cache: cache,
	}
}

// GetQuote gets the current quote snapshot for a symbol.
func (yf *YahooFinanceClient) GetQuote(symbol string) (*QuoteData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	// Check cache first
	var cached QuoteData
	if yf.cache.Get("yahoo", "quote", symbol, &cached) {
		return &cached, nil
	}

	var result *QuoteData
	err := WithRetry(DefaultRetryConfig(), func() error {
		eq, err := equity.Get(symbol)
		if err != nil {
			return fmt.Errorf("failed to get quote for %s: %w", symbol, err)
		}
		if eq == nil || eq.Symbol == "" {
			return fmt.Errorf("%w: %s", ErrNotFound, symbol)
		}

		name := eq.LongName
		if name == "" {
			name = eq.ShortName
		}

		result = &QuoteData{
			Symbol:            symbol,
			CompanyName:       name,
			Price:             decimal.NewFromFloat(eq.RegularMarketPrice),
			EPSTrailing:       decimal.NewFromFloat(eq.EpsTrailingTwelveMonths),
			SharesOutstanding: float64(eq.SharesOutstanding),
			BookValue:         decimal.NewFromFloat(eq.BookValue),
			MarketCap:         eq.MarketCap,
			Timestamp:         time.Now(),
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Cache the result
	yf.cache.Set("yahoo", "quote", symbol, result)

	return result, nil
}
