package dataflows

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"

	"github.com/quantfold/intrinsic/internal/models"
)

// DataProvider assembles the engine's FinancialInput from the individual
// Yahoo Finance clients. It is the only layer that talks to the network;
// the valuation engine never does.
type DataProvider struct {
	config       *Config
	quotes       *YahooFinanceClient
	fundamentals *FundamentalsClient
	scraper      *StatisticsScraper
}

// NewDataProvider creates a provider wired to the Yahoo Finance clients.
func NewDataProvider(cfg *Config) *DataProvider {
	return &DataProvider{
		config:       cfg,
		quotes:       NewYahooFinanceClient(cfg),
		fundamentals: NewFundamentalsClient(cfg),
		scraper:      NewStatisticsScraper(cfg),
	}
}

// MarketParams returns the operator-configured market parameters with
// their source and reference date.
func (dp *DataProvider) MarketParams() models.MarketParams {
	return models.MarketParams{
		RiskFreeRate:      dp.config.RiskFreeRate,
		MarketRiskPremium: dp.config.MarketRiskPremium,
		Source:            dp.config.MarketParamsSource,
		AsOf:              dp.config.MarketParamsTime(),
	}
}

// FetchFinancialInput fetches everything the engine needs for a ticker.
// An unknown ticker comes back as ErrNotFound; other failures are
// transport errors. Missing beta falls back to the scrape, then to the
// configured default.
func (dp *DataProvider) FetchFinancialInput(ctx context.Context, ticker string) (*models.FinancialInput, error) {
	if err := ValidateSymbol(ticker); err != nil {
		return nil, err
	}
	ticker = NormalizeSymbol(ticker)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quote, err := dp.quotes.GetQuote(ticker)
	if err != nil {
		return nil, fmt.Errorf("quote lookup for %s: %w", ticker, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ocfHistory, err := dp.fundamentals.GetOCFHistory(ticker, 5)
	if err != nil {
		return nil, fmt.Errorf("operating cash flow history for %s: %w", ticker, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats, err := dp.fundamentals.GetStatistics(ticker)
	if err != nil {
		// Statistics are supplementary; the valuation can proceed with
		// the default beta and no balance sheet adjustment.
		log.Warn().Err(err).Str("ticker", ticker).Msg("statistics unavailable, using defaults")
		stats = &Statistics{}
	}

	beta := dp.config.DefaultBeta
	switch {
	case stats.Beta != nil && *stats.Beta > 0:
		beta = *stats.Beta
	default:
		if scraped, err := dp.scraper.ScrapeBeta(ticker); err == nil && scraped > 0 {
			beta = scraped
		} else {
			log.Debug().Str("ticker", ticker).Float64("beta", beta).Msg("beta not provided, using default")
		}
	}

	input := &models.FinancialInput{
		Ticker:            ticker,
		CompanyName:       quote.CompanyName,
		OCFHistory:        ocfHistory,
		SharesOutstanding: quote.SharesOutstanding,
		EPSTrailing:       quote.EPSTrailing.InexactFloat64(),
		Beta:              beta,
		CurrentPrice:      quote.Price.InexactFloat64(),
		TotalCash:         stats.TotalCash,
		TotalDebt:         stats.TotalDebt,
		FetchTime:         time.Now(),
	}

	log.Info().
		Str("ticker", ticker).
		Int("ocf_years", len(input.OCFHistory)).
		Float64("beta", input.Beta).
		Float64("price", input.CurrentPrice).
		Msg("financial input assembled")

	return input, nil
}
