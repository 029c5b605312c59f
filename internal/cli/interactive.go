package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/quantfold/intrinsic/internal/config"
	"github.com/quantfold/intrinsic/internal/dataflows"
	"github.com/quantfold/intrinsic/internal/display"
	"github.com/quantfold/intrinsic/internal/valuation"
)

// runInteractiveMode drives a fetch-once, recompute-many session: the
// financial snapshot is fetched a single time and the engine is re-run
// for each discount rate the user tries.
func runInteractiveMode(cfg *config.Config) error {
	provider := dataflows.NewDataProvider(cfg)
	engine := valuation.NewEngine(engineParams(cfg))

	ticker, err := PromptForTicker()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	input, err := provider.FetchFinancialInput(ctx, ticker)
	if err != nil {
		return describeFailure(ticker, err)
	}
	market := provider.MarketParams()

	var override *float64
	for {
		result, err := engine.Valuate(input, market, valuation.Options{DiscountRateOverride: override})
		if err != nil {
			return describeFailure(ticker, err)
		}

		display.NewResultsDisplay(input, market, result).Render()

		again, err := PromptForAnotherRound()
		if err != nil {
			return err
		}
		if !again {
			return nil
		}

		override, err = PromptForDiscountRate(result.DiscountRate)
		if err != nil {
			return err
		}
		fmt.Println()
	}
}
