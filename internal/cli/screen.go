package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/quantfold/intrinsic/internal/config"
	"github.com/quantfold/intrinsic/internal/dataflows"
	"github.com/quantfold/intrinsic/internal/display"
	"github.com/quantfold/intrinsic/internal/models"
	"github.com/quantfold/intrinsic/internal/utils"
	"github.com/quantfold/intrinsic/internal/valuation"
)

// newScreenCmd creates the screen command
func newScreenCmd(cfg *config.Config) *cobra.Command {
	var (
		tickerFile  string
		maxWorkers  int
		underpriced bool
		limit       int
		exportPath  string
	)

	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Value a list of tickers and rank them by upside",
		Long: `Run the DCF valuation over every ticker in a CSV file and print a
ranked summary. Tickers that fail (unknown symbol, missing history) are
reported and skipped.
Example: intrinsic screen --tickers watchlist.csv --workers 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(cfg, tickerFile, maxWorkers, underpriced, limit, exportPath)
		},
	}

	cmd.Flags().StringVar(&tickerFile, "tickers", "", "Path to ticker CSV file (first column is the symbol)")
	cmd.Flags().IntVar(&maxWorkers, "workers", 4, "Maximum number of parallel fetches")
	cmd.Flags().BoolVar(&underpriced, "underpriced", false, "Show only underpriced stocks")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results to show (0 = no limit)")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the summary table to a CSV file")
	if err := cmd.MarkFlagRequired("tickers"); err != nil {
		log.Fatal().Err(err).Msg("failed to mark tickers flag required")
	}

	return cmd
}

type screenFailure struct {
	Ticker string
	Err    error
}

// runScreen fetches and values every ticker with a worker pool. The
// engine is shared across workers; it is stateless, so no locking is
// needed around valuation itself.
func runScreen(cfg *config.Config, tickerFile string, maxWorkers int, underpriced bool, limit int, exportPath string) error {
	tickers, err := dataflows.LoadTickersFromCSV(tickerFile)
	if err != nil {
		return err
	}

	provider := dataflows.NewDataProvider(cfg)
	engine := valuation.NewEngine(engineParams(cfg))
	market := provider.MarketParams()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool := utils.NewWorkerPool(maxWorkers)
	defer pool.Close()

	var mu sync.Mutex
	results := make([]*models.ValuationResult, 0, len(tickers))
	var failures []screenFailure

	for _, ticker := range tickers {
		t := ticker
		pool.Submit(func() {
			input, err := provider.FetchFinancialInput(ctx, t)
			if err == nil {
				var result *models.ValuationResult
				result, err = engine.Valuate(input, market, valuation.Options{})
				if err == nil {
					mu.Lock()
					results = append(results, result)
					mu.Unlock()
					return
				}
			}

			log.Warn().Err(err).Str("ticker", t).Msg("skipping ticker")
			mu.Lock()
			failures = append(failures, screenFailure{Ticker: t, Err: err})
			mu.Unlock()
		})
	}
	pool.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].UpsidePercentage > results[j].UpsidePercentage
	})

	if underpriced {
		filtered := results[:0]
		for _, r := range results {
			if r.Status == models.StatusUnderpriced {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	display.RenderScreenTable(results)

	if len(failures) > 0 {
		fmt.Printf("\n%d tickers failed:\n", len(failures))
		for _, f := range failures {
			fmt.Printf("  - %s: %v\n", f.Ticker, f.Err)
		}
	}

	if exportPath != "" {
		if err := exportScreenCSV(exportPath, results); err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(results), exportPath)
	}

	return nil
}

// exportScreenCSV writes the ranked summary rows to a CSV file.
func exportScreenCSV(path string, results []*models.ValuationResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Ticker", "AdjustedValuePerShare", "IntrinsicValuePerShare", "EPSFairValue",
		"CurrentPrice", "UpsidePercentage", "Status", "DiscountRate", "GrowthRate", "GrowthClamped",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Ticker,
			strconv.FormatFloat(r.AdjustedValuePerShare, 'f', 2, 64),
			strconv.FormatFloat(r.IntrinsicValuePerShare, 'f', 2, 64),
			strconv.FormatFloat(r.EPSFairValue, 'f', 2, 64),
			strconv.FormatFloat(r.CurrentPrice, 'f', 2, 64),
			strconv.FormatFloat(r.UpsidePercentage, 'f', 1, 64),
			r.Status,
			strconv.FormatFloat(r.DiscountRate, 'f', 4, 64),
			strconv.FormatFloat(r.GrowthRate.Clamped, 'f', 4, 64),
			strconv.FormatBool(r.GrowthRate.WasClamped),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}
