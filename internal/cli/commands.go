package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/quantfold/intrinsic/internal/config"
	"github.com/quantfold/intrinsic/internal/dataflows"
	"github.com/quantfold/intrinsic/internal/display"
	"github.com/quantfold/intrinsic/internal/models"
	"github.com/quantfold/intrinsic/internal/valuation"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "intrinsic",
		Short: "intrinsic - DCF fair-value check for a stock ticker",
		Long: `intrinsic estimates the intrinsic value of a publicly traded company
from its operating cash flow history using a 20-year discounted cash flow
projection, and compares it against the current market price.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				cfg.Debug = true
			}
			configureLogging(cfg)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newValueCmd(cfg))
	rootCmd.AddCommand(newScreenCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

// newValueCmd creates the value command
func newValueCmd(cfg *config.Config) *cobra.Command {
	var (
		discountRate float64
		jsonOut      bool
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "value [SYMBOL]",
		Short: "Compute the intrinsic value for a stock symbol",
		Long: `Fetch financial data for a ticker and run the DCF valuation.
Example: intrinsic value AAPL --discount-rate=0.10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noCache {
				cfg.CacheEnabled = false
			}

			var override *float64
			if cmd.Flags().Changed("discount-rate") {
				override = &discountRate
			}

			return runValuation(cfg, args[0], override, jsonOut)
		},
	}

	cmd.Flags().Float64Var(&discountRate, "discount-rate", 0, "Override the CAPM-derived discount rate (fraction, e.g. 0.10)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full valuation result as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local data cache")
	cmd.Flags().IntVar(&cfg.HorizonYears, "horizon", cfg.HorizonYears, "Projection horizon in years")
	cmd.Flags().Float64Var(&cfg.GrowthClampMin, "growth-clamp-min", cfg.GrowthClampMin, "Lower bound of the growth rate clamp band")
	cmd.Flags().Float64Var(&cfg.GrowthClampMax, "growth-clamp-max", cfg.GrowthClampMax, "Upper bound of the growth rate clamp band")
	cmd.Flags().Float64Var(&cfg.TerminalMultipleCap, "terminal-cap", cfg.TerminalMultipleCap, "Ceiling on the EPS terminal multiple")
	cmd.Flags().Float64Var(&cfg.RiskFreeRate, "risk-free", cfg.RiskFreeRate, "Risk-free rate (fraction)")
	cmd.Flags().Float64Var(&cfg.MarketRiskPremium, "premium", cfg.MarketRiskPremium, "Market risk premium (fraction)")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("intrinsic v1.0.0")
			fmt.Println("DCF fair-value estimation for public equities")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and update configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Persist a configuration override to .env",
		Long: `Write a configuration override to the .env file loaded on startup.
Keys: ` + strings.Join(config.KnownEnvKeys(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(cfg.ProjectDir, ".env")
			if err := config.SetEnvOverride(path, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Set %s=%s in %s\n", strings.ToUpper(strings.TrimSpace(args[0])), args[1], path)
			return nil
		},
	})

	return configCmd
}

// engineParams maps configuration to engine policy.
func engineParams(cfg *config.Config) valuation.Params {
	return valuation.Params{
		HorizonYears:        cfg.HorizonYears,
		GrowthClampMin:      cfg.GrowthClampMin,
		GrowthClampMax:      cfg.GrowthClampMax,
		TerminalMultipleCap: cfg.TerminalMultipleCap,
	}
}

// runValuation fetches data for a ticker, runs the engine once, and
// renders the result.
func runValuation(cfg *config.Config, symbol string, override *float64, jsonOut bool) error {
	provider := dataflows.NewDataProvider(cfg)
	engine := valuation.NewEngine(engineParams(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	input, err := provider.FetchFinancialInput(ctx, symbol)
	if err != nil {
		return describeFailure(symbol, err)
	}

	market := provider.MarketParams()
	result, err := engine.Valuate(input, market, valuation.Options{DiscountRateOverride: override})
	if err != nil {
		return describeFailure(symbol, err)
	}

	if jsonOut {
		return writeJSON(input, market, result)
	}

	display.NewResultsDisplay(input, market, result).Render()
	return nil
}

// writeJSON dumps the full valuation for machine consumption.
func writeJSON(input *models.FinancialInput, market models.MarketParams, result *models.ValuationResult) error {
	out := struct {
		Input  *models.FinancialInput  `json:"input"`
		Market models.MarketParams     `json:"market"`
		Result *models.ValuationResult `json:"result"`
	}{input, market, result}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// describeFailure turns engine and provider errors into messages naming
// the missing prerequisite.
func describeFailure(symbol string, err error) error {
	switch {
	case isNotFound(err):
		return fmt.Errorf("no data for %s: the ticker is unknown to the data provider (check the symbol): %w", symbol, err)
	default:
		return fmt.Errorf("valuation of %s failed: %w", symbol, err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, dataflows.ErrNotFound)
}

func configureLogging(cfg *config.Config) {
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	log.DefaultLogger = log.Logger{
		Level: level,
		Writer: &log.ConsoleWriter{
			ColorOutput:    true,
			EndWithMessage: true,
		},
	}
}
