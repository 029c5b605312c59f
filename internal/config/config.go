package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings. Valuation policy knobs live here
// rather than as package-level constants so the engine receives them
// explicitly.
type Config struct {
	ProjectDir   string `json:"project_dir"`
	DataCacheDir string `json:"data_cache_dir"`

	// Discount rate inputs. Operator-maintained; update AsOf when the
	// reference figures are refreshed.
	RiskFreeRate       float64 `json:"risk_free_rate"`
	MarketRiskPremium  float64 `json:"market_risk_premium"`
	MarketParamsSource string  `json:"market_params_source"`
	MarketParamsAsOf   string  `json:"market_params_as_of"` // YYYY-MM-DD
	DefaultBeta        float64 `json:"default_beta"`

	// Projection policy.
	HorizonYears        int     `json:"horizon_years"`
	GrowthClampMin      float64 `json:"growth_clamp_min"`
	GrowthClampMax      float64 `json:"growth_clamp_max"`
	TerminalMultipleCap float64 `json:"terminal_multiple_cap"`

	// Data fetch.
	CacheEnabled    bool          `json:"cache_enabled"`
	QuoteCacheTTL   time.Duration `json:"quote_cache_ttl"`
	FundamentalsTTL time.Duration `json:"fundamentals_cache_ttl"`
	RequestTimeout  time.Duration `json:"request_timeout"`
	MaxRetries      int           `json:"max_retries"`

	Debug bool `json:"debug"`
}

// DefaultConfig returns the configuration with documented defaults, then
// applies .env and environment overrides.
func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir:   currentDir,
		DataCacheDir: filepath.Join(currentDir, "data", "cache"),

		// 10-year US Treasury yield and US equity risk premium.
		// Reference: market-risk-premia.com/us.html
		RiskFreeRate:       0.045,
		MarketRiskPremium:  0.025,
		MarketParamsSource: "operator-config",
		MarketParamsAsOf:   "2025-06-30",
		DefaultBeta:        1.0,

		HorizonYears:        20,
		GrowthClampMin:      0.0,
		GrowthClampMax:      0.15,
		TerminalMultipleCap: 25.0,

		CacheEnabled:    true,
		QuoteCacheTTL:   15 * time.Minute,
		FundamentalsTTL: 24 * time.Hour,
		RequestTimeout:  30 * time.Second,
		MaxRetries:      3,

		Debug: false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}

	if val := os.Getenv("RISK_FREE_RATE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.RiskFreeRate = f
		}
	}
	if val := os.Getenv("MARKET_RISK_PREMIUM"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.MarketRiskPremium = f
		}
	}
	if val := os.Getenv("MARKET_PARAMS_SOURCE"); val != "" {
		c.MarketParamsSource = val
	}
	if val := os.Getenv("MARKET_PARAMS_AS_OF"); val != "" {
		c.MarketParamsAsOf = val
	}
	if val := os.Getenv("DEFAULT_BETA"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.DefaultBeta = f
		}
	}

	if val := os.Getenv("HORIZON_YEARS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.HorizonYears = n
		}
	}
	if val := os.Getenv("GROWTH_CLAMP_MIN"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.GrowthClampMin = f
		}
	}
	if val := os.Getenv("GROWTH_CLAMP_MAX"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.GrowthClampMax = f
		}
	}
	if val := os.Getenv("TERMINAL_MULTIPLE_CAP"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.TerminalMultipleCap = f
		}
	}

	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = b
		}
	}
	if val := os.Getenv("DEBUG"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Debug = b
		}
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.HorizonYears <= 0 {
		return fmt.Errorf("horizon years must be positive, got %d", c.HorizonYears)
	}
	if c.GrowthClampMin > c.GrowthClampMax {
		return fmt.Errorf("growth clamp band is inverted: [%v, %v]", c.GrowthClampMin, c.GrowthClampMax)
	}
	if c.TerminalMultipleCap <= 0 {
		return fmt.Errorf("terminal multiple cap must be positive, got %v", c.TerminalMultipleCap)
	}
	if c.DefaultBeta <= 0 {
		return fmt.Errorf("default beta must be positive, got %v", c.DefaultBeta)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got %d", c.MaxRetries)
	}
	if _, err := time.Parse("2006-01-02", c.MarketParamsAsOf); err != nil {
		return fmt.Errorf("market params as-of date %q is not YYYY-MM-DD: %w", c.MarketParamsAsOf, err)
	}
	return nil
}

// MarketParamsTime parses the as-of date. Validate is expected to have
// been called first; a zero time is returned otherwise.
func (c *Config) MarketParamsTime() time.Time {
	t, _ := time.Parse("2006-01-02", c.MarketParamsAsOf)
	return t
}

// EnsureDirectories creates the directories the application writes to.
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.DataCacheDir, 0755)
}
