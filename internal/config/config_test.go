package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	if cfg.HorizonYears != 20 {
		t.Fatalf("expected default horizon 20, got %d", cfg.HorizonYears)
	}
	if cfg.GrowthClampMin != 0.0 || cfg.GrowthClampMax != 0.15 {
		t.Fatalf("expected default clamp band [0, 0.15], got [%v, %v]", cfg.GrowthClampMin, cfg.GrowthClampMax)
	}
	if cfg.DefaultBeta != 1.0 {
		t.Fatalf("expected default beta 1.0, got %v", cfg.DefaultBeta)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero horizon", func(c *Config) { c.HorizonYears = 0 }},
		{"inverted clamp band", func(c *Config) { c.GrowthClampMin = 0.2; c.GrowthClampMax = 0.1 }},
		{"zero terminal cap", func(c *Config) { c.TerminalMultipleCap = 0 }},
		{"negative beta", func(c *Config) { c.DefaultBeta = -1 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"bad as-of date", func(c *Config) { c.MarketParamsAsOf = "June 2025" }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RISK_FREE_RATE", "0.05")
	t.Setenv("GROWTH_CLAMP_MAX", "0.20")
	t.Setenv("CACHE_ENABLED", "false")

	cfg := DefaultConfig()
	if cfg.RiskFreeRate != 0.05 {
		t.Fatalf("expected risk-free rate override 0.05, got %v", cfg.RiskFreeRate)
	}
	if cfg.GrowthClampMax != 0.20 {
		t.Fatalf("expected growth clamp max override 0.20, got %v", cfg.GrowthClampMax)
	}
	if cfg.CacheEnabled {
		t.Fatalf("expected cache disabled via env")
	}
}

func TestMarketParamsTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MarketParamsAsOf = "2025-06-30"

	want := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if got := cfg.MarketParamsTime(); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
