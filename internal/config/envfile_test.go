package config

import (
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestSetEnvOverrideRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	if err := SetEnvOverride(path, "risk_free_rate", "0.05"); err != nil {
		t.Fatalf("SetEnvOverride failed: %v", err)
	}
	if err := SetEnvOverride(path, "HORIZON_YEARS", "15"); err != nil {
		t.Fatalf("SetEnvOverride failed: %v", err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("failed to read env file: %v", err)
	}
	if env["RISK_FREE_RATE"] != "0.05" {
		t.Errorf("RISK_FREE_RATE = %q, want 0.05", env["RISK_FREE_RATE"])
	}
	if env["HORIZON_YEARS"] != "15" {
		t.Errorf("HORIZON_YEARS = %q, want 15", env["HORIZON_YEARS"])
	}
}

func TestSetEnvOverridePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	if err := SetEnvOverride(path, "DEFAULT_BETA", "1.2"); err != nil {
		t.Fatalf("SetEnvOverride failed: %v", err)
	}
	if err := SetEnvOverride(path, "CACHE_ENABLED", "false"); err != nil {
		t.Fatalf("SetEnvOverride failed: %v", err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("failed to read env file: %v", err)
	}
	if env["DEFAULT_BETA"] != "1.2" {
		t.Errorf("DEFAULT_BETA = %q, want 1.2", env["DEFAULT_BETA"])
	}
}

func TestSetEnvOverrideRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	if err := SetEnvOverride(path, "NOT_A_KEY", "1"); err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestSetEnvOverrideRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	tests := []struct {
		key   string
		value string
	}{
		{"RISK_FREE_RATE", "abc"},
		{"HORIZON_YEARS", "twenty"},
		{"CACHE_ENABLED", "maybe"},
		{"MARKET_PARAMS_AS_OF", "June 2025"},
		{"PROJECT_DIR", "  "},
	}
	for _, tt := range tests {
		if err := SetEnvOverride(path, tt.key, tt.value); err == nil {
			t.Errorf("SetEnvOverride(%s, %q): expected error, got nil", tt.key, tt.value)
		}
	}
}

func TestKnownEnvKeysCoversLoader(t *testing.T) {
	keys := KnownEnvKeys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}
	for _, want := range []string{
		"PROJECT_DIR", "DATA_CACHE_DIR", "RISK_FREE_RATE", "MARKET_RISK_PREMIUM",
		"MARKET_PARAMS_SOURCE", "MARKET_PARAMS_AS_OF", "DEFAULT_BETA",
		"HORIZON_YEARS", "GROWTH_CLAMP_MIN", "GROWTH_CLAMP_MAX",
		"TERMINAL_MULTIPLE_CAP", "CACHE_ENABLED", "DEBUG",
	} {
		if !seen[want] {
			t.Errorf("KnownEnvKeys missing %s", want)
		}
	}
}
