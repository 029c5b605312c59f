package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys recognized by loadFromEnv, grouped by value type so
// overrides can be checked before they are persisted.
var (
	stringEnvKeys = map[string]bool{
		"PROJECT_DIR":          true,
		"DATA_CACHE_DIR":       true,
		"MARKET_PARAMS_SOURCE": true,
	}
	floatEnvKeys = map[string]bool{
		"RISK_FREE_RATE":        true,
		"MARKET_RISK_PREMIUM":   true,
		"DEFAULT_BETA":          true,
		"GROWTH_CLAMP_MIN":      true,
		"GROWTH_CLAMP_MAX":      true,
		"TERMINAL_MULTIPLE_CAP": true,
	}
	intEnvKeys = map[string]bool{
		"HORIZON_YEARS": true,
	}
	boolEnvKeys = map[string]bool{
		"CACHE_ENABLED": true,
		"DEBUG":         true,
	}
	dateEnvKeys = map[string]bool{
		"MARKET_PARAMS_AS_OF": true,
	}
)

// KnownEnvKeys returns every settable configuration key, sorted.
func KnownEnvKeys() []string {
	var keys []string
	for _, group := range []map[string]bool{stringEnvKeys, floatEnvKeys, intEnvKeys, boolEnvKeys, dateEnvKeys} {
		for k := range group {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// validateEnvValue checks that a value parses for the key's type.
func validateEnvValue(key, value string) error {
	switch {
	case stringEnvKeys[key]:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("value for %s cannot be empty", key)
		}
	case floatEnvKeys[key]:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("value for %s must be a number: %w", key, err)
		}
	case intEnvKeys[key]:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("value for %s must be an integer: %w", key, err)
		}
	case boolEnvKeys[key]:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("value for %s must be a boolean: %w", key, err)
		}
	case dateEnvKeys[key]:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("value for %s must be YYYY-MM-DD: %w", key, err)
		}
	default:
		return fmt.Errorf("unknown configuration key %q (known keys: %s)", key, strings.Join(KnownEnvKeys(), ", "))
	}
	return nil
}

// SetEnvOverride persists a configuration override to the .env file the
// loader reads on startup. The value is type-checked first; existing
// entries for other keys are preserved.
func SetEnvOverride(path, key, value string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	if err := validateEnvValue(key, value); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		env = make(map[string]string)
	}

	env[key] = value

	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
