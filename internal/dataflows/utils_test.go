package dataflows

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestValidateSymbol(t *testing.T) {
	valid := []string{"AAPL", "BRK-B", "700.HK", "msft"}
	for _, s := range valid {
		if err := ValidateSymbol(s); err != nil {
			t.Errorf("ValidateSymbol(%q): unexpected error %v", s, err)
		}
	}

	invalid := []string{"", "   ", "TOOLONGSYMBOL", "AA PL", "AAPL$"}
	for _, s := range invalid {
		if err := ValidateSymbol(s); err == nil {
			t.Errorf("ValidateSymbol(%q): expected error", s)
		}
	}
}

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol("  aapl "); got != "AAPL" {
		t.Fatalf("expected AAPL, got %q", got)
	}
}

func TestCacheManagerRoundTrip(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Minute, true)

	in := []float64{1, 2, 3}
	if err := cm.Set("test", "series", "AAPL", in); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out []float64
	if !cm.Get("test", "series", "AAPL", &out) {
		t.Fatalf("expected cache hit")
	}
	if len(out) != 3 || out[2] != 3 {
		t.Fatalf("cache returned wrong data: %v", out)
	}
}

func TestCacheManagerExpiry(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Nanosecond, true)

	if err := cm.Set("test", "series", "AAPL", []float64{1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	var out []float64
	if cm.Get("test", "series", "AAPL", &out) {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestCacheManagerDisabled(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Minute, false)

	if err := cm.Set("test", "series", "AAPL", []float64{1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var out []float64
	if cm.Get("test", "series", "AAPL", &out) {
		t.Fatalf("disabled cache must never hit")
	}
}

func TestWithRetryStopsOnNotFound(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}

	calls := 0
	err := WithRetry(cfg, func() error {
		calls++
		return fmt.Errorf("%w: XXXX", ErrNotFound)
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("not-found should not be retried, got %d calls", calls)
	}
}

func TestWithRetryEventuallySucceeds(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}

	calls := 0
	err := WithRetry(cfg, func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}
