package dataflows

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTickersFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.csv")
	content := "Ticker,Name\nAAPL,Apple\nmsft,Microsoft\nAAPL,Dup\nBRK-B,Berkshire\n,blank\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tickers, err := LoadTickersFromCSV(path)
	if err != nil {
		t.Fatalf("LoadTickersFromCSV: %v", err)
	}

	want := []string{"AAPL", "MSFT", "BRK-B"}
	if len(tickers) != len(want) {
		t.Fatalf("expected %v, got %v", want, tickers)
	}
	for i := range want {
		if tickers[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tickers)
		}
	}
}

func TestLoadTickersFromCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.csv")
	if err := os.WriteFile(path, []byte("Ticker\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadTickersFromCSV(path); err == nil {
		t.Fatalf("expected error for header-only file")
	}
}

func TestLoadTickersFromCSVMissingFile(t *testing.T) {
	if _, err := LoadTickersFromCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
