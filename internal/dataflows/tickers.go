package dataflows

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadTickersFromCSV reads ticker symbols from the first column of a CSV
// file. A header row is skipped when its first cell is not a valid
// symbol. Duplicates are dropped, order is preserved.
func LoadTickersFromCSV(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ticker file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var tickers []string
	seen := make(map[string]bool)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ticker file %s: %w", path, err)
		}
		if len(record) == 0 {
			continue
		}

		symbol := NormalizeSymbol(record[0])
		if symbol == "" || strings.EqualFold(symbol, "TICKER") || strings.EqualFold(symbol, "SYMBOL") {
			continue
		}
		if ValidateSymbol(symbol) != nil {
			continue
		}
		if seen[symbol] {
			continue
		}
		seen[symbol] = true
		tickers = append(tickers, symbol)
	}

	if len(tickers) == 0 {
		return nil, fmt.Errorf("no valid ticker symbols in %s", path)
	}
	return tickers, nil
}
