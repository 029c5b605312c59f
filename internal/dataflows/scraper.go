package dataflows

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// StatisticsScraper scrapes the Yahoo key-statistics page as a fallback
// when the quoteSummary API omits a field (beta in particular).
type StatisticsScraper struct {
	client *resty.Client
	cache  *CacheManager
}

// NewStatisticsScraper creates a new statistics scraper.
func NewStatisticsScraper(config *Config) *StatisticsScraper {
	cacheDir := filepath.Join(config.DataCacheDir, "key_statistics")
	cache := NewCacheManager(cacheDir, config.FundamentalsTTL, config.CacheEnabled)

	client := resty.New()
	client.SetTimeout(config.RequestTimeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	return &StatisticsScraper{
		client: client,
		cache:  cache,
	}
}

// ScrapeBeta tries to read the beta figure from the key-statistics page.
func (ss *StatisticsScraper) ScrapeBeta(symbol string) (float64, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return 0, err
	}

	symbol = NormalizeSymbol(symbol)

	var cached float64
	if ss.cache.Get("scrape", "beta", symbol, &cached) {
		return cached, nil
	}

	pageURL := fmt.Sprintf("https://finance.yahoo.com/quote/%s/key-statistics", symbol)

	var beta float64
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := ss.client.R().Get(pageURL)
		if err != nil {
			return fmt.Errorf("failed to fetch key statistics for %s: %w", symbol, err)
		}
		if resp.StatusCode() == 404 {
			return fmt.Errorf("%w: %s", ErrNotFound, symbol)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching key statistics for %s", resp.StatusCode(), symbol)
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse key statistics page: %w", err)
		}

		beta, err = extractBeta(doc)
		return err
	})

	if err != nil {
		return 0, err
	}

	ss.cache.Set("scrape", "beta", symbol, beta)

	return beta, nil
}

// extractBeta walks statistic table rows looking for the beta label.
func extractBeta(doc *goquery.Document) (float64, error) {
	var beta float64
	found := false

	doc.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		label := strings.TrimSpace(row.Find("td").First().Text())
		if !strings.HasPrefix(label, "Beta") {
			return true
		}
		value := strings.TrimSpace(row.Find("td").Last().Text())
		if v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64); err == nil {
			beta = v
			found = true
			return false
		}
		return true
	})

	if !found {
		return 0, fmt.Errorf("beta not present on key statistics page")
	}
	return beta, nil
}
