package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quantfold/intrinsic/internal/models"
)

var screenHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#3B82F6"))

// RenderScreenTable prints a compact ranked summary for many tickers.
func RenderScreenTable(results []*models.ValuationResult) {
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-8s %12s %12s %10s %8s  %-12s\n",
		"Ticker", "Fair Value", "Price", "Upside", "Rate", "Status"))
	b.WriteString(strings.Repeat("-", 68) + "\n")

	for _, r := range results {
		status := r.Status
		if r.GrowthRate.WasClamped {
			status += " *"
		}
		b.WriteString(fmt.Sprintf("%-8s %12.2f %12.2f %9.1f%% %7.2f%%  %-12s\n",
			r.Ticker, r.AdjustedValuePerShare, r.CurrentPrice,
			r.UpsidePercentage, r.DiscountRate*100, status))
	}

	fmt.Println(screenHeaderStyle.Render(fmt.Sprintf("Valuation Screen — %d tickers", len(results))))
	fmt.Print(b.String())
	fmt.Println(noteStyle.Render("* growth rate clamped to the configured band"))
}
