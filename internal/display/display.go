package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quantfold/intrinsic/internal/models"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(1, 2).
		Width(72)

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Width(28)

	valueStyle = lipgloss.NewStyle().
		Bold(true)

	underpricedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	overpricedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	noteStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Italic(true)
)

// ResultsDisplay renders a valuation run for the terminal.
type ResultsDisplay struct {
	input  *models.FinancialInput
	market models.MarketParams
	result *models.ValuationResult
}

// NewResultsDisplay creates a display for one valuation run.
func NewResultsDisplay(input *models.FinancialInput, market models.MarketParams, result *models.ValuationResult) *ResultsDisplay {
	return &ResultsDisplay{input: input, market: market, result: result}
}

// Render prints the full report.
func (d *ResultsDisplay) Render() {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Intrinsic Valuation — %s", d.headline())))
	fmt.Println(panelStyle.Render(d.dataPreview()))
	fmt.Println(panelStyle.Render(d.discountRateBreakdown()))
	fmt.Println(panelStyle.Render(d.projectionTable()))
	fmt.Println(panelStyle.Render(d.verdict()))
}

func (d *ResultsDisplay) headline() string {
	if d.input.CompanyName != "" {
		return fmt.Sprintf("%s (%s)", d.input.CompanyName, d.input.Ticker)
	}
	return d.input.Ticker
}

// dataPreview shows the raw inputs before any valuation math, so the
// user can sanity-check what the provider returned.
func (d *ResultsDisplay) dataPreview() string {
	var b strings.Builder
	b.WriteString(valueStyle.Render("Data Preview") + "\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}

	row("EPS (ttm)", fmt.Sprintf("%.2f", d.input.EPSTrailing))
	row("Operating Cash Flow (latest)", humanize(d.input.LastOCF()))
	row("OCF observations", fmt.Sprintf("%d years", len(d.input.OCFHistory)))
	row("Shares Outstanding", humanize(d.input.SharesOutstanding))
	row("Beta", fmt.Sprintf("%.2f", d.input.Beta))
	row("Total Cash", humanize(d.input.TotalCash))
	row("Total Debt", humanize(d.input.TotalDebt))
	row("Current Price", fmt.Sprintf("$%.2f", d.input.CurrentPrice))

	return b.String()
}

func (d *ResultsDisplay) discountRateBreakdown() string {
	var b strings.Builder
	b.WriteString(valueStyle.Render("Discount Rate") + "\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}

	row("Risk-Free Rate", fmt.Sprintf("%.2f%%", d.market.RiskFreeRate*100))
	row("Market Risk Premium", fmt.Sprintf("%.2f%%", d.market.MarketRiskPremium*100))
	row("Beta", fmt.Sprintf("%.2f", d.input.Beta))
	row("Discount Rate", fmt.Sprintf("%.2f%%", d.result.DiscountRate*100))
	if d.result.DiscountRateOverride {
		b.WriteString(noteStyle.Render("discount rate manually overridden") + "\n")
	}
	row("Growth Rate (raw)", fmt.Sprintf("%.2f%%", d.result.GrowthRate.Raw*100))
	row("Growth Rate (used)", fmt.Sprintf("%.2f%%", d.result.GrowthRate.Clamped*100))
	if d.result.GrowthRate.WasClamped {
		b.WriteString(noteStyle.Render("growth rate clamped to configured band") + "\n")
	}
	b.WriteString("\n" + labelStyle.Render("Params Source") +
		fmt.Sprintf("%s (as of %s)", d.market.Source, d.market.AsOf.Format("2006-01-02")))

	return b.String()
}

func (d *ResultsDisplay) projectionTable() string {
	var b strings.Builder
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d-Year Projected vs Discounted OCF", len(d.result.ProjectedOCF))) + "\n\n")
	b.WriteString(fmt.Sprintf("%4s  %18s  %18s\n", "Year", "Projected", "Discounted"))

	for _, y := range d.result.Years() {
		b.WriteString(fmt.Sprintf("%4d  %18s  %18s\n", y.Year, humanize(y.Projected), humanize(y.Discounted)))
	}

	return b.String()
}

func (d *ResultsDisplay) verdict() string {
	var b strings.Builder
	b.WriteString(valueStyle.Render("Valuation") + "\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}

	row("Intrinsic Value / Share", fmt.Sprintf("$%.2f", d.result.IntrinsicValuePerShare))
	row("Cash / Share", fmt.Sprintf("$%.2f", d.result.CashPerShare))
	row("Debt / Share", fmt.Sprintf("$%.2f", d.result.DebtPerShare))
	row("Adjusted Value / Share", fmt.Sprintf("$%.2f", d.result.AdjustedValuePerShare))

	eps := fmt.Sprintf("$%.2f", d.result.EPSFairValue)
	if d.result.EPSLowConfidence {
		eps += "  " + noteStyle.Render("(low confidence: non-positive trailing EPS)")
	}
	row("EPS Fair Value", eps)
	row("Current Price", fmt.Sprintf("$%.2f", d.result.CurrentPrice))

	if d.result.Status != "" {
		style := overpricedStyle
		if d.result.Status == models.StatusUnderpriced {
			style = underpricedStyle
		}
		b.WriteString("\n" + style.Render(fmt.Sprintf("%s — %+.1f%% vs current price", d.result.Status, d.result.UpsidePercentage)))
	}

	return b.String()
}

// humanize renders large dollar amounts with a scale suffix.
func humanize(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
