package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/quantfold/intrinsic/internal/dataflows"
)

// validateTickerAnswer adapts the symbol rules to a survey validator.
func validateTickerAnswer(val interface{}) error {
	str, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected a string answer")
	}
	return dataflows.ValidateSymbol(str)
}

// PromptForTicker prompts the user to enter a stock ticker symbol
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "The symbol is looked up on Yahoo Finance",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(validateTickerAnswer))
	if err != nil {
		return "", err
	}

	return dataflows.NormalizeSymbol(ticker), nil
}

// PromptForDiscountRate asks for an optional discount rate override.
// Empty input keeps the derived rate; otherwise the answer replaces it
// for the next recomputation, like the slider in a dashboard.
func PromptForDiscountRate(current float64) (*float64, error) {
	var answer string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Adjust discount rate (current %.2f%%, enter e.g. 0.10 or 10%%, empty to keep):", current*100),
		Help:    "An explicit rate replaces the CAPM-derived one for all downstream math",
	}

	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return nil
		}
		rate, err := parseRate(str)
		if err != nil {
			return err
		}
		if rate <= 0 {
			return fmt.Errorf("discount rate must be positive")
		}
		return nil
	}))

	if err != nil {
		return nil, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil
	}

	rate, err := parseRate(answer)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// PromptForAnotherRound asks whether to rerun with a different rate.
func PromptForAnotherRound() (bool, error) {
	var again bool
	prompt := &survey.Confirm{
		Message: "Recompute with a different discount rate?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &again); err != nil {
		return false, err
	}
	return again, nil
}

// parseRate accepts "0.10" or "10%" and returns a fraction.
func parseRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse rate %q", s)
	}
	if percent || v > 1 {
		v = v / 100
	}
	return v, nil
}
