package valuation

import "errors"

// Engine failures are terminal for a single computation; there are no
// retries at this layer. Callers match with errors.Is.
var (
	// ErrInsufficientData means the historical inputs cannot support the
	// requested derivation (history too short, non-positive baseline).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidInput means a domain constraint was violated
	// (non-positive shares outstanding, non-positive discount rate).
	ErrInvalidInput = errors.New("invalid input")
)
