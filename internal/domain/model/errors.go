package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Error kinds surfaced by the engine. Callers match them with errors.Is;
// the wrapped message names the offending field and constraint.
var (
	// ErrInvalidInput rejects schedule parameters before any computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPayment rejects a non-positive payment amount outright.
	ErrInvalidPayment = errors.New("invalid payment")

	// ErrInconsistentState signals a data-integrity problem in stored
	// installments (negative pending fields, broken capital invariant).
	// The engine detects it and surfaces it; it never repairs the data.
	ErrInconsistentState = errors.New("inconsistent installment state")
)

// Round2 rounds a monetary figure to 2 decimal places, half up. Every
// stored money field in the engine passes through this after each
// arithmetic step.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
