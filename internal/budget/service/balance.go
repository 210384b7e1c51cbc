package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fintrack/household-budget/internal/budget/domain"
)

// AdjustAccountBalance returns the balance that results from applying an
// offset of the given kind: credit adds, expense subtracts.
//
// The offset may be negative to reverse a previously applied effect, so the
// same function serves posting, re-posting and un-posting. It is pure and
// idempotent for identical inputs.
func AdjustAccountBalance(startingBalance decimal.Decimal, kind domain.TransactionKind, offsetAmount decimal.Decimal) (decimal.Decimal, error) {
	switch kind {
	case domain.Credit:
		return startingBalance.Add(offsetAmount), nil
	case domain.Expense:
		return startingBalance.Sub(offsetAmount), nil
	default:
		// Kind is a closed set; reaching this is a programming error.
		return decimal.Decimal{}, fmt.Errorf("unknown transaction kind %q: %w", kind, domain.ErrInvalidOperation)
	}
}
