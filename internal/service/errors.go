package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrBudgetMissing        = errors.New("project has no computed budget")
	ErrTaxExemptUnconfirmed = errors.New("tax-exempt invoice type requires confirmation")
)

// BudgetExceededError rejects a PO whose supply amount is above the
// tranche ceiling. It carries the ceiling so callers can report how much
// is actually spendable for the requested payment type.
type BudgetExceededError struct {
	Ceiling int64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("budget exceeded: available payment budget is %d won", e.Ceiling)
}
