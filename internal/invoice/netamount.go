package invoice

import (
	"errors"
	"fmt"

	"github.com/minsu/procure-budget/internal/model"
)

// Withholding rates per invoice type, in parts per thousand. Integer
// ratios keep every split an exact decimal floor of the gross amount.
const (
	businessIncomePerMille = 33
	otherIncomePerMille    = 88
)

var (
	ErrInvalidInvoiceType = errors.New("invalid invoice type")
	ErrInvalidAmount      = errors.New("amount must be positive")
	// ErrExemptUnconfirmed is returned when net amounts are requested for a
	// tax-exempt selection that has not been explicitly confirmed.
	ErrExemptUnconfirmed = errors.New("tax-exempt selection requires confirmation")
)

// NetAmounts is the decomposition of a gross payment amount under one
// invoice type. Exactly one of TaxAmount and DeductionAmount is non-zero,
// except for tax-exempt payments where both are zero.
type NetAmounts struct {
	SupplyAmount    int64
	TaxAmount       int64
	DeductionAmount int64
}

// Selection is the confirmation state of an invoice-type choice. Tax-exempt
// starts out unconfirmed and computes nothing until Confirm is called;
// every other type is confirmed on selection. The zero value is unusable,
// forcing construction through Select.
type Selection struct {
	invoiceType model.InvoiceType
	confirmed   bool
}

// Select starts an invoice-type selection. Tax-exempt comes back pending
// confirmation; all other valid types are immediately usable.
func Select(t model.InvoiceType) (Selection, error) {
	if !t.Valid() {
		return Selection{}, fmt.Errorf("%w: %q", ErrInvalidInvoiceType, t)
	}
	return Selection{
		invoiceType: t,
		confirmed:   t != model.InvoiceTaxExempt,
	}, nil
}

// InvoiceType reports the currently selected type.
func (s Selection) InvoiceType() model.InvoiceType { return s.invoiceType }

// PendingConfirmation reports whether the selection still needs an explicit
// confirmation before amounts can be computed.
func (s Selection) PendingConfirmation() bool {
	return s.invoiceType == model.InvoiceTaxExempt && !s.confirmed
}

// Confirm marks a pending tax-exempt selection as verified by the user.
func (s Selection) Confirm() Selection {
	s.confirmed = true
	return s
}

// Cancel aborts a pending tax-exempt confirmation and falls back to the
// default tax-invoice type.
func (s Selection) Cancel() Selection {
	return Selection{invoiceType: model.InvoiceTaxInvoice, confirmed: true}
}

// NetAmounts computes the supply/tax/deduction split of a gross amount for
// the selected invoice type. An unconfirmed tax-exempt selection never
// computes anything.
func (s Selection) NetAmounts(amount int64) (NetAmounts, error) {
	if amount <= 0 {
		return NetAmounts{}, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if s.PendingConfirmation() {
		return NetAmounts{}, ErrExemptUnconfirmed
	}

	switch s.invoiceType {
	case model.InvoiceTaxInvoice:
		// floor(amount/1.1) without the binary-float detour
		supply := amount * 10 / 11
		return NetAmounts{
			SupplyAmount: supply,
			TaxAmount:    amount - supply,
		}, nil
	case model.InvoiceBusinessIncome:
		deduction := amount * businessIncomePerMille / 1000
		return NetAmounts{
			SupplyAmount:    amount - deduction,
			DeductionAmount: deduction,
		}, nil
	case model.InvoiceOtherIncome:
		deduction := amount * otherIncomePerMille / 1000
		return NetAmounts{
			SupplyAmount:    amount - deduction,
			DeductionAmount: deduction,
		}, nil
	case model.InvoiceTaxExempt:
		return NetAmounts{SupplyAmount: amount}, nil
	default:
		return NetAmounts{}, fmt.Errorf("%w: %q", ErrInvalidInvoiceType, s.invoiceType)
	}
}
