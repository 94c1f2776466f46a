package model

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceType string

const (
	// InvoiceTaxInvoice strips 10% VAT from the gross amount.
	InvoiceTaxInvoice InvoiceType = "TAX_INVOICE"
	// InvoiceBusinessIncome withholds 3.3%.
	InvoiceBusinessIncome InvoiceType = "BUSINESS_INCOME"
	// InvoiceOtherIncome withholds 8.8%.
	InvoiceOtherIncome InvoiceType = "OTHER_INCOME"
	// InvoiceTaxExempt pays the gross amount untouched. Requires an
	// explicit confirmation before any amounts are computed.
	InvoiceTaxExempt InvoiceType = "TAX_EXEMPT"
)

func (t InvoiceType) Valid() bool {
	switch t {
	case InvoiceTaxInvoice, InvoiceBusinessIncome, InvoiceOtherIncome, InvoiceTaxExempt:
		return true
	}
	return false
}

type PaymentType string

const (
	PaymentAdvance PaymentType = "ADVANCE" // 70% tranche
	PaymentBalance PaymentType = "BALANCE" // 30% tranche
)

// TrancheRatio is the percentage of the project budget this payment type
// may draw from.
func (t PaymentType) TrancheRatio() int {
	if t == PaymentBalance {
		return 30
	}
	return 70
}

func (t PaymentType) Valid() bool {
	return t == PaymentAdvance || t == PaymentBalance
}

type POStatus string

const (
	POStatusPending POStatus = "pending"
	POStatusPaid    POStatus = "paid"
)

type PurchaseOrder struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID   `gorm:"type:uuid;index"`
	PONumber        string      `gorm:"uniqueIndex;size:32"`
	Amount          int64       // gross requested amount, whole won
	InvoiceType     InvoiceType `gorm:"size:32"`
	SupplyAmount    int64
	TaxAmount       int64
	DeductionAmount int64
	PaymentType     PaymentType `gorm:"size:16"`
	Status          POStatus    `gorm:"size:16"`
	CreatedAt       time.Time
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }
