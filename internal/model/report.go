package model

import "time"

// BudgetStatusRow is one project line of the budget-status report: the
// available budget against what the issued POs have consumed.
type BudgetStatusRow struct {
	ProjectNumber   string
	Manager         string
	TotalBudget     int64
	UsedBudget      int64
	RemainingBudget int64
	Status          ProjectStatus
	CreatedAt       time.Time
}

type BudgetStatusReport struct {
	GeneratedAt time.Time
	FromDate    *time.Time
	ToDate      *time.Time
	Rows        []BudgetStatusRow
}

// PODocument carries everything the printable purchase-order sheet needs.
type PODocument struct {
	PO      PurchaseOrder
	Project Project
	Budget  Budget
}
