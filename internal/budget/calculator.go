package budget

import (
	"math"
	"time"

	"github.com/minsu/procure-budget/internal/model"
)

// Fee rates applied to every project budget, expressed as exact integer
// ratios so that every step floors the true decimal value. The labor rate
// accrues 75/100,000 per calendar day of the contract window.
const (
	agencyFeePer100 = 8
	marginPer100    = 10
	laborPer100kDay = 75
	rateDenominator = 100_000
	ceilingDivisor  = 100 * rateDenominator
)

// Float views of the same rates, for callers that carry the fee structure
// as fractions (the payment allocator contract).
const (
	VATRate         = 0.10
	AgencyFeeRate   = 0.08
	MarginRate      = 0.10
	LaborRatePerDay = 0.00075
)

// Calculate derives the budget breakdown for a bid amount and contract
// window. Callers must guarantee maxBidAmount > 0 and endDate after
// startDate; the function itself does not validate.
//
// Every multiplicative step floors the exact decimal value before the
// next one, and the final subtraction operates on the already-floored
// components. The order matters: floor does not distribute over the
// subtraction. Integer arithmetic keeps the floors exact — floor(x/1.1)
// is x*10/11, never a binary-float approximation.
func Calculate(maxBidAmount int64, startDate, endDate time.Time) model.Budget {
	expectedBidAmount := maxBidAmount
	vatExcluded := expectedBidAmount * 10 / 11
	agencyFee := vatExcluded * agencyFeePer100 / 100
	companyMargin := vatExcluded * marginPer100 / 100

	days := int64(ContractDays(startDate, endDate))
	internalLabor := vatExcluded * days * laborPer100kDay / rateDenominator

	availableBudget := vatExcluded - (agencyFee + companyMargin + internalLabor)

	return model.Budget{
		ExpectedBidAmount: expectedBidAmount,
		VatExcluded:       vatExcluded,
		AgencyFee:         agencyFee,
		CompanyMargin:     companyMargin,
		InternalLabor:     internalLabor,
		InternalLaborRate: float64(days) * LaborRatePerDay * 100,
		AvailableBudget:   availableBudget,
	}
}

// ContractDays counts the whole days between two instants, rounding any
// partial day up. A window of exactly 24h is one day; 24h01m is two.
func ContractDays(startDate, endDate time.Time) int {
	return int(math.Ceil(endDate.Sub(startDate).Hours() / 24))
}

// PaymentCeiling is the most a single payment tranche may spend.
// ratioPercent is 70 for an advance and 30 for a balance payment; the
// tranche carries the same proportional fee structure as the whole budget.
// laborRateFraction is the per-project labor rate as a fraction (the
// stored percentage divided by 100).
//
// The rate fractions are snapped back to parts per 100,000 — every rate in
// the system is a multiple of that grain — so the result is the exact
// decimal floor of base*(1-deductions) rather than a float approximation.
func PaymentCeiling(vatExcluded int64, ratioPercent int, agencyFeeRate, marginRate, laborRateFraction float64) int64 {
	deductionParts := int64(math.Round((agencyFeeRate + marginRate + laborRateFraction) * rateDenominator))
	return vatExcluded * int64(ratioPercent) * (rateDenominator - deductionParts) / ceilingDivisor
}
