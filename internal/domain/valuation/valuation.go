// Package valuation holds the fixed pricing constants and pure helpers used
// across the lifecycle: per-category base resale values, CO2e factors, grade
// multipliers and the billing formulas.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// Billing constants.
var (
	// DefaultCommissionPercent is applied to every reseller commission until
	// per-reseller configuration lands.
	DefaultCommissionPercent = decimal.NewFromInt(10)
	// VATRate on invoices.
	VATRate = decimal.NewFromFloat(0.20)
)

// InvoiceDueDays is the fixed offset between issue and due date.
const InvoiceDueDays = 30

// baseValues: estimated buyback per unit, by asset category. Unknown
// categories value at zero.
var baseValues = map[string]decimal.Decimal{
	"laptop":  decimal.NewFromInt(120),
	"desktop": decimal.NewFromInt(45),
	"monitor": decimal.NewFromInt(25),
	"server":  decimal.NewFromInt(350),
	"mobile":  decimal.NewFromInt(60),
	"tablet":  decimal.NewFromInt(70),
	"switch":  decimal.NewFromInt(90),
	"printer": decimal.NewFromInt(15),
}

// co2eFactors: kg CO2e avoided per unit diverted from landfill, by category.
var co2eFactors = map[string]decimal.Decimal{
	"laptop":  decimal.NewFromInt(160),
	"desktop": decimal.NewFromInt(220),
	"monitor": decimal.NewFromInt(90),
	"server":  decimal.NewFromInt(650),
	"mobile":  decimal.NewFromInt(55),
	"tablet":  decimal.NewFromInt(80),
	"switch":  decimal.NewFromInt(130),
	"printer": decimal.NewFromInt(110),
}

// gradeMultipliers scale the base value by assessed condition.
var gradeMultipliers = map[string]decimal.Decimal{
	"A":        decimal.NewFromInt(1),
	"B":        decimal.NewFromFloat(0.7),
	"C":        decimal.NewFromFloat(0.4),
	"D":        decimal.NewFromFloat(0.2),
	"Recycled": decimal.Zero,
}

// BaseValue returns the per-unit buyback estimate for a category, zero if unknown.
func BaseValue(categoryID string) decimal.Decimal {
	return baseValues[categoryID]
}

// ResaleValue computes round(baseValue × gradeMultiplier) for one unit.
// Unknown category or grade yields zero.
func ResaleValue(categoryID, grade string) decimal.Decimal {
	base, ok := baseValues[categoryID]
	if !ok {
		return decimal.Zero
	}
	mult, ok := gradeMultipliers[grade]
	if !ok {
		return decimal.Zero
	}
	return base.Mul(mult).Round(2)
}

// IsKnownGrade reports whether grade is one of the fixed grade constants.
func IsKnownGrade(grade string) bool {
	_, ok := gradeMultipliers[grade]
	return ok
}

// EstimatedBuyback sums quantity × base value across the line items.
func EstimatedBuyback(items []entity.AssetItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(baseValues[item.CategoryID].Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// EstimatedCO2e sums quantity × CO2e factor across the line items.
func EstimatedCO2e(items []entity.AssetItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(co2eFactors[item.CategoryID].Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// CommissionAmount computes round(base × percent / 100).
func CommissionAmount(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}

// InvoiceUnitPrice computes round(buyback / totalQuantity); zero when there is
// nothing to bill per unit.
func InvoiceUnitPrice(buyback decimal.Decimal, totalQuantity int) decimal.Decimal {
	if totalQuantity <= 0 {
		return decimal.Zero
	}
	return buyback.Div(decimal.NewFromInt(int64(totalQuantity))).Round(2)
}

// InvoiceTax computes round(subtotal × VAT).
func InvoiceTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(VATRate).Round(2)
}
