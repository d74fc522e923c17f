package valuation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/valuation"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResaleValue(t *testing.T) {
	cases := []struct {
		category, grade string
		want            string
	}{
		{"laptop", "A", "120"},
		{"laptop", "B", "84"},
		{"laptop", "C", "48"},
		{"laptop", "D", "24"},
		{"laptop", "Recycled", "0"},
		{"server", "B", "245"},
		{"printer", "C", "6"},
		{"typewriter", "A", "0"}, // unknown category
		{"laptop", "Z", "0"},     // unknown grade
	}
	for _, c := range cases {
		got := valuation.ResaleValue(c.category, c.grade)
		assert.True(t, got.Equal(dec(c.want)),
			"ResaleValue(%s, %s) = %s, want %s", c.category, c.grade, got, c.want)
	}
}

func TestIsKnownGrade(t *testing.T) {
	for _, g := range []string{"A", "B", "C", "D", "Recycled"} {
		assert.True(t, valuation.IsKnownGrade(g))
	}
	assert.False(t, valuation.IsKnownGrade("a"))
	assert.False(t, valuation.IsKnownGrade("E"))
	assert.False(t, valuation.IsKnownGrade(""))
}

func TestEstimatedBuyback(t *testing.T) {
	items := []entity.AssetItem{
		{CategoryID: "laptop", Quantity: 10},  // 1200
		{CategoryID: "monitor", Quantity: 4},  // 100
		{CategoryID: "unknown", Quantity: 99}, // 0
	}
	assert.True(t, valuation.EstimatedBuyback(items).Equal(dec("1300")))
	assert.True(t, valuation.EstimatedBuyback(nil).IsZero())
}

func TestEstimatedCO2e(t *testing.T) {
	items := []entity.AssetItem{
		{CategoryID: "laptop", Quantity: 2}, // 320
		{CategoryID: "server", Quantity: 1}, // 650
	}
	assert.True(t, valuation.EstimatedCO2e(items).Equal(dec("970")))
}

func TestCommissionAmount(t *testing.T) {
	assert.True(t, valuation.CommissionAmount(dec("1000"), dec("10")).Equal(dec("100")))
	// rounding to 2 dp
	assert.True(t, valuation.CommissionAmount(dec("333.33"), dec("10")).Equal(dec("33.33")))
	assert.True(t, valuation.CommissionAmount(dec("0"), dec("10")).IsZero())
}

func TestInvoiceUnitPrice(t *testing.T) {
	assert.True(t, valuation.InvoiceUnitPrice(dec("500"), 5).Equal(dec("100")))
	assert.True(t, valuation.InvoiceUnitPrice(dec("100"), 3).Equal(dec("33.33")))
	assert.True(t, valuation.InvoiceUnitPrice(dec("500"), 0).IsZero())
	assert.True(t, valuation.InvoiceUnitPrice(dec("500"), -1).IsZero())
}

func TestInvoiceTax(t *testing.T) {
	assert.True(t, valuation.InvoiceTax(dec("500")).Equal(dec("100")))
	assert.True(t, valuation.InvoiceTax(dec("33.33")).Equal(dec("6.67")))
}
