package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/smileroute/smileroute-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// Line is the minimal shape the calculator needs to price a quote row.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// LineTotal returns the extended price for a single line.
func LineTotal(line Line) decimal.Decimal {
	if line.Quantity <= 0 {
		return decimal.Zero
	}
	return line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
}

// Subtotal sums the extended price of every line at full precision.
func Subtotal(lines []Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineTotal(line))
	}
	return subtotal
}

// DiscountAmount computes the monetary discount a promotion grants against
// the supplied subtotal. Percentage discounts are taken on the subtotal and
// fixed discounts are capped so they can never exceed it. The result is
// always in the [0, subtotal] range.
func DiscountAmount(subtotal decimal.Decimal, kind enums.PromotionKind, value decimal.Decimal) decimal.Decimal {
	if subtotal.LessThanOrEqual(decimal.Zero) || value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch kind {
	case enums.PromotionKindPercentage:
		discount = subtotal.Mul(value).Div(oneHundred)
	case enums.PromotionKindFixedAmount:
		discount = value
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// Total returns subtotal minus discount, floored at zero.
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
