// Package pricing derives the monetary fields of a cart from its line items.
// Compute is pure: no state, same input always yields the same totals.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

var (
	// FreeShippingThreshold is the subtotal above which (strictly) shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(100)

	// FlatShippingFee applies to every order at or below the threshold.
	FlatShippingFee = decimal.NewFromInt(10)

	// TaxRate is applied to the items subtotal.
	TaxRate = decimal.NewFromFloat(0.15)
)

// Compute returns the four derived totals for the given cart lines. Tax and
// total are rounded half-up to two decimal places; the subtotal is kept exact.
func Compute(items []domain.CartItem) domain.CartTotals {
	itemsPrice := decimal.Zero
	for _, item := range items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		itemsPrice = itemsPrice.Add(line)
	}

	shipping := FlatShippingFee
	if itemsPrice.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := itemsPrice.Mul(TaxRate).Round(2)
	total := itemsPrice.Add(shipping).Add(tax).Round(2)

	return domain.CartTotals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    total,
	}
}
