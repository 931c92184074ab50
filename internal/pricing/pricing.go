// Package pricing holds the checkout money math: tax and shipping are derived
// from the cart subtotal and persisted on the order so the charged amount can
// never drift from a later recomputation.
package pricing

import "github.com/shopspring/decimal"

var (
	// TaxRate is applied to the full subtotal.
	TaxRate = decimal.NewFromFloat(0.075)
	// ShippingFee is flat, waived at FreeShippingThreshold.
	ShippingFee           = decimal.NewFromInt(10)
	FreeShippingThreshold = decimal.NewFromInt(50)
)

// Quote is the money breakdown for one checkout.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// QuoteFor derives tax, shipping and total from a cart subtotal.
func QuoteFor(subtotal decimal.Decimal) Quote {
	tax := subtotal.Mul(TaxRate)
	shipping := ShippingFee
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}
