package checkout

import (
	"floralshop/internal/cart"

	"github.com/shopspring/decimal"
)

var (
	freeShippingThreshold = decimal.NewFromInt(200)
	flatShippingPrice     = decimal.NewFromInt(15)
	taxRate               = decimal.RequireFromString("0.15")
)

// Summary is the priced order shown on the place-order step.
type Summary struct {
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// Price computes the order summary for c. Shipping is free above 200;
// every figure is rounded to two decimals.
func Price(c cart.Cart) Summary {
	items := c.ItemsPrice().Round(2)

	shipping := flatShippingPrice
	if items.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := items.Mul(taxRate).Round(2)

	return Summary{
		ItemsPrice:    items,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    items.Add(shipping).Add(tax).Round(2),
	}
}
