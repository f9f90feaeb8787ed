// Package cart holds the storefront cart: its state, the actions that change it,
// a pure reducer over those actions and the snapshot that persists it between requests.
package cart

import (
	"strings"

	"floralshop/internal/model"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the customer's chosen way to pay.
type PaymentMethod string

const (
	PaymentPayPal PaymentMethod = "PayPal"
	PaymentStripe PaymentMethod = "Stripe"
	PaymentCash   PaymentMethod = "Cash"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{PaymentPayPal, PaymentStripe, PaymentCash}

// ParsePaymentMethod validates a submitted payment method. Matching is exact.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if strings.TrimSpace(s) == "" {
		return "", model.ErrMissingPayment
	}
	for _, m := range PaymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", model.ErrInvalidPayment
}

// Item is a product line in the cart. Items are unique by ProductID.
type Item struct {
	ProductID    string          `json:"productId"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int             `json:"countInStock"`
	Quantity     int             `json:"quantity"`
}

// Subtotal returns price × quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemFromProduct builds a cart line from authoritative product data.
func ItemFromProduct(p *model.Product, quantity int) Item {
	return Item{
		ProductID:    p.ID,
		Slug:         p.Slug,
		Name:         p.Name,
		Image:        p.Image,
		Price:        p.Price,
		CountInStock: p.CountInStock,
		Quantity:     quantity,
	}
}

// Cart is the full cart state. Totals are derived, never stored.
type Cart struct {
	Items           []Item                `json:"cartItems"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod         `json:"paymentMethod,omitempty"`
}

// Empty returns a cart with no items, no address and no payment method.
func Empty() Cart {
	return Cart{Items: []Item{}}
}

// Find returns the item for productID, if present.
func (c Cart) Find(productID string) (Item, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// ItemsCount is the sum of all quantities.
func (c Cart) ItemsCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// ItemsPrice is the sum of price × quantity over all items.
func (c Cart) ItemsPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// View is the cart as returned to clients, with derived totals.
type View struct {
	Cart
	ItemsCount int             `json:"itemsCount"`
	ItemsPrice decimal.Decimal `json:"itemsPrice"`
}

// NewView computes the derived totals for c.
func NewView(c Cart) View {
	return View{
		Cart:       c,
		ItemsCount: c.ItemsCount(),
		ItemsPrice: c.ItemsPrice(),
	}
}
