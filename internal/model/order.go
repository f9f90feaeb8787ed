package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a placed customer order.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          string          `json:"userId" db:"user_id"`
	Items           []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice" db:"items_price"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice" db:"shipping_price"`
	TaxPrice        decimal.Decimal `json:"taxPrice" db:"tax_price"`
	TotalPrice      decimal.Decimal `json:"totalPrice" db:"total_price"`
	IsPaid          bool            `json:"isPaid" db:"is_paid"`
	IsDelivered     bool            `json:"isDelivered" db:"is_delivered"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order, frozen at placement time.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Slug      string          `json:"slug" db:"slug"`
	Name      string          `json:"name" db:"name"`
	Image     string          `json:"image" db:"image"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
}

// ShippingAddress is the delivery address stored on an order.
type ShippingAddress struct {
	FullName   string `json:"fullName" db:"shipping_full_name"`
	Address    string `json:"address" db:"shipping_address"`
	City       string `json:"city" db:"shipping_city"`
	PostalCode string `json:"postalCode" db:"shipping_postal_code"`
	Country    string `json:"country" db:"shipping_country"`
}
