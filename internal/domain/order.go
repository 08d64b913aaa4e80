package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDraft is the snapshot of cart contents and checkout selections sent to
// the commerce API when the order is placed. The server answers with an Order.
type OrderDraft struct {
	OrderItems      []CartItem      `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TaxPrice        decimal.Decimal `json:"taxPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}

// Order is the server-owned aggregate. The client only requests creation and
// observes it through fetches; it never mutates one locally.
type Order struct {
	ID              string          `json:"_id"`
	User            OrderUser       `json:"user"`
	OrderItems      []CartItem      `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TaxPrice        decimal.Decimal `json:"taxPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type OrderUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PaymentResult is the simulated payment confirmation sent to the pay endpoint.
type PaymentResult struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	UpdateTime string       `json:"update_time"`
	Payer      PaymentPayer `json:"payer"`
}

type PaymentPayer struct {
	EmailAddress string `json:"email_address"`
}
