package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MaxQtyPerLine caps how many units of one product a single cart line may hold,
// regardless of stock.
const MaxQtyPerLine = 10

// CartItem is one line of the cart. JSON field names match the commerce API's
// order payload, which reuses the cart line shape verbatim.
type CartItem struct {
	ProductID    string          `json:"product"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int             `json:"countInStock"`
	Qty          int             `json:"qty"`
}

// Validate checks the line's quantity against stock and the per-line cap.
func (i CartItem) Validate() error {
	if i.ProductID == "" {
		return ErrInvalidProduct
	}
	if i.Price.IsNegative() {
		return ErrInvalidPrice
	}
	max := i.CountInStock
	if max > MaxQtyPerLine {
		max = MaxQtyPerLine
	}
	if i.Qty < 1 || i.Qty > max {
		return ErrInvalidQuantity
	}
	return nil
}

// CartTotals holds the four derived monetary fields of a cart.
type CartTotals struct {
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// ZeroTotals returns totals with every field at 0.00.
func ZeroTotals() CartTotals {
	zero := decimal.Zero
	return CartTotals{ItemsPrice: zero, ShippingPrice: zero, TaxPrice: zero, TotalPrice: zero}
}

// ShippingAddress is the checkout delivery destination. All four fields are
// required before the payment step.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Complete reports whether every field is filled in.
func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentPix        PaymentMethod = "PIX"
	PaymentBankSlip   PaymentMethod = "BANK_SLIP"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBankSlip:
		return true
	}
	return false
}

// CheckoutState tracks how far the cart has progressed through checkout.
type CheckoutState string

const (
	CheckoutEmpty      CheckoutState = "EMPTY"
	CheckoutHasItems   CheckoutState = "HAS_ITEMS"
	CheckoutAddressSet CheckoutState = "ADDRESS_SET"
	CheckoutPaymentSet CheckoutState = "PAYMENT_SET"
	CheckoutSubmitting CheckoutState = "SUBMITTING"
	CheckoutPlaced     CheckoutState = "PLACED"
)

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}

var (
	ErrInvalidProduct  = errors.New("cart line has no product id")
	ErrInvalidPrice    = errors.New("cart line price is negative")
	ErrInvalidQuantity = errors.New("quantity out of range for this product")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrAddressRequired = errors.New("shipping address must be set first")
	ErrPaymentRequired = errors.New("payment method must be set first")
	ErrInvalidAddress  = errors.New("shipping address is incomplete")
	ErrInvalidPayment  = errors.New("unknown payment method")
	ErrSubmitInFlight  = errors.New("order submission already in progress")
)
