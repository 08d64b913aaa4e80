// Package store holds the client-side state of the storefront session: the
// cart state machine and the per-resource request trackers over the commerce
// API. State lives in memory; the durable mirror only preserves checkout
// progress across restarts.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
	"github.com/Lamecke/frontend-ecommerce/internal/mirror"
	"github.com/Lamecke/frontend-ecommerce/internal/pricing"
)

// OrderCreator is the one gateway call the cart needs. Consumers define this
// interface, not the API client.
type OrderCreator interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft, idempotencyKey string) (domain.Order, error)
}

// Cart is the checkout state machine. Mutations recompute the derived totals
// before returning and persist the changed selection to the mirror; a mirror
// write failure is logged but never fails the mutation, the mirror is a
// best-effort cache.
type Cart struct {
	mu      sync.Mutex
	logger  *zap.Logger
	mirror  mirror.Mirror
	orders  OrderCreator
	items   []domain.CartItem
	address domain.ShippingAddress
	method  domain.PaymentMethod
	totals  domain.CartTotals
	state   domain.CheckoutState
}

// CartView is a point-in-time copy of the cart for rendering.
type CartView struct {
	Items           []domain.CartItem      `json:"cartItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod"`
	Totals          domain.CartTotals      `json:"totals"`
	State           domain.CheckoutState   `json:"state"`
}

func NewCart(m mirror.Mirror, orders OrderCreator, logger *zap.Logger) *Cart {
	return &Cart{
		logger: logger,
		mirror: m,
		orders: orders,
		totals: domain.ZeroTotals(),
		state:  domain.CheckoutEmpty,
	}
}

// Hydrate restores checkout progress from the mirror. Missing keys are fine;
// an unreadable key is logged and skipped. The checkout state is re-derived
// from whatever was recovered.
func (c *Cart) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var items []domain.CartItem
	if err := c.mirror.Load(ctx, mirror.KeyCartItems, &items); err == nil {
		c.items = items
	} else if !errors.Is(err, mirror.ErrNotFound) {
		c.logger.Warn("hydrate cart items failed", zap.Error(err))
	}

	var addr domain.ShippingAddress
	if err := c.mirror.Load(ctx, mirror.KeyShippingAddress, &addr); err == nil {
		c.address = addr
	} else if !errors.Is(err, mirror.ErrNotFound) {
		c.logger.Warn("hydrate shipping address failed", zap.Error(err))
	}

	var method domain.PaymentMethod
	if err := c.mirror.Load(ctx, mirror.KeyPaymentMethod, &method); err == nil && method.Valid() {
		c.method = method
	} else if err != nil && !errors.Is(err, mirror.ErrNotFound) {
		c.logger.Warn("hydrate payment method failed", zap.Error(err))
	}

	switch {
	case len(c.items) == 0:
		c.state = domain.CheckoutEmpty
	case !c.address.Complete():
		c.state = domain.CheckoutHasItems
	case c.method == "":
		c.state = domain.CheckoutAddressSet
	default:
		c.state = domain.CheckoutPaymentSet
	}
	c.recompute()
}

// Flush writes every current selection through to the mirror. Teardown hook.
func (c *Cart) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mirror.Save(ctx, mirror.KeyCartItems, c.items); err != nil {
		return err
	}
	if c.address.Complete() {
		if err := c.mirror.Save(ctx, mirror.KeyShippingAddress, c.address); err != nil {
			return err
		}
	}
	if c.method != "" {
		if err := c.mirror.Save(ctx, mirror.KeyPaymentMethod, c.method); err != nil {
			return err
		}
	}
	return nil
}

// AddItem appends the line, or replaces the existing line for the same product
// wholesale. The replaced quantity is the supplied one, never the sum; this
// matches how the storefront always behaved. Quantity must already respect
// stock and the per-line cap.
func (c *Cart) AddItem(ctx context.Context, item domain.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == domain.CheckoutSubmitting {
		return domain.ErrSubmitInFlight
	}

	replaced := false
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		c.items = append(c.items, item)
	}

	if c.state == domain.CheckoutEmpty || c.state == domain.CheckoutPlaced {
		c.state = domain.CheckoutHasItems
	}
	c.recompute()
	c.persistItems(ctx)
	return nil
}

// RemoveItem drops the line for productID. Removing the last line empties the
// cart and zeroes the totals.
func (c *Cart) RemoveItem(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == domain.CheckoutSubmitting {
		return domain.ErrSubmitInFlight
	}

	kept := c.items[:0]
	for _, item := range c.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept

	if len(c.items) == 0 {
		c.state = domain.CheckoutEmpty
	}
	c.recompute()
	c.persistItems(ctx)
	return nil
}

// Clear drops every line and zeroes the totals. The shipping address and
// payment method survive so a repeat purchase keeps its selections.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == domain.CheckoutSubmitting {
		return domain.ErrSubmitInFlight
	}

	c.clearItems(ctx)
	c.state = domain.CheckoutEmpty
	return nil
}

// SetShippingAddress records the delivery destination. Requires a non-empty
// cart and all four address fields.
func (c *Cart) SetShippingAddress(ctx context.Context, addr domain.ShippingAddress) error {
	if !addr.Complete() {
		return domain.ErrInvalidAddress
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == domain.CheckoutSubmitting {
		return domain.ErrSubmitInFlight
	}
	if len(c.items) == 0 {
		return domain.ErrCartEmpty
	}

	c.address = addr
	c.state = domain.CheckoutAddressSet
	if err := c.mirror.Save(ctx, mirror.KeyShippingAddress, addr); err != nil {
		c.logger.Warn("persist shipping address failed", zap.Error(err))
	}
	return nil
}

// SetPaymentMethod records how the order will be paid. Requires the address
// step to be done first.
func (c *Cart) SetPaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	if !method.Valid() {
		return domain.ErrInvalidPayment
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == domain.CheckoutSubmitting {
		return domain.ErrSubmitInFlight
	}
	if c.state != domain.CheckoutAddressSet && c.state != domain.CheckoutPaymentSet {
		return domain.ErrAddressRequired
	}

	c.method = method
	c.state = domain.CheckoutPaymentSet
	if err := c.mirror.Save(ctx, mirror.KeyPaymentMethod, method); err != nil {
		c.logger.Warn("persist payment method failed", zap.Error(err))
	}
	return nil
}

// Submit sends the order snapshot to the commerce API. On success the cart is
// cleared and the placed order returned; on failure the cart returns to the
// payment step with its contents intact so the user can retry.
func (c *Cart) Submit(ctx context.Context) (domain.Order, error) {
	c.mu.Lock()
	switch c.state {
	case domain.CheckoutSubmitting:
		c.mu.Unlock()
		return domain.Order{}, domain.ErrSubmitInFlight
	case domain.CheckoutPaymentSet:
	default:
		empty := len(c.items) == 0
		c.mu.Unlock()
		if empty {
			return domain.Order{}, domain.ErrCartEmpty
		}
		return domain.Order{}, domain.ErrPaymentRequired
	}

	draft := domain.OrderDraft{
		OrderItems:      append([]domain.CartItem(nil), c.items...),
		ShippingAddress: c.address,
		PaymentMethod:   c.method,
		ItemsPrice:      c.totals.ItemsPrice,
		ShippingPrice:   c.totals.ShippingPrice,
		TaxPrice:        c.totals.TaxPrice,
		TotalPrice:      c.totals.TotalPrice,
	}
	c.state = domain.CheckoutSubmitting
	c.mu.Unlock()

	order, err := c.orders.CreateOrder(ctx, draft, uuid.NewString())

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = domain.CheckoutPaymentSet
		return domain.Order{}, err
	}

	c.clearItems(ctx)
	c.state = domain.CheckoutPlaced
	c.logger.Info("order placed", zap.String("order_id", order.ID))
	return order, nil
}

// View returns a copy of the current cart.
func (c *Cart) View() CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CartView{
		Items:           append([]domain.CartItem(nil), c.items...),
		ShippingAddress: c.address,
		PaymentMethod:   c.method,
		Totals:          c.totals,
		State:           c.state,
	}
}

// recompute refreshes the derived totals. Callers hold the lock.
func (c *Cart) recompute() {
	if len(c.items) == 0 {
		c.totals = domain.ZeroTotals()
		return
	}
	c.totals = pricing.Compute(c.items)
}

func (c *Cart) persistItems(ctx context.Context) {
	if err := c.mirror.Save(ctx, mirror.KeyCartItems, c.items); err != nil {
		c.logger.Warn("persist cart items failed", zap.Error(err))
	}
}

// clearItems drops the lines, zeroes totals and removes the mirrored lines.
// Callers hold the lock.
func (c *Cart) clearItems(ctx context.Context) {
	c.items = nil
	c.totals = domain.ZeroTotals()
	if err := c.mirror.Delete(ctx, mirror.KeyCartItems); err != nil {
		c.logger.Warn("clear mirrored cart items failed", zap.Error(err))
	}
}
