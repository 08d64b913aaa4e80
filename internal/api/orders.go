package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

// CreateOrder submits the checkout snapshot. idempotencyKey guards against the
// same attempt being applied twice if the submit is re-sent.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft, idempotencyKey string) (domain.Order, error) {
	var order domain.Order
	err := c.doWithHeader(ctx, http.MethodPost, "/orders", draft, &order,
		"failed to create order", "Idempotency-Key", idempotencyKey)
	return order, err
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &order, "failed to load order")
	return order, err
}

// PayOrder records the (simulated) payment confirmation on an order.
func (c *Client) PayOrder(ctx context.Context, id string, result domain.PaymentResult) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/pay", result, &order, "failed to process payment")
	return order, err
}

// DeliverOrder marks an order delivered. Admin only.
func (c *Client) DeliverOrder(ctx context.Context, id string) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/deliver", struct{}{}, &order, "failed to mark order delivered")
	return order, err
}

// MyOrders lists the session user's orders.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/orders/myorders", nil, &orders, "failed to load your orders")
	return orders, err
}

// ListOrders lists every order. Admin only.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/orders", nil, &orders, "failed to load orders")
	return orders, err
}
