package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

type OrderGateway interface {
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	PayOrder(ctx context.Context, id string, result domain.PaymentResult) (domain.Order, error)
	DeliverOrder(ctx context.Context, id string) (domain.Order, error)
	MyOrders(ctx context.Context) ([]domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// Orders tracks order state. Pay and Deliver get their own slots, matching the
// storefront's separate loading/success flags for those actions, while both
// refresh the Detail slot with the returned order.
type Orders struct {
	gw     OrderGateway
	logger *zap.Logger

	Detail  Slot[domain.Order]
	Mine    Slot[[]domain.Order]
	All     Slot[[]domain.Order]
	Pay     Slot[domain.Order]
	Deliver Slot[domain.Order]
}

func NewOrders(gw OrderGateway, logger *zap.Logger) *Orders {
	return &Orders{gw: gw, logger: logger}
}

// Get loads one order into the Detail slot. A pay or deliver outcome belongs
// to the order it was issued for, so opening a different order returns those
// slots to idle.
func (o *Orders) Get(ctx context.Context, id string) (domain.Order, error) {
	prev := o.Detail.View().Value.ID
	gen := o.Detail.Begin()
	order, err := o.gw.GetOrder(ctx, id)
	if err != nil {
		o.Detail.Fail(gen, err)
		return domain.Order{}, err
	}
	o.Detail.Resolve(gen, order)
	if order.ID != prev {
		o.Pay.Reset()
		o.Deliver.Reset()
	}
	return order, nil
}

// SimulatePayment builds a completed payment confirmation for the given payer
// and records it on the order. There is no real capture behind this.
func (o *Orders) SimulatePayment(ctx context.Context, id, payerEmail string) (domain.Order, error) {
	result := domain.PaymentResult{
		ID:         fmt.Sprintf("pay_%d", time.Now().UnixMilli()),
		Status:     "COMPLETED",
		UpdateTime: time.Now().UTC().Format(time.RFC3339),
		Payer:      domain.PaymentPayer{EmailAddress: payerEmail},
	}

	gen := o.Pay.Begin()
	order, err := o.gw.PayOrder(ctx, id, result)
	if err != nil {
		o.Pay.Fail(gen, err)
		return domain.Order{}, err
	}
	o.Pay.Resolve(gen, order)
	o.Detail.Resolve(o.Detail.Begin(), order)
	o.logger.Info("order paid", zap.String("order_id", id))
	return order, nil
}

// MarkDelivered flags the order delivered (admin).
func (o *Orders) MarkDelivered(ctx context.Context, id string) (domain.Order, error) {
	gen := o.Deliver.Begin()
	order, err := o.gw.DeliverOrder(ctx, id)
	if err != nil {
		o.Deliver.Fail(gen, err)
		return domain.Order{}, err
	}
	o.Deliver.Resolve(gen, order)
	o.Detail.Resolve(o.Detail.Begin(), order)
	return order, nil
}

// LoadMine lists the session user's orders into the Mine slot.
func (o *Orders) LoadMine(ctx context.Context) ([]domain.Order, error) {
	gen := o.Mine.Begin()
	orders, err := o.gw.MyOrders(ctx)
	if err != nil {
		o.Mine.Fail(gen, err)
		return nil, err
	}
	o.Mine.Resolve(gen, orders)
	return orders, nil
}

// LoadAll lists every order into the All slot (admin).
func (o *Orders) LoadAll(ctx context.Context) ([]domain.Order, error) {
	gen := o.All.Begin()
	orders, err := o.gw.ListOrders(ctx)
	if err != nil {
		o.All.Fail(gen, err)
		return nil, err
	}
	o.All.Resolve(gen, orders)
	return orders, nil
}
