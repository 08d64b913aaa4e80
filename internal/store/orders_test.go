package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
)

type mockOrderGateway struct {
	order      domain.Order
	orders     []domain.Order
	err        error
	lastPay    domain.PaymentResult
	payCalled  bool
	deliverIDs []string
}

func (m *mockOrderGateway) GetOrder(context.Context, string) (domain.Order, error) {
	if m.err != nil {
		return domain.Order{}, m.err
	}
	return m.order, nil
}

func (m *mockOrderGateway) PayOrder(_ context.Context, _ string, result domain.PaymentResult) (domain.Order, error) {
	m.payCalled = true
	m.lastPay = result
	if m.err != nil {
		return domain.Order{}, m.err
	}
	paid := m.order
	paid.IsPaid = true
	return paid, nil
}

func (m *mockOrderGateway) DeliverOrder(_ context.Context, id string) (domain.Order, error) {
	m.deliverIDs = append(m.deliverIDs, id)
	if m.err != nil {
		return domain.Order{}, m.err
	}
	delivered := m.order
	delivered.IsDelivered = true
	return delivered, nil
}

func (m *mockOrderGateway) MyOrders(context.Context) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *mockOrderGateway) ListOrders(context.Context) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func TestGetFillsOrderDetail(t *testing.T) {
	gw := &mockOrderGateway{order: domain.Order{ID: "o1"}}
	orders := NewOrders(gw, zap.NewNop())

	got, err := orders.Get(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", got.ID)
	assert.Equal(t, "o1", orders.Detail.View().Value.ID)
}

func TestSimulatePaymentBuildsCompletedResult(t *testing.T) {
	gw := &mockOrderGateway{order: domain.Order{ID: "o1"}}
	orders := NewOrders(gw, zap.NewNop())

	paid, err := orders.SimulatePayment(context.Background(), "o1", "buyer@example.com")
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	require.True(t, gw.payCalled)
	assert.Equal(t, "COMPLETED", gw.lastPay.Status)
	assert.True(t, strings.HasPrefix(gw.lastPay.ID, "pay_"))
	assert.Equal(t, "buyer@example.com", gw.lastPay.Payer.EmailAddress)

	// both the pay slot and the open order detail reflect the paid order
	assert.True(t, orders.Pay.View().Success)
	assert.True(t, orders.Detail.View().Value.IsPaid)
}

func TestSimulatePaymentFailureKeepsDetail(t *testing.T) {
	gw := &mockOrderGateway{order: domain.Order{ID: "o1"}}
	orders := NewOrders(gw, zap.NewNop())
	_, err := orders.Get(context.Background(), "o1")
	require.NoError(t, err)

	gw.err = errors.New("payment declined")
	_, err = orders.SimulatePayment(context.Background(), "o1", "buyer@example.com")
	require.EqualError(t, err, "payment declined")

	assert.EqualError(t, orders.Pay.View().Err, "payment declined")
	assert.False(t, orders.Detail.View().Value.IsPaid)
	assert.Equal(t, "o1", orders.Detail.View().Value.ID)
}

func TestOpeningAnotherOrderDropsPayState(t *testing.T) {
	gw := &mockOrderGateway{order: domain.Order{ID: "o1"}}
	orders := NewOrders(gw, zap.NewNop())

	_, err := orders.SimulatePayment(context.Background(), "o1", "buyer@example.com")
	require.NoError(t, err)
	require.True(t, orders.Pay.View().Success)

	gw.order = domain.Order{ID: "o2"}
	_, err = orders.Get(context.Background(), "o2")
	require.NoError(t, err)

	// the paid banner from o1 must not show on o2
	assert.False(t, orders.Pay.View().Success)
	assert.NoError(t, orders.Pay.View().Err)
	assert.Equal(t, "o2", orders.Detail.View().Value.ID)
}

func TestReopeningSameOrderKeepsPayState(t *testing.T) {
	gw := &mockOrderGateway{order: domain.Order{ID: "o1"}}
	orders := NewOrders(gw, zap.NewNop())

	_, err := orders.SimulatePayment(context.Background(), "o1", "buyer@example.com")
	require.NoError(t, err)

	gw.order.IsPaid = true
	_, err = orders.Get(context.Background(), "o1")
	require.NoError(t, err)
	assert.True(t, orders.Pay.View().Success)
}

func TestMarkDelivered(t *testing.T) {
	gw := &mockOrderGateway{order: domain.Order{ID: "o2"}}
	orders := NewOrders(gw, zap.NewNop())

	delivered, err := orders.MarkDelivered(context.Background(), "o2")
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	assert.Equal(t, []string{"o2"}, gw.deliverIDs)
	assert.True(t, orders.Deliver.View().Success)
}

func TestLoadMineAndAll(t *testing.T) {
	gw := &mockOrderGateway{orders: []domain.Order{{ID: "a"}, {ID: "b"}}}
	orders := NewOrders(gw, zap.NewNop())

	mine, err := orders.LoadMine(context.Background())
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Len(t, orders.Mine.View().Value, 2)

	all, err := orders.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
