package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linghann/retailpos/internal/checkout/domain"
)

func committedSale(orderID, storeID string, createdAt time.Time) *domain.Sale {
	order := &domain.Order{
		OrderID:        orderID,
		CashierID:      "cashier-1",
		StoreID:        storeID,
		Type:           domain.OrderTypeSale,
		DiscountKind:   domain.DiscountSenior,
		DiscountAmount: 2000,
		TotalAmount:    8000,
	}
	order.CreatedAt = createdAt

	return &domain.Sale{
		Order: order,
		Items: []domain.OrderItem{
			{OrderID: orderID, ProductID: "p1", DisplayName: "Coffee", Quantity: 1, UnitPrice: 10000},
		},
		Payment: &domain.Payment{
			PaymentID: orderID + "-pay",
			OrderID:   orderID,
			Method:    domain.PaymentCash,
			Amount:    8000,
			Status:    domain.PaymentStatusPaid,
		},
	}
}

func TestLatestConfirmedOrderAssemblesView(t *testing.T) {
	now := time.Now()
	repo := &fakeSaleRepo{sales: []*domain.Sale{committedSale("order-1", "store-1", now)}}
	svc := NewOrderQueryService(repo, nil, time.Minute)

	view, err := svc.LatestConfirmedOrder(context.Background(), "store-1")

	require.NoError(t, err)
	assert.Equal(t, "order-1", view.OrderID)
	assert.Equal(t, domain.Money(8000), view.TotalAmount)
	require.Len(t, view.Items, 1)
	assert.Equal(t, domain.Money(10000), view.Items[0].LineTotal)
	require.Len(t, view.Payments, 1)
	assert.Equal(t, domain.PaymentStatusPaid, view.Payments[0].Status)
}

func TestLatestConfirmedOrderPicksNewest(t *testing.T) {
	now := time.Now()
	repo := &fakeSaleRepo{sales: []*domain.Sale{
		committedSale("order-1", "store-1", now.Add(-time.Hour)),
		committedSale("order-2", "store-1", now),
		committedSale("order-9", "store-2", now.Add(time.Hour)),
	}}
	svc := NewOrderQueryService(repo, nil, time.Minute)

	view, err := svc.LatestConfirmedOrder(context.Background(), "store-1")

	require.NoError(t, err)
	assert.Equal(t, "order-2", view.OrderID)
}

func TestLatestConfirmedOrderTieBreaksByOrderID(t *testing.T) {
	now := time.Now()
	repo := &fakeSaleRepo{sales: []*domain.Sale{
		committedSale("order-a", "store-1", now),
		committedSale("order-b", "store-1", now),
	}}
	svc := NewOrderQueryService(repo, nil, time.Minute)

	view, err := svc.LatestConfirmedOrder(context.Background(), "store-1")

	require.NoError(t, err)
	assert.Equal(t, "order-b", view.OrderID)
}

func TestLatestConfirmedOrderNotFound(t *testing.T) {
	repo := &fakeSaleRepo{}
	svc := NewOrderQueryService(repo, nil, time.Minute)

	_, err := svc.LatestConfirmedOrder(context.Background(), "store-1")

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestLatestConfirmedOrderUsesCache(t *testing.T) {
	now := time.Now()
	repo := &fakeSaleRepo{sales: []*domain.Sale{committedSale("order-1", "store-1", now)}}
	cache := newFakeCache()
	svc := NewOrderQueryService(repo, cache, time.Minute)

	first, err := svc.LatestConfirmedOrder(context.Background(), "store-1")
	require.NoError(t, err)

	second, err := svc.LatestConfirmedOrder(context.Background(), "store-1")
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, 1, repo.latestCalls, "second read is served from cache")
}

func TestLatestConfirmedOrderWrapsRepoFailure(t *testing.T) {
	repo := &fakeSaleRepo{failWith: errConnectionLost}
	svc := NewOrderQueryService(repo, nil, time.Minute)

	_, err := svc.LatestConfirmedOrder(context.Background(), "store-1")

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
}
