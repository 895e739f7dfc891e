package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/linghann/retailpos/internal/checkout/domain"
)

// fakeSaleRepo 内存版 SaleRepository，CreateSale 为全有或全无
type fakeSaleRepo struct {
	sales []*domain.Sale

	// failWith 非空时 CreateSale 失败且不保存任何行
	failWith error
	// duplicateOnce 为真时首次 CreateSale 返回订单号冲突
	duplicateOnce bool

	createCalls int
	latestCalls int
}

func (f *fakeSaleRepo) CreateSale(ctx context.Context, sale *domain.Sale) error {
	f.createCalls++

	if f.duplicateOnce {
		f.duplicateOnce = false
		return domain.ErrDuplicateOrderID
	}
	if f.failWith != nil {
		return f.failWith
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sale.Order.CreatedAt = time.Now()
	f.sales = append(f.sales, sale)
	return nil
}

func (f *fakeSaleRepo) LatestByStore(ctx context.Context, storeID string) (*domain.Sale, error) {
	f.latestCalls++

	if f.failWith != nil {
		return nil, f.failWith
	}

	var latest *domain.Sale
	for _, sale := range f.sales {
		if sale.Order.StoreID != storeID {
			continue
		}
		if latest == nil || sale.Order.CreatedAt.After(latest.Order.CreatedAt) ||
			(sale.Order.CreatedAt.Equal(latest.Order.CreatedAt) && sale.Order.OrderID > latest.Order.OrderID) {
			latest = sale
		}
	}
	if latest == nil {
		return nil, domain.ErrOrderNotFound
	}
	return latest, nil
}

// fakeCache 内存版 OrderViewCache
type fakeCache struct {
	store   map[string][]byte
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := f.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = data
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
		f.deletes = append(f.deletes, key)
	}
	return nil
}

var errConnectionLost = errors.New("connection lost")
