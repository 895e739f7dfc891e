package application

import (
	"context"
	"errors"
	"time"

	"github.com/linghann/retailpos/internal/checkout/domain"
	"github.com/linghann/retailpos/pkg/logger"
)

// OrderQueryService 订单查询服务
// 重建最近一次提交的订单供小票展示，读路径走缓存兜底数据库
type OrderQueryService struct {
	repo     domain.SaleRepository
	cache    OrderViewCache
	cacheTTL time.Duration
}

// NewOrderQueryService 创建订单查询服务，cache 允许为 nil
func NewOrderQueryService(repo domain.SaleRepository, cache OrderViewCache, cacheTTL time.Duration) *OrderQueryService {
	return &OrderQueryService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// LatestConfirmedOrder 返回门店最近一次提交的订单复合视图
// 从未有订单提交时返回 ErrOrderNotFound，调用方按"暂无可展示"处理
func (q *OrderQueryService) LatestConfirmedOrder(ctx context.Context, storeID string) (*OrderView, error) {
	key := latestOrderKey(storeID)

	if q.cache != nil {
		var cached OrderView
		ok, err := q.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			logger.Warn(ctx, "Latest order cache read failed", "store_id", storeID, "error", err)
		} else if ok {
			return &cached, nil
		}
	}

	sale, err := q.repo.LatestByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, domain.NewPersistenceError("latest order query", err)
	}

	view := assembleOrderView(sale)

	if q.cache != nil {
		if err := q.cache.SetJSON(ctx, key, view, q.cacheTTL); err != nil {
			logger.Warn(ctx, "Latest order cache write failed", "store_id", storeID, "error", err)
		}
	}

	return view, nil
}

func assembleOrderView(sale *domain.Sale) *OrderView {
	view := &OrderView{
		OrderID:        sale.Order.OrderID,
		CashierID:      sale.Order.CashierID,
		StoreID:        sale.Order.StoreID,
		Type:           sale.Order.Type,
		DiscountKind:   sale.Order.DiscountKind,
		DiscountAmount: sale.Order.DiscountAmount,
		TotalAmount:    sale.Order.TotalAmount,
		CreatedAt:      sale.Order.CreatedAt,
		Items:          make([]OrderItemView, 0, len(sale.Items)),
	}

	for _, item := range sale.Items {
		view.Items = append(view.Items, OrderItemView{
			ProductID:   item.ProductID,
			DisplayName: item.DisplayName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.UnitPrice.MulQty(item.Quantity),
		})
	}

	if sale.Payment != nil {
		view.Payments = []PaymentView{{
			PaymentID: sale.Payment.PaymentID,
			Method:    sale.Payment.Method,
			Amount:    sale.Payment.Amount,
			Status:    sale.Payment.Status,
		}}
	}

	return view
}
