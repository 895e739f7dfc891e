// Package application 编排收银结账的命令与查询用例
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/linghann/retailpos/internal/checkout/domain"
	"github.com/linghann/retailpos/pkg/logger"
	"github.com/linghann/retailpos/pkg/metrics"
)

// OrderViewCache 最近订单视图缓存，*cache.RedisCache 满足该接口
type OrderViewCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func latestOrderKey(storeID string) string {
	return "checkout:latest_order:" + storeID
}

// CheckoutService 结账编排器
// 校验请求、权威重算定价、在单个工作单元内落库并返回回执
type CheckoutService struct {
	repo           domain.SaleRepository
	cache          OrderViewCache
	metrics        *metrics.Metrics
	persistTimeout time.Duration
}

// NewCheckoutService 创建结账编排器
// cache 与 metrics 允许为 nil
func NewCheckoutService(repo domain.SaleRepository, cache OrderViewCache, m *metrics.Metrics, persistTimeout time.Duration) *CheckoutService {
	return &CheckoutService{
		repo:           repo,
		cache:          cache,
		metrics:        m,
		persistTimeout: persistTimeout,
	}
}

// Checkout 提交一次结账
// 客户端附带的任何合计金额一律不信任，从行项数据权威重算
// 成功时清空购物车并返回回执；持久层失败时整个工作单元已回滚，调用方可整体重试
func (s *CheckoutService) Checkout(ctx context.Context, cart *domain.Cart, cashierID, storeID string) (*OrderConfirmation, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.CheckoutsTotal.Inc()
	}

	if cart == nil || cart.IsEmpty() {
		s.countFailure("empty_cart")
		return nil, domain.ErrEmptyCart
	}

	priced := domain.Price(cart)

	if cart.Method() == domain.PaymentCash && cart.Received() < priced.Total {
		s.countFailure("insufficient_payment")
		return nil, fmt.Errorf("received %s, total due %s: %w",
			cart.Received(), priced.Total, domain.ErrInsufficientPayment)
	}

	pctx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	sale := buildSale(cart, priced, cashierID, storeID)
	err := s.repo.CreateSale(pctx, sale)
	if errors.Is(err, domain.ErrDuplicateOrderID) {
		// 订单号冲突属一致性错误，重新生成后重试整个工作单元一次
		logger.Warn(ctx, "Order id collision, regenerating", "store_id", storeID)
		sale = buildSale(cart, priced, cashierID, storeID)
		err = s.repo.CreateSale(pctx, sale)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			s.countFailure("insufficient_stock")
			return nil, err
		}
		s.countFailure("persistence")
		logger.Error(ctx, "Checkout unit of work failed",
			"store_id", storeID,
			"cashier_id", cashierID,
			"error", err,
		)
		return nil, domain.NewPersistenceError("checkout", err)
	}

	cart.Clear()

	if s.cache != nil {
		// 缓存失效失败不影响已提交的订单，读路径有 TTL 兜底
		if err := s.cache.Delete(ctx, latestOrderKey(storeID)); err != nil {
			logger.Warn(ctx, "Failed to invalidate latest order cache", "store_id", storeID, "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.OrdersTotal.Inc()
		s.metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	}

	logger.Info(ctx, "Checkout committed",
		"order_id", sale.Order.OrderID,
		"store_id", storeID,
		"total", priced.Total,
		"method", cart.Method(),
	)

	return &OrderConfirmation{
		OrderID:     sale.Order.OrderID,
		TotalAmount: priced.Total,
		ChangeDue:   priced.Change,
		CreatedAt:   sale.Order.CreatedAt,
	}, nil
}

func (s *CheckoutService) countFailure(kind string) {
	if s.metrics != nil {
		s.metrics.CheckoutFailuresTotal.WithLabelValues(kind).Inc()
	}
}

// buildSale 将定价快照包装为待落库的行集合，订单号每次调用都重新生成
func buildSale(cart *domain.Cart, priced domain.PricedCart, cashierID, storeID string) *domain.Sale {
	orderID := uuid.New().String()

	order := &domain.Order{
		OrderID:        orderID,
		CashierID:      cashierID,
		StoreID:        storeID,
		Type:           domain.OrderTypeSale,
		DiscountKind:   cart.Discount(),
		DiscountAmount: priced.Discount,
		TotalAmount:    priced.Total,
	}

	lines := cart.Lines()
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			OrderID:     orderID,
			ProductID:   line.ProductID,
			DisplayName: line.DisplayName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	payment := &domain.Payment{
		PaymentID: uuid.New().String(),
		OrderID:   orderID,
		Method:    cart.Method(),
		Amount:    priced.Total,
		Status:    domain.PaymentStatusPaid,
	}

	return &domain.Sale{
		Order:   order,
		Items:   items,
		Payment: payment,
	}
}
