// Package mysql 提供订单仓储接口的 MySQL GORM 实现
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/linghann/retailpos/internal/checkout/domain"
	"github.com/linghann/retailpos/internal/checkout/infrastructure/messaging"
)

const saleCommittedEventType = "SaleCommittedEvent"

// saleRepositoryImpl 是 domain.SaleRepository 接口的 GORM 实现
type saleRepositoryImpl struct {
	db *gorm.DB
}

// NewSaleRepository 创建订单仓储实例
func NewSaleRepository(db *gorm.DB) domain.SaleRepository {
	return &saleRepositoryImpl{db: db}
}

// CreateSale 实现 domain.SaleRepository.CreateSale
// 订单、订单项、支付记录、库存扣减与 outbox 事件在同一事务内提交
// 任一步骤失败整体回滚；订单号唯一键冲突映射为 ErrDuplicateOrderID 交由上层重试
func (r *saleRepositoryImpl) CreateSale(ctx context.Context, sale *domain.Sale) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale.Order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if len(sale.Items) > 0 {
			if err := tx.Create(&sale.Items).Error; err != nil {
				return fmt.Errorf("insert order items: %w", err)
			}
		}

		if err := tx.Create(sale.Payment).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		for _, item := range sale.Items {
			if err := decrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		event := domain.SaleCommittedEvent{
			OrderID:    sale.Order.OrderID,
			StoreID:    sale.Order.StoreID,
			CashierID:  sale.Order.CashierID,
			Total:      sale.Order.TotalAmount,
			Method:     sale.Payment.Method,
			OccurredAt: time.Now(),
		}
		if err := messaging.Enqueue(tx, saleCommittedEventType, sale.Order.OrderID, event); err != nil {
			return fmt.Errorf("enqueue outbox event: %w", err)
		}

		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateOrderID
	}
	return err
}

// decrementStock 原子条件扣减库存，仅当剩余库存足够时命中
// 商品目录由外部协作方维护，未登记库存行的商品跳过扣减
func decrementStock(tx *gorm.DB, productID string, qty int) error {
	result := tx.Model(&domain.Product{}).
		Where("product_id = ? AND stock_qty >= ?", productID, qty).
		UpdateColumn("stock_qty", gorm.Expr("stock_qty - ?", qty))
	if result.Error != nil {
		return fmt.Errorf("decrement stock for %s: %w", productID, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var tracked int64
	if err := tx.Model(&domain.Product{}).Where("product_id = ?", productID).Count(&tracked).Error; err != nil {
		return fmt.Errorf("check stock for %s: %w", productID, err)
	}
	if tracked > 0 {
		return fmt.Errorf("product %s: %w", productID, domain.ErrInsufficientStock)
	}
	return nil
}

// LatestByStore 实现 domain.SaleRepository.LatestByStore
func (r *saleRepositoryImpl) LatestByStore(ctx context.Context, storeID string) (*domain.Sale, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Order("order_id desc").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest order: %w", err)
	}

	var items []domain.OrderItem
	err = r.db.WithContext(ctx).
		Where("order_id = ?", order.OrderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}

	var payment domain.Payment
	err = r.db.WithContext(ctx).
		Where("order_id = ?", order.OrderID).
		First(&payment).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query payment: %w", err)
	}

	sale := &domain.Sale{
		Order: &order,
		Items: items,
	}
	if err == nil {
		sale.Payment = &payment
	}
	return sale, nil
}
