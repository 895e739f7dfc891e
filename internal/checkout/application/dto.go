package application

import (
	"time"

	"github.com/linghann/retailpos/internal/checkout/domain"
)

// OrderConfirmation 结账成功回执
type OrderConfirmation struct {
	OrderID     string       `json:"order_id"`
	TotalAmount domain.Money `json:"total_amount"`
	ChangeDue   domain.Money `json:"change_due"`
	CreatedAt   time.Time    `json:"created_at"`
}

// OrderItemView 订单项只读视图
type OrderItemView struct {
	ProductID   string       `json:"product_id"`
	DisplayName string       `json:"display_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   domain.Money `json:"unit_price"`
	LineTotal   domain.Money `json:"line_total"`
}

// PaymentView 支付记录只读视图
type PaymentView struct {
	PaymentID string               `json:"payment_id"`
	Method    domain.PaymentMethod `json:"method"`
	Amount    domain.Money         `json:"amount"`
	Status    domain.PaymentStatus `json:"status"`
}

// OrderView 小票展示用的订单复合只读视图
type OrderView struct {
	OrderID        string              `json:"order_id"`
	CashierID      string              `json:"cashier_id"`
	StoreID        string              `json:"store_id"`
	Type           domain.OrderType    `json:"type"`
	DiscountKind   domain.DiscountKind `json:"discount_kind"`
	DiscountAmount domain.Money        `json:"discount_amount"`
	TotalAmount    domain.Money        `json:"total_amount"`
	CreatedAt      time.Time           `json:"created_at"`
	Items          []OrderItemView     `json:"items"`
	Payments       []PaymentView       `json:"payments"`
}
