package domain

import "time"

// SaleCommittedEvent 结账提交成功事件
// 与订单行同事务写入 outbox，由中继异步投递到消息队列
type SaleCommittedEvent struct {
	OrderID    string        `json:"order_id"`
	StoreID    string        `json:"store_id"`
	CashierID  string        `json:"cashier_id"`
	Total      Money         `json:"total"`
	Method     PaymentMethod `json:"method"`
	OccurredAt time.Time     `json:"occurred_at"`
}
