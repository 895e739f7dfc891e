package domain

import (
	"context"

	"gorm.io/gorm"
)

// OrderType 订单类型
type OrderType string

const (
	OrderTypeSale   OrderType = "Sale"
	OrderTypeRefund OrderType = "Refund"
	OrderTypeVoid   OrderType = "Void"
)

// PaymentStatus 支付状态
// 同步结算的现金/卡支付直接落为 Paid，Pending 保留给异步支付方式
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// Order 订单实体
// 每次成功结账恰好创建一条，提交后不可变
type Order struct {
	gorm.Model
	// 订单唯一标识，结账时生成
	OrderID string `gorm:"column:order_id;type:varchar(36);uniqueIndex;not null" json:"order_id"`
	// 收银员 ID
	CashierID string `gorm:"column:cashier_id;type:varchar(36);index;not null" json:"cashier_id"`
	// 门店 ID
	StoreID string `gorm:"column:store_id;type:varchar(36);index;not null" json:"store_id"`
	// 订单类型
	Type OrderType `gorm:"column:type;type:varchar(10);not null;default:'Sale'" json:"type"`
	// 折扣类型快照
	DiscountKind DiscountKind `gorm:"column:discount_kind;type:varchar(10);not null" json:"discount_kind"`
	// 折扣额（最小货币单位）
	DiscountAmount Money `gorm:"column:discount_amount;type:bigint;not null" json:"discount_amount"`
	// 应付总额（最小货币单位）
	TotalAmount Money `gorm:"column:total_amount;type:bigint;not null" json:"total_amount"`
}

// TableName 指定表名
func (Order) TableName() string { return "orders" }

// OrderItem 订单项实体
// 成交单价在销售时刻捕获，目录价格后续变动不影响历史订单
type OrderItem struct {
	gorm.Model
	// 所属订单
	OrderID string `gorm:"column:order_id;type:varchar(36);index;not null" json:"order_id"`
	// 商品 ID
	ProductID string `gorm:"column:product_id;type:varchar(36);not null" json:"product_id"`
	// 商品名称快照
	DisplayName string `gorm:"column:display_name;type:varchar(255)" json:"display_name"`
	// 数量
	Quantity int `gorm:"column:quantity;not null" json:"quantity"`
	// 成交单价（最小货币单位）
	UnitPrice Money `gorm:"column:unit_price;type:bigint;not null" json:"unit_price"`
}

// TableName 指定表名
func (OrderItem) TableName() string { return "order_items" }

// Payment 支付记录实体
// 本服务每次结账恰好创建一条支付记录，不支持拆分支付
type Payment struct {
	gorm.Model
	// 支付记录唯一标识
	PaymentID string `gorm:"column:payment_id;type:varchar(36);uniqueIndex;not null" json:"payment_id"`
	// 所属订单，单笔支付约束
	OrderID string `gorm:"column:order_id;type:varchar(36);uniqueIndex;not null" json:"order_id"`
	// 支付方式
	Method PaymentMethod `gorm:"column:method;type:varchar(10);not null" json:"method"`
	// 支付金额（最小货币单位），恒等于订单应付总额
	Amount Money `gorm:"column:amount;type:bigint;not null" json:"amount"`
	// 支付状态
	Status PaymentStatus `gorm:"column:status;type:varchar(10);not null" json:"status"`
}

// TableName 指定表名
func (Payment) TableName() string { return "payments" }

// Product 商品库存行
// 商品目录的增删改由外部协作方负责，本服务只做结账时的原子条件扣减
type Product struct {
	gorm.Model
	ProductID string `gorm:"column:product_id;type:varchar(36);uniqueIndex;not null" json:"product_id"`
	Name      string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price     Money  `gorm:"column:price;type:bigint;not null" json:"price"`
	StockQty  int    `gorm:"column:stock_qty;not null;default:0" json:"stock_qty"`
}

// TableName 指定表名
func (Product) TableName() string { return "products" }

// Sale 一次结账要原子落库的行集合
type Sale struct {
	Order   *Order
	Items   []OrderItem
	Payment *Payment
}

// SaleRepository 订单仓储接口
type SaleRepository interface {
	// CreateSale 在单个事务内写入订单、订单项、支付记录并条件扣减库存
	// 任一步骤失败整体回滚，读者绝不会观察到部分行
	CreateSale(ctx context.Context, sale *Sale) error
	// LatestByStore 返回门店最近一次提交的订单及其订单项与支付记录
	// 按创建时间倒序，创建时间相同时按订单号倒序保证确定性
	LatestByStore(ctx context.Context, storeID string) (*Sale, error)
}
