package domain

import "fmt"

// DiscountKind 折扣类型
type DiscountKind string

const (
	DiscountNone   DiscountKind = "None"
	DiscountSenior DiscountKind = "Senior"
	DiscountPWD    DiscountKind = "PWD"
	DiscountVAT    DiscountKind = "VAT"
)

// ParseDiscountKind 解析折扣类型，取值范围外返回 ErrInvalidEnumValue
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch DiscountKind(s) {
	case DiscountNone, DiscountSenior, DiscountPWD, DiscountVAT:
		return DiscountKind(s), nil
	}
	return "", fmt.Errorf("discount kind %q: %w", s, ErrInvalidEnumValue)
}

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentGCash PaymentMethod = "GCash"
	PaymentCard  PaymentMethod = "Card"
	PaymentMaya  PaymentMethod = "Maya"
)

// ParsePaymentMethod 解析支付方式，取值范围外返回 ErrInvalidEnumValue
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentGCash, PaymentCard, PaymentMaya:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("payment method %q: %w", s, ErrInvalidEnumValue)
}

// CartLine 购物车行项
// 结账前由购物车独占持有，包装为订单项后不可变
type CartLine struct {
	ProductID   string
	DisplayName string
	UnitPrice   Money
	Quantity    int
}

// Cart 购物车聚合，持有结账前的可编辑状态
// 购物车自身从不缓存合计金额，调用方在每次变更后通过定价引擎重新推导
type Cart struct {
	lines    []CartLine
	discount DiscountKind
	method   PaymentMethod
	received Money
}

// NewCart 创建空购物车，折扣默认 None，支付方式默认现金
func NewCart() *Cart {
	return &Cart{discount: DiscountNone, method: PaymentCash}
}

// Lines 返回行项快照
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Discount 当前折扣类型
func (c *Cart) Discount() DiscountKind { return c.discount }

// Method 当前支付方式
func (c *Cart) Method() PaymentMethod { return c.method }

// Received 现金实收金额
func (c *Cart) Received() Money { return c.received }

// IsEmpty 购物车是否没有行项
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// AddItem 加入商品，同一商品合并数量
func (c *Cart) AddItem(productID, displayName string, unitPrice Money, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("add %s: %w", productID, ErrInvalidQuantity)
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, CartLine{
		ProductID:   productID,
		DisplayName: displayName,
		UnitPrice:   unitPrice,
		Quantity:    qty,
	})
	return nil
}

// RemoveItem 移除商品行项
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity 设置商品数量，非正数等同于移除该行项
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// SetDiscountKind 选择折扣类型
func (c *Cart) SetDiscountKind(kind DiscountKind) error {
	if _, err := ParseDiscountKind(string(kind)); err != nil {
		return err
	}
	c.discount = kind
	return nil
}

// SetPaymentMethod 选择支付方式
func (c *Cart) SetPaymentMethod(method PaymentMethod) error {
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return err
	}
	c.method = method
	return nil
}

// SetReceivedAmount 记录现金实收金额
func (c *Cart) SetReceivedAmount(amount Money) {
	c.received = amount
}

// Clear 清空购物车，结账成功后调用
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = DiscountNone
	c.method = PaymentCash
	c.received = 0
}
