package domain

import "github.com/shopspring/decimal"

// 折扣比率表，比率恒小于 1，折扣额不会超过小计
var discountRates = map[DiscountKind]decimal.Decimal{
	DiscountNone:   decimal.Zero,
	DiscountSenior: decimal.NewFromFloat(0.20),
	DiscountPWD:    decimal.NewFromFloat(0.20),
	DiscountVAT:    decimal.NewFromFloat(0.12),
}

// PricedCart 购物车的派生定价快照
// 只在结账时将最终快照写入订单，自身从不持久化
type PricedCart struct {
	Subtotal Money
	Discount Money
	Total    Money
	Change   Money
}

// LineTotal 行项小计，单价乘数量
func LineTotal(line CartLine) Money {
	return line.UnitPrice.MulQty(line.Quantity)
}

// Subtotal 所有行项小计之和，空购物车返回零（展示路径允许查询定价）
func Subtotal(lines []CartLine) Money {
	var sum Money
	for _, line := range lines {
		sum = sum.Add(LineTotal(line))
	}
	return sum
}

// DiscountFor 按折扣类型计算折扣额，四舍五入到最小单位
func DiscountFor(subtotal Money, kind DiscountKind) Money {
	rate, ok := discountRates[kind]
	if !ok {
		return 0
	}
	d := subtotal.ApplyRate(rate)
	if d > subtotal {
		return subtotal
	}
	return d
}

// TotalDue 应付总额，折扣配置异常超过 100% 时收敛到零
func TotalDue(subtotal, discount Money) Money {
	return MaxMoney(0, subtotal.Sub(discount))
}

// ChangeDue 找零
// 现金为 max(0, 实收 - 应付)；非现金按约定足额结算，无论实收填多少找零恒为零
func ChangeDue(method PaymentMethod, received, total Money) Money {
	if method != PaymentCash {
		return 0
	}
	return MaxMoney(0, received.Sub(total))
}

// Price 对购物车完整定价，纯函数，相同输入恒产生相同输出
func Price(cart *Cart) PricedCart {
	subtotal := Subtotal(cart.Lines())
	discount := DiscountFor(subtotal, cart.Discount())
	total := TotalDue(subtotal, discount)
	return PricedCart{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
		Change:   ChangeDue(cart.Method(), cart.Received(), total),
	}
}
