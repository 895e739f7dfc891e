// Package domain 包含收银结账服务的领域模型
package domain

import (
	"github.com/shopspring/decimal"
)

// Money 以最小货币单位（分）表示的金额
// 所有金额运算都在整数表示上进行，入库前按四舍五入规则归一到最小单位
type Money int64

// Add 金额相加
func (m Money) Add(x Money) Money { return m + x }

// Sub 金额相减
func (m Money) Sub(x Money) Money { return m - x }

// MulQty 金额乘以数量，最小单位下的精确整数乘法，无需舍入
func (m Money) MulQty(qty int) Money { return m * Money(qty) }

// IsNegative 金额是否为负
func (m Money) IsNegative() bool { return m < 0 }

// ApplyRate 按比率计算金额，四舍五入到最小单位
// decimal.Round 对非负金额即 round-half-up
func (m Money) ApplyRate(rate decimal.Decimal) Money {
	return Money(decimal.NewFromInt(int64(m)).Mul(rate).Round(0).IntPart())
}

// Decimal 转换为主单位的 decimal 表示（如 12050 -> 120.50）
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String 以主单位格式化金额（如 12050 -> "120.50"）
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MaxMoney 取两者较大值
func MaxMoney(a, b Money) Money {
	if a > b {
		return a
	}
	return b
}
