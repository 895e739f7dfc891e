package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyArithmetic(t *testing.T) {
	assert.Equal(t, Money(300), Money(100).Add(Money(200)))
	assert.Equal(t, Money(-50), Money(100).Sub(Money(150)))
	assert.Equal(t, Money(20000), Money(10000).MulQty(2))
	assert.True(t, Money(-1).IsNegative())
	assert.False(t, Money(0).IsNegative())
}

func TestMoneyApplyRate(t *testing.T) {
	assert.Equal(t, Money(2000), Money(10000).ApplyRate(decimal.NewFromFloat(0.20)))
	assert.Equal(t, Money(1200), Money(10000).ApplyRate(decimal.NewFromFloat(0.12)))
	assert.Equal(t, Money(0), Money(10000).ApplyRate(decimal.Zero))
}

func TestMoneyApplyRateRoundsHalfUp(t *testing.T) {
	// 4 * 0.125 = 0.5，恰好落在半位，向上取整
	assert.Equal(t, Money(1), Money(4).ApplyRate(decimal.NewFromFloat(0.125)))
	// 3 * 0.125 = 0.375，向下
	assert.Equal(t, Money(0), Money(3).ApplyRate(decimal.NewFromFloat(0.125)))
	// 5 * 0.125 = 0.625，向上
	assert.Equal(t, Money(1), Money(5).ApplyRate(decimal.NewFromFloat(0.125)))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "120.50", Money(12050).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "0.00", Money(0).String())
}

func TestMaxMoney(t *testing.T) {
	assert.Equal(t, Money(5), MaxMoney(5, 3))
	assert.Equal(t, Money(5), MaxMoney(3, 5))
	assert.Equal(t, Money(0), MaxMoney(0, -10))
}
