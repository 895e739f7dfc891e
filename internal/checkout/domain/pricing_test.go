package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	line := CartLine{ProductID: "p1", UnitPrice: 10000, Quantity: 2}
	assert.Equal(t, Money(20000), LineTotal(line))
}

func TestSubtotal(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", UnitPrice: 10000, Quantity: 2},
		{ProductID: "p2", UnitPrice: 2500, Quantity: 3},
	}
	assert.Equal(t, Money(27500), Subtotal(lines))
}

func TestSubtotalEmptyCartIsZero(t *testing.T) {
	// 空购物车允许查询定价用于展示，返回零
	assert.Equal(t, Money(0), Subtotal(nil))
}

func TestDiscountRates(t *testing.T) {
	tests := []struct {
		kind DiscountKind
		want Money
	}{
		{DiscountNone, 0},
		{DiscountSenior, 2000},
		{DiscountPWD, 2000},
		{DiscountVAT, 1200},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountFor(10000, tt.kind))
		})
	}
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
	for _, kind := range []DiscountKind{DiscountNone, DiscountSenior, DiscountPWD, DiscountVAT} {
		for _, subtotal := range []Money{0, 1, 99, 10000, 999999} {
			assert.LessOrEqual(t, DiscountFor(subtotal, kind), subtotal)
		}
	}
}

func TestTotalDueClampsToZero(t *testing.T) {
	assert.Equal(t, Money(8000), TotalDue(10000, 2000))
	assert.Equal(t, Money(0), TotalDue(10000, 12000))
}

func TestChangeDueCash(t *testing.T) {
	assert.Equal(t, Money(2000), ChangeDue(PaymentCash, 10000, 8000))
	assert.Equal(t, Money(0), ChangeDue(PaymentCash, 8000, 8000))
	assert.Equal(t, Money(0), ChangeDue(PaymentCash, 5000, 8000))
}

func TestChangeDueNonCashAlwaysZero(t *testing.T) {
	for _, method := range []PaymentMethod{PaymentGCash, PaymentCard, PaymentMaya} {
		assert.Equal(t, Money(0), ChangeDue(method, 0, 8000))
		assert.Equal(t, Money(0), ChangeDue(method, 99999, 8000))
	}
}

func TestPriceNoDiscount(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 2))

	priced := Price(cart)
	assert.Equal(t, Money(20000), priced.Subtotal)
	assert.Equal(t, Money(0), priced.Discount)
	assert.Equal(t, Money(20000), priced.Total)
}

func TestPriceSeniorDiscount(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 1))
	require.NoError(t, cart.SetDiscountKind(DiscountSenior))

	priced := Price(cart)
	assert.Equal(t, Money(10000), priced.Subtotal)
	assert.Equal(t, Money(2000), priced.Discount)
	assert.Equal(t, Money(8000), priced.Total)
}

func TestPriceCashChange(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 1))
	require.NoError(t, cart.SetDiscountKind(DiscountSenior))
	require.NoError(t, cart.SetPaymentMethod(PaymentCash))
	cart.SetReceivedAmount(10000)

	priced := Price(cart)
	assert.Equal(t, Money(8000), priced.Total)
	assert.Equal(t, Money(2000), priced.Change)
}

func TestPriceIsIdempotent(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 3))
	require.NoError(t, cart.AddItem("p2", "Tea", 3333, 2))
	require.NoError(t, cart.SetDiscountKind(DiscountVAT))
	cart.SetReceivedAmount(50000)

	first := Price(cart)
	second := Price(cart)
	assert.Equal(t, first, second)
}
