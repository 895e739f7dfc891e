package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItem(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 1))
	require.NoError(t, cart.AddItem("p2", "Tea", 5000, 2))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestCartAddItemMergesSameProduct(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 1))
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 2))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestCartAddItemRejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart()
	assert.ErrorIs(t, cart.AddItem("p1", "Coffee", 10000, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddItem("p1", "Coffee", 10000, -1), ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 1))
	require.NoError(t, cart.AddItem("p2", "Tea", 5000, 1))

	cart.RemoveItem("p1")

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
}

func TestCartSetQuantity(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 1))

	cart.SetQuantity("p1", 5)
	assert.Equal(t, 5, cart.Lines()[0].Quantity)
}

func TestCartSetQuantityNonPositiveRemovesLine(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 1))

	cart.SetQuantity("p1", 0)
	assert.True(t, cart.IsEmpty())
}

func TestCartSetDiscountKind(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.SetDiscountKind(DiscountPWD))
	assert.Equal(t, DiscountPWD, cart.Discount())

	assert.ErrorIs(t, cart.SetDiscountKind("Student"), ErrInvalidEnumValue)
	assert.Equal(t, DiscountPWD, cart.Discount())
}

func TestCartSetPaymentMethod(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.SetPaymentMethod(PaymentMaya))
	assert.Equal(t, PaymentMaya, cart.Method())

	assert.ErrorIs(t, cart.SetPaymentMethod("Barter"), ErrInvalidEnumValue)
	assert.Equal(t, PaymentMaya, cart.Method())
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem("p1", "Coffee", 10000, 1))
	require.NoError(t, cart.SetDiscountKind(DiscountSenior))
	require.NoError(t, cart.SetPaymentMethod(PaymentGCash))
	cart.SetReceivedAmount(5000)

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, DiscountNone, cart.Discount())
	assert.Equal(t, PaymentCash, cart.Method())
	assert.Equal(t, Money(0), cart.Received())
}

func TestParseDiscountKind(t *testing.T) {
	for _, s := range []string{"None", "Senior", "PWD", "VAT"} {
		kind, err := ParseDiscountKind(s)
		require.NoError(t, err)
		assert.Equal(t, DiscountKind(s), kind)
	}

	_, err := ParseDiscountKind("senior")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"Cash", "GCash", "Card", "Maya"} {
		method, err := ParsePaymentMethod(s)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod(s), method)
	}

	_, err := ParsePaymentMethod("Bitcoin")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}
