package domain

import (
	"errors"
	"fmt"
)

// 输入类错误：由调用方数据引起，不可自动重试，原样返回给调用方修正
var (
	// ErrEmptyCart 购物车为空，无法结账
	ErrEmptyCart = errors.New("cart has no lines")
	// ErrInvalidQuantity 商品数量必须为正整数
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidEnumValue 折扣类型或支付方式不在允许的取值范围内
	ErrInvalidEnumValue = errors.New("value outside the allowed set")
	// ErrInsufficientPayment 现金支付时实收金额小于应付总额
	ErrInsufficientPayment = errors.New("received amount is less than total due")
	// ErrInsufficientStock 库存不足，条件递减未命中
	ErrInsufficientStock = errors.New("insufficient stock")
)

// 一致性 / 基础设施类错误
var (
	// ErrDuplicateOrderID 订单号唯一键冲突，编排器重新生成后重试一次
	ErrDuplicateOrderID = errors.New("duplicate order id")
	// ErrOrderNotFound 查询不到任何已提交订单
	ErrOrderNotFound = errors.New("order not found")
)

// PersistenceError 包装持久层失败
// 整个工作单元已回滚，调用方可安全地整体重试结账
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError 创建持久层错误
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// IsInputError 是否为输入类错误
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidEnumValue) ||
		errors.Is(err, ErrInsufficientPayment)
}
