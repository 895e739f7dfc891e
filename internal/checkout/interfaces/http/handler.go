// Package http 提供结账服务的 HTTP 处理器
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linghann/retailpos/internal/checkout/application"
	"github.com/linghann/retailpos/internal/checkout/domain"
	"github.com/linghann/retailpos/pkg/logger"
)

// CheckoutHandler HTTP 处理器
// 负责处理结账与小票查询请求
type CheckoutHandler struct {
	checkout *application.CheckoutService
	query    *application.OrderQueryService
}

// NewCheckoutHandler 创建 HTTP 处理器实例
func NewCheckoutHandler(checkout *application.CheckoutService, query *application.OrderQueryService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, query: query}
}

// RegisterRoutes 注册路由
func (h *CheckoutHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/checkout", h.Checkout)
	router.GET("/orders/latest", h.LatestOrder)
}

// CheckoutLineRequest 结账行项
type CheckoutLineRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	DisplayName string `json:"display_name"`
	UnitPrice   int64  `json:"unit_price" binding:"min=0"`
	Quantity    int    `json:"quantity" binding:"required"`
}

// CheckoutRequest 结账请求
// 金额一律为最小货币单位；请求中不携带任何合计，合计由服务端权威重算
type CheckoutRequest struct {
	CashierID      string                `json:"cashier_id" binding:"required"`
	StoreID        string                `json:"store_id" binding:"required"`
	Items          []CheckoutLineRequest `json:"items" binding:"required"`
	DiscountKind   string                `json:"discount_kind"`
	PaymentMethod  string                `json:"payment_method" binding:"required"`
	ReceivedAmount int64                 `json:"received_amount"`
}

// Checkout 提交结账
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := buildCart(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmation, err := h.checkout.Checkout(c.Request.Context(), cart, req.CashierID, req.StoreID)
	if err != nil {
		h.writeCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, confirmation)
}

// buildCart 从请求构建购物车聚合，枚举与数量校验在领域层完成
func buildCart(req CheckoutRequest) (*domain.Cart, error) {
	cart := domain.NewCart()

	for _, item := range req.Items {
		if err := cart.AddItem(item.ProductID, item.DisplayName, domain.Money(item.UnitPrice), item.Quantity); err != nil {
			return nil, err
		}
	}

	if req.DiscountKind != "" {
		kind, err := domain.ParseDiscountKind(req.DiscountKind)
		if err != nil {
			return nil, err
		}
		if err := cart.SetDiscountKind(kind); err != nil {
			return nil, err
		}
	}

	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := cart.SetPaymentMethod(method); err != nil {
		return nil, err
	}

	cart.SetReceivedAmount(domain.Money(req.ReceivedAmount))

	return cart, nil
}

// writeCheckoutError 按错误分类映射状态码
// 输入类错误原样返回给调用方修正，持久层错误不泄漏内部细节
func (h *CheckoutHandler) writeCheckoutError(c *gin.Context, err error) {
	switch {
	case domain.IsInputError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "checkout timed out, please try again"})
	default:
		logger.Error(c.Request.Context(), "Checkout failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "checkout could not be completed, please try again"})
	}
}

// LatestOrder 查询门店最近一次提交的订单
func (h *CheckoutHandler) LatestOrder(c *gin.Context) {
	storeID := c.Query("store_id")
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id is required"})
		return
	}

	view, err := h.query.LatestConfirmedOrder(c.Request.Context(), storeID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no order found for store"})
			return
		}
		logger.Error(c.Request.Context(), "Latest order query failed", "store_id", storeID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "order could not be loaded, please try again"})
		return
	}

	c.JSON(http.StatusOK, view)
}
