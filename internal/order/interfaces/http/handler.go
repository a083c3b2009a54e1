package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/nanotrader/internal/order/application"
	"github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/response"
)

// OrderHandler HTTP 处理器
// 负责订单的只读查询
type OrderHandler struct {
	svc *application.OrderService
}

// NewOrderHandler 创建 HTTP 处理器实例
func NewOrderHandler(svc *application.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.GET("", h.ListOrders)   // 区间查询
		api.GET("/:id", h.GetOrder) // 获取订单详情
	}
}

// GetOrder 获取订单
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid order id", c.Param("id"))
		return
	}

	order, err := h.svc.FindOrder(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "order not found", "")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get order", "order_id", id, "error", err)
		response.Error(c, err)
		return
	}

	response.Success(c, order)
}

// ListOrdersRequest 区间查询参数，返回 [from, to)
type ListOrdersRequest struct {
	From int `form:"from" binding:"min=0"`
	To   int `form:"to" binding:"required,gtefield=From"`
}

// ListOrders 按 OrderID 升序返回区间内订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	orders, err := h.svc.FindOrderEntries(c.Request.Context(), req.From, req.To)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list orders", "from", req.From, "to", req.To, "error", err)
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"orders": orders, "count": len(orders)})
}
