// Package http 暴露样例数据生成器的 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/nanotrader/internal/fixture"
	"github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/response"
)

// FixtureHandler HTTP 处理器
// 生成器不是并发安全的，所有请求串行执行
type FixtureHandler struct {
	mu     sync.Mutex
	orders *fixture.OrderDataOnDemand
}

// NewFixtureHandler 创建 HTTP 处理器实例
func NewFixtureHandler(orders *fixture.OrderDataOnDemand) *FixtureHandler {
	return &FixtureHandler{orders: orders}
}

// RegisterRoutes 注册路由
func (h *FixtureHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/fixtures/orders")
	{
		api.POST("/seed", h.Seed)           // 确保种子数据存在
		api.GET("/random", h.RandomOrder)   // 随机样例
		api.GET("/:index", h.SpecificOrder) // 按位置取样例
	}
}

// Seed 确保种子数据存在，返回缓存的样例
func (h *FixtureHandler) Seed(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.orders.Init(c.Request.Context()); err != nil {
		h.fail(c, "Failed to seed orders", err)
		return
	}
	data := h.orders.Data()
	response.Success(c, gin.H{"orders": data, "count": len(data)})
}

// SpecificOrder 按位置取样例，越界的 index 会被截到边界
func (h *FixtureHandler) SpecificOrder(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid index", c.Param("index"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.orders.SpecificOrder(c.Request.Context(), index)
	if err != nil {
		h.fail(c, "Failed to get specific order", err)
		return
	}
	response.Success(c, order)
}

// RandomOrder 随机样例
func (h *FixtureHandler) RandomOrder(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.orders.RandomOrder(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to get random order", err)
		return
	}
	response.Success(c, order)
}

func (h *FixtureHandler) fail(c *gin.Context, msg string, err error) {
	logger.Error(c.Request.Context(), msg, "error", err)
	if errors.Is(err, domain.ErrOrderNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
		return
	}
	response.Error(c, err)
}
