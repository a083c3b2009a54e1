package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	fixturehttp "github.com/wyfcoding/nanotrader/internal/fixture/interfaces/http"
	orderhttp "github.com/wyfcoding/nanotrader/internal/order/interfaces/http"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/middleware"
	"github.com/wyfcoding/nanotrader/pkg/ratelimit"
)

// newRouter 注册中间件和全部路由
func newRouter(a *app) *gin.Engine {
	router := gin.New()

	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinMetricsMiddleware(a.metrics))
	if a.cfg.RateLimit.Enabled && a.redis != nil {
		limiter := ratelimit.NewRedisRateLimiter(a.redis.GetClient())
		router.Use(middleware.RateLimitMiddleware(limiter, a.cfg.RateLimit))
	}

	orderhttp.NewOrderHandler(a.orderSvc).RegisterRoutes(&router.RouterGroup)
	fixturehttp.NewFixtureHandler(a.orders).RegisterRoutes(&router.RouterGroup)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   a.cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})
	if a.cfg.Metrics.Enabled {
		router.GET(a.cfg.Metrics.Path, gin.WrapH(a.metrics.Handler()))
	}

	return router
}

// serve 启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅关停
func serve(ctx context.Context, a *app) error {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.cfg.HTTP.Host, a.cfg.HTTP.Port),
		Handler:      newRouter(a),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-sigChan:
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
