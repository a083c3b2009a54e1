package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/nanotrader/pkg/config"
	"github.com/wyfcoding/nanotrader/pkg/logger"
	"github.com/wyfcoding/nanotrader/pkg/metrics"
	"github.com/wyfcoding/nanotrader/pkg/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLoggingMiddlewarePropagatesTraceID(t *testing.T) {
	r := gin.New()
	r.Use(GinLoggingMiddleware())

	var seen any
	r.GET("/ping", func(c *gin.Context) {
		seen = c.Request.Context().Value(logger.TraceIDKey)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-123", seen)
	assert.Equal(t, "trace-123", w.Header().Get(TraceHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(GinRecoveryMiddleware())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("test")
	r := gin.New()
	r.Use(GinMetricsMiddleware(m))
	r.GET("/orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/7", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration, "nanotrader_http_request_duration_seconds"))
}

type stubLimiter struct {
	res  *ratelimit.Result
	err  error
	keys *[]string
}

func (s stubLimiter) Allow(_ context.Context, key string, _ ratelimit.Limit) (*ratelimit.Result, error) {
	if s.keys != nil {
		*s.keys = append(*s.keys, key)
	}
	return s.res, s.err
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, QPS: 1, Burst: 1}

	tests := []struct {
		name    string
		limiter stubLimiter
		cfg     config.RateLimitConfig
		want    int
	}{
		{"allowed", stubLimiter{res: &ratelimit.Result{Allowed: true}}, cfg, http.StatusOK},
		{"rejected", stubLimiter{res: &ratelimit.Result{RetryAfter: time.Second}}, cfg, http.StatusTooManyRequests},
		{"limiter error fails open", stubLimiter{err: errors.New("redis down")}, cfg, http.StatusOK},
		{"disabled", stubLimiter{res: &ratelimit.Result{}}, config.RateLimitConfig{}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimitMiddleware(tt.limiter, tt.cfg))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimitHeaders(t *testing.T) {
	var keys []string
	limiter := stubLimiter{
		res: &ratelimit.Result{
			Remaining:  0,
			ResetAfter: 1500 * time.Millisecond,
			RetryAfter: 500 * time.Millisecond,
		},
		keys: &keys,
	}

	r := gin.New()
	r.Use(RateLimitMiddleware(limiter, config.RateLimitConfig{Enabled: true, QPS: 20, Burst: 40}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:4321"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "40", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, []string{"ip:10.0.0.7"}, keys)
}

func TestCeilSeconds(t *testing.T) {
	assert.Equal(t, "0", ceilSeconds(0))
	assert.Equal(t, "1", ceilSeconds(time.Millisecond))
	assert.Equal(t, "1", ceilSeconds(time.Second))
	assert.Equal(t, "3", ceilSeconds(2*time.Second+time.Nanosecond))
}
