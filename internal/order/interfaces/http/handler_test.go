package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/nanotrader/internal/order/application"
	"github.com/wyfcoding/nanotrader/internal/order/domain"
	"github.com/wyfcoding/nanotrader/internal/order/infrastructure/messaging"
	"github.com/wyfcoding/nanotrader/internal/order/infrastructure/persistence/memory"
)

func setupRouter(t *testing.T, n int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := application.NewOrderService(memory.NewOrderRepository(), messaging.NopEventPublisher{}, nil)
	for i := 0; i < n; i++ {
		require.NoError(t, svc.SaveOrder(context.Background(), &domain.Order{
			AccountID:   1,
			QuoteSymbol: "GOOG",
			OpenDate:    time.Now(),
			OrderFee:    decimal.NewFromInt(int64(i)),
			Price:       decimal.NewFromInt(int64(i)),
			Quantity:    decimal.NewFromInt(int64(i)),
		}))
	}

	r := gin.New()
	NewOrderHandler(svc).RegisterRoutes(&r.RouterGroup)
	return r
}

func get(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestGetOrder(t *testing.T) {
	r := setupRouter(t, 2)

	w := get(r, "/api/v1/orders/2")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data domain.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Data.OrderID)
	assert.Equal(t, "GOOG", body.Data.QuoteSymbol)

	assert.Equal(t, http.StatusNotFound, get(r, "/api/v1/orders/99").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/orders/abc").Code)
}

func TestListOrders(t *testing.T) {
	r := setupRouter(t, 5)

	w := get(r, "/api/v1/orders?from=1&to=3")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Orders []domain.Order `json:"orders"`
			Count  int            `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Count)
	assert.EqualValues(t, 2, body.Data.Orders[0].OrderID)

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/orders?from=3&to=1").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/orders?from=-1&to=1").Code)
}
