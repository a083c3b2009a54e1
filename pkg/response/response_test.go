package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSuccess(t *testing.T) {
	w := serve(func(c *gin.Context) { Success(c, gin.H{"id": 1}) })

	assert.Equal(t, http.StatusOK, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "success", body.Msg)
}

func TestErrorMapsValidationTo422(t *testing.T) {
	verr := &validation.ValidationError{
		Entity: "order",
		Violations: []validation.ConstraintViolation{
			{Field: "Order.OrderStatus", Constraint: "max=250", Message: "size must be between 0 and 250", Value: "x"},
		},
	}
	w := serve(func(c *gin.Context) { Error(c, verr) })

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Order.OrderStatus")
}

func TestErrorDefaultsTo500(t *testing.T) {
	w := serve(func(c *gin.Context) { Error(c, errors.New("db down")) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "db down")
}
