// Package response 统一的 HTTP JSON 响应格式
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/nanotrader/pkg/validation"
)

// Response 响应体
type Response struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Success 返回 200 和数据
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: "success", Data: data})
}

// ErrorWithStatus 返回指定状态码的错误
func ErrorWithStatus(c *gin.Context, status int, msg, detail string) {
	c.JSON(status, Response{Code: status, Msg: msg, Detail: detail})
}

// Error 根据错误类型选择状态码
// *validation.ValidationError 返回 422 并附带违规列表，其他错误返回 500
func Error(c *gin.Context, err error) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, Response{
			Code: http.StatusUnprocessableEntity,
			Msg:  verr.Error(),
			Data: verr.Violations,
		})
		return
	}
	ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
}
