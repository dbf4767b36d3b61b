package util

import (
	"errors"
	"net/http"
	"skill_insight_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// ErrorFrom 将业务哨兵错误映射为对应的 HTTP 状态码
func ErrorFrom(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTargetProfileNotFound) || errors.Is(err, ErrAccountNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrTargetProfileEmpty) || errors.Is(err, ErrLearnerRequired) || errors.Is(err, ErrInvalidProfile):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrAccountDisabled):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAccountExists):
		Error(c, http.StatusConflict, err.Error())
	default:
		LogInternalError(c, err)
	}
}
