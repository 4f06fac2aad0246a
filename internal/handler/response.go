package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/repository"
	"github.com/ashwinyue/fractools/internal/service/catalog"
)

// Response 统一响应格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// badRequest 请求参数错误
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: msg})
}

// notFound 资源不存在
func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Code: -1, Message: msg})
}

// errorResponse 按错误类型返回响应
// 远程存储失败不透出底层细节，只记录日志
func errorResponse(c *gin.Context, log *zap.Logger, err error) {
	var be *repository.BackendError
	switch {
	case errors.Is(err, catalog.ErrUnknownGroup), errors.Is(err, catalog.ErrEmptyName):
		badRequest(c, err.Error())
	case errors.As(err, &be):
		log.Error("backend operation failed", zap.String("op", be.Op), zap.Error(be.Err))
		c.JSON(http.StatusBadGateway, Response{Code: -1, Message: "数据服务暂时不可用，请稍后重试"})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Code: -1, Message: err.Error()})
	}
}
