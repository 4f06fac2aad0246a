package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/handler"
	"github.com/ashwinyue/fractools/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(log))

	// 健康检查
	r.GET("/health", h.System.Health)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/mode", h.System.GetMode)
		v1.POST("/reload", h.System.Reload)
		v1.GET("/selection", h.System.GetSelection)
		v1.PUT("/selection", h.System.UpdateSelection)

		// Tool 工具
		tools := v1.Group("/tools")
		{
			tools.GET("", h.Tool.ListTools)
			tools.POST("", h.Tool.CreateTool)
			tools.GET("/:id", h.Tool.GetTool)
			tools.PUT("/:id", h.Tool.UpdateTool)
			tools.DELETE("/:id", h.Tool.DeleteTool)
			tools.POST("/:id/move", h.Tool.MoveTool)
			tools.DELETE("/:id/specs/:name", h.Tool.RemoveSpec)
		}

		// Group 分组
		groups := v1.Group("/groups")
		{
			groups.GET("", h.Group.ListGroups)
			groups.GET("/colors", h.Group.ListColors)
			groups.POST("", h.Group.CreateGroup)
			groups.PUT("/:id", h.Group.UpdateGroup)
			groups.DELETE("/:id", h.Group.DeleteGroup)
		}
	}

	return r
}
