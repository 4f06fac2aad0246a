package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/service/catalog"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	view *catalog.View
	log  *zap.Logger
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(view *catalog.View, log *zap.Logger) *SystemHandler {
	return &SystemHandler{view: view, log: log}
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetMode 当前存储模式
// GET /api/v1/mode
func (h *SystemHandler) GetMode(c *gin.Context) {
	success(c, gin.H{"mode": h.view.Mode()})
}

// Reload 从存储重新加载工具与分组
// POST /api/v1/reload
func (h *SystemHandler) Reload(c *gin.Context) {
	if err := h.view.Load(c.Request.Context()); err != nil {
		errorResponse(c, h.log, err)
		return
	}
	success(c, gin.H{
		"tools":  len(h.view.Tools()),
		"groups": len(h.view.Groups()),
	})
}

// SelectionRequest 分组筛选
type SelectionRequest struct {
	GroupID string `json:"groupId"`
}

// GetSelection 当前分组筛选
// GET /api/v1/selection
func (h *SystemHandler) GetSelection(c *gin.Context) {
	success(c, SelectionRequest{GroupID: h.view.Selected()})
}

// UpdateSelection 设置分组筛选，groupId 为空表示全部
// PUT /api/v1/selection
func (h *SystemHandler) UpdateSelection(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求参数不合法: "+err.Error())
		return
	}
	h.view.SelectGroup(req.GroupID)
	success(c, req)
}
