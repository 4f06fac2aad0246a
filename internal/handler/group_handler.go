package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/model"
	"github.com/ashwinyue/fractools/internal/service/catalog"
)

// GroupHandler 分组处理器
type GroupHandler struct {
	view *catalog.View
	log  *zap.Logger
}

// NewGroupHandler 创建分组处理器
func NewGroupHandler(view *catalog.View, log *zap.Logger) *GroupHandler {
	return &GroupHandler{view: view, log: log}
}

// CreateGroupRequest 创建分组请求
type CreateGroupRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// ListGroups 列出分组
// GET /api/v1/groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups := h.view.Groups()
	success(c, gin.H{"items": groups, "total": len(groups)})
}

// ListColors 可选分组颜色
// GET /api/v1/groups/colors
func (h *GroupHandler) ListColors(c *gin.Context) {
	success(c, model.ColorOptions)
}

// CreateGroup 创建分组
// POST /api/v1/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求参数不合法: "+err.Error())
		return
	}

	group, err := h.view.AddGroup(c.Request.Context(), model.GroupInput{
		Name:  sanitizeText(req.Name),
		Color: sanitizeText(req.Color),
	})
	if err != nil {
		errorResponse(c, h.log, err)
		return
	}
	created(c, group)
}

// UpdateGroup 部分更新分组
// PUT /api/v1/groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	var patch model.GroupPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "请求参数不合法: "+err.Error())
		return
	}
	patch.Name = sanitizePtr(patch.Name)
	patch.Color = sanitizePtr(patch.Color)

	id := c.Param("id")
	if err := h.view.UpdateGroup(c.Request.Context(), id, patch); err != nil {
		errorResponse(c, h.log, err)
		return
	}
	success(c, gin.H{"id": id})
}

// DeleteGroup 删除分组，原属该分组的工具保留
// DELETE /api/v1/groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id := c.Param("id")
	if err := h.view.DeleteGroup(c.Request.Context(), id); err != nil {
		errorResponse(c, h.log, err)
		return
	}
	success(c, gin.H{"id": id})
}
