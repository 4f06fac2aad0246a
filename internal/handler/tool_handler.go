package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/model"
	"github.com/ashwinyue/fractools/internal/service/catalog"
)

// ToolHandler 工具处理器
type ToolHandler struct {
	view *catalog.View
	log  *zap.Logger
}

// NewToolHandler 创建工具处理器
func NewToolHandler(view *catalog.View, log *zap.Logger) *ToolHandler {
	return &ToolHandler{view: view, log: log}
}

// ToolResponse 工具及其所属分组，分组已删除时 ungrouped 为 true
type ToolResponse struct {
	model.Tool
	Group     *model.Group `json:"group"`
	Ungrouped bool         `json:"ungrouped"`
}

// CreateToolRequest 创建工具请求
type CreateToolRequest struct {
	Name        string      `json:"name" binding:"required"`
	GroupID     string      `json:"groupId" binding:"required"`
	ModelURL    string      `json:"modelUrl"`
	ImageURL    string      `json:"imageUrl"`
	Description string      `json:"description"`
	Specs       model.Specs `json:"specs"`
}

// MoveToolRequest 移动工具请求（按分组名称）
type MoveToolRequest struct {
	Group string `json:"group" binding:"required"`
}

func (h *ToolHandler) toResponse(t model.Tool) ToolResponse {
	resp := ToolResponse{Tool: t}
	if g, ok := h.view.GroupOf(t); ok {
		resp.Group = &g
	} else {
		resp.Ungrouped = true
	}
	return resp
}

// ListTools 列出工具
// GET /api/v1/tools?group_id=
// 不带 group_id 时使用当前筛选
func (h *ToolHandler) ListTools(c *gin.Context) {
	var tools []model.Tool
	if groupID, ok := c.GetQuery("group_id"); ok {
		tools = h.view.ToolsInGroup(groupID)
	} else {
		tools = h.view.FilteredTools()
	}

	items := make([]ToolResponse, 0, len(tools))
	for _, t := range tools {
		items = append(items, h.toResponse(t))
	}
	success(c, gin.H{"items": items, "total": len(items)})
}

// GetTool 获取工具
// GET /api/v1/tools/:id
func (h *ToolHandler) GetTool(c *gin.Context) {
	tool, ok := h.view.Tool(c.Param("id"))
	if !ok {
		notFound(c, "工具不存在")
		return
	}
	success(c, h.toResponse(tool))
}

// CreateTool 创建工具
// POST /api/v1/tools
func (h *ToolHandler) CreateTool(c *gin.Context) {
	var req CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求参数不合法: "+err.Error())
		return
	}

	tool, err := h.view.AddTool(c.Request.Context(), model.ToolInput{
		Name:        sanitizeText(req.Name),
		GroupID:     req.GroupID,
		ModelURL:    req.ModelURL,
		ImageURL:    req.ImageURL,
		Description: sanitizeText(req.Description),
		Specs:       sanitizeSpecs(req.Specs),
	})
	if err != nil {
		errorResponse(c, h.log, err)
		return
	}

	created(c, h.toResponse(tool))
}

// UpdateTool 部分更新工具
// PUT /api/v1/tools/:id
func (h *ToolHandler) UpdateTool(c *gin.Context) {
	var patch model.ToolPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "请求参数不合法: "+err.Error())
		return
	}
	patch.Name = sanitizePtr(patch.Name)
	patch.Description = sanitizePtr(patch.Description)
	if patch.Specs != nil {
		specs := sanitizeSpecs(*patch.Specs)
		patch.Specs = &specs
	}

	id := c.Param("id")
	if err := h.view.UpdateTool(c.Request.Context(), id, patch); err != nil {
		errorResponse(c, h.log, err)
		return
	}
	success(c, gin.H{"id": id})
}

// MoveTool 把工具移动到指定名称的分组
// POST /api/v1/tools/:id/move
func (h *ToolHandler) MoveTool(c *gin.Context) {
	var req MoveToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求参数不合法: "+err.Error())
		return
	}

	id := c.Param("id")
	if err := h.view.MoveTool(c.Request.Context(), id, req.Group); err != nil {
		errorResponse(c, h.log, err)
		return
	}
	success(c, gin.H{"id": id})
}

// RemoveSpec 删除工具的一项规格
// DELETE /api/v1/tools/:id/specs/:name
func (h *ToolHandler) RemoveSpec(c *gin.Context) {
	id := c.Param("id")
	if err := h.view.RemoveSpec(c.Request.Context(), id, c.Param("name")); err != nil {
		errorResponse(c, h.log, err)
		return
	}
	success(c, gin.H{"id": id})
}

// DeleteTool 删除工具
// DELETE /api/v1/tools/:id
func (h *ToolHandler) DeleteTool(c *gin.Context) {
	id := c.Param("id")
	if err := h.view.DeleteTool(c.Request.Context(), id); err != nil {
		errorResponse(c, h.log, err)
		return
	}
	success(c, gin.H{"id": id})
}
