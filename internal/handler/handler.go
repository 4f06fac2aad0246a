package handler

import (
	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/service/catalog"
)

// Handlers 处理器集合
type Handlers struct {
	System *SystemHandler
	Tool   *ToolHandler
	Group  *GroupHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(view *catalog.View, log *zap.Logger) *Handlers {
	return &Handlers{
		System: NewSystemHandler(view, log),
		Tool:   NewToolHandler(view, log),
		Group:  NewGroupHandler(view, log),
	}
}
