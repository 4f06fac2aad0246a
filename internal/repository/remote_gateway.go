package repository

import (
	"context"
	"time"

	"github.com/ashwinyue/fractools/internal/database"
	"github.com/ashwinyue/fractools/internal/model"
)

// RemoteGateway 基于远程数据库的网关
type RemoteGateway struct {
	db *database.DB
}

// NewRemoteGateway 创建远程网关
func NewRemoteGateway(db *database.DB) *RemoteGateway {
	return &RemoteGateway{db: db}
}

var _ Gateway = (*RemoteGateway)(nil)

func (r *RemoteGateway) Mode() Mode { return ModeRemote }

// FetchTools 按创建时间倒序列出工具
func (r *RemoteGateway) FetchTools(ctx context.Context) ([]model.Tool, error) {
	tools := []model.Tool{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tools).Error; err != nil {
		return nil, &BackendError{Op: "fetchTools", Err: err}
	}
	return tools, nil
}

// AddTool 插入工具，返回数据库中保存的记录（含生成的 id 与创建时间）
func (r *RemoteGateway) AddTool(ctx context.Context, in model.ToolInput) (model.Tool, error) {
	tool := in.NewTool("", time.Time{})
	if err := r.db.WithContext(ctx).Create(&tool).Error; err != nil {
		return model.Tool{}, &BackendError{Op: "addTool", Err: err}
	}

	var stored model.Tool
	if err := r.db.WithContext(ctx).Where("id = ?", tool.ID).First(&stored).Error; err != nil {
		return model.Tool{}, &BackendError{Op: "addTool", Err: err}
	}
	return stored, nil
}

// UpdateTool 只更新 patch 中给出的列
func (r *RemoteGateway) UpdateTool(ctx context.Context, id string, patch model.ToolPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	cols, err := model.ToolFields.ToColumns(patch.Fields())
	if err != nil {
		return &BackendError{Op: "updateTool", Err: err}
	}
	if err := r.db.WithContext(ctx).Model(&model.Tool{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		return &BackendError{Op: "updateTool", Err: err}
	}
	return nil
}

// DeleteTool 删除工具
func (r *RemoteGateway) DeleteTool(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Tool{}).Error; err != nil {
		return &BackendError{Op: "deleteTool", Err: err}
	}
	return nil
}

// FetchGroups 按名称升序列出分组
func (r *RemoteGateway) FetchGroups(ctx context.Context) ([]model.Group, error) {
	groups := []model.Group{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&groups).Error; err != nil {
		return nil, &BackendError{Op: "fetchGroups", Err: err}
	}
	return groups, nil
}

// AddGroup 插入分组
func (r *RemoteGateway) AddGroup(ctx context.Context, in model.GroupInput) (model.Group, error) {
	group := in.NewGroup("")
	if err := r.db.WithContext(ctx).Create(&group).Error; err != nil {
		return model.Group{}, &BackendError{Op: "addGroup", Err: err}
	}

	var stored model.Group
	if err := r.db.WithContext(ctx).Where("id = ?", group.ID).First(&stored).Error; err != nil {
		return model.Group{}, &BackendError{Op: "addGroup", Err: err}
	}
	return stored, nil
}

// UpdateGroup 只更新 patch 中给出的列
func (r *RemoteGateway) UpdateGroup(ctx context.Context, id string, patch model.GroupPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	cols, err := model.GroupFields.ToColumns(patch.Fields())
	if err != nil {
		return &BackendError{Op: "updateGroup", Err: err}
	}
	if err := r.db.WithContext(ctx).Model(&model.Group{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		return &BackendError{Op: "updateGroup", Err: err}
	}
	return nil
}

// DeleteGroup 删除分组，引用它的工具保持不变
func (r *RemoteGateway) DeleteGroup(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Group{}).Error; err != nil {
		return &BackendError{Op: "deleteGroup", Err: err}
	}
	return nil
}

// Close 关闭数据库连接
func (r *RemoteGateway) Close() error {
	return r.db.Close()
}
