// Package catalog 维护工具与分组的视图状态
// 所有变更先交给持久化网关，成功后再用同一套合并函数更新内存视图
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ashwinyue/fractools/internal/model"
	"github.com/ashwinyue/fractools/internal/repository"
)

var (
	// ErrUnknownGroup 分组不存在
	ErrUnknownGroup = errors.New("unknown group")
	// ErrEmptyName 名称为空
	ErrEmptyName = errors.New("name must not be empty")
)

// View 工具目录视图
type View struct {
	gw  repository.Gateway
	log *zap.Logger

	// 变更期间持有写锁，保证网关调用与内存更新的顺序一致
	mu       sync.RWMutex
	tools    []model.Tool
	groups   []model.Group
	selected string
}

// NewView 创建视图，调用 Load 之前视图为空
func NewView(gw repository.Gateway, log *zap.Logger) *View {
	return &View{gw: gw, log: log}
}

// Mode 当前存储模式
func (v *View) Mode() repository.Mode {
	return v.gw.Mode()
}

// Load 并发读取工具与分组，失败时保留原有状态
func (v *View) Load(ctx context.Context) error {
	var tools []model.Tool
	var groups []model.Group

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tools, err = v.gw.FetchTools(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = v.gw.FetchGroups(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.tools = tools
	v.groups = groups
	if v.selected != "" {
		if _, ok := model.FindByID(groups, v.selected); !ok {
			v.selected = ""
		}
	}

	v.log.Info("catalog loaded",
		zap.String("mode", string(v.gw.Mode())),
		zap.Int("tools", len(tools)),
		zap.Int("groups", len(groups)),
	)
	return nil
}

// Tools 全部工具
func (v *View) Tools() []model.Tool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return cloneTools(v.tools)
}

// Groups 全部分组
func (v *View) Groups() []model.Group {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]model.Group, len(v.groups))
	copy(out, v.groups)
	return out
}

// Tool 按 id 查找工具
func (v *View) Tool(id string) (model.Tool, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	t, ok := model.FindByID(v.tools, id)
	if !ok {
		return model.Tool{}, false
	}
	return t.Clone(), true
}

// GroupOf 工具所属分组，分组已被删除时返回 false（未分组）
func (v *View) GroupOf(tool model.Tool) (model.Group, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return model.FindByID(v.groups, tool.GroupID)
}

// SelectGroup 设置分组筛选，空字符串表示全部
func (v *View) SelectGroup(groupID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = groupID
}

// Selected 当前筛选的分组
func (v *View) Selected() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selected
}

// FilteredTools 按当前筛选返回工具
func (v *View) FilteredTools() []model.Tool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return cloneTools(model.FilterByGroup(v.tools, v.selected))
}

// ToolsInGroup 按给定分组筛选，不改变当前筛选
func (v *View) ToolsInGroup(groupID string) []model.Tool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return cloneTools(model.FilterByGroup(v.tools, groupID))
}

// AddTool 新建工具，插入到列表最前面
func (v *View) AddTool(ctx context.Context, in model.ToolInput) (model.Tool, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Tool{}, ErrEmptyName
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := model.FindByID(v.groups, in.GroupID); !ok {
		return model.Tool{}, fmt.Errorf("%w: %s", ErrUnknownGroup, in.GroupID)
	}

	tool, err := v.gw.AddTool(ctx, in)
	if err != nil {
		return model.Tool{}, err
	}

	next := make([]model.Tool, 0, len(v.tools)+1)
	next = append(next, tool)
	v.tools = append(next, v.tools...)
	return tool.Clone(), nil
}

// UpdateTool 部分更新工具
func (v *View) UpdateTool(ctx context.Context, id string, patch model.ToolPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrEmptyName
		}
		patch.Name = &name
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if patch.GroupID != nil {
		if _, ok := model.FindByID(v.groups, *patch.GroupID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownGroup, *patch.GroupID)
		}
	}
	return v.updateToolLocked(ctx, id, patch)
}

func (v *View) updateToolLocked(ctx context.Context, id string, patch model.ToolPatch) error {
	if err := v.gw.UpdateTool(ctx, id, patch); err != nil {
		return err
	}
	v.tools, _ = model.UpdateByID(v.tools, id, func(t model.Tool) model.Tool {
		return model.ApplyToolPatch(t, patch)
	})
	return nil
}

// RenameTool 重命名工具，名称去掉首尾空白后不能为空
func (v *View) RenameTool(ctx context.Context, id, name string) error {
	return v.UpdateTool(ctx, id, model.ToolPatch{Name: &name})
}

// MoveTool 按分组名称把工具移动到另一个分组
func (v *View) MoveTool(ctx context.Context, toolID, groupName string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var target *model.Group
	for i := range v.groups {
		if v.groups[i].Name == groupName {
			target = &v.groups[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, groupName)
	}

	groupID := target.ID
	return v.updateToolLocked(ctx, toolID, model.ToolPatch{GroupID: &groupID})
}

// RemoveSpec 删除工具的一项规格，工具或规格不存在时不做任何事
func (v *View) RemoveSpec(ctx context.Context, toolID, name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	tool, ok := model.FindByID(v.tools, toolID)
	if !ok {
		return nil
	}
	if _, ok := tool.Specs.Get(name); !ok {
		return nil
	}
	specs := tool.Specs.Delete(name)
	return v.updateToolLocked(ctx, toolID, model.ToolPatch{Specs: &specs})
}

// DeleteTool 删除工具
func (v *View) DeleteTool(ctx context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.gw.DeleteTool(ctx, id); err != nil {
		return err
	}
	v.tools, _ = model.RemoveByID(v.tools, id)
	return nil
}

// AddGroup 新建分组，未指定颜色时使用默认色
func (v *View) AddGroup(ctx context.Context, in model.GroupInput) (model.Group, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Group{}, ErrEmptyName
	}
	if in.Color == "" {
		in.Color = model.DefaultGroupColor
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	group, err := v.gw.AddGroup(ctx, in)
	if err != nil {
		return model.Group{}, err
	}
	next := make([]model.Group, 0, len(v.groups)+1)
	next = append(next, v.groups...)
	v.groups = append(next, group)
	return group, nil
}

// UpdateGroup 部分更新分组
func (v *View) UpdateGroup(ctx context.Context, id string, patch model.GroupPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrEmptyName
		}
		patch.Name = &name
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.gw.UpdateGroup(ctx, id, patch); err != nil {
		return err
	}
	v.groups, _ = model.UpdateByID(v.groups, id, func(g model.Group) model.Group {
		return model.ApplyGroupPatch(g, patch)
	})
	return nil
}

// DeleteGroup 删除分组，原属该分组的工具保留并显示为未分组
// 若删除的是当前筛选分组，筛选回到全部
func (v *View) DeleteGroup(ctx context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.gw.DeleteGroup(ctx, id); err != nil {
		return err
	}
	v.groups, _ = model.RemoveByID(v.groups, id)
	if v.selected == id {
		v.selected = ""
	}
	return nil
}

func cloneTools(tools []model.Tool) []model.Tool {
	out := make([]model.Tool, len(tools))
	for i, t := range tools {
		out[i] = t.Clone()
	}
	return out
}
