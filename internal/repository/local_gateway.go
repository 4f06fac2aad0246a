package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/model"
	"github.com/ashwinyue/fractools/internal/store"
)

// LocalGateway 本地模式网关
// 数据保存在内存中，每次变更先把整个集合写入键值存储，成功后再替换内存中的集合
type LocalGateway struct {
	mu     sync.Mutex
	kv     store.KV
	log    *zap.Logger
	now    func() time.Time
	tools  []model.Tool
	groups []model.Group
}

var _ Gateway = (*LocalGateway)(nil)

// NewLocalGateway 加载本地快照，没有快照时使用种子数据
func NewLocalGateway(ctx context.Context, kv store.KV, log *zap.Logger) (*LocalGateway, error) {
	g := &LocalGateway{
		kv:  kv,
		log: log,
		now: time.Now,
	}

	tools, err := loadSnapshot(ctx, kv, ToolsKey, func() []model.Tool {
		return model.SeedTools(g.now().UTC())
	}, log)
	if err != nil {
		return nil, err
	}
	groups, err := loadSnapshot(ctx, kv, GroupsKey, model.SeedGroups, log)
	if err != nil {
		return nil, err
	}

	g.tools = tools
	g.groups = groups
	return g, nil
}

func (g *LocalGateway) Mode() Mode { return ModeLocal }

// FetchTools 按保存顺序（新建的在前）返回工具
func (g *LocalGateway) FetchTools(_ context.Context) ([]model.Tool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.Tool, len(g.tools))
	for i, t := range g.tools {
		out[i] = t.Clone()
	}
	return out, nil
}

// AddTool 生成 id 与创建时间，插入到列表最前面
func (g *LocalGateway) AddTool(ctx context.Context, in model.ToolInput) (model.Tool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC()
	id := nextLocalID("t", now, func(id string) bool {
		_, ok := model.FindByID(g.tools, id)
		return ok
	})
	tool := in.NewTool(id, now)

	next := make([]model.Tool, 0, len(g.tools)+1)
	next = append(next, tool)
	next = append(next, g.tools...)
	if err := saveSnapshot(ctx, g.kv, ToolsKey, next); err != nil {
		return model.Tool{}, err
	}
	g.tools = next
	return tool.Clone(), nil
}

// UpdateTool 合并 patch，id 不存在时不做任何事
func (g *LocalGateway) UpdateTool(ctx context.Context, id string, patch model.ToolPatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, found := model.UpdateByID(g.tools, id, func(t model.Tool) model.Tool {
		return model.ApplyToolPatch(t, patch)
	})
	if !found {
		return nil
	}
	if err := saveSnapshot(ctx, g.kv, ToolsKey, next); err != nil {
		return err
	}
	g.tools = next
	return nil
}

// DeleteTool 删除工具，id 不存在时不做任何事
func (g *LocalGateway) DeleteTool(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, removed := model.RemoveByID(g.tools, id)
	if !removed {
		return nil
	}
	if err := saveSnapshot(ctx, g.kv, ToolsKey, next); err != nil {
		return err
	}
	g.tools = next
	return nil
}

// FetchGroups 按保存顺序返回分组
func (g *LocalGateway) FetchGroups(_ context.Context) ([]model.Group, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.Group, len(g.groups))
	copy(out, g.groups)
	return out, nil
}

// AddGroup 生成 id 并追加到列表末尾
func (g *LocalGateway) AddGroup(ctx context.Context, in model.GroupInput) (model.Group, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := nextLocalID("g", g.now(), func(id string) bool {
		_, ok := model.FindByID(g.groups, id)
		return ok
	})
	group := in.NewGroup(id)

	next := make([]model.Group, 0, len(g.groups)+1)
	next = append(next, g.groups...)
	next = append(next, group)
	if err := saveSnapshot(ctx, g.kv, GroupsKey, next); err != nil {
		return model.Group{}, err
	}
	g.groups = next
	return group, nil
}

// UpdateGroup 合并 patch，id 不存在时不做任何事
func (g *LocalGateway) UpdateGroup(ctx context.Context, id string, patch model.GroupPatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, found := model.UpdateByID(g.groups, id, func(gr model.Group) model.Group {
		return model.ApplyGroupPatch(gr, patch)
	})
	if !found {
		return nil
	}
	if err := saveSnapshot(ctx, g.kv, GroupsKey, next); err != nil {
		return err
	}
	g.groups = next
	return nil
}

// DeleteGroup 删除分组，不影响引用它的工具
func (g *LocalGateway) DeleteGroup(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, removed := model.RemoveByID(g.groups, id)
	if !removed {
		return nil
	}
	if err := saveSnapshot(ctx, g.kv, GroupsKey, next); err != nil {
		return err
	}
	g.groups = next
	return nil
}

// Close 关闭底层存储
func (g *LocalGateway) Close() error {
	return g.kv.Close()
}

// nextLocalID 以毫秒时间戳生成 id，冲突时顺延
func nextLocalID(prefix string, now time.Time, taken func(string) bool) string {
	ms := now.UnixMilli()
	for {
		id := fmt.Sprintf("%s%d", prefix, ms)
		if !taken(id) {
			return id
		}
		ms++
	}
}
