// Package repository 定义工具与分组的持久化网关
// 同一接口有远程（gorm）和本地（键值快照）两种实现，进程启动时选定一种
package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/config"
	"github.com/ashwinyue/fractools/internal/database"
	"github.com/ashwinyue/fractools/internal/model"
	"github.com/ashwinyue/fractools/internal/store"
)

// Mode 存储模式
type Mode string

const (
	ModeRemote Mode = "remote" // 远程数据库
	ModeLocal  Mode = "local"  // 本地快照
)

// Gateway 工具与分组的统一数据访问接口
// 更新和删除不存在的 id 不报错
type Gateway interface {
	Mode() Mode

	FetchTools(ctx context.Context) ([]model.Tool, error)
	AddTool(ctx context.Context, in model.ToolInput) (model.Tool, error)
	UpdateTool(ctx context.Context, id string, patch model.ToolPatch) error
	DeleteTool(ctx context.Context, id string) error

	FetchGroups(ctx context.Context) ([]model.Group, error)
	AddGroup(ctx context.Context, in model.GroupInput) (model.Group, error)
	UpdateGroup(ctx context.Context, id string, patch model.GroupPatch) error
	DeleteGroup(ctx context.Context, id string) error

	Close() error
}

// BackendError 远程调用失败（网络、认证或约束错误），不做进一步分类
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Open 根据配置选择存储模式并创建网关，只在启动时调用一次
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (Gateway, error) {
	if cfg.Remote.RemoteEnabled() {
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open remote backend: %w", err)
		}
		log.Info("数据服务：远程模式")
		return NewRemoteGateway(db), nil
	}

	kv, err := store.Open(ctx, store.Options{
		Driver:        cfg.Local.Driver,
		Path:          cfg.Local.Path,
		RedisAddr:     cfg.Redis.GetAddr(),
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		KeyPrefix:     cfg.Local.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	gw, err := NewLocalGateway(ctx, kv, log)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	log.Info("数据服务：演示模式（本地存储）", zap.String("driver", cfg.Local.Driver))
	return gw, nil
}
