// Package store 提供本地模式使用的字符串键值存储
// 快照以整段 JSON 文本保存在固定的键下，每次变更整体覆盖
package store

import (
	"context"
	"fmt"
)

// KV 字符串键值存储
type KV interface {
	// Get 读取键值，键不存在时 ok 为 false
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set 覆盖写入键值
	Set(ctx context.Context, key, value string) error
	Close() error
}

// 支持的驱动
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options 打开存储所需参数
type Options struct {
	Driver string
	// sqlite 文件路径
	Path string
	// redis 连接参数
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// redis 键前缀
	KeyPrefix string
}

// Open 按驱动打开存储
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return NewSQLite(opts.Path)
	case DriverRedis:
		return NewRedis(ctx, opts)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported local store driver: %s", opts.Driver)
	}
}
