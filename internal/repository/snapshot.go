package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/store"
)

// 本地快照的两个键，分别保存完整的工具列表和分组列表
const (
	ToolsKey  = "fracturing_tools"
	GroupsKey = "fracturing_groups"
)

// encodeSnapshot 序列化整个集合
func encodeSnapshot[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeSnapshot 反序列化集合，顶层必须是数组
func decodeSnapshot[T any](data string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, fmt.Errorf("snapshot is null")
	}
	return items, nil
}

// loadSnapshot 读取快照
// 键不存在时使用种子数据；内容损坏时先尝试 jsonrepair 修复，仍无法解析则退回种子数据
func loadSnapshot[T any](ctx context.Context, kv store.KV, key string, seed func() []T, log *zap.Logger) ([]T, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if !ok {
		return seed(), nil
	}

	items, err := decodeSnapshot[T](data)
	if err == nil {
		return items, nil
	}

	repaired, rerr := jsonrepair.JSONRepair(data)
	if rerr == nil {
		if items, derr := decodeSnapshot[T](repaired); derr == nil {
			log.Warn("local snapshot repaired", zap.String("key", key), zap.Error(err))
			return items, nil
		}
	}

	log.Warn("local snapshot malformed, using seed data", zap.String("key", key), zap.Error(err))
	return seed(), nil
}

// saveSnapshot 整体覆盖写入快照
func saveSnapshot[T any](ctx context.Context, kv store.KV, key string, items []T) error {
	data, err := encodeSnapshot(items)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}
