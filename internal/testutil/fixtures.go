// Package testutil 提供测试辅助工具
package testutil

import (
	"reflect"
	"testing"

	"github.com/ashwinyue/fractools/internal/model"
)

// StrPtr 返回字符串指针，便于构造 patch
func StrPtr(s string) *string {
	return &s
}

// SampleToolInput 构造一个字段齐全的工具输入
func SampleToolInput(groupID string) model.ToolInput {
	return model.ToolInput{
		Name:        "套管扶正器",
		GroupID:     groupID,
		ModelURL:    "https://cdn.example.com/models/centralizer.glb",
		ImageURL:    "https://cdn.example.com/images/centralizer.png",
		Description: "弹性扶正器，保证套管居中",
		Specs: model.Specs{
			{Name: "外径", Value: "9.625 英寸"},
			{Name: "材质", Value: "弹簧钢"},
		},
	}
}

// ToolIDs 按顺序提取工具 ID
func ToolIDs(tools []model.Tool) []string {
	ids := make([]string, 0, len(tools))
	for _, t := range tools {
		ids = append(ids, t.ID)
	}
	return ids
}

// GroupIDs 按顺序提取分组 ID
func GroupIDs(groups []model.Group) []string {
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}

// AssertToolEqual 逐字段比较工具，时间用 Equal 比较
func AssertToolEqual(t *testing.T, want, got model.Tool) {
	t.Helper()
	if !want.CreatedAt.Equal(got.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	want.CreatedAt, got.CreatedAt = got.CreatedAt, got.CreatedAt
	if !reflect.DeepEqual(want, got) {
		t.Errorf("tool = %+v, want %+v", got, want)
	}
}

// AssertInputStored 检查工具保存了输入中的全部字段
func AssertInputStored(t *testing.T, in model.ToolInput, got model.Tool) {
	t.Helper()
	if got.Name != in.Name || got.GroupID != in.GroupID || got.ModelURL != in.ModelURL ||
		got.ImageURL != in.ImageURL || got.Description != in.Description {
		t.Errorf("stored tool %+v does not match input %+v", got, in)
	}
	if !reflect.DeepEqual(got.Specs, in.Specs) {
		t.Errorf("Specs = %v, want %v", got.Specs, in.Specs)
	}
}
