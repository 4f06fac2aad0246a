package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColorOptions 分组可选颜色
var ColorOptions = []string{
	"#f97316", "#3b82f6", "#10b981", "#8b5cf6",
	"#ec4899", "#f59e0b", "#14b8a6", "#6366f1",
}

// DefaultGroupColor 新建分组未指定颜色时使用
var DefaultGroupColor = ColorOptions[0]

// Group 工具分组
type Group struct {
	ID    string `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name  string `gorm:"column:name;type:varchar(128);not null;index" json:"name"`
	Color string `gorm:"column:color;type:varchar(32)" json:"color"`
}

// TableName 指定表名
func (Group) TableName() string {
	return "groups"
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// GetID 返回分组 ID
func (g Group) GetID() string { return g.ID }

// GroupInput 新建分组的输入（不含 id）
type GroupInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewGroup 由输入构造分组
func (in GroupInput) NewGroup(id string) Group {
	return Group{ID: id, Name: in.Name, Color: in.Color}
}
