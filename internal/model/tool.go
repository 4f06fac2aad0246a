package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tool 工具（压裂设备条目）
type Tool struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	GroupID     string    `gorm:"column:group_id;type:varchar(64);index" json:"groupId"`
	ModelURL    string    `gorm:"column:model_url;type:text" json:"modelUrl,omitempty"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"imageUrl,omitempty"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Specs       Specs     `gorm:"column:specs;type:json" json:"specs,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}

// TableName 指定表名
func (Tool) TableName() string {
	return "tools"
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (t *Tool) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// GetID 返回工具 ID
func (t Tool) GetID() string { return t.ID }

// Clone 深拷贝，避免调用方修改共享的 Specs
func (t Tool) Clone() Tool {
	t.Specs = t.Specs.Clone()
	return t
}

// ToolInput 新建工具的输入（不含 id 与 createdAt）
type ToolInput struct {
	Name        string `json:"name"`
	GroupID     string `json:"groupId"`
	ModelURL    string `json:"modelUrl,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Description string `json:"description,omitempty"`
	Specs       Specs  `json:"specs,omitempty"`
}

// NewTool 由输入构造工具，id 与时间戳由调用方（存储后端）填写
func (in ToolInput) NewTool(id string, createdAt time.Time) Tool {
	return Tool{
		ID:          id,
		Name:        in.Name,
		GroupID:     in.GroupID,
		ModelURL:    in.ModelURL,
		ImageURL:    in.ImageURL,
		Description: in.Description,
		Specs:       in.Specs.Clone(),
		CreatedAt:   createdAt,
	}
}
