package model

// ToolPatch 工具的部分更新，nil 字段保持原值
type ToolPatch struct {
	Name        *string `json:"name,omitempty"`
	GroupID     *string `json:"groupId,omitempty"`
	ModelURL    *string `json:"modelUrl,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Description *string `json:"description,omitempty"`
	Specs       *Specs  `json:"specs,omitempty"`
}

// IsEmpty 是否没有任何字段需要更新
func (p ToolPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields 以模型字段名为键列出需要更新的字段
func (p ToolPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.GroupID != nil {
		fields["groupId"] = *p.GroupID
	}
	if p.ModelURL != nil {
		fields["modelUrl"] = *p.ModelURL
	}
	if p.ImageURL != nil {
		fields["imageUrl"] = *p.ImageURL
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Specs != nil {
		fields["specs"] = p.Specs.Clone()
	}
	return fields
}

// ApplyToolPatch 把 patch 合并到工具上，返回新值
func ApplyToolPatch(t Tool, p ToolPatch) Tool {
	t = t.Clone()
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.GroupID != nil {
		t.GroupID = *p.GroupID
	}
	if p.ModelURL != nil {
		t.ModelURL = *p.ModelURL
	}
	if p.ImageURL != nil {
		t.ImageURL = *p.ImageURL
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Specs != nil {
		t.Specs = p.Specs.Clone()
	}
	return t
}

// GroupPatch 分组的部分更新
type GroupPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// IsEmpty 是否没有任何字段需要更新
func (p GroupPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil
}

// Fields 以模型字段名为键列出需要更新的字段
func (p GroupPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Color != nil {
		fields["color"] = *p.Color
	}
	return fields
}

// ApplyGroupPatch 把 patch 合并到分组上，返回新值
func ApplyGroupPatch(g Group, p GroupPatch) Group {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	return g
}

// Identified 带 ID 的实体
type Identified interface {
	GetID() string
}

// UpdateByID 对 id 匹配的元素执行 apply，返回新切片及是否找到
// 原切片不会被修改
func UpdateByID[T Identified](items []T, id string, apply func(T) T) ([]T, bool) {
	for i := range items {
		if items[i].GetID() != id {
			continue
		}
		out := make([]T, len(items))
		copy(out, items)
		out[i] = apply(items[i])
		return out, true
	}
	return items, false
}

// RemoveByID 移除 id 匹配的元素，返回新切片及是否有元素被移除
// 原切片不会被修改
func RemoveByID[T Identified](items []T, id string) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	return out, len(out) != len(items)
}

// FindByID 按 id 查找
func FindByID[T Identified](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FilterByGroup 返回 groupId 完全相等的工具，保持原有顺序
// groupID 为空时返回全部
func FilterByGroup(tools []Tool, groupID string) []Tool {
	out := make([]Tool, 0, len(tools))
	for _, t := range tools {
		if groupID == "" || t.GroupID == groupID {
			out = append(out, t)
		}
	}
	return out
}
