package model

// FieldMapping 内存模型字段名与远端表列名的对应
type FieldMapping struct {
	Field  string // 模型字段名（JSON / 本地快照）
	Column string // 远端表列名
}

// FieldTable 双向字段映射表
type FieldTable []FieldMapping

// ToolFields tools 表的字段映射，覆盖 Tool 的全部字段
var ToolFields = FieldTable{
	{Field: "id", Column: "id"},
	{Field: "name", Column: "name"},
	{Field: "groupId", Column: "group_id"},
	{Field: "modelUrl", Column: "model_url"},
	{Field: "imageUrl", Column: "image_url"},
	{Field: "description", Column: "description"},
	{Field: "specs", Column: "specs"},
	{Field: "createdAt", Column: "created_at"},
}

// GroupFields groups 表的字段映射
var GroupFields = FieldTable{
	{Field: "id", Column: "id"},
	{Field: "name", Column: "name"},
	{Field: "color", Column: "color"},
}

// Column 模型字段名 -> 列名
func (t FieldTable) Column(field string) (string, bool) {
	for _, m := range t {
		if m.Field == field {
			return m.Column, true
		}
	}
	return "", false
}

// Field 列名 -> 模型字段名
func (t FieldTable) Field(column string) (string, bool) {
	for _, m := range t {
		if m.Column == column {
			return m.Field, true
		}
	}
	return "", false
}

// ToColumns 把以模型字段名为键的更新集合转换为以列名为键
// 未登记的字段直接报错，保证映射是全的
func (t FieldTable) ToColumns(fields map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fields))
	for f, v := range fields {
		col, ok := t.Column(f)
		if !ok {
			return nil, &UnknownFieldError{Field: f}
		}
		out[col] = v
	}
	return out, nil
}

// UnknownFieldError 字段未在映射表中登记
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return "unmapped field: " + e.Field
}
