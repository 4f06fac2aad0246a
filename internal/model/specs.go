package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Spec 单条规格参数
type Spec struct {
	Name  string
	Value string
}

// Specs 有序的规格参数表（名称 -> 值）
// JSON 形式为对象，键的顺序在编解码过程中保持不变
type Specs []Spec

// Get 按名称查找规格值
func (s Specs) Get(name string) (string, bool) {
	for _, sp := range s {
		if sp.Name == name {
			return sp.Value, true
		}
	}
	return "", false
}

// Set 设置规格值，已存在则原位覆盖，否则追加到末尾
func (s Specs) Set(name, value string) Specs {
	for i := range s {
		if s[i].Name == name {
			out := s.Clone()
			out[i].Value = value
			return out
		}
	}
	return append(s.Clone(), Spec{Name: name, Value: value})
}

// Delete 删除指定名称的规格
func (s Specs) Delete(name string) Specs {
	out := make(Specs, 0, len(s))
	for _, sp := range s {
		if sp.Name != name {
			out = append(out, sp)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Clone 拷贝
func (s Specs) Clone() Specs {
	if s == nil {
		return nil
	}
	out := make(Specs, len(s))
	copy(out, s)
	return out
}

// MarshalJSON 按顺序输出 JSON 对象
func (s Specs) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sp := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(sp.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(sp.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 解析 JSON 对象并保留键顺序，重复键以后出现的值为准
func (s *Specs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specs: expected object, got %v", tok)
	}

	var out Specs
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("specs: expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("specs: value of %q: %w", key, err)
		}
		out = out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// Value 实现 driver.Valuer 接口
func (s Specs) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (s *Specs) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("specs: unsupported scan type %T", value)
	}
}
