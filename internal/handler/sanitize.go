package handler

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ashwinyue/fractools/internal/model"
)

// 去掉用户输入中的全部 HTML 标签
var textPolicy = bluemonday.StrictPolicy()

// 完整的标签或注释，其余的 < 都按普通字符处理
var tagPattern = regexp.MustCompile(`(?s)<!--.*?-->|</?[A-Za-z][^<>]*>`)

// sanitizeText 清理自由文本，只去掉完整的标签
// 原文中的 & 和不构成标签的 < 先转义，保证它们原样保留，实体文本也不会被解码成标签
// StrictPolicy 输出的是转义文本，最后还原成纯文本
func sanitizeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = escapeBareLT(s)
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// escapeBareLT 转义不属于完整标签的 <
func escapeBareLT(s string) string {
	var b strings.Builder
	last := 0
	for _, loc := range tagPattern.FindAllStringIndex(s, -1) {
		b.WriteString(strings.ReplaceAll(s[last:loc[0]], "<", "&lt;"))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(strings.ReplaceAll(s[last:], "<", "&lt;"))
	return b.String()
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizeText(*s)
	return &v
}

// sanitizeSpecs 清理规格的键和值，清理后键为空的条目丢弃
func sanitizeSpecs(specs model.Specs) model.Specs {
	var out model.Specs
	for _, sp := range specs {
		name := sanitizeText(sp.Name)
		if name == "" {
			continue
		}
		out = out.Set(name, sanitizeText(sp.Value))
	}
	return out
}
