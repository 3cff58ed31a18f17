package model

import "sort"

// ── 编码集合 ──

// CodeSet 自然键编码集合，JSON 中序列化为字符串数组。
// 顺序保持写入顺序，元素不重复。
type CodeSet []string

// Contains 判断编码是否在集合中
func (s CodeSet) Contains(code string) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

// Add 追加编码；已存在时返回原集合与 false
func (s CodeSet) Add(code string) (CodeSet, bool) {
	if s.Contains(code) {
		return s, false
	}
	return append(s, code), true
}

// Remove 移除编码；不存在时返回原集合与 false
func (s CodeSet) Remove(code string) (CodeSet, bool) {
	for i, c := range s {
		if c == code {
			out := make(CodeSet, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...), true
		}
	}
	return s, false
}

// Normalize 去重并去除空编码，保持首次出现顺序
func (s CodeSet) Normalize() CodeSet {
	out := make(CodeSet, 0, len(s))
	for _, c := range s {
		if c == "" {
			continue
		}
		out, _ = out.Add(c)
	}
	return out
}

// Sorted 返回排序后的副本
func (s CodeSet) Sorted() CodeSet {
	out := append(CodeSet(nil), s...)
	sort.Strings(out)
	return out
}

// Timestamps 审计时间（RFC3339 字符串，由服务层写入）
type Timestamps struct {
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
