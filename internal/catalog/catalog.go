package catalog

import (
	"regexp"
	"strings"
)

var spaceRx = regexp.MustCompile(`\s+`)

// Normalize 规范化物品显示名，用作映射键
// 规则: 去除首尾空白、压缩连续空白为单个空格、转为小写
func Normalize(name string) string {
	return strings.ToLower(spaceRx.ReplaceAllString(strings.TrimSpace(name), " "))
}

// Entry 物品条目
type Entry struct {
	Name       string `json:"name"`       // 显示名（保留原始大小写）
	Identifier string `json:"identifier"` // 基础标识符，可能已内嵌 Tn_ 前缀
}

// Catalog 物品名称到基础标识符的只读映射
// 构建完成后不再修改，解析阶段只读访问
type Catalog struct {
	entries map[string]Entry
}

// Lookup 按显示名查找基础标识符
// 查找前使用与构建时相同的规范化规则
func (c *Catalog) Lookup(name string) (string, bool) {
	e, ok := c.entries[Normalize(name)]
	if !ok {
		return "", false
	}
	return e.Identifier, true
}

// Len 条目数量
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Search 按子串搜索显示名（不区分大小写）
// limit <= 0 表示不限制数量
func (c *Catalog) Search(q string, limit int) []Entry {
	q = Normalize(q)
	result := make([]Entry, 0)
	for key, e := range c.entries {
		if q != "" && !strings.Contains(key, q) {
			continue
		}
		result = append(result, e)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result
}
