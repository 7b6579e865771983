package catalog

import (
	"errors"

	"github.com/tidwall/gjson"
)

// AddDumpJSON 从社区数据导出 (ao-bin-dumps items.json 格式) 加载物品条目
// 期望顶层为对象数组，每项含 UniqueName 与 LocalizedNames.EN-US
// 缺少任一字段的项跳过，不报错
func (b *Builder) AddDumpJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid json dump")
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		// 部分导出会把数组包在 items 字段下
		root = root.Get("items")
		if !root.IsArray() {
			return errors.New("json dump is not an item array")
		}
	}

	root.ForEach(func(_, item gjson.Result) bool {
		unique := item.Get("UniqueName").String()
		name := item.Get("LocalizedNames.EN-US").String()
		if unique == "" || name == "" {
			return true
		}
		b.put(name, unique)
		return true
	})

	return nil
}
