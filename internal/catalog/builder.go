package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "embed"
)

//go:embed items.csv
var itemsCSV string

// Builder 映射构建器
// 先从内嵌数据集构建，可再叠加额外数据源；同名条目后加载的覆盖先加载的
type Builder struct {
	entries map[string]Entry
}

// NewBuilder 创建空的映射构建器
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]Entry)}
}

// AddEmbedded 加载内嵌数据集
func (b *Builder) AddEmbedded() {
	b.AddCSV(itemsCSV)
}

// AddCSV 解析 CSV 文本 (每行: 显示名, 标识符)
// 空行和 # 开头的行跳过；字段不足两个的行静默丢弃
func (b *Builder) AddCSV(text string) {
	cleaned := make([]string, 0)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cleaned = append(cleaned, line)
	}
	if len(cleaned) == 0 {
		return
	}

	rdr := csv.NewReader(strings.NewReader(strings.Join(cleaned, "\n")))
	rdr.FieldsPerRecord = -1
	rdr.TrimLeadingSpace = true
	for {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 引号不闭合等格式错误只丢弃当前记录
			continue
		}
		if len(row) < 2 {
			continue
		}
		b.put(strings.TrimSpace(row[0]), strings.TrimSpace(row[1]))
	}
}

// AddFile 按扩展名加载额外数据源文件
// 支持 .csv / .xlsx / .json
func (b *Builder) AddFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read catalog file: %w", err)
		}
		b.AddCSV(string(data))
		return nil
	case ".xlsx":
		return b.AddWorkbookFile(path)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read catalog file: %w", err)
		}
		return b.AddDumpJSON(data)
	default:
		return fmt.Errorf("unsupported catalog source: %s", path)
	}
}

// Build 冻结并返回只读映射
func (b *Builder) Build() *Catalog {
	entries := make(map[string]Entry, len(b.entries))
	for k, v := range b.entries {
		entries[k] = v
	}
	return &Catalog{entries: entries}
}

func (b *Builder) put(name, identifier string) {
	if name == "" || identifier == "" {
		return
	}
	b.entries[Normalize(name)] = Entry{Name: name, Identifier: identifier}
}

// LoadEmbedded 仅从内嵌数据集构建映射
func LoadEmbedded() *Catalog {
	b := NewBuilder()
	b.AddEmbedded()
	return b.Build()
}
