package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// AddWorkbookFile 从 Excel 工作簿加载物品条目
// 读取第一个工作表，A 列为显示名，B 列为基础标识符
func (b *Builder) AddWorkbookFile(path string) error {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	return b.addWorkbook(file)
}

// AddWorkbook 从 io.Reader 加载 Excel 工作簿
func (b *Builder) AddWorkbook(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	return b.addWorkbook(file)
}

func (b *Builder) addWorkbook(file *excelize.File) error {
	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return errors.New("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		ident := strings.TrimSpace(row[1])
		if strings.HasPrefix(name, "#") {
			continue
		}
		// 跳过表头行
		if strings.EqualFold(name, "name") && !isIdentifier(ident) {
			continue
		}
		b.put(name, ident)
	}

	return nil
}

// isIdentifier 标识符均为大写字母/数字/下划线
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '@' {
			continue
		}
		return false
	}
	return true
}
