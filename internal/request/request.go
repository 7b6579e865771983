package request

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// 字段取值范围
const (
	TierMin    = 1
	TierMax    = 8
	EnchantMin = 0
	EnchantMax = 4
	QualityMin = 1
	QualityMax = 5
)

// Request 一条下载请求
type Request struct {
	Name     string // 物品显示名
	Tier     *int   // 等级 1-8；nil 表示未指定（标识符已内嵌等级时允许省略）
	Enchant  int    // 附魔 0-4，默认 0
	Quality  int    // 品质 1-5，默认 1
	Original string // 原始行文本，失败时原样写回
}

// ParseFile 读取请求清单文件
// 每行格式: 名称[, 等级[, 附魔[, 品质]]]；空行和 # 开头的行为注释
// 字段非法（非整数或越界）的行丢弃并打印诊断，不保留到重写文件
func ParseFile(path string) ([]Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open request file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]Request, error) {
	rdr := csv.NewReader(r)
	rdr.FieldsPerRecord = -1
	rdr.TrimLeadingSpace = true

	reqs := make([]Request, 0)
	for {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[警告] 请求行解析失败，已跳过: %v", err)
			continue
		}
		if req, ok := parseRow(row); ok {
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

// parseRow 解析单条记录；注释行、空行和非法行返回 ok=false
func parseRow(row []string) (Request, bool) {
	cols := make([]string, len(row))
	for i, c := range row {
		cols[i] = strings.TrimSpace(c)
	}
	if len(cols) == 0 || cols[0] == "" {
		return Request{}, false
	}
	if strings.HasPrefix(cols[0], "#") {
		return Request{}, false
	}

	req := Request{
		Name:     cols[0],
		Enchant:  0,
		Quality:  1,
		Original: strings.Join(cols, ", "),
	}

	if len(cols) >= 2 && cols[1] != "" {
		tier, err := strconv.Atoi(cols[1])
		if err != nil {
			log.Printf("[警告] '%s' 的等级字段非法: %q，该行已丢弃", req.Name, cols[1])
			return Request{}, false
		}
		if tier < TierMin || tier > TierMax {
			log.Printf("[警告] '%s' 的等级 %d 越界 (须为 %d-%d)，该行已丢弃", req.Name, tier, TierMin, TierMax)
			return Request{}, false
		}
		req.Tier = &tier
	}

	if len(cols) >= 3 && cols[2] != "" {
		enchant, err := strconv.Atoi(cols[2])
		if err != nil {
			log.Printf("[警告] '%s' 的附魔字段非法: %q，该行已丢弃", req.Name, cols[2])
			return Request{}, false
		}
		if enchant < EnchantMin || enchant > EnchantMax {
			log.Printf("[警告] '%s' 的附魔 %d 越界 (须为 %d-%d)，该行已丢弃", req.Name, enchant, EnchantMin, EnchantMax)
			return Request{}, false
		}
		req.Enchant = enchant
	}

	if len(cols) >= 4 && cols[3] != "" {
		quality, err := strconv.Atoi(cols[3])
		if err != nil {
			log.Printf("[警告] '%s' 的品质字段非法: %q，该行已丢弃", req.Name, cols[3])
			return Request{}, false
		}
		if quality < QualityMin || quality > QualityMax {
			log.Printf("[警告] '%s' 的品质 %d 越界 (须为 %d-%d)，该行已丢弃", req.Name, quality, QualityMin, QualityMax)
			return Request{}, false
		}
		req.Quality = quality
	}

	return req, true
}

// RewriteFile 用失败行覆盖请求清单文件，顺序与输入一致
// 全部成功时文件被清空
func RewriteFile(path string, failedLines []string) error {
	var b strings.Builder
	for _, line := range failedLines {
		b.WriteString(strings.TrimRight(line, " \t\r\n"))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to rewrite request file: %w", err)
	}
	return nil
}
