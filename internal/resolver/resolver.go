package resolver

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"albicon/internal/catalog"
	"albicon/internal/request"
)

// 请求级解析失败原因，调用方据此把原始行保留待重试
var (
	ErrUnknownItem  = errors.New("unknown item name")
	ErrTierRequired = errors.New("tier required")
)

var tierPrefixRx = regexp.MustCompile(`^T([1-8])_`)

// qualityWords 品质对应的文件名后缀词；品质 1 为默认，不出现在文件名中
var qualityWords = map[int]string{
	1: "Common",
	2: "Good",
	3: "Outstanding",
	4: "Excellent",
	5: "Masterpiece",
}

// Target 解析成功的结果
type Target struct {
	Identifier string // 完整资源标识符，含 Tn_ 前缀和可选 @n 附魔后缀
	Filename   string // 本地文件名
	Tier       int    // 生效的等级（内嵌或请求提供）
	Quality    int    // 品质，透传给抓取方
}

// Resolve 把一条请求解析为资源标识符和文件名
// 决策顺序: 规范化查表 → 内嵌等级检查（内嵌优先，冲突仅警告）→
// 无内嵌时要求显式等级 → 拼接附魔后缀 → 构造文件名
func Resolve(req request.Request, cat *catalog.Catalog) (Target, error) {
	base, ok := cat.Lookup(req.Name)
	if !ok {
		return Target{}, fmt.Errorf("'%s': %w", req.Name, ErrUnknownItem)
	}

	var core string
	var tier int
	if embedded, ok := embeddedTier(base); ok {
		if req.Tier != nil && *req.Tier != embedded {
			log.Printf("[警告] '%s': 请求等级 %d 被忽略，使用标识符内嵌等级 %d", req.Name, *req.Tier, embedded)
		}
		core = base
		tier = embedded
	} else {
		if req.Tier == nil {
			return Target{}, fmt.Errorf("'%s': %w", req.Name, ErrTierRequired)
		}
		tier = *req.Tier
		core = fmt.Sprintf("T%d_%s", tier, base)
	}

	identifier := core
	if req.Enchant > 0 {
		identifier = fmt.Sprintf("%s@%d", core, req.Enchant)
	}

	return Target{
		Identifier: identifier,
		Filename:   buildFilename(req.Name, tier, req.Enchant, req.Quality),
		Tier:       tier,
		Quality:    req.Quality,
	}, nil
}

// embeddedTier 提取标识符内嵌的 Tn_ 等级前缀
func embeddedTier(identifier string) (int, bool) {
	m := tierPrefixRx.FindStringSubmatch(identifier)
	if m == nil {
		return 0, false
	}
	tier, _ := strconv.Atoi(m[1])
	return tier, true
}

// buildFilename 构造本地文件名
// 例: "Guardian Helmet 6.png" / "Cleric Robe 6.1 Excellent.png"
func buildFilename(name string, tier, enchant, quality int) string {
	stem := fmt.Sprintf("%s %d", safeFileStem(name), tier)
	if enchant > 0 {
		stem += fmt.Sprintf(".%d", enchant)
	}
	if quality > 1 {
		word, ok := qualityWords[quality]
		if !ok {
			word = strconv.Itoa(quality)
		}
		stem += " " + word
	}
	return stem + ".png"
}

// safeFileStem 替换路径分隔符，防止名称被解释为目录
func safeFileStem(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	return strings.ReplaceAll(name, "\\", "-")
}

// QualityWord 品质对应的描述词，API 展示用
func QualityWord(quality int) string {
	return qualityWords[quality]
}
