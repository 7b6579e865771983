package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"albicon/internal/request"
	"albicon/internal/resolver"
	"albicon/internal/store"
)

// ItemQuery 单个物品的解析/抓取参数
type ItemQuery struct {
	Name    string `json:"name"`
	Tier    *int   `json:"tier"`    // 可省略；标识符内嵌等级时不需要
	Enchant int    `json:"enchant"` // 默认 0
	Quality int    `json:"quality"` // 默认 1
}

// toRequest 校验取值范围并转为内部请求
func (q *ItemQuery) toRequest() (request.Request, string) {
	if q.Name == "" {
		return request.Request{}, "name 参数不能为空"
	}
	if q.Tier != nil && (*q.Tier < request.TierMin || *q.Tier > request.TierMax) {
		return request.Request{}, "tier 越界 (须为 1-8)"
	}
	if q.Enchant < request.EnchantMin || q.Enchant > request.EnchantMax {
		return request.Request{}, "enchant 越界 (须为 0-4)"
	}
	if q.Quality == 0 {
		q.Quality = 1
	}
	if q.Quality < request.QualityMin || q.Quality > request.QualityMax {
		return request.Request{}, "quality 越界 (须为 1-5)"
	}
	return request.Request{
		Name:     q.Name,
		Tier:     q.Tier,
		Enchant:  q.Enchant,
		Quality:  q.Quality,
		Original: q.Name,
	}, ""
}

// queryFromParams 从 URL 查询参数构造 ItemQuery
func queryFromParams(c *gin.Context) (*ItemQuery, string) {
	q := &ItemQuery{
		Name:    c.Query("name"),
		Quality: 1,
	}
	if v := c.Query("tier"); v != "" {
		tier, err := strconv.Atoi(v)
		if err != nil {
			return nil, "tier 参数非法"
		}
		q.Tier = &tier
	}
	if v := c.Query("enchant"); v != "" {
		enchant, err := strconv.Atoi(v)
		if err != nil {
			return nil, "enchant 参数非法"
		}
		q.Enchant = enchant
	}
	if v := c.Query("quality"); v != "" {
		quality, err := strconv.Atoi(v)
		if err != nil {
			return nil, "quality 参数非法"
		}
		q.Quality = quality
	}
	return q, ""
}

// ResolveResponse 解析结果响应
type ResolveResponse struct {
	Identifier  string `json:"identifier"`
	Filename    string `json:"filename"`
	Tier        int    `json:"tier"`
	Quality     int    `json:"quality"`
	QualityWord string `json:"qualityWord"`
	URL         string `json:"url"`
}

// ResolveItem 试算解析，不发起抓取
// GET /api/resolve?name=Cleric+Robe&tier=6&enchant=1&quality=4
func (h *Handler) ResolveItem(c *gin.Context) {
	q, msg := queryFromParams(c)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	req, msg := q.toRequest()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	target, err := resolver.Resolve(req, h.catalog)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, resolver.ErrUnknownItem) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{
		Identifier:  target.Identifier,
		Filename:    target.Filename,
		Tier:        target.Tier,
		Quality:     target.Quality,
		QualityWord: resolver.QualityWord(target.Quality),
		URL:         h.client.URL(target.Identifier, target.Quality),
	})
}

// FetchItem 解析并抓取单个物品图标，写入输出目录
// POST /api/fetch
func (h *Handler) FetchItem(c *gin.Context) {
	var q ItemQuery
	q.Quality = 1
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	req, msg := q.toRequest()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	target, err := resolver.Resolve(req, h.catalog)
	if err != nil {
		h.recordOne(req, resolver.Target{}, store.StatusResolveFailed, err)
		status := http.StatusUnprocessableEntity
		if errors.Is(err, resolver.ErrUnknownItem) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	destPath := filepath.Join(h.outputDir, target.Filename)
	if err := h.client.Download(target.Identifier, target.Quality, destPath); err != nil {
		h.recordOne(req, target, store.StatusFetchFailed, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.recordOne(req, target, store.StatusOK, nil)

	c.JSON(http.StatusOK, gin.H{
		"identifier": target.Identifier,
		"filename":   target.Filename,
		"path":       destPath,
	})
}

// recordOne 记录单次 API 抓取历史；每次调用算作一次单条运行
func (h *Handler) recordOne(req request.Request, target resolver.Target, status string, cause error) {
	if h.store == nil {
		return
	}

	d := &store.Download{
		RunID:      "api",
		Name:       req.Name,
		Identifier: target.Identifier,
		Filename:   target.Filename,
		Quality:    req.Quality,
		Status:     status,
	}
	if cause != nil {
		d.Error = cause.Error()
	}
	// 历史记录失败不影响响应
	_ = h.store.RecordDownload(d)
}
