package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"albicon/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	CatalogSize int    `json:"catalogSize"` // 物品条目数
	OutputDir   string `json:"outputDir"`   // 图标输出目录
	TotalRuns   int    `json:"totalRuns"`   // 历史运行次数
	Succeeded   int    `json:"succeeded"`   // 成功下载数
	Failed      int    `json:"failed"`      // 失败记录数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		CatalogSize: h.catalog.Len(),
		OutputDir:   h.outputDir,
	}

	if h.store != nil {
		if runs, err := h.store.CountRuns(); err == nil {
			resp.TotalRuns = runs
		}
		if ok, err := h.store.CountDownloads(store.StatusOK); err == nil {
			resp.Succeeded = ok
		}
		if r, err := h.store.CountDownloads(store.StatusResolveFailed); err == nil {
			resp.Failed += r
		}
		if f, err := h.store.CountDownloads(store.StatusFetchFailed); err == nil {
			resp.Failed += f
		}
	}

	c.JSON(http.StatusOK, resp)
}
