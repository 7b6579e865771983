package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListHistory 查询最近的下载历史
// GET /api/history?limit=50
func (h *Handler) ListHistory(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"total": 0, "downloads": []any{}})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit 参数非法"})
			return
		}
		limit = n
	}

	downloads, err := h.store.ListDownloads(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询下载历史失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     len(downloads),
		"downloads": downloads,
	})
}
