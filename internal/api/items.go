package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SearchItems 按名称子串检索物品
// GET /api/items?q=bow&limit=20
func (h *Handler) SearchItems(c *gin.Context) {
	q := c.Query("q")
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit 参数非法"})
			return
		}
		limit = n
	}

	items := h.catalog.Search(q, limit)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}
