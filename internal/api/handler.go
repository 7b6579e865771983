package api

import (
	"github.com/gin-gonic/gin"

	"albicon/internal/catalog"
	"albicon/internal/fetch"
	"albicon/internal/store"
)

// Handler API 处理器
type Handler struct {
	catalog   *catalog.Catalog
	client    *fetch.Client
	store     *store.Store
	outputDir string
}

// NewHandler 创建 API 处理器
func NewHandler(cat *catalog.Catalog, client *fetch.Client, st *store.Store, outputDir string) *Handler {
	return &Handler{
		catalog:   cat,
		client:    client,
		store:     st,
		outputDir: outputDir,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 物品检索
	router.GET("/items", h.SearchItems)

	// 解析与抓取
	router.GET("/resolve", h.ResolveItem)
	router.POST("/fetch", h.FetchItem)

	// 下载历史
	router.GET("/history", h.ListHistory)
}
