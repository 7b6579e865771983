package server

import (
	"github.com/gin-gonic/gin"

	"albicon/internal/api"
	"albicon/internal/catalog"
	"albicon/internal/config"
	"albicon/internal/fetch"
	"albicon/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, cat *catalog.Catalog, client *fetch.Client, st *store.Store) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := api.NewHandler(cat, client, st, cfg.Data.OutputDir)

	s := &Server{
		router: gin.Default(),
		store:  st,
	}

	s.setupRoutes(handler)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(handler *api.Handler) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		handler.RegisterRoutes(apiGroup)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 获取路由引擎（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
