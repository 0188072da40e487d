package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"shipgen/internal/store"
)

// Handler API 处理器
type Handler struct {
	store       *store.Store
	downloads   *downloadStore
	downloadTTL time.Duration
}

// NewHandler 创建 API 处理器
func NewHandler(s *store.Store, downloadTTL time.Duration) *Handler {
	return &Handler{
		store:       s,
		downloads:   newDownloadStore(),
		downloadTTL: downloadTTL,
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.Generate)
	rg.GET("/download/:token", h.Download)
	rg.GET("/history", h.History)
}
