package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// History 查询最近的生成记录
// GET /api/history?limit=20
func (h *Handler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := h.store.ListGenerateLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
