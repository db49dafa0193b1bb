package admin

import (
	"github.com/aurora-mall/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 获取后台仪表盘统计
func (h *Handler) GetDashboard(c *gin.Context) {
	stats, err := h.DashboardService.GetStats()
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard fetch failed", err)
		return
	}
	response.Success(c, stats)
}
