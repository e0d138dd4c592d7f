package controller

import (
	"sensory_sheets_backend/internal/service"
	"sensory_sheets_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics *service.AnalyticsService
}

func NewAnalyticsController(analytics *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

// Summary godoc
// @Summary 最近三十天使用汇总
// @Description 按情绪与生成类型分维度统计，附最近二十条记录
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AnalyticsSummary}
// @Router /api/analytics/summary [get]
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summary, err := c.Analytics.Summary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
