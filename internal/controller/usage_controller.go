package controller

import (
	"sensory_sheets_backend/internal/service"
	"sensory_sheets_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UsageController struct {
	Usage *service.UsageService
}

func NewUsageController(usage *service.UsageService) *UsageController {
	return &UsageController{Usage: usage}
}

// QuotaStatus godoc
// @Summary 查询本月生成配额
// @Description 只读查询，不消耗额度
// @Tags 配额
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.QuotaStatus}
// @Router /api/usage [get]
func (c *UsageController) QuotaStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	status, err := c.Usage.Status(claims.UserID, claims.Tier)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, status)
}
