package controller

import (
	"sensory_sheets_backend/internal/service"
	"sensory_sheets_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	Checkout *service.CheckoutService
}

func NewCheckoutController(checkout *service.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// CreateSession godoc
// @Summary 创建订阅支付会话
// @Description 返回支付页跳转地址，已是高级用户时拒绝
// @Tags 订阅
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.CheckoutResult}
// @Failure 400 {object} util.Response "创建失败"
// @Router /api/checkout/session [post]
func (c *CheckoutController) CreateSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.Checkout.CreateSubscriptionSession(claims.UserID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, result)
}

// CreateOneTimeSession godoc
// @Summary 创建单次购买支付会话
// @Description 单次打印包购买，不改变订阅档位
// @Tags 订阅
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.CheckoutResult}
// @Failure 400 {object} util.Response "创建失败"
// @Router /api/checkout/one-time [post]
func (c *CheckoutController) CreateOneTimeSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.Checkout.CreateOneTimeSession(claims.UserID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, result)
}

// ConfirmRequest 支付回跳确认
type ConfirmRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// Confirm godoc
// @Summary 确认支付结果
// @Description 校验支付状态并升级订阅档位
// @Tags 订阅
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ConfirmRequest true "支付会话"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "支付未完成"
// @Router /api/checkout/confirm [post]
func (c *CheckoutController) Confirm(ctx *gin.Context) {
	var req ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Checkout.ConfirmSubscription(req.SessionID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, user)
}
