package controller

import (
	"errors"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/service"
	"sensory_sheets_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

// PracticeController 自适应练习会话与分块查询
type PracticeController struct {
	Bank *service.WordBankService
}

func NewPracticeController(bank *service.WordBankService) *PracticeController {
	return &PracticeController{Bank: bank}
}

// StartSessionRequest 开始练习会话
type StartSessionRequest struct {
	Age int `json:"age" binding:"required,min=3,max=18"`
}

// StartSession godoc
// @Summary 开始自适应练习会话
// @Description 按年龄确定起始难度档
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StartSessionRequest true "学习者年龄"
// @Success 201 {object} util.Response{data=model.AdaptiveSession}
// @Router /api/practice/sessions [post]
func (c *PracticeController) StartSession(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session := c.Bank.StartSession(req.Age)
	util.Created(ctx, session)
}

// ObservationRequest 一次练习观察
type ObservationRequest struct {
	TimeTakenMs int64 `json:"timeTakenMs" binding:"min=0"`
	HintsUsed   int   `json:"hintsUsed" binding:"min=0"`
	Resets      int   `json:"resets" binding:"min=0"`
	Completed   bool  `json:"completed"`
}

// RecordObservation godoc
// @Summary 上报练习表现
// @Description 记录耗时、提示次数与重做次数，必要时调整难度档
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话 ID"
// @Param   body body ObservationRequest true "表现数据"
// @Success 200 {object} util.Response{data=model.AdaptiveSession}
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/practice/sessions/{id}/observations [post]
func (c *PracticeController) RecordObservation(ctx *gin.Context) {
	var req ObservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	obs := model.PerformanceObservation{
		TimeTaken: time.Duration(req.TimeTakenMs) * time.Millisecond,
		HintsUsed: req.HintsUsed,
		Resets:    req.Resets,
		Completed: req.Completed,
	}

	session, err := c.Bank.RecordPerformance(ctx.Param("id"), obs)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// GetSession godoc
// @Summary 查询练习会话
// @Tags 练习
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=model.AdaptiveSession}
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/practice/sessions/{id} [get]
func (c *PracticeController) GetSession(ctx *gin.Context) {
	session, err := c.Bank.Session(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, session)
}

// EndSession godoc
// @Summary 结束练习会话
// @Tags 练习
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/practice/sessions/{id} [delete]
func (c *PracticeController) EndSession(ctx *gin.Context) {
	c.Bank.EndSession(ctx.Param("id"))
	util.Success(ctx, gin.H{"ended": true})
}

// Chunks godoc
// @Summary 查询单词拆块
// @Description 词库内返回人工校对的拆块，词库外走确定性兜底分块
// @Tags 练习
// @Produce  json
// @Security BearerAuth
// @Param   word path string true "要拆块的词"
// @Success 200 {object} util.Response{data=object}
// @Router /api/words/{word}/chunks [get]
func (c *PracticeController) Chunks(ctx *gin.Context) {
	word := ctx.Param("word")
	if word == "" {
		util.BadRequest(ctx, "word is required")
		return
	}
	util.Success(ctx, gin.H{"word": word, "chunks": c.Bank.ChunksFor(word)})
}
