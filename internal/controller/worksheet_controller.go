package controller

import (
	"errors"
	"net/http"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/render"
	"sensory_sheets_backend/internal/service"
	"sensory_sheets_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorksheetController struct {
	Worksheets *service.WorksheetService
	Analytics  *service.AnalyticsService
	Exports    *service.ExportService
}

func NewWorksheetController(worksheets *service.WorksheetService, analytics *service.AnalyticsService, exports *service.ExportService) *WorksheetController {
	return &WorksheetController{
		Worksheets: worksheets,
		Analytics:  analytics,
		Exports:    exports,
	}
}

// MoodWorksheetRequest 情绪状态工作表请求
type MoodWorksheetRequest struct {
	Mood       model.Mood `json:"mood" binding:"required"`
	ActivityID string     `json:"activityId" binding:"required"`
}

// GenerateMoodWorksheet godoc
// @Summary 按情绪状态生成工作表
// @Description 根据学习者当前状态选择约束与词汇，消耗一次生成配额
// @Tags 工作表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body MoodWorksheetRequest true "情绪与活动"
// @Success 200 {object} util.Response{data=object} "生成成功"
// @Failure 400 {object} util.Response "未知情绪或参数错误"
// @Failure 402 {object} util.Response "本月配额已用完"
// @Router /api/worksheets/mood [post]
func (c *WorksheetController) GenerateMoodWorksheet(ctx *gin.Context) {
	var req MoodWorksheetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	data, quota, err := c.Worksheets.GuardedCompose(claims.UserID, claims.Tier, func() (*model.WorksheetData, error) {
		return c.Worksheets.ComposeMoodWorksheet(req.Mood, req.ActivityID)
	})
	if err != nil {
		if errors.Is(err, util.ErrUnknownMood) {
			util.BadRequest(ctx, "unknown mood")
			return
		}
		if errors.Is(err, util.ErrUnknownActivity) {
			util.BadRequest(ctx, "unknown activity")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if data == nil {
		util.QuotaExceeded(ctx, quota)
		return
	}

	c.Analytics.RecordGeneration(&model.GenerationEvent{
		UserID:     claims.UserID,
		Kind:       "mood",
		Mood:       string(req.Mood),
		ActivityID: req.ActivityID,
	})

	util.Success(ctx, gin.H{"worksheet": data, "quota": quota})
}

// PatternWorksheetRequest 拼读规则工作表请求
type PatternWorksheetRequest struct {
	Pattern    model.PhonicsPattern `json:"pattern" binding:"required"`
	Tier       model.Tier           `json:"tier"`
	ActivityID string               `json:"activityId" binding:"required"`
}

// GeneratePatternWorksheet godoc
// @Summary 按拼读规则生成工作表
// @Tags 工作表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PatternWorksheetRequest true "规则与活动"
// @Success 200 {object} util.Response{data=object} "生成成功"
// @Failure 400 {object} util.Response "没有匹配的词"
// @Failure 402 {object} util.Response "本月配额已用完"
// @Router /api/worksheets/pattern [post]
func (c *WorksheetController) GeneratePatternWorksheet(ctx *gin.Context) {
	var req PatternWorksheetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Tier == "" {
		req.Tier = model.TierRegular
	}

	claims := util.GetUserFromContext(ctx)
	data, quota, err := c.Worksheets.GuardedCompose(claims.UserID, claims.Tier, func() (*model.WorksheetData, error) {
		return c.Worksheets.ComposePatternWorksheet(req.Pattern, req.Tier, req.ActivityID)
	})
	if err != nil {
		if errors.Is(err, util.ErrNoMatchingWords) {
			util.BadRequest(ctx, "no words match this pattern")
			return
		}
		if errors.Is(err, util.ErrUnknownActivity) {
			util.BadRequest(ctx, "unknown activity")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if data == nil {
		util.QuotaExceeded(ctx, quota)
		return
	}

	c.Analytics.RecordGeneration(&model.GenerationEvent{
		UserID:     claims.UserID,
		Kind:       "pattern",
		Pattern:    string(req.Pattern),
		ActivityID: req.ActivityID,
	})

	util.Success(ctx, gin.H{"worksheet": data, "quota": quota})
}

// StoryRequest 多版本故事请求
type StoryRequest struct {
	Interests  []model.Theme `json:"interests"`
	BrainState model.Mood    `json:"brainState"`
}

// GenerateStory godoc
// @Summary 生成三版本故事
// @Description 同一模板依次产出 simple/full/challenge 三个版本，角色实体全程一致
// @Tags 工作表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StoryRequest true "兴趣与状态"
// @Success 200 {object} util.Response{data=object} "生成成功"
// @Failure 402 {object} util.Response "本月配额已用完"
// @Router /api/worksheets/story [post]
func (c *WorksheetController) GenerateStory(ctx *gin.Context) {
	var req StoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.BrainState != "" && !model.ValidMood(req.BrainState) {
		util.BadRequest(ctx, "unknown brain state")
		return
	}

	claims := util.GetUserFromContext(ctx)

	status, allowed, err := c.Worksheets.Gate.CheckAndRecord(claims.UserID, claims.Tier)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !allowed {
		util.QuotaExceeded(ctx, status)
		return
	}

	story, err := c.Worksheets.ComposeStoryWorksheet(req.Interests, req.BrainState)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	c.Analytics.RecordGeneration(&model.GenerationEvent{
		UserID: claims.UserID,
		Kind:   "story",
		Mood:   string(req.BrainState),
	})

	util.Success(ctx, gin.H{"story": story, "quota": status})
}

// PreviewWorksheet godoc
// @Summary 工作表 SVG 预览
// @Description 接收已生成的工作表数据，返回可直接内嵌的 SVG
// @Tags 工作表
// @Accept  json
// @Produce  image/svg+xml
// @Security BearerAuth
// @Param   body body model.WorksheetData true "工作表数据"
// @Success 200 {string} string "SVG 文档"
// @Router /api/worksheets/preview [post]
func (c *WorksheetController) PreviewWorksheet(ctx *gin.Context) {
	var data model.WorksheetData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan := render.BuildPlan(&data)
	svg := render.RenderSVGPreview(plan)
	ctx.Data(http.StatusOK, util.MimeSVG, svg)
}

// ExportWorksheet godoc
// @Summary 导出工作表 PDF
// @Description 渲染打印版 PDF 并上传到配置的存储端
// @Tags 工作表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.WorksheetData true "工作表数据"
// @Success 200 {object} util.Response{data=model.WorksheetExport}
// @Router /api/worksheets/export [post]
func (c *WorksheetController) ExportWorksheet(ctx *gin.Context) {
	var data model.WorksheetData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	export, err := c.Exports.ExportWorksheet(ctx.Request.Context(), claims.UserID, &data)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, export)
}

// ExportStory godoc
// @Summary 导出三版本故事 PDF
// @Tags 工作表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.MultiVersionStory true "故事数据"
// @Success 200 {object} util.Response{data=model.WorksheetExport}
// @Router /api/worksheets/story/export [post]
func (c *WorksheetController) ExportStory(ctx *gin.Context) {
	var story model.MultiVersionStory
	if err := ctx.ShouldBindJSON(&story); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	export, err := c.Exports.ExportStory(ctx.Request.Context(), claims.UserID, &story)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, export)
}

// ExportHistory godoc
// @Summary 导出历史
// @Tags 工作表
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "返回条数，默认 20"
// @Success 200 {object} util.Response{data=[]model.WorksheetExport}
// @Router /api/exports [get]
func (c *WorksheetController) ExportHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	limit := util.ParseInt64Or(ctx.Query("limit"), 20)
	exports, err := c.Exports.History(claims.UserID, int(limit))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exports)
}
