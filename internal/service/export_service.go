package service

import (
	"bytes"
	"context"
	"fmt"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/render"
	"sensory_sheets_backend/internal/util"
	"sensory_sheets_backend/pkg/logger"
	"sensory_sheets_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// ExportStore 导出记录存储的最小接口，仓储层实现
type ExportStore interface {
	Create(export *model.WorksheetExport) error
	FindByUser(userID uint, limit int) ([]model.WorksheetExport, error)
}

// ExportService 工作表落成 PDF 并入库存储
type ExportService struct {
	Storage *StorageService
	Repo    ExportStore
	Now     func() time.Time
}

func NewExportService(storage *StorageService, repo ExportStore) *ExportService {
	return &ExportService{Storage: storage, Repo: repo, Now: time.Now}
}

// ExportWorksheet 渲染、上传、记录三步，文件名带情绪或拼读规则前缀
func (s *ExportService) ExportWorksheet(ctx context.Context, userID uint, data *model.WorksheetData) (*model.WorksheetExport, error) {
	plan := render.BuildPlan(data)
	pdfBytes, pages, err := render.RenderPDF(plan)
	if err != nil {
		return nil, err
	}

	prefix := string(data.Mood)
	if prefix == "" {
		prefix = string(data.Pattern)
	}
	filename := fmt.Sprintf("%s_%s_%s.pdf", prefix, data.ActivityID, s.Now().Format(util.TimestampFormat))

	return s.finish(ctx, userID, filename, pdfBytes, pages)
}

// ExportStory 三版本故事导出为多页 PDF
func (s *ExportService) ExportStory(ctx context.Context, userID uint, story *model.MultiVersionStory) (*model.WorksheetExport, error) {
	plan := render.BuildStoryPlan(story)
	pdfBytes, pages, err := render.RenderPDF(plan)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("story_%s_%s.pdf", story.TemplateID, s.Now().Format(util.TimestampFormat))
	return s.finish(ctx, userID, filename, pdfBytes, pages)
}

func (s *ExportService) finish(ctx context.Context, userID uint, filename string, pdfBytes []byte, pages int) (*model.WorksheetExport, error) {
	url, err := s.Storage.Provider.Upload(ctx, filename, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), util.MimePDF)
	if err != nil {
		return nil, err
	}

	export := &model.WorksheetExport{
		UserID:   userID,
		Filename: filename,
		URL:      url,
		Pages:    pages,
	}
	if err := s.Repo.Create(export); err != nil {
		logger.Log.Warn("Failed to record worksheet export",
			zap.Uint("userID", userID),
			zap.String("filename", filename),
			zap.Error(err))
	}

	monitoring.ExportCounter.Inc()
	return export, nil
}

// History 用户最近的导出记录
func (s *ExportService) History(userID uint, limit int) ([]model.WorksheetExport, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.Repo.FindByUser(userID, limit)
}
