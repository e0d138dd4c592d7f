package repository

import (
	"sensory_sheets_backend/internal/model"

	"gorm.io/gorm"
)

type ExportRepository struct {
	DB *gorm.DB
}

func NewExportRepository(db *gorm.DB) *ExportRepository {
	return &ExportRepository{DB: db}
}

func (r *ExportRepository) Create(export *model.WorksheetExport) error {
	return r.DB.Create(export).Error
}

func (r *ExportRepository) FindByUser(userID uint, limit int) ([]model.WorksheetExport, error) {
	var exports []model.WorksheetExport
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&exports).Error
	return exports, err
}
