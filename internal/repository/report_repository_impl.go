package repository

import (
	"errors"

	"smilematch-api/internal/domain/entity"
	domainRepo "smilematch-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportRepository struct{}

func NewReportRepository() domainRepo.ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(db *gorm.DB, report *entity.Report) error {
	return db.Omit("User").Create(report).Error
}

func (r *reportRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Report, error) {
	var report entity.Report
	err := db.Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindLatestByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Report, error) {
	var report entity.Report
	err := db.Where("user_id = ?", userID).Order("created_at DESC").First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}
