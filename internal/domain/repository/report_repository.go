package repository

import (
	"smilematch-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(db *gorm.DB, report *entity.Report) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Report, error)
	FindLatestByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Report, error)
}
