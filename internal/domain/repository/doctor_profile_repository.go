package repository

import (
	"smilematch-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
	// Search returns one page of profiles matching filter and the filtered total
	Search(db *gorm.DB, filter entity.DoctorFilter, offset, limit int) ([]entity.DoctorProfile, int64, error)
	DistinctSpecializations(db *gorm.DB) ([]string, error)
}
