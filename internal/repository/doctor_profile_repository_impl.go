package repository

import (
	"errors"
	"strings"

	"smilematch-api/internal/domain/entity"
	domainRepo "smilematch-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User").Create(profile).Error
}

func (r *doctorProfileRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Model(profile).
		Select("specialization", "years_experience", "consultation_fee", "bio", "updated_at").
		Updates(profile).Error
}

func (r *doctorProfileRepository) Search(db *gorm.DB, filter entity.DoctorFilter, offset, limit int) ([]entity.DoctorProfile, int64, error) {
	scope := doctorFilterScope(filter)

	var total int64
	if err := db.Model(&entity.DoctorProfile{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entity.DoctorProfile
	err := db.Scopes(scope).
		Select("doctor_profiles.*").
		Preload("User").
		Order("doctor_profiles.years_experience DESC, doctor_profiles.created_at ASC, doctor_profiles.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *doctorProfileRepository) DistinctSpecializations(db *gorm.DB) ([]string, error) {
	var specializations []string
	err := db.Model(&entity.DoctorProfile{}).
		Distinct("specialization").
		Order("specialization ASC").
		Pluck("specialization", &specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}

// doctorFilterScope is shared by the count and the page query so both see the same rows
func doctorFilterScope(filter entity.DoctorFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("JOIN users ON users.id = doctor_profiles.user_id")

		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := containsPattern(search)
			db = db.Where(
				"(doctor_profiles.specialization ILIKE ? OR doctor_profiles.bio ILIKE ? OR users.full_name ILIKE ? OR users.email ILIKE ?)",
				pattern, pattern, pattern, pattern,
			)
		}
		if specialization := strings.TrimSpace(filter.Specialization); specialization != "" {
			db = db.Where("doctor_profiles.specialization ILIKE ?", containsPattern(specialization))
		}
		if filter.MinExperience != nil {
			db = db.Where("doctor_profiles.years_experience >= ?", *filter.MinExperience)
		}
		if filter.MaxFee != nil {
			db = db.Where("doctor_profiles.consultation_fee <= ?", *filter.MaxFee)
		}
		return db
	}
}
