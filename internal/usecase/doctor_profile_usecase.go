package usecase

import (
	"context"
	"strings"

	"smilematch-api/internal/converter"
	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/domain/repository"
	"smilematch-api/internal/service"
	"smilematch-api/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorProfileUsecase interface {
	CreateProfile(ctx context.Context, identity entity.Identity, req *dto.DoctorProfileRequest) (*dto.DoctorProfileResponse, error)
	UpdateProfile(ctx context.Context, identity entity.Identity, req *dto.DoctorProfileRequest) (*dto.DoctorProfileResponse, error)
	GetMyProfile(ctx context.Context, identity entity.Identity) (*dto.DoctorProfileResponse, error)
	GetDoctor(ctx context.Context, doctorProfileID uuid.UUID) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, query *dto.DoctorListQuery) (*dto.DoctorListResponse, *pagination.Meta, error)
}

type doctorProfileUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	userRepo            repository.UserRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	auditService        service.AuditService
	specializationCache service.SpecializationCache
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	specializationCache service.SpecializationCache,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                  db,
		log:                 log,
		userRepo:            userRepo,
		doctorProfileRepo:   doctorProfileRepo,
		auditService:        auditService,
		specializationCache: specializationCache,
	}
}

// CreateProfile creates the caller's doctor profile and upgrades the caller to the doctor role
// in the same transaction.
func (u *doctorProfileUsecase) CreateProfile(ctx context.Context, identity entity.Identity, req *dto.DoctorProfileRequest) (*dto.DoctorProfileResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if req.ConsultationFee != nil && req.ConsultationFee.IsNegative() {
		return nil, ErrNegativeFee
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError(tx.Error)
	}
	defer tx.Rollback()

	existing, err := u.doctorProfileRepo.FindByUserID(tx, identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, storeError(err)
	}
	if existing != nil {
		return nil, ErrDoctorProfileExists
	}

	profile := &entity.DoctorProfile{
		UserID:         identity.UserID,
		Specialization: strings.TrimSpace(req.Specialization),
		Bio:            req.Bio,
	}
	applyProfileNumbers(profile, req)

	if err := u.doctorProfileRepo.Create(tx, profile); err != nil {
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrDoctorProfileExists
		}
		if isForeignKeyError(err) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, storeError(err)
	}

	if identity.Role != entity.RoleDoctor {
		if err := u.userRepo.UpdateRole(tx, identity.UserID, entity.RoleDoctor); err != nil {
			u.log.Warnf("Failed to upgrade user %s to doctor: %+v", identity.UserID, err)
			return nil, storeError(err)
		}
	}

	response := converter.DoctorProfileToResponse(profile)
	if err := u.auditService.LogCreate(ctx, tx, &identity.UserID, entity.AuditActionDoctorProfileCreate,
		"doctor_profile", profile.ID.String(), response); err != nil {
		return nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	u.specializationCache.Invalidate(ctx)
	u.log.Infof("Doctor profile created: id=%s, user=%s", profile.ID, identity.UserID)

	return response, nil
}

// UpdateProfile replaces the editable fields of the caller's profile
func (u *doctorProfileUsecase) UpdateProfile(ctx context.Context, identity entity.Identity, req *dto.DoctorProfileRequest) (*dto.DoctorProfileResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if req.ConsultationFee != nil && req.ConsultationFee.IsNegative() {
		return nil, ErrNegativeFee
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError(tx.Error)
	}
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, storeError(err)
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	// Capture old value for audit
	oldValue := converter.DoctorProfileToResponse(profile)

	profile.Specialization = strings.TrimSpace(req.Specialization)
	profile.Bio = req.Bio
	applyProfileNumbers(profile, req)

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, storeError(err)
	}

	newValue := converter.DoctorProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, &identity.UserID, entity.AuditActionDoctorProfileUpdate,
		"doctor_profile", profile.ID.String(), oldValue, newValue); err != nil {
		return nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	u.specializationCache.Invalidate(ctx)
	return newValue, nil
}

func (u *doctorProfileUsecase) GetMyProfile(ctx context.Context, identity entity.Identity) (*dto.DoctorProfileResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, storeError(err)
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, doctorProfileID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByID(u.db.WithContext(ctx), doctorProfileID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", doctorProfileID, err)
		return nil, storeError(err)
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	return converter.DoctorToResponse(profile), nil
}

// ListDoctors searches the doctor directory. Results are ordered by experience,
// then creation time, then id, so paging is stable.
func (u *doctorProfileUsecase) ListDoctors(ctx context.Context, query *dto.DoctorListQuery) (*dto.DoctorListResponse, *pagination.Meta, error) {
	filter := entity.DoctorFilter{
		Search:         strings.TrimSpace(query.Search),
		Specialization: strings.TrimSpace(query.Specialization),
		MinExperience:  query.MinExperience,
		MaxFee:         query.MaxFee,
	}
	params := pagination.New(query.Page, query.Limit)

	profiles, total, err := u.doctorProfileRepo.Search(u.db.WithContext(ctx), filter, params.Offset(), params.Limit)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, nil, storeError(err)
	}

	specializations, err := u.specializationCache.Get(ctx, func(ctx context.Context) ([]string, error) {
		return u.doctorProfileRepo.DistinctSpecializations(u.db.WithContext(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to load specializations: %+v", err)
		return nil, nil, storeError(err)
	}

	meta := params.Meta(total)
	return &dto.DoctorListResponse{
		Doctors:         converter.DoctorsToResponses(profiles),
		Specializations: specializations,
	}, &meta, nil
}

func applyProfileNumbers(profile *entity.DoctorProfile, req *dto.DoctorProfileRequest) {
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = *req.ConsultationFee
	}
}
