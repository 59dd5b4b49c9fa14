package usecase

import (
	"context"

	"smilematch-api/internal/converter"
	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/domain/repository"
	"smilematch-api/pkg/apperror"
	"smilematch-api/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = apperror.New(apperror.KindNotFound, "Audit log not found")
	ErrAdminOnly        = apperror.New(apperror.KindForbidden, "Only administrators can access audit logs")
)

type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, identity entity.Identity, params pagination.Params) (*dto.AuditLogListResponse, *pagination.Meta, error)
	GetAuditLog(ctx context.Context, identity entity.Identity, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, identity entity.Identity, params pagination.Params) (*dto.AuditLogListResponse, *pagination.Meta, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, nil, err
	}

	params = pagination.New(params.Page, params.Limit)
	logs, total, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx), params.Offset(), params.Limit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, nil, storeError(err)
	}

	meta := params.Meta(total)
	return &dto.AuditLogListResponse{Logs: converter.AuditLogsToResponses(logs)}, &meta, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, identity entity.Identity, id int64) (*dto.AuditLogResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, storeError(err)
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}

func requireAdmin(identity entity.Identity) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	if identity.Role != entity.RoleAdmin {
		return ErrAdminOnly
	}
	return nil
}
