package usecase

import (
	"context"

	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/domain/repository"
	"smilematch-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ConsultationUsecase interface {
	// RequestConsultation e-mails a doctor a summary of the caller's report.
	// Replies go to the caller's e-mail address.
	RequestConsultation(ctx context.Context, identity entity.Identity, req *dto.ConsultationEmailRequest) (*dto.ConsultationEmailResponse, error)
}

type consultationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	reportRepo   repository.ReportRepository
	mailer       service.Mailer
	auditService service.AuditService
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reportRepo repository.ReportRepository,
	mailer service.Mailer,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		db:           db,
		log:          log,
		reportRepo:   reportRepo,
		mailer:       mailer,
		auditService: auditService,
	}
}

func (u *consultationUsecase) RequestConsultation(ctx context.Context, identity entity.Identity, req *dto.ConsultationEmailRequest) (*dto.ConsultationEmailResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	report, err := u.resolveReport(ctx, identity, req.ReportID)
	if err != nil {
		return nil, err
	}

	body, err := service.RenderConsultationEmail(service.ConsultationEmailData{
		PatientName:  req.PatientName,
		PatientEmail: identity.Email,
		Message:      req.Message,
		Report:       report,
	})
	if err != nil {
		u.log.Errorf("Failed to render consultation e-mail: %+v", err)
		return nil, err
	}

	messageID, err := u.mailer.Send(ctx, service.Mail{
		To:       req.DoctorEmail,
		ReplyTo:  identity.Email,
		Subject:  service.ConsultationSubject(req.PatientName),
		HTMLBody: body,
	})
	if err != nil {
		return nil, err
	}

	u.auditService.Record(ctx, &identity.UserID, entity.AuditActionConsultationEmail, entity.JSON{
		"doctor_email": req.DoctorEmail,
		"report_id":    report.ID.String(),
		"message_id":   messageID,
	})

	return &dto.ConsultationEmailResponse{MessageID: messageID}, nil
}

// resolveReport returns the explicitly requested report or the caller's latest one
func (u *consultationUsecase) resolveReport(ctx context.Context, identity entity.Identity, rawID string) (*entity.Report, error) {
	if rawID == "" {
		report, err := u.reportRepo.FindLatestByUserID(u.db.WithContext(ctx), identity.UserID)
		if err != nil {
			u.log.Warnf("Failed to find latest report for user %s: %+v", identity.UserID, err)
			return nil, storeError(err)
		}
		if report == nil {
			return nil, ErrNoReportForEmail
		}
		return report, nil
	}

	reportID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrReportNotFound
	}

	report, err := u.reportRepo.FindByID(u.db.WithContext(ctx), reportID)
	if err != nil {
		u.log.Warnf("Failed to find report %s: %+v", reportID, err)
		return nil, storeError(err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.UserID != identity.UserID {
		return nil, ErrReportForbidden
	}
	return report, nil
}
