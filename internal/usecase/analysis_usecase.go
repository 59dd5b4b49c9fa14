package usecase

import (
	"context"
	"errors"
	"fmt"

	"smilematch-api/internal/converter"
	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/domain/repository"
	"smilematch-api/internal/service"
	"smilematch-api/pkg/analysis"
	"smilematch-api/pkg/reportpdf"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AnalysisUsecase interface {
	// AnalyzeSmile works for anonymous callers too. A report is stored only for a known identity.
	AnalyzeSmile(ctx context.Context, identity entity.Identity, req *dto.AnalyzeSmileRequest) (*dto.AnalysisResponse, error)
	GetLatestReport(ctx context.Context, identity entity.Identity) (*dto.ReportResponse, error)
	GetReport(ctx context.Context, identity entity.Identity, reportID uuid.UUID) (*dto.ReportResponse, error)
	RenderReportPDF(ctx context.Context, identity entity.Identity, reportID uuid.UUID) (*dto.ReportFile, error)
}

type analysisUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	analyzer        analysis.Analyzer
	reportRepo      repository.ReportRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
}

func NewAnalysisUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	analyzer analysis.Analyzer,
	reportRepo repository.ReportRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) AnalysisUsecase {
	return &analysisUsecase{
		db:              db,
		log:             log,
		analyzer:        analyzer,
		reportRepo:      reportRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		auditService:    auditService,
	}
}

func (u *analysisUsecase) AnalyzeSmile(ctx context.Context, identity entity.Identity, req *dto.AnalyzeSmileRequest) (*dto.AnalysisResponse, error) {
	result, err := u.analyzer.Analyze(ctx, req.Image)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidImage) {
			return nil, ErrInvalidImage
		}
		u.log.Errorf("Failed to analyze smile: %+v", err)
		return nil, err
	}

	response := converter.AnalysisToResponse(result)
	if identity.IsZero() {
		return response, nil
	}

	report := converter.AnalysisToReport(result, req.Image)
	report.UserID = identity.UserID
	if err := u.reportRepo.Create(u.db.WithContext(ctx), report); err != nil {
		u.log.Warnf("Failed to save report for user %s: %+v", identity.UserID, err)
		return nil, storeError(err)
	}

	u.auditService.Record(ctx, &identity.UserID, entity.AuditActionReportCreate, entity.JSON{
		"entity":    "report",
		"entity_id": report.ID.String(),
	})

	response.ReportID = &report.ID
	return response, nil
}

func (u *analysisUsecase) GetLatestReport(ctx context.Context, identity entity.Identity) (*dto.ReportResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	report, err := u.reportRepo.FindLatestByUserID(u.db.WithContext(ctx), identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find latest report for user %s: %+v", identity.UserID, err)
		return nil, storeError(err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	return converter.ReportToResponse(report), nil
}

func (u *analysisUsecase) GetReport(ctx context.Context, identity entity.Identity, reportID uuid.UUID) (*dto.ReportResponse, error) {
	report, err := u.findAuthorizedReport(ctx, identity, reportID)
	if err != nil {
		return nil, err
	}
	return converter.ReportToResponse(report), nil
}

func (u *analysisUsecase) RenderReportPDF(ctx context.Context, identity entity.Identity, reportID uuid.UUID) (*dto.ReportFile, error) {
	report, err := u.findAuthorizedReport(ctx, identity, reportID)
	if err != nil {
		return nil, err
	}

	var patientName string
	owner, err := u.userRepo.FindByID(u.db.WithContext(ctx), report.UserID)
	if err != nil {
		u.log.Warnf("Failed to find report owner %s: %+v", report.UserID, err)
		return nil, storeError(err)
	}
	if owner != nil {
		patientName = owner.FullName
	}

	content, err := reportpdf.Bytes(converter.ReportToDocument(report, patientName))
	if err != nil {
		u.log.Errorf("Failed to render report %s: %+v", report.ID, err)
		return nil, err
	}

	return &dto.ReportFile{
		Filename:    fmt.Sprintf("veneer-report-%s.pdf", report.ID),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// findAuthorizedReport returns the report when the caller owns it, is the doctor
// of an appointment referencing it, or is an admin
func (u *analysisUsecase) findAuthorizedReport(ctx context.Context, identity entity.Identity, reportID uuid.UUID) (*entity.Report, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	report, err := u.reportRepo.FindByID(u.db.WithContext(ctx), reportID)
	if err != nil {
		u.log.Warnf("Failed to find report %s: %+v", reportID, err)
		return nil, storeError(err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	if report.UserID == identity.UserID || identity.HasRole(entity.RoleAdmin) {
		return report, nil
	}

	if identity.HasRole(entity.RoleDoctor) {
		linked, err := u.appointmentRepo.ExistsForDoctorAndReport(u.db.WithContext(ctx), identity.UserID, report.ID)
		if err != nil {
			u.log.Warnf("Failed to check report access for doctor %s: %+v", identity.UserID, err)
			return nil, storeError(err)
		}
		if linked {
			return report, nil
		}
	}

	return nil, ErrReportForbidden
}
