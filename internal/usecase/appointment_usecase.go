package usecase

import (
	"context"
	"strings"
	"time"

	"smilematch-api/internal/converter"
	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/domain/repository"
	"smilematch-api/internal/service"
	"smilematch-api/pkg/meeting"
	"smilematch-api/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	NameFilterAfterPage = "after_page"
	NameFilterInQuery   = "in_query"
)

// MeetingLinkGenerator produces video-consultation URLs
type MeetingLinkGenerator interface {
	GenerateURL() (string, error)
}

type AppointmentUsecase interface {
	CheckOverlap(ctx context.Context, doctorProfileID uuid.UUID, start, end time.Time) (bool, error)
	CreateAppointment(ctx context.Context, identity entity.Identity, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	SetMeetingLink(ctx context.Context, identity entity.Identity, appointmentID uuid.UUID, req *dto.UpdateMeetLinkRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, identity entity.Identity, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	ListMyAppointments(ctx context.Context, identity entity.Identity, params pagination.Params) (*dto.AppointmentListResponse, *pagination.Meta, error)
	ListDoctorAppointments(ctx context.Context, identity entity.Identity, query *dto.DoctorAppointmentQuery) (*dto.AppointmentListResponse, *pagination.Meta, error)
}

type appointmentUsecase struct {
	db                   *gorm.DB
	log                  *logrus.Logger
	appointmentRepo      repository.AppointmentRepository
	doctorProfileRepo    repository.DoctorProfileRepository
	reportRepo           repository.ReportRepository
	auditService         service.AuditService
	meetingLinks         MeetingLinkGenerator
	patientFilterInQuery bool
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	reportRepo repository.ReportRepository,
	auditService service.AuditService,
	meetingLinks MeetingLinkGenerator,
	patientFilterInQuery bool,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                   db,
		log:                  log,
		appointmentRepo:      appointmentRepo,
		doctorProfileRepo:    doctorProfileRepo,
		reportRepo:           reportRepo,
		auditService:         auditService,
		meetingLinks:         meetingLinks,
		patientFilterInQuery: patientFilterInQuery,
	}
}

// CheckOverlap reports whether a scheduled appointment of the doctor intersects [start, end).
// Touching endpoints do not conflict.
func (u *appointmentUsecase) CheckOverlap(ctx context.Context, doctorProfileID uuid.UUID, start, end time.Time) (bool, error) {
	overlap, err := u.appointmentRepo.HasOverlap(u.db.WithContext(ctx), doctorProfileID, start, end)
	if err != nil {
		u.log.Warnf("Failed to check overlap for doctor profile %s: %+v", doctorProfileID, err)
		return false, storeError(err)
	}
	return overlap, nil
}

// CreateAppointment books a slot for the calling patient.
//
// Flow:
// 1. Validate identity, ids and the [start, end) window
// 2. Verify the doctor profile exists
// 3. Reserve the slot in one transaction (see reserveSlot)
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, identity entity.Identity, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	doctorProfileID, err := uuid.Parse(req.DoctorProfileID)
	if err != nil {
		return nil, ErrInvalidDoctorProfile
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	start, end = start.UTC(), end.UTC()
	if !entity.ValidWindow(start, end) {
		return nil, ErrInvalidTimeWindow
	}

	profile, err := u.doctorProfileRepo.FindByID(u.db.WithContext(ctx), doctorProfileID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", doctorProfileID, err)
		return nil, storeError(err)
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	appointment, err := u.reserveSlot(ctx, identity, profile, start, end)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, doctor_profile=%s, start=%s, end=%s",
		appointment.ID, profile.ID, start.Format(time.RFC3339), end.Format(time.RFC3339))

	appointment.DoctorProfile = *profile
	return converter.AppointmentToResponse(appointment), nil
}

// reserveSlot runs the check-and-insert atomically.
//
// Flow:
// 1. Take the per-doctor advisory lock for the rest of the transaction
// 2. Reject when a scheduled appointment overlaps
// 3. Attach the patient's latest report, if any
// 4. Generate the meeting link and insert the appointment
// An exclusion violation from the storage constraint is reported as ErrSlotTaken too.
func (u *appointmentUsecase) reserveSlot(ctx context.Context, identity entity.Identity, profile *entity.DoctorProfile, start, end time.Time) (*entity.Appointment, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return nil, storeError(tx.Error)
	}
	defer tx.Rollback()

	if err := u.appointmentRepo.LockDoctor(tx, profile.ID); err != nil {
		u.log.Warnf("Failed to lock doctor profile %s: %+v", profile.ID, err)
		return nil, storeError(err)
	}

	overlap, err := u.appointmentRepo.HasOverlap(tx, profile.ID, start, end)
	if err != nil {
		u.log.Warnf("Failed to check overlap for doctor profile %s: %+v", profile.ID, err)
		return nil, storeError(err)
	}
	if overlap {
		return nil, ErrSlotTaken
	}

	report, err := u.reportRepo.FindLatestByUserID(tx, identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find latest report for user %s: %+v", identity.UserID, err)
		return nil, storeError(err)
	}

	meetLink, err := u.meetingLinks.GenerateURL()
	if err != nil {
		u.log.Errorf("Failed to generate meeting link: %+v", err)
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:       identity.UserID,
		DoctorID:        profile.UserID,
		DoctorProfileID: profile.ID,
		StartTime:       start,
		EndTime:         end,
		Status:          entity.AppointmentStatusScheduled,
		MeetLink:        &meetLink,
	}
	if report != nil {
		appointment.ReportID = &report.ID
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err) {
			return nil, ErrDoctorProfileNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, storeError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, &identity.UserID, entity.AuditActionAppointmentCreate,
		"appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		return nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment: %+v", err)
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, storeError(err)
	}

	return appointment, nil
}

// SetMeetingLink overwrites the meeting link of an appointment owned by the calling doctor.
// The role is checked before anything else, so non-doctors get Forbidden whatever the payload.
func (u *appointmentUsecase) SetMeetingLink(ctx context.Context, identity entity.Identity, appointmentID uuid.UUID, req *dto.UpdateMeetLinkRequest) (*dto.AppointmentResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if !identity.HasRole(entity.RoleDoctor) {
		return nil, ErrDoctorOnly
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %s: %+v", identity.UserID, err)
		return nil, storeError(err)
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, storeError(err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorProfileID != profile.ID {
		return nil, ErrAppointmentForbidden
	}

	meetLink := strings.TrimSpace(req.MeetLink)
	if !meeting.IsValidURL(meetLink) {
		return nil, ErrInvalidMeetLink
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError(tx.Error)
	}
	defer tx.Rollback()

	if err := u.appointmentRepo.UpdateMeetLink(tx, appointment.ID, meetLink); err != nil {
		u.log.Warnf("Failed to update meeting link of appointment %s: %+v", appointment.ID, err)
		return nil, storeError(err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &identity.UserID, entity.AuditActionMeetLinkUpdate,
		"appointment", appointment.ID.String(), appointment.MeetLink, meetLink); err != nil {
		return nil, storeError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit meeting link update: %+v", err)
		return nil, storeError(err)
	}

	appointment.MeetLink = &meetLink
	return converter.AppointmentToResponse(appointment), nil
}

// GetAppointment returns an appointment to its patient, its doctor or an admin
func (u *appointmentUsecase) GetAppointment(ctx context.Context, identity entity.Identity, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, storeError(err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.InvolvesUser(identity.UserID) && !identity.HasRole(entity.RoleAdmin) {
		return nil, ErrAppointmentForbidden
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ListMyAppointments returns the caller's bookings, newest start first
func (u *appointmentUsecase) ListMyAppointments(ctx context.Context, identity entity.Identity, params pagination.Params) (*dto.AppointmentListResponse, *pagination.Meta, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, nil, err
	}

	params = pagination.New(params.Page, params.Limit)
	appointments, total, err := u.appointmentRepo.FindByPatient(u.db.WithContext(ctx), identity.UserID, params.Offset(), params.Limit)
	if err != nil {
		u.log.Warnf("Failed to list appointments of patient %s: %+v", identity.UserID, err)
		return nil, nil, storeError(err)
	}

	meta := params.Meta(total)
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
	}, &meta, nil
}

// ListDoctorAppointments returns one page of the calling doctor's agenda ordered by start time.
//
// The patient-name filter runs either in SQL before paging or, by default, on
// the returned page only. In the latter mode a page may hold fewer than limit
// items and total ignores the name filter. meta.NameFilter tells which mode ran.
func (u *appointmentUsecase) ListDoctorAppointments(ctx context.Context, identity entity.Identity, query *dto.DoctorAppointmentQuery) (*dto.AppointmentListResponse, *pagination.Meta, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, nil, err
	}
	if !identity.HasRole(entity.RoleDoctor) {
		return nil, nil, ErrDoctorOnly
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %s: %+v", identity.UserID, err)
		return nil, nil, storeError(err)
	}
	if profile == nil {
		return nil, nil, ErrDoctorProfileNotFound
	}

	filter, err := parseAppointmentFilter(query)
	if err != nil {
		return nil, nil, err
	}

	nameFilter := NameFilterInQuery
	afterPageName := ""
	if !u.patientFilterInQuery {
		nameFilter = NameFilterAfterPage
		afterPageName = filter.PatientName
		filter.PatientName = ""
	}

	params := pagination.New(query.Page, query.Limit)
	appointments, total, err := u.appointmentRepo.FindByDoctorProfile(u.db.WithContext(ctx), profile.ID, filter, params.Offset(), params.Limit)
	if err != nil {
		u.log.Warnf("Failed to list appointments of doctor profile %s: %+v", profile.ID, err)
		return nil, nil, storeError(err)
	}

	if afterPageName != "" {
		appointments = filterByPatientName(appointments, afterPageName)
	}

	meta := params.Meta(total)
	meta.NameFilter = nameFilter
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
	}, &meta, nil
}

func parseAppointmentFilter(query *dto.DoctorAppointmentQuery) (entity.AppointmentFilter, error) {
	filter := entity.AppointmentFilter{
		PatientName: strings.TrimSpace(query.PatientName),
	}

	if query.Status != "" {
		status := entity.AppointmentStatus(strings.ToLower(query.Status))
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = status
	}

	if query.Date != "" {
		date, err := time.ParseInLocation("2006-01-02", query.Date, time.UTC)
		if err != nil {
			return filter, ErrInvalidDateFormat
		}
		filter.Date = &date
	}

	return filter, nil
}

// filterByPatientName keeps appointments whose patient name or email contains term, case-insensitively
func filterByPatientName(appointments []entity.Appointment, term string) []entity.Appointment {
	term = strings.ToLower(term)
	filtered := make([]entity.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if strings.Contains(strings.ToLower(appointment.Patient.FullName), term) ||
			strings.Contains(strings.ToLower(appointment.Patient.Email), term) {
			filtered = append(filtered, appointment)
		}
	}
	return filtered
}
