package usecase

import (
	"context"
	"testing"
	"time"

	"smilematch-api/internal/domain/entity"
	"smilematch-api/internal/service"
	"smilematch-api/pkg/analysis"
	"smilematch-api/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, sqlMock
}

func newTestLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(db, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(db, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) UpdateRole(db *gorm.DB, id uuid.UUID, role entity.Role) error {
	args := m.Called(db, id, role)
	return args.Error(0)
}

type mockDoctorProfileRepository struct{ mock.Mock }

func (m *mockDoctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *mockDoctorProfileRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error) {
	args := m.Called(db, id)
	profile, _ := args.Get(0).(*entity.DoctorProfile)
	return profile, args.Error(1)
}

func (m *mockDoctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	args := m.Called(db, userID)
	profile, _ := args.Get(0).(*entity.DoctorProfile)
	return profile, args.Error(1)
}

func (m *mockDoctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *mockDoctorProfileRepository) Search(db *gorm.DB, filter entity.DoctorFilter, offset, limit int) ([]entity.DoctorProfile, int64, error) {
	args := m.Called(db, filter, offset, limit)
	profiles, _ := args.Get(0).([]entity.DoctorProfile)
	return profiles, args.Get(1).(int64), args.Error(2)
}

func (m *mockDoctorProfileRepository) DistinctSpecializations(db *gorm.DB) ([]string, error) {
	args := m.Called(db)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

type mockAppointmentRepository struct{ mock.Mock }

func (m *mockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(db, id)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *mockAppointmentRepository) LockDoctor(db *gorm.DB, doctorProfileID uuid.UUID) error {
	args := m.Called(db, doctorProfileID)
	return args.Error(0)
}

func (m *mockAppointmentRepository) HasOverlap(db *gorm.DB, doctorProfileID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(db, doctorProfileID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepository) UpdateMeetLink(db *gorm.DB, id uuid.UUID, meetLink string) error {
	args := m.Called(db, id, meetLink)
	return args.Error(0)
}

func (m *mockAppointmentRepository) FindByDoctorProfile(db *gorm.DB, doctorProfileID uuid.UUID, filter entity.AppointmentFilter, offset, limit int) ([]entity.Appointment, int64, error) {
	args := m.Called(db, doctorProfileID, filter, offset, limit)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Get(1).(int64), args.Error(2)
}

func (m *mockAppointmentRepository) FindByPatient(db *gorm.DB, patientID uuid.UUID, offset, limit int) ([]entity.Appointment, int64, error) {
	args := m.Called(db, patientID, offset, limit)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Get(1).(int64), args.Error(2)
}

func (m *mockAppointmentRepository) ExistsForDoctorAndReport(db *gorm.DB, doctorUserID, reportID uuid.UUID) (bool, error) {
	args := m.Called(db, doctorUserID, reportID)
	return args.Bool(0), args.Error(1)
}

type mockReportRepository struct{ mock.Mock }

func (m *mockReportRepository) Create(db *gorm.DB, report *entity.Report) error {
	args := m.Called(db, report)
	return args.Error(0)
}

func (m *mockReportRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Report, error) {
	args := m.Called(db, id)
	report, _ := args.Get(0).(*entity.Report)
	return report, args.Error(1)
}

func (m *mockReportRepository) FindLatestByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Report, error) {
	args := m.Called(db, userID)
	report, _ := args.Get(0).(*entity.Report)
	return report, args.Error(1)
}

type mockAuditLogRepository struct{ mock.Mock }

func (m *mockAuditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	args := m.Called(db, log)
	return args.Error(0)
}

func (m *mockAuditLogRepository) FindAll(db *gorm.DB, offset, limit int) ([]entity.AuditLog, int64, error) {
	args := m.Called(db, offset, limit)
	logs, _ := args.Get(0).([]entity.AuditLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(db, id)
	log, _ := args.Get(0).(*entity.AuditLog)
	return log, args.Error(1)
}

type mockAuditService struct{ mock.Mock }

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, action, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func (m *mockAuditService) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	m.Called(ctx, userID, action, metadata)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Register(ctx context.Context, userID uuid.UUID, tokens ...service.RegisteredToken) error {
	args := m.Called(ctx, userID, tokens)
	return args.Error(0)
}

func (m *mockSessionStore) Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	args := m.Called(ctx, userID, tokenType, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionStore) Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	args := m.Called(ctx, userID, tokenType, tokenID)
	return args.Error(0)
}

func (m *mockSessionStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockSpecializationCache struct{ mock.Mock }

func (m *mockSpecializationCache) Get(ctx context.Context, load service.SpecializationLoader) ([]string, error) {
	args := m.Called(ctx, load)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

func (m *mockSpecializationCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, mail service.Mail) (string, error) {
	args := m.Called(ctx, mail)
	return args.String(0), args.Error(1)
}

type mockAnalyzer struct{ mock.Mock }

func (m *mockAnalyzer) Analyze(ctx context.Context, image string) (*analysis.Result, error) {
	args := m.Called(ctx, image)
	result, _ := args.Get(0).(*analysis.Result)
	return result, args.Error(1)
}

type stubMeetingLinks struct {
	url string
	err error
}

func (s stubMeetingLinks) GenerateURL() (string, error) {
	return s.url, s.err
}
