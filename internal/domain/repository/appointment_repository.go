package repository

import (
	"time"

	"smilematch-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// LockDoctor serializes slot reservations of one doctor profile until the
	// surrounding transaction ends. db must be a transaction.
	LockDoctor(db *gorm.DB, doctorProfileID uuid.UUID) error
	// HasOverlap reports whether a scheduled appointment of the doctor profile
	// intersects [start, end)
	HasOverlap(db *gorm.DB, doctorProfileID uuid.UUID, start, end time.Time) (bool, error)
	UpdateMeetLink(db *gorm.DB, id uuid.UUID, meetLink string) error
	FindByDoctorProfile(db *gorm.DB, doctorProfileID uuid.UUID, filter entity.AppointmentFilter, offset, limit int) ([]entity.Appointment, int64, error)
	FindByPatient(db *gorm.DB, patientID uuid.UUID, offset, limit int) ([]entity.Appointment, int64, error)
	// ExistsForDoctorAndReport reports whether the doctor user has an appointment referencing the report
	ExistsForDoctorAndReport(db *gorm.DB, doctorUserID, reportID uuid.UUID) (bool, error)
}
