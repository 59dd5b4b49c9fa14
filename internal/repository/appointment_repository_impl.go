package repository

import (
	"errors"
	"strings"
	"time"

	"smilematch-api/internal/domain/entity"
	domainRepo "smilematch-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").
		Preload("DoctorProfile.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) LockDoctor(db *gorm.DB, doctorProfileID uuid.UUID) error {
	return db.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", doctorProfileID.String()).Error
}

func (r *appointmentRepository) HasOverlap(db *gorm.DB, doctorProfileID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_profile_id = ? AND status = ? AND start_time < ? AND end_time > ?",
			doctorProfileID, entity.AppointmentStatusScheduled, end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) UpdateMeetLink(db *gorm.DB, id uuid.UUID, meetLink string) error {
	return db.Model(&entity.Appointment{}).Where("id = ?", id).Update("meet_link", meetLink).Error
}

func (r *appointmentRepository) FindByDoctorProfile(db *gorm.DB, doctorProfileID uuid.UUID, filter entity.AppointmentFilter, offset, limit int) ([]entity.Appointment, int64, error) {
	scope := appointmentFilterScope(doctorProfileID, filter)

	var total int64
	if err := db.Model(&entity.Appointment{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := db.Scopes(scope).
		Select("appointments.*").
		Preload("Patient").
		Preload("Report").
		Order("appointments.start_time ASC, appointments.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindByPatient(db *gorm.DB, patientID uuid.UUID, offset, limit int) ([]entity.Appointment, int64, error) {
	var total int64
	if err := db.Model(&entity.Appointment{}).Where("patient_id = ?", patientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := db.Preload("DoctorProfile.User").
		Where("patient_id = ?", patientID).
		Order("start_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) ExistsForDoctorAndReport(db *gorm.DB, doctorUserID, reportID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND report_id = ?", doctorUserID, reportID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func appointmentFilterScope(doctorProfileID uuid.UUID, filter entity.AppointmentFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("appointments.doctor_profile_id = ?", doctorProfileID)

		if filter.Status != "" {
			db = db.Where("appointments.status = ?", filter.Status)
		}
		if from, to, ok := filter.DayRange(); ok {
			db = db.Where("appointments.start_time >= ? AND appointments.start_time < ?", from, to)
		}
		if name := strings.TrimSpace(filter.PatientName); name != "" {
			pattern := containsPattern(name)
			db = db.Joins("JOIN users AS patients ON patients.id = appointments.patient_id").
				Where("(patients.full_name ILIKE ? OR patients.email ILIKE ?)", pattern, pattern)
		}
		return db
	}
}
