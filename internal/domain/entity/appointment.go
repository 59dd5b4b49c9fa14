package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is a booked video consultation between a patient and a doctor.
// Scheduled appointments of one doctor profile never overlap under [start, end).
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DoctorProfileID uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_profile_id"`
	StartTime       time.Time         `gorm:"type:timestamptz;not null;index" json:"start_time"`
	EndTime         time.Time         `gorm:"type:timestamptz;not null" json:"end_time"`
	Status          AppointmentStatus `gorm:"type:appointment_status;not null;default:'scheduled';index" json:"status"`
	MeetLink        *string           `gorm:"type:text" json:"meet_link,omitempty"`
	ReportID        *uuid.UUID        `gorm:"type:uuid;index" json:"report_id,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient       User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	DoctorProfile DoctorProfile `gorm:"foreignKey:DoctorProfileID" json:"doctor_profile,omitempty"`
	Report        *Report       `gorm:"foreignKey:ReportID" json:"report,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if appointment is still scheduled
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// Overlaps reports whether the appointment shares any instant with [start, end).
// Touching endpoints do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}

// InvolvesUser reports whether userID is the patient or the doctor of the appointment
func (a *Appointment) InvolvesUser(userID uuid.UUID) bool {
	return a.PatientID == userID || a.DoctorID == userID
}

// ValidWindow reports whether start is strictly before end
func ValidWindow(start, end time.Time) bool {
	return start.Before(end)
}
