package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorProfileID string `json:"doctor_profile_id" validate:"required,uuid"`
	StartTime       string `json:"start_time" validate:"required"` // RFC3339
	EndTime         string `json:"end_time" validate:"required"`   // RFC3339
}

type UpdateMeetLinkRequest struct {
	MeetLink string `json:"meet_link"`
}

// DoctorAppointmentQuery holds the query-string filters of a doctor's agenda
type DoctorAppointmentQuery struct {
	Status      string
	Date        string // YYYY-MM-DD
	PatientName string
	Page        int
	Limit       int
}

// Response DTOs

type PatientSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Image    string    `json:"image,omitempty"`
}

type AppointmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	PatientID       uuid.UUID       `json:"patient_id"`
	DoctorID        uuid.UUID       `json:"doctor_id"`
	DoctorProfileID uuid.UUID       `json:"doctor_profile_id"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	Status          string          `json:"status"`
	MeetLink        *string         `json:"meet_link"`
	ReportID        *uuid.UUID      `json:"report_id"`
	Patient         *PatientSummary `json:"patient,omitempty"`
	Doctor          *DoctorResponse `json:"doctor,omitempty"`
	Report          *ReportResponse `json:"report,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}
