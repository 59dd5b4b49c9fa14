package dto

// Request DTOs

type ConsultationEmailRequest struct {
	DoctorEmail string `json:"doctor_email" validate:"required,email"`
	PatientName string `json:"patient_name" validate:"required,max=255"`
	Message     string `json:"message" validate:"omitempty,max=2000"`
	ReportID    string `json:"report_id" validate:"omitempty,uuid"`
}

// Response DTOs

type ConsultationEmailResponse struct {
	MessageID string `json:"message_id"`
}
