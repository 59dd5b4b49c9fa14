package converter

import (
	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Loaded relations are included.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		DoctorProfileID: appointment.DoctorProfileID,
		StartTime:       appointment.StartTime,
		EndTime:         appointment.EndTime,
		Status:          string(appointment.Status),
		MeetLink:        appointment.MeetLink,
		ReportID:        appointment.ReportID,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.Patient = PatientToSummary(&appointment.Patient)
	}
	if appointment.DoctorProfile.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.DoctorProfile)
	}
	if appointment.Report != nil {
		response.Report = ReportToResponse(appointment.Report)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// PatientToSummary exposes only the contact fields of a patient
func PatientToSummary(user *entity.User) *dto.PatientSummary {
	if user == nil {
		return nil
	}

	return &dto.PatientSummary{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Image:    user.Image,
	}
}
