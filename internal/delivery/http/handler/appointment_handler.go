package handler

import (
	"net/http"

	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/delivery/http/middleware"
	"smilematch-api/internal/usecase"
	"smilematch-api/pkg/pagination"
	"smilematch-api/pkg/response"
	"smilematch-api/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// CreateAppointment books a consultation slot
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), middleware.IdentityFromContext(r.Context()), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, meta, err := h.appointmentUsecase.ListMyAppointments(r.Context(),
		middleware.IdentityFromContext(r.Context()), pagination.FromRequest(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments, meta)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), middleware.IdentityFromContext(r.Context()), appointmentID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// SetMeetingLink replaces the meeting link of one of the doctor's appointments
// @Summary Update meeting link
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateMeetLinkRequest true "Meet Link Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id}/meet-link [put]
func (h *AppointmentHandler) SetMeetingLink(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateMeetLinkRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.SetMeetingLink(r.Context(), middleware.IdentityFromContext(r.Context()), appointmentID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Meeting link updated successfully", appointment)
}

// ListDoctorAppointments returns the calling doctor's agenda
// @Summary List doctor appointments
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param status query string false "scheduled, completed or cancelled"
// @Param date query string false "YYYY-MM-DD"
// @Param patient_name query string false "Patient name or email"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /doctor/appointments [get]
func (h *AppointmentHandler) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	params := pagination.FromRequest(r)

	appointments, meta, err := h.appointmentUsecase.ListDoctorAppointments(r.Context(), middleware.IdentityFromContext(r.Context()),
		&dto.DoctorAppointmentQuery{
			Status:      values.Get("status"),
			Date:        values.Get("date"),
			PatientName: values.Get("patient_name"),
			Page:        params.Page,
			Limit:       params.Limit,
		})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments, meta)
}
