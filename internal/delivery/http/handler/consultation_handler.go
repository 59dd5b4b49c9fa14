package handler

import (
	"net/http"

	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/delivery/http/middleware"
	"smilematch-api/internal/usecase"
	"smilematch-api/pkg/response"
	"smilematch-api/pkg/validator"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// RequestConsultation e-mails a doctor the caller's smile report
// @Summary Send consultation request
// @Tags Consultations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ConsultationEmailRequest true "Consultation Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /consultations/email [post]
func (h *ConsultationHandler) RequestConsultation(w http.ResponseWriter, r *http.Request) {
	var req dto.ConsultationEmailRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.consultationUsecase.RequestConsultation(r.Context(), middleware.IdentityFromContext(r.Context()), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Email sent successfully", result)
}
