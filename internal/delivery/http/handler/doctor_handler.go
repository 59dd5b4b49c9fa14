package handler

import (
	"net/http"
	"strconv"

	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/delivery/http/middleware"
	"smilematch-api/internal/usecase"
	"smilematch-api/pkg/pagination"
	"smilematch-api/pkg/response"
	"smilematch-api/pkg/validator"

	"github.com/shopspring/decimal"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorProfileUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorProfileUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// ListDoctors handles the doctor directory
// @Summary Search doctors
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param search query string false "Matches specialization, bio, name or email"
// @Param specialization query string false "Specialization"
// @Param min_experience query int false "Minimum years of experience"
// @Param max_fee query number false "Maximum consultation fee"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query, err := parseDoctorListQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	doctors, meta, err := h.doctorUsecase.ListDoctors(r.Context(), query)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Doctors retrieved successfully", doctors, meta)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// CreateProfile creates the caller's doctor profile and grants the doctor role
func (h *DoctorHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	profile, err := h.doctorUsecase.CreateProfile(r.Context(), middleware.IdentityFromContext(r.Context()), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Doctor profile created successfully", profile)
}

func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	profile, err := h.doctorUsecase.UpdateProfile(r.Context(), middleware.IdentityFromContext(r.Context()), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile updated successfully", profile)
}

func (h *DoctorHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.doctorUsecase.GetMyProfile(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile retrieved successfully", profile)
}

func parseDoctorListQuery(r *http.Request) (*dto.DoctorListQuery, error) {
	values := r.URL.Query()
	params := pagination.FromRequest(r)

	query := &dto.DoctorListQuery{
		Search:         values.Get("search"),
		Specialization: values.Get("specialization"),
		Page:           params.Page,
		Limit:          params.Limit,
	}

	if raw := values.Get("min_experience"); raw != "" {
		minExperience, err := strconv.Atoi(raw)
		if err != nil || minExperience < 0 {
			return nil, usecase.ErrInvalidFilter
		}
		query.MinExperience = &minExperience
	}

	if raw := values.Get("max_fee"); raw != "" {
		maxFee, err := decimal.NewFromString(raw)
		if err != nil || maxFee.IsNegative() {
			return nil, usecase.ErrInvalidFilter
		}
		query.MaxFee = &maxFee
	}

	return query, nil
}
