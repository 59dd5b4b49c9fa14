package converter

import (
	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorProfileResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		Specialization:  profile.Specialization,
		YearsExperience: profile.YearsExperience,
		ConsultationFee: profile.ConsultationFee,
		Bio:             profile.Bio,
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       profile.UpdatedAt,
	}
}

// DoctorToResponse converts a DoctorProfile with its preloaded User to DoctorResponse DTO
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		DoctorProfileResponse: *DoctorProfileToResponse(profile),
		FullName:              profile.User.FullName,
		Email:                 profile.User.Email,
		Image:                 profile.User.Image,
	}
}

// DoctorsToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorToResponse(&profiles[i])
	}
	return responses
}
