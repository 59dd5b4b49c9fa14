package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// DoctorProfileRequest is used for both creating and replacing a profile
type DoctorProfileRequest struct {
	Specialization  string           `json:"specialization" validate:"required,max=100"`
	YearsExperience *int             `json:"years_experience" validate:"required,gte=0,lte=80"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" validate:"required"`
	Bio             string           `json:"bio" validate:"required"`
}

// DoctorListQuery holds the query-string filters of the doctor directory
type DoctorListQuery struct {
	Search         string
	Specialization string
	MinExperience  *int
	MaxFee         *decimal.Decimal
	Page           int
	Limit          int
}

// Response DTOs

type DoctorProfileResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Specialization  string          `json:"specialization"`
	YearsExperience int             `json:"years_experience"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Bio             string          `json:"bio"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type DoctorResponse struct {
	DoctorProfileResponse
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Image    string `json:"image,omitempty"`
}

type DoctorListResponse struct {
	Doctors         []DoctorResponse `json:"doctors"`
	Specializations []string         `json:"specializations"`
}
