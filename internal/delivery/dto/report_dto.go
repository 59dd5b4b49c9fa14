package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AnalyzeSmileRequest struct {
	Image string `json:"image" validate:"required,datauri"`
}

// Response DTOs

type TeethAnalysisResponse struct {
	Color     string `json:"color"`
	Alignment string `json:"alignment"`
	Size      string `json:"size"`
}

type VeneerStyleResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Compatibility int    `json:"compatibility"`
	ImageURL      string `json:"image_url"`
}

type AnalysisResponse struct {
	ReportID          *uuid.UUID            `json:"report_id,omitempty"`
	FaceShape         string                `json:"face_shape"`
	TeethAnalysis     TeethAnalysisResponse `json:"teeth_analysis"`
	RecommendedStyles []VeneerStyleResponse `json:"recommended_styles"`
}

type ReportResponse struct {
	ID                uuid.UUID             `json:"id"`
	UserID            uuid.UUID             `json:"user_id"`
	FaceShape         string                `json:"face_shape"`
	TeethAnalysis     TeethAnalysisResponse `json:"teeth_analysis"`
	RecommendedStyles []VeneerStyleResponse `json:"recommended_styles"`
	CreatedAt         time.Time             `json:"created_at"`
}

// ReportFile is a rendered report document
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
