package handler

import (
	"net/http"

	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/delivery/http/middleware"
	"smilematch-api/internal/usecase"
	"smilematch-api/pkg/response"
	"smilematch-api/pkg/validator"
)

type ReportHandler struct {
	analysisUsecase usecase.AnalysisUsecase
	validator       *validator.CustomValidator
}

func NewReportHandler(analysisUsecase usecase.AnalysisUsecase, validator *validator.CustomValidator) *ReportHandler {
	return &ReportHandler{
		analysisUsecase: analysisUsecase,
		validator:       validator,
	}
}

// AnalyzeSmile analyzes a smile photo. Signed-in callers get the report stored.
// @Summary Analyze smile
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeSmileRequest true "Image as data URI"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /analyze-smile [post]
func (h *ReportHandler) AnalyzeSmile(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeSmileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.analysisUsecase.AnalyzeSmile(r.Context(), middleware.IdentityFromContext(r.Context()), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Smile analyzed successfully", result)
}

func (h *ReportHandler) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.analysisUsecase.GetLatestReport(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Report retrieved successfully", report)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID, ok := pathUUID(w, r, "id", "report")
	if !ok {
		return
	}

	report, err := h.analysisUsecase.GetReport(r.Context(), middleware.IdentityFromContext(r.Context()), reportID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Report retrieved successfully", report)
}

// DownloadReportPDF streams the report as a PDF attachment
func (h *ReportHandler) DownloadReportPDF(w http.ResponseWriter, r *http.Request) {
	reportID, ok := pathUUID(w, r, "id", "report")
	if !ok {
		return
	}

	file, err := h.analysisUsecase.RenderReportPDF(r.Context(), middleware.IdentityFromContext(r.Context()), reportID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Binary(w, file.ContentType, file.Filename, file.Content)
}
