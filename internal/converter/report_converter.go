package converter

import (
	"smilematch-api/internal/delivery/dto"
	"smilematch-api/internal/domain/entity"
	"smilematch-api/pkg/analysis"
	"smilematch-api/pkg/reportpdf"
)

// AnalysisToStyles converts analyzer styles to the persisted form
func AnalysisToStyles(styles []analysis.Style) entity.VeneerStyles {
	result := make(entity.VeneerStyles, len(styles))
	for i, style := range styles {
		result[i] = entity.VeneerStyle{
			ID:            style.ID,
			Name:          style.Name,
			Description:   style.Description,
			Compatibility: style.Compatibility,
			ImageURL:      style.ImageURL,
		}
	}
	return result
}

// AnalysisToReport builds the Report row for an analysis result
func AnalysisToReport(result *analysis.Result, image string) *entity.Report {
	return &entity.Report{
		FaceShape:         result.FaceShape,
		TeethColor:        result.TeethAnalysis.Color,
		TeethAlignment:    result.TeethAnalysis.Alignment,
		TeethSize:         result.TeethAnalysis.Size,
		RecommendedStyles: AnalysisToStyles(result.RecommendedStyles),
		ImageRef:          entity.TruncateImageRef(image),
	}
}

// AnalysisToResponse converts an analysis result to AnalysisResponse DTO
func AnalysisToResponse(result *analysis.Result) *dto.AnalysisResponse {
	if result == nil {
		return nil
	}

	return &dto.AnalysisResponse{
		FaceShape: result.FaceShape,
		TeethAnalysis: dto.TeethAnalysisResponse{
			Color:     result.TeethAnalysis.Color,
			Alignment: result.TeethAnalysis.Alignment,
			Size:      result.TeethAnalysis.Size,
		},
		RecommendedStyles: StylesToResponses(AnalysisToStyles(result.RecommendedStyles)),
	}
}

// ReportToResponse converts a Report entity to ReportResponse DTO
func ReportToResponse(report *entity.Report) *dto.ReportResponse {
	if report == nil {
		return nil
	}

	return &dto.ReportResponse{
		ID:        report.ID,
		UserID:    report.UserID,
		FaceShape: report.FaceShape,
		TeethAnalysis: dto.TeethAnalysisResponse{
			Color:     report.TeethColor,
			Alignment: report.TeethAlignment,
			Size:      report.TeethSize,
		},
		RecommendedStyles: StylesToResponses(report.RecommendedStyles),
		CreatedAt:         report.CreatedAt,
	}
}

func StylesToResponses(styles entity.VeneerStyles) []dto.VeneerStyleResponse {
	responses := make([]dto.VeneerStyleResponse, len(styles))
	for i, style := range styles {
		responses[i] = dto.VeneerStyleResponse{
			ID:            style.ID,
			Name:          style.Name,
			Description:   style.Description,
			Compatibility: style.Compatibility,
			ImageURL:      style.ImageURL,
		}
	}
	return responses
}

// ReportToDocument maps a report onto the PDF layout
func ReportToDocument(report *entity.Report, patientName string) reportpdf.Document {
	styles := make([]reportpdf.Style, len(report.RecommendedStyles))
	for i, style := range report.RecommendedStyles {
		styles[i] = reportpdf.Style{
			Name:          style.Name,
			Description:   style.Description,
			Compatibility: style.Compatibility,
		}
	}

	return reportpdf.Document{
		ReportID:       report.ID.String(),
		PatientName:    patientName,
		CreatedAt:      report.CreatedAt,
		FaceShape:      report.FaceShape,
		TeethColor:     report.TeethColor,
		TeethAlignment: report.TeethAlignment,
		TeethSize:      report.TeethSize,
		Styles:         styles,
	}
}
