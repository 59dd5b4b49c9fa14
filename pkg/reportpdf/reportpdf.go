// Package reportpdf renders smile-analysis reports as PDF documents.
package reportpdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

type Style struct {
	Name          string
	Description   string
	Compatibility int
}

type Document struct {
	ReportID       string
	PatientName    string
	CreatedAt      time.Time
	FaceShape      string
	TeethColor     string
	TeethAlignment string
	TeethSize      string
	Styles         []Style
}

const (
	pageWidth   = 210.0
	marginLeft  = 15.0
	contentWide = pageWidth - 2*marginLeft
)

// Render writes doc as an A4 PDF to w
func Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, 20, marginLeft)
	pdf.SetTitle("Veneer Analysis Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(contentWide, 12, "SmileMatch Veneer Analysis Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentWide, 6, fmt.Sprintf("Report %s", doc.ReportID), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentWide, 6, fmt.Sprintf("Generated %s", doc.CreatedAt.UTC().Format("January 2, 2006 15:04 MST")), "", 1, "C", false, 0, "")
	if doc.PatientName != "" {
		pdf.CellFormat(contentWide, 6, fmt.Sprintf("Prepared for %s", doc.PatientName), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, "Facial Analysis")
	row(pdf, "Face shape", doc.FaceShape)
	pdf.Ln(4)

	section(pdf, "Teeth Analysis")
	row(pdf, "Color (shade guide)", doc.TeethColor)
	row(pdf, "Alignment", doc.TeethAlignment)
	row(pdf, "Size", doc.TeethSize)
	pdf.Ln(4)

	section(pdf, "Recommended Veneer Styles")
	for i, style := range doc.Styles {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(contentWide-30, 8, fmt.Sprintf("%d. %s", i+1, style.Name), "", 0, "L", false, 0, "")
		pdf.SetTextColor(22, 163, 74)
		pdf.CellFormat(30, 8, fmt.Sprintf("%d%% match", style.Compatibility), "", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(contentWide, 5, style.Description, "", "L", false)
		pdf.Ln(3)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(contentWide, 4, "This report is an automated recommendation and does not replace an examination by a licensed dentist.", "", "C", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

// Bytes renders doc into memory
func Bytes(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(contentWide, 9, title, "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func row(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWide-60, 7, value, "", 1, "L", false, 0, "")
}
