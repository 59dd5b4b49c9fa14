package service

import (
	"bytes"
	"html/template"

	"smilematch-api/internal/domain/entity"
)

type ConsultationEmailData struct {
	PatientName  string
	PatientEmail string
	Message      string
	Report       *entity.Report
}

var consultationEmailTemplate = template.Must(template.New("consultation").Parse(`<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #0891b2; color: white; padding: 20px; text-align: center; }
      .content { padding: 20px; background-color: #f9f9f9; }
      .footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
      .report-section { margin: 15px 0; padding: 15px; background-color: white; border-left: 4px solid #0891b2; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>Veneer Consultation Request</h1></div>
      <div class="content">
        <p>Dear Doctor,</p>
        <p>Your patient {{.PatientName}} has used the SmileMatch platform and would like to discuss veneer options with you.</p>
        {{if .Message}}<p><strong>Patient Message:</strong> {{.Message}}</p>{{end}}
        <div class="report-section">
          <h2>Smile Analysis Results</h2>
          <p><strong>Face Shape:</strong> {{.Report.FaceShape}}</p>
          <p><strong>Teeth Color:</strong> {{.Report.TeethColor}}</p>
          <p><strong>Teeth Alignment:</strong> {{.Report.TeethAlignment}}</p>
          <p><strong>Teeth Size:</strong> {{.Report.TeethSize}}</p>
          <h3>Recommended Veneer Styles:</h3>
          <ul>
          {{range .Report.RecommendedStyles}}
            <li><strong>{{.Name}}</strong> ({{.Compatibility}}% compatibility)<br>{{.Description}}</li>
          {{end}}
          </ul>
        </div>
        <p><strong>Patient e-mail:</strong> {{if .PatientEmail}}{{.PatientEmail}}{{else}}Not provided{{end}}</p>
        <p>Please contact the patient to schedule a consultation to discuss these veneer options.</p>
        <p>Thank you,<br>SmileMatch Team</p>
      </div>
      <div class="footer">
        <p>The analysis is automated and should be verified by a dental professional.</p>
      </div>
    </div>
  </body>
</html>`))

// RenderConsultationEmail renders the HTML body sent to a doctor. All values are HTML-escaped.
func RenderConsultationEmail(data ConsultationEmailData) (string, error) {
	var buf bytes.Buffer
	if err := consultationEmailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func ConsultationSubject(patientName string) string {
	return "Veneer Consultation Request for " + patientName
}
