package reportpdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	out, err := Bytes(Document{
		ReportID:       "0b0f6c7e-5f59-4a36-9d4f-3c1f6a2b7e10",
		PatientName:    "Jane Doe",
		CreatedAt:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		FaceShape:      "Oval",
		TeethColor:     "A2",
		TeethAlignment: "Good",
		TeethSize:      "Proportional",
		Styles: []Style{
			{Name: "Natural Look", Description: "Looks natural.", Compatibility: 91},
			{Name: "Hollywood Smile", Description: "Bright white.", Compatibility: 70},
		},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}

func TestBytes_EmptyStyles(t *testing.T) {
	out, err := Bytes(Document{ReportID: "r1", CreatedAt: time.Now()})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
