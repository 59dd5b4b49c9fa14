package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("BOOKING_PATIENT_FILTER_IN_QUERY", "true")
	t.Setenv("MEETING_DOMAIN", "meet.example.org")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.True(t, cfg.Booking.PatientFilterInQuery)
	assert.Equal(t, "meet.example.org", cfg.Meeting.Domain)
	assert.Equal(t, "SmileMatch", cfg.Meeting.Namespace)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 10*time.Minute, cfg.Cache.SpecializationTTL)
	assert.Equal(t, "*", cfg.App.CORSOrigin)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
