package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DoctorFilter is a domain-level filter for searching doctor profiles.
// All non-empty fields combine with AND.
type DoctorFilter struct {
	Search         string // ILIKE across specialization, bio, owner name, owner email
	Specialization string // ILIKE
	MinExperience  *int
	MaxFee         *decimal.Decimal
}

// AppointmentFilter is a domain-level filter for listing a doctor's appointments
type AppointmentFilter struct {
	Status      AppointmentStatus
	Date        *time.Time // matches start_time in [Date, Date+24h)
	PatientName string     // ILIKE on patient name or email
}

// DayRange returns the half-open [from, to) range covered by Date
func (f AppointmentFilter) DayRange() (time.Time, time.Time, bool) {
	if f.Date == nil {
		return time.Time{}, time.Time{}, false
	}
	from := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
	return from, from.AddDate(0, 0, 1), true
}
