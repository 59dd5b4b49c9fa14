package usecase

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"smilematch-api/internal/domain/entity"
	"smilematch-api/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUnauthenticated  = apperror.New(apperror.KindUnauthorized, "Authentication required")
	ErrStoreUnavailable = apperror.New(apperror.KindUnavailable, "Storage temporarily unavailable")

	// auth
	ErrEmailAlreadyExists = apperror.New(apperror.KindConflict, "Email already exists")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "Invalid email or password")
	ErrInvalidToken       = apperror.New(apperror.KindUnauthorized, "Invalid or expired token")
	ErrTokenRevoked       = apperror.New(apperror.KindUnauthorized, "Token has been revoked")
	ErrUserNotFound       = apperror.New(apperror.KindNotFound, "User not found")

	// doctor profiles
	ErrDoctorProfileExists   = apperror.New(apperror.KindConflict, "Doctor profile already exists")
	ErrDoctorProfileNotFound = apperror.New(apperror.KindNotFound, "Doctor profile not found")
	ErrNegativeFee           = apperror.New(apperror.KindInvalidInput, "consultation_fee must be greater than or equal to 0")
	ErrInvalidFilter         = apperror.New(apperror.KindInvalidInput, "Invalid filter value")

	// appointments
	ErrDoctorOnly           = apperror.New(apperror.KindForbidden, "Only doctors can access this endpoint")
	ErrAppointmentNotFound  = apperror.New(apperror.KindNotFound, "Appointment not found")
	ErrAppointmentForbidden = apperror.New(apperror.KindForbidden, "You are not allowed to access this appointment")
	ErrInvalidTimeFormat    = apperror.New(apperror.KindInvalidInput, "start_time and end_time must be RFC3339 timestamps")
	ErrInvalidTimeWindow    = apperror.New(apperror.KindInvalidInput, "start_time must be before end_time")
	ErrInvalidDoctorProfile = apperror.New(apperror.KindInvalidInput, "doctor_profile_id must be a valid UUID")
	ErrSlotTaken            = apperror.New(apperror.KindConflict, "This time slot is already booked")
	ErrInvalidMeetLink      = apperror.New(apperror.KindInvalidInput, "meet_link must be a valid absolute http(s) URL")
	ErrInvalidStatus        = apperror.New(apperror.KindInvalidInput, "status must be one of scheduled, completed, cancelled")
	ErrInvalidDateFormat    = apperror.New(apperror.KindInvalidInput, "date must use the YYYY-MM-DD format")

	// reports
	ErrInvalidImage     = apperror.New(apperror.KindInvalidInput, "image must be a base64 data:image URI")
	ErrReportNotFound   = apperror.New(apperror.KindNotFound, "Report not found")
	ErrReportForbidden  = apperror.New(apperror.KindForbidden, "You are not allowed to access this report")
	ErrNoReportForEmail = apperror.New(apperror.KindNotFound, "No smile analysis report found, analyze a photo first")
)

// storeError classifies a persistence failure. Connectivity problems become
// ErrStoreUnavailable, everything else stays an internal error.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return apperror.Wrap(apperror.KindUnavailable, ErrStoreUnavailable.Message, err)
	}
	return err
}

func isUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// on a constraint containing constraintName
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isExclusionViolation checks if the error is a PostgreSQL exclusion constraint violation
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23P01 = exclusion_violation
		return pgErr.Code == "23P01"
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

func requireIdentity(identity entity.Identity) error {
	if identity.IsZero() {
		return ErrUnauthenticated
	}
	return nil
}
