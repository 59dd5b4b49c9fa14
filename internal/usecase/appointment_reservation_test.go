package usecase

import (
	"context"
	"testing"

	"smilematch-api/internal/domain/entity"
	appointmentStore "smilematch-api/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// The slot is reserved inside one transaction: lock, overlap count, insert, commit.
func TestCreateAppointment_ReservesSlotInOrder(t *testing.T) {
	f := newAppointmentFixture(t, appointmentStore.NewAppointmentRepository(), false)
	appointmentID := uuid.New()

	f.profiles.On("FindByID", mock.Anything, f.profile.ID).Return(f.profile, nil)
	f.reports.On("FindLatestByUserID", mock.Anything, f.patient.UserID).Return(nil, nil)
	f.audit.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAppointmentCreate,
		"appointment", appointmentID.String(), mock.Anything).Return(nil)

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtextextended\(\$1, 0\)\)`).
		WithArgs(f.profile.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE .*doctor_profile_id = \$1 AND status = \$2 AND start_time < \$3 AND end_time > \$4`).
		WithArgs(f.profile.ID, "scheduled", at(12, 0), at(11, 0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	f.sqlMock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(appointmentID.String()))
	f.sqlMock.ExpectCommit()

	resp, err := f.usecase.CreateAppointment(context.Background(), f.patient, bookingRequest(f.profile.ID, at(11, 0), at(12, 0)))

	require.NoError(t, err)
	assert.Equal(t, appointmentID, resp.ID)
	require.NotNil(t, resp.MeetLink)
	assert.Equal(t, testMeetURL, *resp.MeetLink)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	f.audit.AssertExpectations(t)
}

func TestCreateAppointment_OverlapRollsBackBeforeInsert(t *testing.T) {
	f := newAppointmentFixture(t, appointmentStore.NewAppointmentRepository(), false)

	f.profiles.On("FindByID", mock.Anything, f.profile.ID).Return(f.profile, nil)

	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs(f.profile.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	f.sqlMock.ExpectRollback()

	_, err := f.usecase.CreateAppointment(context.Background(), f.patient, bookingRequest(f.profile.ID, at(10, 30), at(11, 30)))

	require.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	f.reports.AssertNotCalled(t, "FindLatestByUserID", mock.Anything, mock.Anything)
	f.audit.AssertNotCalled(t, "LogCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything)
}
