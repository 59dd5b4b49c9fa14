package usecase

import (
	"context"
	"testing"

	"smilematch-api/internal/domain/entity"
	"smilematch-api/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListAuditLogs(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := new(mockAuditLogRepository)
	uc := NewAuditLogUsecase(db, newTestLogger(), repo)

	admin := entity.Identity{UserID: uuid.New(), Role: entity.RoleAdmin}
	repo.On("FindAll", mock.Anything, 0, 20).
		Return([]entity.AuditLog{{ID: 1, Action: entity.AuditActionUserLogin}}, int64(21), nil)

	resp, meta, err := uc.ListAuditLogs(context.Background(), admin, pagination.New(1, 20))

	require.NoError(t, err)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, entity.AuditActionUserLogin, resp.Logs[0].Action)
	assert.Equal(t, 2, meta.TotalPages)

	_, _, err = uc.ListAuditLogs(context.Background(), entity.Identity{UserID: uuid.New(), Role: entity.RoleDoctor}, pagination.New(1, 20))
	assert.ErrorIs(t, err, ErrAdminOnly)
}

func TestGetAuditLog_NotFound(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := new(mockAuditLogRepository)
	uc := NewAuditLogUsecase(db, newTestLogger(), repo)
	repo.On("FindByID", mock.Anything, int64(7)).Return(nil, nil)

	_, err := uc.GetAuditLog(context.Background(), entity.Identity{UserID: uuid.New(), Role: entity.RoleAdmin}, 7)

	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
