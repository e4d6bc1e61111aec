package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

func newPermissionServiceForTest(repo *MockPermissionRepository) *PermissionService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewPermissionService(repo, logger)
}

func TestRoleFor_UnassignedUserDefaultsToViewer(t *testing.T) {
	repo := new(MockPermissionRepository)
	svc := newPermissionServiceForTest(repo)

	repo.On("GetForUser", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, gorm.ErrRecordNotFound)

	role, err := svc.RoleFor(context.Background(), uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.Equal(t, models.RoleViewer, role)
}

func TestRequire_ViewerCannotEdit(t *testing.T) {
	repo := new(MockPermissionRepository)
	svc := newPermissionServiceForTest(repo)

	repo.On("GetForUser", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, gorm.ErrRecordNotFound)

	err := svc.Require(context.Background(), uuid.New(), uuid.New(), models.ActionEdit)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRequire_AdminMayManagePermissions(t *testing.T) {
	repo := new(MockPermissionRepository)
	svc := newPermissionServiceForTest(repo)

	tenantID := uuid.New()
	userID := uuid.New()
	repo.On("GetForUser", mock.Anything, tenantID, userID).Return(&models.UserPermission{
		TenantID: tenantID,
		UserID:   userID,
		Role:     models.RoleAdmin,
	}, nil)

	err := svc.Require(context.Background(), tenantID, userID, models.ActionManagePermissions)

	assert.NoError(t, err)
}

func TestRequire_EditorCannotPublish(t *testing.T) {
	repo := new(MockPermissionRepository)
	svc := newPermissionServiceForTest(repo)

	tenantID := uuid.New()
	userID := uuid.New()
	repo.On("GetForUser", mock.Anything, tenantID, userID).Return(&models.UserPermission{
		TenantID: tenantID,
		UserID:   userID,
		Role:     models.RoleEditor,
	}, nil)

	err := svc.Require(context.Background(), tenantID, userID, models.ActionPublish)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGrant_RejectsUnknownRole(t *testing.T) {
	repo := new(MockPermissionRepository)
	svc := newPermissionServiceForTest(repo)

	_, err := svc.Grant(context.Background(), uuid.New(), &models.CreatePermissionRequest{
		UserID: uuid.New(),
		Role:   models.Role("superuser"),
	}, nil)

	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
