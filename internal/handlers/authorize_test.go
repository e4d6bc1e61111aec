package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

// stubPermissionRepository answers GetForUser from a fixed role table.
type stubPermissionRepository struct {
	roles map[uuid.UUID]models.Role
}

func (s *stubPermissionRepository) GetForUser(ctx context.Context, tenantID, userID uuid.UUID) (*models.UserPermission, error) {
	role, ok := s.roles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.UserPermission{TenantID: tenantID, UserID: userID, Role: role}, nil
}

func (s *stubPermissionRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]models.UserPermission, int64, error) {
	return nil, 0, nil
}

func (s *stubPermissionRepository) Upsert(ctx context.Context, permission *models.UserPermission) error {
	return nil
}

func (s *stubPermissionRepository) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return nil
}

func newGuardedRouter(roles map[uuid.UUID]models.Role, action models.Action) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	permissions := services.NewPermissionService(&stubPermissionRepository{roles: roles}, logger)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	router.PUT("/tenants/:tenantId/theme", RequireAction(permissions, action), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRequireAction_ViewerBlockedFromEditing(t *testing.T) {
	userID := uuid.New()
	router := newGuardedRouter(map[uuid.UUID]models.Role{}, models.ActionEdit)

	req := httptest.NewRequest(http.MethodPut, "/tenants/"+uuid.NewString()+"/theme", nil)
	req.Header.Set("X-User-ID", userID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAction_EditorMayEdit(t *testing.T) {
	userID := uuid.New()
	router := newGuardedRouter(map[uuid.UUID]models.Role{userID: models.RoleEditor}, models.ActionEdit)

	req := httptest.NewRequest(http.MethodPut, "/tenants/"+uuid.NewString()+"/theme", nil)
	req.Header.Set("X-User-ID", userID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAction_AnonymousServiceCallPassesThrough(t *testing.T) {
	router := newGuardedRouter(map[uuid.UUID]models.Role{}, models.ActionEdit)

	req := httptest.NewRequest(http.MethodPut, "/tenants/"+uuid.NewString()+"/theme", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
