package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/repository"
)

// PermissionService manages per-tenant role assignments and answers
// authorization questions from the static role table.
type PermissionService struct {
	repo repository.PermissionRepository
	log  *logrus.Logger
}

// NewPermissionService creates a new permission service
func NewPermissionService(repo repository.PermissionRepository, log *logrus.Logger) *PermissionService {
	return &PermissionService{repo: repo, log: log}
}

// Can reports whether the user may perform the action within the tenant.
// Users with no assignment get viewer access.
func (s *PermissionService) Can(ctx context.Context, tenantID, userID uuid.UUID, action models.Action) (bool, error) {
	role, err := s.RoleFor(ctx, tenantID, userID)
	if err != nil {
		return false, err
	}
	return models.RoleAllows(role, action), nil
}

// RoleFor returns the user's role within the tenant, defaulting to viewer.
func (s *PermissionService) RoleFor(ctx context.Context, tenantID, userID uuid.UUID) (models.Role, error) {
	permission, err := s.repo.GetForUser(ctx, tenantID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleViewer, nil
	}
	if err != nil {
		return "", err
	}
	return permission.Role, nil
}

// Require returns ErrForbidden when the user may not perform the action.
func (s *PermissionService) Require(ctx context.Context, tenantID, userID uuid.UUID, action models.Action) error {
	allowed, err := s.Can(ctx, tenantID, userID, action)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: %s", ErrForbidden, action)
	}
	return nil
}

// Grant assigns or replaces a user's role within the tenant.
func (s *PermissionService) Grant(ctx context.Context, tenantID uuid.UUID, req *models.CreatePermissionRequest, grantedBy *uuid.UUID) (*models.UserPermission, error) {
	if !req.Role.IsValid() {
		return nil, NewValidationError("role", fmt.Sprintf("unknown role %q", req.Role))
	}

	permission := &models.UserPermission{
		TenantID:  tenantID,
		UserID:    req.UserID,
		Role:      req.Role,
		GrantedBy: grantedBy,
	}
	var err error
	if permission.SectionOverrides, err = marshalOverrides(req.SectionOverrides); err != nil {
		return nil, err
	}
	if permission.ComponentOverrides, err = marshalOverrides(req.ComponentOverrides); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, permission); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"user_id":   req.UserID,
		}).Error("Failed to grant permission")
		return nil, err
	}
	return permission, nil
}

// Update changes a user's role or overrides.
func (s *PermissionService) Update(ctx context.Context, tenantID, userID uuid.UUID, req *models.UpdatePermissionRequest, grantedBy *uuid.UUID) (*models.UserPermission, error) {
	permission, err := s.repo.GetForUser(ctx, tenantID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, NewValidationError("role", fmt.Sprintf("unknown role %q", *req.Role))
		}
		permission.Role = *req.Role
	}
	if req.SectionOverrides != nil {
		if permission.SectionOverrides, err = marshalOverrides(req.SectionOverrides); err != nil {
			return nil, err
		}
	}
	if req.ComponentOverrides != nil {
		if permission.ComponentOverrides, err = marshalOverrides(req.ComponentOverrides); err != nil {
			return nil, err
		}
	}
	permission.GrantedBy = grantedBy

	if err := s.repo.Upsert(ctx, permission); err != nil {
		return nil, err
	}
	return permission, nil
}

// List returns the tenant's role assignments.
func (s *PermissionService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]models.UserPermission, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

// Revoke removes a user's assignment, dropping them back to viewer.
func (s *PermissionService) Revoke(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, userID)
}

func marshalOverrides(overrides map[string]bool) (datatypes.JSON, error) {
	if overrides == nil {
		return nil, nil
	}
	data, err := json.Marshal(overrides)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
