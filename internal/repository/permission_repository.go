package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

// PermissionRepository defines the interface for permission data access
type PermissionRepository interface {
	GetForUser(ctx context.Context, tenantID, userID uuid.UUID) (*models.UserPermission, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]models.UserPermission, int64, error)
	Upsert(ctx context.Context, permission *models.UserPermission) error
	Delete(ctx context.Context, tenantID, userID uuid.UUID) error
}

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) GetForUser(ctx context.Context, tenantID, userID uuid.UUID) (*models.UserPermission, error) {
	var permission models.UserPermission
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&permission).Error
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *permissionRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]models.UserPermission, int64, error) {
	var permissions []models.UserPermission
	var total int64

	query := r.db.WithContext(ctx).Model(&models.UserPermission{}).Where("tenant_id = ?", tenantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&permissions).Error
	if err != nil {
		return nil, 0, err
	}
	return permissions, total, nil
}

// Upsert inserts or replaces the user's role assignment for the tenant.
func (r *permissionRepository) Upsert(ctx context.Context, permission *models.UserPermission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"role":                permission.Role,
			"section_overrides":   permission.SectionOverrides,
			"component_overrides": permission.ComponentOverrides,
			"granted_by":          permission.GrantedBy,
			"updated_at":          gorm.Expr("NOW()"),
		}),
	}).Create(permission).Error
}

func (r *permissionRepository) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Delete(&models.UserPermission{}).Error
}
