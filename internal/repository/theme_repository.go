package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

// ThemeRepository defines the interface for theme settings data access
type ThemeRepository interface {
	GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.ThemeSettings, error)
	Upsert(ctx context.Context, settings *models.ThemeSettings) error
	Delete(ctx context.Context, tenantID uuid.UUID) error
}

type themeRepository struct {
	db *gorm.DB
}

// NewThemeRepository creates a new theme repository
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.ThemeSettings, error) {
	var settings models.ThemeSettings
	if err := r.db.WithContext(ctx).First(&settings, "tenant_id = ?", tenantID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert inserts the tenant's theme row or updates it in place, bumping
// the row version on conflict.
func (r *themeRepository) Upsert(ctx context.Context, settings *models.ThemeSettings) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.Assignments(themeUpsertAssignments(settings)),
	}).Create(settings).Error
}

// themeUpsertAssignments lists the columns rewritten when the tenant's
// theme row already exists. Every user-settable field must appear here;
// a missing column means an update against an existing row is silently
// dropped by the database.
func themeUpsertAssignments(settings *models.ThemeSettings) map[string]interface{} {
	return map[string]interface{}{
		"name":        settings.Name,
		"description": settings.Description,
		"colors":      settings.Colors,
		"typography":  settings.Typography,
		"layout":      settings.Layout,
		"components":  settings.Components,
		"updated_by":  settings.UpdatedBy,
		"version":     gorm.Expr("theme_settings.version + 1"),
		"updated_at":  gorm.Expr("NOW()"),
	}
}

func (r *themeRepository) Delete(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Delete(&models.ThemeSettings{}).Error
}
