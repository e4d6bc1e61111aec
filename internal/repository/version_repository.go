package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

// VersionRepository defines the interface for configuration version data
// access. Versions are append-only; there is no update or delete.
type VersionRepository interface {
	Create(ctx context.Context, version *models.ConfigurationVersion) error
	GetByNumber(ctx context.Context, tenantID, configurationID uuid.UUID, number int) (*models.ConfigurationVersion, error)
	GetLatest(ctx context.Context, tenantID, configurationID uuid.UUID) (*models.ConfigurationVersion, error)
	List(ctx context.Context, tenantID, configurationID uuid.UUID, filter models.VersionListFilter) ([]models.ConfigurationVersion, int64, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

// Create assigns the next version number for the configuration and inserts
// the snapshot in one transaction. The unique index on
// (configuration_id, version_number) rejects concurrent writers that
// computed the same number.
func (r *versionRepository) Create(ctx context.Context, version *models.ConfigurationVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		err := tx.Model(&models.ConfigurationVersion{}).
			Where("configuration_id = ?", version.ConfigurationID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxNumber).Error
		if err != nil {
			return err
		}
		version.VersionNumber = maxNumber + 1
		return tx.Create(version).Error
	})
}

func (r *versionRepository) GetByNumber(ctx context.Context, tenantID, configurationID uuid.UUID, number int) (*models.ConfigurationVersion, error) {
	var version models.ConfigurationVersion
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND configuration_id = ? AND version_number = ?", tenantID, configurationID, number).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) GetLatest(ctx context.Context, tenantID, configurationID uuid.UUID) (*models.ConfigurationVersion, error) {
	var version models.ConfigurationVersion
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND configuration_id = ?", tenantID, configurationID).
		Order("version_number DESC").
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// List applies tag, search and date-range filters in SQL so pagination
// counts reflect the whole history, not the current page.
func (r *versionRepository) List(ctx context.Context, tenantID, configurationID uuid.UUID, filter models.VersionListFilter) ([]models.ConfigurationVersion, int64, error) {
	var versions []models.ConfigurationVersion
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ConfigurationVersion{}).
		Where("tenant_id = ? AND configuration_id = ?", tenantID, configurationID)

	if filter.Tag != "" {
		query = query.Where("tags @> ?", `["`+filter.Tag+`"]`)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("change_summary ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?", pattern, pattern, pattern)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	err := query.Order("version_number DESC").Offset(filter.Offset).Limit(limit).Find(&versions).Error
	if err != nil {
		return nil, 0, err
	}
	return versions, total, nil
}
