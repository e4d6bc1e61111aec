package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

// AssetRepository defines the interface for asset and logo data access
type AssetRepository interface {
	CreateAsset(ctx context.Context, asset *models.Asset) error
	GetAsset(ctx context.Context, tenantID, id uuid.UUID) (*models.Asset, error)
	GetAssetByFileName(ctx context.Context, tenantID uuid.UUID, fileName string) (*models.Asset, error)
	ListAssets(ctx context.Context, tenantID uuid.UUID, assetType models.AssetType, offset, limit int) ([]models.Asset, int64, error)
	UpdateAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, tenantID, id uuid.UUID) error

	CreateLogo(ctx context.Context, logo *models.Logo) error
	GetLogo(ctx context.Context, tenantID, id uuid.UUID) (*models.Logo, error)
	ListLogos(ctx context.Context, tenantID uuid.UUID) ([]models.Logo, error)
	UpdateLogo(ctx context.Context, logo *models.Logo) error
	DeleteLogo(ctx context.Context, tenantID, id uuid.UUID) error
}

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) CreateAsset(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) GetAsset(ctx context.Context, tenantID, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) GetAssetByFileName(ctx context.Context, tenantID uuid.UUID, fileName string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND file_name = ?", tenantID, fileName).
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) ListAssets(ctx context.Context, tenantID uuid.UUID, assetType models.AssetType, offset, limit int) ([]models.Asset, int64, error) {
	var assets []models.Asset
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Asset{}).Where("tenant_id = ?", tenantID)
	if assetType != "" {
		query = query.Where("asset_type = ?", assetType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&assets).Error
	if err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

func (r *assetRepository) UpdateAsset(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *assetRepository) DeleteAsset(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Asset{}).Error
}

func (r *assetRepository) CreateLogo(ctx context.Context, logo *models.Logo) error {
	return r.db.WithContext(ctx).Create(logo).Error
}

func (r *assetRepository) GetLogo(ctx context.Context, tenantID, id uuid.UUID) (*models.Logo, error) {
	var logo models.Logo
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&logo).Error
	if err != nil {
		return nil, err
	}
	return &logo, nil
}

func (r *assetRepository) ListLogos(ctx context.Context, tenantID uuid.UUID) ([]models.Logo, error) {
	var logos []models.Logo
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&logos).Error
	if err != nil {
		return nil, err
	}
	return logos, nil
}

func (r *assetRepository) UpdateLogo(ctx context.Context, logo *models.Logo) error {
	return r.db.WithContext(ctx).Save(logo).Error
}

func (r *assetRepository) DeleteLogo(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Logo{}).Error
}
