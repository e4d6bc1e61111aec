package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

// BannerRepository defines the interface for banner data access
type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Banner, error)
	ListOrdered(ctx context.Context, tenantID uuid.UUID) ([]models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	MaxDisplayOrder(ctx context.Context, tenantID uuid.UUID) (int, error)
	SaveOrdering(ctx context.Context, banners []models.Banner) error
}

type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository creates a new banner repository
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *bannerRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&banner).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepository) ListOrdered(ctx context.Context, tenantID uuid.UUID) ([]models.Banner, error) {
	var banners []models.Banner
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("display_order ASC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

func (r *bannerRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Banner{}).Error
}

func (r *bannerRepository) MaxDisplayOrder(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&models.Banner{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&max).Error
	return max, err
}

// SaveOrdering persists a renumbered banner list atomically so readers
// never observe a partially applied ordering.
func (r *bannerRepository) SaveOrdering(ctx context.Context, banners []models.Banner) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range banners {
			err := tx.Model(&models.Banner{}).
				Where("id = ?", banners[i].ID).
				Update("display_order", banners[i].DisplayOrder).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
