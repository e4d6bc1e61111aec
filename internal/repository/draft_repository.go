package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

// DraftRepository defines the interface for draft data access
type DraftRepository interface {
	Create(ctx context.Context, draft *models.Draft) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Draft, error)
	List(ctx context.Context, tenantID uuid.UUID, status models.DraftStatus, offset, limit int) ([]models.Draft, int64, error)
	Update(ctx context.Context, draft *models.Draft) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Draft, error)
}

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *models.Draft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *draftRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Draft, error) {
	var draft models.Draft
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) List(ctx context.Context, tenantID uuid.UUID, status models.DraftStatus, offset, limit int) ([]models.Draft, int64, error) {
	var drafts []models.Draft
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Draft{}).Where("tenant_id = ?", tenantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&drafts).Error
	if err != nil {
		return nil, 0, err
	}
	return drafts, total, nil
}

func (r *draftRepository) Update(ctx context.Context, draft *models.Draft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *draftRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Draft{}).Error
}

// ListDueScheduled returns scheduled drafts whose publish time has passed,
// oldest first, for the background publisher.
func (r *draftRepository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Draft, error) {
	var drafts []models.Draft
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", models.DraftStatusScheduled, now).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}
