package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/events"
	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/repository"
)

// BannerService manages banners and their dense 1-based display ordering.
type BannerService struct {
	repo      repository.BannerRepository
	publisher *events.Publisher
	log       *logrus.Logger
}

// NewBannerService creates a new banner service
func NewBannerService(repo repository.BannerRepository, publisher *events.Publisher, log *logrus.Logger) *BannerService {
	return &BannerService{repo: repo, publisher: publisher, log: log}
}

// Create appends a banner at the end of the tenant's ordering.
func (s *BannerService) Create(ctx context.Context, tenantID uuid.UUID, req *models.CreateBannerRequest, createdBy *uuid.UUID) (*models.Banner, error) {
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		return nil, NewValidationError("ends_at", "must be after starts_at")
	}

	maxOrder, err := s.repo.MaxDisplayOrder(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	banner := &models.Banner{
		TenantID:     tenantID,
		AssetID:      req.AssetID,
		Title:        req.Title,
		ImageURL:     req.ImageURL,
		LinkURL:      req.LinkURL,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		DisplayOrder: maxOrder + 1,
		Active:       true,
		CreatedBy:    createdBy,
		UpdatedBy:    createdBy,
	}
	if req.Active != nil {
		banner.Active = *req.Active
	}
	if req.AudienceTags != nil {
		if banner.AudienceTags, err = marshalJSONB(req.AudienceTags); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, banner); err != nil {
		s.log.WithError(err).WithField("tenant_id", tenantID).Error("Failed to create banner")
		return nil, err
	}
	return banner, nil
}

// Get returns one banner, or ErrNotFound.
func (s *BannerService) Get(ctx context.Context, tenantID, bannerID uuid.UUID) (*models.Banner, error) {
	banner, err := s.repo.GetByID(ctx, tenantID, bannerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return banner, nil
}

// List returns the tenant's banners in display order.
func (s *BannerService) List(ctx context.Context, tenantID uuid.UUID) ([]models.Banner, error) {
	return s.repo.ListOrdered(ctx, tenantID)
}

// Update partially updates a banner. Display order is only changed via
// Reorder so the dense sequence cannot be broken by a field update.
func (s *BannerService) Update(ctx context.Context, tenantID, bannerID uuid.UUID, req *models.UpdateBannerRequest, updatedBy *uuid.UUID) (*models.Banner, error) {
	banner, err := s.Get(ctx, tenantID, bannerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.ImageURL != nil {
		banner.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		banner.LinkURL = *req.LinkURL
	}
	if req.AssetID != nil {
		banner.AssetID = req.AssetID
	}
	if req.StartsAt != nil {
		banner.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		banner.EndsAt = req.EndsAt
	}
	if req.Active != nil {
		banner.Active = *req.Active
	}
	if req.AudienceTags != nil {
		if banner.AudienceTags, err = marshalJSONB(req.AudienceTags); err != nil {
			return nil, err
		}
	}
	if banner.StartsAt != nil && banner.EndsAt != nil && !banner.EndsAt.After(*banner.StartsAt) {
		return nil, NewValidationError("ends_at", "must be after starts_at")
	}
	banner.UpdatedBy = updatedBy

	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete removes a banner and renumbers the remainder so the ordering
// stays dense.
func (s *BannerService) Delete(ctx context.Context, tenantID, bannerID uuid.UUID) error {
	if _, err := s.Get(ctx, tenantID, bannerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenantID, bannerID); err != nil {
		return err
	}

	banners, err := s.repo.ListOrdered(ctx, tenantID)
	if err != nil {
		return err
	}
	return s.repo.SaveOrdering(ctx, renumber(banners))
}

// Reorder moves the banner at sourceIndex to destinationIndex (both
// 0-based positions in the current ordering) and renumbers every banner
// to a dense 1-based sequence.
func (s *BannerService) Reorder(ctx context.Context, tenantID uuid.UUID, sourceIndex, destinationIndex int) ([]models.Banner, error) {
	banners, err := s.repo.ListOrdered(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	n := len(banners)
	if sourceIndex < 0 || sourceIndex >= n {
		return nil, NewValidationError("sourceIndex", fmt.Sprintf("out of range [0,%d)", n))
	}
	if destinationIndex < 0 || destinationIndex >= n {
		return nil, NewValidationError("destinationIndex", fmt.Sprintf("out of range [0,%d)", n))
	}
	if sourceIndex == destinationIndex {
		return banners, nil
	}

	moved := banners[sourceIndex]
	banners = append(banners[:sourceIndex], banners[sourceIndex+1:]...)
	banners = append(banners[:destinationIndex], append([]models.Banner{moved}, banners[destinationIndex:]...)...)
	banners = renumber(banners)

	if err := s.repo.SaveOrdering(ctx, banners); err != nil {
		s.log.WithError(err).WithField("tenant_id", tenantID).Error("Failed to persist banner ordering")
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishBannersReordered(ctx, &events.BannersReorderedEvent{
			TenantID: tenantID.String(),
			Count:    n,
		}); err != nil {
			s.log.WithError(err).Warn("Failed to publish reorder event")
		}
	}
	return banners, nil
}

// renumber assigns display orders 1..n in slice order.
func renumber(banners []models.Banner) []models.Banner {
	for i := range banners {
		banners[i].DisplayOrder = i + 1
	}
	return banners
}
