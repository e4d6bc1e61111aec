package services

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/repository"
)

// AssetService manages tenant media records and logo slots.
type AssetService struct {
	repo repository.AssetRepository
	log  *logrus.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(repo repository.AssetRepository, log *logrus.Logger) *AssetService {
	return &AssetService{repo: repo, log: log}
}

// RegisterAsset records an uploaded file. The bare filename is derived
// from the stored path so the serving route can look it up directly.
func (s *AssetService) RegisterAsset(ctx context.Context, tenantID uuid.UUID, req *models.CreateAssetRequest, createdBy *uuid.UUID) (*models.Asset, error) {
	fileName := BareFileName(req.FilePath)
	if fileName == "" {
		return nil, NewValidationError("file_path", "must contain a filename")
	}

	assetType := req.AssetType
	if assetType == "" {
		assetType = models.AssetTypeImage
	}

	asset := &models.Asset{
		TenantID:  tenantID,
		FilePath:  req.FilePath,
		FileName:  fileName,
		AssetType: assetType,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		CreatedBy: createdBy,
	}
	if err := s.repo.CreateAsset(ctx, asset); err != nil {
		s.log.WithError(err).WithField("tenant_id", tenantID).Error("Failed to register asset")
		return nil, err
	}
	return asset, nil
}

// GetAsset returns one asset, or ErrNotFound.
func (s *AssetService) GetAsset(ctx context.Context, tenantID, assetID uuid.UUID) (*models.Asset, error) {
	asset, err := s.repo.GetAsset(ctx, tenantID, assetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return asset, nil
}

// LookupByFileName resolves a serving request. Any path prefix in the
// request is stripped, so "uploads/logo.png" and "logo.png" hit the same
// record.
func (s *AssetService) LookupByFileName(ctx context.Context, tenantID uuid.UUID, requested string) (*models.Asset, error) {
	fileName := BareFileName(requested)
	if fileName == "" {
		return nil, ErrNotFound
	}
	asset, err := s.repo.GetAssetByFileName(ctx, tenantID, fileName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return asset, nil
}

// ListAssets returns a page of the tenant's assets.
func (s *AssetService) ListAssets(ctx context.Context, tenantID uuid.UUID, assetType models.AssetType, offset, limit int) ([]models.Asset, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListAssets(ctx, tenantID, assetType, offset, limit)
}

// DeleteAsset removes an asset record.
func (s *AssetService) DeleteAsset(ctx context.Context, tenantID, assetID uuid.UUID) error {
	if _, err := s.GetAsset(ctx, tenantID, assetID); err != nil {
		return err
	}
	return s.repo.DeleteAsset(ctx, tenantID, assetID)
}

// CreateLogo creates a logo for a slot.
func (s *AssetService) CreateLogo(ctx context.Context, tenantID uuid.UUID, req *models.CreateLogoRequest, createdBy *uuid.UUID) (*models.Logo, error) {
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		return nil, NewValidationError("ends_at", "must be after starts_at")
	}

	logo := &models.Logo{
		TenantID:  tenantID,
		AssetID:   req.AssetID,
		ImageURL:  req.ImageURL,
		LogoType:  req.LogoType,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Active:    true,
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
	}
	if err := s.repo.CreateLogo(ctx, logo); err != nil {
		s.log.WithError(err).WithField("tenant_id", tenantID).Error("Failed to create logo")
		return nil, err
	}
	return logo, nil
}

// ListLogos returns the tenant's logos.
func (s *AssetService) ListLogos(ctx context.Context, tenantID uuid.UUID) ([]models.Logo, error) {
	return s.repo.ListLogos(ctx, tenantID)
}

// UpdateLogo partially updates a logo.
func (s *AssetService) UpdateLogo(ctx context.Context, tenantID, logoID uuid.UUID, req *models.UpdateLogoRequest, updatedBy *uuid.UUID) (*models.Logo, error) {
	logo, err := s.repo.GetLogo(ctx, tenantID, logoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.ImageURL != nil {
		logo.ImageURL = *req.ImageURL
	}
	if req.LogoType != nil {
		logo.LogoType = *req.LogoType
	}
	if req.StartsAt != nil {
		logo.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		logo.EndsAt = req.EndsAt
	}
	if req.Active != nil {
		logo.Active = *req.Active
	}
	if logo.StartsAt != nil && logo.EndsAt != nil && !logo.EndsAt.After(*logo.StartsAt) {
		return nil, NewValidationError("ends_at", "must be after starts_at")
	}
	logo.UpdatedBy = updatedBy

	if err := s.repo.UpdateLogo(ctx, logo); err != nil {
		return nil, err
	}
	return logo, nil
}

// DeleteLogo removes a logo.
func (s *AssetService) DeleteLogo(ctx context.Context, tenantID, logoID uuid.UUID) error {
	if _, err := s.repo.GetLogo(ctx, tenantID, logoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.DeleteLogo(ctx, tenantID, logoID)
}

// BareFileName strips any path prefix and query noise from a stored or
// requested file path.
func BareFileName(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasSuffix(p, "/") {
		// Trailing slash means a directory, not a file
		return ""
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
