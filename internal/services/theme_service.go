package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/cache"
	"github.com/tesseract-hub/storefront-service/internal/events"
	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/repository"
)

// ThemeService resolves and manages tenant theme settings.
type ThemeService struct {
	repo      repository.ThemeRepository
	cache     *cache.ResolverCache
	previews  *cache.PreviewStore
	publisher *events.Publisher
	log       *logrus.Logger
}

// NewThemeService creates a new theme service
func NewThemeService(repo repository.ThemeRepository, resolverCache *cache.ResolverCache, previews *cache.PreviewStore, publisher *events.Publisher, log *logrus.Logger) *ThemeService {
	return &ThemeService{
		repo:      repo,
		cache:     resolverCache,
		previews:  previews,
		publisher: publisher,
		log:       log,
	}
}

// Resolve returns the effective theme for the tenant. Precedence is an
// active preview session, then stored settings, then the built-in default.
// Every returned document carries the full token set. A repository failure
// degrades to the default theme rather than surfacing an error.
func (s *ThemeService) Resolve(ctx context.Context, tenantID uuid.UUID, previewToken string) (*models.ResolvedTheme, error) {
	if previewToken != "" && s.previews != nil {
		if session, ok := s.previews.Get(ctx, tenantID, previewToken); ok && session.Theme != nil {
			doc := models.CompleteTokens(*session.Theme)
			return &models.ResolvedTheme{Theme: doc, Source: models.ThemeSourcePreview}, nil
		}
		// Expired or foreign tokens fall through to normal resolution.
	}

	if s.cache != nil {
		if doc, ok := s.cache.GetTheme(ctx, tenantID.String()); ok {
			return &models.ResolvedTheme{Theme: *doc, Source: models.ThemeSourceStored}, nil
		}
	}

	settings, err := s.repo.GetByTenant(ctx, tenantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		doc := models.DefaultTheme()
		return &models.ResolvedTheme{Theme: doc, Source: models.ThemeSourceDefault}, nil
	}
	if err != nil {
		// A storefront must always get a renderable theme. Infrastructure
		// failures are logged and swallowed; the default ships instead.
		s.log.WithError(err).WithField("tenant_id", tenantID).Error("Failed to load theme settings")
		doc := models.DefaultTheme()
		return &models.ResolvedTheme{Theme: doc, Source: models.ThemeSourceDefault}, nil
	}

	doc := settings.Document()
	if s.cache != nil {
		s.cache.SetTheme(ctx, tenantID.String(), &doc)
	}
	return &models.ResolvedTheme{Theme: doc, Source: models.ThemeSourceStored}, nil
}

// GetSettings returns the stored theme row, or ErrNotFound when the tenant
// has never customized its theme.
func (s *ThemeService) GetSettings(ctx context.Context, tenantID uuid.UUID) (*models.ThemeSettings, error) {
	settings, err := s.repo.GetByTenant(ctx, tenantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Update applies a partial theme update. Color values are validated before
// anything is written.
func (s *ThemeService) Update(ctx context.Context, tenantID uuid.UUID, req *models.UpdateThemeRequest, updatedBy *uuid.UUID) (*models.ThemeSettings, error) {
	for token, value := range req.Colors {
		if !models.IsValidHexColor(value) {
			return nil, NewValidationError("colors."+token, "must be a hex color like #3b82f6")
		}
	}

	settings, err := s.repo.GetByTenant(ctx, tenantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = &models.ThemeSettings{TenantID: tenantID, CreatedBy: updatedBy}
	} else if err != nil {
		return nil, err
	}

	if req.Name != nil {
		settings.Name = *req.Name
	}
	if req.Description != nil {
		settings.Description = *req.Description
	}
	if req.Colors != nil {
		if settings.Colors, err = mergeGroup(settings.Colors, req.Colors); err != nil {
			return nil, err
		}
	}
	if req.Typography != nil {
		data, err := json.Marshal(req.Typography)
		if err != nil {
			return nil, err
		}
		settings.Typography = datatypes.JSON(data)
	}
	if req.Layout != nil {
		data, err := json.Marshal(req.Layout)
		if err != nil {
			return nil, err
		}
		settings.Layout = datatypes.JSON(data)
	}
	if req.Components != nil {
		data, err := json.Marshal(req.Components)
		if err != nil {
			return nil, err
		}
		settings.Components = datatypes.JSON(data)
	}
	settings.UpdatedBy = updatedBy

	if err := s.repo.Upsert(ctx, settings); err != nil {
		s.log.WithError(err).WithField("tenant_id", tenantID).Error("Failed to save theme settings")
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateTheme(ctx, tenantID.String())
	}
	if s.publisher != nil {
		if err := s.publisher.PublishThemeUpdated(ctx, &events.ThemeUpdatedEvent{
			TenantID: tenantID.String(),
			Version:  settings.Version,
		}); err != nil {
			s.log.WithError(err).Warn("Failed to publish theme update event")
		}
	}
	return settings, nil
}

// StartPreview opens a preview session for a candidate theme and returns
// the session token. The stored theme is untouched.
func (s *ThemeService) StartPreview(ctx context.Context, tenantID uuid.UUID, candidate *models.ThemeDocument, createdBy *uuid.UUID) (*cache.PreviewSession, error) {
	if candidate == nil {
		return nil, NewValidationError("theme", "preview theme is required")
	}
	for token, value := range candidate.Colors {
		if !models.IsValidHexColor(value) {
			return nil, NewValidationError("colors."+token, "must be a hex color like #3b82f6")
		}
	}
	return s.previews.Create(ctx, tenantID, candidate, createdBy)
}

// EndPreview discards a preview session.
func (s *ThemeService) EndPreview(ctx context.Context, token string) {
	if s.previews != nil {
		s.previews.Delete(ctx, token)
	}
}

// mergeGroup overlays new token values onto the stored jsonb group so a
// partial color update does not drop untouched tokens.
func mergeGroup(stored datatypes.JSON, updates map[string]string) (datatypes.JSON, error) {
	merged := map[string]string{}
	if len(stored) > 0 {
		_ = json.Unmarshal(stored, &merged)
	}
	for k, v := range updates {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
