package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/cache"
	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/repository"
)

// ResolveRequest carries the three possible tenant identity signals in
// precedence order: explicit header, URL slug, then authenticated user.
type ResolveRequest struct {
	HeaderTenantID string
	PathSlug       string
	UserID         *uuid.UUID
}

// TenantResolver resolves the active tenant for a request. A lookup that
// matches no tenant is a valid outcome (found=false, nil error), distinct
// from infrastructure failures.
type TenantResolver struct {
	repo  repository.TenantRepository
	cache *cache.ResolverCache
	log   *logrus.Logger
}

// NewTenantResolver creates a new tenant resolver
func NewTenantResolver(repo repository.TenantRepository, resolverCache *cache.ResolverCache, log *logrus.Logger) *TenantResolver {
	return &TenantResolver{repo: repo, cache: resolverCache, log: log}
}

// Resolve applies the precedence chain and returns the first signal that
// yields a decision. A present-but-unknown signal resolves to not-found;
// lower-precedence signals are not consulted as fallbacks.
func (s *TenantResolver) Resolve(ctx context.Context, req ResolveRequest) (*models.Tenant, bool, error) {
	if req.HeaderTenantID != "" {
		return s.resolveByHeader(ctx, req.HeaderTenantID)
	}
	if req.PathSlug != "" {
		return s.resolveBySlug(ctx, req.PathSlug)
	}
	if req.UserID != nil {
		return s.resolveByOwner(ctx, *req.UserID)
	}
	return nil, false, nil
}

// HasTenant reports whether the user owns a tenant, for the onboarding
// redirect decision.
func (s *TenantResolver) HasTenant(ctx context.Context, userID uuid.UUID) (*models.Tenant, bool, error) {
	return s.resolveByOwner(ctx, userID)
}

func (s *TenantResolver) resolveByHeader(ctx context.Context, raw string) (*models.Tenant, bool, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		// A malformed header identifies nothing; treat as not found
		// rather than falling through to weaker signals.
		return nil, false, nil
	}
	return s.lookup(ctx, "id:"+id.String(), func() (*models.Tenant, error) {
		return s.repo.GetByID(ctx, id)
	})
}

func (s *TenantResolver) resolveBySlug(ctx context.Context, slug string) (*models.Tenant, bool, error) {
	return s.lookup(ctx, "slug:"+slug, func() (*models.Tenant, error) {
		tenant, err := s.repo.GetBySlug(ctx, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.repo.GetBySubdomain(ctx, slug)
		}
		return tenant, err
	})
}

func (s *TenantResolver) resolveByOwner(ctx context.Context, userID uuid.UUID) (*models.Tenant, bool, error) {
	return s.lookup(ctx, "owner:"+userID.String(), func() (*models.Tenant, error) {
		return s.repo.GetByOwner(ctx, userID)
	})
}

// lookup consults the cache layers before the database and caches both
// hits and misses.
func (s *TenantResolver) lookup(ctx context.Context, key string, fetch func() (*models.Tenant, error)) (*models.Tenant, bool, error) {
	if s.cache != nil {
		if tenant, ok := s.cache.GetTenant(ctx, key); ok {
			return tenant, true, nil
		}
		if s.cache.GetTenantMiss(ctx, key) {
			return nil, false, nil
		}
	}

	tenant, err := fetch()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if s.cache != nil {
			s.cache.SetTenantMiss(ctx, key)
		}
		return nil, false, nil
	}
	if err != nil {
		s.log.WithError(err).WithField("lookup", key).Error("Tenant lookup failed")
		return nil, false, err
	}

	if s.cache != nil {
		s.cache.SetTenant(ctx, key, tenant)
	}
	return tenant, true, nil
}
