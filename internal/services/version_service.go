package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tesseract-hub/storefront-service/internal/events"
	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/repository"
)

// VersionService reads the immutable version history and derives drafts
// and comparisons from it. Nothing here ever mutates a stored version.
type VersionService struct {
	versions  repository.VersionRepository
	drafts    repository.DraftRepository
	publisher *events.Publisher
	log       *logrus.Logger
}

// NewVersionService creates a new version service
func NewVersionService(versions repository.VersionRepository, drafts repository.DraftRepository, publisher *events.Publisher, log *logrus.Logger) *VersionService {
	return &VersionService{
		versions:  versions,
		drafts:    drafts,
		publisher: publisher,
		log:       log,
	}
}

// List returns a filtered, paginated page of the configuration's history.
func (s *VersionService) List(ctx context.Context, tenantID, configurationID uuid.UUID, filter models.VersionListFilter) ([]models.ConfigurationVersion, int64, error) {
	return s.versions.List(ctx, tenantID, configurationID, filter)
}

// Get returns one version by number, or ErrNotFound.
func (s *VersionService) Get(ctx context.Context, tenantID, configurationID uuid.UUID, number int) (*models.ConfigurationVersion, error) {
	version, err := s.versions.GetByNumber(ctx, tenantID, configurationID, number)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return version, nil
}

// Restore seeds a new draft from the version's snapshot. The version
// itself and every version after it remain untouched.
func (s *VersionService) Restore(ctx context.Context, tenantID, configurationID uuid.UUID, number int, restoredBy *uuid.UUID) (*models.Draft, error) {
	version, err := s.Get(ctx, tenantID, configurationID, number)
	if err != nil {
		return nil, err
	}

	draft := &models.Draft{
		TenantID:        tenantID,
		ConfigurationID: configurationID,
		Name:            fmt.Sprintf("Restore of version %d", version.VersionNumber),
		Description:     version.ChangeSummary,
		Content:         version.Snapshot,
		Status:          models.DraftStatusDraft,
		CreatedBy:       restoredBy,
		UpdatedBy:       restoredBy,
	}
	if err := s.drafts.Create(ctx, draft); err != nil {
		s.log.WithError(err).WithField("version", number).Error("Failed to create restore draft")
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishVersionRestored(ctx, &events.VersionRestoredEvent{
			TenantID:        tenantID.String(),
			ConfigurationID: configurationID.String(),
			VersionNumber:   version.VersionNumber,
			DraftID:         draft.ID.String(),
		}); err != nil {
			s.log.WithError(err).Warn("Failed to publish restore event")
		}
	}
	return draft, nil
}

// Compare diffs two versions' snapshots into a flat path map. Comparing a
// version with itself is valid and yields an empty, explicitly identical
// result.
func (s *VersionService) Compare(ctx context.Context, tenantID, configurationID uuid.UUID, from, to int) (*models.VersionComparison, error) {
	fromVersion, err := s.Get(ctx, tenantID, configurationID, from)
	if err != nil {
		return nil, err
	}
	toVersion, err := s.Get(ctx, tenantID, configurationID, to)
	if err != nil {
		return nil, err
	}

	fromDoc, err := decodeSnapshot(fromVersion.Snapshot)
	if err != nil {
		return nil, err
	}
	toDoc, err := decodeSnapshot(toVersion.Snapshot)
	if err != nil {
		return nil, err
	}

	diffs := map[string]models.DiffEntry{}
	diffObjects("", fromDoc, toDoc, diffs)

	return &models.VersionComparison{
		FromVersion: from,
		ToVersion:   to,
		Identical:   len(diffs) == 0,
		Differences: diffs,
	}, nil
}

func decodeSnapshot(raw []byte) (map[string]interface{}, error) {
	doc := map[string]interface{}{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return doc, nil
}

// diffObjects walks both objects key-by-key, recursing into nested
// objects and recording leaf-level differences under dot-joined paths.
func diffObjects(prefix string, from, to map[string]interface{}, out map[string]models.DiffEntry) {
	for key, fromValue := range from {
		path := joinPath(prefix, key)
		toValue, ok := to[key]
		if !ok {
			out[path] = models.DiffEntry{Type: models.DiffRemoved, Value: fromValue}
			continue
		}

		fromMap, fromIsMap := fromValue.(map[string]interface{})
		toMap, toIsMap := toValue.(map[string]interface{})
		if fromIsMap && toIsMap {
			diffObjects(path, fromMap, toMap, out)
			continue
		}

		if !reflect.DeepEqual(fromValue, toValue) {
			out[path] = models.DiffEntry{Type: models.DiffChanged, OldValue: fromValue, NewValue: toValue}
		}
	}

	for key, toValue := range to {
		if _, ok := from[key]; ok {
			continue
		}
		out[joinPath(prefix, key)] = models.DiffEntry{Type: models.DiffAdded, Value: toValue}
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
