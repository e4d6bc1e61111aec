package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

func TestThemeUpsertAssignments_CarriesEverySettableField(t *testing.T) {
	updatedBy := uuid.New()
	settings := &models.ThemeSettings{
		TenantID:    uuid.New(),
		Name:        "Brand refresh",
		Description: "Spring palette",
		UpdatedBy:   &updatedBy,
	}

	assignments := themeUpsertAssignments(settings)

	// Every user-settable column must be rewritten on conflict, or an
	// update against an existing row loses that field
	for _, column := range []string{
		"name", "description", "colors", "typography", "layout",
		"components", "updated_by", "version", "updated_at",
	} {
		_, ok := assignments[column]
		assert.True(t, ok, "column %q missing from upsert assignments", column)
	}

	assert.Equal(t, "Brand refresh", assignments["name"])
	assert.Equal(t, "Spring palette", assignments["description"])
	assert.Equal(t, &updatedBy, assignments["updated_by"])
}
