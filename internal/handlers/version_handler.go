package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

// VersionHandler handles HTTP requests for the configuration version history
type VersionHandler struct {
	service *services.VersionService
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(service *services.VersionService) *VersionHandler {
	return &VersionHandler{service: service}
}

// ListVersions lists the configuration's version history
// @Summary List versions
// @Description Lists the configuration's version history, newest first. Tag, search and date filters are applied to the whole history, not the current page.
// @Tags versions
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param tag query string false "Filter by tag"
// @Param search query string false "Free-text search over summary, description and tags"
// @Param createdAfter query string false "RFC3339 lower bound on creation time"
// @Param createdBefore query string false "RFC3339 upper bound on creation time"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {object} models.VersionListResponse
// @Failure 400 {object} models.VersionListResponse
// @Failure 500 {object} models.VersionListResponse
// @Router /api/v1/tenants/{tenantId}/versions [get]
func (h *VersionHandler) ListVersions(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.VersionListResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	filter := models.VersionListFilter{
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
	}
	filter.Offset, filter.Limit = parsePagination(c)

	if raw := c.Query("createdAfter"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.VersionListResponse{
				Success: false,
				Message: "createdAfter must be RFC3339",
			})
			return
		}
		filter.CreatedAfter = &t
	}
	if raw := c.Query("createdBefore"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.VersionListResponse{
				Success: false,
				Message: "createdBefore must be RFC3339",
			})
			return
		}
		filter.CreatedBefore = &t
	}

	versions, total, err := h.service.List(c.Request.Context(), tenantID, parseConfigurationID(c, tenantID), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.VersionListResponse{
			Success: false,
			Message: "Failed to list versions: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.VersionListResponse{
		Success: true,
		Items:   versions,
		Total:   total,
	})
}

// GetVersion returns one version by number
// @Summary Get a version
// @Tags versions
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param number path int true "Version number"
// @Success 200 {object} models.VersionResponse
// @Failure 404 {object} models.VersionResponse
// @Router /api/v1/tenants/{tenantId}/versions/{number} [get]
func (h *VersionHandler) GetVersion(c *gin.Context) {
	tenantID, number, ok := h.parseScope(c)
	if !ok {
		return
	}

	version, err := h.service.Get(c.Request.Context(), tenantID, parseConfigurationID(c, tenantID), number)
	if err != nil {
		respondError(c, err, "Failed to get version")
		return
	}

	c.JSON(http.StatusOK, models.VersionResponse{Success: true, Data: version})
}

// RestoreVersion seeds a new draft from a version's snapshot
// @Summary Restore a version
// @Description Creates a new draft seeded from the version's snapshot. The version history is never rewound; the stored versions stay untouched.
// @Tags versions
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param number path int true "Version number"
// @Success 201 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Failure 500 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/versions/{number}/restore [post]
func (h *VersionHandler) RestoreVersion(c *gin.Context) {
	tenantID, number, ok := h.parseScope(c)
	if !ok {
		return
	}

	draft, err := h.service.Restore(c.Request.Context(), tenantID, parseConfigurationID(c, tenantID), number, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to restore version")
		return
	}

	c.JSON(http.StatusCreated, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Version restored into a new draft",
	})
}

// CompareVersions diffs two versions
// @Summary Compare two versions
// @Description Compares two versions' snapshots into a flat path map of added, removed and changed values. Comparing a version with itself yields an empty map with identical=true.
// @Tags versions
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param from query int true "Source version number"
// @Param to query int true "Target version number"
// @Success 200 {object} models.VersionCompareResponse
// @Failure 400 {object} models.VersionCompareResponse
// @Failure 404 {object} models.VersionCompareResponse
// @Router /api/v1/tenants/{tenantId}/versions/compare [get]
func (h *VersionHandler) CompareVersions(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.VersionCompareResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	from, errFrom := strconv.Atoi(c.Query("from"))
	to, errTo := strconv.Atoi(c.Query("to"))
	if errFrom != nil || errTo != nil || from <= 0 || to <= 0 {
		c.JSON(http.StatusBadRequest, models.VersionCompareResponse{
			Success: false,
			Message: "from and to must be positive version numbers",
		})
		return
	}

	comparison, err := h.service.Compare(c.Request.Context(), tenantID, parseConfigurationID(c, tenantID), from, to)
	if err != nil {
		respondError(c, err, "Failed to compare versions")
		return
	}

	c.JSON(http.StatusOK, models.VersionCompareResponse{
		Success: true,
		Data:    comparison,
	})
}

func (h *VersionHandler) parseScope(c *gin.Context) (uuid.UUID, int, bool) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.VersionResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return uuid.Nil, 0, false
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		c.JSON(http.StatusBadRequest, models.VersionResponse{
			Success: false,
			Message: "Version number must be a positive integer",
		})
		return uuid.Nil, 0, false
	}
	return tenantID, number, true
}
