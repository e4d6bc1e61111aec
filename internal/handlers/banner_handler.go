package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

// BannerHandler handles HTTP requests for banners
type BannerHandler struct {
	service *services.BannerService
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(service *services.BannerService) *BannerHandler {
	return &BannerHandler{service: service}
}

// ListBanners lists the tenant's banners in display order
// @Summary List banners
// @Tags banners
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Success 200 {object} models.BannerListResponse
// @Failure 400 {object} models.BannerListResponse
// @Failure 500 {object} models.BannerListResponse
// @Router /api/v1/tenants/{tenantId}/banners [get]
func (h *BannerHandler) ListBanners(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.BannerListResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	banners, err := h.service.List(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.BannerListResponse{
			Success: false,
			Message: "Failed to list banners: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.BannerListResponse{
		Success: true,
		Items:   banners,
		Total:   int64(len(banners)),
	})
}

// CreateBanner appends a banner at the end of the ordering
// @Summary Create a banner
// @Tags banners
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body models.CreateBannerRequest true "Banner"
// @Success 201 {object} models.BannerListResponse
// @Failure 400 {object} models.BannerListResponse
// @Router /api/v1/tenants/{tenantId}/banners [post]
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tenant ID is required"})
		return
	}

	var req models.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}

	banner, err := h.service.Create(c.Request.Context(), tenantID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to create banner")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    banner,
		"message": "Banner created successfully",
	})
}

// UpdateBanner partially updates a banner
// @Summary Update a banner
// @Tags banners
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param bannerId path string true "Banner ID"
// @Param request body models.UpdateBannerRequest true "Changes"
// @Success 200 {object} models.BannerListResponse
// @Failure 400 {object} models.BannerListResponse
// @Failure 404 {object} models.BannerListResponse
// @Router /api/v1/tenants/{tenantId}/banners/{bannerId} [patch]
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	tenantID, bannerID, ok := h.parseScope(c)
	if !ok {
		return
	}

	var req models.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}

	banner, err := h.service.Update(c.Request.Context(), tenantID, bannerID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to update banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    banner,
		"message": "Banner updated successfully",
	})
}

// DeleteBanner removes a banner and renumbers the rest
// @Summary Delete a banner
// @Description Deletes a banner. Remaining banners are renumbered so display orders stay a dense 1-based sequence.
// @Tags banners
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param bannerId path string true "Banner ID"
// @Success 200 {object} models.BannerListResponse
// @Failure 404 {object} models.BannerListResponse
// @Router /api/v1/tenants/{tenantId}/banners/{bannerId} [delete]
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	tenantID, bannerID, ok := h.parseScope(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, bannerID); err != nil {
		respondError(c, err, "Failed to delete banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Banner deleted successfully",
	})
}

// ReorderBanners moves a banner within the ordering
// @Summary Reorder banners
// @Description Moves the banner at sourceIndex to destinationIndex and renumbers the whole list to a dense 1-based sequence. Out-of-range indexes are rejected without changes.
// @Tags banners
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body models.ReorderBannersRequest true "Move"
// @Success 200 {object} models.BannerListResponse
// @Failure 400 {object} models.BannerListResponse
// @Router /api/v1/tenants/{tenantId}/banners/reorder [post]
func (h *BannerHandler) ReorderBanners(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.BannerListResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	var req models.ReorderBannersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.BannerListResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	banners, err := h.service.Reorder(c.Request.Context(), tenantID, req.SourceIndex, req.DestinationIndex)
	if err != nil {
		respondError(c, err, "Failed to reorder banners")
		return
	}

	c.JSON(http.StatusOK, models.BannerListResponse{
		Success: true,
		Items:   banners,
		Total:   int64(len(banners)),
		Message: "Banners reordered successfully",
	})
}

func (h *BannerHandler) parseScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tenant ID is required"})
		return uuid.Nil, uuid.Nil, false
	}
	bannerID, ok := parseUUIDParam(c, "bannerId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid banner ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, bannerID, true
}
