package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

// AssetHandler handles HTTP requests for assets and logos
type AssetHandler struct {
	service *services.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(service *services.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// ListAssets lists the tenant's assets
// @Summary List assets
// @Tags assets
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param type query string false "Filter by asset type (image, video, font, other)"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {object} models.AssetListResponse
// @Failure 400 {object} models.AssetListResponse
// @Failure 500 {object} models.AssetListResponse
// @Router /api/v1/tenants/{tenantId}/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.AssetListResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	offset, limit := parsePagination(c)
	assets, total, err := h.service.ListAssets(c.Request.Context(), tenantID, models.AssetType(c.Query("type")), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.AssetListResponse{
			Success: false,
			Message: "Failed to list assets: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.AssetListResponse{
		Success: true,
		Items:   assets,
		Total:   total,
	})
}

// RegisterAsset records an uploaded file
// @Summary Register an asset
// @Description Records an uploaded file. The bare filename is derived from the path for the serving route.
// @Tags assets
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body models.CreateAssetRequest true "Asset"
// @Success 201 {object} models.AssetListResponse
// @Failure 400 {object} models.AssetListResponse
// @Router /api/v1/tenants/{tenantId}/assets [post]
func (h *AssetHandler) RegisterAsset(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tenant ID is required"})
		return
	}

	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}

	asset, err := h.service.RegisterAsset(c.Request.Context(), tenantID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to register asset")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    asset,
		"message": "Asset registered successfully",
	})
}

// ServeAsset resolves an asset by filename
// @Summary Resolve an asset by filename
// @Description Resolves a serving request. Any path prefix in the request is stripped, so "uploads/logo.png" and "logo.png" resolve to the same asset.
// @Tags assets
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param filename path string true "Asset filename, with or without a path prefix"
// @Success 200 {object} models.AssetListResponse
// @Failure 404 {object} models.AssetListResponse
// @Router /api/v1/tenants/{tenantId}/assets/by-name/{filename} [get]
func (h *AssetHandler) ServeAsset(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tenant ID is required"})
		return
	}

	asset, err := h.service.LookupByFileName(c.Request.Context(), tenantID, c.Param("filename"))
	if err != nil {
		respondError(c, err, "Failed to resolve asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    asset,
	})
}

// DeleteAsset removes an asset record
// @Summary Delete an asset
// @Tags assets
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param assetId path string true "Asset ID"
// @Success 200 {object} models.AssetListResponse
// @Failure 404 {object} models.AssetListResponse
// @Router /api/v1/tenants/{tenantId}/assets/{assetId} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tenant ID is required"})
		return
	}
	assetID, ok := parseUUIDParam(c, "assetId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid asset ID"})
		return
	}

	if err := h.service.DeleteAsset(c.Request.Context(), tenantID, assetID); err != nil {
		respondError(c, err, "Failed to delete asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Asset deleted successfully",
	})
}

// ListLogos lists the tenant's logos
// @Summary List logos
// @Tags logos
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Success 200 {object} models.LogoListResponse
// @Failure 400 {object} models.LogoListResponse
// @Failure 500 {object} models.LogoListResponse
// @Router /api/v1/tenants/{tenantId}/logos [get]
func (h *AssetHandler) ListLogos(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.LogoListResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	logos, err := h.service.ListLogos(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.LogoListResponse{
			Success: false,
			Message: "Failed to list logos: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.LogoListResponse{
		Success: true,
		Items:   logos,
		Total:   int64(len(logos)),
	})
}

// CreateLogo creates a logo for a slot
// @Summary Create a logo
// @Tags logos
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body models.CreateLogoRequest true "Logo"
// @Success 201 {object} models.LogoListResponse
// @Failure 400 {object} models.LogoListResponse
// @Router /api/v1/tenants/{tenantId}/logos [post]
func (h *AssetHandler) CreateLogo(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tenant ID is required"})
		return
	}

	var req models.CreateLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}

	logo, err := h.service.CreateLogo(c.Request.Context(), tenantID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to create logo")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    logo,
		"message": "Logo created successfully",
	})
}

// UpdateLogo partially updates a logo
// @Summary Update a logo
// @Tags logos
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param logoId path string true "Logo ID"
// @Param request body models.UpdateLogoRequest true "Changes"
// @Success 200 {object} models.LogoListResponse
// @Failure 404 {object} models.LogoListResponse
// @Router /api/v1/tenants/{tenantId}/logos/{logoId} [patch]
func (h *AssetHandler) UpdateLogo(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tenant ID is required"})
		return
	}
	logoID, ok := parseUUIDParam(c, "logoId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid logo ID"})
		return
	}

	var req models.UpdateLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}

	logo, err := h.service.UpdateLogo(c.Request.Context(), tenantID, logoID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to update logo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    logo,
		"message": "Logo updated successfully",
	})
}

// DeleteLogo removes a logo
// @Summary Delete a logo
// @Tags logos
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param logoId path string true "Logo ID"
// @Success 200 {object} models.LogoListResponse
// @Failure 404 {object} models.LogoListResponse
// @Router /api/v1/tenants/{tenantId}/logos/{logoId} [delete]
func (h *AssetHandler) DeleteLogo(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tenant ID is required"})
		return
	}
	logoID, ok := parseUUIDParam(c, "logoId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid logo ID"})
		return
	}

	if err := h.service.DeleteLogo(c.Request.Context(), tenantID, logoID); err != nil {
		respondError(c, err, "Failed to delete logo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logo deleted successfully",
	})
}
