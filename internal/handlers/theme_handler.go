package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesseract-hub/storefront-service/internal/health"
	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

// ThemeHandler handles HTTP requests for theme settings and resolution
type ThemeHandler struct {
	service *services.ThemeService
}

// NewThemeHandler creates a new theme handler
func NewThemeHandler(service *services.ThemeService) *ThemeHandler {
	return &ThemeHandler{service: service}
}

// startPreviewRequest carries the candidate theme for a preview session.
type startPreviewRequest struct {
	Theme *models.ThemeDocument `json:"theme" binding:"required"`
}

// startPreviewResponse returns the opaque preview token.
type startPreviewResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// ResolveTheme returns the effective theme for a tenant
// @Summary Resolve the effective theme
// @Description Returns the theme the storefront should render: an active preview session, the stored settings, or the built-in default. The returned document always carries the complete token set.
// @Tags theme
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param X-Preview-Token header string false "Preview session token"
// @Success 200 {object} models.ResolvedThemeResponse
// @Failure 400 {object} models.ResolvedThemeResponse
// @Failure 500 {object} models.ResolvedThemeResponse
// @Router /api/v1/tenants/{tenantId}/theme [get]
func (h *ThemeHandler) ResolveTheme(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.ResolvedThemeResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	resolved, err := h.service.Resolve(c.Request.Context(), tenantID, getPreviewToken(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ResolvedThemeResponse{
			Success: false,
			Message: "Failed to resolve theme: " + err.Error(),
		})
		return
	}

	health.RecordThemeResolution(string(resolved.Source))
	c.JSON(http.StatusOK, models.ResolvedThemeResponse{
		Success: true,
		Data:    resolved,
	})
}

// GetDefaultTheme returns the built-in default theme
// @Summary Get the default theme
// @Description Returns the built-in theme every tenant starts from. Useful for the admin UI's "reset to default" preview.
// @Tags theme
// @Produce json
// @Success 200 {object} models.ResolvedThemeResponse
// @Router /api/v1/theme/default [get]
func (h *ThemeHandler) GetDefaultTheme(c *gin.Context) {
	doc := models.DefaultTheme()
	c.JSON(http.StatusOK, models.ResolvedThemeResponse{
		Success: true,
		Data: &models.ResolvedTheme{
			Theme:  doc,
			Source: models.ThemeSourceDefault,
		},
	})
}

// GetThemeSettings returns the stored theme settings row
// @Summary Get stored theme settings
// @Description Returns the tenant's persisted theme customization. 404 when the tenant has never customized its theme.
// @Tags theme
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Success 200 {object} models.ThemeResponse
// @Failure 404 {object} models.ThemeResponse
// @Failure 500 {object} models.ThemeResponse
// @Router /api/v1/tenants/{tenantId}/theme/settings [get]
func (h *ThemeHandler) GetThemeSettings(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.ThemeResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	settings, err := h.service.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to get theme settings")
		return
	}

	c.JSON(http.StatusOK, models.ThemeResponse{
		Success: true,
		Data:    settings,
	})
}

// UpdateTheme partially updates the tenant's theme
// @Summary Update theme settings
// @Description Applies a partial theme update. Token groups omitted from the request are left untouched; color values must be hex codes.
// @Tags theme
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body models.UpdateThemeRequest true "Theme update"
// @Success 200 {object} models.ThemeResponse
// @Failure 400 {object} models.ThemeResponse
// @Failure 500 {object} models.ThemeResponse
// @Router /api/v1/tenants/{tenantId}/theme [put]
func (h *ThemeHandler) UpdateTheme(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.ThemeResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	var req models.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ThemeResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	settings, err := h.service.Update(c.Request.Context(), tenantID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to update theme")
		return
	}

	c.JSON(http.StatusOK, models.ThemeResponse{
		Success: true,
		Data:    settings,
		Message: "Theme updated successfully",
	})
}

// StartPreview opens a preview session for a candidate theme
// @Summary Start a theme preview session
// @Description Stores the candidate theme server-side and returns an opaque token. The stored theme is untouched; pass the token in X-Preview-Token to resolve the candidate.
// @Tags theme
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body startPreviewRequest true "Candidate theme"
// @Success 201 {object} startPreviewResponse
// @Failure 400 {object} startPreviewResponse
// @Failure 500 {object} startPreviewResponse
// @Router /api/v1/tenants/{tenantId}/theme/preview [post]
func (h *ThemeHandler) StartPreview(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, startPreviewResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	var req startPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, startPreviewResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	session, err := h.service.StartPreview(c.Request.Context(), tenantID, req.Theme, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to start preview")
		return
	}

	c.JSON(http.StatusCreated, startPreviewResponse{
		Success: true,
		Token:   session.Token,
	})
}

// EndPreview discards a preview session
// @Summary End a theme preview session
// @Tags theme
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param token path string true "Preview session token"
// @Success 200 {object} startPreviewResponse
// @Router /api/v1/tenants/{tenantId}/theme/preview/{token} [delete]
func (h *ThemeHandler) EndPreview(c *gin.Context) {
	h.service.EndPreview(c.Request.Context(), c.Param("token"))
	c.JSON(http.StatusOK, startPreviewResponse{Success: true})
}
