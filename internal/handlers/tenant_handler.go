package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

// TenantHandler handles HTTP requests for tenant resolution
type TenantHandler struct {
	resolver *services.TenantResolver
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(resolver *services.TenantResolver) *TenantHandler {
	return &TenantHandler{resolver: resolver}
}

// ResolveTenant resolves the active tenant for a request
// @Summary Resolve the active tenant
// @Description Resolves the tenant from the X-Tenant-ID header, the slug query param, or the authenticated user, in that precedence order. A lookup that matches nothing returns found=false with HTTP 200.
// @Tags tenants
// @Produce json
// @Param X-Tenant-ID header string false "Explicit tenant ID"
// @Param slug query string false "Tenant slug or subdomain"
// @Success 200 {object} models.TenantResponse
// @Failure 500 {object} models.TenantResponse
// @Router /api/v1/tenants/resolve [get]
func (h *TenantHandler) ResolveTenant(c *gin.Context) {
	req := services.ResolveRequest{
		HeaderTenantID: c.GetHeader("X-Tenant-ID"),
		PathSlug:       c.Query("slug"),
		UserID:         getUserID(c),
	}

	tenant, found, err := h.resolver.Resolve(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.TenantResponse{
			Success: false,
			Message: "Failed to resolve tenant: " + err.Error(),
		})
		return
	}

	// Not-found is a valid resolution outcome, not an error
	c.JSON(http.StatusOK, models.TenantResponse{
		Success: true,
		Data:    tenant,
		Found:   found,
	})
}

// GetTenantBySlug resolves a tenant from a URL slug
// @Summary Resolve a tenant by slug
// @Description Looks up a tenant by slug or subdomain. Unknown slugs return found=false with HTTP 200 so the storefront can render its not-found page.
// @Tags tenants
// @Produce json
// @Param slug path string true "Tenant slug or subdomain"
// @Success 200 {object} models.TenantResponse
// @Failure 500 {object} models.TenantResponse
// @Router /api/v1/tenants/by-slug/{slug} [get]
func (h *TenantHandler) GetTenantBySlug(c *gin.Context) {
	tenant, found, err := h.resolver.Resolve(c.Request.Context(), services.ResolveRequest{
		PathSlug: c.Param("slug"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.TenantResponse{
			Success: false,
			Message: "Failed to resolve tenant: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.TenantResponse{
		Success: true,
		Data:    tenant,
		Found:   found,
	})
}

// GetTenant fetches a single tenant by ID or slug
// @Summary Get a tenant
// @Description Fetches the tenant addressed by the path segment, accepting either a UUID or a slug. Unknown tenants return HTTP 404 with a structured body.
// @Tags tenants
// @Produce json
// @Param tenantId path string true "Tenant ID or slug"
// @Success 200 {object} models.TenantResponse
// @Failure 404 {object} models.TenantResponse
// @Failure 500 {object} models.TenantResponse
// @Router /api/v1/tenants/{tenantId} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	raw := c.Param("tenantId")

	req := services.ResolveRequest{PathSlug: raw}
	if _, err := uuid.Parse(raw); err == nil {
		req = services.ResolveRequest{HeaderTenantID: raw}
	}

	tenant, found, err := h.resolver.Resolve(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.TenantResponse{
			Success: false,
			Message: "Failed to get tenant: " + err.Error(),
		})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, models.TenantResponse{
			Success: false,
			Message: "Tenant not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.TenantResponse{
		Success: true,
		Data:    tenant,
		Found:   true,
	})
}

// HasTenant reports whether the authenticated user owns a tenant
// @Summary Check whether the user owns a tenant
// @Description Used by the admin shell to route between dashboard and onboarding.
// @Tags tenants
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.HasTenantResponse
// @Failure 400 {object} models.HasTenantResponse
// @Failure 500 {object} models.HasTenantResponse
// @Router /api/v1/users/{userId}/has-tenant [get]
func (h *TenantHandler) HasTenant(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, models.HasTenantResponse{Success: false})
		return
	}

	tenant, found, err := h.resolver.HasTenant(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.HasTenantResponse{Success: false})
		return
	}

	resp := models.HasTenantResponse{
		Success:   true,
		HasTenant: found,
	}
	if found {
		id := tenant.ID
		resp.TenantID = &id
	}
	c.JSON(http.StatusOK, resp)
}
