package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

// PermissionHandler handles HTTP requests for role assignments
type PermissionHandler struct {
	service *services.PermissionService
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(service *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{service: service}
}

// ListPermissions lists the tenant's role assignments
// @Summary List permissions
// @Tags permissions
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {object} models.PermissionListResponse
// @Failure 400 {object} models.PermissionListResponse
// @Failure 500 {object} models.PermissionListResponse
// @Router /api/v1/tenants/{tenantId}/permissions [get]
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.PermissionListResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	offset, limit := parsePagination(c)
	permissions, total, err := h.service.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.PermissionListResponse{
			Success: false,
			Message: "Failed to list permissions: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PermissionListResponse{
		Success: true,
		Items:   permissions,
		Total:   total,
	})
}

// GrantPermission assigns a role to a user
// @Summary Grant a permission
// @Description Assigns or replaces a user's role within the tenant.
// @Tags permissions
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body models.CreatePermissionRequest true "Assignment"
// @Success 201 {object} models.PermissionResponse
// @Failure 400 {object} models.PermissionResponse
// @Router /api/v1/tenants/{tenantId}/permissions [post]
func (h *PermissionHandler) GrantPermission(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.PermissionResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	var req models.CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.PermissionResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	permission, err := h.service.Grant(c.Request.Context(), tenantID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to grant permission")
		return
	}

	c.JSON(http.StatusCreated, models.PermissionResponse{
		Success: true,
		Data:    permission,
		Message: "Permission granted successfully",
	})
}

// UpdatePermission changes a user's role or overrides
// @Summary Update a permission
// @Tags permissions
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param userId path string true "User ID"
// @Param request body models.UpdatePermissionRequest true "Changes"
// @Success 200 {object} models.PermissionResponse
// @Failure 400 {object} models.PermissionResponse
// @Failure 404 {object} models.PermissionResponse
// @Router /api/v1/tenants/{tenantId}/permissions/{userId} [patch]
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	tenantID, userID, ok := h.parseScope(c)
	if !ok {
		return
	}

	var req models.UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.PermissionResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	permission, err := h.service.Update(c.Request.Context(), tenantID, userID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to update permission")
		return
	}

	c.JSON(http.StatusOK, models.PermissionResponse{
		Success: true,
		Data:    permission,
		Message: "Permission updated successfully",
	})
}

// RevokePermission removes a user's assignment
// @Summary Revoke a permission
// @Description Removes a user's role assignment, dropping them back to viewer access.
// @Tags permissions
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param userId path string true "User ID"
// @Success 200 {object} models.PermissionResponse
// @Failure 400 {object} models.PermissionResponse
// @Router /api/v1/tenants/{tenantId}/permissions/{userId} [delete]
func (h *PermissionHandler) RevokePermission(c *gin.Context) {
	tenantID, userID, ok := h.parseScope(c)
	if !ok {
		return
	}

	if err := h.service.Revoke(c.Request.Context(), tenantID, userID); err != nil {
		respondError(c, err, "Failed to revoke permission")
		return
	}

	c.JSON(http.StatusOK, models.PermissionResponse{
		Success: true,
		Message: "Permission revoked successfully",
	})
}

// CheckPermission answers whether a user may perform an action
// @Summary Check a permission
// @Tags permissions
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param userId path string true "User ID"
// @Param action query string true "Action (view, edit, publish, manage_assets, manage_permissions)"
// @Success 200 {object} models.PermissionResponse
// @Failure 400 {object} models.PermissionResponse
// @Router /api/v1/tenants/{tenantId}/permissions/{userId}/check [get]
func (h *PermissionHandler) CheckPermission(c *gin.Context) {
	tenantID, userID, ok := h.parseScope(c)
	if !ok {
		return
	}

	action := models.Action(c.Query("action"))
	if action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "action query param is required"})
		return
	}

	allowed, err := h.service.Can(c.Request.Context(), tenantID, userID, action)
	if err != nil {
		respondError(c, err, "Failed to check permission")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"allowed": allowed,
	})
}

func (h *PermissionHandler) parseScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.PermissionResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, models.PermissionResponse{
			Success: false,
			Message: "Invalid user ID",
		})
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, true
}
