package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesseract-hub/storefront-service/internal/services"
)

// parseTenantID parses tenant ID from path parameter or header, supporting both UUID and string formats
func parseTenantID(c *gin.Context) (uuid.UUID, error) {
	tenantIDStr := c.Param("tenantId")
	if tenantIDStr == "" {
		tenantIDStr = c.GetHeader("X-Tenant-ID")
	}

	if tenantIDStr == "" {
		return uuid.Nil, nil
	}

	// Try to parse as UUID first
	tenantID, err := uuid.Parse(tenantIDStr)
	if err != nil {
		// Generate a deterministic UUID from the tenant string
		namespace := uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
		tenantID = uuid.NewSHA1(namespace, []byte(tenantIDStr))
	}

	return tenantID, nil
}

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// getUserID extracts user ID from context
func getUserID(c *gin.Context) *uuid.UUID {
	if userIDStr, exists := c.Get("user_id"); exists {
		if id, err := uuid.Parse(userIDStr.(string)); err == nil {
			return &id
		}
	}
	return nil
}

// getPreviewToken extracts the preview session token from context
func getPreviewToken(c *gin.Context) string {
	if token, exists := c.Get("preview_token"); exists {
		if s, ok := token.(string); ok {
			return s
		}
	}
	return ""
}

// parsePagination reads offset/limit query params with sane defaults
func parsePagination(c *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}

// respondError maps service errors to HTTP statuses with the standard
// envelope. Not-found and validation outcomes are client-facing; anything
// unrecognized is a 500.
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case services.IsValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message + ": " + err.Error(),
	})
}
