package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tesseract-hub/storefront-service/internal/health"
	"github.com/tesseract-hub/storefront-service/internal/models"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

// DraftHandler handles HTTP requests for configuration drafts
type DraftHandler struct {
	service *services.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(service *services.DraftService) *DraftHandler {
	return &DraftHandler{service: service}
}

// parseConfigurationID reads the configuration scope from query or header,
// defaulting to the tenant itself when the admin UI manages a single
// configuration per tenant.
func parseConfigurationID(c *gin.Context, tenantID uuid.UUID) uuid.UUID {
	raw := c.Query("configurationId")
	if raw == "" {
		raw = c.GetHeader("X-Configuration-ID")
	}
	if raw == "" {
		return tenantID
	}
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	return tenantID
}

// ListDrafts lists the tenant's drafts
// @Summary List drafts
// @Description Lists the tenant's drafts, optionally filtered by status, newest first.
// @Tags drafts
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param status query string false "Filter by status (draft, pending, published, scheduled, archived)"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {object} models.DraftListResponse
// @Failure 400 {object} models.DraftListResponse
// @Failure 500 {object} models.DraftListResponse
// @Router /api/v1/tenants/{tenantId}/drafts [get]
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.DraftListResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	offset, limit := parsePagination(c)
	drafts, total, err := h.service.List(c.Request.Context(), tenantID, models.DraftStatus(c.Query("status")), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.DraftListResponse{
			Success: false,
			Message: "Failed to list drafts: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.DraftListResponse{
		Success: true,
		Items:   drafts,
		Total:   total,
	})
}

// GetDraft returns one draft
// @Summary Get a draft
// @Tags drafts
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	draft, err := h.service.Get(c.Request.Context(), tenantID, draftID)
	if err != nil {
		respondError(c, err, "Failed to get draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{Success: true, Data: draft})
}

// CreateDraft creates a new draft
// @Summary Create a draft
// @Description Creates a new draft in status "draft".
// @Tags drafts
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param request body models.CreateDraftRequest true "Draft"
// @Success 201 {object} models.DraftResponse
// @Failure 400 {object} models.DraftResponse
// @Failure 500 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.DraftResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return
	}

	var req models.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.DraftResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	draft, err := h.service.Create(c.Request.Context(), tenantID, parseConfigurationID(c, tenantID), &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to create draft")
		return
	}

	c.JSON(http.StatusCreated, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Draft created successfully",
	})
}

// UpdateDraft edits a draft
// @Summary Update a draft
// @Description Edits a draft. Only drafts in status "draft" are editable; others return 409.
// @Tags drafts
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Param request body models.UpdateDraftRequest true "Changes"
// @Success 200 {object} models.DraftResponse
// @Failure 400 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Failure 409 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId} [patch]
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	var req models.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.DraftResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	draft, err := h.service.Update(c.Request.Context(), tenantID, draftID, &req, getUserID(c))
	if err != nil {
		respondError(c, err, "Failed to update draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Draft updated successfully",
	})
}

// DeleteDraft deletes a draft
// @Summary Delete a draft
// @Description Deletes a draft. Archived drafts are terminal and cannot be deleted.
// @Tags drafts
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Failure 409 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, draftID); err != nil {
		respondError(c, err, "Failed to delete draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Message: "Draft deleted successfully",
	})
}

// PublishDraft publishes a draft immediately
// @Summary Publish a draft
// @Description Publishes a draft: the draft becomes "published" and an immutable version snapshot is cut. Only drafts in status "draft" can be published.
// @Tags drafts
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Failure 409 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId}/publish [post]
func (h *DraftHandler) PublishDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	draft, _, err := h.service.Publish(c.Request.Context(), tenantID, draftID, getUserID(c))
	health.RecordDraftTransition("publish", err == nil)
	if err != nil {
		respondError(c, err, "Failed to publish draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Draft published successfully",
	})
}

// ScheduleDraft schedules a draft for future publication
// @Summary Schedule a draft
// @Description Schedules a draft for future publication. The timestamp must be strictly in the future; invalid times are rejected before any state changes.
// @Tags drafts
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Param request body models.ScheduleDraftRequest true "Schedule time"
// @Success 200 {object} models.DraftResponse
// @Failure 400 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Failure 409 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId}/schedule [post]
func (h *DraftHandler) ScheduleDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	var req models.ScheduleDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.DraftResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	draft, err := h.service.Schedule(c.Request.Context(), tenantID, draftID, req.ScheduledAt, getUserID(c))
	health.RecordDraftTransition("schedule", err == nil)
	if err != nil {
		respondError(c, err, "Failed to schedule draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Draft scheduled successfully",
	})
}

// UnscheduleDraft cancels a scheduled publication
// @Summary Unschedule a draft
// @Tags drafts
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Failure 409 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId}/unschedule [post]
func (h *DraftHandler) UnscheduleDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	draft, err := h.service.Unschedule(c.Request.Context(), tenantID, draftID, getUserID(c))
	health.RecordDraftTransition("unschedule", err == nil)
	if err != nil {
		respondError(c, err, "Failed to unschedule draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Draft unscheduled successfully",
	})
}

// SubmitDraft moves a draft into review
// @Summary Submit a draft for review
// @Tags drafts
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Failure 409 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId}/submit [post]
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	draft, err := h.service.Submit(c.Request.Context(), tenantID, draftID, getUserID(c))
	health.RecordDraftTransition("submit", err == nil)
	if err != nil {
		respondError(c, err, "Failed to submit draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Draft submitted for review",
	})
}

// ReturnDraft moves a pending draft back to editable state
// @Summary Return a pending draft to editing
// @Tags drafts
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Failure 409 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId}/return [post]
func (h *DraftHandler) ReturnDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	draft, err := h.service.ReturnToDraft(c.Request.Context(), tenantID, draftID, getUserID(c))
	health.RecordDraftTransition("return", err == nil)
	if err != nil {
		respondError(c, err, "Failed to return draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Draft returned to editing",
	})
}

// ArchiveDraft archives a draft
// @Summary Archive a draft
// @Description Moves a draft to its terminal archived state. Allowed from any state.
// @Tags drafts
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.DraftResponse
// @Router /api/v1/tenants/{tenantId}/drafts/{draftId}/archive [post]
func (h *DraftHandler) ArchiveDraft(c *gin.Context) {
	tenantID, draftID, ok := h.parseScope(c)
	if !ok {
		return
	}

	draft, err := h.service.Archive(c.Request.Context(), tenantID, draftID, getUserID(c))
	health.RecordDraftTransition("archive", err == nil)
	if err != nil {
		respondError(c, err, "Failed to archive draft")
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Data:    draft,
		Message: "Draft archived successfully",
	})
}

func (h *DraftHandler) parseScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := parseTenantID(c)
	if err != nil || tenantID == uuid.Nil {
		c.JSON(http.StatusBadRequest, models.DraftResponse{
			Success: false,
			Message: "Tenant ID is required",
		})
		return uuid.Nil, uuid.Nil, false
	}
	draftID, ok := parseUUIDParam(c, "draftId")
	if !ok {
		c.JSON(http.StatusBadRequest, models.DraftResponse{
			Success: false,
			Message: "Invalid draft ID",
		})
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, draftID, true
}
