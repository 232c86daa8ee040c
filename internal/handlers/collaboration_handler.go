package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentmap/talentmap-api/internal/middleware"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/services"
)

// CollaborationHandler handles the member collaboration endpoints.
// Every route runs behind MemberSessionMiddleware.
type CollaborationHandler struct {
	service services.CollaborationServiceInterface
}

// NewCollaborationHandler creates a new CollaborationHandler
func NewCollaborationHandler(service services.CollaborationServiceInterface) *CollaborationHandler {
	return &CollaborationHandler{
		service: service,
	}
}

// List handles GET /api/v1/collaborations
// Returns the member's requests split into received and sent
func (h *CollaborationHandler) List(c *gin.Context) {
	session, err := middleware.GetMemberSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	lists, err := h.service.List(c.Request.Context(), session.ProfileID)
	if err != nil {
		respondAppError(c, err, "Failed to fetch collaborations")
		return
	}

	c.JSON(http.StatusOK, lists)
}

// GetByID handles GET /api/v1/collaborations/:id
func (h *CollaborationHandler) GetByID(c *gin.Context) {
	session, err := middleware.GetMemberSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	request, err := h.service.Get(c.Request.Context(), c.Param("id"), session.ProfileID)
	if err != nil {
		respondAppError(c, err, "Failed to fetch collaboration")
		return
	}

	c.JSON(http.StatusOK, request)
}

// Create handles POST /api/v1/collaborations
func (h *CollaborationHandler) Create(c *gin.Context) {
	session, err := middleware.GetMemberSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var payload models.CreateCollaborationRequest
	if bindErr := c.ShouldBindJSON(&payload); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", ParseValidationErrors(bindErr), bindErr)
		return
	}

	request, err := h.service.Create(c.Request.Context(), session.ProfileID, &payload)
	if err != nil {
		respondAppError(c, err, "Failed to create collaboration")
		return
	}

	c.JSON(http.StatusCreated, request)
}

// Accept handles POST /api/v1/collaborations/:id/accept
func (h *CollaborationHandler) Accept(c *gin.Context) {
	h.transition(c, h.service.Accept, "Failed to accept collaboration")
}

// Decline handles POST /api/v1/collaborations/:id/decline
func (h *CollaborationHandler) Decline(c *gin.Context) {
	h.transition(c, h.service.Decline, "Failed to decline collaboration")
}

// Complete handles POST /api/v1/collaborations/:id/complete
func (h *CollaborationHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete, "Failed to complete collaboration")
}

type transitionFunc func(ctx context.Context, requestID, actorID string) (*models.CollaborationRequest, error)

func (h *CollaborationHandler) transition(c *gin.Context, apply transitionFunc, failure string) {
	session, err := middleware.GetMemberSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	request, err := apply(c.Request.Context(), c.Param("id"), session.ProfileID)
	if err != nil {
		respondAppError(c, err, failure)
		return
	}

	c.JSON(http.StatusOK, request)
}
