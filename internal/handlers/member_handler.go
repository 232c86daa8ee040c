package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentmap/talentmap-api/internal/middleware"
	"github.com/talentmap/talentmap-api/internal/services"
)

// MemberHandler serves endpoints about the signed-in member
type MemberHandler struct {
	service services.MemberServiceInterface
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(service services.MemberServiceInterface) *MemberHandler {
	return &MemberHandler{
		service: service,
	}
}

// GetStats handles GET /api/v1/me/stats
func (h *MemberHandler) GetStats(c *gin.Context) {
	session, err := middleware.GetMemberSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), session.ProfileID)
	if err != nil {
		respondAppError(c, err, "Failed to fetch member stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
