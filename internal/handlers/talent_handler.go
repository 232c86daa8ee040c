package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/internal/services"
)

// TalentHandler serves the public talent directory
type TalentHandler struct {
	service services.DirectoryServiceInterface
}

// NewTalentHandler creates a new TalentHandler
func NewTalentHandler(service services.DirectoryServiceInterface) *TalentHandler {
	return &TalentHandler{
		service: service,
	}
}

// Search handles GET /api/v1/talents
// Query: q, skill, language, available, verified, page, queryKey
func (h *TalentHandler) Search(c *gin.Context) {
	var query models.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid search parameters", err)
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid page number", err)
			return
		}
		page = parsed
	}

	result, err := h.service.Search(c.Request.Context(), query, page, c.Query("queryKey"))
	if err != nil {
		respondAppError(c, err, "Failed to search talents")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByID handles GET /api/v1/talents/:id
func (h *TalentHandler) GetByID(c *gin.Context) {
	profile, err := h.service.GetTalent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAppError(c, err, "Failed to fetch talent")
		return
	}

	c.JSON(http.StatusOK, profile)
}
