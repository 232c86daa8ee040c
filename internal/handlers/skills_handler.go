package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentmap/talentmap-api/internal/services"
)

// SkillsHandler serves the aggregated skill views
type SkillsHandler struct {
	service services.SkillsServiceInterface
}

// NewSkillsHandler creates a new SkillsHandler
func NewSkillsHandler(service services.SkillsServiceInterface) *SkillsHandler {
	return &SkillsHandler{
		service: service,
	}
}

// GetStats handles GET /api/v1/skills
func (h *SkillsHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondAppError(c, err, "Failed to aggregate skills")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skills": stats,
		"total":  len(stats),
	})
}

// GetSkillMap handles GET /api/v1/skills/map
func (h *SkillsHandler) GetSkillMap(c *gin.Context) {
	skillMap, err := h.service.SkillMap(c.Request.Context())
	if err != nil {
		respondAppError(c, err, "Failed to build skill map")
		return
	}

	c.JSON(http.StatusOK, skillMap)
}
