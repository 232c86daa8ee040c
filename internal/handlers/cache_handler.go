package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentmap/talentmap-api/pkg/logger"
	"go.uber.org/zap"
)

// ProfileCacheInvalidator reloads profile data after out-of-band edits
type ProfileCacheInvalidator interface {
	InvalidateCache()
}

// SkillStatsInvalidator drops the shared skill statistics snapshot
type SkillStatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CacheHandler exposes internal cache maintenance. Profile editing happens in
// another service, which calls this after a write.
type CacheHandler struct {
	profiles ProfileCacheInvalidator
	stats    SkillStatsInvalidator
}

// NewCacheHandler creates a new CacheHandler. stats may be nil when no shared cache is configured.
func NewCacheHandler(profiles ProfileCacheInvalidator, stats SkillStatsInvalidator) *CacheHandler {
	return &CacheHandler{
		profiles: profiles,
		stats:    stats,
	}
}

// Invalidate handles POST /api/v1/internal/cache/invalidate
func (h *CacheHandler) Invalidate(c *gin.Context) {
	h.profiles.InvalidateCache()

	if h.stats != nil {
		if err := h.stats.Invalidate(c.Request.Context()); err != nil {
			logger.Warn("Failed to invalidate skill stats", zap.Error(err))
			respondError(c, http.StatusBadGateway, "Failed to invalidate skill stats", err)
			return
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true})
}
