package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether one dependency is usable
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	profileCacheReady func() bool
	checks            map[string]HealthCheck
}

// NewHealthHandler creates a HealthHandler. checks run on every call;
// any failure marks the service unavailable.
func NewHealthHandler(profileCacheReady func() bool, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{
		profileCacheReady: profileCacheReady,
		checks:            checks,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if h.profileCacheReady != nil && !h.profileCacheReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "profile cache not initialized",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			attachError(c, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": name + " check failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
