package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// StatusForError maps an application error kind to its HTTP status
func StatusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindIllegalTransition, apperrors.KindStoreConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondAppError writes err with the status of its kind. Internal errors
// are reported with fallback so no storage detail leaks to clients.
func respondAppError(c *gin.Context, err error, fallback string) {
	status := StatusForError(err)
	if status == http.StatusInternalServerError {
		respondError(c, status, fallback, err)
		return
	}

	respondErrorWithDetails(c, status, http.StatusText(status), gin.H{
		"kind":    apperrors.KindOf(err),
		"message": err.Error(),
	}, err)
}
