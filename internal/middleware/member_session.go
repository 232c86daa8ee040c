package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talentmap/talentmap-api/internal/models"
	"github.com/talentmap/talentmap-api/pkg/jwt"
)

const (
	// MemberSessionCookieName is the name of the session cookie
	MemberSessionCookieName = "member_session"

	// MemberSessionContextKey is the key used to store session in context
	MemberSessionContextKey = "member_session"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// MemberSessionMiddleware validates the member JWT and adds the session to
// the context. The token is read from the Authorization bearer header first,
// then from the session cookie.
func MemberSessionMiddleware(tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c)
		if token == "" {
			_ = c.Error(fmt.Errorf("missing session token")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			if fromCookie {
				ClearSessionCookie(c, cookieDomain, cookieSecure)
			}

			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		session := &models.MemberSession{
			ProfileID: claims.ProfileID,
			Email:     claims.Email,
			Name:      claims.Name,
			ExpiresAt: claims.ExpiresAt.Unix(),
			IssuedAt:  claims.IssuedAt.Unix(),
		}

		c.Set(MemberSessionContextKey, session)
		c.Next()
	}
}

// GetMemberSession extracts session from context
func GetMemberSession(c *gin.Context) (*models.MemberSession, error) {
	val, exists := c.Get(MemberSessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.MemberSession)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// ClearSessionCookie clears the member session cookie
func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		MemberSessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

func sessionToken(c *gin.Context) (token string, fromCookie bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		if bearer, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(bearer), false
		}
	}

	cookie, err := c.Cookie(MemberSessionCookieName)
	if err != nil {
		return "", false
	}
	return cookie, true
}
