package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
)

// AuthMiddleware validates the session credential on every protected
// request and attaches the authenticated identity to the request context.
// The credential is read from the session cookie, falling back to a Bearer
// Authorization header for non-browser clients.
func AuthMiddleware(validator ports.SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := credentialFromRequest(c)
		if credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		session, err := validator.Validate(c.Request.Context(), credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		identity := &core.Identity{PublicKey: session.PublicKey}
		c.Request = c.Request.WithContext(core.WithIdentity(c.Request.Context(), identity))

		c.Next()
	}
}

func credentialFromRequest(c *gin.Context) string {
	if credential, err := c.Cookie(CookieName); err == nil && credential != "" {
		return credential
	}

	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
