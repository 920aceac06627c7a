package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
	"github.com/luckyroll/walletgate/service"
)

// CookieName is the session credential cookie. HttpOnly keeps it away from
// page scripts; SameSite=Strict rejects it on cross-site requests.
const CookieName = "auth_token"

// genericAuthFailure is the only message clients see for any verification
// failure kind, so responses cannot be used as an oracle to distinguish a
// wrong key from a bad signature.
const genericAuthFailure = "verification failed"

// AuthHandlers contains HTTP handlers for auth endpoints.
type AuthHandlers struct {
	authService  *service.AuthService
	validator    ports.SessionValidator
	cookieSecure bool
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authService *service.AuthService, validator ports.SessionValidator, cookieSecure bool) *AuthHandlers {
	return &AuthHandlers{
		authService:  authService,
		validator:    validator,
		cookieSecure: cookieSecure,
	}
}

// Challenge handles the challenge request.
func (h *AuthHandlers) Challenge(c *gin.Context) {
	var req struct {
		PublicKey string `json:"public_key" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	challenge, err := h.authService.IssueChallenge(c.Request.Context(), req.PublicKey)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		case errors.Is(err, core.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unavailable, retry later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge_id": challenge.ID,
		"nonce":        challenge.Nonce,
	})
}

// Verify handles the signature verification request and, on success, sets
// the session cookie.
func (h *AuthHandlers) Verify(c *gin.Context) {
	var req struct {
		ChallengeID string `json:"challenge_id" binding:"required"`
		Signature   string `json:"signature" binding:"required"`
		PublicKey   string `json:"public_key" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	_, token, err := h.authService.Verify(c.Request.Context(), req.ChallengeID, req.Signature, req.PublicKey)
	if err != nil {
		switch {
		case core.IsAuthFailure(err):
			c.JSON(http.StatusUnauthorized, gin.H{"error": genericAuthFailure})
		case errors.Is(err, core.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		case errors.Is(err, core.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unavailable, retry later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	maxAge := int(h.authService.SessionTTL().Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, token, maxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports the authentication state of the ambient credential. It
// never fails: anything short of a valid credential degrades to
// authenticated=false.
func (h *AuthHandlers) Session(c *gin.Context) {
	credential, err := c.Cookie(CookieName)
	if err != nil || credential == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	session, err := h.validator.Validate(c.Request.Context(), credential)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"public_key":    session.PublicKey,
	})
}

// Logout clears the session cookie. The credential is not revoked
// server-side; it stays valid until its natural expiry.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if credential, err := c.Cookie(CookieName); err == nil && credential != "" {
		if session, err := h.validator.Validate(c.Request.Context(), credential); err == nil {
			h.authService.Logout(c.Request.Context(), session)
		}
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated identity.
func (h *AuthHandlers) Me(c *gin.Context) {
	identity := core.IdentityFromContext(c.Request.Context())
	if identity == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Identity not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"public_key": identity.PublicKey})
}

// Health is a liveness probe, exempt from authentication.
func (h *AuthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
