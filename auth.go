package main

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a pre-computed bcrypt hash compared against when no passcode
// is configured, so login takes the same time either way.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// authEnabled reports whether a passcode has been set with cmd/set-passcode.
func (h *Handler) authEnabled() bool {
	return h.passcodeHash != "" && h.token != ""
}

// login checks the passcode and returns the access token.
// POST /api/login (public). Body: { "passcode": "..." }.
// When no passcode is configured every request is already allowed and login
// returns 404.
func (h *Handler) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	hashToCheck := string(dummyHash)
	if h.authEnabled() {
		hashToCheck = h.passcodeHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Passcode))

	if !h.authEnabled() {
		apiError(c, http.StatusNotFound, "no passcode configured")
		return
	}
	if compareErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid passcode")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": h.token})
}

// authMiddleware validates the Bearer token, or the token query parameter on
// WebSocket upgrades. It lets everything through when auth is disabled.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.authEnabled() {
			c.Next()
			return
		}

		token := c.Query("token")
		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
				c.Abort()
				return
			}
			token = strings.TrimPrefix(header, "Bearer ")
		}
		if token == "" {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Next()
	}
}
