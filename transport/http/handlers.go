package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chainscore/walletauth/core"
	"github.com/chainscore/walletauth/service"
)

// AuthHandlers contains the HTTP handlers for the auth endpoints.
type AuthHandlers struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authService *service.AuthService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
	}
}

// Challenge issues a fresh nonce and the message the wallet must sign.
func (h *AuthHandlers) Challenge(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	challenge, err := h.authService.GenerateNonce(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
			return
		}
		h.logger.Error("failed to create challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nonce":      challenge.Nonce,
		"message":    challenge.Message,
		"expires_at": challenge.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Login verifies a signed challenge and returns a session token. The four
// internal verification failures are all reported as one generic 401; which
// check rejected the attempt is logged server-side only.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req struct {
		Address   string `json:"address" binding:"required"`
		Message   string `json:"message" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.authService.VerifySignature(c.Request.Context(), req.Address, req.Message, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		case core.IsAuthFailure(err):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":          session.Token,
		"token_type":     "bearer",
		"expires_in":     int(time.Until(session.ExpiresAt).Seconds()),
		"wallet_address": session.Address,
	})
}

// Revoke invalidates an outstanding, never-consumed challenge.
func (h *AuthHandlers) Revoke(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	revoked, err := h.authService.RevokeNonce(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
			return
		}
		h.logger.Error("failed to revoke challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"revoked": revoked})
}

// Me returns the wallet address of the authenticated caller.
func (h *AuthHandlers) Me(c *gin.Context) {
	address, exists := c.Get(ContextAddressKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "wallet not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// Authorize confirms the caller holds a valid session token.
func (h *AuthHandlers) Authorize(c *gin.Context) {
	address, exists := c.Get(ContextAddressKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "wallet not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": true,
		"address":    address,
	})
}
