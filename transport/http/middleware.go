package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chainscore/walletauth/service"
)

// ContextAddressKey is the gin context key holding the authenticated wallet
// address.
const ContextAddressKey = "walletAddress"

// AuthMiddleware validates the bearer token and resolves the wallet address
// into the request context. Downstream authorization logic reads the address
// from there; the nonce store is never touched on this path.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")

		address, err := authService.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextAddressKey, address)
		c.Next()
	}
}
