package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/seat-reservation/pkg/auth"
)

const identityKey = "identity"

// Identity проверяет Bearer-токен и кладет (userID, isAdmin) в контекст.
// Ядро доверяет этим данным и не перепроверяет их
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		identity, err := auth.ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFromContext достает личность вызывающего из контекста запроса
func IdentityFromContext(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok
}
