package auth

import (
	"errors"
	"strings"

	"friendchat/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContextIdentityKey is where the middleware stores the verified caller
// identity in the gin context.
const ContextIdentityKey = "identity"

// Middleware extracts "Authorization: Bearer <token>", verifies it and
// stores the caller identity in the context. Missing and invalid
// credentials are reported distinctly.
func Middleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing credential")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "authorization header must be of the form Bearer <token>")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := v.Verify(token)
		if err != nil {
			if errors.Is(err, ErrMissingCredential) {
				response.Unauthorized(c, "missing credential")
			} else {
				response.Unauthorized(c, "invalid or expired credential")
			}
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the verified caller identity, or "" when the
// middleware did not run.
func IdentityFromContext(c *gin.Context) string {
	if identity, exists := c.Get(ContextIdentityKey); exists {
		if id, ok := identity.(string); ok {
			return id
		}
	}
	return ""
}
