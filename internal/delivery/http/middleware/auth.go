package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/usecase/auth"
)

// TokenVerifier checks a bearer token and returns the caller identity
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	log      *logger.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		log:      log.With("middleware", "auth"),
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// identity in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}

		id, err := m.verifier.Verify(token)
		if err != nil {
			m.log.Debug("Token rejected", "path", c.FullPath(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid token",
			})
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}
