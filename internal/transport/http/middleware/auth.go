package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gotodo/internal/pkg/jwtutil"
	"gotodo/internal/repository"
	"gotodo/internal/transport/http/response"
)

const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "user_email"
)

// AuthRequired gates a route behind a bearer token. A request is forwarded
// only when the header carries a token whose signature and expiry check out
// and whose subject still exists in the store; the resolved identity is then
// attached to the gin context for handlers.
func AuthRequired(secret string, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if authHeader == "" || !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, "access token required")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		// Token validity does not imply the user still exists.
		user, err := users.GetByID(claims.UserID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "internal server error")
			c.Abort()
			return
		}
		if user == nil {
			response.Error(c, http.StatusUnauthorized, "user not found")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextEmailKey, user.Email)
		c.Next()
	}
}

// CurrentUser returns the identity the auth gate attached to the request.
func CurrentUser(c *gin.Context) (uint, string, bool) {
	idAny, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, "", false
	}
	id, ok := idAny.(uint)
	if !ok {
		return 0, "", false
	}
	email, _ := c.Get(ContextEmailKey)
	emailStr, _ := email.(string)
	return id, emailStr, true
}
