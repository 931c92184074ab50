package httpserver

import (
	"net/http"
	"strings"

	"alumnimart/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userCtxKey  = "authUser"
	tokenCtxKey = "authToken"
)

// authRequired validates the bearer token and stores the user and raw token
// on the gin context.
func authRequired(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			respondFail(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		u, err := accounts.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondFail(c, http.StatusUnauthorized, "invalid or expired session")
			c.Abort()
			return
		}
		c.Set(userCtxKey, *u)
		c.Set(tokenCtxKey, token)
		c.Next()
	}
}

// requireSuperAdmin must run after authRequired.
func requireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u.Role != domain.RoleSuperAdmin {
			respondFail(c, http.StatusForbidden, "you do not have permission to do this")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) domain.User {
	if v, ok := c.Get(userCtxKey); ok {
		if u, ok := v.(domain.User); ok {
			return u
		}
	}
	return domain.User{}
}

func currentToken(c *gin.Context) string {
	return c.GetString(tokenCtxKey)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
