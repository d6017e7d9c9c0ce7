package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/superstudio/showcase-api/internal/service"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
	"github.com/superstudio/showcase-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the verified session.
const ContextSessionKey = "currentSession"

// Session protects routes by requiring a valid session token.
func Session(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		session, err := authService.ValidateSession(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}
