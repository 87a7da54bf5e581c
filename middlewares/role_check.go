package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-eats/canteen-app/utils"
)

// RequireRoles lets the request through only when the authenticated role is one of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			utils.RespondErrorCode(c, http.StatusUnauthorized, "unauthorized", errors.New("unauthorized"))
			c.Abort()
			return
		}

		if _, ok := allowed[role]; !ok {
			utils.RespondErrorCode(c, http.StatusForbidden, "forbidden", errors.New("insufficient role"))
			c.Abort()
			return
		}

		c.Next()
	}
}
