package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-eats/canteen-app/utils"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// AuthMiddleware validates the bearer token and stores the caller in the
// gin context. Browsers cannot set headers on a websocket handshake, so a
// ?token= query parameter is accepted as well.
func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				utils.RespondErrorCode(c, http.StatusUnauthorized, "unauthorized", errors.New("invalid authorization header format"))
				c.Abort()
				return
			}
			token = strings.TrimPrefix(header, "Bearer ")
		}

		if token == "" {
			utils.RespondErrorCode(c, http.StatusUnauthorized, "unauthorized", errors.New("authorization token missing"))
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(token)
		if err != nil {
			utils.RespondErrorCode(c, http.StatusUnauthorized, "unauthorized", err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
