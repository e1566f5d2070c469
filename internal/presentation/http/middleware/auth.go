package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-api/internal/presentation/http/dto/response"
	"github.com/sangkips/sales-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID    = "user_id"
	ContextUsername  = "username"
	ContextUserEmail = "user_email"
)

// AuthMiddleware creates a JWT authentication middleware. The token is read
// from the Authorization header and, failing that, from the named cookie.
func AuthMiddleware(jwtManager *utils.JWTManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok && cookieName != "" {
			if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
				tokenString, ok = cookie, true
			}
		}
		if !ok {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserEmail, claims.Email)

		c.Next()
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// ok is false when the header is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
