package middleware

import (
	"net/http"
	"strings"

	"cashback-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware resolves the authenticated user id from a bearer
// token and stores it on the context. Identity management itself is an
// external collaborator; this service only needs the user id.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Missing authorization token", nil, http.StatusUnauthorized))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Malformed authorization header", nil, http.StatusUnauthorized))
			return
		}

		token, err := common.ValidateToken(parts[1])
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid token", nil, http.StatusUnauthorized))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid token claims", nil, http.StatusUnauthorized))
			return
		}

		var userId int
		if val, ok := claims["user_id"].(float64); ok {
			userId = int(val)
		}
		role, _ := claims["role"].(string)

		c.Set("userId", userId)
		c.Set("role", role)

		c.Next()
	}
}

// AdminOnly guards the admin approval surface. Admin approval is the
// authoritative money-movement step, so it never rides on the public
// webhook routes.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("Admin access required", nil, http.StatusForbidden))
			return
		}
		c.Next()
	}
}

// UserId returns the authenticated user id set by AuthMiddleware.
func UserId(c *gin.Context) int {
	if val, exists := c.Get("userId"); exists {
		if id, ok := val.(int); ok {
			return id
		}
	}
	return 0
}
