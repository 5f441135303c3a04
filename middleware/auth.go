package middleware

import (
	"net/http"
	"strings"

	"franquia-backend/models"
	"franquia-backend/utils"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := parts[1]
		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		if claims.FranchiseID != nil {
			c.Set("franchise_id", *claims.FranchiseID)
		}
		c.Next()
	}
}

// FranchisorMiddleware restricts a route to the network operator.
func FranchisorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.RoleFranchisor {
			c.JSON(http.StatusForbidden, gin.H{"error": "Franchisor access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// FranchiseeMiddleware requires a franchisee with a franchise bound to the token.
func FranchiseeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role != models.RoleFranchisee {
			c.JSON(http.StatusForbidden, gin.H{"error": "Franchisee access required"})
			c.Abort()
			return
		}

		if _, exists := c.Get("franchise_id"); !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "No franchise associated with this account"})
			c.Abort()
			return
		}

		c.Next()
	}
}
