package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authorization header is required",
				"error":   "Missing authorization token",
			})
			c.Abort()
			return
		}

		userID, email, err := parseToken(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("email", email)
		c.Next()
	}
}

// OptionalAuthMiddleware sets user_id when a valid token is present but
// never aborts: recipe and user reads serve anonymous callers, with all
// per-user flags reported as false.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			if userID, email, err := parseToken(authHeader); err == nil {
				c.Set("user_id", userID)
				c.Set("email", email)
			}
		}
		c.Next()
	}
}

func parseToken(authHeader string) (uint, string, error) {
	// Expected format: Bearer {token}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return 0, "", fmt.Errorf("use format: Bearer {token}")
	}

	tokenString := parts[1]
	jwtSecret := []byte(os.Getenv("JWT_SECRET_KEY"))

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("token validation failed")
	}

	userIDClaim, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("token is missing user_id claim")
	}
	email, _ := claims["email"].(string)

	return uint(userIDClaim), email, nil
}
