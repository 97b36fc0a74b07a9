package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dimos082/website-monitor/internal/service"
)

// BasicAuthMiddleware returns middleware that enables HTTP Basic Auth.
func BasicAuthMiddleware(us service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Basic ") {
			c.Header("WWW-Authenticate", `Basic realm="Restricted"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing or not Basic"})
			return
		}
		payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid base64 credentials"})
			return
		}
		parts := strings.SplitN(string(payload), ":", 2)
		if len(parts) != 2 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid basic auth format"})
			return
		}
		email, password := parts[0], parts[1]
		user, err := us.Authenticate(email, password)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// AuthMiddleware accepts either Basic or Bearer credentials on protected routes.
func AuthMiddleware(ts service.TokenService, us service.UserService, userLookup service.UserLookup) gin.HandlerFunc {
	basic := BasicAuthMiddleware(us)
	bearer := JWTAuthMiddleware(ts, userLookup)
	return func(c *gin.Context) {
		if strings.HasPrefix(c.GetHeader("Authorization"), "Basic ") {
			basic(c)
			return
		}
		bearer(c)
	}
}

// JWTAuthMiddleware returns middleware that enforces Bearer JWT Auth.
func JWTAuthMiddleware(ts service.TokenService, userLookup service.UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing or not Bearer"})
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		claims, err := ts.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		blacklisted, err := ts.IsBlacklisted(claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not verify token"})
			return
		}
		if blacklisted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
			return
		}
		if _, err := userLookup.FindByID(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user no longer exists"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("jti", claims.ID)
		c.Next()
	}
}
