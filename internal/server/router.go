package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteRegistrar defines anything that can wire its routes into a Gin group.
type RouteRegistrar interface {
	// RegisterRoutes should add one or more routes on the provided router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteRegistrar wires routes that sit behind auth middleware.
type ProtectedRouteRegistrar interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup)
}

// RegisterRoutes wires up health, swagger, public, and protected routes.
func RegisterRoutes(
	r *gin.Engine,
	authMiddleware gin.HandlerFunc,
	publicRegs []RouteRegistrar,
	protectedRegs []ProtectedRouteRegistrar,
) {
	// Global middleware
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Website Monitor API!"})
	})
	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public API v1
	public := r.Group("/api/v1")
	for _, reg := range publicRegs {
		reg.RegisterRoutes(public)
	}

	// Protected API v1
	protected := r.Group("/api/v1")
	protected.Use(authMiddleware)
	for _, reg := range protectedRegs {
		reg.RegisterProtectedRoutes(protected)
	}
}
