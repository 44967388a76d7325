package routes

import (
	"github.com/gin-gonic/gin"

	"resource-catalog-api/internal/cache"
	"resource-catalog-api/internal/config"
	"resource-catalog-api/internal/handlers"
	"resource-catalog-api/internal/middleware"
	"resource-catalog-api/internal/pagination"
	"resource-catalog-api/internal/realtime"
	"resource-catalog-api/internal/store"
	"resource-catalog-api/internal/validation"
	"resource-catalog-api/internal/version"
)

// SetupRoutes assembles the router and the core objects it owns: the
// resource store, the page cache, the version gate and the event hub. The
// returned cleanup stops the cache sweeper; call it on shutdown.
func SetupRoutes(cfg config.Config) (*gin.Engine, func()) {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-API-Version")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Resource Catalog API is running",
		})
	})

	gate := version.NewGate(version.Config{
		Supported:     cfg.Version.Supported,
		Default:       cfg.Version.Default,
		Sunset:        cfg.Version.Sunset,
		SuccessorLink: cfg.Version.SuccessorLink,
	})
	resourceStore := store.New(validation.Fields)
	pages := cache.New[string, pagination.Page](cfg.CacheTTL())
	hub := realtime.NewHub()
	resources := handlers.NewResourceHandler(resourceStore, pages, pagination.Limits{
		Default: cfg.Pagination.DefaultLimit,
		Max:     cfg.Pagination.MaxLimit,
	}, hub)

	// Every /api operation passes the version gate first.
	api := ginRouter.Group("/api")
	api.Use(gate.Middleware())
	{
		api.POST("/login", handlers.Login)
		api.POST("/register", handlers.Register)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Resource endpoints
		protectedRoutes.GET("/resources", resources.ListResources)
		protectedRoutes.GET("/resources/:id", resources.GetResource)
		protectedRoutes.POST("/resources", resources.CreateResource)
		protectedRoutes.PATCH("/resources/:id", resources.UpdateResource)
		protectedRoutes.DELETE("/resources/:id", resources.DeleteResource)
		// Users endpoint
		protectedRoutes.GET("/users", handlers.GetAllUsers)
		// Event stream
		protectedRoutes.GET("/ws", handlers.WebSocketHandler(hub))
	}

	return ginRouter, pages.Close
}
