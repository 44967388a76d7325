package main

import (
	"fmt"
	"log"

	"resource-catalog-api/internal/config"
	"resource-catalog-api/internal/database"
	"resource-catalog-api/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Init account database
	database.InitDB()

	// Setup the routes (public and protected routes)
	ginRoutes, cleanup := routes.SetupRoutes(cfg)
	defer cleanup()

	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  POST   /api/register")
	log.Println("  GET    /api/resources")
	log.Println("  GET    /api/resources/:id")
	log.Println("  POST   /api/resources")
	log.Println("  PATCH  /api/resources/:id")
	log.Println("  DELETE /api/resources/:id")
	log.Println("  GET    /api/users")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
