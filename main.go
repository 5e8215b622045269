package main

import (
	"log"
	"os"

	"github.com/JYu1999/jyu-blog/config"
	"github.com/JYu1999/jyu-blog/database"
	"github.com/JYu1999/jyu-blog/middleware"
	"github.com/JYu1999/jyu-blog/routes"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db := config.InitDB()

	if os.Getenv("SEED_DB") == "true" {
		if err := database.Seed(db); err != nil {
			log.Fatal("Failed to seed database:", err)
		}
	}

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Session store backs the per-visitor locale preference
	store := cookie.NewStore(config.SessionSecret())
	r.Use(sessions.Sessions("jyu_blog_session", store))
	r.Use(middleware.LocaleMiddleware())

	// Initialize routes
	routes.SetupRoutes(r, db)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
