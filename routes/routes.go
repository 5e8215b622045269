package routes

import (
	"github.com/JYu1999/jyu-blog/controllers"
	"github.com/JYu1999/jyu-blog/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	blogController := controllers.NewBlogController(db)
	aboutController := controllers.NewAboutController(db)
	authController := controllers.NewAuthController(db)
	adminPostController := controllers.NewAdminPostController(db)
	adminTaxonomyController := controllers.NewAdminTaxonomyController(db)
	adminSettingController := controllers.NewAdminSettingController(db)

	// Public routes
	SetupBlogRoutes(r, blogController, aboutController)

	// Admin auth
	r.POST("/api/admin/login", authController.Login)
	r.POST("/api/admin/refresh-token", authController.RefreshToken)

	// Protected admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.POST("/logout", authController.Logout)

		SetupAdminRoutes(admin, adminPostController, adminTaxonomyController, adminSettingController)
	}
}
