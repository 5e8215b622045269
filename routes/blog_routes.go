package routes

import (
	"github.com/JYu1999/jyu-blog/controllers"
	"github.com/gin-gonic/gin"
)

func SetupBlogRoutes(r *gin.Engine, blogController *controllers.BlogController, aboutController *controllers.AboutController) {
	r.GET("/", blogController.Index)
	r.GET("/blog", blogController.Index)
	r.GET("/blog/:slug", blogController.Show)
	r.GET("/category/:slug", blogController.ByCategory)
	r.GET("/tag/:slug", blogController.ByTag)
	r.GET("/about", aboutController.Index)
}
