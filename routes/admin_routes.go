package routes

import (
	"github.com/JYu1999/jyu-blog/controllers"
	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(
	admin *gin.RouterGroup,
	postController *controllers.AdminPostController,
	taxonomyController *controllers.AdminTaxonomyController,
	settingController *controllers.AdminSettingController,
) {
	posts := admin.Group("/posts")
	{
		posts.GET("", postController.ListPosts)
		posts.POST("", postController.CreatePost)
		posts.GET("/:id", postController.GetPost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
		posts.POST("/:id/restore", postController.RestorePost)
		posts.DELETE("/:id/force", postController.ForceDeletePost)
	}

	categories := admin.Group("/categories")
	{
		categories.GET("", taxonomyController.ListCategories)
		categories.POST("", taxonomyController.CreateCategory)
		categories.PUT("/:id", taxonomyController.UpdateCategory)
		categories.DELETE("/:id", taxonomyController.DeleteCategory)
	}

	tags := admin.Group("/tags")
	{
		tags.GET("", taxonomyController.ListTags)
		tags.POST("", taxonomyController.CreateTag)
		tags.PUT("/:id", taxonomyController.UpdateTag)
		tags.DELETE("/:id", taxonomyController.DeleteTag)
	}

	settings := admin.Group("/settings")
	{
		settings.GET("", settingController.ListSettings)
		settings.PUT("", settingController.SaveSettings)
	}
}
