package controllers

import (
	"errors"
	"net/http"

	"github.com/JYu1999/jyu-blog/config"
	"github.com/JYu1999/jyu-blog/middleware"
	"github.com/JYu1999/jyu-blog/models"
	"github.com/JYu1999/jyu-blog/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BlogController struct {
	DB *gorm.DB
}

func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{DB: db}
}

// getFilterParams reads the common listing query parameters. The locale
// filter defaults to the locale resolved for this request.
func getFilterParams(c *gin.Context) models.PostFilters {
	return models.PostFilters{
		Sort:      c.DefaultQuery("sort", "updated"),
		Direction: c.DefaultQuery("direction", "desc"),
		Search:    c.Query("search"),
		View:      c.DefaultQuery("view", "gallery"),
		Locale:    c.DefaultQuery("locale", middleware.CurrentLocale(c)),
	}
}

// listPosts runs the shared listing pipeline: published gate, filters,
// pagination. scope narrows the base query for category/tag pages.
func (bc *BlogController) listPosts(c *gin.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Post, models.PostFilters, Pagination, error) {
	filters := getFilterParams(c)
	page := pageParam(c)

	base := bc.DB.Model(&models.Post{}).Scopes(models.Published)
	if scope != nil {
		base = base.Scopes(scope)
	}
	// Session makes the composed query reusable for both Count and Find.
	base = base.Scopes(models.ApplyBlogFilters(filters)).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, filters, Pagination{}, err
	}

	var posts []models.Post
	err := base.Preload("Category").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, filters, Pagination{}, err
	}

	return posts, filters, NewPagination(page, PageSize, total), nil
}

// Index handles GET / and GET /blog.
func (bc *BlogController) Index(c *gin.Context) {
	posts, filters, pagination, err := bc.listPosts(c, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":            posts,
		"pagination":       pagination,
		"filters":          filters,
		"availableLocales": config.LocaleNames,
	})
}

// Show handles GET /blog/:slug. Fetching a published post increments its
// view counter exactly once, without touching updated_at.
func (bc *BlogController) Show(c *gin.Context) {
	slug := c.Param("slug")

	var post models.Post
	err := bc.DB.Preload("Category").Preload("Tags").
		Where("slug = ?", slug).
		Where("status = ?", models.PostStatusPublished).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}

	if err := post.IncrementViews(bc.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating view count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":         post,
		"content_html": utils.RenderMarkdown(post.Content),
	})
}

// ByCategory handles GET /category/:slug. An unknown category slug is a
// 404, not an empty listing.
func (bc *BlogController) ByCategory(c *gin.Context) {
	var category models.Category
	if err := bc.DB.Where("slug = ?", c.Param("slug")).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching category"})
		return
	}

	posts, filters, pagination, err := bc.listPosts(c, func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ?", category.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":         category,
		"posts":            posts,
		"pagination":       pagination,
		"filters":          filters,
		"availableLocales": config.LocaleNames,
	})
}

// ByTag handles GET /tag/:slug.
func (bc *BlogController) ByTag(c *gin.Context) {
	var tag models.Tag
	if err := bc.DB.Where("slug = ?", c.Param("slug")).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching tag"})
		return
	}

	posts, filters, pagination, err := bc.listPosts(c, func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", tag.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag":              tag,
		"posts":            posts,
		"pagination":       pagination,
		"filters":          filters,
		"availableLocales": config.LocaleNames,
	})
}
