package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JYu1999/jyu-blog/config"
	"github.com/JYu1999/jyu-blog/models"
	"github.com/JYu1999/jyu-blog/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminPostController struct {
	DB *gorm.DB
}

type CreatePostRequest struct {
	Title          string  `json:"title" binding:"required"`
	Slug           string  `json:"slug"`
	Content        string  `json:"content" binding:"required"`
	Summary        *string `json:"summary"`
	FeaturedImage  *string `json:"featured_image"`
	Status         string  `json:"status" binding:"omitempty,oneof=draft published deleted"`
	Locale         string  `json:"locale"`
	CategoryID     *uint   `json:"category_id"`
	OriginalPostID *uint   `json:"original_post_id"`
	TagIDs         []uint  `json:"tag_ids"`
}

type UpdatePostRequest struct {
	Title          *string `json:"title"`
	Slug           *string `json:"slug"`
	Content        *string `json:"content"`
	Summary        *string `json:"summary"`
	FeaturedImage  *string `json:"featured_image"`
	Status         *string `json:"status"`
	Locale         *string `json:"locale"`
	CategoryID     *uint   `json:"category_id"`
	OriginalPostID *uint   `json:"original_post_id"`
	TagIDs         *[]uint `json:"tag_ids"`
}

func NewAdminPostController(db *gorm.DB) *AdminPostController {
	return &AdminPostController{DB: db}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func translationError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, models.ErrOriginalPostSelf),
		errors.Is(err, models.ErrOriginalPostNotFound),
		errors.Is(err, models.ErrOriginalPostChained):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return true
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error validating original post"})
		return true
	}
}

// ListPosts handles GET /api/admin/posts. Unlike the public listing it can
// see drafts and, with trashed=with|only, soft-deleted posts.
func (pc *AdminPostController) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if pageSize < 1 || pageSize > 50 {
		pageSize = 20
	}

	query := pc.DB.Model(&models.Post{})
	switch c.Query("trashed") {
	case "with":
		query = query.Unscoped()
	case "only":
		query = query.Unscoped().Where("posts.deleted_at IS NOT NULL")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if locale := c.Query("locale"); locale != "" {
		query = query.Scopes(models.LocaleScope(locale))
	}
	query = query.Scopes(
		models.SearchScope(c.Query("search")),
		models.SortScope(c.DefaultQuery("sort", "updated"), c.DefaultQuery("direction", "desc")),
	).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting posts"})
		return
	}

	var posts []models.Post
	err := query.Preload("Category").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetPost handles GET /api/admin/posts/:id. Soft-deleted posts are still
// visible here, and a translation's original resolves even when the
// original was soft-deleted.
func (pc *AdminPostController) GetPost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var post models.Post
	err := pc.DB.Unscoped().
		Preload("Category").
		Preload("Tags").
		Preload("OriginalPost", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Translations").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost handles POST /api/admin/posts.
func (pc *AdminPostController) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Locale == "" {
		req.Locale = config.DefaultLocale()
	}
	if !config.IsSupportedLocale(req.Locale) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unsupported locale"})
		return
	}
	if translationError(c, models.ValidateOriginalPost(pc.DB, 0, req.OriginalPostID)) {
		return
	}

	slug := req.Slug
	if slug == "" {
		var err error
		slug, err = utils.UniqueSlug(pc.DB, &models.Post{}, utils.Slugify(req.Title), 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating slug"})
			return
		}
	} else if taken, err := slugTaken(pc.DB, &models.Post{}, slug, 0); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking slug"})
		return
	} else if taken {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Slug already in use"})
		return
	}

	post := models.Post{
		Title:          req.Title,
		Slug:           slug,
		Content:        req.Content,
		Summary:        req.Summary,
		FeaturedImage:  req.FeaturedImage,
		Status:         req.Status,
		Locale:         req.Locale,
		CategoryID:     req.CategoryID,
		OriginalPostID: req.OriginalPostID,
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		if len(req.TagIDs) > 0 {
			tags, err := findTags(tx, req.TagIDs)
			if err != nil {
				return err
			}
			return tx.Model(&post).Association("Tags").Replace(tags)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	pc.DB.Preload("Category").Preload("Tags").First(&post, post.ID)
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// UpdatePost handles PUT /api/admin/posts/:id. Only provided fields are
// updated; content-field changes bump content_updated_at through the
// model hook.
func (pc *AdminPostController) UpdatePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Title cannot be empty"})
			return
		}
		updates["title"] = *req.Title
	}
	if req.Slug != nil {
		if taken, err := slugTaken(pc.DB, &models.Post{}, *req.Slug, post.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking slug"})
			return
		} else if taken {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Slug already in use"})
			return
		}
		updates["slug"] = *req.Slug
	}
	if req.Content != nil {
		if *req.Content == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Content cannot be empty"})
			return
		}
		updates["content"] = *req.Content
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
	}
	if req.Status != nil {
		switch *req.Status {
		case models.PostStatusDraft, models.PostStatusPublished, models.PostStatusDeleted:
			updates["status"] = *req.Status
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid status"})
			return
		}
	}
	if req.Locale != nil {
		if !config.IsSupportedLocale(*req.Locale) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unsupported locale"})
			return
		}
		updates["locale"] = *req.Locale
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.OriginalPostID != nil {
		if translationError(c, models.ValidateOriginalPost(pc.DB, post.ID, req.OriginalPostID)) {
			return
		}
		updates["original_post_id"] = *req.OriginalPostID
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&post).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			tags, err := findTags(tx, *req.TagIDs)
			if err != nil {
				return err
			}
			return tx.Model(&post).Association("Tags").Replace(tags)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	pc.DB.Preload("Category").Preload("Tags").First(&post, post.ID)
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost handles DELETE /api/admin/posts/:id (soft delete).
func (pc *AdminPostController) DeletePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result := pc.DB.Delete(&models.Post{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// RestorePost handles POST /api/admin/posts/:id/restore.
func (pc *AdminPostController) RestorePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result := pc.DB.Unscoped().Model(&models.Post{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		UpdateColumn("deleted_at", nil)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post restored"})
}

// ForceDeletePost handles DELETE /api/admin/posts/:id/force. The row and
// its tag associations are removed permanently, freeing the slug.
func (pc *AdminPostController) ForceDeletePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var post models.Post
	if err := pc.DB.Unscoped().First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post permanently deleted"})
}

func findTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := tx.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func slugTaken(db *gorm.DB, model any, slug string, excludeID uint) (bool, error) {
	var count int64
	q := db.Model(model).Unscoped().Where("slug = ?", slug)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
