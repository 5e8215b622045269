package controllers

import (
	"errors"
	"net/http"

	"github.com/JYu1999/jyu-blog/models"
	"github.com/JYu1999/jyu-blog/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminTaxonomyController struct {
	DB *gorm.DB
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type TagRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

func NewAdminTaxonomyController(db *gorm.DB) *AdminTaxonomyController {
	return &AdminTaxonomyController{DB: db}
}

// resolveSlug picks the explicit slug when free, otherwise generates a
// unique one from the name.
func (tc *AdminTaxonomyController) resolveSlug(c *gin.Context, model any, slug, name string, excludeID uint) (string, bool) {
	if slug == "" {
		generated, err := utils.UniqueSlug(tc.DB, model, utils.Slugify(name), excludeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating slug"})
			return "", false
		}
		return generated, true
	}
	taken, err := slugTaken(tc.DB, model, slug, excludeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking slug"})
		return "", false
	}
	if taken {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Slug already in use"})
		return "", false
	}
	return slug, true
}

func (tc *AdminTaxonomyController) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := tc.DB.Order("name asc").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (tc *AdminTaxonomyController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug, ok := tc.resolveSlug(c, &models.Category{}, req.Slug, req.Name, 0)
	if !ok {
		return
	}

	category := models.Category{Name: req.Name, Slug: slug, Description: req.Description}
	if err := tc.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

func (tc *AdminTaxonomyController) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := tc.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching category"})
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = category.Slug
	}
	if slug != category.Slug {
		if slug, ok = tc.resolveSlug(c, &models.Category{}, slug, req.Name, category.ID); !ok {
			return
		}
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"slug":        slug,
		"description": req.Description,
	}
	if err := tc.DB.Model(&category).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category and detaches its posts (category_id
// set to NULL); the posts themselves survive.
func (tc *AdminTaxonomyController) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var category models.Category
	if err := tc.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching category"})
		return
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).Unscoped().
			Where("category_id = ?", category.ID).
			UpdateColumn("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (tc *AdminTaxonomyController) ListTags(c *gin.Context) {
	var tags []models.Tag
	if err := tc.DB.Order("name asc").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching tags"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (tc *AdminTaxonomyController) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug, ok := tc.resolveSlug(c, &models.Tag{}, req.Slug, req.Name, 0)
	if !ok {
		return
	}

	tag := models.Tag{Name: req.Name, Slug: slug}
	if err := tc.DB.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

func (tc *AdminTaxonomyController) UpdateTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tag models.Tag
	if err := tc.DB.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching tag"})
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = tag.Slug
	}
	if slug != tag.Slug {
		if slug, ok = tc.resolveSlug(c, &models.Tag{}, slug, req.Name, tag.ID); !ok {
			return
		}
	}

	if err := tc.DB.Model(&tag).Updates(map[string]interface{}{"name": req.Name, "slug": slug}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// DeleteTag removes a tag and its post associations; the posts survive.
func (tc *AdminTaxonomyController) DeleteTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var tag models.Tag
	if err := tc.DB.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching tag"})
		return
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tag).Association("Posts").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}
