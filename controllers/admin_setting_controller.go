package controllers

import (
	"net/http"

	"github.com/JYu1999/jyu-blog/config"
	"github.com/JYu1999/jyu-blog/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminSettingController struct {
	DB *gorm.DB
}

type SettingPayload struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value"`
	Type        string `json:"type" binding:"omitempty,oneof=string boolean integer float json"`
	Description string `json:"description"`
	Locale      string `json:"locale"`
}

func NewAdminSettingController(db *gorm.DB) *AdminSettingController {
	return &AdminSettingController{DB: db}
}

// ListSettings handles GET /api/admin/settings, optionally filtered by
// locale and key.
func (sc *AdminSettingController) ListSettings(c *gin.Context) {
	query := sc.DB.Model(&models.Setting{})
	if locale := c.Query("locale"); locale != "" {
		query = query.Where("locale = ?", locale)
	}
	if key := c.Query("key"); key != "" {
		query = query.Where("key = ?", key)
	}

	var settings []models.Setting
	if err := query.Order("key asc").Order("locale asc").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// SaveSettings handles PUT /api/admin/settings, upserting a batch of
// rows in one transaction so a save never partially applies.
func (sc *AdminSettingController) SaveSettings(c *gin.Context) {
	var input struct {
		Settings []SettingPayload `json:"settings" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for i := range input.Settings {
		if input.Settings[i].Type == "" {
			input.Settings[i].Type = models.SettingTypeString
		}
		if input.Settings[i].Locale == "" {
			input.Settings[i].Locale = config.DefaultLocale()
		}
		if !config.IsSupportedLocale(input.Settings[i].Locale) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unsupported locale"})
			return
		}
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		store := models.NewSettingStore(tx, config.FallbackLocale())
		for _, s := range input.Settings {
			if err := store.Set(s.Key, s.Value, s.Type, s.Description, s.Locale); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings saved"})
}
