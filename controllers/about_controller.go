package controllers

import (
	"fmt"
	"net/http"

	"github.com/JYu1999/jyu-blog/config"
	"github.com/JYu1999/jyu-blog/middleware"
	"github.com/JYu1999/jyu-blog/models"
	"github.com/JYu1999/jyu-blog/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AboutController struct {
	Settings *models.SettingStore
}

func NewAboutController(db *gorm.DB) *AboutController {
	return &AboutController{
		Settings: models.NewSettingStore(db, config.FallbackLocale()),
	}
}

// Index handles GET /about, serving the settings-backed about page in the
// request's locale.
func (ac *AboutController) Index(c *gin.Context) {
	locale := middleware.CurrentLocale(c)

	title := ac.Settings.Get("about_title", "About Me", locale)
	content := fmt.Sprint(ac.Settings.Get("about_content", "", locale))

	c.JSON(http.StatusOK, gin.H{
		"title":        title,
		"content":      content,
		"content_html": utils.RenderMarkdown(content),
		"locale":       locale,
	})
}
