package database

import (
	"log"
	"os"

	"github.com/JYu1999/jyu-blog/config"
	"github.com/JYu1999/jyu-blog/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates an empty database with an admin user, starter taxonomy,
// sample posts and default settings. It is idempotent: seeded data is
// keyed on unique columns and never duplicated.
func Seed(db *gorm.DB) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}
	if err := seedTaxonomy(db); err != nil {
		return err
	}
	if err := seedPosts(db); err != nil {
		return err
	}
	return seedSettings(db)
}

func seedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password"
		log.Println("ADMIN_PASSWORD not set, seeding admin user with default password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var user models.User
	return db.Where(models.User{Email: email}).
		Attrs(models.User{Name: "Admin User", Password: string(hashed)}).
		FirstOrCreate(&user).Error
}

func seedTaxonomy(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Technology", Slug: "technology", Description: "Articles about technology, programming, and digital innovations."},
		{Name: "Personal", Slug: "personal", Description: "Personal thoughts, experiences, and reflections."},
		{Name: "Tutorials", Slug: "tutorials", Description: "Step by step guides and tutorials on various subjects."},
	}
	for _, category := range categories {
		var existing models.Category
		err := db.Where(models.Category{Slug: category.Slug}).
			Attrs(category).
			FirstOrCreate(&existing).Error
		if err != nil {
			return err
		}
	}

	tags := []models.Tag{
		{Name: "Go", Slug: "go"},
		{Name: "Vue", Slug: "vue"},
		{Name: "Databases", Slug: "databases"},
		{Name: "JavaScript", Slug: "javascript"},
		{Name: "Web Development", Slug: "web-development"},
		{Name: "DevOps", Slug: "devops"},
	}
	for _, tag := range tags {
		var existing models.Tag
		err := db.Where(models.Tag{Slug: tag.Slug}).
			Attrs(tag).
			FirstOrCreate(&existing).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedPosts(db *gorm.DB) error {
	var technology models.Category
	if err := db.Where("slug = ?", "technology").First(&technology).Error; err != nil {
		return err
	}

	summary := "Setting up a Go blog API with Gin and GORM from scratch."
	posts := []models.Post{
		{
			Title:      "Building a Blog with Gin and GORM",
			Slug:       "building-a-blog-with-gin-and-gorm",
			Content:    "# Building a Blog with Gin and GORM\n\nGin and GORM make a productive pairing for content sites. This post walks through models, migrations and handlers.\n",
			Summary:    &summary,
			Status:     models.PostStatusPublished,
			Locale:     "en",
			CategoryID: &technology.ID,
		},
		{
			Title:   "Welcome to the Blog",
			Slug:    "welcome-to-the-blog",
			Content: "A short hello. More soon.\n",
			Status:  models.PostStatusPublished,
			Locale:  "en",
		},
	}
	for _, post := range posts {
		var count int64
		if err := db.Model(&models.Post{}).Unscoped().Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&post).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedSettings(db *gorm.DB) error {
	store := models.NewSettingStore(db, config.FallbackLocale())

	defaults := []struct {
		key, value, locale string
	}{
		{"about_title", "About Me", "en"},
		{"about_content", "Hi, I write about software and whatever else keeps me up at night.", "en"},
		{"about_title", "關於我", "zh"},
	}
	for _, d := range defaults {
		var count int64
		err := db.Model(&models.Setting{}).
			Where("key = ? AND locale = ?", d.key, d.locale).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := store.Set(d.key, d.value, models.SettingTypeString, "About page", d.locale); err != nil {
			return err
		}
	}
	return nil
}
