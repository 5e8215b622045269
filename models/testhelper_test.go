package models_test

import (
	"testing"
	"time"

	"github.com/JYu1999/jyu-blog/config"
	"github.com/JYu1999/jyu-blog/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateDB(db))
	return db
}

func createPost(t *testing.T, db *gorm.DB, post *models.Post) *models.Post {
	t.Helper()
	require.NoError(t, db.Create(post).Error)
	return post
}

// backdatePost pins created_at, updated_at and content_updated_at to a
// known time so tests can tell a real bump from clock noise.
func backdatePost(t *testing.T, db *gorm.DB, post *models.Post, at time.Time) {
	t.Helper()
	err := db.Model(&models.Post{}).Where("id = ?", post.ID).
		UpdateColumns(map[string]interface{}{
			"created_at":         at,
			"updated_at":         at,
			"content_updated_at": at,
		}).Error
	require.NoError(t, err)
}

func reloadPost(t *testing.T, db *gorm.DB, id uint) *models.Post {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, id).Error)
	return &post
}
