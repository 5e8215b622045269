package models_test

import (
	"testing"
	"time"

	"github.com/JYu1999/jyu-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostCreateDefaults(t *testing.T) {
	db := setupTestDB(t)

	post := createPost(t, db, &models.Post{
		Title:   "Hello",
		Slug:    "hello",
		Content: "First post.",
	})

	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, "en", post.Locale)
	require.NotNil(t, post.ContentUpdatedAt)
	assert.WithinDuration(t, time.Now(), *post.ContentUpdatedAt, 5*time.Second)
}

func TestContentUpdatedAtBumpsOnContentEdit(t *testing.T) {
	db := setupTestDB(t)

	post := createPost(t, db, &models.Post{
		Title:   "Hello",
		Slug:    "hello",
		Content: "Original content.",
		Status:  models.PostStatusPublished,
	})
	old := time.Now().Add(-time.Hour)
	backdatePost(t, db, post, old)

	err := db.Model(post).Updates(map[string]interface{}{
		"content": "Edited content.",
	}).Error
	require.NoError(t, err)

	reloaded := reloadPost(t, db, post.ID)
	require.NotNil(t, reloaded.ContentUpdatedAt)
	assert.WithinDuration(t, time.Now(), *reloaded.ContentUpdatedAt, 5*time.Second)
}

func TestContentUpdatedAtBumpsOnEachContentField(t *testing.T) {
	db := setupTestDB(t)

	summary := "A summary"
	image := "/images/cover.png"
	category := models.Category{Name: "Tech", Slug: "tech"}
	require.NoError(t, db.Create(&category).Error)

	cases := []struct {
		name    string
		updates map[string]interface{}
	}{
		{"title", map[string]interface{}{"title": "New title"}},
		{"summary", map[string]interface{}{"summary": summary}},
		{"featured_image", map[string]interface{}{"featured_image": image}},
		{"category_id", map[string]interface{}{"category_id": category.ID}},
		{"status", map[string]interface{}{"status": models.PostStatusPublished}},
		{"locale", map[string]interface{}{"locale": "ja"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			post := createPost(t, db, &models.Post{
				Title:   "Post " + tc.name,
				Slug:    "post-" + tc.name,
				Content: "Content.",
			})
			old := time.Now().Add(-time.Hour)
			backdatePost(t, db, post, old)

			require.NoError(t, db.Model(post).Updates(tc.updates).Error)

			reloaded := reloadPost(t, db, post.ID)
			require.NotNil(t, reloaded.ContentUpdatedAt)
			assert.WithinDuration(t, time.Now(), *reloaded.ContentUpdatedAt, 5*time.Second,
				"changing %s should bump content_updated_at", tc.name)
		})
	}
}

func TestIncrementViewsLeavesTimestampsAlone(t *testing.T) {
	db := setupTestDB(t)

	post := createPost(t, db, &models.Post{
		Title:   "Hello",
		Slug:    "hello",
		Content: "Content.",
		Status:  models.PostStatusPublished,
	})
	old := time.Now().Add(-time.Hour)
	backdatePost(t, db, post, old)

	require.NoError(t, post.IncrementViews(db))
	require.NoError(t, post.IncrementViews(db))

	reloaded := reloadPost(t, db, post.ID)
	assert.Equal(t, 2, reloaded.Views)
	require.NotNil(t, reloaded.ContentUpdatedAt)
	assert.WithinDuration(t, old, *reloaded.ContentUpdatedAt, time.Second,
		"view increments must not count as edits")
	assert.WithinDuration(t, old, reloaded.UpdatedAt, time.Second,
		"view increments must not touch updated_at")
}

func TestPublishedScope(t *testing.T) {
	db := setupTestDB(t)

	createPost(t, db, &models.Post{Title: "Draft", Slug: "draft", Content: "x"})
	createPost(t, db, &models.Post{Title: "Live", Slug: "live", Content: "x", Status: models.PostStatusPublished})
	createPost(t, db, &models.Post{Title: "Gone", Slug: "gone", Content: "x", Status: models.PostStatusDeleted})

	var posts []models.Post
	require.NoError(t, db.Scopes(models.Published).Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, "Live", posts[0].Title)
}

func TestSearchScope(t *testing.T) {
	db := setupTestDB(t)

	summary := "weekly roundup"
	first := createPost(t, db, &models.Post{
		Title: "Go Concurrency Patterns", Slug: "go-concurrency", Content: "channels and goroutines",
		Status: models.PostStatusPublished,
	})
	second := createPost(t, db, &models.Post{
		Title: "Issue 42", Slug: "issue-42", Content: "nothing to see", Summary: &summary,
		Status: models.PostStatusPublished,
	})

	find := func(search string) []models.Post {
		var posts []models.Post
		require.NoError(t, db.Scopes(models.SearchScope(search)).Order("id asc").Find(&posts).Error)
		return posts
	}

	// Case-insensitive substring across title, content and summary.
	posts := find("CONCURRENCY")
	require.Len(t, posts, 1)
	assert.Equal(t, first.ID, posts[0].ID)

	posts = find("roundup")
	require.Len(t, posts, 1)
	assert.Equal(t, second.ID, posts[0].ID)

	// An integer term also matches the post id.
	posts = find("42")
	titles := []string{}
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	assert.Contains(t, titles, "Issue 42")

	idSearch := find("1")
	found := false
	for _, p := range idSearch {
		if p.ID == 1 {
			found = true
		}
	}
	assert.True(t, found, "numeric search must match the id")

	// Non-numeric terms match text fields only.
	assert.Empty(t, find("zzz-no-match"))
}

func TestSortScopeByViews(t *testing.T) {
	db := setupTestDB(t)

	createPost(t, db, &models.Post{Title: "B", Slug: "b", Content: "x", Views: 78, Status: models.PostStatusPublished})
	createPost(t, db, &models.Post{Title: "C", Slug: "c", Content: "x", Views: 124, Status: models.PostStatusPublished})
	createPost(t, db, &models.Post{Title: "A", Slug: "a", Content: "x", Views: 42, Status: models.PostStatusPublished})

	var posts []models.Post
	require.NoError(t, db.Scopes(models.SortScope("views", "asc")).Find(&posts).Error)
	require.Len(t, posts, 3)
	assert.Equal(t, []int{42, 78, 124}, []int{posts[0].Views, posts[1].Views, posts[2].Views})

	require.NoError(t, db.Scopes(models.SortScope("views", "desc")).Find(&posts).Error)
	assert.Equal(t, []int{124, 78, 42}, []int{posts[0].Views, posts[1].Views, posts[2].Views})
}

func TestSortScopeByUpdatedUsesContentTimestampWithTieBreak(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	seed := func(slug string, contentUpdated, created time.Time) *models.Post {
		post := createPost(t, db, &models.Post{Title: slug, Slug: slug, Content: "x", Status: models.PostStatusPublished})
		err := db.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumns(map[string]interface{}{
				"content_updated_at": contentUpdated,
				"created_at":         created,
			}).Error
		require.NoError(t, err)
		return post
	}

	seed("old", base, base)
	seed("newer-tie-old", base.Add(24*time.Hour), base)
	seed("newer-tie-new", base.Add(24*time.Hour), base.Add(time.Hour))

	var posts []models.Post
	require.NoError(t, db.Scopes(models.SortScope("updated", "desc")).Find(&posts).Error)
	require.Len(t, posts, 3)
	assert.Equal(t, "newer-tie-new", posts[0].Slug)
	assert.Equal(t, "newer-tie-old", posts[1].Slug)
	assert.Equal(t, "old", posts[2].Slug)

	require.NoError(t, db.Scopes(models.SortScope("updated", "asc")).Find(&posts).Error)
	assert.Equal(t, "old", posts[0].Slug)
	assert.Equal(t, "newer-tie-old", posts[1].Slug)
	assert.Equal(t, "newer-tie-new", posts[2].Slug)
}

func TestLocaleScope(t *testing.T) {
	db := setupTestDB(t)

	createPost(t, db, &models.Post{Title: "EN", Slug: "en-post", Content: "x", Locale: "en", Status: models.PostStatusPublished})
	createPost(t, db, &models.Post{Title: "JA", Slug: "ja-post", Content: "x", Locale: "ja", Status: models.PostStatusPublished})

	var posts []models.Post
	require.NoError(t, db.Scopes(models.LocaleScope("ja")).Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, "JA", posts[0].Title)
}

func TestValidateOriginalPost(t *testing.T) {
	db := setupTestDB(t)

	original := createPost(t, db, &models.Post{Title: "Original", Slug: "original", Content: "x"})
	translation := createPost(t, db, &models.Post{
		Title: "Translation", Slug: "translation", Content: "x",
		Locale: "ja", OriginalPostID: &original.ID,
	})

	// Linking to a plain original is fine.
	assert.NoError(t, models.ValidateOriginalPost(db, 0, &original.ID))

	// Linking to a translation would create a chain.
	err := models.ValidateOriginalPost(db, 0, &translation.ID)
	assert.ErrorIs(t, err, models.ErrOriginalPostChained)

	// A post cannot be its own original.
	err = models.ValidateOriginalPost(db, original.ID, &original.ID)
	assert.ErrorIs(t, err, models.ErrOriginalPostSelf)

	// Missing target.
	missing := uint(9999)
	err = models.ValidateOriginalPost(db, 0, &missing)
	assert.ErrorIs(t, err, models.ErrOriginalPostNotFound)

	// Soft-deleted targets are rejected at write time.
	require.NoError(t, db.Delete(&models.Post{}, original.ID).Error)
	err = models.ValidateOriginalPost(db, 0, &original.ID)
	assert.ErrorIs(t, err, models.ErrOriginalPostNotFound)
}

func TestSoftDeleteHidesPostFromDefaultScope(t *testing.T) {
	db := setupTestDB(t)

	post := createPost(t, db, &models.Post{Title: "Hello", Slug: "hello", Content: "x", Status: models.PostStatusPublished})
	require.NoError(t, db.Delete(&models.Post{}, post.ID).Error)

	var found models.Post
	err := db.Where("id = ?", post.ID).First(&found).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Still reachable unscoped, and restorable.
	require.NoError(t, db.Unscoped().Where("id = ?", post.ID).First(&found).Error)
}
