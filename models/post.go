package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusDeleted   = "deleted"
)

var (
	ErrOriginalPostSelf     = errors.New("a post cannot be its own original")
	ErrOriginalPostNotFound = errors.New("original post not found")
	ErrOriginalPostChained  = errors.New("original post is itself a translation")
)

type Post struct {
	ID            uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string  `json:"title" gorm:"not null"`
	Slug          string  `json:"slug" gorm:"uniqueIndex;not null"`
	Content       string  `json:"content" gorm:"type:text;not null"`
	Summary       *string `json:"summary" gorm:"type:text"`
	FeaturedImage *string `json:"featured_image"`
	Status        string  `json:"status" gorm:"type:varchar(20);not null;default:draft;index"`
	Views         int     `json:"views" gorm:"not null;default:0"`
	Locale        string  `json:"locale" gorm:"type:varchar(10);not null;default:en;index"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	// OriginalPostID links a translation back to the post it translates.
	// Only one level is allowed: an original never has this set.
	OriginalPostID *uint  `json:"original_post_id"`
	OriginalPost   *Post  `json:"original_post,omitempty" gorm:"foreignKey:OriginalPostID"`
	Translations   []Post `json:"translations,omitempty" gorm:"foreignKey:OriginalPostID"`

	Tags []Tag `json:"tags,omitempty" gorm:"many2many:post_tags;"`

	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	ContentUpdatedAt *time.Time     `json:"content_updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// postContentFields are the columns whose change marks a post as
// meaningfully edited and therefore bumps ContentUpdatedAt.
var postContentFields = []string{
	"Title", "Content", "Summary", "FeaturedImage", "CategoryID", "Status", "Locale",
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
	if p.Locale == "" {
		p.Locale = "en"
	}
	if p.ContentUpdatedAt == nil {
		now := time.Now()
		p.ContentUpdatedAt = &now
	}
	return nil
}

// BeforeUpdate bumps ContentUpdatedAt when any content field changes.
// View-count increments go through UpdateColumn and never reach this hook.
func (p *Post) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed(postContentFields...) {
		tx.Statement.SetColumn("ContentUpdatedAt", time.Now())
	}
	return nil
}

// IncrementViews bumps the view counter with a single atomic UPDATE.
// UpdateColumn skips hooks and leaves updated_at untouched, so a view
// never counts as an edit.
func (p *Post) IncrementViews(db *gorm.DB) error {
	err := db.Model(&Post{}).Where("id = ?", p.ID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return err
	}
	p.Views++
	return nil
}

// ValidateOriginalPost enforces the one-level translation rule at write
// time: the referenced post must exist (and not be soft-deleted), must not
// be the post itself, and must not be a translation of something else.
func ValidateOriginalPost(db *gorm.DB, postID uint, originalPostID *uint) error {
	if originalPostID == nil {
		return nil
	}
	if postID != 0 && *originalPostID == postID {
		return ErrOriginalPostSelf
	}

	var original Post
	if err := db.Select("id", "original_post_id").First(&original, *originalPostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOriginalPostNotFound
		}
		return err
	}
	if original.OriginalPostID != nil {
		return ErrOriginalPostChained
	}
	return nil
}

// PostFilters carries the listing query parameters. View is a display-mode
// hint echoed back to the client, never a data filter.
type PostFilters struct {
	Sort      string `form:"sort" json:"sort"`
	Direction string `form:"direction" json:"direction"`
	Search    string `form:"search" json:"search"`
	View      string `form:"view" json:"view"`
	Locale    string `form:"locale" json:"locale"`
}

func Published(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", PostStatusPublished)
}

func Drafts(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", PostStatusDraft)
}

func LocaleScope(locale string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("locale = ?", locale)
	}
}

// SearchScope matches the term as a case-insensitive substring of title,
// content or summary. A term that parses as an integer also matches the
// post id, so numeric-looking queries double as ID lookups.
func SearchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		like := "%" + strings.ToLower(search) + "%"
		if id, err := strconv.Atoi(search); err == nil {
			return db.Where(
				"(id = ? OR LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(summary) LIKE ?)",
				id, like, like, like,
			)
		}
		return db.Where(
			"(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(summary) LIKE ?)",
			like, like, like,
		)
	}
}

// SortScope orders the listing. "updated" means last meaningfully edited:
// content_updated_at with created_at as tie-break, both in the same
// direction.
func SortScope(sort, direction string) func(*gorm.DB) *gorm.DB {
	dir := "desc"
	if direction == "asc" {
		dir = "asc"
	}
	return func(db *gorm.DB) *gorm.DB {
		switch sort {
		case "views":
			return db.Order("views " + dir)
		case "created":
			return db.Order("created_at " + dir)
		default:
			return db.Order("content_updated_at " + dir).Order("created_at " + dir)
		}
	}
}

// ApplyBlogFilters composes the common listing filters in a fixed order:
// locale scope, search, sort. The published gate is applied separately by
// public endpoints.
func ApplyBlogFilters(filters PostFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filters.Locale != "" {
			db = db.Scopes(LocaleScope(filters.Locale))
		}
		return db.Scopes(
			SearchScope(filters.Search),
			SortScope(filters.Sort, filters.Direction),
		)
	}
}
