package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"gorm.io/gorm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugHyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-friendly slug. Non-ASCII characters
// are transliterated first so CJK and accented titles still produce a
// usable slug.
func Slugify(s string) string {
	out := strings.ToLower(unidecode.Unidecode(s))
	out = slugInvalidChars.ReplaceAllString(out, "-")
	out = slugHyphenRuns.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")
	if out == "" {
		return "post"
	}
	return out
}

// UniqueSlug probes the given model's table for slug collisions and
// appends a numeric suffix until the slug is free. Soft-deleted rows
// still hold their slug (the unique index covers them), so the probe
// runs unscoped. excludeID skips the record being updated.
func UniqueSlug(db *gorm.DB, model any, base string, excludeID uint) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var count int64
		q := db.Model(model).Unscoped().Where("slug = ?", slug)
		if excludeID > 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
