package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// Slugify normalizes free text into a URL-safe slug: lowercase, diacritics
// stripped, runs of non-alphanumerics collapsed to single hyphens, trimmed.
// Returns "" when nothing usable remains; callers substitute their fallback.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var stripped []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		stripped = append(stripped, r)
	}

	var b strings.Builder
	lastDash := true
	for _, r := range stripped {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// EnsureUniqueSlug probes the table's slug column case-insensitively and
// appends -2, -3, ... until the candidate is free. excludeID skips the row
// being updated. The check-then-set window is accepted; the unique index on
// the column makes a racing writer fail instead of duplicating.
func EnsureUniqueSlug(db *gorm.DB, table, base string, excludeID uint) (string, error) {
	slug := base
	for i := 2; i <= 50; i++ {
		taken, err := slugTaken(db, table, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	// Pathological collision count; fall back to a time-based suffix.
	return fmt.Sprintf("%s-%x", base, time.Now().UnixNano()&0xffffff), nil
}

func slugTaken(db *gorm.DB, table, slug string, excludeID uint) (bool, error) {
	q := db.Table(table).Where("LOWER(slug) = ?", strings.ToLower(slug))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
