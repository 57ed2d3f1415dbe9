package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CatalogFilters is the flat parameter set recognized by the course and
// scholarship listing endpoints. Zero values mean "no constraint"; the
// pipeline never rejects a value, it ignores what it does not recognize.
type CatalogFilters struct {
	Search          string
	PlatformIDs     []uint
	CategoryIDs     []uint
	Levels          []string
	HaveCertificate *bool
	Duration        string
	SortBy          string
	SortDirection   string
}

var catalogSortColumns = map[string]string{
	"created_at": "created_at",
	"duration":   "duration",
	"title":      "", // resolved per locale below
}

// Apply narrows q with every present filter and attaches the sort. All
// constraints are AND-ed; search alone ORs the active-locale title and
// description. Pagination is the caller's concern and comes after.
func (f CatalogFilters) Apply(q *gorm.DB, locale string) *gorm.DB {
	locale = NormalizeLocale(locale)

	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		title := localeColumn(q, "title", locale)
		desc := localeColumn(q, "description", locale)
		q = q.Where(
			fmt.Sprintf("LOWER(%s) LIKE ? OR LOWER(%s) LIKE ?", title, desc),
			pattern, pattern,
		)
	}
	if len(f.PlatformIDs) > 0 {
		q = q.Where("platform_id IN ?", f.PlatformIDs)
	}
	if len(f.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}
	if levels := validLevels(f.Levels); len(levels) > 0 {
		q = q.Where("level IN ?", levels)
	}
	if f.HaveCertificate != nil {
		q = q.Where("have_certificate = ?", *f.HaveCertificate)
	}
	if d := strings.TrimSpace(f.Duration); d != "" {
		q = q.Where("LOWER(duration) LIKE ?", "%"+strings.ToLower(d)+"%")
	}

	return f.applySort(q, locale)
}

func (f CatalogFilters) applySort(q *gorm.DB, locale string) *gorm.DB {
	column, ok := catalogSortColumns[f.SortBy]
	if !ok {
		// Unrecognized or absent sort key: newest first.
		return q.Order("created_at DESC")
	}
	if f.SortBy == "title" {
		column = localeColumn(q, "title", locale)
	}
	direction := "ASC"
	if strings.EqualFold(f.SortDirection, "desc") {
		direction = "DESC"
	}
	return q.Order(column + " " + direction)
}

func validLevels(levels []string) []string {
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		if Level(l).Valid() {
			out = append(out, l)
		}
	}
	return out
}

// ParseBool coerces the accepted query-string spellings of a boolean filter.
// Anything else returns nil, meaning no constraint.
func ParseBool(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}
