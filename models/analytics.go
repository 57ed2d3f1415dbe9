package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// AnalyticsOptions drives the admin reporting queries. DateTo is a calendar
// date bound interpreted as end of that day.
type AnalyticsOptions struct {
	Search   string
	SortBy   string
	SortDir  string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PerPage  int
}

func (o AnalyticsOptions) limit() int {
	if o.PerPage < 1 {
		return 20
	}
	return o.PerPage
}

func (o AnalyticsOptions) offset() int {
	page := o.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * o.limit()
}

func (o AnalyticsOptions) direction() string {
	if strings.EqualFold(o.SortDir, "asc") {
		return "ASC"
	}
	return "DESC"
}

// AccessRow is one joined access-ledger record for the admin report. Both
// title variants are exposed: the admin view shows either language.
type AccessRow struct {
	AccessedAt time.Time `json:"accessed_at"`
	UserID     uint      `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	ItemID     uint      `json:"item_id"`
	TitleEn    string    `json:"title_en"`
	TitleAr    string    `json:"title_ar"`
}

func QueryCourseAccesses(db *gorm.DB, opts AnalyticsOptions) ([]AccessRow, int64, error) {
	return queryAccesses(db, "course_accesses", "courses", "course_id", opts)
}

func QueryScholarshipAccesses(db *gorm.DB, opts AnalyticsOptions) ([]AccessRow, int64, error) {
	return queryAccesses(db, "scholarship_accesses", "scholarships", "scholarship_id", opts)
}

func queryAccesses(db *gorm.DB, ledger, items, fk string, opts AnalyticsOptions) ([]AccessRow, int64, error) {
	titleEn := localeColumn(db, items+".title", LocaleEN)
	titleAr := localeColumn(db, items+".title", LocaleAR)

	base := func() *gorm.DB {
		q := db.Table(ledger).
			Joins(fmt.Sprintf("JOIN users ON users.id = %s.user_id", ledger)).
			Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.%s", items, items, ledger, fk))
		if s := strings.TrimSpace(opts.Search); s != "" {
			pattern := "%" + strings.ToLower(s) + "%"
			q = q.Where(
				fmt.Sprintf(
					"LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(%s) LIKE ? OR LOWER(%s) LIKE ?",
					titleEn, titleAr,
				),
				pattern, pattern, pattern, pattern,
			)
		}
		return dateBound(q, ledger+".created_at", opts)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortable := map[string]string{
		"created_at": ledger + ".created_at",
		"user_name":  "users.name",
		"title":      titleEn,
	}
	column, ok := sortable[opts.SortBy]
	if !ok {
		column = sortable["created_at"]
	}

	var rows []AccessRow
	err := base().
		Select(fmt.Sprintf(
			"%s.created_at AS accessed_at, users.id AS user_id, users.name AS user_name, "+
				"users.email AS user_email, %s.id AS item_id, %s AS title_en, %s AS title_ar",
			ledger, items, titleEn, titleAr,
		)).
		Order(column + " " + opts.direction()).
		Limit(opts.limit()).Offset(opts.offset()).
		Scan(&rows).Error
	return rows, total, err
}

// QueryRegistrations is the users variant of the report: raw registrations,
// no join.
func QueryRegistrations(db *gorm.DB, opts AnalyticsOptions) ([]User, int64, error) {
	base := func() *gorm.DB {
		q := db.Model(&User{})
		if s := strings.TrimSpace(opts.Search); s != "" {
			pattern := "%" + strings.ToLower(s) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
		}
		return dateBound(q, "users.created_at", opts)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortable := map[string]string{
		"created_at": "users.created_at",
		"name":       "users.name",
		"email":      "users.email",
	}
	column, ok := sortable[opts.SortBy]
	if !ok {
		column = sortable["created_at"]
	}

	var users []User
	err := base().
		Order(column + " " + opts.direction()).
		Limit(opts.limit()).Offset(opts.offset()).
		Find(&users).Error
	return users, total, err
}

func dateBound(q *gorm.DB, column string, opts AnalyticsOptions) *gorm.DB {
	if opts.DateFrom != nil {
		q = q.Where(column+" >= ?", *opts.DateFrom)
	}
	if opts.DateTo != nil {
		// Inclusive end of day: strictly before the next midnight.
		q = q.Where(column+" < ?", opts.DateTo.AddDate(0, 0, 1))
	}
	return q
}
