package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAnalyticsFixture(t *testing.T, db *gorm.DB) (early, late CourseAccess) {
	t.Helper()
	platform, category := seedTaxonomy(t, db)

	alice := seedUser(t, db, "Alice", "alice@example.com", false)
	bob := seedUser(t, db, "Bob", "bob@example.com", false)

	golang := seedCourse(t, db, Course{
		Slug:        "go-course",
		Title:       LocalizedText{En: "Go Course", Ar: "دورة جو"},
		Description: LocalizedText{En: "Go", Ar: "جو"},
		ExternalURL: "https://example.com/go",
		PlatformID:  platform.ID,
		CategoryID:  category.ID,
		Level:       LevelBeginner,
	})
	rust := seedCourse(t, db, Course{
		Slug:        "rust-course",
		Title:       LocalizedText{En: "Rust Course", Ar: "دورة رست"},
		Description: LocalizedText{En: "Rust", Ar: "رست"},
		ExternalURL: "https://example.com/rust",
		PlatformID:  platform.ID,
		CategoryID:  category.ID,
		Level:       LevelExpert,
	})

	early = CourseAccess{
		UserID:    alice.ID,
		CourseID:  golang.ID,
		CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&early).Error)

	late = CourseAccess{
		UserID:    bob.ID,
		CourseID:  rust.ID,
		CreatedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&late).Error)
	return early, late
}

func TestAnalyticsJoinedRow(t *testing.T) {
	db := testDB(t)
	seedAnalyticsFixture(t, db)

	rows, total, err := QueryCourseAccesses(db, AnalyticsOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	// Default sort is newest access first.
	assert.Equal(t, "Bob", rows[0].UserName)
	assert.Equal(t, "bob@example.com", rows[0].UserEmail)
	assert.Equal(t, "Rust Course", rows[0].TitleEn)
	assert.Equal(t, "دورة رست", rows[0].TitleAr)
}

func TestAnalyticsDateBounding(t *testing.T) {
	db := testDB(t)
	seedAnalyticsFixture(t, db)

	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rows, total, err := QueryCourseAccesses(db, AnalyticsOptions{DateFrom: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].UserName)

	// date_to is inclusive end-of-day: an access on Jan 1 survives a
	// date_to of Jan 1, one on Feb 1 does not survive Jan 31.
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	rows, total, err = QueryCourseAccesses(db, AnalyticsOptions{DateTo: &to})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].UserName)

	sameDay := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, total, err = QueryCourseAccesses(db, AnalyticsOptions{DateTo: &sameDay})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestAnalyticsSearchJoinedColumns(t *testing.T) {
	db := testDB(t)
	seedAnalyticsFixture(t, db)

	// User email.
	rows, _, err := QueryCourseAccesses(db, AnalyticsOptions{Search: "alice@"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].UserName)

	// English title.
	rows, _, err = QueryCourseAccesses(db, AnalyticsOptions{Search: "rust"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].UserName)

	// Arabic title.
	rows, _, err = QueryCourseAccesses(db, AnalyticsOptions{Search: "دورة جو"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].UserName)

	rows, _, err = QueryCourseAccesses(db, AnalyticsOptions{Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAnalyticsSortAllowList(t *testing.T) {
	db := testDB(t)
	seedAnalyticsFixture(t, db)

	rows, _, err := QueryCourseAccesses(db, AnalyticsOptions{SortBy: "user_name", SortDir: "asc"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].UserName)

	// Anything off the allow-list falls back to created_at descending.
	rows, _, err = QueryCourseAccesses(db, AnalyticsOptions{SortBy: "password_hash; DROP TABLE users"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bob", rows[0].UserName)
}

func TestAnalyticsPagination(t *testing.T) {
	db := testDB(t)
	seedAnalyticsFixture(t, db)

	rows, total, err := QueryCourseAccesses(db, AnalyticsOptions{Page: 2, PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].UserName)
}

func TestQueryRegistrations(t *testing.T) {
	db := testDB(t)

	carol := seedUser(t, db, "Carol", "carol@example.com", false)
	carol.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(&carol).Error)
	dave := seedUser(t, db, "Dave", "dave@example.com", false)
	dave.CreatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Save(&dave).Error)

	users, total, err := QueryRegistrations(db, AnalyticsOptions{SortBy: "name", SortDir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	assert.Equal(t, "Carol", users[0].Name)

	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	users, total, err = QueryRegistrations(db, AnalyticsOptions{DateFrom: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Dave", users[0].Name)

	users, _, err = QueryRegistrations(db, AnalyticsOptions{Search: "carol"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Carol", users[0].Name)
}
