package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFilterFixture(t *testing.T, db *gorm.DB) (beginner, expert Course) {
	t.Helper()
	platform, category := seedTaxonomy(t, db)

	beginner = seedCourse(t, db, Course{
		Slug:            "go-for-beginners",
		Title:           LocalizedText{En: "Go for Beginners", Ar: "جو للمبتدئين"},
		Description:     LocalizedText{En: "Learn the basics", Ar: "تعلم الأساسيات"},
		ExternalURL:     "https://example.com/go",
		Duration:        "4 weeks",
		PlatformID:      platform.ID,
		CategoryID:      category.ID,
		HaveCertificate: true,
		Level:           LevelBeginner,
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	expert = seedCourse(t, db, Course{
		Slug:            "advanced-rust",
		Title:           LocalizedText{En: "Advanced Rust", Ar: "رست متقدم"},
		Description:     LocalizedText{En: "Deep systems work", Ar: "عمل أنظمة عميق"},
		ExternalURL:     "https://example.com/rust",
		Duration:        "8 weeks",
		PlatformID:      platform.ID,
		CategoryID:      category.ID,
		HaveCertificate: false,
		Level:           LevelExpert,
		CreatedAt:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	return beginner, expert
}

func findCourses(t *testing.T, db *gorm.DB, f CatalogFilters, locale string) []Course {
	t.Helper()
	var courses []Course
	require.NoError(t, f.Apply(db.Model(&Course{}), locale).Find(&courses).Error)
	return courses
}

func slugsOf(courses []Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Slug)
	}
	return out
}

func TestFilterByLevelAndCertificate(t *testing.T) {
	db := testDB(t)
	beginner, _ := seedFilterFixture(t, db)

	got := findCourses(t, db, CatalogFilters{Levels: []string{"beginner"}}, "en")
	require.Len(t, got, 1)
	assert.Equal(t, beginner.ID, got[0].ID)

	got = findCourses(t, db, CatalogFilters{HaveCertificate: ParseBool("true")}, "en")
	require.Len(t, got, 1)
	assert.Equal(t, beginner.ID, got[0].ID)

	got = findCourses(t, db, CatalogFilters{
		Levels:          []string{"beginner"},
		HaveCertificate: ParseBool("1"),
	}, "en")
	require.Len(t, got, 1)
	assert.Equal(t, beginner.ID, got[0].ID)

	got = findCourses(t, db, CatalogFilters{Levels: []string{"intermediate"}}, "en")
	assert.Empty(t, got)
}

func TestFilterInvalidLevelIgnored(t *testing.T) {
	db := testDB(t)
	seedFilterFixture(t, db)

	got := findCourses(t, db, CatalogFilters{Levels: []string{"wizard"}}, "en")
	assert.Len(t, got, 2)
}

func TestFilterSearchMatchesTitleOrDescription(t *testing.T) {
	db := testDB(t)
	beginner, expert := seedFilterFixture(t, db)

	// Title hit, case-insensitive.
	got := findCourses(t, db, CatalogFilters{Search: "beginners"}, "en")
	require.Len(t, got, 1)
	assert.Equal(t, beginner.ID, got[0].ID)

	// Description hit.
	got = findCourses(t, db, CatalogFilters{Search: "systems"}, "en")
	require.Len(t, got, 1)
	assert.Equal(t, expert.ID, got[0].ID)

	// Arabic search against the Arabic variant.
	got = findCourses(t, db, CatalogFilters{Search: "للمبتدئين"}, "ar")
	require.Len(t, got, 1)
	assert.Equal(t, beginner.ID, got[0].ID)

	// English search does not leak into the Arabic columns.
	got = findCourses(t, db, CatalogFilters{Search: "beginners"}, "ar")
	assert.Empty(t, got)
}

func TestFilterByPlatformInSet(t *testing.T) {
	db := testDB(t)
	beginner, _ := seedFilterFixture(t, db)

	other := Platform{Name: LocalizedText{En: "Udemy", Ar: "يوديمي"}}
	require.NoError(t, db.Create(&other).Error)

	got := findCourses(t, db, CatalogFilters{PlatformIDs: []uint{beginner.PlatformID, other.ID}}, "en")
	assert.Len(t, got, 2)

	got = findCourses(t, db, CatalogFilters{PlatformIDs: []uint{other.ID}}, "en")
	assert.Empty(t, got)
}

func TestFilterDurationSubstring(t *testing.T) {
	db := testDB(t)
	_, expert := seedFilterFixture(t, db)

	got := findCourses(t, db, CatalogFilters{Duration: "8 WEEK"}, "en")
	require.Len(t, got, 1)
	assert.Equal(t, expert.ID, got[0].ID)
}

func TestDefaultSortNewestFirst(t *testing.T) {
	db := testDB(t)
	seedFilterFixture(t, db)

	got := findCourses(t, db, CatalogFilters{}, "en")
	assert.Equal(t, []string{"advanced-rust", "go-for-beginners"}, slugsOf(got))
}

func TestUnknownSortKeyFallsBack(t *testing.T) {
	db := testDB(t)
	seedFilterFixture(t, db)

	got := findCourses(t, db, CatalogFilters{SortBy: "password_hash"}, "en")
	assert.Equal(t, []string{"advanced-rust", "go-for-beginners"}, slugsOf(got))
}

func TestSortByTitleUsesActiveLocale(t *testing.T) {
	db := testDB(t)
	seedFilterFixture(t, db)

	// English: Advanced Rust < Go for Beginners.
	got := findCourses(t, db, CatalogFilters{SortBy: "title", SortDirection: "asc"}, "en")
	assert.Equal(t, []string{"advanced-rust", "go-for-beginners"}, slugsOf(got))

	// Arabic: جو... < رست... so the order flips.
	got = findCourses(t, db, CatalogFilters{SortBy: "title", SortDirection: "asc"}, "ar")
	assert.Equal(t, []string{"go-for-beginners", "advanced-rust"}, slugsOf(got))
}

func TestSortDirectionDesc(t *testing.T) {
	db := testDB(t)
	seedFilterFixture(t, db)

	got := findCourses(t, db, CatalogFilters{SortBy: "created_at", SortDirection: "desc"}, "en")
	assert.Equal(t, []string{"advanced-rust", "go-for-beginners"}, slugsOf(got))

	got = findCourses(t, db, CatalogFilters{SortBy: "created_at", SortDirection: "bogus"}, "en")
	assert.Equal(t, []string{"go-for-beginners", "advanced-rust"}, slugsOf(got))
}

func TestFilterCompositionIdempotent(t *testing.T) {
	db := testDB(t)
	seedFilterFixture(t, db)

	f := CatalogFilters{Search: "go", Levels: []string{"beginner"}, HaveCertificate: ParseBool("true")}

	once := findCourses(t, db, f, "en")

	var twice []Course
	q := f.Apply(f.Apply(db.Model(&Course{}), "en"), "en")
	require.NoError(t, q.Find(&twice).Error)

	assert.Equal(t, slugsOf(once), slugsOf(twice))
}

func TestParseBool(t *testing.T) {
	require.NotNil(t, ParseBool("true"))
	assert.True(t, *ParseBool("true"))
	assert.True(t, *ParseBool("1"))
	assert.False(t, *ParseBool("false"))
	assert.False(t, *ParseBool("0"))
	assert.Nil(t, ParseBool(""))
	assert.Nil(t, ParseBool("maybe"))
}
