package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&User{},
		&Platform{},
		&Category{},
		&Course{},
		&Scholarship{},
		&Blog{},
		&Image{},
		&Page{},
		&CourseAccess{},
		&ScholarshipAccess{},
		&ContactMessage{},
	))
	return db
}

func seedTaxonomy(t *testing.T, db *gorm.DB) (Platform, Category) {
	t.Helper()
	platform := Platform{Name: LocalizedText{En: "Coursera", Ar: "كورسيرا"}}
	require.NoError(t, db.Create(&platform).Error)
	category := Category{Name: LocalizedText{En: "Programming", Ar: "برمجة"}}
	require.NoError(t, db.Create(&category).Error)
	return platform, category
}

func seedCourse(t *testing.T, db *gorm.DB, course Course) Course {
	t.Helper()
	if course.Slug == "" {
		course.Slug = fmt.Sprintf("course-%d", time.Now().UnixNano())
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, admin bool) User {
	t.Helper()
	user := User{Name: name, Email: email, IsAdmin: admin, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
