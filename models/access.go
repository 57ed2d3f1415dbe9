package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// CourseAccess records that a user opened a course's external link at least
// once. Unique on (user_id, course_id); re-opening never adds rows.
type CourseAccess struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_course_access;not null" json:"user_id"`
	CourseID  uint      `gorm:"uniqueIndex:idx_course_access;not null" json:"course_id"`
	User      *User     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ScholarshipAccess struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	UserID        uint         `gorm:"uniqueIndex:idx_scholarship_access;not null" json:"user_id"`
	ScholarshipID uint         `gorm:"uniqueIndex:idx_scholarship_access;not null" json:"scholarship_id"`
	User          *User        `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// RecordCourseAccess is the idempotent "user pressed this course" upsert.
// Admins are not tracked as consumers: the call succeeds without writing.
// The existing row keeps its original created_at. A concurrent duplicate
// insert loses against the unique index and is treated as success.
func RecordCourseAccess(db *gorm.DB, user *User, courseID uint) error {
	if user.IsAdmin {
		return nil
	}
	access := CourseAccess{UserID: user.ID, CourseID: courseID}
	err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).
		FirstOrCreate(&access).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func RecordScholarshipAccess(db *gorm.DB, user *User, scholarshipID uint) error {
	if user.IsAdmin {
		return nil
	}
	access := ScholarshipAccess{UserID: user.ID, ScholarshipID: scholarshipID}
	err := db.Where("user_id = ? AND scholarship_id = ?", user.ID, scholarshipID).
		FirstOrCreate(&access).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
