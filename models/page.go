package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PageVision  = "vision"
	PageMission = "mission"
)

// Page holds the site's singleton vision/mission texts, keyed by kind so
// there is exactly one row per kind instead of a fetch-then-create dance.
type Page struct {
	ID        uint          `gorm:"primarykey" json:"id"`
	Kind      string        `gorm:"uniqueIndex;size:20;not null" json:"kind"`
	Content   LocalizedText `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func ValidPageKind(kind string) bool {
	return kind == PageVision || kind == PageMission
}

// GetPage fetches the singleton row for a kind, creating an empty one when
// it does not exist yet.
func GetPage(db *gorm.DB, kind string) (*Page, error) {
	var page Page
	err := db.Where(Page{Kind: kind}).FirstOrCreate(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// UpsertPage writes the singleton content for a kind.
func UpsertPage(db *gorm.DB, kind string, content LocalizedText) (*Page, error) {
	var page Page
	err := db.Where(Page{Kind: kind}).
		Assign(map[string]interface{}{"content": content}).
		FirstOrCreate(&page).Error
	if err != nil {
		return nil, err
	}
	page.Content = content
	return &page, nil
}
