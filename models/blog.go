package models

import "time"

type Blog struct {
	ID        uint          `gorm:"primarykey" json:"id"`
	Slug      string        `gorm:"uniqueIndex;size:180;not null" json:"slug"`
	Title     LocalizedText `gorm:"not null" json:"title"`
	Content   LocalizedText `gorm:"not null" json:"content"`
	Images    []Image       `gorm:"polymorphic:Owner;polymorphicValue:blog" json:"images,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
