package models

import "time"

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelExpert:
		return true
	}
	return false
}

type Platform struct {
	ID           uint          `gorm:"primarykey" json:"id"`
	Name         LocalizedText `gorm:"not null" json:"name"`
	Courses      []Course      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Scholarships []Scholarship `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Category struct {
	ID           uint          `gorm:"primarykey" json:"id"`
	Name         LocalizedText `gorm:"not null" json:"name"`
	Courses      []Course      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Scholarships []Scholarship `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type Course struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Slug            string         `gorm:"uniqueIndex;size:180;not null" json:"slug"`
	Title           LocalizedText  `gorm:"not null" json:"title"`
	Description     LocalizedText  `gorm:"not null" json:"description"`
	ExternalURL     string         `gorm:"not null" json:"external_url"`
	Duration        string         `json:"duration"`
	PlatformID      uint           `gorm:"index;not null" json:"platform_id"`
	CategoryID      uint           `gorm:"index;not null" json:"category_id"`
	HaveCertificate bool           `json:"have_certificate"`
	Level           Level          `gorm:"size:20;not null" json:"level"`
	Platform        *Platform      `json:"platform,omitempty"`
	Category        *Category      `json:"category,omitempty"`
	Images          []Image        `gorm:"polymorphic:Owner;polymorphicValue:course" json:"images,omitempty"`
	Accesses        []CourseAccess `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Scholarship mirrors Course on purpose: the two catalogs are filtered and
// sorted by the same pipeline but live in separate tables with separate slug
// scopes.
type Scholarship struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	Slug            string              `gorm:"uniqueIndex;size:180;not null" json:"slug"`
	Title           LocalizedText       `gorm:"not null" json:"title"`
	Description     LocalizedText       `gorm:"not null" json:"description"`
	ExternalURL     string              `gorm:"not null" json:"external_url"`
	Duration        string              `json:"duration"`
	PlatformID      uint                `gorm:"index;not null" json:"platform_id"`
	CategoryID      uint                `gorm:"index;not null" json:"category_id"`
	HaveCertificate bool                `json:"have_certificate"`
	Level           Level               `gorm:"size:20;not null" json:"level"`
	Platform        *Platform           `json:"platform,omitempty"`
	Category        *Category           `json:"category,omitempty"`
	Images          []Image             `gorm:"polymorphic:Owner;polymorphicValue:scholarship" json:"images,omitempty"`
	Accesses        []ScholarshipAccess `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
