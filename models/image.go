package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OwnerCourse      = "course"
	OwnerScholarship = "scholarship"
	OwnerBlog        = "blog"
)

// Image is attached polymorphically to a course, scholarship or blog through
// the (owner_type, owner_id) pair. A row created before its owner exists
// (inline editor uploads) carries a draft token instead and is reconciled by
// AttachDraftImages once the owner is saved.
type Image struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OwnerType  string         `gorm:"size:20;index:idx_image_owner" json:"owner_type"`
	OwnerID    uint           `gorm:"index:idx_image_owner" json:"owner_id"`
	ImagePath  string         `gorm:"not null" json:"image_path"`
	IsCover    bool           `json:"is_cover"`
	IsInline   bool           `json:"is_inline"`
	Meta       datatypes.JSON `json:"meta,omitempty"`
	DraftToken *string        `gorm:"index" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NormalizeCovers enforces the cover invariant for one owner: at most one
// image has is_cover set, and if images exist with no cover the oldest
// non-inline one is promoted.
func NormalizeCovers(db *gorm.DB, ownerType string, ownerID uint) error {
	var images []Image
	if err := db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("id ASC").Find(&images).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}

	coverID := uint(0)
	for _, img := range images {
		if img.IsCover {
			coverID = img.ID
			break
		}
	}
	if coverID == 0 {
		for _, img := range images {
			if !img.IsInline {
				coverID = img.ID
				break
			}
		}
	}
	if coverID == 0 {
		coverID = images[0].ID
	}

	for _, img := range images {
		want := img.ID == coverID
		if img.IsCover == want {
			continue
		}
		if err := db.Model(&Image{}).Where("id = ?", img.ID).
			Update("is_cover", want).Error; err != nil {
			return err
		}
	}
	return nil
}

// AttachDraftImages claims every image uploaded under the given draft token
// for the owner and clears the token.
func AttachDraftImages(db *gorm.DB, token, ownerType string, ownerID uint) error {
	if token == "" {
		return nil
	}
	return db.Model(&Image{}).Where("draft_token = ?", token).
		Updates(map[string]interface{}{
			"owner_type":  ownerType,
			"owner_id":    ownerID,
			"draft_token": nil,
		}).Error
}

// DeleteOwnerImages removes all image rows of an owner and returns the
// backing paths so the caller can clean up files best-effort.
func DeleteOwnerImages(db *gorm.DB, ownerType string, ownerID uint) ([]string, error) {
	var images []Image
	if err := db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Find(&images).Error; err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}
	if err := db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Delete(&Image{}).Error; err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(images))
	for _, img := range images {
		paths = append(paths, img.ImagePath)
	}
	return paths, nil
}

// CoverImage picks the cover out of a preloaded image list.
func CoverImage(images []Image) *Image {
	for i := range images {
		if images[i].IsCover {
			return &images[i]
		}
	}
	return nil
}
