package controllers

import (
	"log"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"manara/config"
	"manara/models"
	"manara/utils"
)

type imageInput struct {
	ImagePath string `json:"image_path" validate:"required"`
	IsCover   bool   `json:"is_cover"`
	IsInline  bool   `json:"is_inline"`
}

// assignSlug derives the slug from the English title, falling back to the
// entity noun when the normalized base comes out empty.
func assignSlug(db *gorm.DB, table, titleEn, fallback string, excludeID uint) (string, error) {
	base := utils.Slugify(titleEn)
	if base == "" {
		base = fallback
	}
	return utils.EnsureUniqueSlug(db, table, base, excludeID)
}

// attachImages creates the payload's image rows, claims any draft uploads,
// and re-normalizes the cover invariant for the owner.
func attachImages(tx *gorm.DB, ownerType string, ownerID uint, inputs []imageInput, draftToken string) error {
	for _, in := range inputs {
		img := models.Image{
			OwnerType: ownerType,
			OwnerID:   ownerID,
			ImagePath: in.ImagePath,
			IsCover:   in.IsCover,
			IsInline:  in.IsInline,
		}
		if err := tx.Create(&img).Error; err != nil {
			return err
		}
	}
	if err := models.AttachDraftImages(tx, draftToken, ownerType, ownerID); err != nil {
		return err
	}
	return models.NormalizeCovers(tx, ownerType, ownerID)
}

// removeImageFiles is best-effort cleanup of backing files after their rows
// are gone. Failures are logged and never block the caller.
func removeImageFiles(cfg *config.Config, paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(filepath.Join(cfg.UploadDir, p)); err != nil && !os.IsNotExist(err) {
			log.Printf("image cleanup failed for %s: %v", p, err)
		}
	}
}

func checkReferences(db *gorm.DB, platformID, categoryID uint) map[string]string {
	fields := map[string]string{}
	var count int64
	db.Model(&models.Platform{}).Where("id = ?", platformID).Count(&count)
	if count == 0 {
		fields["platform_id"] = "exists"
	}
	count = 0
	db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count)
	if count == 0 {
		fields["category_id"] = "exists"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func checkUpdatedReferences(db *gorm.DB, platformID, categoryID *uint) map[string]string {
	fields := map[string]string{}
	var count int64
	if platformID != nil {
		db.Model(&models.Platform{}).Where("id = ?", *platformID).Count(&count)
		if count == 0 {
			fields["platform_id"] = "exists"
		}
	}
	if categoryID != nil {
		count = 0
		db.Model(&models.Category{}).Where("id = ?", *categoryID).Count(&count)
		if count == 0 {
			fields["category_id"] = "exists"
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
