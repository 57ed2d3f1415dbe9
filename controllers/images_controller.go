package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"manara/config"
	"manara/models"
	"manara/utils"
)

type ImagesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewImagesController(db *gorm.DB, cfg *config.Config) *ImagesController {
	return &ImagesController{DB: db, Cfg: cfg}
}

type draftImageInput struct {
	ImagePath string         `json:"image_path" validate:"required"`
	IsInline  bool           `json:"is_inline"`
	Meta      datatypes.JSON `json:"meta"`
}

// CreateDraft registers an image uploaded before its owning record exists
// (rich-text editors upload inline images first). The returned draft token
// is echoed back in the later create/update call, which claims the rows.
func (ic *ImagesController) CreateDraft(c *fiber.Ctx) error {
	var input draftImageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	token := c.Query("draft_token")
	if token == "" {
		token = uuid.NewString()
	}

	image := models.Image{
		ImagePath:  input.ImagePath,
		IsInline:   input.IsInline,
		Meta:       input.Meta,
		DraftToken: &token,
	}
	if err := ic.DB.Create(&image).Error; err != nil {
		return utils.InternalServerError(c, "Could not save image")
	}

	return utils.Created(c, fiber.Map{
		"id":          image.ID,
		"image_path":  image.ImagePath,
		"draft_token": token,
	})
}
