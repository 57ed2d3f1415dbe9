package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"manara/config"
	"manara/middleware"
	"manara/models"
	"manara/utils"
)

// PagesController serves the vision/mission singleton texts.
type PagesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPagesController(db *gorm.DB, cfg *config.Config) *PagesController {
	return &PagesController{DB: db, Cfg: cfg}
}

func (pc *PagesController) Show(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if !models.ValidPageKind(kind) {
		return utils.NotFound(c, "Page not found")
	}

	page, err := models.GetPage(pc.DB, kind)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	locale := middleware.Locale(c)
	return c.JSON(fiber.Map{
		"kind":    page.Kind,
		"content": page.Content.Translate(locale),
	})
}

func (pc *PagesController) AdminShow(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if !models.ValidPageKind(kind) {
		return utils.NotFound(c, "Page not found")
	}

	page, err := models.GetPage(pc.DB, kind)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(page)
}

type pageInput struct {
	Content models.LocalizedText `json:"content"`
}

func (pc *PagesController) Upsert(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if !models.ValidPageKind(kind) {
		return utils.NotFound(c, "Page not found")
	}

	var input pageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	page, err := models.UpsertPage(pc.DB, kind, input.Content)
	if err != nil {
		return utils.InternalServerError(c, "Could not save page")
	}
	return utils.Success(c, fiber.StatusOK, page)
}
