package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"manara/config"
	"manara/middleware"
	"manara/models"
	"manara/utils"
)

// TaxonomyController serves platforms and categories: the two lookup tables
// every catalog item hangs off. Deleting either cascades to the owned
// courses and scholarships through the foreign keys; their image rows are
// cleaned up here since the polymorphic link carries no constraint.
type TaxonomyController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTaxonomyController(db *gorm.DB, cfg *config.Config) *TaxonomyController {
	return &TaxonomyController{DB: db, Cfg: cfg}
}

type namedInput struct {
	Name models.LocalizedText `json:"name"`
}

func (tc *TaxonomyController) ListPlatforms(c *fiber.Ctx) error {
	locale := middleware.Locale(c)

	var platforms []models.Platform
	if err := tc.DB.Order("id ASC").Find(&platforms).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	data := make([]fiber.Map, 0, len(platforms))
	for _, p := range platforms {
		data = append(data, namedJSON(p.ID, p.Name, locale))
	}
	return c.JSON(data)
}

func (tc *TaxonomyController) ListCategories(c *fiber.Ctx) error {
	locale := middleware.Locale(c)

	var categories []models.Category
	if err := tc.DB.Order("id ASC").Find(&categories).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	data := make([]fiber.Map, 0, len(categories))
	for _, cat := range categories {
		data = append(data, namedJSON(cat.ID, cat.Name, locale))
	}
	return c.JSON(data)
}

func (tc *TaxonomyController) AdminListPlatforms(c *fiber.Ctx) error {
	var platforms []models.Platform
	if err := tc.DB.Order("id ASC").Find(&platforms).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(platforms)
}

func (tc *TaxonomyController) AdminListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := tc.DB.Order("id ASC").Find(&categories).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(categories)
}

func (tc *TaxonomyController) CreatePlatform(c *fiber.Ctx) error {
	var input namedInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	platform := models.Platform{Name: input.Name}
	if err := tc.DB.Create(&platform).Error; err != nil {
		return utils.InternalServerError(c, "Could not create platform")
	}
	return utils.Created(c, platform)
}

func (tc *TaxonomyController) CreateCategory(c *fiber.Ctx) error {
	var input namedInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	category := models.Category{Name: input.Name}
	if err := tc.DB.Create(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not create category")
	}
	return utils.Created(c, category)
}

func (tc *TaxonomyController) UpdatePlatform(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid platform ID")
	}

	var input namedInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var platform models.Platform
	if err := tc.DB.First(&platform, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Platform not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	platform.Name = input.Name
	if err := tc.DB.Save(&platform).Error; err != nil {
		return utils.InternalServerError(c, "Could not update platform")
	}
	return utils.Success(c, fiber.StatusOK, platform)
}

func (tc *TaxonomyController) UpdateCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var input namedInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var category models.Category
	if err := tc.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	category.Name = input.Name
	if err := tc.DB.Save(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not update category")
	}
	return utils.Success(c, fiber.StatusOK, category)
}

func (tc *TaxonomyController) DeletePlatform(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid platform ID")
	}

	var platform models.Platform
	if err := tc.DB.First(&platform, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Platform not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var stale []string
	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		paths, err := deleteOwnedCatalogImages(tx, "platform_id", platform.ID)
		if err != nil {
			return err
		}
		stale = paths
		return tx.Delete(&platform).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete platform")
	}

	removeImageFiles(tc.Cfg, stale)
	return utils.NoContent(c)
}

func (tc *TaxonomyController) DeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var category models.Category
	if err := tc.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var stale []string
	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		paths, err := deleteOwnedCatalogImages(tx, "category_id", category.ID)
		if err != nil {
			return err
		}
		stale = paths
		return tx.Delete(&category).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete category")
	}

	removeImageFiles(tc.Cfg, stale)
	return utils.NoContent(c)
}

// deleteOwnedCatalogImages removes the image rows of every course and
// scholarship owned through the given foreign key, ahead of the cascade that
// will take the rows themselves.
func deleteOwnedCatalogImages(tx *gorm.DB, fk string, id uint) ([]string, error) {
	var stale []string

	var courseIDs []uint
	if err := tx.Model(&models.Course{}).Where(fk+" = ?", id).
		Pluck("id", &courseIDs).Error; err != nil {
		return nil, err
	}
	for _, cid := range courseIDs {
		paths, err := models.DeleteOwnerImages(tx, models.OwnerCourse, cid)
		if err != nil {
			return nil, err
		}
		stale = append(stale, paths...)
	}

	var scholarshipIDs []uint
	if err := tx.Model(&models.Scholarship{}).Where(fk+" = ?", id).
		Pluck("id", &scholarshipIDs).Error; err != nil {
		return nil, err
	}
	for _, sid := range scholarshipIDs {
		paths, err := models.DeleteOwnerImages(tx, models.OwnerScholarship, sid)
		if err != nil {
			return nil, err
		}
		stale = append(stale, paths...)
	}

	return stale, nil
}
