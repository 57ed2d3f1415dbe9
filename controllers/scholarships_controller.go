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

type ScholarshipsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewScholarshipsController(db *gorm.DB, cfg *config.Config) *ScholarshipsController {
	return &ScholarshipsController{DB: db, Cfg: cfg}
}

func (sc *ScholarshipsController) List(c *fiber.Ctx) error {
	locale := middleware.Locale(c)
	filters := ParseCatalogFilters(c)
	params := utils.ParsePageParams(c, utils.PublicPerPage)

	q := filters.Apply(sc.DB.Model(&models.Scholarship{}), locale).
		Preload("Platform").Preload("Category").Preload("Images")

	var scholarships []models.Scholarship
	total, err := utils.PaginateQuery(q, &scholarships, params)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	data := make([]fiber.Map, 0, len(scholarships))
	for i := range scholarships {
		data = append(data, scholarshipJSON(&scholarships[i], locale))
	}
	return c.JSON(utils.NewPage(data, len(scholarships), total, params, c.Path()))
}

func (sc *ScholarshipsController) Show(c *fiber.Ctx) error {
	locale := middleware.Locale(c)

	var scholarship models.Scholarship
	err := sc.DB.Preload("Platform").Preload("Category").Preload("Images").
		Where("slug = ?", c.Params("slug")).First(&scholarship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Scholarship not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(scholarshipJSON(&scholarship, locale))
}

func (sc *ScholarshipsController) RecordAccess(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	scholarshipID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid scholarship ID")
	}

	var count int64
	if err := sc.DB.Model(&models.Scholarship{}).Where("id = ?", scholarshipID).Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if count == 0 {
		return utils.NotFound(c, "Scholarship not found")
	}

	if err := models.RecordScholarshipAccess(sc.DB, user, uint(scholarshipID)); err != nil {
		return utils.InternalServerError(c, "Could not record access")
	}
	return utils.NoContent(c)
}

func (sc *ScholarshipsController) AdminList(c *fiber.Ctx) error {
	locale := middleware.Locale(c)
	filters := ParseCatalogFilters(c)
	params := utils.ParsePageParams(c, utils.AdminPerPage)

	q := filters.Apply(sc.DB.Model(&models.Scholarship{}), locale).
		Preload("Platform").Preload("Category").Preload("Images")

	var scholarships []models.Scholarship
	total, err := utils.PaginateQuery(q, &scholarships, params)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(utils.NewPage(scholarships, len(scholarships), total, params, c.Path()))
}

func (sc *ScholarshipsController) AdminShow(c *fiber.Ctx) error {
	scholarshipID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid scholarship ID")
	}

	var scholarship models.Scholarship
	err = sc.DB.Preload("Platform").Preload("Category").Preload("Images").
		First(&scholarship, scholarshipID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Scholarship not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(scholarship)
}

func (sc *ScholarshipsController) Create(c *fiber.Ctx) error {
	var input catalogInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if fields := checkReferences(sc.DB, input.PlatformID, input.CategoryID); fields != nil {
		return utils.ValidationError(c, fields)
	}

	scholarship := models.Scholarship{
		Title:           input.Title,
		Description:     input.Description,
		ExternalURL:     input.ExternalURL,
		Duration:        input.Duration,
		PlatformID:      input.PlatformID,
		CategoryID:      input.CategoryID,
		HaveCertificate: input.HaveCertificate,
		Level:           input.Level,
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := assignSlug(tx, "scholarships", input.Title.En, "scholarship", 0)
		if err != nil {
			return err
		}
		scholarship.Slug = slug

		if err := tx.Create(&scholarship).Error; err != nil {
			return err
		}
		return attachImages(tx, models.OwnerScholarship, scholarship.ID, input.Images, input.DraftToken)
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not create scholarship")
	}
	return utils.Created(c, scholarship)
}

func (sc *ScholarshipsController) Update(c *fiber.Ctx) error {
	scholarshipID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid scholarship ID")
	}

	var input catalogUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var scholarship models.Scholarship
	if err := sc.DB.First(&scholarship, scholarshipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Scholarship not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if fields := checkUpdatedReferences(sc.DB, input.PlatformID, input.CategoryID); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var staleImages []string
	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		if input.Title != nil {
			if input.Title.En != scholarship.Title.En {
				slug, err := assignSlug(tx, "scholarships", input.Title.En, "scholarship", scholarship.ID)
				if err != nil {
					return err
				}
				scholarship.Slug = slug
			}
			scholarship.Title = *input.Title
		}
		if input.Description != nil {
			scholarship.Description = *input.Description
		}
		if input.ExternalURL != nil {
			scholarship.ExternalURL = *input.ExternalURL
		}
		if input.Duration != nil {
			scholarship.Duration = *input.Duration
		}
		if input.PlatformID != nil {
			scholarship.PlatformID = *input.PlatformID
		}
		if input.CategoryID != nil {
			scholarship.CategoryID = *input.CategoryID
		}
		if input.HaveCertificate != nil {
			scholarship.HaveCertificate = *input.HaveCertificate
		}
		if input.Level != nil {
			scholarship.Level = *input.Level
		}

		if err := tx.Save(&scholarship).Error; err != nil {
			return err
		}

		if input.Images != nil {
			paths, err := models.DeleteOwnerImages(tx, models.OwnerScholarship, scholarship.ID)
			if err != nil {
				return err
			}
			staleImages = paths
		}
		return attachImages(tx, models.OwnerScholarship, scholarship.ID, input.Images, input.DraftToken)
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update scholarship")
	}

	removeImageFiles(sc.Cfg, staleImages)
	return utils.Success(c, fiber.StatusOK, scholarship)
}

func (sc *ScholarshipsController) Delete(c *fiber.Ctx) error {
	scholarshipID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid scholarship ID")
	}

	var scholarship models.Scholarship
	if err := sc.DB.First(&scholarship, scholarshipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Scholarship not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var stale []string
	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		paths, err := models.DeleteOwnerImages(tx, models.OwnerScholarship, scholarship.ID)
		if err != nil {
			return err
		}
		stale = paths
		return tx.Delete(&scholarship).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete scholarship")
	}

	removeImageFiles(sc.Cfg, stale)
	return utils.NoContent(c)
}
