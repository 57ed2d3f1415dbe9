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

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// List is the public catalog listing: filter pipeline, translated fields,
// 12 per page.
func (cc *CoursesController) List(c *fiber.Ctx) error {
	locale := middleware.Locale(c)
	filters := ParseCatalogFilters(c)
	params := utils.ParsePageParams(c, utils.PublicPerPage)

	q := filters.Apply(cc.DB.Model(&models.Course{}), locale).
		Preload("Platform").Preload("Category").Preload("Images")

	var courses []models.Course
	total, err := utils.PaginateQuery(q, &courses, params)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	data := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		data = append(data, courseJSON(&courses[i], locale))
	}
	return c.JSON(utils.NewPage(data, len(courses), total, params, c.Path()))
}

// Show resolves a course by its public slug.
func (cc *CoursesController) Show(c *fiber.Ctx) error {
	locale := middleware.Locale(c)

	var course models.Course
	err := cc.DB.Preload("Platform").Preload("Category").Preload("Images").
		Where("slug = ?", c.Params("slug")).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(courseJSON(&course, locale))
}

// RecordAccess notes that the authenticated user opened the course's
// external link. Idempotent; admins are not tracked.
func (cc *CoursesController) RecordAccess(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var count int64
	if err := cc.DB.Model(&models.Course{}).Where("id = ?", courseID).Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if count == 0 {
		return utils.NotFound(c, "Course not found")
	}

	if err := models.RecordCourseAccess(cc.DB, user, uint(courseID)); err != nil {
		return utils.InternalServerError(c, "Could not record access")
	}
	return utils.NoContent(c)
}

// AdminList serves the back-office listing: same filter pipeline, raw
// localized fields, 20 per page.
func (cc *CoursesController) AdminList(c *fiber.Ctx) error {
	locale := middleware.Locale(c)
	filters := ParseCatalogFilters(c)
	params := utils.ParsePageParams(c, utils.AdminPerPage)

	q := filters.Apply(cc.DB.Model(&models.Course{}), locale).
		Preload("Platform").Preload("Category").Preload("Images")

	var courses []models.Course
	total, err := utils.PaginateQuery(q, &courses, params)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(utils.NewPage(courses, len(courses), total, params, c.Path()))
}

func (cc *CoursesController) AdminShow(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	err = cc.DB.Preload("Platform").Preload("Category").Preload("Images").
		First(&course, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(course)
}

type catalogInput struct {
	Title           models.LocalizedText `json:"title"`
	Description     models.LocalizedText `json:"description"`
	ExternalURL     string               `json:"external_url" validate:"required,url"`
	Duration        string               `json:"duration"`
	PlatformID      uint                 `json:"platform_id" validate:"required"`
	CategoryID      uint                 `json:"category_id" validate:"required"`
	HaveCertificate bool                 `json:"have_certificate"`
	Level           models.Level         `json:"level" validate:"required,oneof=beginner intermediate expert"`
	Images          []imageInput         `json:"images" validate:"dive"`
	DraftToken      string               `json:"draft_token"`
}

type catalogUpdateInput struct {
	Title           *models.LocalizedText `json:"title"`
	Description     *models.LocalizedText `json:"description"`
	ExternalURL     *string               `json:"external_url" validate:"omitempty,url"`
	Duration        *string               `json:"duration"`
	PlatformID      *uint                 `json:"platform_id"`
	CategoryID      *uint                 `json:"category_id"`
	HaveCertificate *bool                 `json:"have_certificate"`
	Level           *models.Level         `json:"level" validate:"omitempty,oneof=beginner intermediate expert"`
	Images          []imageInput          `json:"images" validate:"dive"`
	DraftToken      string                `json:"draft_token"`
}

func (cc *CoursesController) Create(c *fiber.Ctx) error {
	var input catalogInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if fields := checkReferences(cc.DB, input.PlatformID, input.CategoryID); fields != nil {
		return utils.ValidationError(c, fields)
	}

	course := models.Course{
		Title:           input.Title,
		Description:     input.Description,
		ExternalURL:     input.ExternalURL,
		Duration:        input.Duration,
		PlatformID:      input.PlatformID,
		CategoryID:      input.CategoryID,
		HaveCertificate: input.HaveCertificate,
		Level:           input.Level,
	}

	// Content row plus its initial image batch is all-or-nothing.
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := assignSlug(tx, "courses", input.Title.En, "course", 0)
		if err != nil {
			return err
		}
		course.Slug = slug

		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		return attachImages(tx, models.OwnerCourse, course.ID, input.Images, input.DraftToken)
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}
	return utils.Created(c, course)
}

func (cc *CoursesController) Update(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input catalogUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if fields := checkUpdatedReferences(cc.DB, input.PlatformID, input.CategoryID); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var staleImages []string
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if input.Title != nil {
			// Slug follows the English title only; an Arabic-only edit
			// leaves it untouched.
			if input.Title.En != course.Title.En {
				slug, err := assignSlug(tx, "courses", input.Title.En, "course", course.ID)
				if err != nil {
					return err
				}
				course.Slug = slug
			}
			course.Title = *input.Title
		}
		if input.Description != nil {
			course.Description = *input.Description
		}
		if input.ExternalURL != nil {
			course.ExternalURL = *input.ExternalURL
		}
		if input.Duration != nil {
			course.Duration = *input.Duration
		}
		if input.PlatformID != nil {
			course.PlatformID = *input.PlatformID
		}
		if input.CategoryID != nil {
			course.CategoryID = *input.CategoryID
		}
		if input.HaveCertificate != nil {
			course.HaveCertificate = *input.HaveCertificate
		}
		if input.Level != nil {
			course.Level = *input.Level
		}

		if err := tx.Save(&course).Error; err != nil {
			return err
		}

		if input.Images != nil {
			paths, err := models.DeleteOwnerImages(tx, models.OwnerCourse, course.ID)
			if err != nil {
				return err
			}
			staleImages = paths
		}
		return attachImages(tx, models.OwnerCourse, course.ID, input.Images, input.DraftToken)
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	removeImageFiles(cc.Cfg, staleImages)
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) Delete(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var stale []string
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		paths, err := models.DeleteOwnerImages(tx, models.OwnerCourse, course.ID)
		if err != nil {
			return err
		}
		stale = paths
		return tx.Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	removeImageFiles(cc.Cfg, stale)
	return utils.NoContent(c)
}
