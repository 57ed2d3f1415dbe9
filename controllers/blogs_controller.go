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

type BlogsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewBlogsController(db *gorm.DB, cfg *config.Config) *BlogsController {
	return &BlogsController{DB: db, Cfg: cfg}
}

func (bc *BlogsController) List(c *fiber.Ctx) error {
	locale := middleware.Locale(c)
	params := utils.ParsePageParams(c, utils.PublicPerPage)

	q := bc.DB.Model(&models.Blog{}).Preload("Images").Order("created_at DESC")

	var blogs []models.Blog
	total, err := utils.PaginateQuery(q, &blogs, params)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	data := make([]fiber.Map, 0, len(blogs))
	for i := range blogs {
		data = append(data, blogJSON(&blogs[i], locale, false))
	}
	return c.JSON(utils.NewPage(data, len(blogs), total, params, c.Path()))
}

func (bc *BlogsController) Show(c *fiber.Ctx) error {
	locale := middleware.Locale(c)

	var blog models.Blog
	err := bc.DB.Preload("Images").Where("slug = ?", c.Params("slug")).First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Blog not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(blogJSON(&blog, locale, true))
}

func (bc *BlogsController) AdminList(c *fiber.Ctx) error {
	params := utils.ParsePageParams(c, utils.AdminPerPage)

	q := bc.DB.Model(&models.Blog{}).Preload("Images").Order("created_at DESC")

	var blogs []models.Blog
	total, err := utils.PaginateQuery(q, &blogs, params)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(utils.NewPage(blogs, len(blogs), total, params, c.Path()))
}

func (bc *BlogsController) AdminShow(c *fiber.Ctx) error {
	blogID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid blog ID")
	}

	var blog models.Blog
	if err := bc.DB.Preload("Images").First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Blog not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(blog)
}

type blogInput struct {
	Title      models.LocalizedText `json:"title"`
	Content    models.LocalizedText `json:"content"`
	Images     []imageInput         `json:"images" validate:"dive"`
	DraftToken string               `json:"draft_token"`
}

type blogUpdateInput struct {
	Title      *models.LocalizedText `json:"title"`
	Content    *models.LocalizedText `json:"content"`
	Images     []imageInput          `json:"images" validate:"dive"`
	DraftToken string                `json:"draft_token"`
}

func (bc *BlogsController) Create(c *fiber.Ctx) error {
	var input blogInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	blog := models.Blog{
		Title:   input.Title,
		Content: input.Content,
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		slug, err := assignSlug(tx, "blogs", input.Title.En, "blog", 0)
		if err != nil {
			return err
		}
		blog.Slug = slug

		if err := tx.Create(&blog).Error; err != nil {
			return err
		}
		return attachImages(tx, models.OwnerBlog, blog.ID, input.Images, input.DraftToken)
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not create blog")
	}
	return utils.Created(c, blog)
}

func (bc *BlogsController) Update(c *fiber.Ctx) error {
	blogID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid blog ID")
	}

	var input blogUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var blog models.Blog
	if err := bc.DB.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Blog not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var staleImages []string
	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		if input.Title != nil {
			if input.Title.En != blog.Title.En {
				slug, err := assignSlug(tx, "blogs", input.Title.En, "blog", blog.ID)
				if err != nil {
					return err
				}
				blog.Slug = slug
			}
			blog.Title = *input.Title
		}
		if input.Content != nil {
			blog.Content = *input.Content
		}

		if err := tx.Save(&blog).Error; err != nil {
			return err
		}

		if input.Images != nil {
			paths, err := models.DeleteOwnerImages(tx, models.OwnerBlog, blog.ID)
			if err != nil {
				return err
			}
			staleImages = paths
		}
		return attachImages(tx, models.OwnerBlog, blog.ID, input.Images, input.DraftToken)
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update blog")
	}

	removeImageFiles(bc.Cfg, staleImages)
	return utils.Success(c, fiber.StatusOK, blog)
}

func (bc *BlogsController) Delete(c *fiber.Ctx) error {
	blogID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid blog ID")
	}

	var blog models.Blog
	if err := bc.DB.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Blog not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var stale []string
	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		paths, err := models.DeleteOwnerImages(tx, models.OwnerBlog, blog.ID)
		if err != nil {
			return err
		}
		stale = paths
		return tx.Delete(&blog).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete blog")
	}

	removeImageFiles(bc.Cfg, stale)
	return utils.NoContent(c)
}
