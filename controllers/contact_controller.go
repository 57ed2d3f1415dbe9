package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"manara/config"
	"manara/models"
	"manara/utils"
)

type ContactController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewContactController(db *gorm.DB, cfg *config.Config) *ContactController {
	return &ContactController{DB: db, Cfg: cfg}
}

type contactInput struct {
	FullName       string  `json:"full_name" validate:"required"`
	WhatsappNumber string  `json:"whatsapp_number" validate:"required"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Message        string  `json:"message" validate:"required"`
}

func (cc *ContactController) Create(c *fiber.Ctx) error {
	var input contactInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	message := models.ContactMessage{
		FullName:       input.FullName,
		WhatsappNumber: input.WhatsappNumber,
		Email:          input.Email,
		Message:        input.Message,
	}
	if err := cc.DB.Create(&message).Error; err != nil {
		return utils.InternalServerError(c, "Could not save message")
	}
	return utils.Created(c, message)
}

func (cc *ContactController) AdminList(c *fiber.Ctx) error {
	params := utils.ParsePageParams(c, utils.AdminPerPage)

	q := cc.DB.Model(&models.ContactMessage{}).Order("created_at DESC")

	var messages []models.ContactMessage
	total, err := utils.PaginateQuery(q, &messages, params)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(utils.NewPage(messages, len(messages), total, params, c.Path()))
}
