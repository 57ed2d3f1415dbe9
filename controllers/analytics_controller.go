package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"manara/config"
	"manara/models"
	"manara/utils"
)

// AnalyticsController is the admin-only reporting surface over the access
// ledgers and user registrations. Read path only; the admin middleware has
// already vetted the caller.
type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

// Report serves GET /api/admin/analytics with params type, q, sort_by,
// sort_dir, date_from, date_to.
func (ac *AnalyticsController) Report(c *fiber.Ctx) error {
	params := utils.ParsePageParams(c, utils.AdminPerPage)

	opts := models.AnalyticsOptions{
		Search:  c.Query("q"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("sort_dir"),
		Page:    params.Page,
		PerPage: params.PerPage,
	}

	var err error
	opts.DateFrom, err = parseDate(c.Query("date_from"))
	if err != nil {
		return utils.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
	}
	opts.DateTo, err = parseDate(c.Query("date_to"))
	if err != nil {
		return utils.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
	}

	switch c.Query("type", "courses") {
	case "courses":
		rows, total, err := models.QueryCourseAccesses(ac.DB, opts)
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		return c.JSON(utils.NewPage(rows, len(rows), total, params, c.Path()))
	case "scholarships":
		rows, total, err := models.QueryScholarshipAccesses(ac.DB, opts)
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		return c.JSON(utils.NewPage(rows, len(rows), total, params, c.Path()))
	case "users":
		users, total, err := models.QueryRegistrations(ac.DB, opts)
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		return c.JSON(utils.NewPage(users, len(users), total, params, c.Path()))
	}
	return utils.BadRequest(c, "Invalid type, expected courses, scholarships or users")
}

// Users is the plain admin user listing, sharing the registrations query.
func (ac *AnalyticsController) Users(c *fiber.Ctx) error {
	params := utils.ParsePageParams(c, utils.AdminPerPage)

	users, total, err := models.QueryRegistrations(ac.DB, models.AnalyticsOptions{
		Search:  c.Query("q"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("sort_dir"),
		Page:    params.Page,
		PerPage: params.PerPage,
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(utils.NewPage(users, len(users), total, params, c.Path()))
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
