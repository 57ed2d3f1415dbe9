package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"manara/config"
	"manara/controllers"
	"manara/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	app.Use(middleware.LocaleMiddleware())

	authMiddleware := middleware.AuthMiddleware(db, cfg)
	adminMiddleware := middleware.AdminMiddleware()

	// Auth
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// Public catalog
	coursesController := controllers.NewCoursesController(db, cfg)
	app.Get("/api/courses", coursesController.List)
	app.Get("/api/courses/:slug", coursesController.Show)
	app.Post("/api/courses/:id/access", authMiddleware, coursesController.RecordAccess)

	scholarshipsController := controllers.NewScholarshipsController(db, cfg)
	app.Get("/api/scholarships", scholarshipsController.List)
	app.Get("/api/scholarships/:slug", scholarshipsController.Show)
	app.Post("/api/scholarships/:id/access", authMiddleware, scholarshipsController.RecordAccess)

	taxonomyController := controllers.NewTaxonomyController(db, cfg)
	app.Get("/api/platforms", taxonomyController.ListPlatforms)
	app.Get("/api/categories", taxonomyController.ListCategories)

	blogsController := controllers.NewBlogsController(db, cfg)
	app.Get("/api/blogs", blogsController.List)
	app.Get("/api/blogs/:slug", blogsController.Show)

	pagesController := controllers.NewPagesController(db, cfg)
	app.Get("/api/pages/:kind", pagesController.Show)

	contactController := controllers.NewContactController(db, cfg)
	app.Post("/api/contact", contactController.Create)

	// Admin back-office
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)

	adminCourses := admin.Group("/courses")
	adminCourses.Get("/", coursesController.AdminList)
	adminCourses.Get("/:id", coursesController.AdminShow)
	adminCourses.Post("/", coursesController.Create)
	adminCourses.Put("/:id", coursesController.Update)
	adminCourses.Delete("/:id", coursesController.Delete)

	adminScholarships := admin.Group("/scholarships")
	adminScholarships.Get("/", scholarshipsController.AdminList)
	adminScholarships.Get("/:id", scholarshipsController.AdminShow)
	adminScholarships.Post("/", scholarshipsController.Create)
	adminScholarships.Put("/:id", scholarshipsController.Update)
	adminScholarships.Delete("/:id", scholarshipsController.Delete)

	adminPlatforms := admin.Group("/platforms")
	adminPlatforms.Get("/", taxonomyController.AdminListPlatforms)
	adminPlatforms.Post("/", taxonomyController.CreatePlatform)
	adminPlatforms.Put("/:id", taxonomyController.UpdatePlatform)
	adminPlatforms.Delete("/:id", taxonomyController.DeletePlatform)

	adminCategories := admin.Group("/categories")
	adminCategories.Get("/", taxonomyController.AdminListCategories)
	adminCategories.Post("/", taxonomyController.CreateCategory)
	adminCategories.Put("/:id", taxonomyController.UpdateCategory)
	adminCategories.Delete("/:id", taxonomyController.DeleteCategory)

	adminBlogs := admin.Group("/blogs")
	adminBlogs.Get("/", blogsController.AdminList)
	adminBlogs.Get("/:id", blogsController.AdminShow)
	adminBlogs.Post("/", blogsController.Create)
	adminBlogs.Put("/:id", blogsController.Update)
	adminBlogs.Delete("/:id", blogsController.Delete)

	imagesController := controllers.NewImagesController(db, cfg)
	admin.Post("/images/draft", imagesController.CreateDraft)

	admin.Get("/pages/:kind", pagesController.AdminShow)
	admin.Put("/pages/:kind", pagesController.Upsert)

	admin.Get("/contact-messages", contactController.AdminList)

	analyticsController := controllers.NewAnalyticsController(db, cfg)
	admin.Get("/analytics", analyticsController.Report)
	admin.Get("/users", analyticsController.Users)
}
