package controllers

import (
	"github.com/gofiber/fiber/v2"

	"manara/models"
)

// Public serialization: every localized field is resolved to one string in
// the active locale. The raw {en, ar} maps only ever leave through the admin
// endpoints, which return the models directly.

func courseJSON(course *models.Course, locale string) fiber.Map {
	m := fiber.Map{
		"id":               course.ID,
		"slug":             course.Slug,
		"title":            course.Title.Translate(locale),
		"description":      course.Description.Translate(locale),
		"external_url":     course.ExternalURL,
		"duration":         course.Duration,
		"platform_id":      course.PlatformID,
		"category_id":      course.CategoryID,
		"have_certificate": course.HaveCertificate,
		"level":            course.Level,
		"created_at":       course.CreatedAt,
	}
	if course.Platform != nil {
		m["platform"] = course.Platform.Name.Translate(locale)
	}
	if course.Category != nil {
		m["category"] = course.Category.Name.Translate(locale)
	}
	if cover := models.CoverImage(course.Images); cover != nil {
		m["cover_image"] = cover.ImagePath
	}
	if len(course.Images) > 0 {
		m["images"] = imagePaths(course.Images)
	}
	return m
}

func scholarshipJSON(s *models.Scholarship, locale string) fiber.Map {
	m := fiber.Map{
		"id":               s.ID,
		"slug":             s.Slug,
		"title":            s.Title.Translate(locale),
		"description":      s.Description.Translate(locale),
		"external_url":     s.ExternalURL,
		"duration":         s.Duration,
		"platform_id":      s.PlatformID,
		"category_id":      s.CategoryID,
		"have_certificate": s.HaveCertificate,
		"level":            s.Level,
		"created_at":       s.CreatedAt,
	}
	if s.Platform != nil {
		m["platform"] = s.Platform.Name.Translate(locale)
	}
	if s.Category != nil {
		m["category"] = s.Category.Name.Translate(locale)
	}
	if cover := models.CoverImage(s.Images); cover != nil {
		m["cover_image"] = cover.ImagePath
	}
	if len(s.Images) > 0 {
		m["images"] = imagePaths(s.Images)
	}
	return m
}

func blogJSON(blog *models.Blog, locale string, withContent bool) fiber.Map {
	m := fiber.Map{
		"id":         blog.ID,
		"slug":       blog.Slug,
		"title":      blog.Title.Translate(locale),
		"created_at": blog.CreatedAt,
	}
	if withContent {
		m["content"] = blog.Content.Translate(locale)
	}
	if cover := models.CoverImage(blog.Images); cover != nil {
		m["cover_image"] = cover.ImagePath
	}
	return m
}

func namedJSON(id uint, name models.LocalizedText, locale string) fiber.Map {
	return fiber.Map{
		"id":   id,
		"name": name.Translate(locale),
	}
}

func imagePaths(images []models.Image) []fiber.Map {
	out := make([]fiber.Map, 0, len(images))
	for _, img := range images {
		out = append(out, fiber.Map{
			"id":         img.ID,
			"image_path": img.ImagePath,
			"is_cover":   img.IsCover,
			"is_inline":  img.IsInline,
		})
	}
	return out
}
