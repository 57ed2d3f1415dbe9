package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"manara/models"
)

// ParseCatalogFilters reads the flat catalog filter parameters off the query
// string. Multi-value keys accept both repetition (?level=a&level=b) and the
// bracket spelling (?level[]=a).
func ParseCatalogFilters(c *fiber.Ctx) models.CatalogFilters {
	return models.CatalogFilters{
		Search:          c.Query("search"),
		PlatformIDs:     queryUints(c, "platform_id"),
		CategoryIDs:     queryUints(c, "category_id"),
		Levels:          queryStrings(c, "level"),
		HaveCertificate: models.ParseBool(c.Query("have_certificate")),
		Duration:        c.Query("duration"),
		SortBy:          c.Query("sort_by"),
		SortDirection:   c.Query("sort_direction"),
	}
}

func queryStrings(c *fiber.Ctx, key string) []string {
	var values []string
	for _, k := range []string{key, key + "[]"} {
		for _, v := range c.Context().QueryArgs().PeekMulti(k) {
			if len(v) > 0 {
				values = append(values, string(v))
			}
		}
	}
	return values
}

func queryUints(c *fiber.Ctx, key string) []uint {
	var ids []uint
	for _, v := range queryStrings(c, key) {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}
