package middleware

import (
	"github.com/gofiber/fiber/v2"

	"manara/models"
)

// LocaleMiddleware resolves the active locale for the request: the "locale"
// query parameter wins, then the X-Locale header, then English. Only "en"
// and "ar" are recognized. Handlers read the resolved value with Locale and
// pass it explicitly into translation code.
func LocaleMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		locale := c.Query("locale")
		if locale == "" {
			locale = c.Get("X-Locale")
		}
		c.Locals("locale", models.NormalizeLocale(locale))
		return c.Next()
	}
}

func Locale(c *fiber.Ctx) string {
	locale, _ := c.Locals("locale").(string)
	return models.NormalizeLocale(locale)
}
