package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"manara/config"
	"manara/models"
	"manara/routes"
	"manara/utils"
)

const testPassword = "password123"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)
	return app, db, cfg
}

func createUser(t *testing.T, db *gorm.DB, cfg *config.Config, email string, admin bool) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Email:        email,
		IsAdmin:      admin,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateJWTToken(user.ID, cfg)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seedTaxonomy(t *testing.T, db *gorm.DB) (models.Platform, models.Category) {
	t.Helper()
	platform := models.Platform{Name: models.LocalizedText{En: "Coursera", Ar: "كورسيرا"}}
	require.NoError(t, db.Create(&platform).Error)
	category := models.Category{Name: models.LocalizedText{En: "Programming", Ar: "برمجة"}}
	require.NoError(t, db.Create(&category).Error)
	return platform, category
}

func coursePayload(platformID, categoryID uint) fiber.Map {
	return fiber.Map{
		"title":            fiber.Map{"en": "Go for Beginners", "ar": "جو للمبتدئين"},
		"description":      fiber.Map{"en": "Learn the basics", "ar": "تعلم الأساسيات"},
		"external_url":     "https://example.com/go",
		"duration":         "4 weeks",
		"platform_id":      platformID,
		"category_id":      categoryID,
		"have_certificate": true,
		"level":            "beginner",
	}
}

// dataEnvelope matches the created/updated response body.
type dataEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// pageEnvelope matches the paginated listing body.
type pageEnvelope[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

type errorEnvelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}
