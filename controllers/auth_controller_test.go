package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manara/models"
)

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func TestRegisterLoginMe(t *testing.T) {
	app, db, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":            "Sara",
		"email":           "sara@example.com",
		"whatsapp_number": "+9627900000",
		"password":        testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var registered authResponse
	decodeJSON(t, resp, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "sara@example.com", registered.User.Email)
	assert.False(t, registered.User.IsAdmin)

	var stored models.User
	require.NoError(t, db.Where("email = ?", "sara@example.com").First(&stored).Error)
	assert.NotEqual(t, testPassword, stored.PasswordHash)

	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "sara@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loggedIn authResponse
	decodeJSON(t, resp, &loggedIn)
	require.NotEmpty(t, loggedIn.Token)

	resp = doRequest(t, app, http.MethodGet, "/api/auth/me", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me models.User
	decodeJSON(t, resp, &me)
	assert.Equal(t, stored.ID, me.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _, _ := newTestApp(t)

	payload := fiber.Map{
		"name":     "Sara",
		"email":    "sara@example.com",
		"password": testPassword,
	}
	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body errorEnvelope
	decodeJSON(t, resp, &body)
	assert.Equal(t, "unique", body.Details["email"])
}

func TestRegisterValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Sara",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body errorEnvelope
	decodeJSON(t, resp, &body)
	assert.Equal(t, "email", body.Details["registerInput.Email"])
	assert.Equal(t, "min", body.Details["registerInput.Password"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	app, db, cfg := newTestApp(t)
	createUser(t, db, cfg, "sara@example.com", false)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "sara@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "nobody@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMeRequiresToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
