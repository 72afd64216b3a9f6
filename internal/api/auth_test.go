package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ladlehub/backend/internal/models"
	"github.com/ladlehub/backend/internal/testhelpers"
)

func TestRegisterEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	body := map[string]string{
		"email":    "new@example.com",
		"password": "secret123",
		"name":     "New User",
	}
	w := doRequest(t, router, "POST", "/api/auth/register", "", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	// Duplicate email registers as a plain 400, not a distinct conflict code
	w = doRequest(t, router, "POST", "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpointMissingFields(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(t, router, "POST", "/api/auth/register", "", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router, db, _ := setupTestRouter(t)
	testhelpers.CreateTestUser(t, db, "login@example.com")

	w := doRequest(t, router, "POST", "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": testhelpers.TestPassword,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.Token)

	w = doRequest(t, router, "POST", "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGoogleAuthEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	body := map[string]string{
		"email":      "g@example.com",
		"name":       "G User",
		"google_id":  "gid-1",
		"avatar_url": "https://example.com/pic.png",
	}
	w := doRequest(t, router, "POST", "/api/auth/google", "", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "g@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	w = doRequest(t, router, "POST", "/api/auth/google", "", map[string]string{"email": "g@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	router, db, authService := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, "me@example.com")

	w := doRequest(t, router, "GET", "/api/auth/me", tokenFor(t, authService, user), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User models.User `json:"user"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "me@example.com", resp.User.Email)

	w = doRequest(t, router, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token outlives the account
	token := tokenFor(t, authService, user)
	assert.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)
	w = doRequest(t, router, "GET", "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
