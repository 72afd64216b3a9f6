package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ladlehub/backend/internal/models"
	"github.com/ladlehub/backend/internal/testhelpers"
)

func TestAnonymousListReturnsPublicOnly(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	user := testhelpers.CreateTestUser(t, db, "a@example.com")
	testhelpers.CreateRecipe(t, db, "Private Dish", &user.ID)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"Old Public", "New Public"} {
		recipe := models.Recipe{
			Title:        title,
			Ingredients:  "x",
			Instructions: "y",
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, db.Create(&recipe).Error)
	}

	w := doRequest(t, router, "GET", "/api/recipes", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var recipes []models.Recipe
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 2)
	assert.Equal(t, "New Public", recipes[0].Title)
	assert.Equal(t, "Old Public", recipes[1].Title)
}

func TestListFiltersViaQueryParams(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	dessert := "Dessert"
	assert.NoError(t, db.Create(&models.Recipe{Title: "Cake", Ingredients: "x", Instructions: "y", Category: &dessert}).Error)
	assert.NoError(t, db.Create(&models.Recipe{Title: "Stew", Ingredients: "x", Instructions: "y"}).Error)

	w := doRequest(t, router, "GET", "/api/recipes?category=Dessert", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var recipes []models.Recipe
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 1)
	assert.Equal(t, "Cake", recipes[0].Title)

	w = doRequest(t, router, "GET", "/api/recipes?search=stew", "", nil)
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 1)
	assert.Equal(t, "Stew", recipes[0].Title)
}

func TestGetRecipe(t *testing.T) {
	router, db, authService := setupTestRouter(t)

	owner := testhelpers.CreateTestUser(t, db, "owner@example.com")
	other := testhelpers.CreateTestUser(t, db, "other@example.com")
	recipe := testhelpers.CreateRecipe(t, db, "Mine", &owner.ID)

	w := doRequest(t, router, "GET", "/api/recipes/"+recipe.ID.String(), tokenFor(t, authService, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Hidden from others and from anonymous callers
	w = doRequest(t, router, "GET", "/api/recipes/"+recipe.ID.String(), tokenFor(t, authService, other), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(t, router, "GET", "/api/recipes/"+recipe.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Malformed ids are not found, not server errors
	w = doRequest(t, router, "GET", "/api/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRecipe(t *testing.T) {
	router, db, authService := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, "maker@example.com")
	token := tokenFor(t, authService, user)

	w := doRequest(t, router, "POST", "/api/recipes", token, validRecipeBody("Fresh Bread"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var recipe models.Recipe
	decodeBody(t, w, &recipe)
	assert.Equal(t, "Fresh Bread", recipe.Title)
	assert.Equal(t, user.ID, *recipe.UserID)
	assert.False(t, recipe.IsFavorite)
	assert.False(t, recipe.CreatedAt.IsZero())
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(t, router, "POST", "/api/recipes", "", validRecipeBody("Anonymous Dish"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, "POST", "/api/recipes", "garbage-token", validRecipeBody("Anonymous Dish"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeValidation(t *testing.T) {
	router, db, authService := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, "maker@example.com")
	token := tokenFor(t, authService, user)

	body := map[string]interface{}{"title": "No Ingredients", "instructions": "bake"}
	w := doRequest(t, router, "POST", "/api/recipes", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Contains(t, resp, "error")
}

func TestUpdateRecipeOwnership(t *testing.T) {
	router, db, authService := setupTestRouter(t)

	userA := testhelpers.CreateTestUser(t, db, "a@example.com")
	userB := testhelpers.CreateTestUser(t, db, "b@example.com")
	recipe := testhelpers.CreateRecipe(t, db, "A's Recipe", &userA.ID)
	path := "/api/recipes/" + recipe.ID.String()

	// Another authenticated user is rejected
	w := doRequest(t, router, "PUT", path, tokenFor(t, authService, userB), validRecipeBody("Stolen"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner succeeds and gets a refreshed updated_at
	time.Sleep(20 * time.Millisecond)
	w = doRequest(t, router, "PUT", path, tokenFor(t, authService, userA), validRecipeBody("Improved"))
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Recipe
	decodeBody(t, w, &updated)
	assert.Equal(t, "Improved", updated.Title)
	assert.True(t, updated.UpdatedAt.After(recipe.UpdatedAt))

	w = doRequest(t, router, "PUT", path, "", validRecipeBody("Anonymous Edit"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	router, db, authService := setupTestRouter(t)

	owner := testhelpers.CreateTestUser(t, db, "owner@example.com")
	other := testhelpers.CreateTestUser(t, db, "other@example.com")
	recipe := testhelpers.CreateRecipe(t, db, "Doomed", &owner.ID)
	path := "/api/recipes/" + recipe.ID.String()

	w := doRequest(t, router, "DELETE", path, tokenFor(t, authService, other), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, "DELETE", path, tokenFor(t, authService, owner), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(t, router, "DELETE", path, tokenFor(t, authService, owner), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleFavoriteRoute(t *testing.T) {
	router, db, authService := setupTestRouter(t)

	owner := testhelpers.CreateTestUser(t, db, "owner@example.com")
	other := testhelpers.CreateTestUser(t, db, "other@example.com")
	owned := testhelpers.CreateRecipe(t, db, "Owned", &owner.ID)
	public := testhelpers.CreateRecipe(t, db, "Public", nil)

	// Anonymous toggling of a public recipe is allowed
	w := doRequest(t, router, "PATCH", "/api/recipes/"+public.ID.String()+"/favorite", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var toggled models.Recipe
	decodeBody(t, w, &toggled)
	assert.True(t, toggled.IsFavorite)

	// Owned recipes are gated on ownership
	w = doRequest(t, router, "PATCH", "/api/recipes/"+owned.ID.String()+"/favorite", tokenFor(t, authService, other), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doRequest(t, router, "PATCH", "/api/recipes/"+owned.ID.String()+"/favorite", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, "PATCH", "/api/recipes/"+owned.ID.String()+"/favorite", tokenFor(t, authService, owner), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &toggled)
	assert.True(t, toggled.IsFavorite)
}

func TestListCategoriesRoute(t *testing.T) {
	router, db, authService := setupTestRouter(t)

	user := testhelpers.CreateTestUser(t, db, "cats@example.com")
	dessert := "Dessert"
	private := "Private Eats"
	assert.NoError(t, db.Create(&models.Recipe{Title: "A", Ingredients: "x", Instructions: "y", Category: &dessert}).Error)
	assert.NoError(t, db.Create(&models.Recipe{Title: "B", Ingredients: "x", Instructions: "y", Category: &private, UserID: &user.ID}).Error)

	// A category that exists only on a private recipe never leaks to anonymous callers
	w := doRequest(t, router, "GET", "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var categories []string
	decodeBody(t, w, &categories)
	assert.Equal(t, []string{"Dessert"}, categories)

	w = doRequest(t, router, "GET", "/api/categories", tokenFor(t, authService, user), nil)
	decodeBody(t, w, &categories)
	assert.Equal(t, []string{"Dessert", "Private Eats"}, categories)
}
