package api

import "github.com/ladlehub/backend/internal/service"

// RecipeRequest is the JSON body of recipe create/update calls
type RecipeRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Ingredients  string  `json:"ingredients"`
	Instructions string  `json:"instructions"`
	PrepTime     *int    `json:"prep_time"`
	CookTime     *int    `json:"cook_time"`
	Servings     *int    `json:"servings"`
	Difficulty   *string `json:"difficulty"`
	Category     *string `json:"category"`
	ImageURL     *string `json:"image_url"`
}

// toInput converts the request body to a service input, collapsing empty
// optional strings to absent the way the original clients send them.
func (r RecipeRequest) toInput() service.RecipeInput {
	return service.RecipeInput{
		Title:        r.Title,
		Description:  nonEmpty(r.Description),
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   nonEmpty(r.Difficulty),
		Category:     nonEmpty(r.Category),
		ImageURL:     nonEmpty(r.ImageURL),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// RegisterRequest is the JSON body of POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the JSON body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest is the JSON body of POST /api/auth/google
type GoogleAuthRequest struct {
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	GoogleID  string  `json:"google_id"`
	AvatarURL *string `json:"avatar_url"`
}
