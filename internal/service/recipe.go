package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ladlehub/backend/internal/models"
)

const categoryCacheTTL = 5 * time.Minute

// RecipeFilters narrows a recipe listing. Zero values mean "no filter".
type RecipeFilters struct {
	Search        string
	Category      string
	Difficulty    string
	FavoritesOnly bool
}

// RecipeInput carries the caller-supplied fields of a create or update
type RecipeInput struct {
	Title        string
	Description  *string
	Ingredients  string
	Instructions string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Difficulty   *string
	Category     *string
	ImageURL     *string
}

// RecipeService implements the visibility-aware recipe operations. Every
// query is scoped by the caller identity: public rows (nil user_id) are
// visible to everyone, owned rows only to their owner.
type RecipeService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewRecipeService creates a new RecipeService. redisClient may be nil,
// which disables category caching.
func NewRecipeService(db *gorm.DB, redisClient *redis.Client) *RecipeService {
	return &RecipeService{
		db:    db,
		redis: redisClient,
	}
}

// visibleTo scopes a query to the rows the caller may see
func visibleTo(caller *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if caller == nil {
			return tx.Where("user_id IS NULL")
		}
		return tx.Where("user_id IS NULL OR user_id = ?", *caller)
	}
}

// List returns the recipes visible to the caller, newest first. A listing
// that matches nothing returns an empty slice, never an error.
func (s *RecipeService) List(ctx context.Context, caller *uuid.UUID, filters RecipeFilters) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Scopes(visibleTo(caller))

	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ? OR LOWER(category) LIKE ?",
			like, like, like, like,
		)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	// Favorites are only meaningful for authenticated callers; the flag is
	// ignored for anonymous requests.
	if filters.FavoritesOnly && caller != nil {
		query = query.Where("is_favorite = ? AND user_id = ?", true, *caller)
	}

	recipes := []models.Recipe{}
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get returns a single visible recipe. A recipe that exists but is hidden
// from the caller is reported as not found.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID, caller *uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Scopes(visibleTo(caller)).First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Create persists a new recipe owned by owner (nil for a public recipe)
func (s *RecipeService) Create(ctx context.Context, input RecipeInput, owner *uuid.UUID) (*models.Recipe, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		Difficulty:   input.Difficulty,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		IsFavorite:   false,
		UserID:       owner,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}

	s.invalidateCategories(ctx, owner)
	return &recipe, nil
}

// Update replaces a recipe's fields. Only the exact owner may update; a
// public recipe has no owner and is not updatable through this path.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, input RecipeInput, caller uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.UserID == nil || *recipe.UserID != caller {
		return nil, ErrForbidden
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	recipe.Title = input.Title
	recipe.Description = input.Description
	recipe.Ingredients = input.Ingredients
	recipe.Instructions = input.Instructions
	recipe.PrepTime = input.PrepTime
	recipe.CookTime = input.CookTime
	recipe.Servings = input.Servings
	recipe.Difficulty = input.Difficulty
	recipe.Category = input.Category
	recipe.ImageURL = input.ImageURL

	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}

	s.invalidateCategories(ctx, recipe.UserID)
	return &recipe, nil
}

// Delete removes a recipe, with the same ownership check as Update
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID, caller uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.UserID == nil || *recipe.UserID != caller {
		return ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return err
	}

	s.invalidateCategories(ctx, recipe.UserID)
	return nil
}

// ToggleFavorite flips a recipe's favorite flag and returns the updated
// row. An owned recipe may only be toggled by its owner; an unowned one by
// anyone. The flip is a single conditional UPDATE so concurrent toggles
// cannot lose updates.
func (s *RecipeService) ToggleFavorite(ctx context.Context, id uuid.UUID, caller *uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.UserID != nil && (caller == nil || *recipe.UserID != *caller) {
		return nil, ErrForbidden
	}

	err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_favorite": gorm.Expr("NOT is_favorite")}).Error
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListCategories returns the distinct categories visible to the caller,
// sorted ascending. Results are cached per visibility bucket when Redis is
// available; a cache failure falls through to the database.
func (s *RecipeService) ListCategories(ctx context.Context, caller *uuid.UUID) ([]string, error) {
	cacheKey := categoryCacheKey(caller)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var categories []string
			if err := json.Unmarshal([]byte(cached), &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories := []string{}
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Scopes(visibleTo(caller)).
		Where("category IS NOT NULL AND category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, categoryCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache categories: %v", err)
			}
		}
	}
	return categories, nil
}

func categoryCacheKey(caller *uuid.UUID) string {
	if caller == nil {
		return "categories:public"
	}
	return "categories:" + caller.String()
}

// invalidateCategories drops the cache buckets a mutation may have changed.
// Public writes also land in every authenticated bucket; those go stale for
// at most the cache TTL.
func (s *RecipeService) invalidateCategories(ctx context.Context, owner *uuid.UUID) {
	if s.redis == nil {
		return
	}
	keys := []string{categoryCacheKey(nil)}
	if owner != nil {
		keys = append(keys, categoryCacheKey(owner))
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate category cache: %v", err)
	}
}

// UpdateImage sets a recipe's image URL, owner only
func (s *RecipeService) UpdateImage(ctx context.Context, id uuid.UUID, caller uuid.UUID, imageURL string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.UserID == nil || *recipe.UserID != caller {
		return nil, ErrForbidden
	}

	recipe.ImageURL = &imageURL
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func validateInput(input RecipeInput) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Ingredients) == "" ||
		strings.TrimSpace(input.Instructions) == "" {
		return newValidationError("Title, ingredients, and instructions are required")
	}
	if input.Difficulty != nil && *input.Difficulty != "" {
		switch *input.Difficulty {
		case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		default:
			return newValidationError("Difficulty must be Easy, Medium, or Hard")
		}
	}
	for _, v := range []*int{input.PrepTime, input.CookTime, input.Servings} {
		if v != nil && *v < 0 {
			return newValidationError("Prep time, cook time, and servings must be non-negative")
		}
	}
	return nil
}
