package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe difficulty levels accepted by the API.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Recipe is a single recipe record. UserID is nil for public recipes,
// which are visible to everyone and owned by no one; a non-nil UserID
// makes the recipe visible to its owner only.
type Recipe struct {
	ID           uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  *string    `gorm:"type:text" json:"description"`
	Ingredients  string     `gorm:"type:text;not null" json:"ingredients"`
	Instructions string     `gorm:"type:text;not null" json:"instructions"`
	PrepTime     *int       `json:"prep_time"`
	CookTime     *int       `json:"cook_time"`
	Servings     *int       `json:"servings"`
	Difficulty   *string    `gorm:"size:20" json:"difficulty"`
	Category     *string    `gorm:"size:100" json:"category"`
	ImageURL     *string    `gorm:"size:512" json:"image_url"`
	IsFavorite   bool       `gorm:"not null;default:false" json:"is_favorite"`
	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
