package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ladlehub/backend/internal/models"
)

// TestPassword is the plaintext behind every fixture user's hash
const TestPassword = "password123"

// CreateTestUser inserts a password-backed user
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	hash := string(hashed)

	user := models.User{
		Email:        email,
		PasswordHash: &hash,
		Name:         "Test User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreateRecipe inserts a recipe; a nil owner makes it public
func CreateRecipe(t *testing.T, db *gorm.DB, title string, owner *uuid.UUID) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Title:        title,
		Ingredients:  "flour, water, salt",
		Instructions: "mix and bake",
		UserID:       owner,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return &recipe
}

// migrationsDir locates the repository's migrations directory from any
// package's working directory.
func migrationsDir(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("migrations directory not found")
		}
		dir = parent
	}
}
