package main

import (
	"log"

	"github.com/ladlehub/backend/config"
	"github.com/ladlehub/backend/internal/database"
	"github.com/ladlehub/backend/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// Public starter recipes (no owner) inserted on first deploy
var seedRecipes = []models.Recipe{
	{
		Title:        "Classic Margherita Pizza",
		Description:  strPtr("A simple Neapolitan pizza with fresh mozzarella and basil"),
		Ingredients:  "Pizza dough, San Marzano tomatoes, fresh mozzarella, basil leaves, olive oil, salt",
		Instructions: "Stretch the dough. Spread crushed tomatoes. Add torn mozzarella. Bake at 250C for 8-10 minutes. Finish with basil and olive oil.",
		PrepTime:     intPtr(20),
		CookTime:     intPtr(10),
		Servings:     intPtr(2),
		Difficulty:   strPtr(models.DifficultyEasy),
		Category:     strPtr("Main Course"),
	},
	{
		Title:        "Thai Green Curry",
		Description:  strPtr("Fragrant coconut curry with chicken and vegetables"),
		Ingredients:  "Green curry paste, coconut milk, chicken thighs, bamboo shoots, Thai basil, fish sauce, palm sugar, jasmine rice",
		Instructions: "Fry the curry paste in coconut cream. Add chicken and cook through. Pour in the remaining coconut milk. Simmer with bamboo shoots. Season with fish sauce and palm sugar. Serve over rice.",
		PrepTime:     intPtr(15),
		CookTime:     intPtr(25),
		Servings:     intPtr(4),
		Difficulty:   strPtr(models.DifficultyMedium),
		Category:     strPtr("Main Course"),
	},
	{
		Title:        "Overnight Oats",
		Description:  strPtr("No-cook breakfast ready when you wake up"),
		Ingredients:  "Rolled oats, milk, Greek yogurt, chia seeds, honey, berries",
		Instructions: "Combine oats, milk, yogurt, and chia seeds in a jar. Sweeten with honey. Refrigerate overnight. Top with berries before serving.",
		PrepTime:     intPtr(5),
		Servings:     intPtr(1),
		Difficulty:   strPtr(models.DifficultyEasy),
		Category:     strPtr("Breakfast"),
	},
	{
		Title:        "French Onion Soup",
		Description:  strPtr("Deeply caramelized onions under a gruyere crouton"),
		Ingredients:  "Yellow onions, butter, beef stock, dry white wine, baguette, gruyere cheese, thyme, bay leaf",
		Instructions: "Caramelize sliced onions in butter for 45 minutes. Deglaze with wine. Add stock and herbs, simmer 30 minutes. Ladle into bowls, top with baguette slices and gruyere, and broil until bubbling.",
		PrepTime:     intPtr(15),
		CookTime:     intPtr(80),
		Servings:     intPtr(4),
		Difficulty:   strPtr(models.DifficultyHard),
		Category:     strPtr("Soup"),
	},
	{
		Title:        "Chocolate Chip Cookies",
		Description:  strPtr("Chewy centers, crisp edges"),
		Ingredients:  "Butter, brown sugar, white sugar, eggs, vanilla, flour, baking soda, salt, chocolate chips",
		Instructions: "Cream butter and sugars. Beat in eggs and vanilla. Fold in dry ingredients and chocolate chips. Chill the dough for an hour. Bake at 180C for 11 minutes.",
		PrepTime:     intPtr(15),
		CookTime:     intPtr(11),
		Servings:     intPtr(24),
		Difficulty:   strPtr(models.DifficultyEasy),
		Category:     strPtr("Dessert"),
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	seeded := 0
	for _, recipe := range seedRecipes {
		var count int64
		if err := db.Model(&models.Recipe{}).Where("title = ? AND user_id IS NULL", recipe.Title).Count(&count).Error; err != nil {
			log.Fatalf("Failed to check existing recipe: %v", err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&recipe).Error; err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipe.Title, err)
		}
		seeded++
	}

	log.Printf("Seeded %d recipes", seeded)
}
