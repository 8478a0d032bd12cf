package models

import "time"

// Recipe is deleted for real, not soft-deleted: its line items and any
// favorite/cart rows pointing at it must disappear with it.
type Recipe struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	AuthorID  uint      `gorm:"index" json:"author_id" example:"1"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	Name      string    `gorm:"size:256" json:"name" example:"Pancakes"`
	// Image is an opaque blob reference, required on create.
	Image       string `json:"image"`
	Text        string `json:"text"`
	CookingTime uint   `json:"cooking_time" example:"30"`

	// Line items are owned exclusively by the recipe and die with it.
	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// RecipeIngredient associates one catalog ingredient with one recipe.
// A recipe never lists the same ingredient twice. The ingredient FK is
// RESTRICT so a referenced catalog entry cannot be deleted out from under
// its line items.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	RecipeID     uint       `gorm:"index;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint       `gorm:"uniqueIndex:idx_recipe_ingredient" json:"id" example:"1"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT" json:"-"`
	Amount       uint       `json:"amount" example:"200"`
}
