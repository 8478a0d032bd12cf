package repository

import (
	"fmt"
	"foodgram/internal/apperrors"
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// RelationKind selects which user-recipe relation set an operation targets.
// Favorites and the shopping cart share membership semantics but live in
// separate tables and never affect each other.
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorites"
	RelationShoppingCart RelationKind = "shopping cart"
)

func (k RelationKind) model() interface{} {
	if k == RelationFavorite {
		return &models.Favorite{}
	}
	return &models.ShoppingCart{}
}

type RelationRepository interface {
	Add(kind RelationKind, userID, recipeID uint) error
	Remove(kind RelationKind, userID, recipeID uint) error
	Exists(kind RelationKind, userID, recipeID uint) (bool, error)
	// FilterRecipeIDs returns, out of recipeIDs, the subset present in the
	// user's relation set. One query per page of recipes.
	FilterRecipeIDs(kind RelationKind, userID uint, recipeIDs []uint) (map[uint]bool, error)
	// AggregateShoppingList sums line-item amounts across every recipe in
	// the user's cart, grouped by (name, unit), ordered by name then unit.
	AggregateShoppingList(userID uint) ([]models.ShoppingListItem, error)
}

type relationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db}
}

func (r *relationRepository) Add(kind RelationKind, userID, recipeID uint) error {
	var err error
	if kind == RelationFavorite {
		err = r.db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
	} else {
		err = r.db.Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
	}
	// The composite unique index is the authoritative guard: two identical
	// concurrent adds both pass any pre-check, but only one insert wins.
	if apperrors.IsUniqueViolation(err) {
		return fmt.Errorf("%w: recipe already added to %s", apperrors.ErrConflict, kind)
	}
	return err
}

func (r *relationRepository) Remove(kind RelationKind, userID, recipeID uint) error {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(kind.model())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe is not in %s", apperrors.ErrNotFound, kind)
	}
	return nil
}

func (r *relationRepository) Exists(kind RelationKind, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(kind.model()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *relationRepository) FilterRecipeIDs(kind RelationKind, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	present := make(map[uint]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return present, nil
	}
	var ids []uint
	err := r.db.Model(kind.model()).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		present[id] = true
	}
	return present, nil
}

func (r *relationRepository) AggregateShoppingList(userID uint) ([]models.ShoppingListItem, error) {
	items := []models.ShoppingListItem{}
	// Single grouped query so the list reflects one consistent snapshot of
	// cart membership and line items.
	err := r.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	return items, err
}
