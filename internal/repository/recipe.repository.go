package repository

import (
	"fmt"
	"foodgram/internal/apperrors"
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows the recipe list. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID   uint
	NamePrefix string
	Limit      int
	Offset     int
}

type RecipeRepository interface {
	CreateWithIngredients(recipe *models.Recipe, items []models.RecipeIngredient) error
	ReplaceIngredients(recipe *models.Recipe, items []models.RecipeIngredient) error
	FindByID(id uint) (*models.Recipe, error)
	FindAll(filter RecipeFilter) ([]models.Recipe, int64, error)
	FindByAuthorID(authorID uint, limit int) ([]models.Recipe, error)
	CountByAuthorID(authorID uint) (int64, error)
	Delete(id uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db}
}

// CreateWithIngredients persists the recipe and its full line-item set as
// one atomic unit. A failure anywhere rolls the whole write back.
func (r *recipeRepository) CreateWithIngredients(recipe *models.Recipe, items []models.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("RecipeIngredients").Create(recipe).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		recipe.RecipeIngredients = items
		return nil
	})
}

// ReplaceIngredients merges the recipe's scalar fields and swaps the entire
// line-item set (delete-all, insert-all) within one transaction. Partial
// line-item patches are not supported anywhere in the API.
func (r *recipeRepository) ReplaceIngredients(recipe *models.Recipe, items []models.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("RecipeIngredients", "Author").Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		recipe.RecipeIngredients = items
		return nil
	})
}

func (r *recipeRepository) FindByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Preload("Author").
		Preload("RecipeIngredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if apperrors.IsRecordNotFound(err) {
			return nil, fmt.Errorf("%w: no recipe with id %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindAll(filter RecipeFilter) ([]models.Recipe, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = -1 // unbounded
	}
	query := r.db.Model(&models.Recipe{})
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.NamePrefix != "" {
		query = query.Where("name LIKE ?", filter.NamePrefix+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := query.Preload("Author").
		Preload("RecipeIngredients.Ingredient").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&recipes).Error
	return recipes, total, err
}

func (r *recipeRepository) FindByAuthorID(authorID uint, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Where("author_id = ?", authorID).
		Order("id DESC").
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) CountByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *recipeRepository) Delete(id uint) error {
	result := r.db.Select("RecipeIngredients").Delete(&models.Recipe{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: no recipe with id %d", apperrors.ErrNotFound, id)
	}
	return nil
}
