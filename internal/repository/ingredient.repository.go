package repository

import (
	"fmt"
	"foodgram/internal/apperrors"
	"foodgram/internal/models"

	"gorm.io/gorm"
)

type IngredientRepository interface {
	Create(ingredient *models.Ingredient) error
	FirstOrCreate(name, measurementUnit string) (created bool, err error)
	FindAll() ([]models.Ingredient, error)
	SearchByNamePrefix(prefix string) ([]models.Ingredient, error)
	FindByID(id uint) (*models.Ingredient, error)
	FindByIDs(ids []uint) ([]models.Ingredient, error)
	Delete(id uint) error
	DeleteAll() (int64, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db}
}

func (r *ingredientRepository) Create(ingredient *models.Ingredient) error {
	err := r.db.Create(ingredient).Error
	if apperrors.IsUniqueViolation(err) {
		return fmt.Errorf("%w: ingredient with this name and measurement unit already exists", apperrors.ErrConflict)
	}
	return err
}

func (r *ingredientRepository) FirstOrCreate(name, measurementUnit string) (bool, error) {
	var ingredient models.Ingredient
	result := r.db.Where(models.Ingredient{Name: name, MeasurementUnit: measurementUnit}).
		FirstOrCreate(&ingredient)
	if result.Error != nil {
		// A concurrent loader may have inserted the same pair between the
		// lookup and the insert; the unique index reports it, and the row
		// is simply counted as already present.
		if apperrors.IsUniqueViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ingredientRepository) FindAll() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Order("name").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) SearchByNamePrefix(prefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Where("name LIKE ?", prefix+"%").Order("name").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) FindByID(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, id).Error
	if err != nil {
		if apperrors.IsRecordNotFound(err) {
			return nil, fmt.Errorf("%w: no ingredient with id %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDs(ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Ingredient{}, id)
	if result.Error != nil {
		// RESTRICT on the line-item FK blocks deleting a referenced
		// ingredient; silent cascade would lose recipe data.
		if apperrors.IsForeignKeyViolation(result.Error) {
			return fmt.Errorf("%w: ingredient is referenced by existing recipes", apperrors.ErrConflict)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: no ingredient with id %d", apperrors.ErrNotFound, id)
	}
	return nil
}

func (r *ingredientRepository) DeleteAll() (int64, error) {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Ingredient{})
	return result.RowsAffected, result.Error
}
