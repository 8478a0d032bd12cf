package mocks

import (
	"time"

	"foodgram/internal/models"
	"foodgram/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Shared mock repositories for controller tests.

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) CreateWithIngredients(recipe *models.Recipe, items []models.RecipeIngredient) error {
	args := m.Called(recipe, items)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceIngredients(recipe *models.Recipe, items []models.RecipeIngredient) error {
	args := m.Called(recipe, items)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(id uint) (*models.Recipe, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindAll(filter repository.RecipeFilter) ([]models.Recipe, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) FindByAuthorID(authorID uint, limit int) ([]models.Recipe, error) {
	args := m.Called(authorID, limit)
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) CountByAuthorID(authorID uint) (int64, error) {
	args := m.Called(authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Create(ingredient *models.Ingredient) error {
	args := m.Called(ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) FirstOrCreate(name, measurementUnit string) (bool, error) {
	args := m.Called(name, measurementUnit)
	return args.Bool(0), args.Error(1)
}

func (m *MockIngredientRepository) FindAll() ([]models.Ingredient, error) {
	args := m.Called()
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) SearchByNamePrefix(prefix string) ([]models.Ingredient, error) {
	args := m.Called(prefix)
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByID(id uint) (*models.Ingredient, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByIDs(ids []uint) ([]models.Ingredient, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockIngredientRepository) DeleteAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockRelationRepository struct {
	mock.Mock
}

func (m *MockRelationRepository) Add(kind repository.RelationKind, userID, recipeID uint) error {
	args := m.Called(kind, userID, recipeID)
	return args.Error(0)
}

func (m *MockRelationRepository) Remove(kind repository.RelationKind, userID, recipeID uint) error {
	args := m.Called(kind, userID, recipeID)
	return args.Error(0)
}

func (m *MockRelationRepository) Exists(kind repository.RelationKind, userID, recipeID uint) (bool, error) {
	args := m.Called(kind, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationRepository) FilterRecipeIDs(kind repository.RelationKind, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	args := m.Called(kind, userID, recipeIDs)
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *MockRelationRepository) AggregateShoppingList(userID uint) ([]models.ShoppingListItem, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.ShoppingListItem), args.Error(1)
}

type MockShortLinkCache struct {
	mock.Mock
}

func (m *MockShortLinkCache) StoreShortLink(code string, recipeID uint, duration time.Duration) error {
	args := m.Called(code, recipeID, duration)
	return args.Error(0)
}

func (m *MockShortLinkCache) GetShortLink(code string) (uint, bool, error) {
	args := m.Called(code)
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *MockShortLinkCache) DeleteShortLink(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Subscribe(userID, authorID uint) error {
	args := m.Called(userID, authorID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Unsubscribe(userID, authorID uint) error {
	args := m.Called(userID, authorID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Exists(userID, authorID uint) (bool, error) {
	args := m.Called(userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAuthors(userID uint) ([]models.User, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockSubscriptionRepository) FilterAuthorIDs(userID uint, authorIDs []uint) (map[uint]bool, error) {
	args := m.Called(userID, authorIDs)
	return args.Get(0).(map[uint]bool), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(limit, offset int) ([]models.User, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}
