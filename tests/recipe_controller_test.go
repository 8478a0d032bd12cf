package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/apperrors"
	"foodgram/internal/controllers"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Test helper functions
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func setupRecipeController() (*controllers.RecipeController, *mocks.MockRecipeRepository, *mocks.MockIngredientRepository, *mocks.MockRelationRepository) {
	recipeRepo := new(mocks.MockRecipeRepository)
	ingredientRepo := new(mocks.MockIngredientRepository)
	relationRepo := new(mocks.MockRelationRepository)
	controller := controllers.NewRecipeController(recipeRepo, ingredientRepo, relationRepo, nil)
	return controller, recipeRepo, ingredientRepo, relationRepo
}

func addAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func sampleRecipe(id, authorID uint) *models.Recipe {
	return &models.Recipe{
		ID:          id,
		AuthorID:    authorID,
		Author:      models.User{ID: authorID, Username: "author"},
		Name:        "Pancakes",
		Image:       "pancakes.png",
		Text:        "Mix and fry",
		CookingTime: 30,
		RecipeIngredients: []models.RecipeIngredient{
			{RecipeID: id, IngredientID: 1, Amount: 200, Ingredient: models.Ingredient{ID: 1, Name: "flour", MeasurementUnit: "g"}},
		},
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateRecipeValidation(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*mocks.MockRecipeRepository, *mocks.MockIngredientRepository)
		expectedStatus int
		expectedErr    string
	}{
		{
			name: "empty ingredient list",
			requestBody: map[string]interface{}{
				"name":         "Pancakes",
				"image":        "pancakes.png",
				"cooking_time": 30,
				"ingredients":  []map[string]interface{}{},
			},
			setupMock:      func(*mocks.MockRecipeRepository, *mocks.MockIngredientRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "at least one ingredient is required",
		},
		{
			name: "duplicate ingredient ids",
			requestBody: map[string]interface{}{
				"name":         "Pancakes",
				"image":        "pancakes.png",
				"cooking_time": 30,
				"ingredients": []map[string]interface{}{
					{"id": 1, "amount": 200},
					{"id": 1, "amount": 100},
				},
			},
			setupMock:      func(*mocks.MockRecipeRepository, *mocks.MockIngredientRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "must not repeat",
		},
		{
			name: "amount below one",
			requestBody: map[string]interface{}{
				"name":         "Pancakes",
				"image":        "pancakes.png",
				"cooking_time": 30,
				"ingredients": []map[string]interface{}{
					{"id": 1, "amount": 0},
				},
			},
			setupMock:      func(*mocks.MockRecipeRepository, *mocks.MockIngredientRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "amount must be at least 1",
		},
		{
			name: "cooking time below one",
			requestBody: map[string]interface{}{
				"name":         "Pancakes",
				"image":        "pancakes.png",
				"cooking_time": 0,
				"ingredients": []map[string]interface{}{
					{"id": 1, "amount": 200},
				},
			},
			setupMock:      func(*mocks.MockRecipeRepository, *mocks.MockIngredientRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "cooking time must be at least 1 minute",
		},
		{
			name: "unknown ingredient id",
			requestBody: map[string]interface{}{
				"name":         "Pancakes",
				"image":        "pancakes.png",
				"cooking_time": 30,
				"ingredients": []map[string]interface{}{
					{"id": 1, "amount": 200},
					{"id": 99, "amount": 10},
				},
			},
			setupMock: func(_ *mocks.MockRecipeRepository, ingredientRepo *mocks.MockIngredientRepository) {
				ingredientRepo.On("FindByIDs", []uint{1, 99}).Return([]models.Ingredient{
					{ID: 1, Name: "flour", MeasurementUnit: "g"},
				}, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedErr:    "ingredient with id 99 does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, recipeRepo, ingredientRepo, _ := setupRecipeController()
			tt.setupMock(recipeRepo, ingredientRepo)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(1))
			router.POST("/recipes", controller.CreateRecipe)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decodeBody(t, w)["error"], tt.expectedErr)
			recipeRepo.AssertNotCalled(t, "CreateWithIngredients", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRecipeSuccess(t *testing.T) {
	controller, recipeRepo, ingredientRepo, _ := setupRecipeController()

	ingredientRepo.On("FindByIDs", []uint{1, 2}).Return([]models.Ingredient{
		{ID: 1, Name: "flour", MeasurementUnit: "g"},
		{ID: 2, Name: "sugar", MeasurementUnit: "g"},
	}, nil)
	recipeRepo.On("CreateWithIngredients", mock.AnythingOfType("*models.Recipe"), mock.AnythingOfType("[]models.RecipeIngredient")).
		Run(func(args mock.Arguments) {
			recipe := args.Get(0).(*models.Recipe)
			recipe.ID = 7
			items := args.Get(1).([]models.RecipeIngredient)
			require.Len(t, items, 2)
			assert.Equal(t, uint(1), items[0].IngredientID)
			assert.Equal(t, uint(200), items[0].Amount)
		}).Return(nil)
	recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 1), nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.POST("/recipes", controller.CreateRecipe)

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "Pancakes",
		"image":        "pancakes.png",
		"text":         "Mix and fry",
		"cooking_time": 30,
		"ingredients": []map[string]interface{}{
			{"id": 1, "amount": 200},
			{"id": 2, "amount": 50},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe created successfully")
	recipeRepo.AssertExpectations(t)
}

func TestUpdateRecipeRequiresIngredients(t *testing.T) {
	controller, recipeRepo, _, _ := setupRecipeController()
	recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 1), nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.PATCH("/recipes/:id", controller.UpdateRecipe)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Renamed pancakes",
	})
	req := httptest.NewRequest(http.MethodPatch, "/recipes/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "ingredients field is required")
	recipeRepo.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything)
}

func TestUpdateRecipeReplacesLineItems(t *testing.T) {
	controller, recipeRepo, ingredientRepo, relationRepo := setupRecipeController()

	recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 1), nil)
	ingredientRepo.On("FindByIDs", []uint{2, 3}).Return([]models.Ingredient{
		{ID: 2, Name: "sugar", MeasurementUnit: "g"},
		{ID: 3, Name: "egg", MeasurementUnit: "pcs"},
	}, nil)

	var replaced []models.RecipeIngredient
	recipeRepo.On("ReplaceIngredients", mock.AnythingOfType("*models.Recipe"), mock.AnythingOfType("[]models.RecipeIngredient")).
		Run(func(args mock.Arguments) {
			replaced = args.Get(1).([]models.RecipeIngredient)
		}).Return(nil)
	relationRepo.On("FilterRecipeIDs", repository.RelationFavorite, uint(1), []uint{7}).Return(map[uint]bool{}, nil)
	relationRepo.On("FilterRecipeIDs", repository.RelationShoppingCart, uint(1), []uint{7}).Return(map[uint]bool{}, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.PATCH("/recipes/:id", controller.UpdateRecipe)

	body, _ := json.Marshal(map[string]interface{}{
		"ingredients": []map[string]interface{}{
			{"id": 2, "amount": 50},
			{"id": 3, "amount": 2},
		},
	})
	req := httptest.NewRequest(http.MethodPatch, "/recipes/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// The new set fully replaces the old one: the previous ingredient (id 1)
	// is gone, the counts match the request exactly.
	require.Len(t, replaced, 2)
	assert.Equal(t, uint(2), replaced[0].IngredientID)
	assert.Equal(t, uint(50), replaced[0].Amount)
	assert.Equal(t, uint(3), replaced[1].IngredientID)
	assert.Equal(t, uint(2), replaced[1].Amount)
	recipeRepo.AssertExpectations(t)
}

func TestUpdateRecipeRejectsNonAuthor(t *testing.T) {
	controller, recipeRepo, _, _ := setupRecipeController()
	recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 1), nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(2))
	router.PATCH("/recipes/:id", controller.UpdateRecipe)

	body, _ := json.Marshal(map[string]interface{}{
		"ingredients": []map[string]interface{}{{"id": 2, "amount": 50}},
	})
	req := httptest.NewRequest(http.MethodPatch, "/recipes/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	recipeRepo.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything)
}

func TestRelationAddAndRemove(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		setupMock      func(*mocks.MockRecipeRepository, *mocks.MockRelationRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "add to favorites",
			method: http.MethodPost,
			path:   "/recipes/7/favorite",
			setupMock: func(recipeRepo *mocks.MockRecipeRepository, relationRepo *mocks.MockRelationRepository) {
				recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 2), nil)
				relationRepo.On("Exists", repository.RelationFavorite, uint(1), uint(7)).Return(false, nil)
				relationRepo.On("Add", repository.RelationFavorite, uint(1), uint(7)).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Recipe added to favorites",
		},
		{
			name:   "second identical add conflicts",
			method: http.MethodPost,
			path:   "/recipes/7/favorite",
			setupMock: func(recipeRepo *mocks.MockRecipeRepository, relationRepo *mocks.MockRelationRepository) {
				recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 2), nil)
				relationRepo.On("Exists", repository.RelationFavorite, uint(1), uint(7)).Return(true, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Recipe already added to favorites",
		},
		{
			// The pre-check passed but a concurrent identical add won the
			// insert. The unique index still reports the duplicate.
			name:   "racing duplicate add conflicts",
			method: http.MethodPost,
			path:   "/recipes/7/favorite",
			setupMock: func(recipeRepo *mocks.MockRecipeRepository, relationRepo *mocks.MockRelationRepository) {
				recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 2), nil)
				relationRepo.On("Exists", repository.RelationFavorite, uint(1), uint(7)).Return(false, nil)
				relationRepo.On("Add", repository.RelationFavorite, uint(1), uint(7)).
					Return(fmt.Errorf("%w: recipe already added to favorites", apperrors.ErrConflict))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Recipe already added to favorites",
		},
		{
			name:   "remove not present",
			method: http.MethodDelete,
			path:   "/recipes/7/favorite",
			setupMock: func(recipeRepo *mocks.MockRecipeRepository, relationRepo *mocks.MockRelationRepository) {
				recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 2), nil)
				relationRepo.On("Remove", repository.RelationFavorite, uint(1), uint(7)).
					Return(fmt.Errorf("%w: recipe is not in favorites", apperrors.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Recipe is not in favorites",
		},
		{
			name:   "cart add is independent of favorites",
			method: http.MethodPost,
			path:   "/recipes/7/shopping_cart",
			setupMock: func(recipeRepo *mocks.MockRecipeRepository, relationRepo *mocks.MockRelationRepository) {
				recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 2), nil)
				relationRepo.On("Exists", repository.RelationShoppingCart, uint(1), uint(7)).Return(false, nil)
				relationRepo.On("Add", repository.RelationShoppingCart, uint(1), uint(7)).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Recipe added to shopping cart",
		},
		{
			name:   "missing recipe",
			method: http.MethodPost,
			path:   "/recipes/404/favorite",
			setupMock: func(recipeRepo *mocks.MockRecipeRepository, relationRepo *mocks.MockRelationRepository) {
				recipeRepo.On("FindByID", uint(404)).
					Return(nil, fmt.Errorf("%w: no recipe with id 404", apperrors.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Recipe not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, recipeRepo, _, relationRepo := setupRecipeController()
			tt.setupMock(recipeRepo, relationRepo)

			router := setupTestRouter()
			router.Use(addAuthMiddleware(1))
			router.POST("/recipes/:id/favorite", controller.AddToFavorites)
			router.DELETE("/recipes/:id/favorite", controller.RemoveFromFavorites)
			router.POST("/recipes/:id/shopping_cart", controller.AddToShoppingCart)
			router.DELETE("/recipes/:id/shopping_cart", controller.RemoveFromShoppingCart)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedMsg)
			relationRepo.AssertExpectations(t)
		})
	}
}

func TestRelationAddReturnsShortProjection(t *testing.T) {
	controller, recipeRepo, _, relationRepo := setupRecipeController()
	recipeRepo.On("FindByID", uint(7)).Return(sampleRecipe(7, 2), nil)
	relationRepo.On("Exists", repository.RelationFavorite, uint(1), uint(7)).Return(false, nil)
	relationRepo.On("Add", repository.RelationFavorite, uint(1), uint(7)).Return(nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.POST("/recipes/:id/favorite", controller.AddToFavorites)

	req := httptest.NewRequest(http.MethodPost, "/recipes/7/favorite", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "Pancakes", data["name"])
	assert.Equal(t, "pancakes.png", data["image"])
	assert.Equal(t, float64(30), data["cooking_time"])
	// The short projection has no ingredient or flag fields.
	assert.NotContains(t, data, "ingredients")
	assert.NotContains(t, data, "is_favorited")
}
