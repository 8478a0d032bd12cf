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
	"foodgram/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupIngredientRouter(repo *mocks.MockIngredientRepository) *gin.Engine {
	controller := controllers.NewIngredientController(repo)
	router := setupTestRouter()
	router.GET("/ingredients", controller.ListIngredients)
	router.GET("/ingredients/:id", controller.GetIngredient)
	router.POST("/ingredients", controller.CreateIngredient)
	router.DELETE("/ingredients/:id", controller.DeleteIngredient)
	return router
}

func TestCreateIngredientDuplicatePair(t *testing.T) {
	repo := new(mocks.MockIngredientRepository)
	// The store constraint fires even when a concurrent request slipped
	// past any pre-check; the controller reports it as a conflict.
	repo.On("Create", mock.AnythingOfType("*models.Ingredient")).
		Return(fmt.Errorf("%w: ingredient with this name and measurement unit already exists", apperrors.ErrConflict))

	router := setupIngredientRouter(repo)
	body, _ := json.Marshal(map[string]string{"name": "Flour", "measurement_unit": "g"})
	req := httptest.NewRequest(http.MethodPost, "/ingredients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCreateIngredientNormalizesName(t *testing.T) {
	repo := new(mocks.MockIngredientRepository)
	repo.On("Create", mock.AnythingOfType("*models.Ingredient")).
		Run(func(args mock.Arguments) {
			ingredient := args.Get(0).(*models.Ingredient)
			assert.Equal(t, "flour", ingredient.Name)
			assert.Equal(t, "g", ingredient.MeasurementUnit)
		}).Return(nil)

	router := setupIngredientRouter(repo)
	body, _ := json.Marshal(map[string]string{"name": "  Flour ", "measurement_unit": " g "})
	req := httptest.NewRequest(http.MethodPost, "/ingredients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestDeleteIngredientStillReferenced(t *testing.T) {
	repo := new(mocks.MockIngredientRepository)
	repo.On("Delete", uint(3)).
		Return(fmt.Errorf("%w: ingredient is referenced by existing recipes", apperrors.ErrConflict))

	router := setupIngredientRouter(repo)
	req := httptest.NewRequest(http.MethodDelete, "/ingredients/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Referential integrity blocks the delete; nothing cascades silently.
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "referenced")
}

func TestListIngredientsPrefixSearch(t *testing.T) {
	repo := new(mocks.MockIngredientRepository)
	repo.On("SearchByNamePrefix", "fl").Return([]models.Ingredient{
		{ID: 1, Name: "flour", MeasurementUnit: "g"},
	}, nil)

	router := setupIngredientRouter(repo)
	req := httptest.NewRequest(http.MethodGet, "/ingredients?name=Fl", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flour")
	repo.AssertNotCalled(t, "FindAll")
}
