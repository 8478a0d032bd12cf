package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadShoppingCartAggregation(t *testing.T) {
	controller, _, _, relationRepo := setupRecipeController()

	// Cart holds Recipe A (flour 200 g, sugar 50 g) and Recipe B
	// (flour 100 g, egg 2 pcs); the repository returns the grouped sums
	// ordered by name.
	relationRepo.On("AggregateShoppingList", uint(1)).Return([]models.ShoppingListItem{
		{Name: "egg", MeasurementUnit: "pcs", TotalAmount: 2},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 300},
		{Name: "sugar", MeasurementUnit: "g", TotalAmount: 50},
	}, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.GET("/recipes/download_shopping_cart", controller.DownloadShoppingCart)

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="shopping_list.txt"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	expected := "egg (pcs) — 2\n" +
		"flour (g) — 300\n" +
		"sugar (g) — 50\n"
	assert.Equal(t, expected, w.Body.String())
}

func TestDownloadShoppingCartEmptyCart(t *testing.T) {
	controller, _, _, relationRepo := setupRecipeController()
	relationRepo.On("AggregateShoppingList", uint(1)).Return([]models.ShoppingListItem{}, nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.GET("/recipes/download_shopping_cart", controller.DownloadShoppingCart)

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// An empty cart is an empty file, not an error.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
