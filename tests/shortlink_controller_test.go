package tests

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/apperrors"
	"foodgram/internal/controllers"
	"foodgram/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupShortLinkRouter(recipeRepo *mocks.MockRecipeRepository) *gin.Engine {
	// nil cache: resolution always goes to the store.
	controller := controllers.NewShortLinkController(recipeRepo, nil)
	router := setupTestRouter()
	router.GET("/recipes/:id/get-link", controller.GetShortLink)
	router.GET("/s/:code", controller.ResolveShortLink)
	return router
}

func TestGetShortLink(t *testing.T) {
	recipeRepo := new(mocks.MockRecipeRepository)
	recipeRepo.On("FindByID", uint(125)).Return(sampleRecipe(125, 1), nil)

	router := setupShortLinkRouter(recipeRepo)
	req := httptest.NewRequest(http.MethodGet, "/recipes/125/get-link", nil)
	req.Host = "foodgram.example"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// 125 = 2*62 + 1 -> "21" in base62.
	assert.Equal(t, "http://foodgram.example/s/21/", decodeBody(t, w)["short-link"])
}

func TestGetShortLinkUnknownRecipe(t *testing.T) {
	recipeRepo := new(mocks.MockRecipeRepository)
	recipeRepo.On("FindByID", uint(9)).
		Return(nil, fmt.Errorf("%w: no recipe with id 9", apperrors.ErrNotFound))

	router := setupShortLinkRouter(recipeRepo)
	req := httptest.NewRequest(http.MethodGet, "/recipes/9/get-link", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveShortLinkRedirects(t *testing.T) {
	recipeRepo := new(mocks.MockRecipeRepository)
	recipeRepo.On("FindByID", uint(125)).Return(sampleRecipe(125, 1), nil)

	router := setupShortLinkRouter(recipeRepo)
	req := httptest.NewRequest(http.MethodGet, "/s/21", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes/125/", w.Header().Get("Location"))
}

func TestResolveShortLinkMalformedCode(t *testing.T) {
	recipeRepo := new(mocks.MockRecipeRepository)

	router := setupShortLinkRouter(recipeRepo)
	req := httptest.NewRequest(http.MethodGet, "/s/a!b", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Malformed codes are indistinguishable from unknown ones.
	assert.Equal(t, http.StatusNotFound, w.Code)
	recipeRepo.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestResolveShortLinkDanglingCode(t *testing.T) {
	recipeRepo := new(mocks.MockRecipeRepository)
	recipeRepo.On("FindByID", uint(125)).
		Return(nil, fmt.Errorf("%w: no recipe with id 125", apperrors.ErrNotFound))

	router := setupShortLinkRouter(recipeRepo)
	req := httptest.NewRequest(http.MethodGet, "/s/21", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func setupCachedShortLinkRouter(recipeRepo *mocks.MockRecipeRepository, linkCache *mocks.MockShortLinkCache) *gin.Engine {
	controller := controllers.NewShortLinkController(recipeRepo, linkCache)
	router := setupTestRouter()
	router.GET("/s/:code", controller.ResolveShortLink)
	return router
}

func TestResolveShortLinkCacheHit(t *testing.T) {
	recipeRepo := new(mocks.MockRecipeRepository)
	linkCache := new(mocks.MockShortLinkCache)
	linkCache.On("GetShortLink", "21").Return(uint(125), true, nil)
	recipeRepo.On("FindByID", uint(125)).Return(sampleRecipe(125, 1), nil)

	router := setupCachedShortLinkRouter(recipeRepo, linkCache)
	req := httptest.NewRequest(http.MethodGet, "/s/21", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/recipes/125/", w.Header().Get("Location"))
	linkCache.AssertNotCalled(t, "DeleteShortLink", mock.Anything)
}

func TestResolveShortLinkStaleCacheEntry(t *testing.T) {
	// The cached code points at a recipe that no longer exists. Resolution
	// must report not-found and drop the entry instead of redirecting.
	recipeRepo := new(mocks.MockRecipeRepository)
	linkCache := new(mocks.MockShortLinkCache)
	linkCache.On("GetShortLink", "21").Return(uint(125), true, nil)
	recipeRepo.On("FindByID", uint(125)).
		Return(nil, fmt.Errorf("%w: no recipe with id 125", apperrors.ErrNotFound))
	linkCache.On("DeleteShortLink", "21").Return(nil)

	router := setupCachedShortLinkRouter(recipeRepo, linkCache)
	req := httptest.NewRequest(http.MethodGet, "/s/21", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	linkCache.AssertExpectations(t)
}

func TestDeleteRecipeEvictsShortLink(t *testing.T) {
	recipeRepo := new(mocks.MockRecipeRepository)
	linkCache := new(mocks.MockShortLinkCache)
	controller := controllers.NewRecipeController(
		recipeRepo, new(mocks.MockIngredientRepository), new(mocks.MockRelationRepository), linkCache)

	recipeRepo.On("FindByID", uint(125)).Return(sampleRecipe(125, 1), nil)
	recipeRepo.On("Delete", uint(125)).Return(nil)
	// 125 encodes to "21", the code handed out by get-link.
	linkCache.On("DeleteShortLink", "21").Return(nil)

	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.DELETE("/recipes/:id", controller.DeleteRecipe)

	req := httptest.NewRequest(http.MethodDelete, "/recipes/125", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	linkCache.AssertExpectations(t)
}
