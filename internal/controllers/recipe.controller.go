package controllers

import (
	"fmt"
	"foodgram/internal/apperrors"
	"foodgram/internal/cache"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/shortlink"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	relationRepo   repository.RelationRepository
	linkCache      cache.ShortLinkCache
}

func NewRecipeController(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	relationRepo repository.RelationRepository,
	linkCache cache.ShortLinkCache,
) *RecipeController {
	return &RecipeController{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		relationRepo:   relationRepo,
		linkCache:      linkCache,
	}
}

type IngredientAmountRequest struct {
	ID     uint `json:"id"`
	Amount uint `json:"amount"`
}

type RecipeCreateRequest struct {
	Ingredients []IngredientAmountRequest `json:"ingredients"`
	Name        string                    `json:"name" binding:"required"`
	Image       string                    `json:"image" binding:"required"`
	Text        string                    `json:"text"`
	CookingTime uint                      `json:"cooking_time"`
}

// RecipeUpdateRequest distinguishes an omitted ingredients key from an empty
// one: omitting it entirely is rejected, there is no partial line-item edit.
type RecipeUpdateRequest struct {
	Ingredients *[]IngredientAmountRequest `json:"ingredients"`
	Name        *string                    `json:"name"`
	Image       *string                    `json:"image"`
	Text        *string                    `json:"text"`
	CookingTime *uint                      `json:"cooking_time"`
}

// validateLineItems enforces the composition invariants and resolves every
// ingredient id against the catalog. Each violation carries its own reason.
func (rc *RecipeController) validateLineItems(items []IngredientAmountRequest) ([]models.RecipeIngredient, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient is required", apperrors.ErrValidation)
	}

	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return nil, fmt.Errorf("%w: ingredients in a recipe must not repeat", apperrors.ErrValidation)
		}
		seen[item.ID] = true
		if item.Amount < 1 {
			return nil, fmt.Errorf("%w: ingredient amount must be at least 1", apperrors.ErrValidation)
		}
		ids = append(ids, item.ID)
	}

	found, err := rc.ingredientRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		known := make(map[uint]bool, len(found))
		for _, ingredient := range found {
			known[ingredient.ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				return nil, fmt.Errorf("%w: ingredient with id %d does not exist", apperrors.ErrValidation, id)
			}
		}
	}

	lineItems := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, models.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return lineItems, nil
}

// relationFlags computes is_favorited / is_in_shopping_cart for a page of
// recipes with two batched queries. Anonymous viewers get empty maps.
func (rc *RecipeController) relationFlags(c *gin.Context, recipes []models.Recipe) (map[uint]bool, map[uint]bool, error) {
	userID, authenticated := currentUserID(c)
	if !authenticated || len(recipes) == 0 {
		return map[uint]bool{}, map[uint]bool{}, nil
	}

	recipeIDs := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
	}

	favorited, err := rc.relationRepo.FilterRecipeIDs(repository.RelationFavorite, userID, recipeIDs)
	if err != nil {
		return nil, nil, err
	}
	inCart, err := rc.relationRepo.FilterRecipeIDs(repository.RelationShoppingCart, userID, recipeIDs)
	if err != nil {
		return nil, nil, err
	}
	return favorited, inCart, nil
}

// ListRecipes godoc
// @Summary List recipes
// @Description Retrieve recipes with pagination, optional author filter and per-user flags
// @Tags recipe
// @Produce json
// @Param author query int false "Filter by author ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{} "Recipes retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve recipes"
// @Router /recipes [get]
func (rc *RecipeController) ListRecipes(c *gin.Context) {
	filter := repository.RecipeFilter{
		NamePrefix: c.Query("name"),
	}
	if authorID, err := strconv.ParseUint(c.Query("author"), 10, 32); err == nil {
		filter.AuthorID = uint(authorID)
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	recipes, total, err := rc.recipeRepo.FindAll(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve recipes",
			"error":   err.Error(),
		})
		return
	}

	favorited, inCart, err := rc.relationFlags(c, recipes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve recipes",
			"error":   err.Error(),
		})
		return
	}

	results := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		results = append(results, serializeRecipe(&recipes[i], favorited[recipes[i].ID], inCart[recipes[i].ID]))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Recipes retrieved successfully",
		"data": gin.H{
			"count":   total,
			"results": results,
		},
	})
}

// GetRecipe godoc
// @Summary Get a recipe by ID
// @Description Retrieve one recipe with its ingredients and per-user flags
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]interface{} "Recipe retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Router /recipes/{id} [get]
func (rc *RecipeController) GetRecipe(c *gin.Context) {
	recipe, ok := rc.loadRecipe(c)
	if !ok {
		return
	}

	favorited, inCart, err := rc.relationFlags(c, []models.Recipe{*recipe})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve recipe",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Recipe retrieved successfully",
		"data":    serializeRecipe(recipe, favorited[recipe.ID], inCart[recipe.ID]),
	})
}

// CreateRecipe godoc
// @Summary Create a new recipe
// @Description Create a recipe with its full ingredient list in one transaction
// @Tags recipe
// @Accept json
// @Produce json
// @Param recipe body controllers.RecipeCreateRequest true "Recipe data"
// @Success 201 {object} map[string]interface{} "Recipe created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Failed to create recipe"
// @Router /recipes [post]
func (rc *RecipeController) CreateRecipe(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req RecipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if req.CookingTime < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "cooking time must be at least 1 minute",
		})
		return
	}

	lineItems, err := rc.validateLineItems(req.Ingredients)
	if err != nil {
		rc.respondRecipeError(c, err, "Failed to create recipe")
		return
	}

	recipe := models.Recipe{
		AuthorID:    userID,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := rc.recipeRepo.CreateWithIngredients(&recipe, lineItems); err != nil {
		rc.respondRecipeError(c, err, "Failed to create recipe")
		return
	}

	created, err := rc.recipeRepo.FindByID(recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create recipe",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Recipe created successfully",
		"data":    serializeRecipe(created, false, false),
	})
}

// UpdateRecipe godoc
// @Summary Update a recipe
// @Description Replace the recipe's ingredient list wholesale and merge other fields
// @Tags recipe
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body controllers.RecipeUpdateRequest true "Recipe data"
// @Success 200 {object} map[string]interface{} "Recipe updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 403 {object} map[string]interface{} "Only the author can modify a recipe"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Router /recipes/{id} [patch]
func (rc *RecipeController) UpdateRecipe(c *gin.Context) {
	recipe, ok := rc.loadRecipe(c)
	if !ok {
		return
	}
	if !rc.requireAuthor(c, recipe) {
		return
	}

	var req RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	// Line items are replaced as a whole on every update; a request without
	// them is rejected rather than treated as "keep the old set".
	if req.Ingredients == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "the ingredients field is required when updating a recipe",
		})
		return
	}

	if req.CookingTime != nil && *req.CookingTime < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "cooking time must be at least 1 minute",
		})
		return
	}

	lineItems, err := rc.validateLineItems(*req.Ingredients)
	if err != nil {
		rc.respondRecipeError(c, err, "Failed to update recipe")
		return
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Image != nil {
		recipe.Image = *req.Image
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}

	if err := rc.recipeRepo.ReplaceIngredients(recipe, lineItems); err != nil {
		rc.respondRecipeError(c, err, "Failed to update recipe")
		return
	}

	updated, err := rc.recipeRepo.FindByID(recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update recipe",
			"error":   err.Error(),
		})
		return
	}

	favorited, inCart, err := rc.relationFlags(c, []models.Recipe{*updated})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update recipe",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Recipe updated successfully",
		"data":    serializeRecipe(updated, favorited[updated.ID], inCart[updated.ID]),
	})
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Delete a recipe together with its line items
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]interface{} "Recipe deleted successfully"
// @Failure 403 {object} map[string]interface{} "Only the author can modify a recipe"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Router /recipes/{id} [delete]
func (rc *RecipeController) DeleteRecipe(c *gin.Context) {
	recipe, ok := rc.loadRecipe(c)
	if !ok {
		return
	}
	if !rc.requireAuthor(c, recipe) {
		return
	}

	if err := rc.recipeRepo.Delete(recipe.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete recipe",
			"error":   err.Error(),
		})
		return
	}

	// The recipe's short code must stop resolving now, not when the cache
	// entry's TTL runs out.
	if rc.linkCache != nil {
		if code, err := shortlink.Encode(int64(recipe.ID)); err == nil {
			if err := rc.linkCache.DeleteShortLink(code); err != nil {
				log.Printf("short link cache evict failed: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Recipe deleted successfully",
		"data":    nil,
	})
}

// AddToFavorites godoc
// @Summary Add a recipe to favorites
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} map[string]interface{} "Recipe added to favorites"
// @Failure 400 {object} map[string]interface{} "Recipe already added"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Router /recipes/{id}/favorite [post]
func (rc *RecipeController) AddToFavorites(c *gin.Context) {
	rc.addRelation(c, repository.RelationFavorite)
}

// RemoveFromFavorites godoc
// @Summary Remove a recipe from favorites
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]interface{} "Recipe removed from favorites"
// @Failure 404 {object} map[string]interface{} "Recipe was not in favorites"
// @Router /recipes/{id}/favorite [delete]
func (rc *RecipeController) RemoveFromFavorites(c *gin.Context) {
	rc.removeRelation(c, repository.RelationFavorite)
}

// AddToShoppingCart godoc
// @Summary Add a recipe to the shopping cart
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} map[string]interface{} "Recipe added to shopping cart"
// @Failure 400 {object} map[string]interface{} "Recipe already added"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Router /recipes/{id}/shopping_cart [post]
func (rc *RecipeController) AddToShoppingCart(c *gin.Context) {
	rc.addRelation(c, repository.RelationShoppingCart)
}

// RemoveFromShoppingCart godoc
// @Summary Remove a recipe from the shopping cart
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]interface{} "Recipe removed from shopping cart"
// @Failure 404 {object} map[string]interface{} "Recipe was not in the shopping cart"
// @Router /recipes/{id}/shopping_cart [delete]
func (rc *RecipeController) RemoveFromShoppingCart(c *gin.Context) {
	rc.removeRelation(c, repository.RelationShoppingCart)
}

func (rc *RecipeController) addRelation(c *gin.Context, kind repository.RelationKind) {
	userID, _ := currentUserID(c)
	recipe, ok := rc.loadRecipe(c)
	if !ok {
		return
	}

	// Advisory pre-check only. The unique index inside Add stays the
	// authoritative guard when identical requests race.
	exists, err := rc.relationRepo.Exists(kind, userID, recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Failed to add recipe to %s", kind),
			"error":   err.Error(),
		})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Recipe already added to %s", kind),
			"error":   fmt.Sprintf("recipe already added to %s", kind),
		})
		return
	}

	if err := rc.relationRepo.Add(kind, userID, recipe.ID); err != nil {
		if apperrors.IsConflict(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Recipe already added to %s", kind),
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Failed to add recipe to %s", kind),
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Recipe added to %s", kind),
		"data":    serializeRecipeShort(recipe),
	})
}

func (rc *RecipeController) removeRelation(c *gin.Context, kind repository.RelationKind) {
	userID, _ := currentUserID(c)
	recipe, ok := rc.loadRecipe(c)
	if !ok {
		return
	}

	if err := rc.relationRepo.Remove(kind, userID, recipe.ID); err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Recipe is not in %s", kind),
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Failed to remove recipe from %s", kind),
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Recipe removed from %s", kind),
		"data":    nil,
	})
}

// DownloadShoppingCart godoc
// @Summary Download the aggregated shopping list
// @Description Sum ingredient amounts across every recipe in the cart, grouped by name and unit
// @Tags recipe
// @Produce plain
// @Success 200 {string} string "shopping_list.txt attachment"
// @Failure 500 {object} map[string]interface{} "Failed to build shopping list"
// @Router /recipes/download_shopping_cart [get]
func (rc *RecipeController) DownloadShoppingCart(c *gin.Context) {
	userID, _ := currentUserID(c)

	items, err := rc.relationRepo.AggregateShoppingList(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to build shopping list",
			"error":   err.Error(),
		})
		return
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) — %d\n", item.Name, item.MeasurementUnit, item.TotalAmount)
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}

// loadRecipe resolves the :id path parameter. It writes the error response
// itself and returns ok=false when the recipe cannot be loaded.
func (rc *RecipeController) loadRecipe(c *gin.Context) (*models.Recipe, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid recipe ID",
			"error":   "ID must be a valid positive integer",
		})
		return nil, false
	}

	recipe, err := rc.recipeRepo.FindByID(uint(id))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Recipe not found",
				"error":   "No recipe exists with the provided ID",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve recipe",
			"error":   err.Error(),
		})
		return nil, false
	}
	return recipe, true
}

// requireAuthor enforces that only the recipe's author may mutate it.
func (rc *RecipeController) requireAuthor(c *gin.Context, recipe *models.Recipe) bool {
	userID, _ := currentUserID(c)
	if recipe.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Only the author can modify a recipe",
			"error":   "You are not the author of this recipe",
		})
		return false
	}
	return true
}

func (rc *RecipeController) respondRecipeError(c *gin.Context, err error, fallback string) {
	if apperrors.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": fallback,
		"error":   err.Error(),
	})
}
