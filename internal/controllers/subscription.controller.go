package controllers

import (
	"foodgram/internal/apperrors"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultRecipesLimit is how many recipes are shown per author in the
// subscriptions list when the caller does not ask for a different prefix.
const DefaultRecipesLimit = 3

type SubscriptionController struct {
	subscriptionRepo repository.SubscriptionRepository
	recipeRepo       repository.RecipeRepository
	userRepo         repository.UserRepository
}

func NewSubscriptionController(
	subscriptionRepo repository.SubscriptionRepository,
	recipeRepo repository.RecipeRepository,
	userRepo repository.UserRepository,
) *SubscriptionController {
	return &SubscriptionController{
		subscriptionRepo: subscriptionRepo,
		recipeRepo:       recipeRepo,
		userRepo:         userRepo,
	}
}

// Subscribe godoc
// @Summary Subscribe to an author
// @Tags subscription
// @Produce json
// @Param id path int true "Author ID"
// @Success 201 {object} map[string]interface{} "Subscribed successfully"
// @Failure 400 {object} map[string]interface{} "Self-subscription or already subscribed"
// @Failure 404 {object} map[string]interface{} "Author not found"
// @Router /users/{id}/subscribe [post]
func (sc *SubscriptionController) Subscribe(c *gin.Context) {
	userID, _ := currentUserID(c)
	author, ok := sc.loadAuthor(c)
	if !ok {
		return
	}

	if err := sc.subscriptionRepo.Subscribe(userID, author.ID); err != nil {
		switch {
		case apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "You cannot subscribe to yourself",
				"error":   err.Error(),
			})
		case apperrors.IsConflict(err):
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "You are already subscribed to this user",
				"error":   err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to subscribe",
				"error":   err.Error(),
			})
		}
		return
	}

	response, err := sc.serializeAuthor(c, author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to subscribe",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Subscribed successfully",
		"data":    response,
	})
}

// Unsubscribe godoc
// @Summary Unsubscribe from an author
// @Tags subscription
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} map[string]interface{} "Unsubscribed successfully"
// @Failure 404 {object} map[string]interface{} "Author or subscription not found"
// @Router /users/{id}/subscribe [delete]
func (sc *SubscriptionController) Unsubscribe(c *gin.Context) {
	userID, _ := currentUserID(c)
	author, ok := sc.loadAuthor(c)
	if !ok {
		return
	}

	if err := sc.subscriptionRepo.Unsubscribe(userID, author.ID); err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "You were not subscribed to this user",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to unsubscribe",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Unsubscribed successfully",
		"data":    nil,
	})
}

// ListSubscriptions godoc
// @Summary List followed authors
// @Description Every followed author with their recipe count and a prefix of their recipes
// @Tags subscription
// @Produce json
// @Param recipes_limit query int false "Recipes shown per author (default 3)"
// @Success 200 {object} map[string]interface{} "Subscriptions retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve subscriptions"
// @Router /users/subscriptions [get]
func (sc *SubscriptionController) ListSubscriptions(c *gin.Context) {
	userID, _ := currentUserID(c)
	limit := recipesLimit(c.Query("recipes_limit"))

	authors, err := sc.subscriptionRepo.FindAuthors(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve subscriptions",
			"error":   err.Error(),
		})
		return
	}

	results := make([]SubscriptionResponse, 0, len(authors))
	for i := range authors {
		response, err := sc.serializeAuthorWithLimit(&authors[i], limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to retrieve subscriptions",
				"error":   err.Error(),
			})
			return
		}
		results = append(results, response)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Subscriptions retrieved successfully",
		"data":    results,
	})
}

// recipesLimit parses the recipes_limit query value. Non-numeric and
// negative values fall back to the default instead of erroring.
func recipesLimit(raw string) int {
	if raw == "" {
		return DefaultRecipesLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return DefaultRecipesLimit
	}
	return limit
}

func (sc *SubscriptionController) serializeAuthor(c *gin.Context, authorID uint) (SubscriptionResponse, error) {
	author, err := sc.userRepo.FindByID(authorID)
	if err != nil {
		return SubscriptionResponse{}, err
	}
	return sc.serializeAuthorWithLimit(author, recipesLimit(c.Query("recipes_limit")))
}

func (sc *SubscriptionController) serializeAuthorWithLimit(author *models.User, limit int) (SubscriptionResponse, error) {
	count, err := sc.recipeRepo.CountByAuthorID(author.ID)
	if err != nil {
		return SubscriptionResponse{}, err
	}

	recipes := []RecipeShortResponse{}
	if limit > 0 {
		found, err := sc.recipeRepo.FindByAuthorID(author.ID, limit)
		if err != nil {
			return SubscriptionResponse{}, err
		}
		for i := range found {
			recipes = append(recipes, serializeRecipeShort(&found[i]))
		}
	}

	user := serializeUser(author, true)
	return SubscriptionResponse{
		UserResponse: user,
		RecipesCount: count,
		Recipes:      recipes,
	}, nil
}

func (sc *SubscriptionController) loadAuthor(c *gin.Context) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid user ID",
			"error":   "ID must be a valid positive integer",
		})
		return nil, false
	}

	author, err := sc.userRepo.FindByID(uint(id))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "User not found",
				"error":   "No user exists with the provided ID",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve user",
			"error":   err.Error(),
		})
		return nil, false
	}
	return author, true
}
