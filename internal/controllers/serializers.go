package controllers

import "foodgram/internal/models"

// Response shapes shared by the recipe, user and subscription controllers.
// Per-user booleans (is_subscribed, is_favorited, is_in_shopping_cart) are
// filled from batched lookups computed once per page, never per row.

type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          uint   `json:"amount"`
}

type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      uint                       `json:"cooking_time"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
}

// RecipeShortResponse is the compact projection returned by relation adds
// and subscription previews.
type RecipeShortResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime uint   `json:"cooking_time"`
}

type SubscriptionResponse struct {
	UserResponse
	RecipesCount int64                 `json:"recipes_count"`
	Recipes      []RecipeShortResponse `json:"recipes"`
}

func serializeUser(user *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Avatar:       user.Avatar,
		IsSubscribed: isSubscribed,
	}
}

func serializeRecipe(recipe *models.Recipe, isFavorited, isInCart bool) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.RecipeIngredients))
	for _, item := range recipe.RecipeIngredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              item.IngredientID,
			Name:            item.Ingredient.Name,
			MeasurementUnit: item.Ingredient.MeasurementUnit,
			Amount:          item.Amount,
		})
	}
	return RecipeResponse{
		ID:               recipe.ID,
		Author:           serializeUser(&recipe.Author, false),
		Ingredients:      ingredients,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
	}
}

func serializeRecipeShort(recipe *models.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
