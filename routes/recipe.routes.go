package routes

import (
	"foodgram/internal/controllers"
	"foodgram/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRecipeRoutes(
	router *gin.Engine,
	recipeController *controllers.RecipeController,
	shortLinkController *controllers.ShortLinkController,
) {
	recipeRoutes := router.Group("/recipes")
	{
		// Reads serve anonymous users; per-user flags are false without a token.
		recipeRoutes.GET("/", middleware.OptionalAuthMiddleware(), recipeController.ListRecipes)
		recipeRoutes.GET("/:id", middleware.OptionalAuthMiddleware(), recipeController.GetRecipe)
		recipeRoutes.GET("/:id/get-link", shortLinkController.GetShortLink)

		recipeRoutes.POST("/", middleware.AuthMiddleware(), recipeController.CreateRecipe)
		recipeRoutes.PATCH("/:id", middleware.AuthMiddleware(), recipeController.UpdateRecipe)
		recipeRoutes.DELETE("/:id", middleware.AuthMiddleware(), recipeController.DeleteRecipe)

		recipeRoutes.POST("/:id/favorite", middleware.AuthMiddleware(), recipeController.AddToFavorites)
		recipeRoutes.DELETE("/:id/favorite", middleware.AuthMiddleware(), recipeController.RemoveFromFavorites)
		recipeRoutes.POST("/:id/shopping_cart", middleware.AuthMiddleware(), recipeController.AddToShoppingCart)
		recipeRoutes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(), recipeController.RemoveFromShoppingCart)

		recipeRoutes.GET("/download_shopping_cart", middleware.AuthMiddleware(), recipeController.DownloadShoppingCart)
	}

	// Short-link resolution lives outside the /recipes group.
	router.GET("/s/:code", shortLinkController.ResolveShortLink)
}
