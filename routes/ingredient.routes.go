package routes

import (
	"foodgram/internal/controllers"
	"foodgram/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterIngredientRoutes(router *gin.Engine, ingredientController *controllers.IngredientController) {
	ingredientRoutes := router.Group("/ingredients")
	{
		ingredientRoutes.GET("/", ingredientController.ListIngredients)
		ingredientRoutes.GET("/:id", ingredientController.GetIngredient)
		ingredientRoutes.POST("/", middleware.AuthMiddleware(), ingredientController.CreateIngredient)
		ingredientRoutes.DELETE("/:id", middleware.AuthMiddleware(), ingredientController.DeleteIngredient)
	}
}
