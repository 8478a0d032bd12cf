package routes

import (
	"foodgram/internal/controllers"
	"foodgram/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(
	router *gin.Engine,
	userController *controllers.UserController,
	subscriptionController *controllers.SubscriptionController,
) {
	router.POST("/auth/token/login", userController.Login)

	userRoutes := router.Group("/users")
	{
		userRoutes.POST("/", userController.Register)
		userRoutes.GET("/", middleware.OptionalAuthMiddleware(), userController.ListUsers)
		userRoutes.GET("/me", middleware.AuthMiddleware(), userController.Me)
		userRoutes.PUT("/me/avatar", middleware.AuthMiddleware(), userController.UpdateAvatar)
		userRoutes.DELETE("/me/avatar", middleware.AuthMiddleware(), userController.DeleteAvatar)
		userRoutes.GET("/:id", middleware.OptionalAuthMiddleware(), userController.GetUser)

		userRoutes.GET("/subscriptions", middleware.AuthMiddleware(), subscriptionController.ListSubscriptions)
		userRoutes.POST("/:id/subscribe", middleware.AuthMiddleware(), subscriptionController.Subscribe)
		userRoutes.DELETE("/:id/subscribe", middleware.AuthMiddleware(), subscriptionController.Unsubscribe)
	}
}
