package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/api/handler"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	userHandler *handler.UserHandler,
	paymentHandler *handler.PaymentHandler,
	generationHandler *handler.GenerationHandler,
) {
	userRoutes := router.Group("/user")
	{
		userRoutes.GET("/:chatId/balance", userHandler.GetBalance)
		userRoutes.GET("/:chatId/transactions", userHandler.GetTransactions)
		userRoutes.GET("/:chatId/generations", generationHandler.History)
		userRoutes.POST("/:chatId/deposit", userHandler.Deposit)
		userRoutes.POST("/:chatId/daily-reward", userHandler.ClaimDailyReward)
	}

	router.POST("/payment/webhook", paymentHandler.Webhook)

	generationRoutes := router.Group("/generation")
	{
		generationRoutes.POST("", generationHandler.Create)
		generationRoutes.GET("/queue", generationHandler.Queue)
		generationRoutes.POST("/:id/start", generationHandler.Start)
		generationRoutes.POST("/:id/complete", generationHandler.Complete)
		generationRoutes.POST("/:id/fail", generationHandler.Fail)
		generationRoutes.POST("/:id/cancel", generationHandler.Cancel)
		generationRoutes.POST("/:id/retry", generationHandler.Retry)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
