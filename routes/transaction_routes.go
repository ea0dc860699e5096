package routes

import (
	"github.com/anjiri1684/web3_university/handlers"
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/gofiber/fiber/v2"
)

func TransactionRoutes(app *fiber.App, h *handlers.TransactionHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	transactions := api.Group("/transactions", middleware.Protected(jwtSecret))
	transactions.Get("/me", h.GetMyTransactions)
	transactions.Get("/:transactionId", h.GetTransaction)

	api.Post("/courses/:courseId/purchase", middleware.Protected(jwtSecret), h.RecordPurchase)
}
