package routes

import (
	"github.com/anjiri1684/web3_university/handlers"
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/gofiber/fiber/v2"
)

func OnchainRoutes(app *fiber.App, h *handlers.OnchainHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	api.Get("/onchain/courses/:courseId", h.GetOnchainCourse)

	protected := api.Group("", middleware.Protected(jwtSecret))
	protected.Get("/onchain/courses/:courseId/status", h.GetPurchaseStatus)
	protected.Post("/courses/:courseId/complete", h.CompleteCourse)
}
