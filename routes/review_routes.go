package routes

import (
	"github.com/anjiri1684/web3_university/handlers"
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App, h *handlers.ReviewHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	api.Get("/courses/:courseId/reviews", h.GetCourseReviews)
	api.Get("/reviews", h.GetReviews)

	protected := api.Group("", middleware.Protected(jwtSecret))
	protected.Post("/courses/:courseId/reviews", h.CreateReview)
	protected.Patch("/reviews/:reviewId", h.UpdateReview)
}
