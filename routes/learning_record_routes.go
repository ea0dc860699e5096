package routes

import (
	"github.com/anjiri1684/web3_university/handlers"
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/gofiber/fiber/v2"
)

func LearningRecordRoutes(app *fiber.App, h *handlers.LearningRecordHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	protected := api.Group("", middleware.Protected(jwtSecret))
	protected.Post("/courses/:courseId/progress", h.RecordProgress)
	protected.Get("/learning-records/me", h.GetMyLearningRecords)
	protected.Get("/learning-records/:recordId", h.GetLearningRecord)
	protected.Patch("/learning-records/:recordId", h.UpdateLearningRecord)
}
