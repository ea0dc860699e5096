package routes

import (
	"github.com/anjiri1684/web3_university/handlers"
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App, h *handlers.UploadHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	api.Get("/uploads/signature", middleware.Protected(jwtSecret), h.GenerateUploadSignature)
}
