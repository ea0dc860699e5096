package routes

import (
	"github.com/anjiri1684/web3_university/handlers"
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App, h *handlers.UserHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	users := api.Group("/users", middleware.Protected(jwtSecret))
	users.Get("/me", h.GetMe)
	users.Patch("/me", h.UpdateMe)
	users.Get("/:walletAddress", h.GetUser)
}
