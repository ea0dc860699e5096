package routes

import (
	"github.com/anjiri1684/web3_university/handlers"
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App, h *handlers.CourseHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses")
	courses.Get("", h.GetCourses)
	courses.Get("/:courseId", h.GetCourse)
	courses.Get("/:courseId/lessons", h.GetCourseLessons)

	protected := api.Group("/courses", middleware.Protected(jwtSecret))
	protected.Post("", h.CreateCourse)
	protected.Patch("/:courseId", h.UpdateCourse)
	protected.Delete("/:courseId", h.ArchiveCourse)
}
