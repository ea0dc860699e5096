package handlers

import (
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/anjiri1684/web3_university/models"
	"github.com/anjiri1684/web3_university/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courses *services.CourseService
}

func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

type CreateCourseRequest struct {
	Title        string  `json:"title" validate:"required,min=3"`
	Description  string  `json:"description"`
	PriceYD      float64 `json:"price_yd" validate:"gte=0"`
	Category     string  `json:"category"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
	Status       string  `json:"status" validate:"omitempty,oneof=draft published"`
}

type UpdateCourseRequest struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=3"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	PriceYD      *float64 `json:"price_yd,omitempty" validate:"omitempty,gte=0"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	VideoURL     *string  `json:"video_url,omitempty"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course, err := h.courses.Create(c.Context(), services.CreateCourseInput{
		Title:                req.Title,
		Description:          req.Description,
		TeacherWalletAddress: middleware.WalletAddress(c),
		PriceYD:              req.PriceYD,
		Category:             req.Category,
		ThumbnailURL:         req.ThumbnailURL,
		VideoURL:             req.VideoURL,
		Status:               models.CourseStatus(req.Status),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (h *CourseHandler) GetCourses(c *fiber.Ctx) error {
	filter := services.CourseFilter{
		TeacherWalletAddress: c.Query("teacher"),
		Status:               models.CourseStatus(c.Query("status")),
		Category:             c.Query("category"),
	}
	courses, err := h.courses.FindAll(filter)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"courses": courses, "count": len(courses)})
}

func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}
	course, err := h.courses.FindOne(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(course)
}

func (h *CourseHandler) GetCourseLessons(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}
	lessons, err := h.courses.FindLessons(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"lessons": lessons, "count": len(lessons)})
}

func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := services.UpdateCourseInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		PriceYD:      req.PriceYD,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
	}
	if req.Status != nil {
		status := models.CourseStatus(*req.Status)
		input.Status = &status
	}

	course, err := h.courses.Update(c.Context(), id, middleware.WalletAddress(c), input)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(course)
}

// ArchiveCourse is the DELETE verb for a course. The row survives with a
// terminal status so purchase history keeps resolving.
func (h *CourseHandler) ArchiveCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}
	course, err := h.courses.Archive(c.Context(), id, middleware.WalletAddress(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "Course archived", "course": course})
}
