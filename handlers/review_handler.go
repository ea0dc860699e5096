package handlers

import (
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/anjiri1684/web3_university/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review, err := h.reviews.Create(services.CreateReviewInput{
		CourseID:             courseID,
		StudentWalletAddress: middleware.WalletAddress(c),
		Rating:               req.Rating,
		Comment:              req.Comment,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) GetCourseReviews(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	reviews, err := h.reviews.FindAll(services.ReviewFilter{CourseID: &courseID})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews, "count": len(reviews)})
}

func (h *ReviewHandler) GetReviews(c *fiber.Ctx) error {
	filter := services.ReviewFilter{
		StudentWalletAddress: c.Query("student"),
		TeacherWalletAddress: c.Query("teacher"),
	}
	reviews, err := h.reviews.FindAll(filter)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews, "count": len(reviews)})
}

func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review, err := h.reviews.Update(id, middleware.WalletAddress(c), services.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(review)
}
