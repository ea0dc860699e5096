package handlers

import (
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/anjiri1684/web3_university/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LearningRecordHandler struct {
	records *services.LearningRecordService
}

func NewLearningRecordHandler(records *services.LearningRecordService) *LearningRecordHandler {
	return &LearningRecordHandler{records: records}
}

type RecordProgressRequest struct {
	LessonID           *string `json:"lesson_id,omitempty" validate:"omitempty,uuid"`
	WatchTime          *int    `json:"watch_time,omitempty" validate:"omitempty,gte=0"`
	ProgressPercentage *int    `json:"progress_percentage,omitempty" validate:"omitempty,min=0,max=100"`
	Completed          *bool   `json:"completed,omitempty"`
}

type UpdateLearningRecordRequest struct {
	WatchTime          *int  `json:"watch_time,omitempty" validate:"omitempty,gte=0"`
	ProgressPercentage *int  `json:"progress_percentage,omitempty" validate:"omitempty,min=0,max=100"`
	Completed          *bool `json:"completed,omitempty"`
}

// RecordProgress upserts the caller's watch progress for a course. Omit
// lesson_id for single-video courses.
func (h *LearningRecordHandler) RecordProgress(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	var req RecordProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := services.RecordProgressInput{
		CourseID:           courseID,
		UserWalletAddress:  middleware.WalletAddress(c),
		WatchTime:          req.WatchTime,
		ProgressPercentage: req.ProgressPercentage,
		Completed:          req.Completed,
	}
	if req.LessonID != nil {
		lessonID, err := uuid.Parse(*req.LessonID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson id"})
		}
		input.LessonID = &lessonID
	}

	record, err := h.records.RecordProgress(input)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *LearningRecordHandler) GetMyLearningRecords(c *fiber.Ctx) error {
	filter := services.LearningRecordFilter{UserWalletAddress: middleware.WalletAddress(c)}
	if raw := c.Query("course"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
		}
		filter.CourseID = &courseID
	}

	records, err := h.records.FindAll(filter)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"learning_records": records, "count": len(records)})
}

func (h *LearningRecordHandler) GetLearningRecord(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("recordId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid learning record id"})
	}
	record, err := h.records.FindOne(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(record)
}

func (h *LearningRecordHandler) UpdateLearningRecord(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("recordId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid learning record id"})
	}

	var req UpdateLearningRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.records.Update(id, middleware.WalletAddress(c), services.UpdateLearningRecordInput{
		WatchTime:          req.WatchTime,
		ProgressPercentage: req.ProgressPercentage,
		Completed:          req.Completed,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(record)
}
