package handlers

import (
	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/anjiri1684/web3_university/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// OnchainHandler serves the registry reads the frontend polls and the
// certificate mint flow.
type OnchainHandler struct {
	chain        *ledger.Client
	certificates *services.CertificateService
}

func NewOnchainHandler(chain *ledger.Client, certificates *services.CertificateService) *OnchainHandler {
	return &OnchainHandler{chain: chain, certificates: certificates}
}

func (h *OnchainHandler) GetOnchainCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}
	course, err := h.chain.GetCourse(c.Context(), id.String())
	if err != nil {
		return errorJSON(c, err)
	}
	active, err := h.chain.IsCourseActive(c.Context(), id.String())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"course": course, "active": active})
}

func (h *OnchainHandler) GetPurchaseStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}
	wallet := middleware.WalletAddress(c)

	purchased, err := h.chain.HasPurchased(c.Context(), wallet, id.String())
	if err != nil {
		return errorJSON(c, err)
	}
	certified, err := h.chain.HasCertificate(c.Context(), wallet, id.String())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"purchased": purchased, "certified": certified})
}

// CompleteCourse renders and uploads the certificate, then mints the
// certificate NFT. The contract enforces purchase and one-mint-per-course.
func (h *OnchainHandler) CompleteCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	certificate, err := h.certificates.CompleteCourse(c.Context(), id, middleware.WalletAddress(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Course completed, certificate minted",
		"certificate": certificate,
	})
}
