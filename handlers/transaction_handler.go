package handlers

import (
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/anjiri1684/web3_university/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	transactions *services.TransactionService
}

func NewTransactionHandler(transactions *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type RecordPurchaseRequest struct {
	TransactionHash *string `json:"transaction_hash,omitempty"`
}

// RecordPurchase books an on-chain purchase the frontend already settled:
// enrollment row, transaction history entry, student count.
func (h *TransactionHandler) RecordPurchase(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	var req RecordPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	enrollment, err := h.transactions.RecordPurchase(courseID, middleware.WalletAddress(c), req.TransactionHash)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

func (h *TransactionHandler) GetMyTransactions(c *fiber.Ctx) error {
	txns, err := h.transactions.FindAll(middleware.WalletAddress(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"transactions": txns, "count": len(txns)})
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("transactionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction id"})
	}
	txn, err := h.transactions.FindOne(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(txn)
}
